package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-unified/core"
)

type MutatingService interface {
	UpsertConnection(ctx context.Context, in core.UpsertConnectionInput) (core.Connection, error)
	DeleteConnection(ctx context.Context, key core.ConnectionKey) error
	RefreshConnection(ctx context.Context, key core.ConnectionKey) (core.Connection, error)
	RefreshAll(ctx context.Context) (core.RefreshReport, error)
	SaveAppCredential(ctx context.Context, cred core.AppCredential) (core.AppCredential, error)
	SaveFieldMapping(ctx context.Context, in core.SaveFieldMappingInput) (core.FieldMappingOverride, error)
	DeleteFieldMapping(ctx context.Context, schemaMappingID string, objectType core.ObjectType, canonicalName string) error
}

type UpsertConnectionCommand struct {
	service MutatingService
}

func NewUpsertConnectionCommand(service MutatingService) *UpsertConnectionCommand {
	return &UpsertConnectionCommand{service: service}
}

func (c *UpsertConnectionCommand) Execute(ctx context.Context, msg UpsertConnectionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: connection service is required")
	}
	out, err := c.service.UpsertConnection(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteConnectionCommand struct {
	service MutatingService
}

func NewDeleteConnectionCommand(service MutatingService) *DeleteConnectionCommand {
	return &DeleteConnectionCommand{service: service}
}

func (c *DeleteConnectionCommand) Execute(ctx context.Context, msg DeleteConnectionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: connection service is required")
	}
	return c.service.DeleteConnection(ctx, msg.Key)
}

type RefreshConnectionCommand struct {
	service MutatingService
}

func NewRefreshConnectionCommand(service MutatingService) *RefreshConnectionCommand {
	return &RefreshConnectionCommand{service: service}
}

func (c *RefreshConnectionCommand) Execute(ctx context.Context, msg RefreshConnectionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: refresh service is required")
	}
	out, err := c.service.RefreshConnection(ctx, msg.Key)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RefreshAllCommand struct {
	service MutatingService
}

func NewRefreshAllCommand(service MutatingService) *RefreshAllCommand {
	return &RefreshAllCommand{service: service}
}

func (c *RefreshAllCommand) Execute(ctx context.Context, msg RefreshAllMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: refresh service is required")
	}
	out, err := c.service.RefreshAll(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type SaveAppCredentialCommand struct {
	service MutatingService
}

func NewSaveAppCredentialCommand(service MutatingService) *SaveAppCredentialCommand {
	return &SaveAppCredentialCommand{service: service}
}

func (c *SaveAppCredentialCommand) Execute(ctx context.Context, msg SaveAppCredentialMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: app credential service is required")
	}
	out, err := c.service.SaveAppCredential(ctx, msg.Credential)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type SaveFieldMappingCommand struct {
	service MutatingService
}

func NewSaveFieldMappingCommand(service MutatingService) *SaveFieldMappingCommand {
	return &SaveFieldMappingCommand{service: service}
}

func (c *SaveFieldMappingCommand) Execute(ctx context.Context, msg SaveFieldMappingMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: field mapping service is required")
	}
	out, err := c.service.SaveFieldMapping(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteFieldMappingCommand struct {
	service MutatingService
}

func NewDeleteFieldMappingCommand(service MutatingService) *DeleteFieldMappingCommand {
	return &DeleteFieldMappingCommand{service: service}
}

func (c *DeleteFieldMappingCommand) Execute(ctx context.Context, msg DeleteFieldMappingMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: field mapping service is required")
	}
	return c.service.DeleteFieldMapping(ctx, msg.SchemaMappingID, msg.ObjectType, msg.CanonicalName)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
