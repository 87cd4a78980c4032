package command

import (
	"strings"

	"github.com/goliatone/go-unified/core"
)

const (
	TypeUpsertConnection   = "unified.command.connection.upsert"
	TypeDeleteConnection   = "unified.command.connection.delete"
	TypeRefreshConnection  = "unified.command.connection.refresh"
	TypeRefreshAll         = "unified.command.connection.refresh_all"
	TypeSaveAppCredential  = "unified.command.app_credential.save"
	TypeSaveFieldMapping   = "unified.command.field_mapping.save"
	TypeDeleteFieldMapping = "unified.command.field_mapping.delete"
)

type UpsertConnectionMessage struct {
	Input core.UpsertConnectionInput
}

func (UpsertConnectionMessage) Type() string { return TypeUpsertConnection }

func (m UpsertConnectionMessage) Validate() error {
	if strings.TrimSpace(m.Input.TenantID) == "" {
		return commandInvalidInputError("command: tenant id is required")
	}
	if strings.TrimSpace(string(m.Input.ProviderID)) == "" {
		return commandInvalidInputError("command: provider id is required")
	}
	if strings.TrimSpace(m.Input.AccessToken) == "" {
		return commandInvalidInputError("command: access token is required")
	}
	return nil
}

type DeleteConnectionMessage struct {
	Key core.ConnectionKey
}

func (DeleteConnectionMessage) Type() string { return TypeDeleteConnection }

func (m DeleteConnectionMessage) Validate() error {
	if err := m.Key.Validate(); err != nil {
		return commandInvalidInputError(err.Error())
	}
	return nil
}

type RefreshConnectionMessage struct {
	Key core.ConnectionKey
}

func (RefreshConnectionMessage) Type() string { return TypeRefreshConnection }

func (m RefreshConnectionMessage) Validate() error {
	if err := m.Key.Validate(); err != nil {
		return commandInvalidInputError(err.Error())
	}
	return nil
}

type RefreshAllMessage struct{}

func (RefreshAllMessage) Type() string { return TypeRefreshAll }

func (RefreshAllMessage) Validate() error { return nil }

type SaveAppCredentialMessage struct {
	Credential core.AppCredential
}

func (SaveAppCredentialMessage) Type() string { return TypeSaveAppCredential }

func (m SaveAppCredentialMessage) Validate() error {
	if strings.TrimSpace(string(m.Credential.ProviderID)) == "" {
		return commandInvalidInputError("command: provider id is required")
	}
	if strings.TrimSpace(m.Credential.ClientID) == "" {
		return commandInvalidInputError("command: client id is required")
	}
	if strings.TrimSpace(m.Credential.ClientSecret) == "" {
		return commandInvalidInputError("command: client secret is required")
	}
	return nil
}

type SaveFieldMappingMessage struct {
	Input core.SaveFieldMappingInput
}

func (SaveFieldMappingMessage) Type() string { return TypeSaveFieldMapping }

func (m SaveFieldMappingMessage) Validate() error {
	if strings.TrimSpace(m.Input.SchemaMappingID) == "" {
		return commandInvalidInputError("command: schema mapping id is required")
	}
	if err := m.Input.ObjectType.Validate(); err != nil {
		return commandInvalidInputError(err.Error())
	}
	if strings.TrimSpace(m.Input.CanonicalName) == "" {
		return commandInvalidInputError("command: canonical name is required")
	}
	if strings.TrimSpace(m.Input.ProviderPath) == "" {
		return commandInvalidInputError("command: provider path is required")
	}
	return nil
}

type DeleteFieldMappingMessage struct {
	SchemaMappingID string
	ObjectType      core.ObjectType
	CanonicalName   string
}

func (DeleteFieldMappingMessage) Type() string { return TypeDeleteFieldMapping }

func (m DeleteFieldMappingMessage) Validate() error {
	if strings.TrimSpace(m.SchemaMappingID) == "" {
		return commandInvalidInputError("command: schema mapping id is required")
	}
	if err := m.ObjectType.Validate(); err != nil {
		return commandInvalidInputError(err.Error())
	}
	if strings.TrimSpace(m.CanonicalName) == "" {
		return commandInvalidInputError("command: canonical name is required")
	}
	return nil
}
