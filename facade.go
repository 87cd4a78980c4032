package unified

import (
	"fmt"

	unifiedcommand "github.com/goliatone/go-unified/command"
	unifiedquery "github.com/goliatone/go-unified/query"
)

type CommandQueryService interface {
	unifiedcommand.MutatingService
	unifiedquery.TransformReader
	unifiedquery.ConnectionReader
}

type Commands struct {
	UpsertConnection   *unifiedcommand.UpsertConnectionCommand
	DeleteConnection   *unifiedcommand.DeleteConnectionCommand
	RefreshConnection  *unifiedcommand.RefreshConnectionCommand
	RefreshAll         *unifiedcommand.RefreshAllCommand
	SaveAppCredential  *unifiedcommand.SaveAppCredentialCommand
	SaveFieldMapping   *unifiedcommand.SaveFieldMappingCommand
	DeleteFieldMapping *unifiedcommand.DeleteFieldMappingCommand
}

type Queries struct {
	Disunify         *unifiedquery.DisunifyQuery
	Unify            *unifiedquery.UnifyQuery
	EffectiveMapping *unifiedquery.EffectiveMappingQuery
	GetConnection    *unifiedquery.GetConnectionQuery
	ListConnections  *unifiedquery.ListConnectionsQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("unified: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		UpsertConnection:   unifiedcommand.NewUpsertConnectionCommand(service),
		DeleteConnection:   unifiedcommand.NewDeleteConnectionCommand(service),
		RefreshConnection:  unifiedcommand.NewRefreshConnectionCommand(service),
		RefreshAll:         unifiedcommand.NewRefreshAllCommand(service),
		SaveAppCredential:  unifiedcommand.NewSaveAppCredentialCommand(service),
		SaveFieldMapping:   unifiedcommand.NewSaveFieldMappingCommand(service),
		DeleteFieldMapping: unifiedcommand.NewDeleteFieldMappingCommand(service),
	}
	facade.queries = Queries{
		Disunify:         unifiedquery.NewDisunifyQuery(service),
		Unify:            unifiedquery.NewUnifyQuery(service),
		EffectiveMapping: unifiedquery.NewEffectiveMappingQuery(service),
		GetConnection:    unifiedquery.NewGetConnectionQuery(service),
		ListConnections:  unifiedquery.NewListConnectionsQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}
