package query

import (
	"strings"

	"github.com/goliatone/go-unified/core"
)

const (
	TypeDisunify         = "unified.query.transform.disunify"
	TypeUnify            = "unified.query.transform.unify"
	TypeEffectiveMapping = "unified.query.mapping.effective"
	TypeGetConnection    = "unified.query.connection.get"
	TypeListConnections  = "unified.query.connection.list"
)

type DisunifyMessage struct {
	Request core.DisunifyRequest
}

func (DisunifyMessage) Type() string { return TypeDisunify }

func (m DisunifyMessage) Validate() error {
	if err := m.Request.ObjectType.Validate(); err != nil {
		return queryInvalidInputError(err.Error())
	}
	if strings.TrimSpace(string(m.Request.ProviderID)) == "" {
		return queryInvalidInputError("query: provider id is required")
	}
	return nil
}

type UnifyMessage struct {
	Request core.UnifyRequest
}

func (UnifyMessage) Type() string { return TypeUnify }

func (m UnifyMessage) Validate() error {
	if err := m.Request.ObjectType.Validate(); err != nil {
		return queryInvalidInputError(err.Error())
	}
	if strings.TrimSpace(string(m.Request.ProviderID)) == "" {
		return queryInvalidInputError("query: provider id is required")
	}
	if m.Request.Native == nil {
		return queryInvalidInputError("query: native payload is required")
	}
	return nil
}

type EffectiveMappingMessage struct {
	ObjectType      core.ObjectType
	ProviderID      core.ProviderID
	SchemaMappingID string
}

func (EffectiveMappingMessage) Type() string { return TypeEffectiveMapping }

func (m EffectiveMappingMessage) Validate() error {
	if err := m.ObjectType.Validate(); err != nil {
		return queryInvalidInputError(err.Error())
	}
	if strings.TrimSpace(string(m.ProviderID)) == "" {
		return queryInvalidInputError("query: provider id is required")
	}
	return nil
}

type GetConnectionMessage struct {
	Key core.ConnectionKey
}

func (GetConnectionMessage) Type() string { return TypeGetConnection }

func (m GetConnectionMessage) Validate() error {
	if err := m.Key.Validate(); err != nil {
		return queryInvalidInputError(err.Error())
	}
	return nil
}

type ListConnectionsMessage struct{}

func (ListConnectionsMessage) Type() string { return TypeListConnections }

func (ListConnectionsMessage) Validate() error { return nil }
