package query

import (
	"context"

	"github.com/goliatone/go-unified/core"
)

type TransformReader interface {
	Disunify(ctx context.Context, req core.DisunifyRequest) (core.DisunifyResult, error)
	Unify(ctx context.Context, req core.UnifyRequest) (core.UnifyResult, error)
	EffectiveMappingFor(ctx context.Context, objectType core.ObjectType, providerID core.ProviderID, schemaMappingID string) (core.EffectiveMapping, error)
}

type ConnectionReader interface {
	GetConnection(ctx context.Context, key core.ConnectionKey) (core.Connection, error)
	ListConnections(ctx context.Context) ([]core.Connection, error)
}

type DisunifyQuery struct {
	reader TransformReader
}

func NewDisunifyQuery(reader TransformReader) *DisunifyQuery {
	return &DisunifyQuery{reader: reader}
}

func (q *DisunifyQuery) Query(ctx context.Context, msg DisunifyMessage) (core.DisunifyResult, error) {
	if q == nil || q.reader == nil {
		return core.DisunifyResult{}, queryDependencyError("query: transform reader is required")
	}
	return q.reader.Disunify(ctx, msg.Request)
}

type UnifyQuery struct {
	reader TransformReader
}

func NewUnifyQuery(reader TransformReader) *UnifyQuery {
	return &UnifyQuery{reader: reader}
}

func (q *UnifyQuery) Query(ctx context.Context, msg UnifyMessage) (core.UnifyResult, error) {
	if q == nil || q.reader == nil {
		return core.UnifyResult{}, queryDependencyError("query: transform reader is required")
	}
	return q.reader.Unify(ctx, msg.Request)
}

type EffectiveMappingQuery struct {
	reader TransformReader
}

func NewEffectiveMappingQuery(reader TransformReader) *EffectiveMappingQuery {
	return &EffectiveMappingQuery{reader: reader}
}

func (q *EffectiveMappingQuery) Query(ctx context.Context, msg EffectiveMappingMessage) (core.EffectiveMapping, error) {
	if q == nil || q.reader == nil {
		return core.EffectiveMapping{}, queryDependencyError("query: transform reader is required")
	}
	return q.reader.EffectiveMappingFor(ctx, msg.ObjectType, msg.ProviderID, msg.SchemaMappingID)
}

type GetConnectionQuery struct {
	reader ConnectionReader
}

func NewGetConnectionQuery(reader ConnectionReader) *GetConnectionQuery {
	return &GetConnectionQuery{reader: reader}
}

func (q *GetConnectionQuery) Query(ctx context.Context, msg GetConnectionMessage) (core.Connection, error) {
	if q == nil || q.reader == nil {
		return core.Connection{}, queryDependencyError("query: connection reader is required")
	}
	return q.reader.GetConnection(ctx, msg.Key)
}

type ListConnectionsQuery struct {
	reader ConnectionReader
}

func NewListConnectionsQuery(reader ConnectionReader) *ListConnectionsQuery {
	return &ListConnectionsQuery{reader: reader}
}

func (q *ListConnectionsQuery) Query(ctx context.Context, msg ListConnectionsMessage) ([]core.Connection, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: connection reader is required")
	}
	return q.reader.ListConnections(ctx)
}
