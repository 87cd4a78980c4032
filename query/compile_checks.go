package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-unified/core"
)

var (
	_ gocmd.Querier[DisunifyMessage, core.DisunifyResult]           = (*DisunifyQuery)(nil)
	_ gocmd.Querier[UnifyMessage, core.UnifyResult]                 = (*UnifyQuery)(nil)
	_ gocmd.Querier[EffectiveMappingMessage, core.EffectiveMapping] = (*EffectiveMappingQuery)(nil)
	_ gocmd.Querier[GetConnectionMessage, core.Connection]          = (*GetConnectionQuery)(nil)
	_ gocmd.Querier[ListConnectionsMessage, []core.Connection]      = (*ListConnectionsQuery)(nil)
)
