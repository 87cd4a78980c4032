package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[UpsertConnectionMessage]   = (*UpsertConnectionCommand)(nil)
	_ gocmd.Commander[DeleteConnectionMessage]   = (*DeleteConnectionCommand)(nil)
	_ gocmd.Commander[RefreshConnectionMessage]  = (*RefreshConnectionCommand)(nil)
	_ gocmd.Commander[RefreshAllMessage]         = (*RefreshAllCommand)(nil)
	_ gocmd.Commander[SaveAppCredentialMessage]  = (*SaveAppCredentialCommand)(nil)
	_ gocmd.Commander[SaveFieldMappingMessage]   = (*SaveFieldMappingCommand)(nil)
	_ gocmd.Commander[DeleteFieldMappingMessage] = (*DeleteFieldMappingCommand)(nil)
)
