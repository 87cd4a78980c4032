package discord

import (
	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderDiscord

func New() (core.Adapter, error) {
	return providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID: ProviderID,
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeMessage: {
				"id":               "id",
				"text":             "content",
				"channelId":        "channel_id",
				"createdTimestamp": "timestamp",
			},
			core.ObjectTypeChannel: {
				"id":               "id",
				"name":             "name",
				"createdTimestamp": "id",
			},
		},
		RequiredFields: map[core.ObjectType][]string{
			core.ObjectTypeMessage: {"text", "channelId"},
		},
	})
}
