package slack

import (
	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderSlack

func New() (core.Adapter, error) {
	return providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID: ProviderID,
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeMessage: {
				"id":               "ts",
				"text":             "text",
				"channelId":        "channel",
				"createdTimestamp": "ts",
			},
			core.ObjectTypeChannel: {
				"id":               "id",
				"name":             "name",
				"createdTimestamp": "created",
			},
		},
		RequiredFields: map[core.ObjectType][]string{
			core.ObjectTypeMessage: {"text", "channelId"},
		},
	})
}
