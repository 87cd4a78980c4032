package bitbucket

import (
	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderBitbucket

func New() (core.Adapter, error) {
	return providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID: ProviderID,
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeTicketTask: {
				"id":               "id",
				"remoteId":         "id",
				"name":             "title",
				"description":      "content.raw",
				"status":           "state",
				"priority":         "priority",
				"assignees":        "assignee.uuid",
				"creatorId":        "reporter.uuid",
				"createdTimestamp": "created_on",
				"updatedTimestamp": "updated_on",
			},
		},
		RequiredFields: map[core.ObjectType][]string{
			core.ObjectTypeTicketTask: {"name"},
		},
	})
}
