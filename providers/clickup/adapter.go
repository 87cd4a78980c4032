package clickup

import (
	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderClickup

func New() (core.Adapter, error) {
	return providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID: ProviderID,
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeTicketTask: {
				"id":               "id",
				"remoteId":         "custom_id",
				"name":             "name",
				"description":      "description",
				"status":           "status.status",
				"priority":         "priority.priority",
				"assignees":        "assignees",
				"creatorId":        "creator.id",
				"dueDate":          "due_date",
				"completedDate":    "date_done",
				"parentId":         "parent",
				"createdTimestamp": "date_created",
				"updatedTimestamp": "date_updated",
			},
		},
		RequiredFields: map[core.ObjectType][]string{
			core.ObjectTypeTicketTask: {"name"},
		},
	})
}
