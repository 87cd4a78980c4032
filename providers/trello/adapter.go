package trello

import (
	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderTrello

// Trello cards carry their workflow state as the list they sit in, so
// the canonical status maps onto idList.
func New() (core.Adapter, error) {
	return providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID: ProviderID,
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeTicketTask: {
				"id":               "id",
				"remoteId":         "shortLink",
				"name":             "name",
				"description":      "desc",
				"status":           "idList",
				"assignees":        "idMembers",
				"creatorId":        "idMemberCreator",
				"dueDate":          "due",
				"completedDate":    "dateLastActivity",
				"createdTimestamp": "dateLastActivity",
				"updatedTimestamp": "dateLastActivity",
			},
		},
		RequiredFields: map[core.ObjectType][]string{
			core.ObjectTypeTicketTask: {"name"},
		},
	})
}
