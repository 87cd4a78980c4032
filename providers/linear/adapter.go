package linear

import (
	"context"

	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderLinear

// Adapter maps issue tracking objects onto Linear issues. Linear reports
// workflow state as a display name under state.name.
type Adapter struct {
	*providers.MappedAdapter
}

func New() (*Adapter, error) {
	base, err := providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID: ProviderID,
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeTicketTask: {
				"id":               "id",
				"remoteId":         "identifier",
				"name":             "title",
				"description":      "description",
				"status":           "state.name",
				"priority":         "priority",
				"assignees":        "assignee.id",
				"creatorId":        "creator.id",
				"dueDate":          "dueDate",
				"completedDate":    "completedAt",
				"parentId":         "parent.id",
				"createdTimestamp": "createdAt",
				"updatedTimestamp": "updatedAt",
			},
		},
		RequiredFields: map[core.ObjectType][]string{
			core.ObjectTypeTicketTask: {"name"},
		},
	})
	if err != nil {
		return nil, err
	}
	return &Adapter{MappedAdapter: base}, nil
}

// FromNative reads the issue through the shared path mapping and folds the
// workflow state name into the canonical snake_case status value.
func (a *Adapter) FromNative(ctx context.Context, mapping core.EffectiveMapping, native map[string]any) (core.CanonicalObject, error) {
	object, err := a.MappedAdapter.FromNative(ctx, mapping, native)
	if err != nil {
		return core.CanonicalObject{}, err
	}
	if label, ok := object.Fields["status"].(string); ok {
		object.Fields["status"] = core.CanonicalStateToken(label)
	}
	return object, nil
}
