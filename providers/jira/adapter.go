package jira

import (
	"context"

	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderJira

// Adapter maps issue tracking objects onto Jira issues. Jira rejects a
// status field on issue create, so status is stripped from the write
// payload and applied through the transitions endpoint afterwards.
type Adapter struct {
	*providers.MappedAdapter
}

func New() (*Adapter, error) {
	base, err := providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID: ProviderID,
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeTicketTask: {
				"id":               "id",
				"remoteId":         "key",
				"name":             "fields.summary",
				"description":      "fields.description",
				"status":           "fields.status.name",
				"priority":         "fields.priority.name",
				"assignees":        "fields.assignee.accountId",
				"creatorId":        "fields.creator.accountId",
				"dueDate":          "fields.duedate",
				"parentId":         "fields.parent.id",
				"issueTypeId":      "fields.issuetype.id",
				"createdTimestamp": "fields.created",
				"updatedTimestamp": "fields.updated",
			},
		},
		WriteSkip: map[core.ObjectType][]string{
			core.ObjectTypeTicketTask: {"status"},
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
// workflow state name ("In Progress") into the canonical snake_case status
// value ("in_progress").
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

// ResolveStatusTransition matches the canonical status label against the
// transitions Jira reports for the issue's workflow.
func (a *Adapter) ResolveStatusTransition(_ context.Context, label string, options []core.StateOption) (core.StateOption, error) {
	option, ok := core.MatchStateOption(label, options)
	if !ok {
		return core.StateOption{}, core.NewStateResolutionError(label, ProviderID)
	}
	return option, nil
}

var _ core.StatusTransitionResolver = (*Adapter)(nil)
