package hubspot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderHubspot

// LeadLifecycleStage marks the contacts hubspot treats as leads. Hubspot
// has no native lead object; leads are contacts at this lifecycle stage.
const LeadLifecycleStage = "lead"

// New builds the hubspot adapter. Every property lives under the
// "properties" envelope hubspot expects on writes and returns on reads.
func New() (core.Adapter, error) {
	return providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID:                    ProviderID,
		AdditionalFieldPrefix: "properties",
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeLead: {
				"id":               "id",
				"remoteId":         "properties.hs_object_id",
				"firstName":        "properties.firstname",
				"lastName":         "properties.lastname",
				"email":            "properties.email",
				"phone":            "properties.phone",
				"createdTimestamp": "properties.createdate",
				"updatedTimestamp": "properties.hs_lastmodifieddate",
			},
			core.ObjectTypeContact: {
				"id":               "id",
				"remoteId":         "properties.hs_object_id",
				"firstName":        "properties.firstname",
				"lastName":         "properties.lastname",
				"email":            "properties.email",
				"phone":            "properties.phone",
				"createdTimestamp": "properties.createdate",
				"updatedTimestamp": "properties.hs_lastmodifieddate",
			},
			core.ObjectTypeDeal: {
				"id":                "id",
				"remoteId":          "properties.hs_object_id",
				"name":              "properties.dealname",
				"amount":            "properties.amount",
				"stage":             "properties.dealstage",
				"priority":          "properties.hs_priority",
				"expectedCloseDate": "properties.closedate",
				"isWon":             "properties.hs_is_closed_won",
				"probability":       "properties.hs_deal_stage_probability",
				"createdTimestamp":  "properties.createdate",
				"updatedTimestamp":  "properties.hs_lastmodifieddate",
			},
			core.ObjectTypeCompany: {
				"id":               "id",
				"remoteId":         "properties.hs_object_id",
				"name":             "properties.name",
				"industry":         "properties.industry",
				"description":      "properties.description",
				"annualRevenue":    "properties.annualrevenue",
				"size":             "properties.numberofemployees",
				"phone":            "properties.phone",
				"street":           "properties.address",
				"city":             "properties.city",
				"state":            "properties.state",
				"country":          "properties.country",
				"zip":              "properties.zip",
				"createdTimestamp": "properties.createdate",
				"updatedTimestamp": "properties.hs_lastmodifieddate",
			},
			core.ObjectTypeNote: {
				"id":               "id",
				"remoteId":         "properties.hs_object_id",
				"content":          "properties.hs_note_body",
				"createdTimestamp": "properties.hs_createdate",
				"updatedTimestamp": "properties.hs_lastmodifieddate",
			},
			core.ObjectTypeTask: {
				"id":               "id",
				"remoteId":         "properties.hs_object_id",
				"subject":          "properties.hs_task_subject",
				"body":             "properties.hs_task_body",
				"priority":         "properties.hs_task_priority",
				"status":           "properties.hs_task_status",
				"dueDate":          "properties.hs_timestamp",
				"createdTimestamp": "properties.hs_createdate",
				"updatedTimestamp": "properties.hs_lastmodifieddate",
			},
		},
	})
}

// IsLeadPayload reports whether a contact payload represents a lead. The
// lifecycle stage comparison is case-insensitive.
func IsLeadPayload(native map[string]any) bool {
	value, ok := core.LookupPath(native, "properties.lifecyclestage")
	if !ok {
		return false
	}
	stage, ok := value.(string)
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(stage), LeadLifecycleStage)
}

// LeadSearchFilter returns the hubspot CRM search filter that narrows a
// contact listing to leads.
func LeadSearchFilter() map[string]any {
	return map[string]any{
		"propertyName": "lifecyclestage",
		"operator":     "EQ",
		"value":        LeadLifecycleStage,
	}
}

// PropertyNames returns the hubspot property list to request for an object
// type, derived from the adapter's default paths.
func PropertyNames(adapter core.Adapter, objectType core.ObjectType) ([]string, error) {
	paths, ok := adapter.DefaultPaths(objectType)
	if !ok {
		return nil, fmt.Errorf("hubspot: object type %s is not supported", objectType)
	}
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		if property, found := strings.CutPrefix(path, "properties."); found {
			names = append(names, property)
		}
	}
	sort.Strings(names)
	return names, nil
}
