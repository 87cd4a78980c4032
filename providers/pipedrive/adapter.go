package pipedrive

import (
	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderPipedrive

// New builds the pipedrive adapter. Pipedrive has no lead/contact split;
// both map onto persons, and deals carry their value as "value".
func New() (core.Adapter, error) {
	return providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID: ProviderID,
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeLead: {
				"id":               "id",
				"remoteId":         "id",
				"firstName":        "first_name",
				"lastName":         "last_name",
				"email":            "primary_email",
				"phone":            "phone",
				"createdTimestamp": "add_time",
				"updatedTimestamp": "update_time",
			},
			core.ObjectTypeContact: {
				"id":               "id",
				"remoteId":         "id",
				"firstName":        "first_name",
				"lastName":         "last_name",
				"email":            "primary_email",
				"phone":            "phone",
				"createdTimestamp": "add_time",
				"updatedTimestamp": "update_time",
			},
			core.ObjectTypeDeal: {
				"id":                "id",
				"remoteId":          "id",
				"name":              "title",
				"amount":            "value",
				"stage":             "stage_id",
				"priority":          "priority",
				"expectedCloseDate": "expected_close_date",
				"isWon":             "won_time",
				"probability":       "probability",
				"createdTimestamp":  "add_time",
				"updatedTimestamp":  "update_time",
			},
			core.ObjectTypeCompany: {
				"id":               "id",
				"remoteId":         "id",
				"name":             "name",
				"industry":         "industry",
				"description":      "description",
				"annualRevenue":    "annual_revenue",
				"size":             "people_count",
				"phone":            "phone",
				"street":           "address_street_number",
				"city":             "address_locality",
				"state":            "address_admin_area_level_1",
				"country":          "address_country",
				"zip":              "address_postal_code",
				"createdTimestamp": "add_time",
				"updatedTimestamp": "update_time",
			},
			core.ObjectTypeNote: {
				"id":               "id",
				"remoteId":         "id",
				"content":          "content",
				"createdTimestamp": "add_time",
				"updatedTimestamp": "update_time",
			},
			core.ObjectTypeTask: {
				"id":               "id",
				"remoteId":         "id",
				"subject":          "subject",
				"body":             "public_description",
				"priority":         "priority",
				"status":           "done",
				"dueDate":          "due_date",
				"createdTimestamp": "add_time",
				"updatedTimestamp": "update_time",
			},
		},
	})
}
