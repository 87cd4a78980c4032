package zohocrm

import (
	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderZohoCRM

// New builds the zoho crm adapter. Zoho module fields are capitalized with
// underscores and sit at the record top level.
func New() (core.Adapter, error) {
	return providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID: ProviderID,
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeLead: {
				"id":               "id",
				"remoteId":         "id",
				"firstName":        "First_Name",
				"lastName":         "Last_Name",
				"email":            "Email",
				"phone":            "Phone",
				"createdTimestamp": "Created_Time",
				"updatedTimestamp": "Modified_Time",
			},
			core.ObjectTypeContact: {
				"id":               "id",
				"remoteId":         "id",
				"firstName":        "First_Name",
				"lastName":         "Last_Name",
				"email":            "Email",
				"phone":            "Phone",
				"createdTimestamp": "Created_Time",
				"updatedTimestamp": "Modified_Time",
			},
			core.ObjectTypeDeal: {
				"id":                "id",
				"remoteId":          "id",
				"name":              "Deal_Name",
				"amount":            "Amount",
				"stage":             "Stage",
				"priority":          "Priority",
				"expectedCloseDate": "Closing_Date",
				"isWon":             "Stage_Won",
				"probability":       "Probability",
				"createdTimestamp":  "Created_Time",
				"updatedTimestamp":  "Modified_Time",
			},
			core.ObjectTypeCompany: {
				"id":               "id",
				"remoteId":         "id",
				"name":             "Account_Name",
				"industry":         "Industry",
				"description":      "Description",
				"annualRevenue":    "Annual_Revenue",
				"size":             "Employees",
				"phone":            "Phone",
				"street":           "Billing_Street",
				"city":             "Billing_City",
				"state":            "Billing_State",
				"country":          "Billing_Country",
				"zip":              "Billing_Code",
				"createdTimestamp": "Created_Time",
				"updatedTimestamp": "Modified_Time",
			},
			core.ObjectTypeNote: {
				"id":               "id",
				"remoteId":         "id",
				"content":          "Note_Content",
				"createdTimestamp": "Created_Time",
				"updatedTimestamp": "Modified_Time",
			},
			core.ObjectTypeTask: {
				"id":               "id",
				"remoteId":         "id",
				"subject":          "Subject",
				"body":             "Description",
				"priority":         "Priority",
				"status":           "Status",
				"dueDate":          "Due_Date",
				"createdTimestamp": "Created_Time",
				"updatedTimestamp": "Modified_Time",
			},
		},
	})
}
