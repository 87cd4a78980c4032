package sfdc

import (
	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderSFDC

// New builds the salesforce adapter over the standard sObject field names.
func New() (core.Adapter, error) {
	return providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID: ProviderID,
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeLead: {
				"id":               "Id",
				"remoteId":         "Id",
				"firstName":        "FirstName",
				"lastName":         "LastName",
				"email":            "Email",
				"phone":            "Phone",
				"createdTimestamp": "CreatedDate",
				"updatedTimestamp": "LastModifiedDate",
			},
			core.ObjectTypeContact: {
				"id":               "Id",
				"remoteId":         "Id",
				"firstName":        "FirstName",
				"lastName":         "LastName",
				"email":            "Email",
				"phone":            "Phone",
				"createdTimestamp": "CreatedDate",
				"updatedTimestamp": "LastModifiedDate",
			},
			core.ObjectTypeDeal: {
				"id":                "Id",
				"remoteId":          "Id",
				"name":              "Name",
				"amount":            "Amount",
				"stage":             "StageName",
				"priority":          "Priority__c",
				"expectedCloseDate": "CloseDate",
				"isWon":             "IsWon",
				"probability":       "Probability",
				"createdTimestamp":  "CreatedDate",
				"updatedTimestamp":  "LastModifiedDate",
			},
			core.ObjectTypeCompany: {
				"id":               "Id",
				"remoteId":         "Id",
				"name":             "Name",
				"industry":         "Industry",
				"description":      "Description",
				"annualRevenue":    "AnnualRevenue",
				"size":             "NumberOfEmployees",
				"phone":            "Phone",
				"street":           "BillingStreet",
				"city":             "BillingCity",
				"state":            "BillingState",
				"country":          "BillingCountry",
				"zip":              "BillingPostalCode",
				"createdTimestamp": "CreatedDate",
				"updatedTimestamp": "LastModifiedDate",
			},
			core.ObjectTypeNote: {
				"id":               "Id",
				"remoteId":         "Id",
				"content":          "Body",
				"createdTimestamp": "CreatedDate",
				"updatedTimestamp": "LastModifiedDate",
			},
			core.ObjectTypeTask: {
				"id":               "Id",
				"remoteId":         "Id",
				"subject":          "Subject",
				"body":             "Description",
				"priority":         "Priority",
				"status":           "Status",
				"dueDate":          "ActivityDate",
				"createdTimestamp": "CreatedDate",
				"updatedTimestamp": "LastModifiedDate",
			},
		},
	})
}
