package quickbooks

import (
	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderQuickbooks

func New() (core.Adapter, error) {
	return providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID: ProviderID,
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeVendor: {
				"id":               "Id",
				"remoteId":         "Id",
				"name":             "DisplayName",
				"email":            "PrimaryEmailAddr.Address",
				"phone":            "PrimaryPhone.FreeFormNumber",
				"status":           "Active",
				"street":           "BillAddr.Line1",
				"city":             "BillAddr.City",
				"state":            "BillAddr.CountrySubDivisionCode",
				"country":          "BillAddr.Country",
				"zip":              "BillAddr.PostalCode",
				"createdTimestamp": "MetaData.CreateTime",
				"updatedTimestamp": "MetaData.LastUpdatedTime",
			},
		},
		RequiredFields: map[core.ObjectType][]string{
			core.ObjectTypeVendor: {"name"},
		},
	})
}
