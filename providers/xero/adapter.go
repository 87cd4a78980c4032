package xero

import (
	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers"
)

const ProviderID = core.ProviderXero

func New() (core.Adapter, error) {
	return providers.NewMappedAdapter(providers.MappedAdapterConfig{
		ID: ProviderID,
		DefaultPaths: map[core.ObjectType]map[string]string{
			core.ObjectTypeVendor: {
				"id":               "ContactID",
				"remoteId":         "ContactID",
				"name":             "Name",
				"email":            "EmailAddress",
				"phone":            "Phone.PhoneNumber",
				"status":           "ContactStatus",
				"street":           "Address.AddressLine1",
				"city":             "Address.City",
				"state":            "Address.Region",
				"country":          "Address.Country",
				"zip":              "Address.PostalCode",
				"updatedTimestamp": "UpdatedDateUTC",
			},
		},
		RequiredFields: map[core.ObjectType][]string{
			core.ObjectTypeVendor: {"name"},
		},
	})
}
