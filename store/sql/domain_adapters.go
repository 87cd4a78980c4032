package sqlstore

import (
	"github.com/goliatone/go-unified/core"
)

func (r *connectionRecord) toDomain() core.Connection {
	if r == nil {
		return core.Connection{}
	}
	return core.Connection{
		ID:                r.ID,
		TenantID:          r.TenantID,
		ProviderID:        core.ProviderID(r.ProviderID),
		ExternalAccountID: r.ExternalAccountID,
		AccountURL:        r.AccountURL,
		AppID:             r.AppID,
		AccessToken:       r.AccessToken,
		RefreshToken:      r.RefreshToken,
		Status:            core.ConnectionStatus(r.Status),
		LastError:         r.LastError,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func (r *appCredentialRecord) toDomain() core.AppCredential {
	if r == nil {
		return core.AppCredential{}
	}
	return core.AppCredential{
		ID:            r.AppID,
		ProviderID:    core.ProviderID(r.ProviderID),
		ClientID:      r.ClientID,
		ClientSecret:  r.ClientSecret,
		IsPlatformApp: r.IsPlatformApp,
		Scopes:        append([]string(nil), r.Scopes...),
	}
}

func (r *fieldMappingRecord) toDomain() core.FieldMappingOverride {
	if r == nil {
		return core.FieldMappingOverride{}
	}
	return core.FieldMappingOverride{
		SchemaMappingID: r.SchemaMappingID,
		ObjectType:      core.ObjectType(r.ObjectType),
		CanonicalName:   r.CanonicalName,
		ProviderPath:    r.ProviderPath,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
