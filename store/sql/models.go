package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type connectionRecord struct {
	bun.BaseModel `bun:"table:unified_connections,alias:uc"`

	ID                string    `bun:"id,pk"`
	TenantID          string    `bun:"tenant_id,notnull,unique:uq_connection_tenant_provider"`
	ProviderID        string    `bun:"provider_id,notnull,unique:uq_connection_tenant_provider"`
	ExternalAccountID string    `bun:"external_account_id"`
	AccountURL        string    `bun:"account_url"`
	AppID             string    `bun:"app_id"`
	AccessToken       string    `bun:"access_token,notnull"`
	RefreshToken      string    `bun:"refresh_token"`
	Status            string    `bun:"status,notnull"`
	LastError         string    `bun:"last_error"`
	CreatedAt         time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt         time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type appCredentialRecord struct {
	bun.BaseModel `bun:"table:unified_app_credentials,alias:uac"`

	ID            string    `bun:"id,pk"`
	ProviderID    string    `bun:"provider_id,notnull,unique:uq_app_credential_provider_app"`
	AppID         string    `bun:"app_id,notnull,unique:uq_app_credential_provider_app"`
	ClientID      string    `bun:"client_id,notnull"`
	ClientSecret  string    `bun:"client_secret,notnull"`
	IsPlatformApp bool      `bun:"is_platform_app,notnull"`
	Scopes        []string  `bun:"scopes,type:jsonb"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type fieldMappingRecord struct {
	bun.BaseModel `bun:"table:unified_field_mappings,alias:ufm"`

	ID              string    `bun:"id,pk"`
	SchemaMappingID string    `bun:"schema_mapping_id,notnull,unique:uq_field_mapping_schema_object_field"`
	ObjectType      string    `bun:"object_type,notnull,unique:uq_field_mapping_schema_object_field"`
	CanonicalName   string    `bun:"canonical_name,notnull,unique:uq_field_mapping_schema_object_field"`
	ProviderPath    string    `bun:"provider_path,notnull"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
