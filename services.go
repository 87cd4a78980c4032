package unified

import "github.com/goliatone/go-unified/core"

type Config = core.Config

type RefreshConfig = core.RefreshConfig

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies

type ObjectType = core.ObjectType
type ProviderID = core.ProviderID
type CanonicalObject = core.CanonicalObject
type Connection = core.Connection
type ConnectionKey = core.ConnectionKey
type AppCredential = core.AppCredential
type EffectiveMapping = core.EffectiveMapping
type FieldMappingOverride = core.FieldMappingOverride

type Adapter = core.Adapter
type AdapterRegistry = core.AdapterRegistry
type SchemaRegistry = core.SchemaRegistry
type ConnectionStore = core.ConnectionStore
type AppCredentialStore = core.AppCredentialStore
type MappingStore = core.MappingStore
type ConnectionLocker = core.ConnectionLocker
type RefreshBackoffScheduler = core.RefreshBackoffScheduler
type RefreshReport = core.RefreshReport
type TokenClient = core.TokenClient
type OAuthProfileResolver = core.OAuthProfileResolver
type StateLister = core.StateLister
type StateOption = core.StateOption

type DisunifyRequest = core.DisunifyRequest
type DisunifyResult = core.DisunifyResult
type UnifyRequest = core.UnifyRequest
type UnifyResult = core.UnifyResult
type UpsertConnectionInput = core.UpsertConnectionInput
type SaveFieldMappingInput = core.SaveFieldMappingInput

var (
	WithLogger                  = core.WithLogger
	WithLoggerProvider          = core.WithLoggerProvider
	WithMetricsRecorder         = core.WithMetricsRecorder
	WithErrorFactory            = core.WithErrorFactory
	WithErrorMapper             = core.WithErrorMapper
	WithPersistenceClient       = core.WithPersistenceClient
	WithRepositoryFactory       = core.WithRepositoryFactory
	WithConfigProvider          = core.WithConfigProvider
	WithOptionsResolver         = core.WithOptionsResolver
	WithConnectionLocker        = core.WithConnectionLocker
	WithRefreshBackoffScheduler = core.WithRefreshBackoffScheduler
	WithTokenClient             = core.WithTokenClient
	WithOAuthProfiles           = core.WithOAuthProfiles
	WithAdapterRegistry         = core.WithAdapterRegistry
	WithSchemaRegistry          = core.WithSchemaRegistry
	WithMappingCache            = core.WithMappingCache
	WithConnectionStore         = core.WithConnectionStore
	WithAppCredentialStore      = core.WithAppCredentialStore
	WithMappingStore            = core.WithMappingStore
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return core.Setup(cfg, opts...)
}
