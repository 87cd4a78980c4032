package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

type Service struct {
	config                  Config
	logger                  Logger
	loggerProvider          LoggerProvider
	metricsRecorder         MetricsRecorder
	errorFactory            ErrorFactory
	errorMapper             ErrorMapper
	persistenceClient       any
	repositoryFactory       any
	configProvider          ConfigProvider
	optionsResolver         OptionsResolver
	connectionLocker        ConnectionLocker
	refreshBackoffScheduler RefreshBackoffScheduler
	tokenClient             TokenClient
	oauthProfiles           OAuthProfileResolver
	registry                *AdapterRegistry
	schema                  *SchemaRegistry
	resolver                *MappingResolver
	engine                  *TransformEngine
	connectionStore         ConnectionStore
	appCredentialStore      AppCredentialStore
	mappingStore            MappingStore
}

type ServiceDependencies struct {
	Logger             Logger
	LoggerProvider     LoggerProvider
	MetricsRecorder    MetricsRecorder
	ErrorFactory       ErrorFactory
	ErrorMapper        ErrorMapper
	PersistenceClient  any
	RepositoryFactory  any
	ConfigProvider     ConfigProvider
	OptionsResolver    OptionsResolver
	ConnectionLocker   ConnectionLocker
	RefreshScheduler   RefreshBackoffScheduler
	TokenClient        TokenClient
	OAuthProfiles      OAuthProfileResolver
	Registry           *AdapterRegistry
	Schema             *SchemaRegistry
	Resolver           *MappingResolver
	Engine             *TransformEngine
	ConnectionStore    ConnectionStore
	AppCredentialStore AppCredentialStore
	MappingStore       MappingStore
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("unified", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("unified"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.registry == nil {
		builder.registry = NewAdapterRegistry()
	}
	if builder.schema == nil {
		builder.schema = NewSchemaRegistry()
	}
	if builder.connectionLocker == nil {
		builder.connectionLocker = NewMemoryConnectionLocker()
	}
	if builder.refreshScheduler == nil {
		builder.refreshScheduler = ExponentialBackoffScheduler{
			Initial: defaultRefreshInitialBackoff,
			Max:     defaultRefreshMaxBackoff,
		}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if builder.repositoryFactory != nil &&
		(builder.connectionStore == nil || builder.appCredentialStore == nil || builder.mappingStore == nil) {
		var storeProvider StoreProvider
		if storeFactory, ok := builder.repositoryFactory.(RepositoryStoreFactory); ok {
			built, buildErr := storeFactory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			storeProvider = built
		} else if built, ok := builder.repositoryFactory.(StoreProvider); ok {
			storeProvider = built
		}
		if storeProvider != nil {
			if builder.connectionStore == nil {
				builder.connectionStore = storeProvider.ConnectionStore()
			}
			if builder.appCredentialStore == nil {
				builder.appCredentialStore = storeProvider.AppCredentialStore()
			}
			if builder.mappingStore == nil {
				builder.mappingStore = storeProvider.MappingStore()
			}
		}
	}
	if builder.mappingStore == nil {
		builder.mappingStore = NewMemoryMappingStore()
	}

	resolver, err := NewMappingResolver(builder.registry, builder.schema, builder.mappingStore, builder.mappingCache)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	engine, err := NewTransformEngine(builder.registry, builder.schema, resolver)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	return &Service{
		config:                  finalConfig,
		logger:                  logger,
		loggerProvider:          provider,
		metricsRecorder:         builder.metricsRecorder,
		errorFactory:            builder.errorFactory,
		errorMapper:             builder.errorMapper,
		persistenceClient:       builder.persistenceClient,
		repositoryFactory:       builder.repositoryFactory,
		configProvider:          builder.configProvider,
		optionsResolver:         builder.optionsResolver,
		connectionLocker:        builder.connectionLocker,
		refreshBackoffScheduler: builder.refreshScheduler,
		tokenClient:             builder.tokenClient,
		oauthProfiles:           builder.oauthProfiles,
		registry:                builder.registry,
		schema:                  builder.schema,
		resolver:                resolver,
		engine:                  engine,
		connectionStore:         builder.connectionStore,
		appCredentialStore:      builder.appCredentialStore,
		mappingStore:            builder.mappingStore,
	}, nil
}

func Setup(cfg Config, options ...Option) (*Service, error) {
	return NewService(cfg, options...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:             s.logger,
		LoggerProvider:     s.loggerProvider,
		MetricsRecorder:    s.metricsRecorder,
		ErrorFactory:       s.errorFactory,
		ErrorMapper:        s.errorMapper,
		PersistenceClient:  s.persistenceClient,
		RepositoryFactory:  s.repositoryFactory,
		ConfigProvider:     s.configProvider,
		OptionsResolver:    s.optionsResolver,
		ConnectionLocker:   s.connectionLocker,
		RefreshScheduler:   s.refreshBackoffScheduler,
		TokenClient:        s.tokenClient,
		OAuthProfiles:      s.oauthProfiles,
		Registry:           s.registry,
		Schema:             s.schema,
		Resolver:           s.resolver,
		Engine:             s.engine,
		ConnectionStore:    s.connectionStore,
		AppCredentialStore: s.appCredentialStore,
		MappingStore:       s.mappingStore,
	}
}

func (s *Service) RegisterAdapter(adapter Adapter) error {
	if s == nil || s.registry == nil {
		return fmt.Errorf("core: adapter registry unavailable")
	}
	return s.registry.Register(adapter)
}

func (s *Service) Disunify(ctx context.Context, req DisunifyRequest) (result DisunifyResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"provider_id": req.ProviderID,
		"object_type": req.ObjectType,
		"tenant_id":   req.TenantID,
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "disunify", err, fields)
	}()

	if s == nil || s.engine == nil {
		err = fmt.Errorf("core: transform engine is not configured")
		return DisunifyResult{}, err
	}
	result, err = s.engine.Disunify(ctx, req)
	if err != nil {
		err = s.mapError(err)
		return DisunifyResult{}, err
	}
	return result, nil
}

func (s *Service) Unify(ctx context.Context, req UnifyRequest) (result UnifyResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"provider_id": req.ProviderID,
		"object_type": req.ObjectType,
		"tenant_id":   req.TenantID,
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "unify", err, fields)
	}()

	if s == nil || s.engine == nil {
		err = fmt.Errorf("core: transform engine is not configured")
		return UnifyResult{}, err
	}
	result, err = s.engine.Unify(ctx, req)
	if err != nil {
		err = s.mapError(err)
		return UnifyResult{}, err
	}
	return result, nil
}

func (s *Service) EffectiveMappingFor(ctx context.Context, objectType ObjectType, providerID ProviderID, schemaMappingID string) (EffectiveMapping, error) {
	if s == nil || s.resolver == nil {
		return EffectiveMapping{}, fmt.Errorf("core: mapping resolver is not configured")
	}
	mapping, err := s.resolver.Resolve(ctx, objectType, providerID, schemaMappingID)
	if err != nil {
		return EffectiveMapping{}, s.mapError(err)
	}
	return mapping, nil
}

// SaveFieldMapping persists one tenant override and drops any cached
// mapping it affects.
func (s *Service) SaveFieldMapping(ctx context.Context, in SaveFieldMappingInput) (override FieldMappingOverride, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"object_type":       in.ObjectType,
		"canonical_name":    in.CanonicalName,
		"schema_mapping_id": in.SchemaMappingID,
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "save_field_mapping", err, fields)
	}()

	if s == nil || s.mappingStore == nil {
		err = fmt.Errorf("core: mapping store is not configured")
		return FieldMappingOverride{}, err
	}
	if err = in.ObjectType.Validate(); err != nil {
		err = s.mapError(err)
		return FieldMappingOverride{}, err
	}
	field := strings.TrimSpace(in.CanonicalName)
	if !s.schema.Allows(in.ObjectType, field) {
		err = NewConfigError(
			"core: field " + field + " is not canonical for object type " + string(in.ObjectType),
		)
		return FieldMappingOverride{}, err
	}

	override, err = s.mappingStore.Save(ctx, in)
	if err != nil {
		err = s.mapError(err)
		return FieldMappingOverride{}, err
	}
	if invalidateErr := s.resolver.Invalidate(ctx, in.SchemaMappingID, in.ObjectType); invalidateErr != nil {
		err = s.mapError(invalidateErr)
		return FieldMappingOverride{}, err
	}
	return override, nil
}

func (s *Service) DeleteFieldMapping(ctx context.Context, schemaMappingID string, objectType ObjectType, canonicalName string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"object_type":       objectType,
		"canonical_name":    canonicalName,
		"schema_mapping_id": schemaMappingID,
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "delete_field_mapping", err, fields)
	}()

	if s == nil || s.mappingStore == nil {
		err = fmt.Errorf("core: mapping store is not configured")
		return err
	}
	if err = objectType.Validate(); err != nil {
		err = s.mapError(err)
		return err
	}
	if err = s.mappingStore.Delete(ctx, schemaMappingID, objectType, canonicalName); err != nil {
		err = s.mapError(err)
		return err
	}
	if err = s.resolver.Invalidate(ctx, schemaMappingID, objectType); err != nil {
		err = s.mapError(err)
		return err
	}
	return nil
}

// UpsertConnection stores a tenant's provider connection, replacing tokens
// on an existing (tenant, provider) row.
func (s *Service) UpsertConnection(ctx context.Context, in UpsertConnectionInput) (connection Connection, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"tenant_id":   in.TenantID,
		"provider_id": in.ProviderID,
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "upsert_connection", err, fields)
	}()

	if s == nil || s.connectionStore == nil {
		err = fmt.Errorf("core: connection store is not configured")
		return Connection{}, err
	}
	connection, err = s.connectionStore.Upsert(ctx, in)
	if err != nil {
		err = s.mapError(err)
		return Connection{}, err
	}
	return connection, nil
}

func (s *Service) GetConnection(ctx context.Context, key ConnectionKey) (Connection, error) {
	if s == nil || s.connectionStore == nil {
		return Connection{}, fmt.Errorf("core: connection store is not configured")
	}
	connection, err := s.connectionStore.Get(ctx, key)
	if err != nil {
		return Connection{}, s.mapError(err)
	}
	return connection, nil
}

func (s *Service) ListConnections(ctx context.Context) ([]Connection, error) {
	if s == nil || s.connectionStore == nil {
		return nil, fmt.Errorf("core: connection store is not configured")
	}
	connections, err := s.connectionStore.List(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return connections, nil
}

func (s *Service) DeleteConnection(ctx context.Context, key ConnectionKey) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"tenant_id":   key.TenantID,
		"provider_id": key.ProviderID,
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "delete_connection", err, fields)
	}()

	if s == nil || s.connectionStore == nil {
		err = fmt.Errorf("core: connection store is not configured")
		return err
	}
	if err = s.connectionStore.Delete(ctx, key); err != nil {
		err = s.mapError(err)
		return err
	}
	return nil
}

func (s *Service) SaveAppCredential(ctx context.Context, cred AppCredential) (AppCredential, error) {
	if s == nil || s.appCredentialStore == nil {
		return AppCredential{}, fmt.Errorf("core: app credential store is not configured")
	}
	saved, err := s.appCredentialStore.Save(ctx, cred)
	if err != nil {
		return AppCredential{}, s.mapError(err)
	}
	return saved, nil
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

