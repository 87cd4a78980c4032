package core

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const effectiveMappingCacheKeyPrefix = "go-unified::effective_mapping::v1"

// MappingResolver composes an adapter's default field paths with the
// tenant's persisted overrides into one EffectiveMapping. Resolved
// mappings are cached; writes to the override store invalidate
// write-through.
type MappingResolver struct {
	registry *AdapterRegistry
	schema   *SchemaRegistry
	store    MappingStore
	cache    repositorycache.CacheService
}

func NewMappingResolver(
	registry *AdapterRegistry,
	schema *SchemaRegistry,
	store MappingStore,
	cacheService repositorycache.CacheService,
) (*MappingResolver, error) {
	if registry == nil {
		return nil, fmt.Errorf("core: adapter registry is required")
	}
	if schema == nil {
		return nil, fmt.Errorf("core: schema registry is required")
	}
	if store == nil {
		return nil, fmt.Errorf("core: mapping store is required")
	}
	return &MappingResolver{
		registry: registry,
		schema:   schema,
		store:    store,
		cache:    cacheService,
	}, nil
}

// EffectiveMappingCacheKey returns the deterministic cache key contract for
// resolved mappings: go-unified::effective_mapping::v1::<provider>::<object_type>::<schema_mapping_id>
// with each segment URL-path escaped.
func EffectiveMappingCacheKey(providerID ProviderID, objectType ObjectType, schemaMappingID string) (string, error) {
	if err := providerID.Validate(); err != nil {
		return "", err
	}
	if err := objectType.Validate(); err != nil {
		return "", err
	}
	segments := []string{
		string(providerID),
		string(objectType),
		strings.TrimSpace(schemaMappingID),
	}
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(append([]string{effectiveMappingCacheKeyPrefix}, segments...), "::"), nil
}

func (r *MappingResolver) Resolve(ctx context.Context, objectType ObjectType, providerID ProviderID, schemaMappingID string) (EffectiveMapping, error) {
	if r == nil {
		return EffectiveMapping{}, fmt.Errorf("core: mapping resolver is not configured")
	}
	if err := objectType.Validate(); err != nil {
		return EffectiveMapping{}, unifiedErrorMapper(err)
	}
	if err := providerID.Validate(); err != nil {
		return EffectiveMapping{}, unifiedErrorMapper(err)
	}
	schemaMappingID = strings.TrimSpace(schemaMappingID)

	if r.cache == nil {
		return r.resolve(ctx, objectType, providerID, schemaMappingID)
	}

	cacheKey, err := EffectiveMappingCacheKey(providerID, objectType, schemaMappingID)
	if err != nil {
		return EffectiveMapping{}, err
	}
	mapping, err := repositorycache.GetOrFetch(ctx, r.cache, cacheKey, func(ctx context.Context) (EffectiveMapping, error) {
		resolved, resolveErr := r.resolve(ctx, objectType, providerID, schemaMappingID)
		if resolveErr != nil {
			return EffectiveMapping{}, resolveErr
		}
		return resolved, nil
	})
	if err != nil {
		return EffectiveMapping{}, err
	}
	return mapping.Clone(), nil
}

func (r *MappingResolver) resolve(ctx context.Context, objectType ObjectType, providerID ProviderID, schemaMappingID string) (EffectiveMapping, error) {
	adapter, ok := r.registry.Get(providerID)
	if !ok {
		return EffectiveMapping{}, NewUnsupportedOperationError(objectType, providerID)
	}
	defaults, ok := adapter.DefaultPaths(objectType)
	if !ok {
		return EffectiveMapping{}, NewUnsupportedOperationError(objectType, providerID)
	}

	paths := make(map[string]string, len(defaults))
	for field, path := range defaults {
		paths[field] = path
	}

	if schemaMappingID != "" {
		overrides, err := r.store.ListOverrides(ctx, schemaMappingID, objectType)
		if err != nil {
			return EffectiveMapping{}, err
		}
		for _, override := range overrides {
			field := strings.TrimSpace(override.CanonicalName)
			if field == "" {
				continue
			}
			if !r.schema.Allows(objectType, field) {
				return EffectiveMapping{}, NewUnsupportedFieldError(field, providerID)
			}
			paths[field] = strings.TrimSpace(override.ProviderPath)
		}
	}

	return EffectiveMapping{
		ObjectType:      objectType,
		ProviderID:      providerID,
		SchemaMappingID: schemaMappingID,
		Paths:           paths,
	}, nil
}

// Invalidate drops the cached mapping for every registered provider under
// one (schema mapping, object type) pair. Override writes call this so the
// next Resolve sees the new row.
func (r *MappingResolver) Invalidate(ctx context.Context, schemaMappingID string, objectType ObjectType) error {
	if r == nil || r.cache == nil {
		return nil
	}
	schemaMappingID = strings.TrimSpace(schemaMappingID)
	for _, adapter := range r.registry.List() {
		cacheKey, err := EffectiveMappingCacheKey(adapter.ProviderID(), objectType, schemaMappingID)
		if err != nil {
			return err
		}
		if err := r.cache.Delete(ctx, cacheKey); err != nil {
			return err
		}
	}
	return nil
}
