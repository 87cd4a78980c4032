package providers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-unified/core"
)

// MappedAdapterConfig declares a provider's native field layout per object
// type. Paths are dotted and may nest (hubspot keeps every property under
// "properties").
type MappedAdapterConfig struct {
	ID           core.ProviderID
	DefaultPaths map[core.ObjectType]map[string]string
	// WriteSkip lists canonical fields omitted from write payloads, for
	// providers that reject the field on create (jira status).
	WriteSkip map[core.ObjectType][]string
	// AdditionalFieldPrefix is the dotted prefix under which pass-through
	// fields land in the native payload. Empty means top level.
	AdditionalFieldPrefix string
	// RequiredFields lists canonical fields the provider rejects a write
	// without.
	RequiredFields map[core.ObjectType][]string
}

// MappedAdapter is the path-driven translation core shared by the builtin
// provider adapters. Subpackages wrap it with provider specifics.
type MappedAdapter struct {
	id          core.ProviderID
	paths       map[core.ObjectType]map[string]string
	writeSkip   map[core.ObjectType]map[string]struct{}
	required    map[core.ObjectType][]string
	extraPrefix string
}

func NewMappedAdapter(cfg MappedAdapterConfig) (*MappedAdapter, error) {
	id := core.ProviderID(strings.TrimSpace(string(cfg.ID)))
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.DefaultPaths) == 0 {
		return nil, fmt.Errorf("providers: adapter %s declares no object types", id)
	}

	paths := make(map[core.ObjectType]map[string]string, len(cfg.DefaultPaths))
	for objectType, fields := range cfg.DefaultPaths {
		if err := objectType.Validate(); err != nil {
			return nil, err
		}
		byField := make(map[string]string, len(fields))
		for field, path := range fields {
			field = strings.TrimSpace(field)
			path = strings.TrimSpace(path)
			if field == "" || path == "" {
				return nil, fmt.Errorf(
					"providers: adapter %s has an empty mapping entry for object type %s", id, objectType,
				)
			}
			byField[field] = path
		}
		paths[objectType] = byField
	}

	writeSkip := make(map[core.ObjectType]map[string]struct{}, len(cfg.WriteSkip))
	for objectType, fields := range cfg.WriteSkip {
		skip := make(map[string]struct{}, len(fields))
		for _, field := range fields {
			skip[strings.TrimSpace(field)] = struct{}{}
		}
		writeSkip[objectType] = skip
	}

	required := make(map[core.ObjectType][]string, len(cfg.RequiredFields))
	for objectType, fields := range cfg.RequiredFields {
		names := make([]string, 0, len(fields))
		for _, field := range fields {
			if field = strings.TrimSpace(field); field != "" {
				names = append(names, field)
			}
		}
		sort.Strings(names)
		required[objectType] = names
	}

	return &MappedAdapter{
		id:          id,
		paths:       paths,
		writeSkip:   writeSkip,
		required:    required,
		extraPrefix: strings.Trim(strings.TrimSpace(cfg.AdditionalFieldPrefix), "."),
	}, nil
}

func (a *MappedAdapter) ProviderID() core.ProviderID {
	if a == nil {
		return ""
	}
	return a.id
}

func (a *MappedAdapter) SupportedObjectTypes() []core.ObjectType {
	if a == nil {
		return nil
	}
	types := make([]core.ObjectType, 0, len(a.paths))
	for objectType := range a.paths {
		types = append(types, objectType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func (a *MappedAdapter) DefaultPaths(objectType core.ObjectType) (map[string]string, bool) {
	if a == nil {
		return nil, false
	}
	fields, ok := a.paths[objectType]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(fields))
	for field, path := range fields {
		out[field] = path
	}
	return out, true
}

func (a *MappedAdapter) ToNative(_ context.Context, mapping core.EffectiveMapping, object core.CanonicalObject) (map[string]any, error) {
	if a == nil {
		return nil, fmt.Errorf("providers: adapter is nil")
	}
	if _, ok := a.paths[mapping.ObjectType]; !ok {
		return nil, core.NewUnsupportedOperationError(mapping.ObjectType, a.id)
	}

	for _, field := range a.required[mapping.ObjectType] {
		if value, ok := object.Get(field); !ok || isEmptyValue(value) {
			return nil, core.NewUnsupportedFieldError(field, a.id)
		}
	}

	native := map[string]any{}
	skip := a.writeSkip[mapping.ObjectType]
	for _, field := range object.FieldNames() {
		if _, skipped := skip[field]; skipped {
			continue
		}
		path, ok := mapping.PathFor(field)
		if !ok {
			continue
		}
		value, _ := object.Get(field)
		if err := core.SetPath(native, path, value); err != nil {
			return nil, err
		}
	}

	extraKeys := make([]string, 0, len(object.AdditionalFields))
	for key := range object.AdditionalFields {
		extraKeys = append(extraKeys, key)
	}
	sort.Strings(extraKeys)
	for _, key := range extraKeys {
		target := key
		if a.extraPrefix != "" {
			target = a.extraPrefix + "." + key
		}
		if err := core.SetPath(native, target, object.AdditionalFields[key]); err != nil {
			return nil, err
		}
	}

	return native, nil
}

func (a *MappedAdapter) FromNative(_ context.Context, mapping core.EffectiveMapping, native map[string]any) (core.CanonicalObject, error) {
	if a == nil {
		return core.CanonicalObject{}, fmt.Errorf("providers: adapter is nil")
	}
	if _, ok := a.paths[mapping.ObjectType]; !ok {
		return core.CanonicalObject{}, core.NewUnsupportedOperationError(mapping.ObjectType, a.id)
	}

	object := core.CanonicalObject{
		Type:             mapping.ObjectType,
		Fields:           map[string]any{},
		AdditionalFields: map[string]any{},
	}
	for _, field := range mapping.Fields() {
		path, ok := mapping.PathFor(field)
		if !ok {
			continue
		}
		if value, found := core.LookupPath(native, path); found {
			object.Fields[field] = value
		}
	}
	return object, nil
}

func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text) == ""
	}
	return false
}

var _ core.Adapter = (*MappedAdapter)(nil)
