package core

import (
	"context"
	"fmt"
)

// testAdapter is a minimal in-memory Adapter used across the core tests. It
// applies the effective mapping field by field with SetPath/LookupPath.
type testAdapter struct {
	id    ProviderID
	paths map[ObjectType]map[string]string
}

func (a *testAdapter) ProviderID() ProviderID {
	return a.id
}

func (a *testAdapter) SupportedObjectTypes() []ObjectType {
	types := make([]ObjectType, 0, len(a.paths))
	for objectType := range a.paths {
		types = append(types, objectType)
	}
	return types
}

func (a *testAdapter) DefaultPaths(objectType ObjectType) (map[string]string, bool) {
	paths, ok := a.paths[objectType]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(paths))
	for field, path := range paths {
		out[field] = path
	}
	return out, true
}

func (a *testAdapter) ToNative(_ context.Context, mapping EffectiveMapping, object CanonicalObject) (map[string]any, error) {
	native := map[string]any{}
	for field, value := range object.Fields {
		path, ok := mapping.PathFor(field)
		if !ok {
			return nil, fmt.Errorf("test adapter: no path for field %s", field)
		}
		if err := SetPath(native, path, value); err != nil {
			return nil, err
		}
	}
	return native, nil
}

func (a *testAdapter) FromNative(_ context.Context, mapping EffectiveMapping, native map[string]any) (CanonicalObject, error) {
	object := CanonicalObject{
		Fields:           map[string]any{},
		AdditionalFields: map[string]any{},
	}
	for _, field := range mapping.Fields() {
		path, _ := mapping.PathFor(field)
		if value, ok := LookupPath(native, path); ok {
			object.Fields[field] = value
		}
	}
	return object, nil
}

// transitioningTestAdapter additionally resolves workflow status labels, the
// way issue tracker adapters do.
type transitioningTestAdapter struct {
	testAdapter
}

func (a *transitioningTestAdapter) ResolveStatusTransition(_ context.Context, label string, options []StateOption) (StateOption, error) {
	option, ok := MatchStateOption(label, options)
	if !ok {
		return StateOption{}, NewStateResolutionError(label, a.id)
	}
	return option, nil
}

type staticStateLister struct {
	options []StateOption
	err     error
	calls   int
}

func (l *staticStateLister) ListStates(context.Context, ObjectType, string) ([]StateOption, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.options, nil
}
