package core

import (
	"context"
	"fmt"
	"strings"
)

// TransformEngine turns canonical objects into provider-native payloads and
// back. It performs no provider IO: status resolution against live provider
// state only happens when the caller injects a StateLister on the request.
type TransformEngine struct {
	registry *AdapterRegistry
	schema   *SchemaRegistry
	resolver *MappingResolver
}

func NewTransformEngine(registry *AdapterRegistry, schema *SchemaRegistry, resolver *MappingResolver) (*TransformEngine, error) {
	if registry == nil {
		return nil, fmt.Errorf("core: adapter registry is required")
	}
	if schema == nil {
		return nil, fmt.Errorf("core: schema registry is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("core: mapping resolver is required")
	}
	return &TransformEngine{registry: registry, schema: schema, resolver: resolver}, nil
}

func (e *TransformEngine) Disunify(ctx context.Context, req DisunifyRequest) (DisunifyResult, error) {
	if e == nil {
		return DisunifyResult{}, fmt.Errorf("core: transform engine is not configured")
	}
	adapter, mapping, err := e.prepare(ctx, req.ObjectType, req.ProviderID, req.SchemaMappingID)
	if err != nil {
		return DisunifyResult{}, err
	}
	if req.Object.Type != req.ObjectType {
		return DisunifyResult{}, NewConfigError(fmt.Sprintf(
			"core: object type %s does not match requested type %s",
			req.Object.Type, req.ObjectType,
		))
	}
	for field := range req.Object.Fields {
		if !e.schema.Allows(req.ObjectType, field) {
			return DisunifyResult{}, NewConfigError(fmt.Sprintf(
				"core: field %q is not part of the %s schema", field, req.ObjectType,
			))
		}
	}

	native, err := adapter.ToNative(ctx, mapping, req.Object.Clone())
	if err != nil {
		return DisunifyResult{}, unifiedErrorMapper(err)
	}

	result := DisunifyResult{Native: native}

	transitioner, twoPhase := adapter.(StatusTransitionResolver)
	if !twoPhase {
		return result, nil
	}
	label := statusLabel(req.Object)
	if label == "" {
		return result, nil
	}

	transition := &PendingTransition{Label: label, ContainerID: strings.TrimSpace(req.ContainerID)}
	if req.States != nil {
		options, listErr := req.States.ListStates(ctx, req.ObjectType, transition.ContainerID)
		if listErr != nil {
			return DisunifyResult{}, unifiedErrorMapper(listErr)
		}
		resolved, resolveErr := transitioner.ResolveStatusTransition(ctx, label, options)
		if resolveErr != nil {
			return DisunifyResult{}, unifiedErrorMapper(resolveErr)
		}
		transition.Resolved = &resolved
	}
	result.Transition = transition
	return result, nil
}

func (e *TransformEngine) Unify(ctx context.Context, req UnifyRequest) (UnifyResult, error) {
	if e == nil {
		return UnifyResult{}, fmt.Errorf("core: transform engine is not configured")
	}
	adapter, mapping, err := e.prepare(ctx, req.ObjectType, req.ProviderID, req.SchemaMappingID)
	if err != nil {
		return UnifyResult{}, err
	}
	if req.Native == nil {
		return UnifyResult{}, NewConfigError("core: native payload is required")
	}

	object, err := adapter.FromNative(ctx, mapping, req.Native)
	if err != nil {
		return UnifyResult{}, unifiedErrorMapper(err)
	}
	object.Type = req.ObjectType
	if object.Fields == nil {
		object.Fields = map[string]any{}
	}
	if object.AdditionalFields == nil {
		object.AdditionalFields = map[string]any{}
	}
	for field := range object.Fields {
		if !e.schema.Allows(req.ObjectType, field) {
			return UnifyResult{}, NewUnsupportedFieldError(field, req.ProviderID)
		}
	}
	return UnifyResult{Object: object}, nil
}

func (e *TransformEngine) prepare(ctx context.Context, objectType ObjectType, providerID ProviderID, schemaMappingID string) (Adapter, EffectiveMapping, error) {
	if err := objectType.Validate(); err != nil {
		return nil, EffectiveMapping{}, unifiedErrorMapper(err)
	}
	if err := providerID.Validate(); err != nil {
		return nil, EffectiveMapping{}, unifiedErrorMapper(err)
	}
	adapter, ok := e.registry.Get(providerID)
	if !ok {
		return nil, EffectiveMapping{}, NewUnsupportedOperationError(objectType, providerID)
	}
	if !e.registry.Supports(providerID, objectType) {
		return nil, EffectiveMapping{}, NewUnsupportedOperationError(objectType, providerID)
	}
	mapping, err := e.resolver.Resolve(ctx, objectType, providerID, schemaMappingID)
	if err != nil {
		return nil, EffectiveMapping{}, err
	}
	return adapter, mapping, nil
}

func statusLabel(object CanonicalObject) string {
	value, ok := object.Get("status")
	if !ok {
		return ""
	}
	label, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(label)
}
