package core

import "sort"

// SchemaRegistry is the static lookup of canonical field names per object
// type. It is the single source of truth for what a CanonicalObject may
// carry and for which fields a tenant override may target.
type SchemaRegistry struct {
	fields map[ObjectType][]string
	index  map[ObjectType]map[string]struct{}
}

func NewSchemaRegistry() *SchemaRegistry {
	fields := map[ObjectType][]string{
		ObjectTypeLead: {
			"id", "remoteId", "firstName", "lastName", "email", "phone",
			"createdTimestamp", "updatedTimestamp",
		},
		ObjectTypeContact: {
			"id", "remoteId", "firstName", "lastName", "email", "phone",
			"createdTimestamp", "updatedTimestamp",
		},
		ObjectTypeDeal: {
			"id", "remoteId", "name", "amount", "stage", "priority",
			"expectedCloseDate", "isWon", "probability",
			"createdTimestamp", "updatedTimestamp",
		},
		ObjectTypeCompany: {
			"id", "remoteId", "name", "industry", "description",
			"annualRevenue", "size", "phone", "street", "city", "state",
			"country", "zip", "createdTimestamp", "updatedTimestamp",
		},
		ObjectTypeNote: {
			"id", "remoteId", "content", "createdTimestamp", "updatedTimestamp",
		},
		ObjectTypeTask: {
			"id", "remoteId", "subject", "body", "priority", "status",
			"dueDate", "createdTimestamp", "updatedTimestamp",
		},
		ObjectTypeTicketTask: {
			"id", "remoteId", "name", "description", "status", "priority",
			"assignees", "creatorId", "dueDate", "completedDate", "parentId",
			"issueTypeId", "createdTimestamp", "updatedTimestamp",
		},
		ObjectTypeMessage: {
			"id", "text", "channelId", "createdTimestamp",
		},
		ObjectTypeChannel: {
			"id", "name", "createdTimestamp",
		},
		ObjectTypeVendor: {
			"id", "remoteId", "name", "email", "phone", "status", "street",
			"city", "state", "country", "zip",
			"createdTimestamp", "updatedTimestamp",
		},
	}

	index := make(map[ObjectType]map[string]struct{}, len(fields))
	for objectType, names := range fields {
		byName := make(map[string]struct{}, len(names))
		for _, name := range names {
			byName[name] = struct{}{}
		}
		index[objectType] = byName
	}

	return &SchemaRegistry{fields: fields, index: index}
}

// FieldsFor returns the canonical field names for the object type, sorted.
func (r *SchemaRegistry) FieldsFor(objectType ObjectType) ([]string, error) {
	if r == nil {
		return nil, NewConfigError("core: schema registry is not configured")
	}
	if err := objectType.Validate(); err != nil {
		return nil, unifiedErrorMapper(err)
	}
	names, ok := r.fields[objectType]
	if !ok {
		return nil, NewConfigError("core: object type " + string(objectType) + " has no canonical schema")
	}
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out, nil
}

// Allows reports whether field is a legal canonical field for objectType.
func (r *SchemaRegistry) Allows(objectType ObjectType, field string) bool {
	if r == nil {
		return false
	}
	byName, ok := r.index[objectType]
	if !ok {
		return false
	}
	_, ok = byName[field]
	return ok
}

func (r *SchemaRegistry) ObjectTypes() []ObjectType {
	if r == nil {
		return nil
	}
	types := make([]ObjectType, 0, len(r.fields))
	for objectType := range r.fields {
		types = append(types, objectType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// NewCanonicalObject validates fields against the registry and splits off
// the reserved additionalFields bucket. Unknown fields outside the bucket
// are rejected.
func NewCanonicalObject(registry *SchemaRegistry, objectType ObjectType, fields map[string]any) (CanonicalObject, error) {
	if registry == nil {
		return CanonicalObject{}, NewConfigError("core: schema registry is required")
	}
	if err := objectType.Validate(); err != nil {
		return CanonicalObject{}, unifiedErrorMapper(err)
	}

	object := CanonicalObject{
		Type:             objectType,
		Fields:           make(map[string]any, len(fields)),
		AdditionalFields: map[string]any{},
	}
	for name, value := range fields {
		if name == AdditionalFieldsKey {
			extra, ok := value.(map[string]any)
			if !ok {
				return CanonicalObject{}, NewConfigError("core: additionalFields must be an object")
			}
			object.AdditionalFields = cloneFields(extra)
			continue
		}
		if !registry.Allows(objectType, name) {
			return CanonicalObject{}, NewConfigError(
				"core: field " + name + " is not canonical for object type " + string(objectType),
			)
		}
		object.Fields[name] = value
	}
	return object, nil
}
