package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidObjectType                 = errors.New("core: invalid object type")
	ErrInvalidProviderID                 = errors.New("core: invalid provider id")
	ErrInvalidConnectionStatusTransition = errors.New("core: invalid connection status transition")
)

type ObjectType string

const (
	ObjectTypeLead       ObjectType = "lead"
	ObjectTypeContact    ObjectType = "contact"
	ObjectTypeDeal       ObjectType = "deal"
	ObjectTypeCompany    ObjectType = "company"
	ObjectTypeNote       ObjectType = "note"
	ObjectTypeTask       ObjectType = "task"
	ObjectTypeTicketTask ObjectType = "ticketTask"
	ObjectTypeMessage    ObjectType = "message"
	ObjectTypeChannel    ObjectType = "channel"
	ObjectTypeVendor     ObjectType = "vendor"
)

func KnownObjectTypes() []ObjectType {
	return []ObjectType{
		ObjectTypeLead,
		ObjectTypeContact,
		ObjectTypeDeal,
		ObjectTypeCompany,
		ObjectTypeNote,
		ObjectTypeTask,
		ObjectTypeTicketTask,
		ObjectTypeMessage,
		ObjectTypeChannel,
		ObjectTypeVendor,
	}
}

func (t ObjectType) Validate() error {
	for _, known := range KnownObjectTypes() {
		if t == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidObjectType, t)
}

type ProviderID string

const (
	ProviderHubspot    ProviderID = "hubspot"
	ProviderZohoCRM    ProviderID = "zohocrm"
	ProviderSFDC       ProviderID = "sfdc"
	ProviderPipedrive  ProviderID = "pipedrive"
	ProviderCloseCRM   ProviderID = "closecrm"
	ProviderJira       ProviderID = "jira"
	ProviderLinear     ProviderID = "linear"
	ProviderClickup    ProviderID = "clickup"
	ProviderTrello     ProviderID = "trello"
	ProviderBitbucket  ProviderID = "bitbucket"
	ProviderSlack      ProviderID = "slack"
	ProviderDiscord    ProviderID = "discord"
	ProviderQuickbooks ProviderID = "quickbooks"
	ProviderXero       ProviderID = "xero"
)

func KnownProviders() []ProviderID {
	return []ProviderID{
		ProviderHubspot,
		ProviderZohoCRM,
		ProviderSFDC,
		ProviderPipedrive,
		ProviderCloseCRM,
		ProviderJira,
		ProviderLinear,
		ProviderClickup,
		ProviderTrello,
		ProviderBitbucket,
		ProviderSlack,
		ProviderDiscord,
		ProviderQuickbooks,
		ProviderXero,
	}
}

func (p ProviderID) Validate() error {
	for _, known := range KnownProviders() {
		if p == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidProviderID, p)
}

// AdditionalFieldsKey is the reserved bucket for provider-exclusive
// attributes that are not part of the canonical field set.
const AdditionalFieldsKey = "additionalFields"

// CanonicalObject is the provider-neutral representation of a business
// entity. Every entry in Fields must be a legal canonical field for the
// object type; provider-exclusive attributes travel in AdditionalFields.
type CanonicalObject struct {
	Type             ObjectType
	Fields           map[string]any
	AdditionalFields map[string]any
}

func (o CanonicalObject) Get(field string) (any, bool) {
	value, ok := o.Fields[field]
	return value, ok
}

func (o CanonicalObject) FieldNames() []string {
	names := make([]string, 0, len(o.Fields))
	for name := range o.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (o CanonicalObject) Clone() CanonicalObject {
	return CanonicalObject{
		Type:             o.Type,
		Fields:           cloneFields(o.Fields),
		AdditionalFields: cloneFields(o.AdditionalFields),
	}
}

type ConnectionStatus string

const (
	ConnectionStatusActive     ConnectionStatus = "active"
	ConnectionStatusRefreshing ConnectionStatus = "refreshing"
	ConnectionStatusFailed     ConnectionStatus = "failed"
)

// ConnectionKey identifies the single active connection for one
// tenant/provider pair.
type ConnectionKey struct {
	TenantID   string
	ProviderID ProviderID
}

func (k ConnectionKey) String() string {
	return strings.TrimSpace(k.TenantID) + "::" + strings.TrimSpace(string(k.ProviderID))
}

func (k ConnectionKey) Validate() error {
	if strings.TrimSpace(k.TenantID) == "" {
		return fmt.Errorf("core: tenant id is required")
	}
	return k.ProviderID.Validate()
}

type Connection struct {
	ID                string
	TenantID          string
	ProviderID        ProviderID
	ExternalAccountID string
	AccountURL        string
	AppID             string
	AccessToken       string
	RefreshToken      string
	Status            ConnectionStatus
	LastError         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (c Connection) Key() ConnectionKey {
	return ConnectionKey{TenantID: c.TenantID, ProviderID: c.ProviderID}
}

func (c Connection) HasRefreshToken() bool {
	return strings.TrimSpace(c.RefreshToken) != ""
}

func (c *Connection) TransitionTo(status ConnectionStatus, reason string, now time.Time) error {
	if c == nil {
		return nil
	}
	if c.Status == status {
		c.UpdatedAt = now
		if strings.TrimSpace(reason) != "" {
			c.LastError = strings.TrimSpace(reason)
		}
		return nil
	}
	if !connectionTransitionAllowed(c.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidConnectionStatusTransition, c.Status, status)
	}
	c.Status = status
	c.UpdatedAt = now
	if strings.TrimSpace(reason) != "" {
		c.LastError = strings.TrimSpace(reason)
	}
	if status == ConnectionStatusActive {
		c.LastError = ""
	}
	return nil
}

func connectionTransitionAllowed(current, next ConnectionStatus) bool {
	allowed := map[ConnectionStatus]map[ConnectionStatus]struct{}{
		ConnectionStatusActive: {
			ConnectionStatusRefreshing: {},
		},
		ConnectionStatusRefreshing: {
			ConnectionStatusActive: {},
			ConnectionStatusFailed: {},
		},
		ConnectionStatusFailed: {
			ConnectionStatusRefreshing: {},
			ConnectionStatusActive:     {},
		},
	}
	_, ok := allowed[current][next]
	return ok
}

// AppCredential carries the OAuth client credentials registered for one
// provider app. Platform apps fall back to the credentials configured at
// the service level.
type AppCredential struct {
	ID            string
	ProviderID    ProviderID
	ClientID      string
	ClientSecret  string
	IsPlatformApp bool
	Scopes        []string
}

// FieldMappingOverride masks the provider default path for exactly one
// (object type, canonical field) pair within a tenant schema mapping.
type FieldMappingOverride struct {
	SchemaMappingID string
	ObjectType      ObjectType
	CanonicalName   string
	ProviderPath    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveMapping is the merged, total canonical-field to provider-path
// mapping used by adapters for one transform call.
type EffectiveMapping struct {
	ObjectType      ObjectType
	ProviderID      ProviderID
	SchemaMappingID string
	Paths           map[string]string
}

func (m EffectiveMapping) PathFor(field string) (string, bool) {
	path, ok := m.Paths[field]
	return path, ok
}

func (m EffectiveMapping) Fields() []string {
	fields := make([]string, 0, len(m.Paths))
	for field := range m.Paths {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (m EffectiveMapping) Clone() EffectiveMapping {
	paths := make(map[string]string, len(m.Paths))
	for field, path := range m.Paths {
		paths[field] = path
	}
	return EffectiveMapping{
		ObjectType:      m.ObjectType,
		ProviderID:      m.ProviderID,
		SchemaMappingID: m.SchemaMappingID,
		Paths:           paths,
	}
}

func cloneFields(input map[string]any) map[string]any {
	if len(input) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
