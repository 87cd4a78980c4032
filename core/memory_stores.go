package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryConnectionStore keeps connections in process memory. It backs
// tests and single-node deployments without a database.
type MemoryConnectionStore struct {
	mu          sync.RWMutex
	connections map[ConnectionKey]Connection
	nowFn       func() time.Time
}

func NewMemoryConnectionStore() *MemoryConnectionStore {
	return &MemoryConnectionStore{
		connections: make(map[ConnectionKey]Connection),
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryConnectionStore) Upsert(_ context.Context, in UpsertConnectionInput) (Connection, error) {
	if s == nil {
		return Connection{}, fmt.Errorf("core: connection store is not configured")
	}
	key := ConnectionKey{
		TenantID:   strings.TrimSpace(in.TenantID),
		ProviderID: ProviderID(strings.TrimSpace(string(in.ProviderID))),
	}
	if err := key.Validate(); err != nil {
		return Connection{}, err
	}
	if strings.TrimSpace(in.AccessToken) == "" {
		return Connection{}, fmt.Errorf("core: access token is required")
	}

	now := s.nowFn()
	s.mu.Lock()
	defer s.mu.Unlock()

	connection, exists := s.connections[key]
	if !exists {
		connection = Connection{
			ID:         uuid.NewString(),
			TenantID:   key.TenantID,
			ProviderID: key.ProviderID,
			Status:     ConnectionStatusActive,
			CreatedAt:  now,
		}
	}
	connection.ExternalAccountID = strings.TrimSpace(in.ExternalAccountID)
	connection.AccountURL = strings.TrimSpace(in.AccountURL)
	connection.AppID = strings.TrimSpace(in.AppID)
	connection.AccessToken = strings.TrimSpace(in.AccessToken)
	connection.RefreshToken = strings.TrimSpace(in.RefreshToken)
	connection.Status = ConnectionStatusActive
	connection.LastError = ""
	connection.UpdatedAt = now

	s.connections[key] = connection
	return connection, nil
}

func (s *MemoryConnectionStore) Get(_ context.Context, key ConnectionKey) (Connection, error) {
	if s == nil {
		return Connection{}, fmt.Errorf("core: connection store is not configured")
	}
	if err := key.Validate(); err != nil {
		return Connection{}, err
	}
	s.mu.RLock()
	connection, ok := s.connections[key]
	s.mu.RUnlock()
	if !ok {
		return Connection{}, newUnifiedErrorNotFound("core: connection not found: " + key.String())
	}
	return connection, nil
}

func (s *MemoryConnectionStore) List(_ context.Context) ([]Connection, error) {
	if s == nil {
		return nil, fmt.Errorf("core: connection store is not configured")
	}
	s.mu.RLock()
	connections := make([]Connection, 0, len(s.connections))
	for _, connection := range s.connections {
		connections = append(connections, connection)
	}
	s.mu.RUnlock()
	sort.Slice(connections, func(i, j int) bool {
		return connections[i].Key().String() < connections[j].Key().String()
	})
	return connections, nil
}

func (s *MemoryConnectionStore) SaveTokens(_ context.Context, key ConnectionKey, accessToken, refreshToken string) (Connection, error) {
	if s == nil {
		return Connection{}, fmt.Errorf("core: connection store is not configured")
	}
	if err := key.Validate(); err != nil {
		return Connection{}, err
	}
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return Connection{}, fmt.Errorf("core: access token is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	connection, ok := s.connections[key]
	if !ok {
		return Connection{}, newUnifiedErrorNotFound("core: connection not found: " + key.String())
	}
	connection.AccessToken = accessToken
	if refreshToken = strings.TrimSpace(refreshToken); refreshToken != "" {
		connection.RefreshToken = refreshToken
	}
	connection.UpdatedAt = s.nowFn()
	s.connections[key] = connection
	return connection, nil
}

func (s *MemoryConnectionStore) UpdateStatus(_ context.Context, key ConnectionKey, status ConnectionStatus, reason string) error {
	if s == nil {
		return fmt.Errorf("core: connection store is not configured")
	}
	if err := key.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	connection, ok := s.connections[key]
	if !ok {
		return newUnifiedErrorNotFound("core: connection not found: " + key.String())
	}
	if err := connection.TransitionTo(status, reason, s.nowFn()); err != nil {
		return err
	}
	s.connections[key] = connection
	return nil
}

func (s *MemoryConnectionStore) Delete(_ context.Context, key ConnectionKey) error {
	if s == nil {
		return fmt.Errorf("core: connection store is not configured")
	}
	if err := key.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.connections, key)
	s.mu.Unlock()
	return nil
}

// MemoryAppCredentialStore keeps OAuth app clients in process memory.
type MemoryAppCredentialStore struct {
	mu          sync.RWMutex
	credentials map[string]AppCredential
}

func NewMemoryAppCredentialStore() *MemoryAppCredentialStore {
	return &MemoryAppCredentialStore{credentials: make(map[string]AppCredential)}
}

func appCredentialMapKey(providerID ProviderID, appID string) string {
	return string(providerID) + "::" + strings.TrimSpace(appID)
}

func (s *MemoryAppCredentialStore) Save(_ context.Context, cred AppCredential) (AppCredential, error) {
	if s == nil {
		return AppCredential{}, fmt.Errorf("core: app credential store is not configured")
	}
	if err := cred.ProviderID.Validate(); err != nil {
		return AppCredential{}, err
	}
	if strings.TrimSpace(cred.ClientID) == "" || strings.TrimSpace(cred.ClientSecret) == "" {
		return AppCredential{}, fmt.Errorf("core: app credential requires client id and secret")
	}
	if strings.TrimSpace(cred.ID) == "" {
		cred.ID = uuid.NewString()
	}
	s.mu.Lock()
	s.credentials[appCredentialMapKey(cred.ProviderID, cred.ID)] = cred
	s.mu.Unlock()
	return cred, nil
}

func (s *MemoryAppCredentialStore) Get(_ context.Context, providerID ProviderID, appID string) (AppCredential, error) {
	if s == nil {
		return AppCredential{}, fmt.Errorf("core: app credential store is not configured")
	}
	s.mu.RLock()
	cred, ok := s.credentials[appCredentialMapKey(providerID, appID)]
	s.mu.RUnlock()
	if !ok {
		return AppCredential{}, newUnifiedErrorNotFound(
			"core: app credential not found for provider " + string(providerID),
		)
	}
	return cred, nil
}

func (s *MemoryAppCredentialStore) GetPlatformDefault(_ context.Context, providerID ProviderID) (AppCredential, error) {
	if s == nil {
		return AppCredential{}, fmt.Errorf("core: app credential store is not configured")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cred := range s.credentials {
		if cred.ProviderID == providerID && cred.IsPlatformApp {
			return cred, nil
		}
	}
	return AppCredential{}, newUnifiedErrorNotFound(
		"core: platform app credential not found for provider " + string(providerID),
	)
}

// MemoryMappingStore keeps tenant field-mapping overrides in process
// memory.
type MemoryMappingStore struct {
	mu        sync.RWMutex
	overrides map[string]FieldMappingOverride
	nowFn     func() time.Time
}

func NewMemoryMappingStore() *MemoryMappingStore {
	return &MemoryMappingStore{
		overrides: make(map[string]FieldMappingOverride),
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

func overrideMapKey(schemaMappingID string, objectType ObjectType, canonicalName string) string {
	return strings.TrimSpace(schemaMappingID) + "::" + string(objectType) + "::" + strings.TrimSpace(canonicalName)
}

func (s *MemoryMappingStore) Save(_ context.Context, in SaveFieldMappingInput) (FieldMappingOverride, error) {
	if s == nil {
		return FieldMappingOverride{}, fmt.Errorf("core: mapping store is not configured")
	}
	if strings.TrimSpace(in.SchemaMappingID) == "" {
		return FieldMappingOverride{}, fmt.Errorf("core: schema mapping id is required")
	}
	if err := in.ObjectType.Validate(); err != nil {
		return FieldMappingOverride{}, err
	}
	if strings.TrimSpace(in.CanonicalName) == "" {
		return FieldMappingOverride{}, fmt.Errorf("core: canonical field name is required")
	}
	if strings.TrimSpace(in.ProviderPath) == "" {
		return FieldMappingOverride{}, fmt.Errorf("core: provider path is required")
	}

	now := s.nowFn()
	key := overrideMapKey(in.SchemaMappingID, in.ObjectType, in.CanonicalName)

	s.mu.Lock()
	defer s.mu.Unlock()
	override, exists := s.overrides[key]
	if !exists {
		override = FieldMappingOverride{
			SchemaMappingID: strings.TrimSpace(in.SchemaMappingID),
			ObjectType:      in.ObjectType,
			CanonicalName:   strings.TrimSpace(in.CanonicalName),
			CreatedAt:       now,
		}
	}
	override.ProviderPath = strings.TrimSpace(in.ProviderPath)
	override.UpdatedAt = now
	s.overrides[key] = override
	return override, nil
}

func (s *MemoryMappingStore) ListOverrides(_ context.Context, schemaMappingID string, objectType ObjectType) ([]FieldMappingOverride, error) {
	if s == nil {
		return nil, fmt.Errorf("core: mapping store is not configured")
	}
	schemaMappingID = strings.TrimSpace(schemaMappingID)
	s.mu.RLock()
	overrides := make([]FieldMappingOverride, 0)
	for _, override := range s.overrides {
		if override.SchemaMappingID == schemaMappingID && override.ObjectType == objectType {
			overrides = append(overrides, override)
		}
	}
	s.mu.RUnlock()
	sort.Slice(overrides, func(i, j int) bool {
		return overrides[i].CanonicalName < overrides[j].CanonicalName
	})
	return overrides, nil
}

func (s *MemoryMappingStore) Delete(_ context.Context, schemaMappingID string, objectType ObjectType, canonicalName string) error {
	if s == nil {
		return fmt.Errorf("core: mapping store is not configured")
	}
	s.mu.Lock()
	delete(s.overrides, overrideMapKey(schemaMappingID, objectType, canonicalName))
	s.mu.Unlock()
	return nil
}
