package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type AuthStyle string

const (
	// AuthStyleBody sends client_id and client_secret in the form body.
	AuthStyleBody AuthStyle = "body"
	// AuthStyleBasic sends the client pair as an HTTP Basic header.
	AuthStyleBasic AuthStyle = "basic"
)

// OAuthProfile describes how a provider's token endpoint behaves. TokenURL
// may carry an {account_url} placeholder resolved from the connection.
type OAuthProfile struct {
	ProviderID          ProviderID
	TokenURL            string
	AuthStyle           AuthStyle
	RotatesRefreshToken bool
}

type OAuthProfileResolver interface {
	Profile(providerID ProviderID) (OAuthProfile, bool)
}

type TokenRefreshRequest struct {
	Profile      OAuthProfile
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccountURL   string
	RedirectURI  string
}

type TokenRefreshResponse struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
	Raw          map[string]any
}

type TokenClient interface {
	Refresh(ctx context.Context, req TokenRefreshRequest) (TokenRefreshResponse, error)
}

// StateOption is one provider-side workflow state, as reported by the
// provider for a given object container.
type StateOption struct {
	ID    string
	Label string
}

// StateLister exposes provider workflow states for status resolution. The
// engine never performs provider IO itself; callers inject a lister when a
// write may need a post-create status transition.
type StateLister interface {
	ListStates(ctx context.Context, objectType ObjectType, containerID string) ([]StateOption, error)
}

// PendingTransition is returned by adapters whose providers cannot accept
// a status on create. Label is the canonical status the caller asked for.
type PendingTransition struct {
	Label       string
	ContainerID string
	Resolved    *StateOption
}

type DisunifyRequest struct {
	TenantID        string
	ObjectType      ObjectType
	ProviderID      ProviderID
	SchemaMappingID string
	Object          CanonicalObject
	States          StateLister
	ContainerID     string
}

type DisunifyResult struct {
	Native     map[string]any
	Transition *PendingTransition
}

type UnifyRequest struct {
	TenantID        string
	ObjectType      ObjectType
	ProviderID      ProviderID
	SchemaMappingID string
	Native          map[string]any
}

type UnifyResult struct {
	Object CanonicalObject
}

// Adapter translates between canonical objects and one provider's native
// shape for the object types it supports.
type Adapter interface {
	ProviderID() ProviderID
	SupportedObjectTypes() []ObjectType

	// DefaultPaths returns the provider-native path per canonical field for
	// the object type, or false when the object type is unsupported.
	DefaultPaths(objectType ObjectType) (map[string]string, bool)

	ToNative(ctx context.Context, mapping EffectiveMapping, object CanonicalObject) (map[string]any, error)
	FromNative(ctx context.Context, mapping EffectiveMapping, native map[string]any) (CanonicalObject, error)
}

// StatusTransitionResolver is implemented by adapters whose providers
// require a separate transition call after create to land on a status.
type StatusTransitionResolver interface {
	ResolveStatusTransition(ctx context.Context, label string, options []StateOption) (StateOption, error)
}

type UpsertConnectionInput struct {
	TenantID          string
	ProviderID        ProviderID
	ExternalAccountID string
	AccountURL        string
	AppID             string
	AccessToken       string
	RefreshToken      string
}

type ConnectionStore interface {
	Upsert(ctx context.Context, in UpsertConnectionInput) (Connection, error)
	Get(ctx context.Context, key ConnectionKey) (Connection, error)
	List(ctx context.Context) ([]Connection, error)
	SaveTokens(ctx context.Context, key ConnectionKey, accessToken, refreshToken string) (Connection, error)
	UpdateStatus(ctx context.Context, key ConnectionKey, status ConnectionStatus, reason string) error
	Delete(ctx context.Context, key ConnectionKey) error
}

type AppCredentialStore interface {
	Get(ctx context.Context, providerID ProviderID, appID string) (AppCredential, error)
	GetPlatformDefault(ctx context.Context, providerID ProviderID) (AppCredential, error)
	Save(ctx context.Context, cred AppCredential) (AppCredential, error)
}

type SaveFieldMappingInput struct {
	SchemaMappingID string
	ObjectType      ObjectType
	CanonicalName   string
	ProviderPath    string
}

type MappingStore interface {
	ListOverrides(ctx context.Context, schemaMappingID string, objectType ObjectType) ([]FieldMappingOverride, error)
	Save(ctx context.Context, in SaveFieldMappingInput) (FieldMappingOverride, error)
	Delete(ctx context.Context, schemaMappingID string, objectType ObjectType, canonicalName string) error
}

type StoreProvider interface {
	ConnectionStore() ConnectionStore
	AppCredentialStore() AppCredentialStore
	MappingStore() MappingStore
}

type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

// LockHandle releases a held connection lock. Unlock is idempotent.
type LockHandle interface {
	Unlock(ctx context.Context) error
}

type ConnectionLocker interface {
	Acquire(ctx context.Context, key ConnectionKey, ttl time.Duration) (LockHandle, error)
}

type RefreshBackoffScheduler interface {
	NextDelay(attempt int) time.Duration
}

type RefreshOutcome struct {
	Key    ConnectionKey
	Reason string
}

type RefreshReport struct {
	Succeeded []ConnectionKey
	Failed    []RefreshOutcome
	Skipped   []RefreshOutcome
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type JobExecutionMessage struct {
	JobID          string
	Parameters     map[string]any
	IdempotencyKey string
	DedupPolicy    string
}

type JobNackOptions struct {
	Delay      time.Duration
	Requeue    bool
	DeadLetter bool
	Reason     string
}

type JobEnqueuer interface {
	Enqueue(ctx context.Context, msg *JobExecutionMessage) error
}

type JobDelivery interface {
	Message() *JobExecutionMessage
	Ack(ctx context.Context) error
	Nack(ctx context.Context, opts JobNackOptions) error
}

type JobDequeuer interface {
	Dequeue(ctx context.Context) (JobDelivery, error)
}

type JobWorkerHook interface {
	OnStart(ctx context.Context, event JobWorkerEvent)
	OnSuccess(ctx context.Context, event JobWorkerEvent)
	OnFailure(ctx context.Context, event JobWorkerEvent)
	OnRetry(ctx context.Context, event JobWorkerEvent)
}

type JobWorkerEvent struct {
	Message   *JobExecutionMessage
	Attempt   int
	Delay     time.Duration
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}
