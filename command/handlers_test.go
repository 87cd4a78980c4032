package command

import (
	"context"
	"fmt"
	"testing"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-unified/core"
)

func TestUpsertConnectionCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected := core.Connection{ID: "conn-1", TenantID: "tenant-1", ProviderID: core.ProviderHubspot}
	called := false

	svc := stubMutatingService{
		upsertConnectionFn: func(_ context.Context, in core.UpsertConnectionInput) (core.Connection, error) {
			called = true
			if in.TenantID != "tenant-1" || in.ProviderID != core.ProviderHubspot {
				t.Fatalf("unexpected upsert input: %#v", in)
			}
			return expected, nil
		},
	}

	cmd := NewUpsertConnectionCommand(svc)
	collector := gocmd.NewResult[core.Connection]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, UpsertConnectionMessage{Input: core.UpsertConnectionInput{
		TenantID:    "tenant-1",
		ProviderID:  core.ProviderHubspot,
		AccessToken: "at-1",
	}})
	if err != nil {
		t.Fatalf("execute upsert connection: %v", err)
	}
	if !called {
		t.Fatalf("expected upsert invocation")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.ID != expected.ID {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestMutationCommands_DelegateToService(t *testing.T) {
	key := core.ConnectionKey{TenantID: "tenant-1", ProviderID: core.ProviderHubspot}

	t.Run("delete connection", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			deleteConnectionFn: func(_ context.Context, got core.ConnectionKey) error {
				called = true
				if got != key {
					t.Fatalf("unexpected key: %#v", got)
				}
				return nil
			},
		}
		cmd := NewDeleteConnectionCommand(svc)
		if err := cmd.Execute(context.Background(), DeleteConnectionMessage{Key: key}); err != nil {
			t.Fatalf("execute delete connection: %v", err)
		}
		if !called {
			t.Fatalf("expected delete invocation")
		}
	})

	t.Run("refresh connection", func(t *testing.T) {
		expected := core.Connection{ID: "conn-1", Status: core.ConnectionStatusActive}
		svc := stubMutatingService{
			refreshConnectionFn: func(_ context.Context, got core.ConnectionKey) (core.Connection, error) {
				if got != key {
					t.Fatalf("unexpected key: %#v", got)
				}
				return expected, nil
			},
		}
		cmd := NewRefreshConnectionCommand(svc)
		collector := gocmd.NewResult[core.Connection]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		if err := cmd.Execute(ctx, RefreshConnectionMessage{Key: key}); err != nil {
			t.Fatalf("execute refresh connection: %v", err)
		}
		stored, ok := collector.Load()
		if !ok {
			t.Fatalf("expected refresh result")
		}
		if stored.ID != expected.ID {
			t.Fatalf("unexpected result: %#v", stored)
		}
	})

	t.Run("refresh all", func(t *testing.T) {
		expected := core.RefreshReport{Succeeded: []core.ConnectionKey{key}}
		svc := stubMutatingService{
			refreshAllFn: func(_ context.Context) (core.RefreshReport, error) {
				return expected, nil
			},
		}
		cmd := NewRefreshAllCommand(svc)
		collector := gocmd.NewResult[core.RefreshReport]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		if err := cmd.Execute(ctx, RefreshAllMessage{}); err != nil {
			t.Fatalf("execute refresh all: %v", err)
		}
		stored, ok := collector.Load()
		if !ok {
			t.Fatalf("expected refresh report")
		}
		if len(stored.Succeeded) != 1 {
			t.Fatalf("unexpected report: %#v", stored)
		}
	})

	t.Run("save app credential", func(t *testing.T) {
		expected := core.AppCredential{ID: "app-1", ProviderID: core.ProviderHubspot}
		svc := stubMutatingService{
			saveAppCredentialFn: func(_ context.Context, cred core.AppCredential) (core.AppCredential, error) {
				if cred.ClientID != "cid" {
					t.Fatalf("unexpected credential: %#v", cred)
				}
				return expected, nil
			},
		}
		cmd := NewSaveAppCredentialCommand(svc)
		collector := gocmd.NewResult[core.AppCredential]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		err := cmd.Execute(ctx, SaveAppCredentialMessage{Credential: core.AppCredential{
			ProviderID:   core.ProviderHubspot,
			ClientID:     "cid",
			ClientSecret: "secret",
		}})
		if err != nil {
			t.Fatalf("execute save app credential: %v", err)
		}
		stored, ok := collector.Load()
		if !ok {
			t.Fatalf("expected credential result")
		}
		if stored.ID != expected.ID {
			t.Fatalf("unexpected result: %#v", stored)
		}
	})

	t.Run("save field mapping", func(t *testing.T) {
		expected := core.FieldMappingOverride{
			SchemaMappingID: "schema-1",
			ObjectType:      core.ObjectTypeContact,
			CanonicalName:   "email",
			ProviderPath:    "properties.work_email",
		}
		svc := stubMutatingService{
			saveFieldMappingFn: func(_ context.Context, in core.SaveFieldMappingInput) (core.FieldMappingOverride, error) {
				if in.CanonicalName != "email" {
					t.Fatalf("unexpected input: %#v", in)
				}
				return expected, nil
			},
		}
		cmd := NewSaveFieldMappingCommand(svc)
		collector := gocmd.NewResult[core.FieldMappingOverride]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		err := cmd.Execute(ctx, SaveFieldMappingMessage{Input: core.SaveFieldMappingInput{
			SchemaMappingID: "schema-1",
			ObjectType:      core.ObjectTypeContact,
			CanonicalName:   "email",
			ProviderPath:    "properties.work_email",
		}})
		if err != nil {
			t.Fatalf("execute save field mapping: %v", err)
		}
		stored, ok := collector.Load()
		if !ok {
			t.Fatalf("expected override result")
		}
		if stored.ProviderPath != expected.ProviderPath {
			t.Fatalf("unexpected result: %#v", stored)
		}
	})

	t.Run("delete field mapping", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			deleteFieldMappingFn: func(_ context.Context, schemaMappingID string, objectType core.ObjectType, canonicalName string) error {
				called = true
				if schemaMappingID != "schema-1" || objectType != core.ObjectTypeContact || canonicalName != "email" {
					t.Fatalf("unexpected delete payload: %q %q %q", schemaMappingID, objectType, canonicalName)
				}
				return nil
			},
		}
		cmd := NewDeleteFieldMappingCommand(svc)
		err := cmd.Execute(context.Background(), DeleteFieldMappingMessage{
			SchemaMappingID: "schema-1",
			ObjectType:      core.ObjectTypeContact,
			CanonicalName:   "email",
		})
		if err != nil {
			t.Fatalf("execute delete field mapping: %v", err)
		}
		if !called {
			t.Fatalf("expected delete invocation")
		}
	})
}

func TestCommands_PropagateServiceErrors(t *testing.T) {
	boom := fmt.Errorf("store unavailable")
	svc := stubMutatingService{
		refreshAllFn: func(_ context.Context) (core.RefreshReport, error) {
			return core.RefreshReport{}, boom
		},
	}
	cmd := NewRefreshAllCommand(svc)
	if err := cmd.Execute(context.Background(), RefreshAllMessage{}); err == nil {
		t.Fatalf("expected service error to propagate")
	}
}

type stubMutatingService struct {
	upsertConnectionFn   func(ctx context.Context, in core.UpsertConnectionInput) (core.Connection, error)
	deleteConnectionFn   func(ctx context.Context, key core.ConnectionKey) error
	refreshConnectionFn  func(ctx context.Context, key core.ConnectionKey) (core.Connection, error)
	refreshAllFn         func(ctx context.Context) (core.RefreshReport, error)
	saveAppCredentialFn  func(ctx context.Context, cred core.AppCredential) (core.AppCredential, error)
	saveFieldMappingFn   func(ctx context.Context, in core.SaveFieldMappingInput) (core.FieldMappingOverride, error)
	deleteFieldMappingFn func(ctx context.Context, schemaMappingID string, objectType core.ObjectType, canonicalName string) error
}

func (s stubMutatingService) UpsertConnection(ctx context.Context, in core.UpsertConnectionInput) (core.Connection, error) {
	if s.upsertConnectionFn == nil {
		return core.Connection{}, fmt.Errorf("upsert connection not configured")
	}
	return s.upsertConnectionFn(ctx, in)
}

func (s stubMutatingService) DeleteConnection(ctx context.Context, key core.ConnectionKey) error {
	if s.deleteConnectionFn == nil {
		return fmt.Errorf("delete connection not configured")
	}
	return s.deleteConnectionFn(ctx, key)
}

func (s stubMutatingService) RefreshConnection(ctx context.Context, key core.ConnectionKey) (core.Connection, error) {
	if s.refreshConnectionFn == nil {
		return core.Connection{}, fmt.Errorf("refresh connection not configured")
	}
	return s.refreshConnectionFn(ctx, key)
}

func (s stubMutatingService) RefreshAll(ctx context.Context) (core.RefreshReport, error) {
	if s.refreshAllFn == nil {
		return core.RefreshReport{}, fmt.Errorf("refresh all not configured")
	}
	return s.refreshAllFn(ctx)
}

func (s stubMutatingService) SaveAppCredential(ctx context.Context, cred core.AppCredential) (core.AppCredential, error) {
	if s.saveAppCredentialFn == nil {
		return core.AppCredential{}, fmt.Errorf("save app credential not configured")
	}
	return s.saveAppCredentialFn(ctx, cred)
}

func (s stubMutatingService) SaveFieldMapping(ctx context.Context, in core.SaveFieldMappingInput) (core.FieldMappingOverride, error) {
	if s.saveFieldMappingFn == nil {
		return core.FieldMappingOverride{}, fmt.Errorf("save field mapping not configured")
	}
	return s.saveFieldMappingFn(ctx, in)
}

func (s stubMutatingService) DeleteFieldMapping(ctx context.Context, schemaMappingID string, objectType core.ObjectType, canonicalName string) error {
	if s.deleteFieldMappingFn == nil {
		return fmt.Errorf("delete field mapping not configured")
	}
	return s.deleteFieldMappingFn(ctx, schemaMappingID, objectType, canonicalName)
}

var _ MutatingService = stubMutatingService{}
