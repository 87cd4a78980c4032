package unified

import (
	"context"
	"testing"

	gocmd "github.com/goliatone/go-command"
	unifiedcommand "github.com/goliatone/go-unified/command"
	"github.com/goliatone/go-unified/core"
	unifiedquery "github.com/goliatone/go-unified/query"
)

func TestNewFacadeRequiresService(t *testing.T) {
	if _, err := NewFacade(nil); err == nil {
		t.Fatal("expected a nil service to be rejected")
	}
}

func TestFacadeWiresCommandsAndQueries(t *testing.T) {
	service, err := NewService(Config{},
		WithConnectionStore(core.NewMemoryConnectionStore()),
		WithAppCredentialStore(core.NewMemoryAppCredentialStore()),
	)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if err := RegisterBuiltinAdapters(service); err != nil {
		t.Fatalf("RegisterBuiltinAdapters failed: %v", err)
	}

	facade, err := NewFacade(service)
	if err != nil {
		t.Fatalf("NewFacade failed: %v", err)
	}
	if facade.Service() == nil {
		t.Fatal("expected the wrapped service to be reachable")
	}

	commands := facade.Commands()
	queries := facade.Queries()

	collector := gocmd.NewResult[core.Connection]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)
	err = commands.UpsertConnection.Execute(ctx, unifiedcommand.UpsertConnectionMessage{
		Input: core.UpsertConnectionInput{
			TenantID:    "tenant-1",
			ProviderID:  core.ProviderHubspot,
			AccessToken: "at-1",
		},
	})
	if err != nil {
		t.Fatalf("upsert connection command failed: %v", err)
	}
	created, ok := collector.Load()
	if !ok || created.TenantID != "tenant-1" {
		t.Fatalf("expected the created connection as the result, got %#v", created)
	}

	key := core.ConnectionKey{TenantID: "tenant-1", ProviderID: core.ProviderHubspot}
	connection, err := queries.GetConnection.Query(context.Background(), unifiedquery.GetConnectionMessage{Key: key})
	if err != nil {
		t.Fatalf("get connection query failed: %v", err)
	}
	if connection.AccessToken != "at-1" {
		t.Fatalf("unexpected connection: %#v", connection)
	}

	connections, err := queries.ListConnections.Query(context.Background(), unifiedquery.ListConnectionsMessage{})
	if err != nil {
		t.Fatalf("list connections query failed: %v", err)
	}
	if len(connections) != 1 {
		t.Fatalf("expected one connection, got %d", len(connections))
	}

	object, err := core.NewCanonicalObject(core.NewSchemaRegistry(), core.ObjectTypeContact, map[string]any{
		"firstName": "Ada",
		"email":     "ada@example.com",
	})
	if err != nil {
		t.Fatalf("NewCanonicalObject failed: %v", err)
	}
	disunified, err := queries.Disunify.Query(context.Background(), unifiedquery.DisunifyMessage{
		Request: core.DisunifyRequest{
			TenantID:   "tenant-1",
			ObjectType: core.ObjectTypeContact,
			ProviderID: core.ProviderHubspot,
			Object:     object,
		},
	})
	if err != nil {
		t.Fatalf("disunify query failed: %v", err)
	}
	if got, _ := core.LookupPath(disunified.Native, "properties.firstname"); got != "Ada" {
		t.Fatalf("unexpected native payload: %#v", disunified.Native)
	}

	canonical, err := queries.Unify.Query(context.Background(), unifiedquery.UnifyMessage{
		Request: core.UnifyRequest{
			TenantID:   "tenant-1",
			ObjectType: core.ObjectTypeContact,
			ProviderID: core.ProviderHubspot,
			Native:     disunified.Native,
		},
	})
	if err != nil {
		t.Fatalf("unify query failed: %v", err)
	}
	if canonical.Object.Fields["email"] != "ada@example.com" {
		t.Fatalf("round trip lost email: %#v", canonical.Object.Fields)
	}

	issue, err := queries.Unify.Query(context.Background(), unifiedquery.UnifyMessage{
		Request: core.UnifyRequest{
			TenantID:   "tenant-1",
			ObjectType: core.ObjectTypeTicketTask,
			ProviderID: core.ProviderJira,
			Native: map[string]any{
				"fields": map[string]any{
					"summary": "Fix the login flow",
					"status":  map[string]any{"name": "In Progress"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("jira unify query failed: %v", err)
	}
	if issue.Object.Fields["status"] != "in_progress" {
		t.Fatalf("expected the canonical status, got %v", issue.Object.Fields["status"])
	}

	mapping, err := queries.EffectiveMapping.Query(context.Background(), unifiedquery.EffectiveMappingMessage{
		ObjectType: core.ObjectTypeContact,
		ProviderID: core.ProviderHubspot,
	})
	if err != nil {
		t.Fatalf("effective mapping query failed: %v", err)
	}
	if path, _ := mapping.PathFor("email"); path != "properties.email" {
		t.Fatalf("unexpected mapping: %#v", mapping)
	}

	if err := commands.DeleteConnection.Execute(context.Background(), unifiedcommand.DeleteConnectionMessage{Key: key}); err != nil {
		t.Fatalf("delete connection command failed: %v", err)
	}
	if _, err := queries.GetConnection.Query(context.Background(), unifiedquery.GetConnectionMessage{Key: key}); err == nil {
		t.Fatal("expected the deleted connection to be gone")
	}
}
