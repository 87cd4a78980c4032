package unified

import (
	"testing"

	"github.com/goliatone/go-unified/core"
)

func TestBuiltinAdaptersCoverKnownProviders(t *testing.T) {
	adapters, err := BuiltinAdapters()
	if err != nil {
		t.Fatalf("BuiltinAdapters failed: %v", err)
	}

	byProvider := map[core.ProviderID]core.Adapter{}
	for _, adapter := range adapters {
		id := adapter.ProviderID()
		if _, dup := byProvider[id]; dup {
			t.Fatalf("duplicate adapter for provider %s", id)
		}
		byProvider[id] = adapter
	}

	// closecrm is in the provider id set but ships without an adapter;
	// transforms for it fail with an unsupported-operation error.
	for _, providerID := range core.KnownProviders() {
		if providerID == core.ProviderCloseCRM {
			if _, ok := byProvider[providerID]; ok {
				t.Fatalf("closecrm should not have a builtin adapter")
			}
			continue
		}
		if _, ok := byProvider[providerID]; !ok {
			t.Fatalf("missing builtin adapter for provider %s", providerID)
		}
	}

	for id, adapter := range byProvider {
		types := adapter.SupportedObjectTypes()
		if len(types) == 0 {
			t.Fatalf("adapter %s declares no object types", id)
		}
		for _, objectType := range types {
			paths, ok := adapter.DefaultPaths(objectType)
			if !ok || len(paths) == 0 {
				t.Fatalf("adapter %s has no default paths for %s", id, objectType)
			}
		}
	}
}

func TestRegisterBuiltinAdapters(t *testing.T) {
	service, err := NewService(Config{})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if err := RegisterBuiltinAdapters(service); err != nil {
		t.Fatalf("RegisterBuiltinAdapters failed: %v", err)
	}

	registry := service.Dependencies().Registry
	if registry == nil {
		t.Fatal("expected an adapter registry")
	}
	if !registry.Supports(core.ProviderHubspot, core.ObjectTypeContact) {
		t.Fatal("expected hubspot contact support after registration")
	}
	if !registry.Supports(core.ProviderJira, core.ObjectTypeTicketTask) {
		t.Fatal("expected jira ticketTask support after registration")
	}

	// Registering twice collides on every provider id.
	if err := RegisterBuiltinAdapters(service); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}
