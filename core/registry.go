package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type AdapterRegistry struct {
	mu       sync.RWMutex
	adapters map[ProviderID]Adapter
}

func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{adapters: make(map[ProviderID]Adapter)}
}

func (r *AdapterRegistry) Register(adapter Adapter) error {
	if adapter == nil {
		return fmt.Errorf("core: adapter is nil")
	}
	id := ProviderID(strings.TrimSpace(string(adapter.ProviderID())))
	if id == "" {
		return fmt.Errorf("core: adapter provider id is required")
	}
	if err := id.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[id]; exists {
		return fmt.Errorf("core: adapter already registered: %s", id)
	}
	r.adapters[id] = adapter
	return nil
}

func (r *AdapterRegistry) Get(providerID ProviderID) (Adapter, bool) {
	id := ProviderID(strings.TrimSpace(string(providerID)))
	if id == "" {
		return nil, false
	}
	r.mu.RLock()
	adapter, ok := r.adapters[id]
	r.mu.RUnlock()
	return adapter, ok
}

func (r *AdapterRegistry) List() []Adapter {
	r.mu.RLock()
	keys := make([]ProviderID, 0, len(r.adapters))
	for id := range r.adapters {
		keys = append(keys, id)
	}
	r.mu.RUnlock()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	adapters := make([]Adapter, 0, len(keys))
	r.mu.RLock()
	for _, id := range keys {
		adapters = append(adapters, r.adapters[id])
	}
	r.mu.RUnlock()
	return adapters
}

// Supports reports whether a registered adapter handles the object type.
func (r *AdapterRegistry) Supports(providerID ProviderID, objectType ObjectType) bool {
	adapter, ok := r.Get(providerID)
	if !ok {
		return false
	}
	for _, supported := range adapter.SupportedObjectTypes() {
		if supported == objectType {
			return true
		}
	}
	return false
}
