// Package core contains the canonical object model, the transform engine,
// the field-mapping resolver, and the connection credential lifecycle.
// Provider adapters and stores depend on this package; core must not
// depend on provider-specific or transport-specific adapters.
package core
