package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	UnifiedErrorBadInput             = "UNIFIED_BAD_INPUT"
	UnifiedErrorConfigInvalid        = "UNIFIED_CONFIG_INVALID"
	UnifiedErrorOperationUnsupported = "UNIFIED_OPERATION_UNSUPPORTED"
	UnifiedErrorFieldRequired        = "UNIFIED_FIELD_REQUIRED"
	UnifiedErrorStateUnresolved      = "UNIFIED_STATE_UNRESOLVED"
	UnifiedErrorRefreshFailed        = "UNIFIED_REFRESH_FAILED"
	UnifiedErrorRefreshLocked        = "UNIFIED_REFRESH_LOCKED"
	UnifiedErrorNotFound             = "UNIFIED_NOT_FOUND"
	UnifiedErrorInternal             = "UNIFIED_INTERNAL_ERROR"
)

// NewConfigError reports an illegal field mapping target or otherwise
// invalid tenant configuration.
func NewConfigError(message string) *goerrors.Error {
	return newUnifiedError(message, goerrors.CategoryValidation, UnifiedErrorConfigInvalid)
}

// NewUnsupportedOperationError reports a (object type, provider) combination
// with no registered adapter.
func NewUnsupportedOperationError(objectType ObjectType, providerID ProviderID) *goerrors.Error {
	return newUnifiedError(
		"core: no adapter registered for object type "+string(objectType)+" on provider "+string(providerID),
		goerrors.CategoryOperation,
		UnifiedErrorOperationUnsupported,
	)
}

// NewUnsupportedFieldError reports a provider-required field missing from
// canonical input.
func NewUnsupportedFieldError(field string, providerID ProviderID) *goerrors.Error {
	return newUnifiedError(
		"core: provider "+string(providerID)+" requires field "+field,
		goerrors.CategoryBadInput,
		UnifiedErrorFieldRequired,
	)
}

// NewStateResolutionError reports a failed enum-to-id lookup for an
// enumerated indirect reference.
func NewStateResolutionError(label string, providerID ProviderID) *goerrors.Error {
	return newUnifiedError(
		"core: no state matching "+label+" on provider "+string(providerID),
		goerrors.CategoryBadInput,
		UnifiedErrorStateUnresolved,
	)
}

// NewRefreshError wraps a failed token refresh; contained within
// RefreshAll and never escalated across connections.
func NewRefreshError(err error, key ConnectionKey) *goerrors.Error {
	wrapped := goerrors.Wrap(err, goerrors.CategoryExternal, "core: token refresh failed for "+key.String())
	return ensureUnifiedErrorEnvelope(wrapped.WithTextCode(UnifiedErrorRefreshFailed))
}

// NewRefreshUnsupportedError reports a refresh attempt against a provider
// with no token endpoint profile.
func NewRefreshUnsupportedError(providerID ProviderID) *goerrors.Error {
	return newUnifiedError(
		"core: provider "+string(providerID)+" does not support token refresh",
		goerrors.CategoryOperation,
		UnifiedErrorOperationUnsupported,
	)
}

// NewRefreshLockedError reports a refresh attempt against a connection
// whose lock is already held.
func NewRefreshLockedError(key ConnectionKey) *goerrors.Error {
	return newUnifiedError(
		"core: refresh lock already held for connection "+key.String(),
		goerrors.CategoryConflict,
		UnifiedErrorRefreshLocked,
	)
}

func unifiedErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureUnifiedErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "no adapter registered"):
		return newUnifiedError(err.Error(), goerrors.CategoryOperation, UnifiedErrorOperationUnsupported)
	case strings.Contains(msg, "not found"):
		return newUnifiedError(err.Error(), goerrors.CategoryNotFound, UnifiedErrorNotFound)
	case strings.Contains(msg, "lock already held"), strings.Contains(msg, "refresh lock"):
		return newUnifiedError(err.Error(), goerrors.CategoryConflict, UnifiedErrorRefreshLocked)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "mismatch"):
		return newUnifiedError(err.Error(), goerrors.CategoryBadInput, UnifiedErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureUnifiedErrorEnvelope(mapped)
}

func newUnifiedErrorNotFound(message string) *goerrors.Error {
	return newUnifiedError(message, goerrors.CategoryNotFound, UnifiedErrorNotFound)
}

func newUnifiedError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureUnifiedErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureUnifiedErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = unifiedHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultUnifiedTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultUnifiedTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput:
		return UnifiedErrorBadInput
	case goerrors.CategoryValidation:
		return UnifiedErrorConfigInvalid
	case goerrors.CategoryNotFound:
		return UnifiedErrorNotFound
	case goerrors.CategoryConflict:
		return UnifiedErrorRefreshLocked
	case goerrors.CategoryOperation:
		return UnifiedErrorOperationUnsupported
	case goerrors.CategoryExternal:
		return UnifiedErrorRefreshFailed
	default:
		return UnifiedErrorInternal
	}
}

func unifiedHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryOperation:
		return http.StatusUnprocessableEntity
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HasTextCode reports whether err carries the given unified text code.
func HasTextCode(err error, textCode string) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(richErr.TextCode), strings.TrimSpace(textCode))
}
