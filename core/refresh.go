package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	defaultRefreshMaxAttempts    = 3
	defaultRefreshInitialBackoff = 500 * time.Millisecond
	defaultRefreshMaxBackoff     = 10 * time.Second
	defaultRefreshLockTTL        = 30 * time.Second
)

type ExponentialBackoffScheduler struct {
	Initial time.Duration
	Max     time.Duration
}

func (s ExponentialBackoffScheduler) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	initial := s.Initial
	if initial <= 0 {
		initial = defaultRefreshInitialBackoff
	}
	max := s.Max
	if max <= 0 {
		max = defaultRefreshMaxBackoff
	}

	delay := initial
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}

// RefreshConnection refreshes one connection's access token and persists
// the result. The connection lock serializes concurrent refreshes of the
// same (tenant, provider) pair.
func (s *Service) RefreshConnection(ctx context.Context, key ConnectionKey) (connection Connection, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"tenant_id":   key.TenantID,
		"provider_id": key.ProviderID,
		"connection":  key.String(),
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "refresh_connection", err, fields)
	}()

	if s == nil {
		return Connection{}, fmt.Errorf("core: service is nil")
	}
	if err = key.Validate(); err != nil {
		err = s.mapError(err)
		return Connection{}, err
	}

	unlock := func() {}
	if s.connectionLocker != nil {
		lockHandle, lockErr := s.connectionLocker.Acquire(ctx, key, defaultRefreshLockTTL)
		if lockErr != nil {
			err = s.mapError(lockErr)
			return Connection{}, err
		}
		unlock = func() {
			_ = lockHandle.Unlock(ctx)
		}
	}
	defer unlock()

	if s.connectionStore == nil {
		err = s.mapError(fmt.Errorf("core: connection store is not configured"))
		return Connection{}, err
	}
	connection, err = s.connectionStore.Get(ctx, key)
	if err != nil {
		err = s.mapError(err)
		return Connection{}, err
	}

	connection, err = s.refreshLocked(ctx, connection)
	if err != nil {
		return Connection{}, err
	}
	return connection, nil
}

// RefreshAll walks every stored connection and refreshes each in turn. One
// connection's failure never stops the sweep; the report carries the
// per-connection outcome. Connections whose lock is held are skipped, so
// overlapping sweeps stay safe.
func (s *Service) RefreshAll(ctx context.Context) (report RefreshReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["succeeded"] = len(report.Succeeded)
		fields["failed"] = len(report.Failed)
		fields["skipped"] = len(report.Skipped)
		s.observeOperation(ctx, startedAt, "refresh_all", err, fields)
	}()

	if s == nil {
		return RefreshReport{}, fmt.Errorf("core: service is nil")
	}
	if s.connectionStore == nil {
		err = s.mapError(fmt.Errorf("core: connection store is not configured"))
		return RefreshReport{}, err
	}

	connections, err := s.connectionStore.List(ctx)
	if err != nil {
		err = s.mapError(err)
		return RefreshReport{}, err
	}

	for _, connection := range connections {
		if ctx.Err() != nil {
			err = s.mapError(ctx.Err())
			return report, err
		}
		key := connection.Key()

		if !connection.HasRefreshToken() {
			report.Skipped = append(report.Skipped, RefreshOutcome{Key: key, Reason: "no refresh token"})
			continue
		}
		if s.oauthProfiles == nil {
			report.Skipped = append(report.Skipped, RefreshOutcome{Key: key, Reason: "refresh unsupported"})
			continue
		}
		if _, ok := s.oauthProfiles.Profile(connection.ProviderID); !ok {
			report.Skipped = append(report.Skipped, RefreshOutcome{Key: key, Reason: "refresh unsupported"})
			continue
		}

		unlock := func() {}
		if s.connectionLocker != nil {
			lockHandle, lockErr := s.connectionLocker.Acquire(ctx, key, defaultRefreshLockTTL)
			if lockErr != nil {
				report.Skipped = append(report.Skipped, RefreshOutcome{Key: key, Reason: "refresh in progress"})
				continue
			}
			unlock = func() {
				_ = lockHandle.Unlock(ctx)
			}
		}

		if _, refreshErr := s.refreshLocked(ctx, connection); refreshErr != nil {
			report.Failed = append(report.Failed, RefreshOutcome{Key: key, Reason: refreshErr.Error()})
		} else {
			report.Succeeded = append(report.Succeeded, key)
		}
		unlock()
	}

	return report, nil
}

// refreshLocked performs the token exchange with retry and persists
// rotated tokens. The caller holds the connection lock. A failed cycle is
// reported on the returned error and logged; the stored record keeps its
// tokens so the next cycle retries from the same state.
func (s *Service) refreshLocked(ctx context.Context, connection Connection) (Connection, error) {
	key := connection.Key()

	if !connection.HasRefreshToken() {
		return Connection{}, s.mapError(fmt.Errorf("core: connection %s has no refresh token", key.String()))
	}
	if s.tokenClient == nil {
		return Connection{}, s.mapError(fmt.Errorf("core: token client is not configured"))
	}
	if s.oauthProfiles == nil {
		return Connection{}, s.mapError(fmt.Errorf("core: oauth profiles are not configured"))
	}
	profile, ok := s.oauthProfiles.Profile(connection.ProviderID)
	if !ok {
		return Connection{}, NewRefreshUnsupportedError(connection.ProviderID)
	}

	clientID, clientSecret, err := s.resolveClientCredentials(ctx, connection)
	if err != nil {
		return Connection{}, s.mapError(err)
	}

	// Track the refreshing state on the working copy only. Stored status
	// changes happen on success; a failed cycle leaves the record intact
	// for the next sweep.
	_ = connection.TransitionTo(ConnectionStatusRefreshing, "", time.Now().UTC())

	maxAttempts := s.config.Refresh.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = defaultRefreshMaxAttempts
	}

	var response TokenRefreshResponse
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		response, lastErr = s.tokenClient.Refresh(ctx, TokenRefreshRequest{
			Profile:      profile,
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RefreshToken: connection.RefreshToken,
			AccountURL:   connection.AccountURL,
		})
		if lastErr == nil {
			break
		}
		if attempt == maxAttempts {
			break
		}
		delay := defaultRefreshInitialBackoff
		if s.refreshBackoffScheduler != nil {
			delay = s.refreshBackoffScheduler.NextDelay(attempt)
		}
		if waitErr := waitWithContext(ctx, delay); waitErr != nil {
			lastErr = waitErr
			break
		}
	}
	if lastErr != nil {
		_ = connection.TransitionTo(ConnectionStatusFailed, lastErr.Error(), time.Now().UTC())
		s.logError(ctx, "token refresh failed", map[string]any{
			"connection":  key.String(),
			"provider_id": connection.ProviderID,
			"error":       lastErr.Error(),
		})
		return Connection{}, NewRefreshError(lastErr, key)
	}

	if strings.TrimSpace(response.AccessToken) == "" {
		failure := fmt.Errorf("core: provider returned an empty access token")
		return Connection{}, NewRefreshError(failure, key)
	}

	rotated := ""
	if profile.RotatesRefreshToken && strings.TrimSpace(response.RefreshToken) != "" {
		rotated = strings.TrimSpace(response.RefreshToken)
	}

	updated, err := s.connectionStore.SaveTokens(ctx, key, response.AccessToken, rotated)
	if err != nil {
		return Connection{}, s.mapError(err)
	}
	if updated.Status != ConnectionStatusActive {
		if statusErr := s.connectionStore.UpdateStatus(ctx, key, ConnectionStatusActive, ""); statusErr != nil {
			return Connection{}, s.mapError(statusErr)
		}
		updated.Status = ConnectionStatusActive
		updated.LastError = ""
	}
	return updated, nil
}

// resolveClientCredentials finds the OAuth client for a connection: the
// tenant-owned app when the connection names one, otherwise the stored
// platform default, otherwise the configured platform fallback.
func (s *Service) resolveClientCredentials(ctx context.Context, connection Connection) (string, string, error) {
	if s.appCredentialStore != nil {
		if appID := strings.TrimSpace(connection.AppID); appID != "" {
			cred, err := s.appCredentialStore.Get(ctx, connection.ProviderID, appID)
			if err == nil {
				return cred.ClientID, cred.ClientSecret, nil
			}
			if !HasTextCode(err, UnifiedErrorNotFound) {
				return "", "", err
			}
		}
		cred, err := s.appCredentialStore.GetPlatformDefault(ctx, connection.ProviderID)
		if err == nil {
			return cred.ClientID, cred.ClientSecret, nil
		}
		if !HasTextCode(err, UnifiedErrorNotFound) {
			return "", "", err
		}
	}
	if app, ok := s.config.PlatformApp(connection.ProviderID); ok {
		return app.ClientID, app.ClientSecret, nil
	}
	return "", "", fmt.Errorf(
		"core: no oauth client credentials available for provider %s", connection.ProviderID,
	)
}

func waitWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
