package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-unified/core"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ConnectionStore struct {
	db   *bun.DB
	repo repository.Repository[*connectionRecord]
}

func (s *ConnectionStore) Upsert(ctx context.Context, in core.UpsertConnectionInput) (core.Connection, error) {
	if s == nil || s.db == nil {
		return core.Connection{}, fmt.Errorf("sqlstore: connection store is not configured")
	}
	key := core.ConnectionKey{
		TenantID:   strings.TrimSpace(in.TenantID),
		ProviderID: core.ProviderID(strings.TrimSpace(string(in.ProviderID))),
	}
	if err := key.Validate(); err != nil {
		return core.Connection{}, err
	}
	if strings.TrimSpace(in.AccessToken) == "" {
		return core.Connection{}, fmt.Errorf("sqlstore: access token is required")
	}

	now := time.Now().UTC()
	record := &connectionRecord{
		ID:                uuid.NewString(),
		TenantID:          key.TenantID,
		ProviderID:        string(key.ProviderID),
		ExternalAccountID: strings.TrimSpace(in.ExternalAccountID),
		AccountURL:        strings.TrimSpace(in.AccountURL),
		AppID:             strings.TrimSpace(in.AppID),
		AccessToken:       strings.TrimSpace(in.AccessToken),
		RefreshToken:      strings.TrimSpace(in.RefreshToken),
		Status:            string(core.ConnectionStatusActive),
		LastError:         "",
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	_, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (tenant_id, provider_id) DO UPDATE").
		Set("external_account_id = EXCLUDED.external_account_id").
		Set("account_url = EXCLUDED.account_url").
		Set("app_id = EXCLUDED.app_id").
		Set("access_token = EXCLUDED.access_token").
		Set("refresh_token = EXCLUDED.refresh_token").
		Set("status = EXCLUDED.status").
		Set("last_error = ''").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return core.Connection{}, err
	}
	return s.Get(ctx, key)
}

func (s *ConnectionStore) Get(ctx context.Context, key core.ConnectionKey) (core.Connection, error) {
	if s == nil || s.db == nil {
		return core.Connection{}, fmt.Errorf("sqlstore: connection store is not configured")
	}
	if err := key.Validate(); err != nil {
		return core.Connection{}, err
	}
	record, err := s.getRecord(ctx, key)
	if err != nil {
		return core.Connection{}, err
	}
	return record.toDomain(), nil
}

func (s *ConnectionStore) List(ctx context.Context) ([]core.Connection, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: connection store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.OrderBy("tenant_id ASC"),
		repository.OrderBy("provider_id ASC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]core.Connection, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *ConnectionStore) SaveTokens(ctx context.Context, key core.ConnectionKey, accessToken, refreshToken string) (core.Connection, error) {
	if s == nil || s.db == nil {
		return core.Connection{}, fmt.Errorf("sqlstore: connection store is not configured")
	}
	if err := key.Validate(); err != nil {
		return core.Connection{}, err
	}
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return core.Connection{}, fmt.Errorf("sqlstore: access token is required")
	}

	record, err := s.getRecord(ctx, key)
	if err != nil {
		return core.Connection{}, err
	}
	record.AccessToken = accessToken
	if trimmed := strings.TrimSpace(refreshToken); trimmed != "" {
		record.RefreshToken = trimmed
	}
	record.UpdatedAt = time.Now().UTC()

	if _, err := s.db.NewUpdate().Model(record).WherePK().Exec(ctx); err != nil {
		return core.Connection{}, err
	}
	return record.toDomain(), nil
}

func (s *ConnectionStore) UpdateStatus(ctx context.Context, key core.ConnectionKey, status core.ConnectionStatus, reason string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: connection store is not configured")
	}
	if err := key.Validate(); err != nil {
		return err
	}
	record, err := s.getRecord(ctx, key)
	if err != nil {
		return err
	}

	connection := record.toDomain()
	if err := connection.TransitionTo(status, reason, time.Now().UTC()); err != nil {
		return err
	}
	record.Status = string(connection.Status)
	record.LastError = connection.LastError
	record.UpdatedAt = connection.UpdatedAt

	_, err = s.db.NewUpdate().Model(record).WherePK().Exec(ctx)
	return err
}

func (s *ConnectionStore) Delete(ctx context.Context, key core.ConnectionKey) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: connection store is not configured")
	}
	if err := key.Validate(); err != nil {
		return err
	}
	_, err := s.db.NewDelete().
		Model((*connectionRecord)(nil)).
		Where("tenant_id = ?", key.TenantID).
		Where("provider_id = ?", string(key.ProviderID)).
		Exec(ctx)
	return err
}

func (s *ConnectionStore) getRecord(ctx context.Context, key core.ConnectionKey) (*connectionRecord, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("tenant_id", "=", key.TenantID),
		repository.SelectBy("provider_id", "=", string(key.ProviderID)),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, notFoundError("sqlstore: connection not found: " + key.String())
	}
	return records[0], nil
}
