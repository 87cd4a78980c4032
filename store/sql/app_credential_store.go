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

type AppCredentialStore struct {
	db   *bun.DB
	repo repository.Repository[*appCredentialRecord]
}

func (s *AppCredentialStore) Get(ctx context.Context, providerID core.ProviderID, appID string) (core.AppCredential, error) {
	if s == nil || s.repo == nil {
		return core.AppCredential{}, fmt.Errorf("sqlstore: app credential store is not configured")
	}
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return core.AppCredential{}, fmt.Errorf("sqlstore: app id is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("provider_id", "=", strings.TrimSpace(string(providerID))),
		repository.SelectBy("app_id", "=", appID),
	)
	if err != nil {
		return core.AppCredential{}, err
	}
	if len(records) == 0 {
		return core.AppCredential{}, notFoundError("sqlstore: app credential not found: " + string(providerID) + "::" + appID)
	}
	return records[0].toDomain(), nil
}

func (s *AppCredentialStore) GetPlatformDefault(ctx context.Context, providerID core.ProviderID) (core.AppCredential, error) {
	if s == nil || s.repo == nil {
		return core.AppCredential{}, fmt.Errorf("sqlstore: app credential store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("provider_id", "=", strings.TrimSpace(string(providerID))),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.is_platform_app = ?", true)
		}),
		repository.OrderBy("created_at ASC"),
	)
	if err != nil {
		return core.AppCredential{}, err
	}
	if len(records) == 0 {
		return core.AppCredential{}, notFoundError("sqlstore: no platform app credential for provider " + string(providerID))
	}
	return records[0].toDomain(), nil
}

func (s *AppCredentialStore) Save(ctx context.Context, cred core.AppCredential) (core.AppCredential, error) {
	if s == nil || s.db == nil {
		return core.AppCredential{}, fmt.Errorf("sqlstore: app credential store is not configured")
	}
	if err := cred.ProviderID.Validate(); err != nil {
		return core.AppCredential{}, err
	}
	if strings.TrimSpace(cred.ClientID) == "" || strings.TrimSpace(cred.ClientSecret) == "" {
		return core.AppCredential{}, fmt.Errorf("sqlstore: app credential requires client id and secret")
	}
	if strings.TrimSpace(cred.ID) == "" {
		cred.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	record := &appCredentialRecord{
		ID:            uuid.NewString(),
		ProviderID:    string(cred.ProviderID),
		AppID:         strings.TrimSpace(cred.ID),
		ClientID:      strings.TrimSpace(cred.ClientID),
		ClientSecret:  strings.TrimSpace(cred.ClientSecret),
		IsPlatformApp: cred.IsPlatformApp,
		Scopes:        append([]string(nil), cred.Scopes...),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (provider_id, app_id) DO UPDATE").
		Set("client_id = EXCLUDED.client_id").
		Set("client_secret = EXCLUDED.client_secret").
		Set("is_platform_app = EXCLUDED.is_platform_app").
		Set("scopes = EXCLUDED.scopes").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return core.AppCredential{}, err
	}
	return s.Get(ctx, cred.ProviderID, cred.ID)
}
