package sqlstore_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"
	unified "github.com/goliatone/go-unified"
	"github.com/goliatone/go-unified/core"
	sqlstore "github.com/goliatone/go-unified/store/sql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type testPersistenceConfig struct {
	driver string
	server string
}

func (c testPersistenceConfig) GetDebug() bool {
	return false
}

func (c testPersistenceConfig) GetDriver() string {
	return c.driver
}

func (c testPersistenceConfig) GetServer() string {
	return c.server
}

func (c testPersistenceConfig) GetPingTimeout() time.Duration {
	return time.Second
}

func (c testPersistenceConfig) GetOtelIdentifier() string {
	return "go-unified-tests"
}

func TestMigrationSmokeApplySQLite(t *testing.T) {
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	var tableName string
	if err := client.DB().NewRaw(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?",
		"unified_connections",
	).Scan(context.Background(), &tableName); err != nil {
		t.Fatalf("query sqlite master: %v", err)
	}
	if tableName != "unified_connections" {
		t.Fatalf("expected unified_connections table, got %q", tableName)
	}
}

func TestConnectionStore_UpsertIsKeyedByTenantAndProvider(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}
	store := factory.ConnectionStore()
	if store == nil {
		t.Fatalf("expected connection store from factory")
	}

	first, err := store.Upsert(ctx, core.UpsertConnectionInput{
		TenantID:     "tenant-1",
		ProviderID:   core.ProviderHubspot,
		AccessToken:  "token-1",
		RefreshToken: "refresh-1",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first.Status != core.ConnectionStatusActive {
		t.Fatalf("expected active status, got %q", first.Status)
	}

	second, err := store.Upsert(ctx, core.UpsertConnectionInput{
		TenantID:    "tenant-1",
		ProviderID:  core.ProviderHubspot,
		AccessToken: "token-2",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.AccessToken != "token-2" {
		t.Fatalf("expected access token replaced, got %q", second.AccessToken)
	}

	connections, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(connections) != 1 {
		t.Fatalf("expected a single row after repeated upsert, got %d", len(connections))
	}
}

func TestConnectionStore_SaveTokensKeepsRefreshTokenWhenEmpty(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}
	store := factory.ConnectionStore()

	key := core.ConnectionKey{TenantID: "tenant-1", ProviderID: core.ProviderZohoCRM}
	if _, err := store.Upsert(ctx, core.UpsertConnectionInput{
		TenantID:     key.TenantID,
		ProviderID:   key.ProviderID,
		AccessToken:  "token-1",
		RefreshToken: "refresh-1",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	updated, err := store.SaveTokens(ctx, key, "token-2", "")
	if err != nil {
		t.Fatalf("save tokens: %v", err)
	}
	if updated.AccessToken != "token-2" {
		t.Fatalf("expected new access token, got %q", updated.AccessToken)
	}
	if updated.RefreshToken != "refresh-1" {
		t.Fatalf("expected refresh token preserved, got %q", updated.RefreshToken)
	}

	rotated, err := store.SaveTokens(ctx, key, "token-3", "refresh-2")
	if err != nil {
		t.Fatalf("save tokens with rotation: %v", err)
	}
	if rotated.RefreshToken != "refresh-2" {
		t.Fatalf("expected rotated refresh token, got %q", rotated.RefreshToken)
	}
}

func TestConnectionStore_UpdateStatusEnforcesTransitions(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}
	store := factory.ConnectionStore()

	key := core.ConnectionKey{TenantID: "tenant-1", ProviderID: core.ProviderSFDC}
	if _, err := store.Upsert(ctx, core.UpsertConnectionInput{
		TenantID:    key.TenantID,
		ProviderID:  key.ProviderID,
		AccessToken: "token-1",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := store.UpdateStatus(ctx, key, core.ConnectionStatusFailed, "boom"); err == nil {
		t.Fatalf("expected active -> failed to be rejected")
	}
	if err := store.UpdateStatus(ctx, key, core.ConnectionStatusRefreshing, ""); err != nil {
		t.Fatalf("transition to refreshing: %v", err)
	}
	if err := store.UpdateStatus(ctx, key, core.ConnectionStatusFailed, "boom"); err != nil {
		t.Fatalf("transition to failed: %v", err)
	}

	connection, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if connection.Status != core.ConnectionStatusFailed {
		t.Fatalf("expected failed status, got %q", connection.Status)
	}
	if connection.LastError != "boom" {
		t.Fatalf("expected last error recorded, got %q", connection.LastError)
	}
}

func TestAppCredentialStore_PlatformDefaultLookup(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}
	store := factory.AppCredentialStore()

	if _, err := store.GetPlatformDefault(ctx, core.ProviderHubspot); err == nil {
		t.Fatalf("expected not found before any credential is saved")
	}

	saved, err := store.Save(ctx, core.AppCredential{
		ProviderID:    core.ProviderHubspot,
		ClientID:      "client-1",
		ClientSecret:  "secret-1",
		IsPlatformApp: true,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected generated app id")
	}

	fallback, err := store.GetPlatformDefault(ctx, core.ProviderHubspot)
	if err != nil {
		t.Fatalf("get platform default: %v", err)
	}
	if fallback.ClientID != "client-1" {
		t.Fatalf("expected platform credential, got client id %q", fallback.ClientID)
	}

	saved.ClientSecret = "secret-2"
	updated, err := store.Save(ctx, saved)
	if err != nil {
		t.Fatalf("resave: %v", err)
	}
	if updated.ClientSecret != "secret-2" {
		t.Fatalf("expected secret replaced, got %q", updated.ClientSecret)
	}
}

func TestMappingStore_SaveIsUpsertPerField(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}
	store := factory.MappingStore()

	if _, err := store.Save(ctx, core.SaveFieldMappingInput{
		SchemaMappingID: "schema-1",
		ObjectType:      core.ObjectTypeContact,
		CanonicalName:   "email",
		ProviderPath:    "properties.work_email",
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Save(ctx, core.SaveFieldMappingInput{
		SchemaMappingID: "schema-1",
		ObjectType:      core.ObjectTypeContact,
		CanonicalName:   "email",
		ProviderPath:    "properties.primary_email",
	}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	overrides, err := store.ListOverrides(ctx, "schema-1", core.ObjectTypeContact)
	if err != nil {
		t.Fatalf("list overrides: %v", err)
	}
	if len(overrides) != 1 {
		t.Fatalf("expected one override after repeated save, got %d", len(overrides))
	}
	if overrides[0].ProviderPath != "properties.primary_email" {
		t.Fatalf("expected latest provider path, got %q", overrides[0].ProviderPath)
	}

	if err := store.Delete(ctx, "schema-1", core.ObjectTypeContact, "email"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	overrides, err = store.ListOverrides(ctx, "schema-1", core.ObjectTypeContact)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(overrides) != 0 {
		t.Fatalf("expected no overrides after delete, got %d", len(overrides))
	}
}

func newSQLiteClient(t *testing.T) (*persistence.Client, func()) {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:unified-test-%d?mode=memory&cache=shared&_foreign_keys=on",
		time.Now().UnixNano(),
	)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := testPersistenceConfig{
		driver: "sqlite3",
		server: dsn,
	}
	client, err := persistence.New(cfg, sqlDB, sqlitedialect.New())
	if err != nil {
		_ = sqlDB.Close()
		t.Fatalf("new persistence client: %v", err)
	}

	client.RegisterSQLMigrations(unified.GetMigrationsFS())
	if err := client.Migrate(context.Background()); err != nil {
		_ = client.Close()
		t.Fatalf("migrate: %v", err)
	}

	return client, func() {
		_ = client.Close()
	}
}
