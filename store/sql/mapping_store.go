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

type MappingStore struct {
	db   *bun.DB
	repo repository.Repository[*fieldMappingRecord]
}

func (s *MappingStore) ListOverrides(ctx context.Context, schemaMappingID string, objectType core.ObjectType) ([]core.FieldMappingOverride, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: mapping store is not configured")
	}
	schemaMappingID = strings.TrimSpace(schemaMappingID)
	if schemaMappingID == "" {
		return nil, fmt.Errorf("sqlstore: schema mapping id is required")
	}
	if err := objectType.Validate(); err != nil {
		return nil, err
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("schema_mapping_id", "=", schemaMappingID),
		repository.SelectBy("object_type", "=", string(objectType)),
		repository.OrderBy("canonical_name ASC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]core.FieldMappingOverride, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *MappingStore) Save(ctx context.Context, in core.SaveFieldMappingInput) (core.FieldMappingOverride, error) {
	if s == nil || s.db == nil {
		return core.FieldMappingOverride{}, fmt.Errorf("sqlstore: mapping store is not configured")
	}
	schemaMappingID := strings.TrimSpace(in.SchemaMappingID)
	canonicalName := strings.TrimSpace(in.CanonicalName)
	providerPath := strings.TrimSpace(in.ProviderPath)
	if schemaMappingID == "" {
		return core.FieldMappingOverride{}, fmt.Errorf("sqlstore: schema mapping id is required")
	}
	if err := in.ObjectType.Validate(); err != nil {
		return core.FieldMappingOverride{}, err
	}
	if canonicalName == "" {
		return core.FieldMappingOverride{}, fmt.Errorf("sqlstore: canonical name is required")
	}
	if providerPath == "" {
		return core.FieldMappingOverride{}, fmt.Errorf("sqlstore: provider path is required")
	}

	now := time.Now().UTC()
	record := &fieldMappingRecord{
		ID:              uuid.NewString(),
		SchemaMappingID: schemaMappingID,
		ObjectType:      string(in.ObjectType),
		CanonicalName:   canonicalName,
		ProviderPath:    providerPath,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (schema_mapping_id, object_type, canonical_name) DO UPDATE").
		Set("provider_path = EXCLUDED.provider_path").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return core.FieldMappingOverride{}, err
	}

	records, _, err := s.repo.List(ctx,
		repository.SelectBy("schema_mapping_id", "=", schemaMappingID),
		repository.SelectBy("object_type", "=", string(in.ObjectType)),
		repository.SelectBy("canonical_name", "=", canonicalName),
	)
	if err != nil {
		return core.FieldMappingOverride{}, err
	}
	if len(records) == 0 {
		return core.FieldMappingOverride{}, notFoundError("sqlstore: field mapping not found after save")
	}
	return records[0].toDomain(), nil
}

func (s *MappingStore) Delete(ctx context.Context, schemaMappingID string, objectType core.ObjectType, canonicalName string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: mapping store is not configured")
	}
	schemaMappingID = strings.TrimSpace(schemaMappingID)
	canonicalName = strings.TrimSpace(canonicalName)
	if schemaMappingID == "" {
		return fmt.Errorf("sqlstore: schema mapping id is required")
	}
	if err := objectType.Validate(); err != nil {
		return err
	}
	if canonicalName == "" {
		return fmt.Errorf("sqlstore: canonical name is required")
	}
	_, err := s.db.NewDelete().
		Model((*fieldMappingRecord)(nil)).
		Where("schema_mapping_id = ?", schemaMappingID).
		Where("object_type = ?", string(objectType)).
		Where("canonical_name = ?", canonicalName).
		Exec(ctx)
	return err
}
