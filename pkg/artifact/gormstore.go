package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArtifactModel struct {
	Key       string         `gorm:"primaryKey;column:key"`
	Payload   datatypes.JSON `gorm:"column:payload"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (ArtifactModel) TableName() string {
	return "model_artifacts"
}

// GormStore persists artifacts as JSON rows. The upsert runs as a single
// statement, so readers see either the previous row or the replacement.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&ArtifactModel{})
}

func (s *GormStore) Load(ctx context.Context, key string) (*Artifact, error) {
	var row ArtifactModel
	result := s.db.WithContext(ctx).First(&row, "key = ?", key)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("load artifact %s: %w", key, result.Error)
	}
	var a Artifact
	if err := json.Unmarshal(row.Payload, &a); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", key, err)
	}
	return &a, nil
}

func (s *GormStore) Save(ctx context.Context, key string, a *Artifact) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode artifact %s: %w", key, err)
	}
	row := ArtifactModel{
		Key:       key,
		Payload:   datatypes.JSON(payload),
		UpdatedAt: time.Now().UTC(),
	}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&row)
	if result.Error != nil {
		return fmt.Errorf("save artifact %s: %w", key, result.Error)
	}
	return nil
}
