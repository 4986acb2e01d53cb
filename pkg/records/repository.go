// Package records persists the raw health-record supply. The analytics core
// never queries storage itself; it receives ordered record slices from this
// repository through the HTTP and worker layers.
package records

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/healthpulse-ai/platform/pkg/common/models"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("health record not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&RecordModel{})
}

func (r *Repository) Create(ctx context.Context, record *RecordModel) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*RecordModel, error) {
	var record RecordModel
	result := r.db.WithContext(ctx).First(&record, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	return &record, result.Error
}

// ListBySubject returns a subject's records oldest first, the order trend
// estimation expects.
func (r *Repository) ListBySubject(ctx context.Context, subjectID string, limit int) ([]RecordModel, error) {
	if limit <= 0 {
		limit = 500
	}
	var rows []RecordModel
	result := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("recorded_at asc").
		Limit(limit).
		Find(&rows)
	return rows, result.Error
}

// RecordsBySubject is ListBySubject converted to the analytics input shape.
func (r *Repository) RecordsBySubject(ctx context.Context, subjectID string, limit int) ([]models.HealthRecord, error) {
	rows, err := r.ListBySubject(ctx, subjectID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.HealthRecord, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToHealthRecord())
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&RecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
