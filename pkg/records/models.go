package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/healthpulse-ai/platform/pkg/common/models"
	"gorm.io/datatypes"
)

type RecordModel struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey;column:id"`
	SubjectID     string            `gorm:"column:subject_id;index"`
	HeartRate     *float64          `gorm:"column:heart_rate"`
	BloodPressure *string           `gorm:"column:blood_pressure"`
	BloodSugar    *float64          `gorm:"column:blood_sugar"`
	Weight        *float64          `gorm:"column:weight"`
	SleepHours    *float64          `gorm:"column:sleep_hours"`
	MoodScore     *int              `gorm:"column:mood_score"`
	Metadata      datatypes.JSONMap `gorm:"column:metadata"`
	RecordedAt    time.Time         `gorm:"column:recorded_at"`
	CreatedAt     time.Time         `gorm:"column:created_at"`
}

func (RecordModel) TableName() string {
	return "health_records"
}

func (m *RecordModel) ToHealthRecord() models.HealthRecord {
	recordedAt := m.RecordedAt
	return models.HealthRecord{
		HeartRate:     m.HeartRate,
		BloodPressure: m.BloodPressure,
		BloodSugar:    m.BloodSugar,
		Weight:        m.Weight,
		SleepHours:    m.SleepHours,
		MoodScore:     m.MoodScore,
		RecordedAt:    &recordedAt,
	}
}

func FromHealthRecord(subjectID string, rec models.HealthRecord) *RecordModel {
	recordedAt := time.Now().UTC()
	if rec.RecordedAt != nil {
		recordedAt = *rec.RecordedAt
	}
	return &RecordModel{
		ID:            uuid.New(),
		SubjectID:     subjectID,
		HeartRate:     rec.HeartRate,
		BloodPressure: rec.BloodPressure,
		BloodSugar:    rec.BloodSugar,
		Weight:        rec.Weight,
		SleepHours:    rec.SleepHours,
		MoodScore:     rec.MoodScore,
		RecordedAt:    recordedAt,
		CreatedAt:     time.Now().UTC(),
	}
}
