package records

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/healthpulse-ai/platform/pkg/common/models"
)

func TestFromHealthRecordRoundTrip(t *testing.T) {
	heartRate := 75.0
	bp := "120/80"
	mood := 8
	recordedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	model := FromHealthRecord("subject-1", models.HealthRecord{
		HeartRate:     &heartRate,
		BloodPressure: &bp,
		MoodScore:     &mood,
		RecordedAt:    &recordedAt,
	})

	if model.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}
	if model.SubjectID != "subject-1" {
		t.Fatalf("subject lost: %q", model.SubjectID)
	}
	if !model.RecordedAt.Equal(recordedAt) {
		t.Fatalf("recorded_at altered: %v", model.RecordedAt)
	}

	back := model.ToHealthRecord()
	if back.HeartRate == nil || *back.HeartRate != heartRate {
		t.Fatalf("heart rate lost: %v", back.HeartRate)
	}
	if back.BloodPressure == nil || *back.BloodPressure != bp {
		t.Fatalf("blood pressure lost: %v", back.BloodPressure)
	}
	if back.BloodSugar != nil {
		t.Fatal("absent blood sugar must stay absent")
	}
	if back.RecordedAt == nil || !back.RecordedAt.Equal(recordedAt) {
		t.Fatalf("recorded_at lost: %v", back.RecordedAt)
	}
}

func TestFromHealthRecordDefaultsRecordedAt(t *testing.T) {
	before := time.Now().UTC()
	model := FromHealthRecord("subject-1", models.HealthRecord{})
	after := time.Now().UTC()

	if model.RecordedAt.Before(before) || model.RecordedAt.After(after) {
		t.Fatalf("expected recorded_at to default to now, got %v", model.RecordedAt)
	}
}
