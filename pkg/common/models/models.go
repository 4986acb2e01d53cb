package models

import (
	"time"
)

// HealthRecord is a single measurement snapshot as supplied by storage or an
// upstream device feed. Every field is optional; a nil pointer means the
// measurement was never taken, which is not the same as a zero reading.
type HealthRecord struct {
	HeartRate     *float64   `json:"heart_rate,omitempty"`
	BloodPressure *string    `json:"blood_pressure,omitempty"` // "systolic/diastolic", e.g. "120/80"
	BloodSugar    *float64   `json:"blood_sugar,omitempty"`    // mmol/L
	Weight        *float64   `json:"weight,omitempty"`
	SleepHours    *float64   `json:"sleep_hours,omitempty"`
	MoodScore     *int       `json:"mood_score,omitempty"` // 1..10
	RecordedAt    *time.Time `json:"recorded_at,omitempty"`
}

// Event Bus models
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // record, train, predict, assess, federated
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

// Model evaluation on the held-out split.
type ModelMetrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

type TrainingResult struct {
	Message string        `json:"message"`
	Metrics *ModelMetrics `json:"metrics,omitempty"`
}

type RiskPrediction struct {
	DiabetesRisk     float64  `json:"diabetes_risk"`
	HypertensionRisk float64  `json:"hypertension_risk"`
	Recommendations  []string `json:"recommendations"`
}

type HealthAssessment struct {
	AverageScore    float64  `json:"average_score"`
	Trend           float64  `json:"trend"`
	Recommendations []string `json:"recommendations"`
}

type FederatedPrediction struct {
	Prediction  int     `json:"prediction"` // 1 healthy, 0 needs attention
	Probability float64 `json:"probability"`
	HealthScore float64 `json:"health_score"`
}

type MentalStateSummary struct {
	MoodStability   float64  `json:"mood_stability"`
	MoodTrend       float64  `json:"mood_trend"`
	StressLevel     string   `json:"stress_level"` // low, medium, high
	Recommendations []string `json:"recommendations"`
}
