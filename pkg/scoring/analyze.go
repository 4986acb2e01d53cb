// Package scoring is the rule-based engine: per-metric status
// classification, composite scoring, trend estimation and recommendation
// text. It consumes parsed records directly and involves no trained model.
package scoring

import (
	"github.com/healthpulse-ai/platform/pkg/common/models"
	"github.com/healthpulse-ai/platform/pkg/health"
)

type Status string

const (
	StatusLow     Status = "low"
	StatusNormal  Status = "normal"
	StatusHigh    Status = "high"
	StatusUnknown Status = "unknown"
)

// MetricAnalysis is the engine's verdict on one metric of one record.
type MetricAnalysis struct {
	Value       interface{} `json:"value"`
	Status      Status      `json:"status"`
	Description string      `json:"description"`
}

// metricOrder fixes iteration order so analysis maps and recommendation
// lists come out stable.
var metricOrder = []string{
	"heart_rate",
	"blood_pressure",
	"blood_sugar",
	"sleep_hours",
	"mood_score",
	"weight",
}

type Engine struct {
	ranges Ranges
}

func NewEngine(ranges Ranges) *Engine {
	return &Engine{ranges: ranges}
}

// Analyze classifies every metric present on the record. Metrics the record
// never measured are omitted; a blood pressure string that cannot be parsed
// is reported with status unknown rather than dropped, since the subject did
// submit a reading.
func (e *Engine) Analyze(rec models.HealthRecord) map[string]MetricAnalysis {
	analysis := make(map[string]MetricAnalysis)

	if rec.HeartRate != nil {
		status := statusOf(*rec.HeartRate, e.ranges.HeartRate)
		analysis["heart_rate"] = MetricAnalysis{
			Value:       *rec.HeartRate,
			Status:      status,
			Description: heartRateDescription(status),
		}
	}

	if rec.BloodPressure != nil {
		if bp, ok := health.ParseBloodPressure(*rec.BloodPressure); ok {
			status := e.bloodPressureStatus(bp)
			analysis["blood_pressure"] = MetricAnalysis{
				Value:       *rec.BloodPressure,
				Status:      status,
				Description: bloodPressureDescription(status),
			}
		} else {
			analysis["blood_pressure"] = MetricAnalysis{
				Value:       *rec.BloodPressure,
				Status:      StatusUnknown,
				Description: "Blood pressure reading is malformed and was not evaluated",
			}
		}
	}

	if rec.BloodSugar != nil {
		status := statusOf(*rec.BloodSugar, e.ranges.BloodSugar)
		analysis["blood_sugar"] = MetricAnalysis{
			Value:       *rec.BloodSugar,
			Status:      status,
			Description: bloodSugarDescription(status),
		}
	}

	if rec.SleepHours != nil {
		status := statusOf(*rec.SleepHours, e.ranges.SleepHours)
		analysis["sleep_hours"] = MetricAnalysis{
			Value:       *rec.SleepHours,
			Status:      status,
			Description: sleepDescription(status),
		}
	}

	if rec.MoodScore != nil {
		status := statusOf(float64(*rec.MoodScore), e.ranges.MoodScore)
		analysis["mood_score"] = MetricAnalysis{
			Value:       *rec.MoodScore,
			Status:      status,
			Description: moodDescription(status),
		}
	}

	if rec.Weight != nil {
		status := statusOf(*rec.Weight, e.ranges.Weight)
		analysis["weight"] = MetricAnalysis{
			Value:       *rec.Weight,
			Status:      status,
			Description: weightDescription(status),
		}
	}

	return analysis
}

// statusOf is the generic single-value comparator. Blood pressure does not
// go through it; both halves of the reading carry their own bounds.
func statusOf(value float64, r Range) Status {
	if value < r.Low {
		return StatusLow
	}
	if value > r.High {
		return StatusHigh
	}
	return StatusNormal
}

func (e *Engine) bloodPressureStatus(bp health.BloodPressure) Status {
	if bp.Systolic < e.ranges.Systolic.Low || bp.Diastolic < e.ranges.Diastolic.Low {
		return StatusLow
	}
	if bp.Systolic > e.ranges.Systolic.High || bp.Diastolic > e.ranges.Diastolic.High {
		return StatusHigh
	}
	return StatusNormal
}

func heartRateDescription(status Status) string {
	switch status {
	case StatusLow:
		return "Heart rate is low; fatigue or dizziness may occur"
	case StatusHigh:
		return "Heart rate is elevated; palpitations or anxiety may occur"
	default:
		return "Heart rate is normal and cardiac function looks good"
	}
}

func bloodPressureDescription(status Status) string {
	switch status {
	case StatusLow:
		return "Blood pressure is low; dizziness or fatigue may occur"
	case StatusHigh:
		return "Blood pressure is elevated and needs attention"
	default:
		return "Blood pressure is normal and circulation looks good"
	}
}

func bloodSugarDescription(status Status) string {
	switch status {
	case StatusLow:
		return "Blood sugar is low; hunger or dizziness may occur"
	case StatusHigh:
		return "Blood sugar is elevated and needs attention"
	default:
		return "Blood sugar is normal and metabolism looks good"
	}
}

func sleepDescription(status Status) string {
	switch status {
	case StatusLow:
		return "Sleep is too short and may affect daytime performance"
	case StatusHigh:
		return "Sleep is unusually long and may leave you sluggish"
	default:
		return "Sleep duration is in the restorative range"
	}
}

func moodDescription(status Status) string {
	if status == StatusLow {
		return "Mood is low and could use some attention"
	}
	return "Mood is in good shape, keep it up"
}

func weightDescription(status Status) string {
	switch status {
	case StatusLow:
		return "Weight is low; consider increasing nutritional intake"
	case StatusHigh:
		return "Weight is elevated and needs attention"
	default:
		return "Weight is in the healthy range"
	}
}
