package health

import "github.com/healthpulse-ai/platform/pkg/common/models"

// FeatureCount is the width of every feature vector. Persisted model
// artifacts encode weights in this order; reordering or widening the vector
// invalidates them.
const FeatureCount = 7

// FeatureNames lists the vector slots in order.
var FeatureNames = []string{
	"heart_rate",
	"systolic",
	"diastolic",
	"blood_sugar",
	"weight",
	"sleep_hours",
	"mood_score",
}

// BuildVector encodes a record as a fixed-order numeric vector. Absent or
// unparsable fields contribute 0; the call never fails.
func BuildVector(rec models.HealthRecord) []float64 {
	parsed := Parse(rec)
	vector := make([]float64, FeatureCount)
	if rec.HeartRate != nil {
		vector[0] = *rec.HeartRate
	}
	if parsed.BP != nil {
		vector[1] = parsed.BP.Systolic
		vector[2] = parsed.BP.Diastolic
	}
	if rec.BloodSugar != nil {
		vector[3] = *rec.BloodSugar
	}
	if rec.Weight != nil {
		vector[4] = *rec.Weight
	}
	if rec.SleepHours != nil {
		vector[5] = *rec.SleepHours
	}
	if rec.MoodScore != nil {
		vector[6] = float64(*rec.MoodScore)
	}
	return vector
}

// BuildMatrix encodes a batch in input order.
func BuildMatrix(records []models.HealthRecord) [][]float64 {
	matrix := make([][]float64, 0, len(records))
	for _, rec := range records {
		matrix = append(matrix, BuildVector(rec))
	}
	return matrix
}

// BuildLabeled encodes a batch together with one binary training label per
// record, derived from the vital-sign label rule.
func BuildLabeled(records []models.HealthRecord) ([][]float64, []float64) {
	matrix := make([][]float64, 0, len(records))
	labels := make([]float64, 0, len(records))
	for _, rec := range records {
		matrix = append(matrix, BuildVector(rec))
		labels = append(labels, float64(Label(rec)))
	}
	return matrix, labels
}
