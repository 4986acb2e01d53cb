package scoring

import (
	"math"

	"github.com/healthpulse-ai/platform/pkg/common/models"
)

// Stress levels derived from average mood.
const (
	StressLow    = "low"
	StressMedium = "medium"
	StressHigh   = "high"
)

// MentalState summarizes a subject's mood series: stability (standard
// deviation), trend (linear slope) and a coarse stress level, with canned
// advice for whatever looks off. Records without a mood score contribute 0,
// matching how the mood series is assembled upstream.
func MentalState(records []models.HealthRecord) models.MentalStateSummary {
	moods := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.MoodScore != nil {
			moods = append(moods, float64(*rec.MoodScore))
		} else {
			moods = append(moods, 0)
		}
	}

	stability := populationStd(moods)
	trend := Trend(moods)
	stress := stressLevel(moods)

	return models.MentalStateSummary{
		MoodStability:   stability,
		MoodTrend:       trend,
		StressLevel:     stress,
		Recommendations: mentalAdvice(stability, trend, stress),
	}
}

func stressLevel(moods []float64) string {
	if len(moods) == 0 {
		return StressLow
	}
	var sum float64
	for _, m := range moods {
		sum += m
	}
	average := sum / float64(len(moods))
	switch {
	case average < 4:
		return StressHigh
	case average < 7:
		return StressMedium
	default:
		return StressLow
	}
}

func mentalAdvice(stability, trend float64, stress string) []string {
	var recommendations []string

	if stability > 0.3 {
		recommendations = append(recommendations,
			"Try mindfulness or meditation practice",
			"Keep a regular daily routine",
		)
	}
	if trend < -0.1 {
		recommendations = append(recommendations,
			"Talk things over with friends or family",
			"Consider speaking with a counselor",
		)
	}
	switch stress {
	case StressHigh:
		recommendations = append(recommendations,
			"Practice relaxation exercises",
			"Reduce work or study pressure where possible",
		)
	case StressMedium:
		recommendations = append(recommendations,
			"Keep up moderate exercise",
			"Make time for rest and relaxation",
		)
	}

	return recommendations
}

func populationStd(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		diff := v - mean
		sq += diff * diff
	}
	return math.Sqrt(sq / float64(len(values)))
}
