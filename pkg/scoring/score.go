package scoring

import (
	"github.com/healthpulse-ai/platform/pkg/common/models"
	"github.com/healthpulse-ai/platform/pkg/health"
)

// MoodFloor is the lowest mood score the composite counts as in range. The
// composite is looser about mood than the status classifier on purpose; the
// two rule sets are distinct and stay that way.
const MoodFloor = 6

// CompositeScore is the engine's per-record score: the fraction of measured
// metrics in range across heart rate, blood pressure, blood sugar, sleep and
// mood. Absent metrics are excluded from both sides of the fraction; a
// record measuring none of them scores 0.
//
// This is not the same rule the training labels use (health.Label); that
// one votes on three vital signs only.
func (e *Engine) CompositeScore(rec models.HealthRecord) float64 {
	inRange := 0
	counted := 0

	if rec.HeartRate != nil {
		if statusOf(*rec.HeartRate, e.ranges.HeartRate) == StatusNormal {
			inRange++
		}
		counted++
	}
	if rec.BloodPressure != nil {
		if bp, ok := health.ParseBloodPressure(*rec.BloodPressure); ok {
			if e.bloodPressureStatus(bp) == StatusNormal {
				inRange++
			}
			counted++
		}
	}
	if rec.BloodSugar != nil {
		if statusOf(*rec.BloodSugar, e.ranges.BloodSugar) == StatusNormal {
			inRange++
		}
		counted++
	}
	if rec.SleepHours != nil {
		if statusOf(*rec.SleepHours, e.ranges.SleepHours) == StatusNormal {
			inRange++
		}
		counted++
	}
	if rec.MoodScore != nil {
		if *rec.MoodScore >= MoodFloor {
			inRange++
		}
		counted++
	}

	if counted == 0 {
		return 0
	}
	return float64(inRange) / float64(counted)
}

// Trend fits a degree-1 least-squares line over the score sequence and
// returns its slope. Fewer than two points have no direction; the trend is 0.
func Trend(scores []float64) float64 {
	n := len(scores)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range scores {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (float64(n)*sumXY - sumX*sumY) / denom
}
