package health

import "github.com/healthpulse-ai/platform/pkg/common/models"

// Vital-sign bounds used by the generic score and the training label. The
// Scoring Engine keeps its own configurable table; these two rule sets are
// deliberately separate and must not be merged.
const (
	heartRateLow   = 60
	heartRateHigh  = 100
	systolicLow    = 90
	systolicHigh   = 140
	diastolicLow   = 60
	diastolicHigh  = 90
	bloodSugarLow  = 3.9
	bloodSugarHigh = 6.1
	sleepLow       = 7
	sleepHigh      = 9
	moodFloor      = 6
)

// Score is the generic five-metric composite: the fraction of measured
// metrics (heart rate, blood pressure, blood sugar, sleep, mood) that fall
// in range. Metrics absent from the record count in neither numerator nor
// denominator; a record with nothing measurable scores 0.
func Score(rec models.HealthRecord) float64 {
	inRange := 0
	counted := 0

	if rec.HeartRate != nil {
		if *rec.HeartRate >= heartRateLow && *rec.HeartRate <= heartRateHigh {
			inRange++
		}
		counted++
	}
	if rec.BloodPressure != nil {
		if bp, ok := ParseBloodPressure(*rec.BloodPressure); ok {
			if bp.Systolic >= systolicLow && bp.Systolic <= systolicHigh &&
				bp.Diastolic >= diastolicLow && bp.Diastolic <= diastolicHigh {
				inRange++
			}
			counted++
		}
	}
	if rec.BloodSugar != nil {
		if *rec.BloodSugar >= bloodSugarLow && *rec.BloodSugar <= bloodSugarHigh {
			inRange++
		}
		counted++
	}
	if rec.SleepHours != nil {
		if *rec.SleepHours >= sleepLow && *rec.SleepHours <= sleepHigh {
			inRange++
		}
		counted++
	}
	if rec.MoodScore != nil {
		if *rec.MoodScore >= moodFloor {
			inRange++
		}
		counted++
	}

	if counted == 0 {
		return 0
	}
	return float64(inRange) / float64(counted)
}

// Label derives the binary training target from the three vital signs only:
// heart rate, blood pressure and blood sugar. It reports 1 ("healthy") when
// at least 70% of the measured ones are in range. A record measuring none of
// the three gets 0: no evidence of health is not evidence of health.
func Label(rec models.HealthRecord) int {
	inRange := 0
	counted := 0

	if rec.HeartRate != nil {
		if *rec.HeartRate >= heartRateLow && *rec.HeartRate <= heartRateHigh {
			inRange++
		}
		counted++
	}
	if rec.BloodPressure != nil {
		if bp, ok := ParseBloodPressure(*rec.BloodPressure); ok {
			if bp.Systolic >= systolicLow && bp.Systolic <= systolicHigh &&
				bp.Diastolic >= diastolicLow && bp.Diastolic <= diastolicHigh {
				inRange++
			}
			counted++
		}
	}
	if rec.BloodSugar != nil {
		if *rec.BloodSugar >= bloodSugarLow && *rec.BloodSugar <= bloodSugarHigh {
			inRange++
		}
		counted++
	}

	if counted == 0 {
		return 0
	}
	if float64(inRange)/float64(counted) >= 0.7 {
		return 1
	}
	return 0
}
