package scoring

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/healthpulse-ai/platform/pkg/common/models"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }
func intp(v int) *int        { return &v }

func allNormalRecord() models.HealthRecord {
	return models.HealthRecord{
		HeartRate:     f64(75),
		BloodPressure: str("120/80"),
		BloodSugar:    f64(5.5),
		Weight:        f64(22),
		SleepHours:    f64(7.5),
		MoodScore:     intp(8),
	}
}

func TestAnalyzeAllNormal(t *testing.T) {
	engine := NewEngine(DefaultRanges())
	analysis := engine.Analyze(allNormalRecord())

	if len(analysis) != 6 {
		t.Fatalf("expected 6 analyzed metrics, got %d", len(analysis))
	}
	for metric, result := range analysis {
		if result.Status != StatusNormal {
			t.Fatalf("%s: expected normal, got %s", metric, result.Status)
		}
		if result.Description == "" {
			t.Fatalf("%s: missing description", metric)
		}
	}
}

func TestAnalyzeOmitsAbsentMetrics(t *testing.T) {
	engine := NewEngine(DefaultRanges())
	analysis := engine.Analyze(models.HealthRecord{HeartRate: f64(75)})

	if len(analysis) != 1 {
		t.Fatalf("expected 1 analyzed metric, got %d", len(analysis))
	}
	if _, ok := analysis["heart_rate"]; !ok {
		t.Fatal("heart_rate missing from analysis")
	}
}

func TestAnalyzeMalformedBloodPressure(t *testing.T) {
	engine := NewEngine(DefaultRanges())
	analysis := engine.Analyze(models.HealthRecord{BloodPressure: str("not-a-reading")})

	result, ok := analysis["blood_pressure"]
	if !ok {
		t.Fatal("submitted blood pressure reading must be reported")
	}
	if result.Status != StatusUnknown {
		t.Fatalf("expected unknown status, got %s", result.Status)
	}
}

func TestAnalyzeStatusDirections(t *testing.T) {
	engine := NewEngine(DefaultRanges())
	analysis := engine.Analyze(models.HealthRecord{
		HeartRate:     f64(150),
		BloodPressure: str("80/50"),
		SleepHours:    f64(3),
	})

	if analysis["heart_rate"].Status != StatusHigh {
		t.Fatalf("heart rate 150 should be high, got %s", analysis["heart_rate"].Status)
	}
	if analysis["blood_pressure"].Status != StatusLow {
		t.Fatalf("blood pressure 80/50 should be low, got %s", analysis["blood_pressure"].Status)
	}
	if analysis["sleep_hours"].Status != StatusLow {
		t.Fatalf("sleep 3h should be low, got %s", analysis["sleep_hours"].Status)
	}
}

func TestCompositeScoreAllNormal(t *testing.T) {
	engine := NewEngine(DefaultRanges())
	if got := engine.CompositeScore(allNormalRecord()); got != 1.0 {
		t.Fatalf("expected score 1.0, got %v", got)
	}
}

func TestCompositeScoreAllBad(t *testing.T) {
	engine := NewEngine(DefaultRanges())
	rec := models.HealthRecord{
		HeartRate:     f64(150),
		BloodPressure: str("180/110"),
		BloodSugar:    f64(9.0),
		SleepHours:    f64(2),
		MoodScore:     intp(4),
	}
	if got := engine.CompositeScore(rec); got != 0.0 {
		t.Fatalf("expected score 0.0, got %v", got)
	}
}

func TestCompositeScoreMoodFloor(t *testing.T) {
	engine := NewEngine(DefaultRanges())

	// Mood 6 is below the status range but satisfies the composite floor.
	rec := models.HealthRecord{MoodScore: intp(MoodFloor)}
	if got := engine.CompositeScore(rec); got != 1.0 {
		t.Fatalf("mood at the floor should count in range, got %v", got)
	}
	if status := engine.Analyze(rec)["mood_score"].Status; status != StatusLow {
		t.Fatalf("status classifier should still call mood 6 low, got %s", status)
	}
}

func TestCompositeScoreIgnoresWeightAndAbsents(t *testing.T) {
	engine := NewEngine(DefaultRanges())

	// Weight is not part of the composite even when measured and abnormal.
	rec := models.HealthRecord{HeartRate: f64(75), Weight: f64(90)}
	if got := engine.CompositeScore(rec); got != 1.0 {
		t.Fatalf("weight must not enter the composite, got %v", got)
	}

	if got := engine.CompositeScore(models.HealthRecord{}); got != 0 {
		t.Fatalf("empty record must score 0, got %v", got)
	}
}

func TestTrend(t *testing.T) {
	if got := Trend([]float64{1, 1, 1, 1}); got != 0 {
		t.Fatalf("flat series must trend 0, got %v", got)
	}
	if got := Trend([]float64{0, 1, 2, 3}); math.Abs(got-1) > 1e-9 {
		t.Fatalf("unit-step series must trend 1, got %v", got)
	}
	if got := Trend([]float64{3, 2, 1, 0}); math.Abs(got+1) > 1e-9 {
		t.Fatalf("falling series must trend -1, got %v", got)
	}
	if got := Trend([]float64{5}); got != 0 {
		t.Fatalf("single point has no trend, got %v", got)
	}
	if got := Trend(nil); got != 0 {
		t.Fatalf("empty series has no trend, got %v", got)
	}
}

func TestRecommendationsAllNormal(t *testing.T) {
	engine := NewEngine(DefaultRanges())
	recommendations := Recommendations(engine.Analyze(allNormalRecord()))

	if len(recommendations) != 1 {
		t.Fatalf("expected single reinforcement line, got %v", recommendations)
	}
	if recommendations[0] != allNormalAdvice {
		t.Fatalf("unexpected reinforcement line: %q", recommendations[0])
	}
}

func TestRecommendationsAbnormalMetrics(t *testing.T) {
	engine := NewEngine(DefaultRanges())
	rec := models.HealthRecord{
		HeartRate:     f64(150),
		BloodPressure: str("180/110"),
		SleepHours:    f64(2),
	}
	recommendations := Recommendations(engine.Analyze(rec))

	if len(recommendations) != 9 {
		t.Fatalf("expected 3 lines per abnormal metric, got %d: %v", len(recommendations), recommendations)
	}
	for _, line := range recommendations {
		if line == allNormalAdvice {
			t.Fatal("reinforcement line must not appear with abnormal metrics")
		}
	}
}

func TestRecommendationsAreStable(t *testing.T) {
	engine := NewEngine(DefaultRanges())
	rec := models.HealthRecord{
		HeartRate:  f64(150),
		BloodSugar: f64(9),
		SleepHours: f64(2),
	}
	first := Recommendations(engine.Analyze(rec))
	for run := 0; run < 5; run++ {
		again := Recommendations(engine.Analyze(rec))
		if len(again) != len(first) {
			t.Fatalf("length changed between runs: %d vs %d", len(first), len(again))
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("line %d reordered between runs", i)
			}
		}
	}
}

func TestScoreTrendRecommendations(t *testing.T) {
	low := ScoreTrendRecommendations(0.5, 0)
	if len(low) != 2 {
		t.Fatalf("low score tier should add 2 lines, got %v", low)
	}

	mid := ScoreTrendRecommendations(0.7, 0)
	if len(mid) != 2 {
		t.Fatalf("mid score tier should add 2 lines, got %v", mid)
	}

	high := ScoreTrendRecommendations(0.9, 0)
	if len(high) != 0 {
		t.Fatalf("high flat score needs no advice, got %v", high)
	}

	declining := ScoreTrendRecommendations(0.9, -0.2)
	if len(declining) != 1 {
		t.Fatalf("declining trend should add 1 line, got %v", declining)
	}

	improving := ScoreTrendRecommendations(0.5, 0.2)
	if len(improving) != 3 {
		t.Fatalf("low and improving should add 3 lines, got %v", improving)
	}
}

func TestMentalStateStableMood(t *testing.T) {
	batch := []models.HealthRecord{
		{MoodScore: intp(8)},
		{MoodScore: intp(8)},
		{MoodScore: intp(8)},
	}
	summary := MentalState(batch)
	if summary.MoodStability != 0 {
		t.Fatalf("identical moods have stability 0, got %v", summary.MoodStability)
	}
	if summary.MoodTrend != 0 {
		t.Fatalf("flat moods have trend 0, got %v", summary.MoodTrend)
	}
	if summary.StressLevel != StressLow {
		t.Fatalf("average mood 8 is low stress, got %s", summary.StressLevel)
	}
	if len(summary.Recommendations) != 0 {
		t.Fatalf("stable low-stress mood needs no advice, got %v", summary.Recommendations)
	}
}

func TestMentalStateLowMood(t *testing.T) {
	batch := []models.HealthRecord{
		{MoodScore: intp(3)},
		{MoodScore: intp(3)},
		{MoodScore: intp(2)},
	}
	summary := MentalState(batch)
	if summary.StressLevel != StressHigh {
		t.Fatalf("average mood below 4 is high stress, got %s", summary.StressLevel)
	}
	if len(summary.Recommendations) == 0 {
		t.Fatal("expected recommendations for a stressed subject")
	}
}

func TestMentalStateMissingMoodCountsAsZero(t *testing.T) {
	batch := []models.HealthRecord{
		{MoodScore: intp(8)},
		{},
	}
	summary := MentalState(batch)
	if summary.StressLevel != StressMedium {
		t.Fatalf("average of 8 and 0 is medium stress, got %s", summary.StressLevel)
	}
}

func TestLoadRangesDefaultsWhenUnconfigured(t *testing.T) {
	ranges, err := LoadRanges("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ranges != DefaultRanges() {
		t.Fatalf("expected built-in defaults, got %+v", ranges)
	}
}

func TestLoadRangesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranges.yaml")
	content := []byte(`
heart_rate: {low: 55, high: 105}
systolic: {low: 90, high: 140}
diastolic: {low: 60, high: 90}
blood_sugar: {low: 3.9, high: 6.1}
sleep_hours: {low: 6, high: 10}
mood_score: {low: 7, high: 10}
weight: {low: 18.5, high: 24.9}
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	ranges, err := LoadRanges(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ranges.HeartRate.Low != 55 || ranges.HeartRate.High != 105 {
		t.Fatalf("heart rate range not applied: %+v", ranges.HeartRate)
	}
	if ranges.SleepHours.High != 10 {
		t.Fatalf("sleep range not applied: %+v", ranges.SleepHours)
	}
}

func TestLoadRangesRejectsInvertedBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranges.yaml")
	content := []byte(`
heart_rate: {low: 100, high: 60}
systolic: {low: 90, high: 140}
diastolic: {low: 60, high: 90}
blood_sugar: {low: 3.9, high: 6.1}
sleep_hours: {low: 7, high: 9}
mood_score: {low: 7, high: 10}
weight: {low: 18.5, high: 24.9}
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	if _, err := LoadRanges(path); err == nil {
		t.Fatal("expected inverted bounds to be rejected")
	}
}
