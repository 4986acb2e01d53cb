package scoring

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Range is a closed [Low, High] interval of acceptable values.
type Range struct {
	Low  float64 `yaml:"low" json:"low"`
	High float64 `yaml:"high" json:"high"`
}

// Ranges is the per-metric normal-range table driving status classification.
// Weight is interpreted on the BMI scale.
type Ranges struct {
	HeartRate  Range `yaml:"heart_rate" json:"heart_rate"`
	Systolic   Range `yaml:"systolic" json:"systolic"`
	Diastolic  Range `yaml:"diastolic" json:"diastolic"`
	BloodSugar Range `yaml:"blood_sugar" json:"blood_sugar"`
	SleepHours Range `yaml:"sleep_hours" json:"sleep_hours"`
	MoodScore  Range `yaml:"mood_score" json:"mood_score"`
	Weight     Range `yaml:"weight" json:"weight"`
}

// LoadRanges reads a range table from a YAML file, falling back to the
// built-in defaults when no path is configured.
func LoadRanges(path string) (Ranges, error) {
	if path == "" {
		return DefaultRanges(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultRanges(), err
	}

	var ranges Ranges
	if err := yaml.Unmarshal(content, &ranges); err != nil {
		return Ranges{}, err
	}
	if err := ranges.validate(); err != nil {
		return Ranges{}, err
	}
	return ranges, nil
}

func DefaultRanges() Ranges {
	return Ranges{
		HeartRate:  Range{Low: 60, High: 100},            // beats per minute
		Systolic:   Range{Low: 90, High: 140},            // mmHg
		Diastolic:  Range{Low: 60, High: 90},             // mmHg
		BloodSugar: Range{Low: 3.9, High: 6.1},           // mmol/L
		SleepHours: Range{Low: 7, High: 9},               // hours
		MoodScore:  Range{Low: 7, High: 10},              // self-reported 1..10
		Weight:     Range{Low: 18.5, High: 24.9},         // BMI
	}
}

func (r Ranges) validate() error {
	named := []struct {
		name string
		rng  Range
	}{
		{"heart_rate", r.HeartRate},
		{"systolic", r.Systolic},
		{"diastolic", r.Diastolic},
		{"blood_sugar", r.BloodSugar},
		{"sleep_hours", r.SleepHours},
		{"mood_score", r.MoodScore},
		{"weight", r.Weight},
	}
	for _, entry := range named {
		if entry.rng.Low == 0 && entry.rng.High == 0 {
			return fmt.Errorf("range %s missing", entry.name)
		}
		if entry.rng.Low >= entry.rng.High {
			return errors.New("range " + entry.name + " has low >= high")
		}
	}
	return nil
}
