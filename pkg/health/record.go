// Package health holds the record parsing, feature encoding and rule-based
// scoring shared by the risk models and the federated exchange.
package health

import (
	"strconv"
	"strings"

	"github.com/healthpulse-ai/platform/pkg/common/models"
)

// BloodPressure is the expanded form of the composite "systolic/diastolic"
// field.
type BloodPressure struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// ParsedRecord is a HealthRecord with its blood pressure split into numeric
// halves. BP stays nil when the raw field is absent or malformed; downstream
// scoring treats that as the metric not being measured.
type ParsedRecord struct {
	models.HealthRecord
	BP *BloodPressure
}

// ParseBloodPressure splits a raw "120/80" style value. Any malformed input
// reports ok=false instead of an error; garbled device feeds must never take
// down a batch.
func ParseBloodPressure(raw string) (BloodPressure, bool) {
	parts := strings.Split(raw, "/")
	if len(parts) != 2 {
		return BloodPressure{}, false
	}
	systolic, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return BloodPressure{}, false
	}
	diastolic, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return BloodPressure{}, false
	}
	return BloodPressure{Systolic: systolic, Diastolic: diastolic}, true
}

// Parse expands the composite fields of a record. It never fails: fields that
// cannot be decoded are simply left absent in the result.
func Parse(rec models.HealthRecord) ParsedRecord {
	parsed := ParsedRecord{HealthRecord: rec}
	if rec.BloodPressure != nil {
		if bp, ok := ParseBloodPressure(*rec.BloodPressure); ok {
			parsed.BP = &bp
		}
	}
	return parsed
}
