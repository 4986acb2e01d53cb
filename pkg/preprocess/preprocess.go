// Package preprocess sanitizes record batches column-wise before they feed
// statistics or model training: impute gaps, tame outliers, normalize.
//
// The handler is a pure batch transform. Each call fits its statistics fresh
// on the batch it receives and keeps nothing across calls; the persisted
// scalers living inside model artifacts are a separate lifecycle and are not
// touched here.
package preprocess

import (
	"math"
	"sort"

	"github.com/healthpulse-ai/platform/pkg/common/models"
	"github.com/healthpulse-ai/platform/pkg/health"
)

// DefaultContamination is the fraction of points per column treated as
// anomalous by the density pass.
const DefaultContamination = 0.1

// Frame is a column-oriented batch. A nil cell means the value was missing
// in the source record. Column order is kept so output rows line up with
// input rows.
type Frame struct {
	Columns     []string
	Numeric     map[string][]*float64
	Categorical map[string][]*string
	Rows        int
}

// FromRecords lays a record batch out as numeric columns in feature order.
func FromRecords(records []models.HealthRecord) *Frame {
	frame := &Frame{
		Columns:     append([]string(nil), health.FeatureNames...),
		Numeric:     make(map[string][]*float64),
		Categorical: make(map[string][]*string),
		Rows:        len(records),
	}
	for _, name := range frame.Columns {
		frame.Numeric[name] = make([]*float64, len(records))
	}

	for i, rec := range records {
		parsed := health.Parse(rec)
		frame.Numeric["heart_rate"][i] = rec.HeartRate
		if parsed.BP != nil {
			systolic, diastolic := parsed.BP.Systolic, parsed.BP.Diastolic
			frame.Numeric["systolic"][i] = &systolic
			frame.Numeric["diastolic"][i] = &diastolic
		}
		frame.Numeric["blood_sugar"][i] = rec.BloodSugar
		frame.Numeric["weight"][i] = rec.Weight
		frame.Numeric["sleep_hours"][i] = rec.SleepHours
		if rec.MoodScore != nil {
			mood := float64(*rec.MoodScore)
			frame.Numeric["mood_score"][i] = &mood
		}
	}
	return frame
}

// Matrix returns the frame as row-major vectors in column order, with any
// still-missing cells as 0.
func (f *Frame) Matrix() [][]float64 {
	matrix := make([][]float64, f.Rows)
	for i := range matrix {
		row := make([]float64, len(f.Columns))
		for j, name := range f.Columns {
			if cell := f.Numeric[name][i]; cell != nil {
				row[j] = *cell
			}
		}
		matrix[i] = row
	}
	return matrix
}

// Processor runs the imputation, outlier and normalization passes over a
// frame. It holds no per-batch state.
type Processor struct {
	contamination float64
}

func NewProcessor() *Processor {
	return &Processor{contamination: DefaultContamination}
}

// Process sanitizes the frame in place and returns it: mean/mode imputation,
// IQR clipping followed by a density-based anomaly sweep, then z-score
// normalization of every numeric column. Clipping runs before the anomaly
// sweep so extreme points are already pulled in when deviations are ranked.
func (p *Processor) Process(frame *Frame) *Frame {
	for _, name := range frame.Columns {
		if col, ok := frame.Numeric[name]; ok {
			p.imputeNumeric(col)
			p.handleOutliers(col)
			p.normalize(col)
			continue
		}
		if col, ok := frame.Categorical[name]; ok {
			imputeCategorical(col)
		}
	}
	return frame
}

// imputeNumeric fills gaps with the column mean. A column with no values at
// all is left untouched; there is nothing to impute from, and downstream
// feature encoding turns the gaps into zeros.
func (p *Processor) imputeNumeric(col []*float64) {
	present := presentValues(col)
	if len(present) == 0 {
		return
	}
	fill := mean(present)
	for i, cell := range col {
		if cell == nil {
			v := fill
			col[i] = &v
		}
	}
}

func imputeCategorical(col []*string) {
	counts := make(map[string]int)
	for _, cell := range col {
		if cell != nil {
			counts[*cell]++
		}
	}
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	// Deterministic mode: highest count, lexicographic tie-break.
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	fill := keys[0]
	for i, cell := range col {
		if cell == nil {
			v := fill
			col[i] = &v
		}
	}
}

// handleOutliers clips the column to the Tukey fences, then replaces the
// contamination share of points furthest from the clipped median with the
// clipped mean.
func (p *Processor) handleOutliers(col []*float64) {
	values := presentValues(col)
	if len(values) == 0 {
		return
	}

	q1 := percentile(values, 25)
	q3 := percentile(values, 75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	for _, cell := range col {
		if cell == nil {
			continue
		}
		if *cell < lower {
			*cell = lower
		} else if *cell > upper {
			*cell = upper
		}
	}

	clipped := presentValues(col)
	flagCount := int(math.Floor(p.contamination * float64(len(clipped))))
	if flagCount <= 0 {
		return
	}

	center := median(clipped)
	replacement := mean(clipped)

	type scored struct {
		index     int
		deviation float64
	}
	ranked := make([]scored, 0, len(col))
	for i, cell := range col {
		if cell == nil {
			continue
		}
		ranked = append(ranked, scored{index: i, deviation: math.Abs(*cell - center)})
	}
	// Stable ordering keeps the sweep deterministic when deviations tie.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].deviation > ranked[j].deviation
	})

	for _, hit := range ranked[:flagCount] {
		*col[hit.index] = replacement
	}
}

// normalize rescales the column to zero mean and unit variance. Constant
// columns collapse to zeros.
func (p *Processor) normalize(col []*float64) {
	values := presentValues(col)
	if len(values) == 0 {
		return
	}
	m := mean(values)
	s := std(values)
	if s == 0 {
		s = 1
	}
	for _, cell := range col {
		if cell == nil {
			continue
		}
		*cell = (*cell - m) / s
	}
}

func presentValues(col []*float64) []float64 {
	out := make([]float64, 0, len(col))
	for _, cell := range col {
		if cell != nil {
			out = append(out, *cell)
		}
	}
	return out
}
