// Package scale provides zero-mean/unit-variance feature scaling.
//
// Two scaler lifecycles coexist in the pipeline: the preprocessing handler
// fits a throwaway scaler on every batch, while the risk and federated
// models persist the scaler fitted at training time and reuse it for every
// prediction. Scaler and model are paired; applying one model's scaler to
// another model's weights silently corrupts probabilities.
package scale

import "math"

// Scaler centers each feature on its mean and divides by its standard
// deviation. Constant features keep scale 1 so transformed values stay 0.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Fit computes per-feature statistics over the batch.
func (s *Scaler) Fit(samples [][]float64) {
	if len(samples) == 0 {
		s.Mean = nil
		s.Scale = nil
		return
	}
	featureCount := len(samples[0])
	s.Mean = make([]float64, featureCount)
	s.Scale = make([]float64, featureCount)

	for j := 0; j < featureCount; j++ {
		var sum float64
		for _, sample := range samples {
			sum += sample[j]
		}
		s.Mean[j] = sum / float64(len(samples))
	}
	for j := 0; j < featureCount; j++ {
		var sq float64
		for _, sample := range samples {
			diff := sample[j] - s.Mean[j]
			sq += diff * diff
		}
		std := math.Sqrt(sq / float64(len(samples)))
		if std == 0 {
			std = 1
		}
		s.Scale[j] = std
	}
}

// Transform maps one sample through the fitted statistics. An unfitted
// scaler passes values through unchanged.
func (s *Scaler) Transform(sample []float64) []float64 {
	out := make([]float64, len(sample))
	copy(out, sample)
	for j := range out {
		if j < len(s.Mean) && j < len(s.Scale) {
			out[j] = (out[j] - s.Mean[j]) / s.Scale[j]
		}
	}
	return out
}

// TransformBatch maps every sample through the fitted statistics.
func (s *Scaler) TransformBatch(samples [][]float64) [][]float64 {
	out := make([][]float64, 0, len(samples))
	for _, sample := range samples {
		out = append(out, s.Transform(sample))
	}
	return out
}

// FitTransform fits on the batch and returns the scaled copy.
func (s *Scaler) FitTransform(samples [][]float64) [][]float64 {
	s.Fit(samples)
	return s.TransformBatch(samples)
}

// Fitted reports whether statistics have been computed or installed.
func (s *Scaler) Fitted() bool {
	return len(s.Mean) > 0 && len(s.Scale) > 0
}

// Clone returns an independent copy; bundles exchanged with other parties
// must never alias the live statistics.
func (s *Scaler) Clone() *Scaler {
	out := &Scaler{
		Mean:  make([]float64, len(s.Mean)),
		Scale: make([]float64, len(s.Scale)),
	}
	copy(out.Mean, s.Mean)
	copy(out.Scale, s.Scale)
	return out
}
