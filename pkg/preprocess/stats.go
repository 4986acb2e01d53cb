package preprocess

import (
	"math"
	"sort"
)

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// std is the population standard deviation, matching how the scaler
// normalizes fitted batches.
func std(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	m := mean(data)
	var sq float64
	for _, v := range data {
		diff := v - m
		sq += diff * diff
	}
	return math.Sqrt(sq / float64(len(data)))
}

// percentile interpolates linearly between closest ranks, so quartiles match
// the usual dataframe convention.
func percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	index := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func median(data []float64) float64 {
	return percentile(data, 50)
}
