package risk

import (
	"math/rand"

	"github.com/healthpulse-ai/platform/pkg/common/models"
)

// StratifiedSplit partitions samples into train and held-out sets, sampling
// the test fraction within each label class so the held-out set mirrors the
// class balance. The seed fixes the shuffle, so a given batch always splits
// the same way. Classes too small to spare a test row stay entirely in
// train.
func StratifiedSplit(samples [][]float64, labels []float64, testFraction float64, seed int64) (trainX [][]float64, trainY []float64, testX [][]float64, testY []float64) {
	rng := rand.New(rand.NewSource(seed))

	byClass := make(map[float64][]int)
	for i, label := range labels {
		byClass[label] = append(byClass[label], i)
	}

	// Deterministic class order: 0 before 1.
	for _, class := range []float64{0, 1} {
		indices, ok := byClass[class]
		if !ok {
			continue
		}
		shuffled := make([]int, len(indices))
		copy(shuffled, indices)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		testCount := int(testFraction * float64(len(shuffled)))
		for pos, idx := range shuffled {
			if pos < testCount {
				testX = append(testX, samples[idx])
				testY = append(testY, labels[idx])
			} else {
				trainX = append(trainX, samples[idx])
				trainY = append(trainY, labels[idx])
			}
		}
	}
	return trainX, trainY, testX, testY
}

// Evaluate scores binary predictions against labels: accuracy, precision,
// recall and F1 with class 1 as positive. Degenerate denominators yield 0
// rather than NaN.
func Evaluate(predictions []int, labels []float64) models.ModelMetrics {
	var tp, fp, fn, correct int
	for i, p := range predictions {
		actual := int(labels[i])
		if p == actual {
			correct++
		}
		switch {
		case p == 1 && actual == 1:
			tp++
		case p == 1 && actual == 0:
			fp++
		case p == 0 && actual == 1:
			fn++
		}
	}

	metrics := models.ModelMetrics{}
	if len(predictions) > 0 {
		metrics.Accuracy = float64(correct) / float64(len(predictions))
	}
	if tp+fp > 0 {
		metrics.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		metrics.Recall = float64(tp) / float64(tp+fn)
	}
	if metrics.Precision+metrics.Recall > 0 {
		metrics.F1 = 2 * metrics.Precision * metrics.Recall / (metrics.Precision + metrics.Recall)
	}
	return metrics
}
