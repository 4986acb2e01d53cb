package linear

import "testing"

// separable is a trivially linearly separable batch on one feature.
func separable() ([][]float64, []float64) {
	samples := [][]float64{
		{-2}, {-1.5}, {-1.2}, {-1}, {-0.8},
		{0.8}, {1}, {1.2}, {1.5}, {2},
	}
	labels := []float64{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	return samples, labels
}

func TestTrainLogisticSeparatesClasses(t *testing.T) {
	samples, labels := separable()
	weights, metrics := TrainLogistic(samples, labels, Options{Epochs: 500, LearningRate: 0.5})

	if metrics.Accuracy != 1.0 {
		t.Fatalf("expected perfect training accuracy, got %v", metrics.Accuracy)
	}
	for i, sample := range samples {
		if got := Classify(weights, sample); got != int(labels[i]) {
			t.Fatalf("sample %d misclassified: want %v got %d", i, labels[i], got)
		}
	}
}

func TestTrainLogisticIsDeterministic(t *testing.T) {
	samples, labels := separable()
	first, _ := TrainLogistic(samples, labels, Options{Epochs: 200, LearningRate: 0.1})
	second, _ := TrainLogistic(samples, labels, Options{Epochs: 200, LearningRate: 0.1})

	if first.Bias != second.Bias {
		t.Fatalf("bias differs between identical runs: %v vs %v", first.Bias, second.Bias)
	}
	for j := range first.Coefficients {
		if first.Coefficients[j] != second.Coefficients[j] {
			t.Fatalf("coefficient %d differs between identical runs", j)
		}
	}
}

func TestPredictIsAProbability(t *testing.T) {
	samples, labels := separable()
	weights, _ := TrainLogistic(samples, labels, Options{Epochs: 200, LearningRate: 0.1})

	for _, sample := range [][]float64{{-100}, {-1}, {0}, {1}, {100}} {
		p := Predict(weights, sample)
		if p < 0 || p > 1 {
			t.Fatalf("probability out of range for %v: %v", sample, p)
		}
	}

	if Predict(weights, []float64{-3}) >= Predict(weights, []float64{3}) {
		t.Fatal("probability should increase along the positive direction")
	}
}

func TestTrainLogisticEmptyBatch(t *testing.T) {
	weights, metrics := TrainLogistic(nil, nil, Options{})
	if len(weights.Coefficients) != 0 || weights.Bias != 0 {
		t.Fatalf("empty batch must yield zero weights, got %+v", weights)
	}
	if metrics.Accuracy != 0 {
		t.Fatalf("empty batch must yield zero metrics, got %+v", metrics)
	}
}

func TestClassifyThreshold(t *testing.T) {
	// Zero weights give probability exactly 0.5, which classifies as 1.
	if got := Classify(Weights{Coefficients: []float64{0}}, []float64{1}); got != 1 {
		t.Fatalf("probability 0.5 should classify as 1, got %d", got)
	}
	if got := Classify(Weights{Bias: -5, Coefficients: []float64{0}}, []float64{1}); got != 0 {
		t.Fatalf("low probability should classify as 0, got %d", got)
	}
}
