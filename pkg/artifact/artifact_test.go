package artifact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/healthpulse-ai/platform/pkg/common/models"
	"github.com/healthpulse-ai/platform/pkg/ml/linear"
	"github.com/healthpulse-ai/platform/pkg/ml/scale"
)

func sampleArtifact(key string) *Artifact {
	return &Artifact{
		Key:          key,
		Algorithm:    "logistic",
		FeatureNames: []string{"a", "b"},
		Weights: linear.Weights{
			Bias:         0.5,
			Coefficients: []float64{1.5, -2.5},
		},
		Scaler: scale.Scaler{
			Mean:  []float64{10, 20},
			Scale: []float64{2, 4},
		},
		Metrics:   &models.ModelMetrics{Accuracy: 0.9, Precision: 0.8, Recall: 0.7, F1: 0.75},
		TrainedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func assertEqual(t *testing.T, got, want *Artifact) {
	t.Helper()
	if got.Key != want.Key || got.Algorithm != want.Algorithm {
		t.Fatalf("identity mismatch: %+v vs %+v", got, want)
	}
	if got.Weights.Bias != want.Weights.Bias {
		t.Fatalf("bias mismatch: %v vs %v", got.Weights.Bias, want.Weights.Bias)
	}
	for j := range want.Weights.Coefficients {
		if got.Weights.Coefficients[j] != want.Weights.Coefficients[j] {
			t.Fatalf("coefficient %d mismatch", j)
		}
	}
	for j := range want.Scaler.Mean {
		if got.Scaler.Mean[j] != want.Scaler.Mean[j] || got.Scaler.Scale[j] != want.Scaler.Scale[j] {
			t.Fatalf("scaler statistics mismatch at %d", j)
		}
	}
	if got.Metrics == nil || got.Metrics.Accuracy != want.Metrics.Accuracy {
		t.Fatalf("metrics mismatch: %+v", got.Metrics)
	}
}

func TestFSStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	want := sampleArtifact("diabetes")
	if err := store.Save(ctx, "diabetes", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "diabetes")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertEqual(t, got, want)
}

func TestFSStoreMissingKey(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if _, err := store.Load(context.Background(), "never-trained"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFSStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	first := sampleArtifact("diabetes")
	if err := store.Save(ctx, "diabetes", first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := sampleArtifact("diabetes")
	second.Weights.Bias = 99
	if err := store.Save(ctx, "diabetes", second); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := store.Load(ctx, "diabetes")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Weights.Bias != 99 {
		t.Fatalf("expected overwritten artifact, got bias %v", got.Weights.Bias)
	}
}

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	want := sampleArtifact("hypertension")
	if err := store.Save(ctx, "hypertension", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, "hypertension")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertEqual(t, got, want)

	if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistryGetBeforePut(t *testing.T) {
	registry := NewRegistry(NewMemStore())
	if _, err := registry.Get("diabetes"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistryPutThenGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	registry := NewRegistry(store)

	want := sampleArtifact("diabetes")
	if err := registry.Put(ctx, "diabetes", want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := registry.Get("diabetes")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Weights.Bias != want.Weights.Bias {
		t.Fatalf("cached artifact mismatch: %v", got.Weights.Bias)
	}

	// Put must have reached the store too.
	stored, err := store.Load(ctx, "diabetes")
	if err != nil {
		t.Fatalf("store load: %v", err)
	}
	assertEqual(t, stored, want)
}

func TestRegistryPreload(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	if err := store.Save(ctx, "diabetes", sampleArtifact("diabetes")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	registry := NewRegistry(store)
	if err := registry.Preload(ctx, "diabetes", "hypertension"); err != nil {
		t.Fatalf("preload: %v", err)
	}

	if _, err := registry.Get("diabetes"); err != nil {
		t.Fatalf("expected preloaded artifact: %v", err)
	}
	if _, err := registry.Get("hypertension"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("untrained key must stay absent, got %v", err)
	}
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) (*Artifact, error) {
	return nil, ErrNotFound
}

func (failingStore) Save(context.Context, string, *Artifact) error {
	return errors.New("store unavailable")
}

func TestRegistryPutRollsBackOnStoreFailure(t *testing.T) {
	registry := NewRegistry(failingStore{})

	if err := registry.Put(context.Background(), "diabetes", sampleArtifact("diabetes")); err == nil {
		t.Fatal("expected store failure to surface")
	}
	if _, err := registry.Get("diabetes"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("failed put must not become visible, got %v", err)
	}
}
