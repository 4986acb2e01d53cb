// Package federated implements the local-train / global-update / predict
// parameter-exchange contract. One process owns one live (model, scaler)
// pair; parameter bundles cross the boundary by value only. How bundles
// travel between parties, and any cross-party averaging, is the caller's
// business: a global update installs whatever bundle it is handed, verbatim.
package federated

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/healthpulse-ai/platform/pkg/artifact"
	"github.com/healthpulse-ai/platform/pkg/common/logger"
	"github.com/healthpulse-ai/platform/pkg/common/models"
	"github.com/healthpulse-ai/platform/pkg/health"
	"github.com/healthpulse-ai/platform/pkg/ml/linear"
	"github.com/healthpulse-ai/platform/pkg/ml/scale"
	"github.com/healthpulse-ai/platform/pkg/observability/metrics"
)

// ModelKey is the fixed artifact key for the exchange's single model.
const ModelKey = "federated"

// healthyThreshold is the generic-score cutoff separating label 1 from 0.
const healthyThreshold = 0.7

var (
	ErrNoTrainingData  = errors.New("no training data")
	ErrModelNotTrained = errors.New("federated model not trained")
	ErrBadBundle       = errors.New("parameter bundle has wrong shape")
)

// ParameterBundle is a value-type snapshot of a trained linear model and its
// scaler statistics. It is the only thing exchanged with other participants.
type ParameterBundle struct {
	Weights     []float64 `json:"weights"` // one per feature
	Intercept   float64   `json:"intercept"`
	ScalerMean  []float64 `json:"scaler_mean"`
	ScalerScale []float64 `json:"scaler_scale"`
}

type Options struct {
	Epochs       int
	LearningRate float64
}

// Exchange owns the live federated (model, scaler) pair and keeps it in
// lockstep with its persisted artifact: state mutates only after the store
// has durably accepted the replacement.
type Exchange struct {
	store  artifact.Store
	opts   Options
	mu     sync.RWMutex
	model  *linear.Weights
	scaler *scale.Scaler
}

// NewExchange builds an exchange and restores any previously persisted
// model. A missing artifact is not an error; the exchange starts untrained.
func NewExchange(ctx context.Context, store artifact.Store, opts Options) (*Exchange, error) {
	if opts.Epochs <= 0 {
		opts.Epochs = 300
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = 0.05
	}
	ex := &Exchange{store: store, opts: opts}

	a, err := store.Load(ctx, ModelKey)
	if errors.Is(err, artifact.ErrNotFound) {
		return ex, nil
	}
	if err != nil {
		return nil, fmt.Errorf("restore federated model: %w", err)
	}
	weights := a.Weights
	scaler := a.Scaler
	ex.model = &weights
	ex.scaler = &scaler
	logger.Log.Info("Federated model restored")
	return ex, nil
}

// LocalTrain fits the model on this participant's records and returns a
// bundle snapshot of the fitted parameters. An empty batch is a defined
// no-data outcome, not a failure of the exchange itself.
func (ex *Exchange) LocalTrain(ctx context.Context, records []models.HealthRecord) (*ParameterBundle, error) {
	if len(records) == 0 {
		return nil, ErrNoTrainingData
	}

	samples := health.BuildMatrix(records)
	labels := make([]float64, len(records))
	for i, rec := range records {
		if health.Score(rec) >= healthyThreshold {
			labels[i] = 1
		}
	}

	scaler := &scale.Scaler{}
	scaled := scaler.FitTransform(samples)
	weights, _ := linear.TrainLogistic(scaled, labels, linear.Options{
		Epochs:       ex.opts.Epochs,
		LearningRate: ex.opts.LearningRate,
	})

	if err := ex.persist(ctx, weights, scaler); err != nil {
		return nil, err
	}

	ex.mu.Lock()
	ex.model = &weights
	ex.scaler = scaler
	ex.mu.Unlock()

	metrics.IncFederatedExchanges()
	return ex.snapshot(), nil
}

// ApplyGlobal installs an aggregated bundle verbatim: weights, intercept and
// scaler statistics replace the held values with no local averaging. The
// replacement is persisted before it becomes visible.
func (ex *Exchange) ApplyGlobal(ctx context.Context, bundle ParameterBundle) error {
	if len(bundle.Weights) != health.FeatureCount ||
		len(bundle.ScalerMean) != health.FeatureCount ||
		len(bundle.ScalerScale) != health.FeatureCount {
		return ErrBadBundle
	}

	weights := linear.Weights{
		Bias:         bundle.Intercept,
		Coefficients: append([]float64(nil), bundle.Weights...),
	}
	scaler := &scale.Scaler{
		Mean:  append([]float64(nil), bundle.ScalerMean...),
		Scale: append([]float64(nil), bundle.ScalerScale...),
	}

	if err := ex.persist(ctx, weights, scaler); err != nil {
		return err
	}

	ex.mu.Lock()
	ex.model = &weights
	ex.scaler = scaler
	ex.mu.Unlock()

	metrics.IncFederatedExchanges()
	return nil
}

// Predict scores one record with the currently held parameters.
func (ex *Exchange) Predict(rec models.HealthRecord) (*models.FederatedPrediction, error) {
	ex.mu.RLock()
	model, scaler := ex.model, ex.scaler
	ex.mu.RUnlock()

	if model == nil || scaler == nil {
		return nil, ErrModelNotTrained
	}

	vector := scaler.Transform(health.BuildVector(rec))
	probability := linear.Predict(*model, vector)
	prediction := 0
	if probability >= 0.5 {
		prediction = 1
	}

	metrics.IncFederatedExchanges()
	return &models.FederatedPrediction{
		Prediction:  prediction,
		Probability: probability,
		HealthScore: health.Score(rec),
	}, nil
}

// Bundle returns a snapshot of the currently held parameters, or nil when
// untrained.
func (ex *Exchange) Bundle() *ParameterBundle {
	return ex.snapshot()
}

func (ex *Exchange) snapshot() *ParameterBundle {
	ex.mu.RLock()
	defer ex.mu.RUnlock()
	if ex.model == nil || ex.scaler == nil {
		return nil
	}
	return &ParameterBundle{
		Weights:     append([]float64(nil), ex.model.Coefficients...),
		Intercept:   ex.model.Bias,
		ScalerMean:  append([]float64(nil), ex.scaler.Mean...),
		ScalerScale: append([]float64(nil), ex.scaler.Scale...),
	}
}

func (ex *Exchange) persist(ctx context.Context, weights linear.Weights, scaler *scale.Scaler) error {
	a := &artifact.Artifact{
		Key:          ModelKey,
		Algorithm:    "logistic",
		FeatureNames: health.FeatureNames,
		Weights:      weights,
		Scaler:       *scaler.Clone(),
		TrainedAt:    time.Now().UTC(),
	}
	if err := ex.store.Save(ctx, ModelKey, a); err != nil {
		return fmt.Errorf("persist federated model: %w", err)
	}
	return nil
}
