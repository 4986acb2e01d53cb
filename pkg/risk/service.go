package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/healthpulse-ai/platform/pkg/artifact"
	"github.com/healthpulse-ai/platform/pkg/common/kafka"
	"github.com/healthpulse-ai/platform/pkg/common/logger"
	"github.com/healthpulse-ai/platform/pkg/common/models"
	"github.com/healthpulse-ai/platform/pkg/health"
	"github.com/healthpulse-ai/platform/pkg/ml/linear"
	"github.com/healthpulse-ai/platform/pkg/ml/scale"
	"github.com/healthpulse-ai/platform/pkg/observability/metrics"
	"github.com/healthpulse-ai/platform/pkg/scoring"
)

// Disease model keys. Each key owns one persisted artifact.
const (
	DiseaseDiabetes     = "diabetes"
	DiseaseHypertension = "hypertension"
)

const testFraction = 0.2

type Options struct {
	Epochs       int
	LearningRate float64
	Seed         int64
}

// Service trains and serves the per-disease risk classifiers and computes
// batch health assessments. All model state lives in the registry; the
// service itself is stateless and safe to share across handlers as long as
// writes to one disease key are externally serialized.
type Service struct {
	registry *artifact.Registry
	engine   *scoring.Engine
	producer *kafka.Producer
	opts     Options
}

func NewService(registry *artifact.Registry, engine *scoring.Engine, producer *kafka.Producer, opts Options) *Service {
	if opts.Epochs <= 0 {
		opts.Epochs = 300
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = 0.05
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	return &Service{registry: registry, engine: engine, producer: producer, opts: opts}
}

// Train fits the named disease model on the batch and atomically replaces
// its persisted artifact. Labels are derived from the vital-sign label rule,
// not from the engine's composite score.
func (s *Service) Train(ctx context.Context, disease string, records []models.HealthRecord) (*models.TrainingResult, error) {
	if disease != DiseaseDiabetes && disease != DiseaseHypertension {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDisease, disease)
	}

	samples, labels := health.BuildLabeled(records)
	if len(samples) == 0 {
		metrics.IncTrainingsFailed()
		return nil, ErrInsufficientData
	}

	scaler := &scale.Scaler{}
	scaled := scaler.FitTransform(samples)

	trainX, trainY, testX, testY := StratifiedSplit(scaled, labels, testFraction, s.opts.Seed)
	if len(trainX) == 0 {
		metrics.IncTrainingsFailed()
		return nil, ErrInsufficientData
	}

	weights, _ := linear.TrainLogistic(trainX, trainY, linear.Options{
		Epochs:       s.opts.Epochs,
		LearningRate: s.opts.LearningRate,
	})

	// Tiny batches may not spare a held-out row; fall back to scoring the
	// training split so the result still carries metrics.
	evalX, evalY := testX, testY
	if len(evalX) == 0 {
		evalX, evalY = trainX, trainY
	}
	predictions := make([]int, len(evalX))
	for i, sample := range evalX {
		predictions[i] = linear.Classify(weights, sample)
	}
	evaluated := Evaluate(predictions, evalY)

	a := &artifact.Artifact{
		Key:          disease,
		Algorithm:    "logistic",
		FeatureNames: health.FeatureNames,
		Weights:      weights,
		Scaler:       *scaler,
		Metrics:      &evaluated,
		TrainedAt:    time.Now().UTC(),
	}
	if err := s.registry.Put(ctx, disease, a); err != nil {
		metrics.IncTrainingsFailed()
		return nil, fmt.Errorf("persist %s model: %w", disease, err)
	}

	metrics.IncTrainingsCompleted()
	s.publish(ctx, "model.trained", map[string]interface{}{
		"disease":  disease,
		"samples":  len(samples),
		"accuracy": evaluated.Accuracy,
	})

	return &models.TrainingResult{
		Message: "model trained successfully",
		Metrics: &evaluated,
	}, nil
}

// PredictRisk scores one record through both disease models. Each artifact's
// own scaler transforms the vector before its weights apply; the pairs are
// never mixed.
func (s *Service) PredictRisk(ctx context.Context, rec models.HealthRecord) (*models.RiskPrediction, error) {
	diabetes, err := s.registry.Get(DiseaseDiabetes)
	if err != nil {
		return nil, ErrModelNotTrained
	}
	hypertension, err := s.registry.Get(DiseaseHypertension)
	if err != nil {
		return nil, ErrModelNotTrained
	}

	vector := health.BuildVector(rec)
	diabetesRisk := linear.Predict(diabetes.Weights, diabetes.Scaler.Transform(vector))
	hypertensionRisk := linear.Predict(hypertension.Weights, hypertension.Scaler.Transform(vector))

	metrics.IncPredictionsServed()
	s.publish(ctx, "risk.predicted", map[string]interface{}{
		"diabetes_risk":     diabetesRisk,
		"hypertension_risk": hypertensionRisk,
	})

	return &models.RiskPrediction{
		DiabetesRisk:     diabetesRisk,
		HypertensionRisk: hypertensionRisk,
		Recommendations:  riskAdvice(diabetesRisk, hypertensionRisk),
	}, nil
}

// Assess summarizes a time-ordered batch: average composite score, trend
// slope, and the score/trend advice tier. Per-metric advice needs a single
// record context and is not produced here.
func (s *Service) Assess(ctx context.Context, records []models.HealthRecord) (*models.HealthAssessment, error) {
	if len(records) == 0 {
		return nil, ErrInsufficientData
	}

	scores := make([]float64, 0, len(records))
	var sum float64
	for _, rec := range records {
		score := s.engine.CompositeScore(rec)
		scores = append(scores, score)
		sum += score
	}
	average := sum / float64(len(scores))
	trend := scoring.Trend(scores)

	metrics.IncAssessmentsServed()

	return &models.HealthAssessment{
		AverageScore:    average,
		Trend:           trend,
		Recommendations: scoring.ScoreTrendRecommendations(average, trend),
	}, nil
}

func riskAdvice(diabetesRisk, hypertensionRisk float64) []string {
	recommendations := []string{}

	if diabetesRisk > 0.7 {
		recommendations = append(recommendations,
			"Get your blood sugar monitored",
			"Watch your diet and cut down on sugar",
		)
	} else if diabetesRisk > 0.4 {
		recommendations = append(recommendations,
			"Pay attention to a healthy diet",
			"Keep up moderate exercise",
		)
	}

	if hypertensionRisk > 0.7 {
		recommendations = append(recommendations,
			"Measure your blood pressure regularly",
			"Reduce salt intake",
		)
	} else if hypertensionRisk > 0.4 {
		recommendations = append(recommendations,
			"Maintain a healthy diet",
			"Exercise appropriately",
		)
	}

	return recommendations
}

func (s *Service) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishEvent(ctx, eventType, "analytics-service", data); err != nil {
		logger.Log.WithError(err).WithField("event_type", eventType).Warn("failed to publish analytics event")
	}
}
