// Package artifact owns trained model persistence: a classifier's learned
// parameters together with the scaler statistics fitted alongside it, keyed
// by model name.
package artifact

import (
	"context"
	"errors"
	"time"

	"github.com/healthpulse-ai/platform/pkg/common/models"
	"github.com/healthpulse-ai/platform/pkg/ml/linear"
	"github.com/healthpulse-ai/platform/pkg/ml/scale"
)

var ErrNotFound = errors.New("model artifact not found")

// Artifact is one trained model: weights plus the exact normalization
// statistics its inputs were fitted with. The pair is indivisible: scoring
// a vector through one artifact's scaler and another's weights produces
// garbage without failing.
type Artifact struct {
	Key          string               `json:"key"`
	Algorithm    string               `json:"algorithm"`
	FeatureNames []string             `json:"feature_names"`
	Weights      linear.Weights       `json:"weights"`
	Scaler       scale.Scaler         `json:"scaler"`
	Metrics      *models.ModelMetrics `json:"metrics,omitempty"`
	TrainedAt    time.Time            `json:"trained_at"`
}

// Store is the durable key→artifact surface. Save must be atomic: a
// concurrent Load sees either the previous artifact or the new one, never a
// partial write. Both calls are synchronous and durable on return.
type Store interface {
	Load(ctx context.Context, key string) (*Artifact, error)
	Save(ctx context.Context, key string, a *Artifact) error
}
