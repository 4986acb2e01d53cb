package risk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/healthpulse-ai/platform/pkg/common/models"
	"github.com/redis/go-redis/v9"
)

// Cache keeps the latest risk prediction and assessment per subject hot in
// Redis so dashboards can poll without re-running the models. It is a
// convenience layer; misses and Redis failures fall through to recomputing.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) SetPrediction(ctx context.Context, subjectID string, prediction *models.RiskPrediction) error {
	return c.set(ctx, predictionKey(subjectID), prediction)
}

func (c *Cache) GetPrediction(ctx context.Context, subjectID string) (*models.RiskPrediction, bool) {
	var prediction models.RiskPrediction
	if !c.get(ctx, predictionKey(subjectID), &prediction) {
		return nil, false
	}
	return &prediction, true
}

func (c *Cache) SetAssessment(ctx context.Context, subjectID string, assessment *models.HealthAssessment) error {
	return c.set(ctx, assessmentKey(subjectID), assessment)
}

func (c *Cache) GetAssessment(ctx context.Context, subjectID string) (*models.HealthAssessment, bool) {
	var assessment models.HealthAssessment
	if !c.get(ctx, assessmentKey(subjectID), &assessment) {
		return nil, false
	}
	return &assessment, true
}

func (c *Cache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func (c *Cache) get(ctx context.Context, key string, out interface{}) bool {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, out) == nil
}

func predictionKey(subjectID string) string {
	return fmt.Sprintf("risk:prediction:%s", subjectID)
}

func assessmentKey(subjectID string) string {
	return fmt.Sprintf("risk:assessment:%s", subjectID)
}
