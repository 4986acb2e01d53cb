package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/healthpulse-ai/platform/pkg/common/config"
	"github.com/healthpulse-ai/platform/pkg/common/database"
	"github.com/healthpulse-ai/platform/pkg/common/kafka"
	"github.com/healthpulse-ai/platform/pkg/common/logger"
	"github.com/healthpulse-ai/platform/pkg/common/models"
	"github.com/healthpulse-ai/platform/pkg/observability/metrics"
	"github.com/healthpulse-ai/platform/pkg/records"
)

func main() {
	logger.Init()
	cfg := config.Load()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres()

	repo := records.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to migrate health records")
	}

	consumer := kafka.NewConsumer(cfg.KafkaRecordTopic, cfg.KafkaGroupID)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Log.Info("Shutting down Record Worker...")
		cancel()
	}()

	logger.Log.WithField("topic", cfg.KafkaRecordTopic).Info("Record Worker started")

	if err := consumer.Consume(ctx, handleRecordEvent(repo)); err != nil && err != context.Canceled {
		logger.Log.WithError(err).Fatal("Consumer stopped unexpectedly")
	}

	logger.Log.Info("Record Worker stopped")
}

// handleRecordEvent persists one health record per event. The event data
// carries subject_id plus the record fields; malformed events are rejected
// with a nil error so the offset commits and the event is not retried.
func handleRecordEvent(repo *records.Repository) kafka.EventHandler {
	return func(ctx context.Context, event models.Event) error {
		subjectID, _ := event.Data["subject_id"].(string)
		if subjectID == "" {
			logger.Log.WithField("event_id", event.ID).Warn("Record event without subject_id, skipping")
			return nil
		}

		payload, err := json.Marshal(event.Data["record"])
		if err != nil {
			logger.Log.WithError(err).WithField("event_id", event.ID).Warn("Unreadable record payload, skipping")
			return nil
		}

		var rec models.HealthRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			logger.Log.WithError(err).WithField("event_id", event.ID).Warn("Malformed health record, skipping")
			return nil
		}

		model := records.FromHealthRecord(subjectID, rec)
		if err := repo.Create(ctx, model); err != nil {
			return fmt.Errorf("persist record for subject %s: %w", subjectID, err)
		}

		metrics.IncRecordsIngested()
		logger.Log.WithFields(map[string]interface{}{
			"record_id":  model.ID,
			"subject_id": subjectID,
		}).Info("Health record ingested")
		return nil
	}
}
