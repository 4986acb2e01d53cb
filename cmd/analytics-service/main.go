package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/healthpulse-ai/platform/pkg/artifact"
	"github.com/healthpulse-ai/platform/pkg/common/config"
	"github.com/healthpulse-ai/platform/pkg/common/database"
	"github.com/healthpulse-ai/platform/pkg/common/kafka"
	"github.com/healthpulse-ai/platform/pkg/common/logger"
	"github.com/healthpulse-ai/platform/pkg/common/middleware"
	"github.com/healthpulse-ai/platform/pkg/federated"
	"github.com/healthpulse-ai/platform/pkg/observability/metrics"
	"github.com/healthpulse-ai/platform/pkg/preprocess"
	"github.com/healthpulse-ai/platform/pkg/records"
	"github.com/healthpulse-ai/platform/pkg/risk"
	"github.com/healthpulse-ai/platform/pkg/scoring"
	"gorm.io/gorm"
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

	store, err := buildArtifactStore(cfg, db)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize artifact store")
	}

	ranges, err := scoring.LoadRanges(cfg.ScoringRules)
	if err != nil {
		logger.Log.WithError(err).WithField("path", cfg.ScoringRules).
			Warn("Failed to load scoring rules, using defaults")
	}
	engine := scoring.NewEngine(ranges)

	producer := kafka.NewProducer(cfg.KafkaEventTopic)
	defer producer.Close()

	ctx := context.Background()

	registry := artifact.NewRegistry(store)
	if err := registry.Preload(ctx, risk.DiseaseDiabetes, risk.DiseaseHypertension); err != nil {
		logger.Log.WithError(err).Fatal("Failed to preload model artifacts")
	}

	riskService := risk.NewService(registry, engine, producer, risk.Options{
		Epochs:       cfg.TrainEpochs,
		LearningRate: cfg.TrainLearningRate,
		Seed:         cfg.TrainSeed,
	})

	exchange, err := federated.NewExchange(ctx, store, federated.Options{
		Epochs:       cfg.TrainEpochs,
		LearningRate: cfg.TrainLearningRate,
	})
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize federated exchange")
	}

	cache := risk.NewCache(database.GetRedis(), cfg.ResultCacheTTL)

	router := mux.NewRouter()
	router.Use(middleware.Recovery)
	router.Use(middleware.Logging)
	router.Use(middleware.CORS)
	router.Use(middleware.BodyLimit(cfg.MaxRequestBody))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	router.HandleFunc("/metrics", handleMetrics).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	records.NewHTTPHandler(repo).Register(api)
	preprocess.NewHTTPHandler(preprocess.NewProcessor()).Register(api.PathPrefix("/data").Subrouter())
	scoring.NewHTTPHandler(engine).Register(api.PathPrefix("/scoring").Subrouter())
	risk.NewHTTPHandler(riskService, repo, cache).Register(api.PathPrefix("/analytics").Subrouter())
	federated.NewHTTPHandler(exchange, repo).Register(api.PathPrefix("/fl").Subrouter())

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Analytics Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Analytics Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}
	database.CloseRedis()

	logger.Log.Info("Analytics Service stopped")
}

// buildArtifactStore selects where trained model parameters live. The
// filesystem store is the default; postgres keeps artifacts alongside the
// health records when several replicas must share them.
func buildArtifactStore(cfg *config.Config, db *gorm.DB) (artifact.Store, error) {
	switch cfg.ArtifactStore {
	case "postgres":
		store := artifact.NewGormStore(db)
		if err := store.AutoMigrate(); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return artifact.NewFSStore(cfg.ModelDir)
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func handleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics.WritePrometheus(w)
}
