package risk

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/healthpulse-ai/platform/pkg/common/logger"
	"github.com/healthpulse-ai/platform/pkg/common/models"
	"github.com/healthpulse-ai/platform/pkg/records"
)

// HTTPHandler exposes training, prediction and assessment. Batches may come
// inline or by subject_id, in which case the record repository supplies them.
type HTTPHandler struct {
	service *Service
	repo    *records.Repository
	cache   *Cache
}

func NewHTTPHandler(service *Service, repo *records.Repository, cache *Cache) *HTTPHandler {
	return &HTTPHandler{service: service, repo: repo, cache: cache}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/train/{disease}", h.handleTrain).Methods(http.MethodPost)
	router.HandleFunc("/predict/risk", h.handlePredict).Methods(http.MethodPost)
	router.HandleFunc("/assess/health", h.handleAssess).Methods(http.MethodPost)
}

type batchRequest struct {
	SubjectID     string                `json:"subject_id,omitempty"`
	HealthRecords []models.HealthRecord `json:"health_records,omitempty"`
}

type predictRequest struct {
	SubjectID    string               `json:"subject_id,omitempty"`
	HealthRecord *models.HealthRecord `json:"health_record"`
}

func (h *HTTPHandler) handleTrain(w http.ResponseWriter, r *http.Request) {
	disease := mux.Vars(r)["disease"]

	batch, ok := h.resolveBatch(w, r)
	if !ok {
		return
	}

	result, err := h.service.Train(r.Context(), disease, batch)
	if err != nil {
		writeServiceError(w, err, "training failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *HTTPHandler) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.HealthRecord == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "health_record required"})
		return
	}

	prediction, err := h.service.PredictRisk(r.Context(), *req.HealthRecord)
	if err != nil {
		writeServiceError(w, err, "risk prediction failed")
		return
	}

	if h.cache != nil && req.SubjectID != "" {
		if err := h.cache.SetPrediction(r.Context(), req.SubjectID, prediction); err != nil {
			logger.Log.WithError(err).Warn("failed to cache risk prediction")
		}
	}

	writeJSON(w, http.StatusOK, prediction)
}

func (h *HTTPHandler) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	batch, ok := h.loadBatch(w, r, req)
	if !ok {
		return
	}

	assessment, err := h.service.Assess(r.Context(), batch)
	if err != nil {
		writeServiceError(w, err, "assessment failed")
		return
	}

	if h.cache != nil && req.SubjectID != "" {
		if err := h.cache.SetAssessment(r.Context(), req.SubjectID, assessment); err != nil {
			logger.Log.WithError(err).Warn("failed to cache assessment")
		}
	}

	writeJSON(w, http.StatusOK, assessment)
}

func (h *HTTPHandler) resolveBatch(w http.ResponseWriter, r *http.Request) ([]models.HealthRecord, bool) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return nil, false
	}
	return h.loadBatch(w, r, req)
}

func (h *HTTPHandler) loadBatch(w http.ResponseWriter, r *http.Request, req batchRequest) ([]models.HealthRecord, bool) {
	if len(req.HealthRecords) > 0 {
		return req.HealthRecords, true
	}
	if req.SubjectID != "" && h.repo != nil {
		batch, err := h.repo.RecordsBySubject(r.Context(), req.SubjectID, 0)
		if err != nil {
			logger.Log.WithError(err).Error("failed to load subject records")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return nil, false
		}
		return batch, true
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "health_records or subject_id required"})
	return nil, false
}

func writeServiceError(w http.ResponseWriter, err error, logMessage string) {
	switch {
	case errors.Is(err, ErrInsufficientData),
		errors.Is(err, ErrModelNotTrained),
		errors.Is(err, ErrUnknownDisease):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		logger.Log.WithError(err).Error(logMessage)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
