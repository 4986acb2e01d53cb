package federated

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/healthpulse-ai/platform/pkg/common/logger"
	"github.com/healthpulse-ai/platform/pkg/common/models"
	"github.com/healthpulse-ai/platform/pkg/records"
)

type HTTPHandler struct {
	exchange *Exchange
	repo     *records.Repository
}

func NewHTTPHandler(exchange *Exchange, repo *records.Repository) *HTTPHandler {
	return &HTTPHandler{exchange: exchange, repo: repo}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/train", h.handleTrain).Methods(http.MethodPost)
	router.HandleFunc("/update", h.handleUpdate).Methods(http.MethodPost)
	router.HandleFunc("/predict", h.handlePredict).Methods(http.MethodPost)
}

type trainRequest struct {
	SubjectID     string                `json:"subject_id,omitempty"`
	HealthRecords []models.HealthRecord `json:"health_records,omitempty"`
}

func (h *HTTPHandler) handleTrain(w http.ResponseWriter, r *http.Request) {
	var req trainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	batch := req.HealthRecords
	if len(batch) == 0 && req.SubjectID != "" && h.repo != nil {
		loaded, err := h.repo.RecordsBySubject(r.Context(), req.SubjectID, 0)
		if err != nil {
			logger.Log.WithError(err).Error("failed to load subject records")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		batch = loaded
	}

	bundle, err := h.exchange.LocalTrain(r.Context(), batch)
	if err != nil {
		if errors.Is(err, ErrNoTrainingData) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "not enough training data"})
			return
		}
		logger.Log.WithError(err).Error("federated local training failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, bundle)
}

func (h *HTTPHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var bundle ParameterBundle
	if err := json.NewDecoder(r.Body).Decode(&bundle); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.exchange.ApplyGlobal(r.Context(), bundle); err != nil {
		if errors.Is(err, ErrBadBundle) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		logger.Log.WithError(err).Error("global model update failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "global model updated"})
}

func (h *HTTPHandler) handlePredict(w http.ResponseWriter, r *http.Request) {
	var rec models.HealthRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	prediction, err := h.exchange.Predict(rec)
	if err != nil {
		if errors.Is(err, ErrModelNotTrained) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot predict: no model trained"})
			return
		}
		logger.Log.WithError(err).Error("federated prediction failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
