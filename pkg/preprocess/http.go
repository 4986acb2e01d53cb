package preprocess

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/healthpulse-ai/platform/pkg/common/models"
	"github.com/healthpulse-ai/platform/pkg/observability/metrics"
)

type HTTPHandler struct {
	processor *Processor
}

func NewHTTPHandler(processor *Processor) *HTTPHandler {
	return &HTTPHandler{processor: processor}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/preprocess", h.handlePreprocess).Methods(http.MethodPost)
}

func (h *HTTPHandler) handlePreprocess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HealthRecords []models.HealthRecord `json:"health_records"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.HealthRecords) == 0 {
		http.Error(w, "health_records required", http.StatusBadRequest)
		return
	}

	frame := h.processor.Process(FromRecords(req.HealthRecords))
	metrics.IncPreprocessedBatches()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"columns": frame.Columns,
		"rows":    frame.Matrix(),
	})
}
