package scoring

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/healthpulse-ai/platform/pkg/common/models"
)

type HTTPHandler struct {
	engine *Engine
}

func NewHTTPHandler(engine *Engine) *HTTPHandler {
	return &HTTPHandler{engine: engine}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/analyze", h.handleAnalyze).Methods(http.MethodPost)
	router.HandleFunc("/mental", h.handleMental).Methods(http.MethodPost)
}

type analyzeResponse struct {
	Analysis        map[string]MetricAnalysis `json:"analysis"`
	Score           float64                   `json:"score"`
	Recommendations []string                  `json:"recommendations"`
}

func (h *HTTPHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var rec models.HealthRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	analysis := h.engine.Analyze(rec)
	resp := analyzeResponse{
		Analysis:        analysis,
		Score:           h.engine.CompositeScore(rec),
		Recommendations: Recommendations(analysis),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *HTTPHandler) handleMental(w http.ResponseWriter, r *http.Request) {
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

	summary := MentalState(req.HealthRecords)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
