package scoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func newTestRouter() *mux.Router {
	router := mux.NewRouter()
	NewHTTPHandler(NewEngine(DefaultRanges())).Register(router)
	return router
}

func TestHandleAnalyze(t *testing.T) {
	router := newTestRouter()

	body := `{"heart_rate": 75, "blood_pressure": "120/80", "blood_sugar": 5.5, "sleep_hours": 7.5, "mood_score": 8}`
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp analyzeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Score != 1.0 {
		t.Fatalf("expected score 1.0, got %v", resp.Score)
	}
	if len(resp.Analysis) != 5 {
		t.Fatalf("expected 5 analyzed metrics, got %d", len(resp.Analysis))
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("expected single reinforcement line, got %v", resp.Recommendations)
	}
}

func TestHandleAnalyzeRejectsBadJSON(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleMental(t *testing.T) {
	router := newTestRouter()

	body := `{"health_records": [{"mood_score": 8}, {"mood_score": 8}, {"mood_score": 8}]}`
	req := httptest.NewRequest(http.MethodPost, "/mental", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var summary struct {
		StressLevel string `json:"stress_level"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.StressLevel != StressLow {
		t.Fatalf("expected low stress, got %s", summary.StressLevel)
	}
}

func TestHandleMentalRequiresRecords(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/mental", strings.NewReader(`{"health_records": []}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
