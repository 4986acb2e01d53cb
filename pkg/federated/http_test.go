package federated

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/healthpulse-ai/platform/pkg/artifact"
)

func newTestHandler(t *testing.T) (*mux.Router, *Exchange) {
	t.Helper()
	ex := newExchange(t, artifact.NewMemStore())
	router := mux.NewRouter()
	NewHTTPHandler(ex, nil).Register(router)
	return router, ex
}

func TestHandleTrainReturnsBundle(t *testing.T) {
	router, _ := newTestHandler(t)

	payload, err := json.Marshal(map[string]interface{}{"health_records": participantBatch()})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/train", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var bundle ParameterBundle
	if err := json.Unmarshal(rr.Body.Bytes(), &bundle); err != nil {
		t.Fatalf("decode bundle: %v", err)
	}
	if len(bundle.Weights) == 0 {
		t.Fatal("expected trained weights in the response")
	}
}

func TestHandleTrainEmptyBatch(t *testing.T) {
	router, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/train", strings.NewReader(`{"health_records": []}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleUpdateRejectsBadShape(t *testing.T) {
	router, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/update", strings.NewReader(`{"weights": [1, 2]}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleUpdateInstallsBundle(t *testing.T) {
	router, ex := newTestHandler(t)

	trainer := newExchange(t, artifact.NewMemStore())
	bundle, err := trainer.LocalTrain(context.Background(), participantBatch())
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	payload, err := json.Marshal(bundle)
	if err != nil {
		t.Fatalf("marshal bundle: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/update", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ex.Bundle() == nil {
		t.Fatal("bundle not installed")
	}
}

func TestHandlePredictUntrained(t *testing.T) {
	router, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"heart_rate": 75}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
