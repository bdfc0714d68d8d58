package service

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alibaba1709/SIH-25069/internal/circularity"
	"github.com/alibaba1709/SIH-25069/internal/domain"
)

func TestMLBridge_Predict(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		calls.Add(1)
		var req domain.PredictionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Metal != "Copper" || req.Features["energy_MJ_per_kg"] == nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.PredictionResponse{
			PredictedMCI: 0.62,
			CILower:      0.55,
			CIUpper:      0.69,
			Contributions: []domain.FeatureContribution{
				{Feature: "energy_MJ_per_kg", SHAP: -0.08},
			},
		})
	}))
	defer srv.Close()

	e := newTestEngine(t)
	row, _ := e.Align(map[string]any{"energy_MJ_per_kg": 30})
	cache := newMemoryCache()
	b := NewMLBridge(srv.URL+"/", cache, nil)

	for i := 0; i < 2; i++ {
		p, err := b.Predict(context.Background(), row, "Copper")
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		if p.IsMock || p.PredictedMCI != 0.62 || len(p.Contributions) != 1 {
			t.Errorf("prediction = %+v", p)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("model service called %d times, want 1 (second answer cached)", got)
	}
}

func TestMLBridge_MockFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := newTestEngine(t)
	row, _ := e.Align(map[string]any{})
	p, err := NewMLBridge(srv.URL, nil, nil).Predict(context.Background(), row, "")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if !p.IsMock {
		t.Error("IsMock = false, want mock fallback")
	}
	want := circularity.MCI(row) / 100
	if math.Abs(p.PredictedMCI-want) > 1e-9 {
		t.Errorf("PredictedMCI = %v, want %v", p.PredictedMCI, want)
	}
	if p.CILower > p.PredictedMCI || p.CIUpper < p.PredictedMCI || p.CILower < 0 || p.CIUpper > 1 {
		t.Errorf("band = [%v, %v] around %v", p.CILower, p.CIUpper, p.PredictedMCI)
	}
	if p.Contributions == nil {
		t.Error("Contributions = nil, want empty slice")
	}
}

func TestMLBridge_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewMLBridge(srv.URL, nil, nil).Health(context.Background()); err != nil {
		t.Errorf("Health: %v", err)
	}
	srv.Close()
	if err := NewMLBridge(srv.URL, nil, nil).Health(context.Background()); err == nil {
		t.Error("Health on closed server = nil, want error")
	}
}

func TestDriverRecommendations(t *testing.T) {
	contribs := []domain.FeatureContribution{
		{Feature: "a", SHAP: 0.01},
		{Feature: "b", SHAP: -0.5},
		{Feature: "c", SHAP: 0.3},
		{Feature: "d", SHAP: -0.02},
		{Feature: "e", SHAP: 0.2},
		{Feature: "f", SHAP: 0.1},
	}
	got := DriverRecommendations(contribs)
	if len(got) != 5 {
		t.Fatalf("got %d drivers, want 5", len(got))
	}
	order := []string{"b", "c", "e", "f", "d"}
	for i, f := range order {
		if got[i].Feature != f {
			t.Errorf("driver %d = %s, want %s", i, got[i].Feature, f)
		}
	}
	if got[0].Action != "Improve this parameter" || got[1].Action != "Maintain current practice" {
		t.Errorf("actions = %q, %q", got[0].Action, got[1].Action)
	}
}
