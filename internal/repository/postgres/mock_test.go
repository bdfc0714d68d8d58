package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

func TestMockRepository_History(t *testing.T) {
	repo := NewMockRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	for i, age := range []time.Duration{30 * time.Minute, 2 * time.Hour, 48 * time.Hour} {
		a := domain.Assessment{
			ID:         uuid.New(),
			Metal:      []string{"Steel", "Copper", "Aluminum"}[i],
			Analysis:   &domain.AnalysisResult{Baseline: domain.Snapshot{MCI: float64(10 * (i + 1))}},
			Prediction: domain.PredictionResponse{PredictedMCI: 0.4},
			CreatedAt:  now.Add(-age),
		}
		if err := repo.SaveAssessment(ctx, a); err != nil {
			t.Fatalf("SaveAssessment: %v", err)
		}
	}

	got, err := repo.GetHistoricalAssessments(ctx, now.Add(-24*time.Hour), now)
	if err != nil {
		t.Fatalf("GetHistoricalAssessments: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Metal != "Steel" || got[1].Metal != "Copper" {
		t.Errorf("order = %s, %s, want newest first", got[0].Metal, got[1].Metal)
	}
	if got[1].BaselineMCI != 20 || len(got[1].Payload) == 0 {
		t.Errorf("record = %+v", got[1])
	}
	if err := repo.Health(ctx); err != nil {
		t.Errorf("Health: %v", err)
	}
}
