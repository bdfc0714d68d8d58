package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AssessmentRequest asks for a full assessment of one input across metals
type AssessmentRequest struct {
	Fields map[string]any `json:"fields"`
	Metals []string       `json:"metals,omitempty"`
}

// Assessment bundles the engine analysis, the model estimate and the
// environmental impact for one metal
type Assessment struct {
	ID         uuid.UUID              `json:"id"`
	Metal      string                 `json:"metal"`
	Analysis   *AnalysisResult        `json:"analysis"`
	Prediction PredictionResponse     `json:"prediction"`
	Drivers    []DriverRecommendation `json:"drivers"`
	Impact     *EnvironmentalImpact   `json:"impact,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// AssessmentRecord is a stored assessment summary plus its full JSON payload
type AssessmentRecord struct {
	ID           uuid.UUID       `json:"id"`
	Metal        string          `json:"metal"`
	ClusterID    *int            `json:"cluster_id"`
	BaselineMCI  float64         `json:"baseline_mci"`
	OptimizedMCI float64         `json:"optimized_mci"`
	IdealMCI     float64         `json:"ideal_mci"`
	PredictedMCI float64         `json:"predicted_mci"`
	IsMock       bool            `json:"is_mock"`
	Payload      json.RawMessage `json:"payload"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewAssessmentRecord summarizes an assessment for storage
func NewAssessmentRecord(a Assessment) (AssessmentRecord, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return AssessmentRecord{}, err
	}
	rec := AssessmentRecord{
		ID:           a.ID,
		Metal:        a.Metal,
		PredictedMCI: a.Prediction.PredictedMCI,
		IsMock:       a.Prediction.IsMock,
		Payload:      payload,
		CreatedAt:    a.CreatedAt,
	}
	if a.Analysis != nil {
		rec.ClusterID = a.Analysis.ClusterID
		rec.BaselineMCI = a.Analysis.Baseline.MCI
		rec.OptimizedMCI = a.Analysis.Optimized.MCI
		rec.IdealMCI = a.Analysis.Ideal.MCI
	}
	return rec, nil
}
