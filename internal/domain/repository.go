package domain

import (
	"context"
	"time"
)

// AssessmentRepository defines the interface for assessment persistence
// This follows the Dependency Inversion Principle - domain defines the interface
type AssessmentRepository interface {
	// SaveAssessment persists an assessment summary and payload
	SaveAssessment(ctx context.Context, a Assessment) error

	// GetHistoricalAssessments retrieves assessments created in [from, to], newest first
	GetHistoricalAssessments(ctx context.Context, from, to time.Time) ([]AssessmentRecord, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}

// PredictionCache stores model predictions keyed by a row fingerprint
type PredictionCache interface {
	GetPrediction(ctx context.Context, key string) (PredictionResponse, bool, error)
	SetPrediction(ctx context.Context, key string, p PredictionResponse) error
}
