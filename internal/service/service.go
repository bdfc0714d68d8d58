package service

import (
	"github.com/alibaba1709/SIH-25069/internal/domain"
)

// AssessmentRepository is re-exported from domain for convenience
type AssessmentRepository = domain.AssessmentRepository

// PredictionCache is re-exported from domain for convenience
type PredictionCache = domain.PredictionCache
