package postgres

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

// MockRepository implements domain.AssessmentRepository in memory for tests and demo mode
type MockRepository struct {
	mu      sync.RWMutex
	records []domain.AssessmentRecord
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveAssessment keeps the assessment in memory
func (r *MockRepository) SaveAssessment(ctx context.Context, a domain.Assessment) error {
	rec, err := domain.NewAssessmentRecord(a)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// GetHistoricalAssessments returns stored assessments in [from, to], newest first
func (r *MockRepository) GetHistoricalAssessments(ctx context.Context, from, to time.Time) ([]domain.AssessmentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.AssessmentRecord{}
	for _, rec := range r.records {
		if rec.CreatedAt.Before(from) || rec.CreatedAt.After(to) {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > historyLimit {
		out = out[:historyLimit]
	}
	return out, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
