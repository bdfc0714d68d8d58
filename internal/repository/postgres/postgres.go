package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// historyLimit caps the rows returned by a history query
const historyLimit = 100

// PostgresRepository implements domain.AssessmentRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// InitSchema creates the assessments table when it does not exist
func (r *PostgresRepository) InitSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("postgres: failed to init schema: %w", err)
	}
	return nil
}

// SaveAssessment persists an assessment summary and its JSON payload
func (r *PostgresRepository) SaveAssessment(ctx context.Context, a domain.Assessment) error {
	rec, err := domain.NewAssessmentRecord(a)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode assessment: %w", err)
	}

	query := `
		INSERT INTO assessments (
			id, metal, cluster_id, baseline_mci, optimized_mci, ideal_mci,
			predicted_mci, is_mock, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`

	_, err = r.pool.Exec(ctx, query,
		rec.ID, rec.Metal, rec.ClusterID, rec.BaselineMCI, rec.OptimizedMCI, rec.IdealMCI,
		rec.PredictedMCI, rec.IsMock, []byte(rec.Payload), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save assessment: %w", err)
	}

	return nil
}

// GetHistoricalAssessments retrieves assessments created in [from, to], newest first
func (r *PostgresRepository) GetHistoricalAssessments(ctx context.Context, from, to time.Time) ([]domain.AssessmentRecord, error) {
	query := `
		SELECT id, metal, cluster_id, baseline_mci, optimized_mci, ideal_mci,
			   predicted_mci, is_mock, payload, created_at
		FROM assessments
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, from, to, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query assessments: %w", err)
	}
	defer rows.Close()

	results := []domain.AssessmentRecord{}
	for rows.Next() {
		var rec domain.AssessmentRecord
		var payload []byte
		err := rows.Scan(
			&rec.ID, &rec.Metal, &rec.ClusterID, &rec.BaselineMCI, &rec.OptimizedMCI, &rec.IdealMCI,
			&rec.PredictedMCI, &rec.IsMock, &payload, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan assessment row: %w", err)
		}
		rec.Payload = payload
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read assessments: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
