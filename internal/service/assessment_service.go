package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alibaba1709/SIH-25069/internal/circularity"
	"github.com/alibaba1709/SIH-25069/internal/domain"
	"github.com/alibaba1709/SIH-25069/internal/platform/logger"
	"github.com/alibaba1709/SIH-25069/pkg/utils"
)

// maxParallelMetals bounds concurrent per-metal analyses of one request
const maxParallelMetals = 4

// AssessmentService combines the benchmark engine, the model service and
// the quick impact estimate into stored assessments
type AssessmentService struct {
	engine    *circularity.Engine
	ml        *MLBridge
	calc      *CalculatorService
	materials *MaterialService
	repo      AssessmentRepository
	log       *logger.Logger

	wgBg sync.WaitGroup // tracks background saves for graceful shutdown
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	engine *circularity.Engine,
	ml *MLBridge,
	calc *CalculatorService,
	materials *MaterialService,
	repo AssessmentRepository,
	log *logger.Logger,
) *AssessmentService {
	if log == nil {
		log = logger.Nop()
	}
	return &AssessmentService{
		engine:    engine,
		ml:        ml,
		calc:      calc,
		materials: materials,
		repo:      repo,
		log:       log,
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *AssessmentService) WaitBackground() {
	s.wgBg.Wait()
}

// Engine returns the benchmark engine behind the service
func (s *AssessmentService) Engine() *circularity.Engine {
	return s.engine
}

// Analyze runs the benchmark engine alone
func (s *AssessmentService) Analyze(fields map[string]any) (*domain.AnalysisResult, error) {
	return s.engine.Analyze(fields)
}

// Assess analyzes one input once per requested metal. Metals are processed
// concurrently; results keep the request order. Each assessment is saved in
// the background.
func (s *AssessmentService) Assess(ctx context.Context, req domain.AssessmentRequest) ([]domain.Assessment, error) {
	if s.engine == nil {
		return nil, circularity.ErrNotInitialized
	}
	metalCol, hasMetalCol := s.engine.MaterialColumn()

	metals := req.Metals
	if len(metals) == 0 {
		current := ""
		if hasMetalCol {
			if v, ok := req.Fields[metalCol].(string); ok {
				current = v
			}
		}
		metals = []string{current}
	}

	results := make([]domain.Assessment, len(metals))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelMetals)
	for i, metal := range metals {
		i, metal := i, metal
		g.Go(func() error {
			fields := make(map[string]any, len(req.Fields)+1)
			for k, v := range req.Fields {
				fields[k] = v
			}
			if hasMetalCol && metal != "" {
				fields[metalCol] = metal
			}
			a, err := s.assessOne(gctx, fields, metal)
			if err != nil {
				return fmt.Errorf("assessment: metal %q: %w", metal, err)
			}
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, a := range results {
			if err := s.repo.SaveAssessment(bgCtx, a); err != nil {
				s.log.Error("failed to save assessment", "id", a.ID, "metal", a.Metal, "error", err)
			}
		}
	}()

	return results, nil
}

func (s *AssessmentService) assessOne(ctx context.Context, fields map[string]any, metal string) (domain.Assessment, error) {
	analysis, err := s.engine.Analyze(fields)
	if err != nil {
		return domain.Assessment{}, err
	}
	prediction, err := s.ml.Predict(ctx, analysis.AlignedInput, metal)
	if err != nil {
		return domain.Assessment{}, err
	}

	a := domain.Assessment{
		ID:         uuid.New(),
		Metal:      metal,
		Analysis:   analysis,
		Prediction: prediction,
		Drivers:    DriverRecommendations(prediction.Contributions),
		CreatedAt:  time.Now().UTC(),
	}
	if s.materials.Known(metal) {
		impact := s.calc.Impact(CalculationFromAnalysis(analysis.AlignedInput, fields, metal))
		impact.CO2Emissions = utils.RoundTo(impact.CO2Emissions, 3)
		impact.EnergyConsumption = utils.RoundTo(impact.EnergyConsumption, 3)
		impact.WaterUsage = utils.RoundTo(impact.WaterUsage, 3)
		impact.TransportEmissions = utils.RoundTo(impact.TransportEmissions, 3)
		a.Impact = &impact
	}
	return a, nil
}

// ErrInvalidWindow is returned for a history window outside 1..720 hours
var ErrInvalidWindow = errors.New("hours must be between 1 and 720")

// GetHistory returns assessments stored during the last hours
func (s *AssessmentService) GetHistory(ctx context.Context, hours int) ([]domain.AssessmentRecord, error) {
	if hours < 1 || hours > 720 {
		return nil, ErrInvalidWindow
	}
	to := time.Now().UTC()
	from := to.Add(-time.Duration(hours) * time.Hour)
	records, err := s.repo.GetHistoricalAssessments(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("assessment: failed to load history: %w", err)
	}
	return records, nil
}

// StorageHealth checks the assessment store
func (s *AssessmentService) StorageHealth(ctx context.Context) error {
	return s.repo.Health(ctx)
}
