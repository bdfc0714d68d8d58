package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/alibaba1709/SIH-25069/internal/circularity"
	"github.com/alibaba1709/SIH-25069/internal/domain"
	"github.com/alibaba1709/SIH-25069/internal/platform/logger"
	"github.com/alibaba1709/SIH-25069/pkg/utils"
)

// maxDrivers is how many SHAP attributions become driver recommendations
const maxDrivers = 5

// MLBridge handles communication with the Python model service
type MLBridge struct {
	serviceURL string
	httpClient *http.Client
	cache      domain.PredictionCache
	log        *logger.Logger
}

// NewMLBridge creates a new ML bridge. cache may be nil.
func NewMLBridge(serviceURL string, cache domain.PredictionCache, log *logger.Logger) *MLBridge {
	if log == nil {
		log = logger.Nop()
	}
	return &MLBridge{
		serviceURL: strings.TrimRight(serviceURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: cache,
		log:   log,
	}
}

// Predict asks the model service for an MCI estimate of an aligned row.
// When the service is unreachable it answers with a formula-based mock.
func (b *MLBridge) Predict(ctx context.Context, row domain.Row, metal string) (domain.PredictionResponse, error) {
	req := domain.PredictionRequest{Features: row.Map(), Metal: metal}
	body, err := json.Marshal(req)
	if err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("ml_bridge: failed to marshal request: %w", err)
	}

	key := cacheKey(body)
	if b.cache != nil {
		if p, ok, err := b.cache.GetPrediction(ctx, key); err != nil {
			b.log.Warn("prediction cache read failed", "error", err)
		} else if ok {
			return p, nil
		}
	}

	url := fmt.Sprintf("%s/predict", b.serviceURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("ml_bridge: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		b.log.Debug("model service unreachable, using mock prediction", "error", err)
		return mockPrediction(row), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b.log.Debug("model service returned an error, using mock prediction", "status", resp.StatusCode)
		return mockPrediction(row), nil
	}

	var prediction domain.PredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("ml_bridge: failed to decode response: %w", err)
	}
	if prediction.Contributions == nil {
		prediction.Contributions = []domain.FeatureContribution{}
	}

	if b.cache != nil {
		if err := b.cache.SetPrediction(ctx, key, prediction); err != nil {
			b.log.Warn("prediction cache write failed", "error", err)
		}
	}
	return prediction, nil
}

// Health checks model service connectivity
func (b *MLBridge) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", b.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("ml_bridge: failed to create health request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ml_bridge: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml_bridge: health check returned status %d", resp.StatusCode)
	}

	return nil
}

// mockPrediction derives a model-shaped answer from the formula MCI
func mockPrediction(row domain.Row) domain.PredictionResponse {
	p := circularity.MCI(row) / 100
	return domain.PredictionResponse{
		PredictedMCI:  utils.RoundTo(p, 4),
		CILower:       utils.RoundTo(utils.Clamp(p-0.05, 0, 1), 4),
		CIUpper:       utils.RoundTo(utils.Clamp(p+0.05, 0, 1), 4),
		Contributions: []domain.FeatureContribution{},
		IsMock:        true,
	}
}

// DriverRecommendations turns the strongest SHAP attributions into advice
func DriverRecommendations(contribs []domain.FeatureContribution) []domain.DriverRecommendation {
	sorted := make([]domain.FeatureContribution, len(contribs))
	copy(sorted, contribs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return math.Abs(sorted[i].SHAP) > math.Abs(sorted[j].SHAP)
	})
	if len(sorted) > maxDrivers {
		sorted = sorted[:maxDrivers]
	}

	out := make([]domain.DriverRecommendation, 0, len(sorted))
	for _, c := range sorted {
		d := domain.DriverRecommendation{Feature: c.Feature, SHAP: c.SHAP}
		if c.SHAP < 0 {
			d.Message = "Driver lowering predicted MCI"
			d.Action = "Improve this parameter"
		} else {
			d.Message = "Driver raising predicted MCI"
			d.Action = "Maintain current practice"
		}
		out = append(out, d)
	}
	return out
}

func cacheKey(body []byte) string {
	sum := sha256.Sum256(body)
	return "mci:prediction:" + hex.EncodeToString(sum[:])
}
