package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/alibaba1709/SIH-25069/internal/circularity"
	"github.com/alibaba1709/SIH-25069/internal/domain"
)

const referenceCSV = `metal,route,material_mass_kg,energy_MJ_per_kg,transport_distance_km,recycled_content_frac,product_lifetime_years,eol_recycle_pct,MCI_percent
Steel,Primary,1,30,500,0.1,10,40,30
Steel,Secondary,1,12,200,0.9,25,80,70
Aluminum,Primary,1,150,1200,0.2,12,50,35
Aluminum,Secondary,1,20,300,0.3,20,70,60
Copper,Primary,1,40,800,0.25,15,60,45
Copper,Secondary,1,18,250,0.25,30,85,72
`

func newTestEngine(t *testing.T) *circularity.Engine {
	t.Helper()
	ds, err := circularity.ReadCSV(strings.NewReader(referenceCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	cfg := circularity.DefaultConfig()
	cfg.ClusterCount = 2
	e, err := circularity.New(ds, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

// memoryCache is a PredictionCache for tests
type memoryCache struct {
	mu   sync.Mutex
	data map[string]domain.PredictionResponse
	gets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]domain.PredictionResponse)}
}

func (c *memoryCache) GetPrediction(ctx context.Context, key string) (domain.PredictionResponse, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	p, ok := c.data[key]
	return p, ok, nil
}

func (c *memoryCache) SetPrediction(ctx context.Context, key string, p domain.PredictionResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = p
	return nil
}
