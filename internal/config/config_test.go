package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alibaba1709/SIH-25069/internal/circularity"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REDIS_TTL", "")
	t.Setenv("CLUSTER_COUNT", "")
	cfg, _ := Load()
	if cfg.Port != "8080" || cfg.RedisTTL != time.Hour || cfg.ClusterCount != 0 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_TTL", "60")
	t.Setenv("CLUSTER_COUNT", "3")
	t.Setenv("GO_ENV", "production")
	cfg, _ := Load()
	if cfg.Port != "9090" || cfg.RedisTTL != time.Minute || cfg.ClusterCount != 3 || !cfg.Production() {
		t.Errorf("config = %+v", cfg)
	}
	eng, err := cfg.Engine()
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	if eng.ClusterCount != 3 {
		t.Errorf("engine ClusterCount = %d, want 3", eng.ClusterCount)
	}
}

func TestEngine_InvalidClusterCount(t *testing.T) {
	cfg := &Config{ClusterCount: -2}
	var cfgErr *circularity.ConfigurationError
	if _, err := cfg.Engine(); !errors.As(err, &cfgErr) {
		t.Errorf("Engine = %v, want ConfigurationError", err)
	}
}

func TestDatasetPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.csv")
	if err := os.WriteFile(path, []byte("a\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &Config{ReferenceDataset: path}
	if got, err := cfg.DatasetPath(); err != nil || got != path {
		t.Errorf("DatasetPath = %q, %v", got, err)
	}

	missing := &Config{ReferenceDataset: filepath.Join(t.TempDir(), "nope.csv")}
	var loadErr *circularity.DataLoadError
	if _, err := missing.DatasetPath(); !errors.As(err, &loadErr) {
		t.Errorf("DatasetPath = %v, want DataLoadError", err)
	}
}
