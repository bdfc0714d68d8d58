// Package config reads process settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/alibaba1709/SIH-25069/internal/circularity"
)

// datasetCandidates are tried in order when REFERENCE_DATASET does not exist
var datasetCandidates = []string{
	"LCA_multi_metal_with_MCI.csv",
	"data/LCA_multi_metal_with_MCI.csv",
	"data/materials_dataset.csv",
	"data/sample_inputs.csv",
}

// Config holds the service settings
type Config struct {
	Port             string
	Env              string
	DatabaseURL      string
	RedisAddr        string
	RedisTTL         time.Duration
	MLServiceURL     string
	ReferenceDataset string
	EngineConfig     string
	ClusterCount     int
}

// Load reads .env when present, then the environment. The boolean reports
// whether a .env file was found.
func Load() (*Config, bool) {
	envFile := godotenv.Load() == nil
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("GO_ENV", "development"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisTTL:         time.Duration(getEnvInt("REDIS_TTL", 3600)) * time.Second,
		MLServiceURL:     getEnv("ML_SERVICE_URL", "http://localhost:8000"),
		ReferenceDataset: getEnv("REFERENCE_DATASET", datasetCandidates[0]),
		EngineConfig:     getEnv("ENGINE_CONFIG", ""),
		ClusterCount:     getEnvInt("CLUSTER_COUNT", 0),
	}, envFile
}

// DatasetPath returns the first existing reference dataset, starting with
// the configured one
func (c *Config) DatasetPath() (string, error) {
	tried := append([]string{c.ReferenceDataset}, datasetCandidates...)
	for _, p := range tried {
		if p == "" {
			continue
		}
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	return "", &circularity.DataLoadError{
		Source: c.ReferenceDataset,
		Reason: fmt.Sprintf("no reference dataset found (tried %v)", tried),
	}
}

// Engine returns the engine settings: the YAML file when configured,
// defaults otherwise, with CLUSTER_COUNT applied on top
func (c *Config) Engine() (circularity.Config, error) {
	cfg := circularity.DefaultConfig()
	if c.EngineConfig != "" {
		loaded, err := circularity.LoadConfig(c.EngineConfig)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if c.ClusterCount != 0 {
		cfg.ClusterCount = c.ClusterCount
	}
	return cfg, cfg.Validate()
}

// Production reports whether GO_ENV selects production mode
func (c *Config) Production() bool {
	return c.Env == "production" || c.Env == "prod"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}
