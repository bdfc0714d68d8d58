package circularity

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.ClusterCount != 5 || cfg.Seed != 42 || cfg.NInit != 10 {
		t.Errorf("clustering defaults = %d/%d/%d", cfg.ClusterCount, cfg.Seed, cfg.NInit)
	}
	cfg.Templates["energy_MJ_per_kg"] = "changed"
	if DefaultConfig().Templates["energy_MJ_per_kg"] == "changed" {
		t.Error("DefaultConfig shares its template map")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	doc := `
cluster_count: 3
detrimental: [energy_MJ_per_kg]
templates:
  energy_MJ_per_kg: "Cut energy use."
numeric_ranges:
  material_mass_kg: {min: 0, max: 1000}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ClusterCount != 3 {
		t.Errorf("ClusterCount = %d, want 3", cfg.ClusterCount)
	}
	if len(cfg.Detrimental) != 1 {
		t.Errorf("Detrimental = %v, want the file's list", cfg.Detrimental)
	}
	if len(cfg.Beneficial) != 4 {
		t.Errorf("Beneficial = %v, want defaults kept", cfg.Beneficial)
	}
	if cfg.Templates["energy_MJ_per_kg"] != "Cut energy use." {
		t.Errorf("energy template = %q", cfg.Templates["energy_MJ_per_kg"])
	}
	if cfg.Templates["transport_distance_km"] == "" {
		t.Error("default templates were dropped")
	}
	if r := cfg.NumericRanges["material_mass_kg"]; r.Max != 1000 {
		t.Errorf("mass range = %+v", r)
	}
	if r := cfg.NumericRanges["product_lifetime_years"]; r.Max != 200 {
		t.Errorf("default lifetime range lost: %+v", r)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero clusters", func(c *Config) { c.ClusterCount = 0 }},
		{"negative clusters", func(c *Config) { c.ClusterCount = -1 }},
		{"zero restarts", func(c *Config) { c.NInit = 0 }},
		{"zero iterations", func(c *Config) { c.MaxIter = 0 }},
		{"negative tolerance", func(c *Config) { c.Tolerance = -1 }},
		{"overlap", func(c *Config) { c.Detrimental = append(c.Detrimental, c.Beneficial[0]) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			var cfgErr *ConfigurationError
			if err := cfg.Validate(); !errors.As(err, &cfgErr) {
				t.Errorf("Validate = %v, want ConfigurationError", err)
			}
		})
	}
}
