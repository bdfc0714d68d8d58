package circularity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Field names the MCI formula reads
const (
	FieldMaterialMass    = "material_mass_kg"
	FieldLifetime        = "product_lifetime_years"
	FieldRecycledContent = "recycled_content_frac"
	FieldRoute           = "route"
	FieldEOLReuse        = "eol_reuse_pct"
	FieldEOLRecycle      = "eol_recycle_pct"
)

// Range is an inclusive plausibility window for a numeric input
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether v lies inside the window
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Config holds everything the engine needs besides the reference data
type Config struct {
	Beneficial    []string          `yaml:"beneficial"`
	Detrimental   []string          `yaml:"detrimental"`
	Targets       []string          `yaml:"targets"`
	ClusterColumn string            `yaml:"cluster_column"`
	ClusterCount  int               `yaml:"cluster_count"`
	Seed          int64             `yaml:"seed"`
	NInit         int               `yaml:"n_init"`
	MaxIter       int               `yaml:"max_iter"`
	Tolerance     float64           `yaml:"tolerance"`
	Templates     map[string]string `yaml:"templates"`
	NumericRanges map[string]Range  `yaml:"numeric_ranges"`
}

// DefaultConfig returns the stock parameter classification, clustering
// settings and recommendation wording.
func DefaultConfig() Config {
	return Config{
		Beneficial: []string{
			"recycled_content_frac",
			"reuse_potential_score",
			"product_lifetime_years",
			"renewable_electricity_frac",
		},
		Detrimental: []string{
			"energy_MJ_per_kg",
			"emissions_kgCO2e_per_kg",
			"transport_distance_km",
		},
		Targets:       []string{"emissions_kgCO2e_per_kg", "MCI_percent", "MCI"},
		ClusterColumn: "cluster",
		ClusterCount:  5,
		Seed:          42,
		NInit:         10,
		MaxIter:       300,
		Tolerance:     1e-4,
		Templates: map[string]string{
			"energy_MJ_per_kg":           "Your energy expenditure is higher than peers. Improve equipment and install VSDs.",
			"emissions_kgCO2e_per_kg":    "Your carbon emissions are above peer average. Consider electrification or fuel switch.",
			"transport_distance_km":      "Transport distances are long. Explore near-shoring or rail/sea shift.",
			"recycled_content_frac":      "Low recycled content. Engage suppliers for secondary materials.",
			"reuse_potential_score":      "Low reuse potential. Redesign for modularity and easier disassembly.",
			"product_lifetime_years":     "Short lifespan. Improve durability and servicing.",
			"renewable_electricity_frac": "Low renewable electricity use. Consider PPAs or on-site solar.",
		},
		NumericRanges: map[string]Range{
			"energy_MJ_per_kg":                   {Min: 0, Max: 1e4},
			"emissions_kgCO2e_per_kg":            {Min: 0, Max: 1e4},
			"mining_energy_MJ_per_kg":            {Min: 0, Max: 1e5},
			"smelting_energy_MJ_per_kg":          {Min: 0, Max: 1e5},
			"transport_distance_km":              {Min: 0, Max: 1e6},
			"economic_value_USD_per_kg":          {Min: 0, Max: 1e6},
			"material_recycled_content_fraction": {Min: 0, Max: 1},
			"recycled_content_frac":              {Min: 0, Max: 1},
			"renewable_electricity_frac":         {Min: 0, Max: 1},
			"product_lifetime_years":             {Min: 0, Max: 200},
			"eol_reuse_pct":                      {Min: 0, Max: 100},
			"eol_recycle_pct":                    {Min: 0, Max: 100},
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Lists in the file replace
// the defaults; template and range maps are merged key by key.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("circularity: failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("circularity: failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks settings that do not depend on the dataset
func (c Config) Validate() error {
	if c.ClusterCount <= 0 {
		return &ConfigurationError{Field: "cluster_count", Value: c.ClusterCount, Reason: "must be positive"}
	}
	if c.NInit <= 0 {
		return &ConfigurationError{Field: "n_init", Value: c.NInit, Reason: "must be positive"}
	}
	if c.MaxIter <= 0 {
		return &ConfigurationError{Field: "max_iter", Value: c.MaxIter, Reason: "must be positive"}
	}
	if c.Tolerance < 0 {
		return &ConfigurationError{Field: "tolerance", Value: c.Tolerance, Reason: "must not be negative"}
	}
	good := make(map[string]bool, len(c.Beneficial))
	for _, p := range c.Beneficial {
		good[p] = true
	}
	for _, p := range c.Detrimental {
		if good[p] {
			return &ConfigurationError{Field: "detrimental", Value: p, Reason: "parameter is also listed as beneficial"}
		}
	}
	return nil
}
