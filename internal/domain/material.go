package domain

// ImpactFactors are per-unit base impacts of producing a material by the primary route
type ImpactFactors struct {
	CO2Kg    float64 `json:"co2_kg"`
	EnergyMJ float64 `json:"energy_mj"`
	WaterL   float64 `json:"water_l"`
}

// Material describes one metal of the catalogue
type Material struct {
	Name            string        `json:"name"`
	Types           []string      `json:"types"`
	TypicalLifetime int           `json:"typical_lifetime"`
	RecyclingRate   float64       `json:"recycling_rate"`
	Description     string        `json:"description"`
	Impacts         ImpactFactors `json:"impact_factors"`

	// Filled from the reference dataset when it carries a material column
	ReferenceRows    int      `json:"reference_rows"`
	ReferenceMeanMCI *float64 `json:"reference_mean_mci,omitempty"`
}

// Catalogue material names
const (
	MaterialSteel    = "Steel"
	MaterialAluminum = "Aluminum"
	MaterialCopper   = "Copper"
)
