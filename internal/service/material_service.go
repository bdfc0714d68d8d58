package service

import (
	"sort"

	"github.com/alibaba1709/SIH-25069/internal/circularity"
	"github.com/alibaba1709/SIH-25069/internal/domain"
)

var catalogue = map[string]domain.Material{
	domain.MaterialSteel: {
		Name:            domain.MaterialSteel,
		Types:           []string{"Structural Steel", "Stainless Steel", "Carbon Steel", "Tool Steel"},
		TypicalLifetime: 25,
		RecyclingRate:   0.85,
		Description:     "Versatile metal with excellent recyclability",
		Impacts:         domain.ImpactFactors{CO2Kg: 2.3, EnergyMJ: 25, WaterL: 15},
	},
	domain.MaterialAluminum: {
		Name:            domain.MaterialAluminum,
		Types:           []string{"Pure Aluminum", "Aluminum Alloy", "Cast Aluminum", "Wrought Aluminum"},
		TypicalLifetime: 15,
		RecyclingRate:   0.90,
		Description:     "Lightweight metal with high recycling efficiency",
		Impacts:         domain.ImpactFactors{CO2Kg: 10, EnergyMJ: 150, WaterL: 50},
	},
	domain.MaterialCopper: {
		Name:            domain.MaterialCopper,
		Types:           []string{"Pure Copper", "Copper Alloy", "Brass", "Bronze"},
		TypicalLifetime: 20,
		RecyclingRate:   0.95,
		Description:     "Highly conductive metal with excellent recyclability",
		Impacts:         domain.ImpactFactors{CO2Kg: 3.5, EnergyMJ: 40, WaterL: 25},
	},
}

// MaterialService serves the metal catalogue enriched with reference data
type MaterialService struct {
	engine *circularity.Engine
}

// NewMaterialService creates a new material service. engine may be nil.
func NewMaterialService(engine *circularity.Engine) *MaterialService {
	return &MaterialService{engine: engine}
}

// List returns the catalogue keyed by name, with reference row counts and
// mean MCI when the engine's dataset has a material column
func (s *MaterialService) List() map[string]domain.Material {
	var summaries map[string]circularity.MaterialSummary
	if s.engine != nil {
		summaries = s.engine.MaterialSummaries()
	}
	out := make(map[string]domain.Material, len(catalogue))
	for name, m := range catalogue {
		m.Types = append([]string(nil), m.Types...)
		if sum, ok := summaries[name]; ok {
			m.ReferenceRows = sum.Rows
			m.ReferenceMeanMCI = sum.MeanMCI
		}
		out[name] = m
	}
	return out
}

// Names returns the catalogue names sorted
func (s *MaterialService) Names() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name is a catalogue material
func (s *MaterialService) Known(name string) bool {
	_, ok := catalogue[name]
	return ok
}

// ImpactFactors returns the per-unit impacts of a material, steel when unknown
func (s *MaterialService) ImpactFactors(name string) domain.ImpactFactors {
	if m, ok := catalogue[name]; ok {
		return m.Impacts
	}
	return catalogue[domain.MaterialSteel].Impacts
}
