package circularity

import (
	"math"
	"strings"

	"github.com/alibaba1709/SIH-25069/internal/domain"
	"github.com/alibaba1709/SIH-25069/pkg/utils"
)

// ReferenceLifetimeYears is the lifetime at which the utility factor reaches 0.9
const ReferenceLifetimeYears = 15.0

// MCIBreakdown carries the intermediate terms of the MCI formula
type MCIBreakdown struct {
	VirginMass         float64 `json:"virgin_mass"`
	UnrecoverableWaste float64 `json:"unrecoverable_waste"`
	LFI                float64 `json:"lfi"`
	NormalizedLifespan float64 `json:"normalized_lifespan"`
	UtilityFactor      float64 `json:"utility_factor"`
	Raw                float64 `json:"raw"`
	Score              float64 `json:"score"`
	// Undefined is set when the terms overflow and Raw is not finite;
	// Score is then 0.
	Undefined bool `json:"undefined"`
}

// ComputeMCI evaluates the Material Circularity Index of a row. Fields the
// row does not carry take fixed defaults: mass 1 kg, lifetime 1 year,
// no recycled content, primary route, no end-of-life recovery.
func ComputeMCI(row domain.Row) MCIBreakdown {
	mass := numOr(row, FieldMaterialMass, 1)
	lifetime := numOr(row, FieldLifetime, 1)
	recycled := numOr(row, FieldRecycledContent, 0)
	reuse := numOr(row, FieldEOLReuse, 0)
	recycle := numOr(row, FieldEOLRecycle, 0)
	route, ok := row.Str(FieldRoute)
	if !ok {
		route = "Primary"
	}

	var b MCIBreakdown
	r := strings.ToLower(strings.TrimSpace(route))
	if strings.HasPrefix(r, "primary") || strings.HasPrefix(r, "virgin") {
		b.VirginMass = mass * (1 - recycled)
	}
	b.UnrecoverableWaste = mass * (1 - (reuse+recycle)/100)

	if mass > 0 {
		b.LFI = (b.VirginMass + b.UnrecoverableWaste) / (2 * mass)
	} else {
		b.LFI = 1
	}

	if lifetime > 0 {
		b.NormalizedLifespan = lifetime / ReferenceLifetimeYears
	} else {
		b.NormalizedLifespan = 1
	}
	if b.NormalizedLifespan > 0 {
		b.UtilityFactor = 0.9 / b.NormalizedLifespan
	} else {
		b.UtilityFactor = 100
	}

	b.Raw = 1 - b.LFI*b.UtilityFactor
	if math.IsNaN(b.Raw) || math.IsInf(b.Raw, 0) {
		b.Undefined = true
		return b
	}
	b.Score = utils.RoundTo(utils.Clamp(b.Raw*100, 0, 100), 1)
	return b
}

// MCI returns the 0-100 circularity score of a row
func MCI(row domain.Row) float64 {
	return ComputeMCI(row).Score
}

func numOr(row domain.Row, name string, def float64) float64 {
	if v, ok := row.Num(name); ok {
		return v
	}
	return def
}
