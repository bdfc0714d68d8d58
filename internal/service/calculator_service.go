package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alibaba1709/SIH-25069/internal/circularity"
	"github.com/alibaba1709/SIH-25069/internal/domain"
	"github.com/alibaba1709/SIH-25069/pkg/utils"
)

// ErrMissingField reports a calculator request without a required field
var ErrMissingField = errors.New("missing required field")

const (
	secondaryRouteMultiplier = 0.1
	transportCO2PerKm        = 0.0001
	renewableEnergyReduction = 0.3
	renewableCO2Reduction    = 0.2
)

// CalculatorService runs the quick weighted MCI and impact estimate
type CalculatorService struct {
	materials *MaterialService
}

// NewCalculatorService creates a new calculator service
func NewCalculatorService(materials *MaterialService) *CalculatorService {
	return &CalculatorService{materials: materials}
}

// Calculate validates the request and returns score, factors, impacts and advice
func (s *CalculatorService) Calculate(req domain.CalculationRequest) (domain.CalculationResult, error) {
	switch {
	case req.Material == "":
		return domain.CalculationResult{}, fmt.Errorf("calculator: %w: material", ErrMissingField)
	case req.Quantity == nil:
		return domain.CalculationResult{}, fmt.Errorf("calculator: %w: quantity", ErrMissingField)
	case req.Route == "":
		return domain.CalculationResult{}, fmt.Errorf("calculator: %w: route", ErrMissingField)
	}

	score, factors := s.Score(req)
	impact := s.Impact(req)
	return domain.CalculationResult{
		MCIScore: utils.RoundTo(score, 1),
		CircularityFactors: domain.CircularityFactors{
			RecycledContent:     utils.RoundTo(factors.RecycledContent, 2),
			RecyclingEfficiency: utils.RoundTo(factors.RecyclingEfficiency, 2),
			ProductLifetime:     utils.RoundTo(factors.ProductLifetime, 2),
			RenewableEnergy:     utils.RoundTo(factors.RenewableEnergy, 2),
			ReusePotential:      utils.RoundTo(factors.ReusePotential, 2),
			Repairability:       utils.RoundTo(factors.Repairability, 2),
		},
		EnvironmentalImpacts: domain.EnvironmentalImpact{
			CO2Emissions:       utils.RoundTo(impact.CO2Emissions, 3),
			EnergyConsumption:  utils.RoundTo(impact.EnergyConsumption, 3),
			WaterUsage:         utils.RoundTo(impact.WaterUsage, 3),
			TransportEmissions: utils.RoundTo(impact.TransportEmissions, 3),
		},
		Recommendations: Advice(score, req),
		Material:        req.Material,
		Quantity:        *req.Quantity,
		Route:           req.Route,
	}, nil
}

// Score computes the weighted MCI (0-100) and its unrounded factors
func (s *CalculatorService) Score(req domain.CalculationRequest) (float64, domain.CircularityFactors) {
	f := domain.CircularityFactors{
		RecycledContent:     req.RecycledContentFrac * 25,
		RecyclingEfficiency: req.RecyclingEfficiencyFrac * 20,
		ProductLifetime:     min(req.ProductLifetimeYears/10, 1) * 20,
		RenewableEnergy:     req.RenewableElectricityFrac * 15,
		ReusePotential:      req.ReusePotentialScore * 10,
		Repairability:       req.RepairabilityScore * 10,
	}
	score := f.Sum()
	if req.RecycledContentFrac > 0.8 && req.RecyclingEfficiencyFrac > 0.8 {
		score += 5
	}
	return utils.Clamp(score, 0, 100), f
}

// Impact estimates CO2, energy and water for the requested quantity.
// Unknown materials use the steel factors.
func (s *CalculatorService) Impact(req domain.CalculationRequest) domain.EnvironmentalImpact {
	base := s.materials.ImpactFactors(req.Material)
	qty := 1.0
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	mult := 1.0
	if req.Route == "Secondary" {
		mult = secondaryRouteMultiplier
	}

	transport := req.TransportDistanceKm * transportCO2PerKm
	co2 := (base.CO2Kg*mult + transport) * qty
	energy := base.EnergyMJ * mult * qty
	water := base.WaterL * mult * qty

	r := req.RenewableElectricityFrac
	return domain.EnvironmentalImpact{
		CO2Emissions:       max(0, co2-co2*r*renewableCO2Reduction),
		EnergyConsumption:  max(0, energy-energy*r*renewableEnergyReduction),
		WaterUsage:         water,
		TransportEmissions: transport,
	}
}

// Advice returns the tiered recommendations for a score followed by
// priority messages for weak parameters
func Advice(score float64, req domain.CalculationRequest) []string {
	var recs []string
	switch {
	case score < 40:
		recs = []string{
			"🔄 Increase recycled content to above 50% to significantly improve circularity",
			fmt.Sprintf("⚡ Transition to renewable energy sources (current: %.1f%%)", req.RenewableElectricityFrac*100),
			"🔧 Improve product design for longer lifetime and better repairability",
			"♻️ Establish better end-of-life material recovery systems",
		}
	case score < 70:
		recs = []string{
			fmt.Sprintf("📈 Optimize recycling efficiency (current: %.1f%%)", req.RecyclingEfficiencyFrac*100),
			"🌱 Increase renewable energy usage to 80%+ for better sustainability",
			"🔄 Improve material loop closing to reduce waste",
			"📊 Monitor and track circularity metrics regularly",
		}
	default:
		recs = []string{
			"✅ Excellent circularity performance! Maintain current practices",
			"🎯 Consider becoming a benchmark for industry best practices",
			"🔬 Explore innovative recycling technologies for further optimization",
			"📋 Share learnings with industry to promote circular economy",
		}
	}

	if req.RecycledContentFrac < 0.3 {
		recs = append(recs, fmt.Sprintf("⚠️ Priority: Increase recycled content from %.1f%% to at least 30%%", req.RecycledContentFrac*100))
	}
	if req.RenewableElectricityFrac < 0.5 {
		recs = append(recs, fmt.Sprintf("🌿 Priority: Increase renewable energy from %.1f%% to 50%%+", req.RenewableElectricityFrac*100))
	}
	if req.ProductLifetimeYears < 5 {
		recs = append(recs, fmt.Sprintf("⏰ Priority: Extend product lifetime from %.1f to 5+ years", req.ProductLifetimeYears))
	}
	return recs
}

// CalculationFromAnalysis builds a calculator request for an assessment.
// Values come from the aligned row so the impact matches the analysis it is
// attached to; calculator inputs outside the feature schema are read from the
// raw fields with the same coercion.
func CalculationFromAnalysis(aligned domain.Row, fields map[string]any, metal string) domain.CalculationRequest {
	req := domain.DefaultCalculationRequest()
	req.Material = metal
	req.Route = "Primary"
	if s, ok := aligned.Str("route"); ok && s != "" {
		req.Route = s
	} else if s, ok := fields["route"].(string); ok && strings.TrimSpace(s) != "" {
		req.Route = strings.TrimSpace(s)
	}

	lookup := func(name string) (float64, bool) {
		if v, ok := aligned.Num(name); ok {
			return v, true
		}
		return circularity.ToFloat(fields[name])
	}

	qty := 1.0
	if v, ok := lookup("material_mass_kg"); ok {
		qty = v
	}
	req.Quantity = &qty

	set := func(name string, dst *float64) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	set("recycled_content_frac", &req.RecycledContentFrac)
	set("recycling_efficiency_frac", &req.RecyclingEfficiencyFrac)
	set("product_lifetime_years", &req.ProductLifetimeYears)
	set("renewable_electricity_frac", &req.RenewableElectricityFrac)
	set("reuse_potential_score", &req.ReusePotentialScore)
	set("repairability_score", &req.RepairabilityScore)
	set("transport_distance_km", &req.TransportDistanceKm)
	return req
}
