package domain

// CalculationRequest is the input of the quick weighted calculator.
// Start from DefaultCalculationRequest so absent JSON fields keep their defaults.
type CalculationRequest struct {
	Material                 string   `json:"material"`
	Quantity                 *float64 `json:"quantity"`
	Route                    string   `json:"route"`
	RecycledContentFrac      float64  `json:"recycled_content_frac"`
	RecyclingEfficiencyFrac  float64  `json:"recycling_efficiency_frac"`
	ProductLifetimeYears     float64  `json:"product_lifetime_years"`
	RenewableElectricityFrac float64  `json:"renewable_electricity_frac"`
	ReusePotentialScore      float64  `json:"reuse_potential_score"`
	RepairabilityScore       float64  `json:"repairability_score"`
	TransportDistanceKm      float64  `json:"transport_distance_km"`
}

// DefaultCalculationRequest returns the defaults applied to omitted fields
func DefaultCalculationRequest() CalculationRequest {
	return CalculationRequest{
		ProductLifetimeYears: 1,
		TransportDistanceKm:  100,
	}
}

// CircularityFactors are the weighted contributions to the quick MCI
type CircularityFactors struct {
	RecycledContent     float64 `json:"recycled_content"`
	RecyclingEfficiency float64 `json:"recycling_efficiency"`
	ProductLifetime     float64 `json:"product_lifetime"`
	RenewableEnergy     float64 `json:"renewable_energy"`
	ReusePotential      float64 `json:"reuse_potential"`
	Repairability       float64 `json:"repairability"`
}

// Sum adds all weighted factors
func (f CircularityFactors) Sum() float64 {
	return f.RecycledContent + f.RecyclingEfficiency + f.ProductLifetime +
		f.RenewableEnergy + f.ReusePotential + f.Repairability
}

// EnvironmentalImpact estimates emissions, energy and water for a quantity of material
type EnvironmentalImpact struct {
	CO2Emissions       float64 `json:"co2_emissions"`
	EnergyConsumption  float64 `json:"energy_consumption"`
	WaterUsage         float64 `json:"water_usage"`
	TransportEmissions float64 `json:"transport_emissions"`
}

// CalculationResult is the quick calculator output
type CalculationResult struct {
	MCIScore             float64             `json:"mci_score"`
	CircularityFactors   CircularityFactors  `json:"circularity_factors"`
	EnvironmentalImpacts EnvironmentalImpact `json:"environmental_impacts"`
	Recommendations      []string            `json:"recommendations"`
	Material             string              `json:"material"`
	Quantity             float64             `json:"quantity"`
	Route                string              `json:"route"`
}
