package domain

import "math"

// Model constants.
const (
	HoursPerYear  = 8760.0
	KWhPerMWh     = 1000.0
	RupeesPerLakh = 100000.0

	// capacity factor = windSpeedSlope*v - turbulencePenalty*ti
	windSpeedSlope    = 0.087
	turbulencePenalty = 0.005
)

// ProjectParameters are the inputs for one economics calculation. They are
// captured fresh for every request and never stored.
type ProjectParameters struct {
	LifetimeYears     float64 `json:"lifetime_years"`
	TurbineCapacityMW float64 `json:"turbine_capacity_mw"`
	ProjectAreaKm2    float64 `json:"project_area_km2"`

	AvgWindSpeed float64 `json:"avg_wind_speed"` // m/s
	Turbulence   float64 `json:"turbulence"`     // percent

	TurbineCostLakhsPerMW float64 `json:"turbine_cost_lakhs_per_mw"`
	OMCostLakhsPerMWYear  float64 `json:"om_cost_lakhs_per_mw_year"`
	TariffPerKWh          float64 `json:"tariff_per_kwh"`
}

// ProjectMetrics are derived from ProjectParameters by ComputeMetrics.
// Currency amounts are in rupees.
type ProjectMetrics struct {
	CapacityFactor      float64 `json:"capacity_factor"`
	AnnualGenerationMWh float64 `json:"annual_generation_mwh"`
	AnnualRevenue       float64 `json:"annual_revenue"`
	TotalInvestment     float64 `json:"total_investment"`
	AnnualOMCost        float64 `json:"annual_om_cost"`
	AnnualCashFlow      float64 `json:"annual_cash_flow"`
	ROIPercent          float64 `json:"roi_percent"`
}

// CapacityFactor applies the linear wind/turbulence heuristic, floored at zero.
func CapacityFactor(avgWindSpeed, turbulence float64) float64 {
	return math.Max(windSpeedSlope*avgWindSpeed-turbulencePenalty*turbulence, 0)
}

// ComputeMetrics converts parameters into metrics. It is pure and performs no
// validation or clamping beyond the capacity-factor floor; non-finite inputs
// yield non-finite outputs. Use ComputeChecked for untrusted input.
func ComputeMetrics(p ProjectParameters) ProjectMetrics {
	cf := CapacityFactor(p.AvgWindSpeed, p.Turbulence)
	generation := p.TurbineCapacityMW * HoursPerYear * cf
	revenue := generation * p.TariffPerKWh * KWhPerMWh
	investment := p.TurbineCapacityMW * p.TurbineCostLakhsPerMW * RupeesPerLakh
	om := p.TurbineCapacityMW * p.OMCostLakhsPerMWYear * RupeesPerLakh
	cashFlow := revenue - om

	// Undiscounted: no time value of money over the lifetime.
	var roi float64
	if investment > 0 {
		roi = (cashFlow*p.LifetimeYears - investment) / investment * 100
	}

	return ProjectMetrics{
		CapacityFactor:      cf,
		AnnualGenerationMWh: generation,
		AnnualRevenue:       revenue,
		TotalInvestment:     investment,
		AnnualOMCost:        om,
		AnnualCashFlow:      cashFlow,
		ROIPercent:          roi,
	}
}

// ComputeChecked validates p against DefaultBounds before computing.
func ComputeChecked(p ProjectParameters) (ProjectMetrics, error) {
	if err := Validate(p); err != nil {
		return ProjectMetrics{}, err
	}
	return ComputeMetrics(p), nil
}
