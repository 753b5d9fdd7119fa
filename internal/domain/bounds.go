package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is matched by every *RangeError via errors.Is.
var ErrOutOfRange = errors.New("parameter out of range")

// Bound describes the accepted range of one input, with the control's
// default and step as presented to users.
type Bound struct {
	Field   string  `json:"field"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

// ParameterBounds lists the bound of every ProjectParameters field.
type ParameterBounds struct {
	LifetimeYears     Bound `json:"lifetime_years"`
	TurbineCapacityMW Bound `json:"turbine_capacity_mw"`
	ProjectAreaKm2    Bound `json:"project_area_km2"`
	AvgWindSpeed      Bound `json:"avg_wind_speed"`
	Turbulence        Bound `json:"turbulence"`
	TurbineCost       Bound `json:"turbine_cost_lakhs_per_mw"`
	OMCost            Bound `json:"om_cost_lakhs_per_mw_year"`
	Tariff            Bound `json:"tariff_per_kwh"`
}

// DefaultBounds returns the documented input ranges. Wind speed and
// turbulence defaults are placeholders; real defaults come from a state.
func DefaultBounds() ParameterBounds {
	return ParameterBounds{
		LifetimeYears:     Bound{Field: "lifetime_years", Label: "Project Lifetime (Years)", Min: 1, Max: 30, Default: 20, Step: 1},
		TurbineCapacityMW: Bound{Field: "turbine_capacity_mw", Label: "Turbine Capacity (MW)", Min: 0.5, Max: 8, Default: 2.5, Step: 0.5},
		ProjectAreaKm2:    Bound{Field: "project_area_km2", Label: "Project Area (sq. km)", Min: 1, Max: 200, Default: 25, Step: 5},
		AvgWindSpeed:      Bound{Field: "avg_wind_speed", Label: "Average Wind Speed (m/s)", Min: 3, Max: 12, Default: 7, Step: 0.1},
		Turbulence:        Bound{Field: "turbulence", Label: "Turbulence Intensity (%)", Min: 5, Max: 25, Default: 12, Step: 0.1},
		TurbineCost:       Bound{Field: "turbine_cost_lakhs_per_mw", Label: "Turbine Cost (₹ lakhs/MW)", Min: 500, Max: 1200, Default: 750, Step: 1},
		OMCost:            Bound{Field: "om_cost_lakhs_per_mw_year", Label: "O&M Cost (₹ lakhs/MW/year)", Min: 10, Max: 60, Default: 35, Step: 1},
		Tariff:            Bound{Field: "tariff_per_kwh", Label: "Electricity Tariff (₹/kWh)", Min: 3, Max: 10, Default: 6.2, Step: 0.1},
	}
}

// List returns the bounds in form order.
func (b ParameterBounds) List() []Bound {
	return []Bound{
		b.LifetimeYears, b.TurbineCapacityMW, b.ProjectAreaKm2,
		b.AvgWindSpeed, b.Turbulence,
		b.TurbineCost, b.OMCost, b.Tariff,
	}
}

// DefaultParameters returns the default value of every bound.
func DefaultParameters() ProjectParameters {
	b := DefaultBounds()
	return ProjectParameters{
		LifetimeYears:         b.LifetimeYears.Default,
		TurbineCapacityMW:     b.TurbineCapacityMW.Default,
		ProjectAreaKm2:        b.ProjectAreaKm2.Default,
		AvgWindSpeed:          b.AvgWindSpeed.Default,
		Turbulence:            b.Turbulence.Default,
		TurbineCostLakhsPerMW: b.TurbineCost.Default,
		OMCostLakhsPerMWYear:  b.OMCost.Default,
		TariffPerKWh:          b.Tariff.Default,
	}
}

// RangeError reports one field outside its bound, or a non-finite value.
type RangeError struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

func (e *RangeError) Error() string {
	if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
		return fmt.Sprintf("%s: value %v is not a finite number", e.Field, e.Value)
	}
	return fmt.Sprintf("%s: value %g outside [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Validate checks p against DefaultBounds. It never clamps; every offending
// field is reported, joined into one error.
func Validate(p ProjectParameters) error {
	return DefaultBounds().Validate(p)
}

// Validate checks p against b.
func (b ParameterBounds) Validate(p ProjectParameters) error {
	checks := []struct {
		bound Bound
		value float64
	}{
		{b.LifetimeYears, p.LifetimeYears},
		{b.TurbineCapacityMW, p.TurbineCapacityMW},
		{b.ProjectAreaKm2, p.ProjectAreaKm2},
		{b.AvgWindSpeed, p.AvgWindSpeed},
		{b.Turbulence, p.Turbulence},
		{b.TurbineCost, p.TurbineCostLakhsPerMW},
		{b.OMCost, p.OMCostLakhsPerMWYear},
		{b.Tariff, p.TariffPerKWh},
	}

	var errs []error
	for _, c := range checks {
		v := c.value
		if math.IsNaN(v) || math.IsInf(v, 0) || v < c.bound.Min || v > c.bound.Max {
			errs = append(errs, &RangeError{Field: c.bound.Field, Value: v, Min: c.bound.Min, Max: c.bound.Max})
		}
	}
	return errors.Join(errs...)
}

// RangeErrors extracts every *RangeError from err, including joined errors.
func RangeErrors(err error) []*RangeError {
	if err == nil {
		return nil
	}
	var out []*RangeError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, RangeErrors(e)...)
		}
		return out
	}
	var re *RangeError
	if errors.As(err, &re) {
		out = append(out, re)
	}
	return out
}
