// Package domain models per-state wind-resource reference data for India and
// the project-economics calculation driven by it.
//
// # Data Source
//
// State profiles are a hand-curated table compiled from NIWE (National
// Institute of Wind Energy) wind atlas publications, MNRE potential
// assessments and state renewable-energy departments. The table is loaded once
// at start-up (see package catalog) into an immutable [Dataset]. Nothing in
// this package fetches, refreshes or persists it.
//
// # Units
//
// Wind resource:
//
//	Wind speed:            metres per second, mean at hub height, e.g. 8.2
//	Turbulence intensity:  percent, e.g. 10.5 = 10.5%
//	Elevation:             metres above sea level
//	Installed capacity:    megawatts (MW) already commissioned in the state
//	Theoretical potential: gigawatts (GW)
//
// Project economics:
//
//	Turbine cost:  lakhs of rupees per MW of capacity (1 lakh = 100,000 INR)
//	O&M cost:      lakhs of rupees per MW per year
//	Tariff:        rupees per kWh sold
//	Generation:    MWh per year; revenue converts MWh to kWh (x1000)
//
// # Potential Tiers
//
// Every state carries a pre-assigned qualitative tier, ordered best first:
//
//	Excellent > Very Good > Good > Medium
//
// Tiers are annotations for filtering and map colour-coding only. They are
// never derived from wind speed, and a state's tier may disagree with the
// capacity factor computed from user inputs. The two are kept independent.
//
// # Capacity Factor Model
//
// The capacity factor is a linear heuristic, not a calibrated power curve:
//
//	cf = max(0.087 * wind_speed - 0.005 * turbulence, 0)
//
// ROI is undiscounted over the full project lifetime; no NPV is applied.
package domain
