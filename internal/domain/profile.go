package domain

import (
	"fmt"
	"strings"
)

// PotentialTier is the qualitative wind-resource class assigned to a state.
// Lower values are better; the zero value is Excellent.
type PotentialTier int

const (
	TierExcellent PotentialTier = iota
	TierVeryGood
	TierGood
	TierMedium
)

var tierNames = [...]string{
	TierExcellent: "Excellent",
	TierVeryGood:  "Very Good",
	TierGood:      "Good",
	TierMedium:    "Medium",
}

// Marker colours used on the national map, keyed by tier.
var tierColors = [...]string{
	TierExcellent: "#00ff00",
	TierVeryGood:  "#a0e75a",
	TierGood:      "#ffb74d",
	TierMedium:    "#ff6b6b",
}

// AllTiers returns every tier, best first.
func AllTiers() []PotentialTier {
	return []PotentialTier{TierExcellent, TierVeryGood, TierGood, TierMedium}
}

// ParseTier accepts a tier label case-insensitively ("very good", "Very Good").
func ParseTier(s string) (PotentialTier, error) {
	s = strings.TrimSpace(s)
	for i, name := range tierNames {
		if strings.EqualFold(s, name) {
			return PotentialTier(i), nil
		}
	}
	return 0, fmt.Errorf("unknown potential tier %q", s)
}

// Valid reports whether t is one of the defined tiers.
func (t PotentialTier) Valid() bool {
	return t >= TierExcellent && t <= TierMedium
}

func (t PotentialTier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("PotentialTier(%d)", int(t))
	}
	return tierNames[t]
}

// MarkerColor returns the hex colour for map markers. Unknown tiers share the
// Medium colour.
func (t PotentialTier) MarkerColor() string {
	if !t.Valid() {
		return tierColors[TierMedium]
	}
	return tierColors[t]
}

func (t PotentialTier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("marshal potential tier: invalid value %d", int(t))
	}
	return []byte(tierNames[t]), nil
}

func (t *PotentialTier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// StateWindProfile is the static reference record for one state.
type StateWindProfile struct {
	Name string `json:"name"`
	Code string `json:"code"`

	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	WindSpeed  float64 `json:"wind_speed"` // m/s
	Turbulence float64 `json:"turbulence"` // percent
	Elevation  float64 `json:"elevation"`  // metres

	Potential PotentialTier `json:"potential"`

	InstalledCapacityMW    float64 `json:"installed_capacity_mw"`
	TheoreticalPotentialGW float64 `json:"theoretical_potential_gw"`

	Source string `json:"source"`
}

// HasCoordinates reports whether the profile carries a usable location.
func (p StateWindProfile) HasCoordinates() bool {
	return p.Lat != 0 || p.Lon != 0
}
