package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownState is returned when a lookup names a state absent from the dataset.
var ErrUnknownState = errors.New("unknown state")

// ComparisonRow is one row of the state comparison table.
type ComparisonRow struct {
	State                string        `json:"state"`
	WindSpeed            float64       `json:"wind_speed"`
	Potential            PotentialTier `json:"potential"`
	InstalledCapacity    string        `json:"installed_capacity"`
	TheoreticalPotential float64       `json:"theoretical_potential"`
}

// SourceCitation groups the states that share one data-source citation.
type SourceCitation struct {
	Source string   `json:"source"`
	States []string `json:"states"`
}

// Dataset is the read-only reference table of state profiles plus the
// tier-to-states grouping. It is built once and never mutated; accessors
// return copies.
type Dataset struct {
	order   []string
	byName  map[string]StateWindProfile
	byCode  map[string]string
	regions map[PotentialTier][]string
}

// NewDataset validates profiles against regions and builds a Dataset.
// Every profile must appear in exactly one grouping, and that grouping must
// match the profile's own tier. Profile order is preserved for listings.
func NewDataset(profiles []StateWindProfile, regions map[PotentialTier][]string) (*Dataset, error) {
	if len(profiles) == 0 {
		return nil, errors.New("dataset has no state profiles")
	}

	d := &Dataset{
		order:   make([]string, 0, len(profiles)),
		byName:  make(map[string]StateWindProfile, len(profiles)),
		byCode:  make(map[string]string, len(profiles)),
		regions: make(map[PotentialTier][]string, len(regions)),
	}

	var errs []error
	for _, p := range profiles {
		if err := checkProfile(p); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := d.byName[p.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate state %q", p.Name))
			continue
		}
		code := strings.ToUpper(p.Code)
		if other, dup := d.byCode[code]; dup {
			errs = append(errs, fmt.Errorf("state %q reuses code %q of %q", p.Name, p.Code, other))
			continue
		}
		d.order = append(d.order, p.Name)
		d.byName[p.Name] = p
		d.byCode[code] = p.Name
	}

	membership := make(map[string]PotentialTier, len(profiles))
	for tier, names := range regions {
		if !tier.Valid() {
			errs = append(errs, fmt.Errorf("grouping for invalid tier %d", int(tier)))
			continue
		}
		for _, name := range names {
			p, ok := d.byName[name]
			if !ok {
				errs = append(errs, fmt.Errorf("tier %s lists %w %q", tier, ErrUnknownState, name))
				continue
			}
			if prev, seen := membership[name]; seen {
				errs = append(errs, fmt.Errorf("state %q listed under both %s and %s", name, prev, tier))
				continue
			}
			if p.Potential != tier {
				errs = append(errs, fmt.Errorf("state %q has potential %s but is grouped under %s", name, p.Potential, tier))
				continue
			}
			membership[name] = tier
			d.regions[tier] = append(d.regions[tier], name)
		}
	}

	for _, name := range d.order {
		if _, ok := membership[name]; !ok {
			errs = append(errs, fmt.Errorf("state %q is not in any tier grouping", name))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return d, nil
}

func checkProfile(p StateWindProfile) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return errors.New("state profile has empty name")
	case strings.TrimSpace(p.Code) == "":
		return fmt.Errorf("state %q has empty code", p.Name)
	case !p.Potential.Valid():
		return fmt.Errorf("state %q has invalid potential tier", p.Name)
	case p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180:
		return fmt.Errorf("state %q has coordinates out of range (%g, %g)", p.Name, p.Lat, p.Lon)
	case p.WindSpeed < 0 || p.Turbulence < 0:
		return fmt.Errorf("state %q has negative wind figures", p.Name)
	}
	return nil
}

// Len returns the number of states.
func (d *Dataset) Len() int { return len(d.order) }

// Names returns state names in load order.
func (d *Dataset) Names() []string {
	return slices.Clone(d.order)
}

// Profile looks up a state by exact name.
func (d *Dataset) Profile(name string) (StateWindProfile, bool) {
	p, ok := d.byName[name]
	return p, ok
}

// ProfileByCode looks up a state by its short code, case-insensitively.
func (d *Dataset) ProfileByCode(code string) (StateWindProfile, bool) {
	name, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return StateWindProfile{}, false
	}
	return d.byName[name], true
}

// Lookup resolves a state by name, falling back to its short code.
func (d *Dataset) Lookup(nameOrCode string) (StateWindProfile, error) {
	if p, ok := d.Profile(nameOrCode); ok {
		return p, nil
	}
	if p, ok := d.ProfileByCode(nameOrCode); ok {
		return p, nil
	}
	for _, name := range d.order {
		if strings.EqualFold(name, strings.TrimSpace(nameOrCode)) {
			return d.byName[name], nil
		}
	}
	return StateWindProfile{}, fmt.Errorf("%w: %q", ErrUnknownState, nameOrCode)
}

// StatesInTier returns the names grouped under tier.
func (d *Dataset) StatesInTier(tier PotentialTier) []string {
	return slices.Clone(d.regions[tier])
}

// Regions returns the full tier grouping, keyed by tier.
func (d *Dataset) Regions() map[PotentialTier][]string {
	out := make(map[PotentialTier][]string, len(d.regions))
	for tier, names := range d.regions {
		out[tier] = slices.Clone(names)
	}
	return out
}

// Filter returns profiles whose tier is in tiers, in load order.
// An empty tier list selects every state.
func (d *Dataset) Filter(tiers ...PotentialTier) []StateWindProfile {
	out := make([]StateWindProfile, 0, len(d.order))
	for _, name := range d.order {
		p := d.byName[name]
		if len(tiers) == 0 || slices.Contains(tiers, p.Potential) {
			out = append(out, p)
		}
	}
	return out
}

// ComparisonTable builds the State / Wind Speed / Potential / Installed
// Capacity / Theoretical Potential view over the filtered states.
func (d *Dataset) ComparisonTable(tiers ...PotentialTier) []ComparisonRow {
	profiles := d.Filter(tiers...)
	rows := make([]ComparisonRow, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, ComparisonRow{
			State:                p.Name,
			WindSpeed:            p.WindSpeed,
			Potential:            p.Potential,
			InstalledCapacity:    FormatThousands(p.InstalledCapacityMW),
			TheoreticalPotential: p.TheoreticalPotentialGW,
		})
	}
	return rows
}

// Sources groups states by their citation, in order of first appearance.
func (d *Dataset) Sources() []SourceCitation {
	var out []SourceCitation
	index := make(map[string]int)
	for _, name := range d.order {
		src := d.byName[name].Source
		i, ok := index[src]
		if !ok {
			i = len(out)
			index[src] = i
			out = append(out, SourceCitation{Source: src})
		}
		out[i].States = append(out[i].States, name)
	}
	return out
}

// DefaultsFor returns DefaultParameters with the state's own wind speed and
// turbulence filled in.
func (d *Dataset) DefaultsFor(nameOrCode string) (ProjectParameters, error) {
	p, err := d.Lookup(nameOrCode)
	if err != nil {
		return ProjectParameters{}, err
	}
	params := DefaultParameters()
	params.AvgWindSpeed = p.WindSpeed
	params.Turbulence = p.Turbulence
	return params, nil
}
