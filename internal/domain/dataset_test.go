package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfiles() []StateWindProfile {
	return []StateWindProfile{
		{Name: "Tamil Nadu", Code: "TN", Lat: 11.1271, Lon: 78.6569, WindSpeed: 8.2, Turbulence: 10.5, Elevation: 150,
			Potential: TierExcellent, InstalledCapacityMW: 9600, TheoreticalPotentialGW: 88.5, Source: "NIWE Wind Atlas of India"},
		{Name: "Gujarat", Code: "GJ", Lat: 22.2587, Lon: 71.1924, WindSpeed: 7.8, Turbulence: 11.2, Elevation: 120,
			Potential: TierExcellent, InstalledCapacityMW: 8900, TheoreticalPotentialGW: 84.3, Source: "MNRE Wind Potential Assessment"},
		{Name: "Rajasthan", Code: "RJ", Lat: 27.0238, Lon: 74.2179, WindSpeed: 7.1, Turbulence: 13.5, Elevation: 280,
			Potential: TierVeryGood, InstalledCapacityMW: 4800, TheoreticalPotentialGW: 67.8, Source: "State Renewable Energy Dept"},
		{Name: "Karnataka", Code: "KA", Lat: 15.3173, Lon: 75.7139, WindSpeed: 6.8, Turbulence: 11.8, Elevation: 320,
			Potential: TierGood, InstalledCapacityMW: 5100, TheoreticalPotentialGW: 52.4, Source: "NIWE Wind Atlas of India"},
		{Name: "Kerala", Code: "KL", Lat: 10.8505, Lon: 76.2711, WindSpeed: 5.2, Turbulence: 14.2, Elevation: 80,
			Potential: TierMedium, InstalledCapacityMW: 1200, TheoreticalPotentialGW: 18.9, Source: "State Renewable Energy"},
	}
}

func testRegions() map[PotentialTier][]string {
	return map[PotentialTier][]string{
		TierExcellent: {"Tamil Nadu", "Gujarat"},
		TierVeryGood:  {"Rajasthan"},
		TierGood:      {"Karnataka"},
		TierMedium:    {"Kerala"},
	}
}

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	d, err := NewDataset(testProfiles(), testRegions())
	require.NoError(t, err)
	return d
}

func TestNewDataset_Valid(t *testing.T) {
	d := testDataset(t)

	assert.Equal(t, 5, d.Len())
	assert.Equal(t, []string{"Tamil Nadu", "Gujarat", "Rajasthan", "Karnataka", "Kerala"}, d.Names())
	assert.Equal(t, []string{"Tamil Nadu", "Gujarat"}, d.StatesInTier(TierExcellent))
}

func TestNewDataset_Invariants(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]StateWindProfile, map[PotentialTier][]string) ([]StateWindProfile, map[PotentialTier][]string)
		wantErr string
	}{
		{
			name: "state missing from groupings",
			mutate: func(p []StateWindProfile, r map[PotentialTier][]string) ([]StateWindProfile, map[PotentialTier][]string) {
				r[TierMedium] = nil
				return p, r
			},
			wantErr: `"Kerala" is not in any tier grouping`,
		},
		{
			name: "state in two groupings",
			mutate: func(p []StateWindProfile, r map[PotentialTier][]string) ([]StateWindProfile, map[PotentialTier][]string) {
				r[TierGood] = append(r[TierGood], "Tamil Nadu")
				return p, r
			},
			wantErr: "Tamil Nadu",
		},
		{
			name: "grouping disagrees with tier",
			mutate: func(p []StateWindProfile, r map[PotentialTier][]string) ([]StateWindProfile, map[PotentialTier][]string) {
				r[TierGood] = []string{"Kerala"}
				r[TierMedium] = []string{"Karnataka"}
				return p, r
			},
			wantErr: "grouped under",
		},
		{
			name: "unknown state in grouping",
			mutate: func(p []StateWindProfile, r map[PotentialTier][]string) ([]StateWindProfile, map[PotentialTier][]string) {
				r[TierMedium] = append(r[TierMedium], "Atlantis")
				return p, r
			},
			wantErr: "unknown state",
		},
		{
			name: "duplicate name",
			mutate: func(p []StateWindProfile, r map[PotentialTier][]string) ([]StateWindProfile, map[PotentialTier][]string) {
				dup := p[0]
				dup.Code = "XX"
				return append(p, dup), r
			},
			wantErr: `duplicate state "Tamil Nadu"`,
		},
		{
			name: "duplicate code",
			mutate: func(p []StateWindProfile, r map[PotentialTier][]string) ([]StateWindProfile, map[PotentialTier][]string) {
				p[1].Code = "tn"
				return p, r
			},
			wantErr: "reuses code",
		},
		{
			name: "empty code",
			mutate: func(p []StateWindProfile, r map[PotentialTier][]string) ([]StateWindProfile, map[PotentialTier][]string) {
				p[2].Code = ""
				return p, r
			},
			wantErr: "empty code",
		},
		{
			name: "latitude out of range",
			mutate: func(p []StateWindProfile, r map[PotentialTier][]string) ([]StateWindProfile, map[PotentialTier][]string) {
				p[3].Lat = 120
				return p, r
			},
			wantErr: "coordinates out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles, regions := tt.mutate(testProfiles(), testRegions())
			_, err := NewDataset(profiles, regions)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewDataset_Empty(t *testing.T) {
	_, err := NewDataset(nil, nil)
	require.Error(t, err)
}

func TestDataset_Lookup(t *testing.T) {
	d := testDataset(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"exact name", "Gujarat", "Gujarat"},
		{"code", "RJ", "Rajasthan"},
		{"lowercase code", "kl", "Kerala"},
		{"case-insensitive name", "tamil nadu", "Tamil Nadu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := d.Lookup(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name)
		})
	}

	_, err := d.Lookup("Goa")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestDataset_AccessorsReturnCopies(t *testing.T) {
	d := testDataset(t)

	names := d.Names()
	names[0] = "mutated"
	inTier := d.StatesInTier(TierExcellent)
	inTier[0] = "mutated"
	regions := d.Regions()
	regions[TierGood][0] = "mutated"

	assert.Equal(t, "Tamil Nadu", d.Names()[0])
	assert.Equal(t, "Tamil Nadu", d.StatesInTier(TierExcellent)[0])
	assert.Equal(t, "Karnataka", d.StatesInTier(TierGood)[0])
}

func TestDataset_Filter(t *testing.T) {
	d := testDataset(t)

	assert.Len(t, d.Filter(), 5, "empty filter selects every state")

	filtered := d.Filter(TierExcellent, TierMedium)
	names := make([]string, 0, len(filtered))
	for _, p := range filtered {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Tamil Nadu", "Gujarat", "Kerala"}, names)

	assert.Empty(t, d.Filter(PotentialTier(42)))
}

func TestDataset_ComparisonTable(t *testing.T) {
	d := testDataset(t)

	rows := d.ComparisonTable(TierExcellent)

	require.Len(t, rows, 2)
	assert.Equal(t, ComparisonRow{
		State:                "Tamil Nadu",
		WindSpeed:            8.2,
		Potential:            TierExcellent,
		InstalledCapacity:    "9,600",
		TheoreticalPotential: 88.5,
	}, rows[0])
	assert.Equal(t, "8,900", rows[1].InstalledCapacity)
}

func TestDataset_Sources(t *testing.T) {
	d := testDataset(t)

	sources := d.Sources()

	require.Len(t, sources, 4)
	assert.Equal(t, "NIWE Wind Atlas of India", sources[0].Source)
	assert.Equal(t, []string{"Tamil Nadu", "Karnataka"}, sources[0].States)
}

func TestDataset_DefaultsFor(t *testing.T) {
	d := testDataset(t)

	params, err := d.DefaultsFor("TN")
	require.NoError(t, err)

	assert.Equal(t, 8.2, params.AvgWindSpeed)
	assert.Equal(t, 10.5, params.Turbulence)
	assert.Equal(t, 20.0, params.LifetimeYears)
	assert.Equal(t, 2.5, params.TurbineCapacityMW)
	assert.Equal(t, 750.0, params.TurbineCostLakhsPerMW)
	assert.NoError(t, Validate(params))

	_, err = d.DefaultsFor("nowhere")
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestDataset_TierIndependentOfCapacityFactor(t *testing.T) {
	d := testDataset(t)
	p, ok := d.Profile("Tamil Nadu")
	require.True(t, ok)

	params, err := d.DefaultsFor(p.Name)
	require.NoError(t, err)
	params.AvgWindSpeed = 3
	params.Turbulence = 25

	a, err := Assess(params, &p)
	require.NoError(t, err)

	// A low capacity factor does not relabel an Excellent state.
	assert.InDelta(t, 0.136, a.Metrics.CapacityFactor, 1e-9)
	require.NotNil(t, a.Potential)
	assert.Equal(t, TierExcellent, *a.Potential)
	again, _ := d.Profile("Tamil Nadu")
	assert.Equal(t, TierExcellent, again.Potential)
}
