// Package catalog loads the state wind-resource reference table.
//
// The default table is embedded in the binary. Operators may point
// DATASET_PATH at a replacement file with the same layout.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/wind-analytics-service/internal/domain"
)

//go:embed india.yaml
var indiaYAML []byte

// Document is the on-disk layout of a dataset file.
type Document struct {
	Version string              `yaml:"version"`
	Country string              `yaml:"country"`
	States  []StateRecord       `yaml:"states"`
	Regions map[string][]string `yaml:"regions"`
}

// StateRecord is one state entry as written in YAML. Potential is the tier
// label, e.g. "Very Good".
type StateRecord struct {
	Name                   string  `yaml:"name"`
	Code                   string  `yaml:"code"`
	Lat                    float64 `yaml:"lat"`
	Lon                    float64 `yaml:"lon"`
	WindSpeed              float64 `yaml:"wind_speed"`
	Turbulence             float64 `yaml:"turbulence"`
	Elevation              float64 `yaml:"elevation"`
	Potential              string  `yaml:"potential"`
	InstalledCapacityMW    float64 `yaml:"installed_capacity_mw"`
	TheoreticalPotentialGW float64 `yaml:"theoretical_potential_gw"`
	Source                 string  `yaml:"source"`
}

// Default returns the embedded India dataset.
func Default() (*domain.Dataset, error) {
	return Parse(indiaYAML)
}

// Load reads a dataset from a YAML file.
func Load(path string) (*domain.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset file: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault loads path when it is non-empty and the embedded dataset
// otherwise.
func LoadOrDefault(path string) (*domain.Dataset, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes and validates a dataset document.
func Parse(data []byte) (*domain.Dataset, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing dataset YAML: %w", err)
	}
	return doc.Dataset()
}

// Dataset converts the document into a validated domain.Dataset.
func (doc Document) Dataset() (*domain.Dataset, error) {
	profiles := make([]domain.StateWindProfile, 0, len(doc.States))
	for _, rec := range doc.States {
		tier, err := domain.ParseTier(rec.Potential)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", rec.Name, err)
		}
		profiles = append(profiles, domain.StateWindProfile{
			Name:                   rec.Name,
			Code:                   rec.Code,
			Lat:                    rec.Lat,
			Lon:                    rec.Lon,
			WindSpeed:              rec.WindSpeed,
			Turbulence:             rec.Turbulence,
			Elevation:              rec.Elevation,
			Potential:              tier,
			InstalledCapacityMW:    rec.InstalledCapacityMW,
			TheoreticalPotentialGW: rec.TheoreticalPotentialGW,
			Source:                 rec.Source,
		})
	}

	regions := make(map[domain.PotentialTier][]string, len(doc.Regions))
	for label, names := range doc.Regions {
		tier, err := domain.ParseTier(label)
		if err != nil {
			return nil, fmt.Errorf("regions: %w", err)
		}
		regions[tier] = append(regions[tier], names...)
	}

	return domain.NewDataset(profiles, regions)
}
