package domain

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// HeadlineMetrics are the three metrics shown on the dashboard, formatted
// for display.
type HeadlineMetrics struct {
	CapacityFactor   string `json:"capacity_factor"`
	AnnualGeneration string `json:"annual_generation"`
	ROI              string `json:"roi"`
}

// Headline formats the headline metrics of m.
func Headline(m ProjectMetrics) HeadlineMetrics {
	return HeadlineMetrics{
		CapacityFactor:   FormatPercentOfOne(m.CapacityFactor),
		AnnualGeneration: FormatThousands(m.AnnualGenerationMWh) + " MWh",
		ROI:              FormatPercent(m.ROIPercent),
	}
}

// ProfileDisplay holds the display strings for a state's overview cards.
type ProfileDisplay struct {
	WindSpeed            string `json:"wind_speed"`
	Potential            string `json:"potential"`
	InstalledCapacity    string `json:"installed_capacity"`
	TheoreticalPotential string `json:"theoretical_potential"`
}

// Display formats the overview fields of p.
func Display(p StateWindProfile) ProfileDisplay {
	return ProfileDisplay{
		WindSpeed:            FormatWindSpeed(p.WindSpeed),
		Potential:            p.Potential.String(),
		InstalledCapacity:    FormatThousands(p.InstalledCapacityMW) + " MW",
		TheoreticalPotential: strconv.FormatFloat(p.TheoreticalPotentialGW, 'f', -1, 64) + " GW",
	}
}

// FormatPercentOfOne renders a ratio as a percentage with one decimal,
// e.g. 0.6609 -> "66.1%".
func FormatPercentOfOne(ratio float64) string {
	return FormatPercent(ratio * 100)
}

// FormatPercent renders an already-scaled percentage with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatThousands rounds v half to even and groups thousands with commas,
// e.g. 14473.71 -> "14,474", 2.5 -> "2".
func FormatThousands(v float64) string {
	return humanize.FormatFloat("#,###.", math.RoundToEven(v))
}

// FormatWindSpeed renders a speed with the shortest exact decimal, e.g. "8.2 m/s".
func FormatWindSpeed(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " m/s"
}
