package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/couchcryptid/wind-analytics-service/internal/domain"
)

func printStates(w io.Writer, profiles []domain.StateWindProfile) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATE\tCODE\tWIND\tTURBULENCE\tELEVATION\tPOTENTIAL")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f%%\t%s m\t%s\n",
			p.Name, p.Code, domain.FormatWindSpeed(p.WindSpeed), p.Turbulence,
			domain.FormatThousands(p.Elevation), p.Potential)
	}
	tw.Flush()
}

func printComparison(w io.Writer, rows []domain.ComparisonRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATE\tWIND SPEED (m/s)\tPOTENTIAL\tINSTALLED (MW)\tTHEORETICAL (GW)")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%g\t%s\t%s\t%g\n",
			r.State, r.WindSpeed, r.Potential, r.InstalledCapacity, r.TheoreticalPotential)
	}
	tw.Flush()
}

func printSources(w io.Writer, sources []domain.SourceCitation) {
	for _, s := range sources {
		fmt.Fprintf(w, "%s\n  %s\n", s.Source, strings.Join(s.States, ", "))
	}
}

func printAssessment(w io.Writer, a domain.Assessment) {
	if a.State != "" {
		fmt.Fprintf(w, "Project Economics: %s (%s potential)\n", a.State, *a.Potential)
	} else {
		fmt.Fprintln(w, "Project Economics")
	}
	fmt.Fprintln(w, "=================")
	fmt.Fprintln(w)

	p := a.Parameters
	fmt.Fprintf(w, "  Lifetime:               %g years\n", p.LifetimeYears)
	fmt.Fprintf(w, "  Turbine capacity:       %g MW\n", p.TurbineCapacityMW)
	fmt.Fprintf(w, "  Wind speed:             %s\n", domain.FormatWindSpeed(p.AvgWindSpeed))
	fmt.Fprintf(w, "  Turbulence:             %g%%\n", p.Turbulence)
	fmt.Fprintf(w, "  Tariff:                 ₹%g/kWh\n", p.TariffPerKWh)
	fmt.Fprintln(w)

	m := a.Metrics
	fmt.Fprintf(w, "  Capacity factor:        %s\n", a.Headline.CapacityFactor)
	fmt.Fprintf(w, "  Annual generation:      %s\n", a.Headline.AnnualGeneration)
	fmt.Fprintf(w, "  Annual revenue:         ₹%s\n", formatRupees(m.AnnualRevenue))
	fmt.Fprintf(w, "  Total investment:       ₹%s\n", formatRupees(m.TotalInvestment))
	fmt.Fprintf(w, "  Annual O&M:             ₹%s\n", formatRupees(m.AnnualOMCost))
	fmt.Fprintf(w, "  Annual cash flow:       ₹%s\n", formatRupees(m.AnnualCashFlow))
	fmt.Fprintf(w, "  ROI (undiscounted):     %s\n", a.Headline.ROI)
}

// formatRupees renders an amount in crore above one crore, e.g. "18.75 crore".
func formatRupees(v float64) string {
	const crore = 1e7
	if v >= crore || v <= -crore {
		return humanize.CommafWithDigits(v/crore, 2) + " crore"
	}
	return domain.FormatThousands(v)
}
