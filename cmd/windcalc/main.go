// Command windcalc queries the state wind-resource table and runs the
// project economics calculator from the terminal.
//
// Usage:
//
//	windcalc states --tier excellent
//	windcalc compare --tier "very good" --tier good
//	windcalc calc --state TN --capacity 3 --tariff 5.8
//	windcalc dataset validate ./india.yaml
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wind-analytics-service/internal/catalog"
	"github.com/couchcryptid/wind-analytics-service/internal/domain"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var datasetPath string

	rootCmd := &cobra.Command{
		Use:           "windcalc",
		Short:         "India wind resource reference data and project economics",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", os.Getenv("DATASET_PATH"),
		"dataset YAML file (defaults to the embedded table)")

	load := func() (*domain.Dataset, error) {
		return catalog.LoadOrDefault(datasetPath)
	}

	rootCmd.AddCommand(statesCmd(load))
	rootCmd.AddCommand(compareCmd(load))
	rootCmd.AddCommand(sourcesCmd(load))
	rootCmd.AddCommand(calcCmd(load))
	rootCmd.AddCommand(datasetCmd())

	return rootCmd
}

type datasetLoader func() (*domain.Dataset, error)

func statesCmd(load datasetLoader) *cobra.Command {
	var tiers []string

	cmd := &cobra.Command{
		Use:   "states",
		Short: "List states with their wind profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := load()
			if err != nil {
				return err
			}
			selected, err := parseTiers(tiers)
			if err != nil {
				return err
			}
			printStates(cmd.OutOrStdout(), d.Filter(selected...))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&tiers, "tier", "t", nil, "filter by potential tier (repeatable)")
	return cmd
}

func compareCmd(load datasetLoader) *cobra.Command {
	var tiers []string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Print the state comparison table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := load()
			if err != nil {
				return err
			}
			selected, err := parseTiers(tiers)
			if err != nil {
				return err
			}
			printComparison(cmd.OutOrStdout(), d.ComparisonTable(selected...))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&tiers, "tier", "t", nil, "filter by potential tier (repeatable)")
	return cmd
}

func sourcesCmd(load datasetLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List data sources and the states they cover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := load()
			if err != nil {
				return err
			}
			printSources(cmd.OutOrStdout(), d.Sources())
			return nil
		},
	}
}

func calcCmd(load datasetLoader) *cobra.Command {
	var (
		state  string
		params = domain.DefaultParameters()
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute project economics",
		Long: "Compute capacity factor, generation, cash flow and undiscounted ROI.\n" +
			"With --state, wind speed and turbulence default to that state's profile.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var profile *domain.StateWindProfile
			if state != "" {
				d, err := load()
				if err != nil {
					return err
				}
				p, err := d.Lookup(state)
				if err != nil {
					return err
				}
				profile = &p
				if !cmd.Flags().Changed("wind-speed") {
					params.AvgWindSpeed = p.WindSpeed
				}
				if !cmd.Flags().Changed("turbulence") {
					params.Turbulence = p.Turbulence
				}
			}

			a, err := domain.Assess(params, profile)
			if err != nil {
				return err
			}
			printAssessment(cmd.OutOrStdout(), a)
			return nil
		},
	}

	b := domain.DefaultBounds()
	f := cmd.Flags()
	f.StringVarP(&state, "state", "s", "", "state name or code")
	f.Float64Var(&params.LifetimeYears, "years", b.LifetimeYears.Default, b.LifetimeYears.Label)
	f.Float64Var(&params.TurbineCapacityMW, "capacity", b.TurbineCapacityMW.Default, b.TurbineCapacityMW.Label)
	f.Float64Var(&params.ProjectAreaKm2, "area", b.ProjectAreaKm2.Default, b.ProjectAreaKm2.Label)
	f.Float64Var(&params.AvgWindSpeed, "wind-speed", b.AvgWindSpeed.Default, b.AvgWindSpeed.Label)
	f.Float64Var(&params.Turbulence, "turbulence", b.Turbulence.Default, b.Turbulence.Label)
	f.Float64Var(&params.TurbineCostLakhsPerMW, "turbine-cost", b.TurbineCost.Default, b.TurbineCost.Label)
	f.Float64Var(&params.OMCostLakhsPerMWYear, "om-cost", b.OMCost.Default, b.OMCost.Label)
	f.Float64Var(&params.TariffPerKWh, "tariff", b.Tariff.Default, b.Tariff.Label)
	return cmd
}

func datasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Dataset maintenance commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate [path]",
		Short: "Check a dataset file for integrity and usable calculator defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	})
	return cmd
}

func parseTiers(labels []string) ([]domain.PotentialTier, error) {
	tiers := make([]domain.PotentialTier, 0, len(labels))
	for _, l := range labels {
		t, err := domain.ParseTier(l)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, nil
}
