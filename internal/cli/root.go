// Package cli implements the herdsim command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdsim/internal/config"
	"github.com/mamadbah2/herdsim/internal/domain/models"
	"github.com/mamadbah2/herdsim/internal/service/ratecard"
	"github.com/mamadbah2/herdsim/internal/service/simulation"
	"github.com/mamadbah2/herdsim/pkg/logger"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	envFile  string
	logLevel string
}

// paramFlags select the simulated scenario. Unset flags fall back to the
// scenario file, then to the configured defaults.
type paramFlags struct {
	units      int
	years      int
	startYear  int
	startMonth int
	scenario   string
}

// NewRootCmd builds the herdsim command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "herdsim",
		Short:         "Buffalo herd growth and revenue projections",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.envFile, "env", "", "Path to a .env file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(g), newTreeCmd(g))
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (p *paramFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.units, "units", 1, "Number of acquisition units (two founders each)")
	cmd.Flags().IntVar(&p.years, "years", 10, "Number of simulated years")
	cmd.Flags().IntVar(&p.startYear, "start-year", 2026, "First simulated calendar year")
	cmd.Flags().IntVar(&p.startMonth, "start-month", 0, "Acquisition month of the first founder (0 = January)")
	cmd.Flags().StringVar(&p.scenario, "scenario", "", "YAML scenario file")
}

// resolve layers configured defaults, the scenario file and explicit flags.
func (p *paramFlags) resolve(cmd *cobra.Command, cfg *config.Config) (models.SimulationParams, error) {
	params := cfg.Simulation.DefaultParams()

	if p.scenario != "" {
		s, err := config.LoadScenarioFile(p.scenario)
		if err != nil {
			return models.SimulationParams{}, err
		}
		params = s.Params()
	}

	flags := cmd.Flags()
	if flags.Changed("units") {
		params.Units = p.units
	}
	if flags.Changed("years") {
		params.Years = p.years
	}
	if flags.Changed("start-year") {
		params.StartYear = p.startYear
	}
	if flags.Changed("start-month") {
		params.StartMonth = p.startMonth
	}
	return params, nil
}

// setup loads configuration and builds the simulation service for one command.
func setup(g *globalFlags) (*config.Config, *simulation.Service, *zap.Logger, error) {
	log, err := logger.NewConsole(g.logLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	cfg, err := config.Load(g.envFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	svc := simulation.NewService(
		ratecard.Static(cfg.Revenue.RateCard()),
		simulation.Limits{MaxUnits: cfg.Simulation.MaxUnits, MaxYears: cfg.Simulation.MaxYears},
		logger.Named(log, "svc.simulation"),
	)
	return cfg, svc, log, nil
}
