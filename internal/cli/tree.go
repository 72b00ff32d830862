package cli

import (
	"github.com/spf13/cobra"

	"github.com/mamadbah2/herdsim/internal/domain/models"
	"github.com/mamadbah2/herdsim/internal/service/herd"
	"github.com/mamadbah2/herdsim/internal/service/reporting"
)

func newTreeCmd(g *globalFlags) *cobra.Command {
	var (
		params paramFlags
		depth  int
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the herd family tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, log, err := setup(g)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			p, err := params.resolve(cmd, cfg)
			if err != nil {
				return err
			}

			res, err := svc.Run(cmd.Context(), models.SimulationRequest{SimulationParams: p, SkipRevenue: true})
			if err != nil {
				return err
			}

			lineage := herd.NewLineage(models.Herd{Params: res.Params, Animals: res.Herd})
			return reporting.WriteLineage(cmd.OutOrStdout(), lineage, depth)
		},
	}

	params.register(cmd)
	cmd.Flags().IntVar(&depth, "depth", 0, "Generations shown below the founders (0 = all)")
	return cmd
}
