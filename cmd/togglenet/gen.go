package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/togglenet/devicegen"
)

type genFlags struct {
	count      int
	lights     int
	seed       int64
	maxPresses int
}

func newGenCmd(a *app) *cobra.Command {
	g := &genFlags{}
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Print random solvable device lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if g.maxPresses < 0 {
				return fmt.Errorf("gen: --max-presses must be >= 0, got %d", g.maxPresses)
			}
			ps, err := devicegen.Batch(g.count, g.lights,
				devicegen.WithSeed(g.seed),
				devicegen.WithMaxPresses(g.maxPresses))
			if err != nil {
				return err
			}
			a.logger.Debug("generated devices", zap.Int("count", len(ps)), zap.Int64("seed", g.seed))

			out := cmd.OutOrStdout()
			for _, p := range ps {
				fmt.Fprintln(out, p.Device)
			}

			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&g.count, "count", "n", 10, "Number of devices")
	f.IntVar(&g.lights, "lights", 6, "Lights per device (1..64)")
	f.Int64Var(&g.seed, "seed", 1, "RNG seed")
	f.IntVar(&g.maxPresses, "max-presses", 5, "Upper bound of the hidden press count per button")

	return cmd
}
