package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/togglenet/device"
	"github.com/katalvlaran/togglenet/solver"
)

func newSolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve FILE...",
		Short: "Solve every device in the given input files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runSolve,
	}
	cmd.Flags().BoolVar(&a.detail, "detail", false, "Print one line per device")

	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, files []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := a.cfg.SolverOptions()
	if err != nil {
		return err
	}
	opts = append(opts, solver.WithLogger(a.logger))

	out := cmd.OutOrStdout()
	for _, path := range files {
		if len(files) > 1 {
			fmt.Fprintf(out, "== %s ==\n", path)
		}
		if err = a.solveFile(ctx, out, path, a.parts, opts); err != nil {
			return err
		}
	}

	return nil
}

func (a *app) solveFile(ctx context.Context, out io.Writer, path string, part solver.Part, opts []solver.Option) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	devices, err := device.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("parsed input", zap.String("file", path), zap.Int("devices", len(devices)))

	res, err := solver.SolveBatch(ctx, devices, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if a.detail {
		for _, d := range res.Devices {
			printDevice(out, d, part)
		}
	}
	if part.Has(solver.PartLights) {
		fmt.Fprintf(out, "Part 1: %d\n", res.LightTotal)
	}
	if part.Has(solver.PartTally) {
		mark := ""
		if res.Approximate {
			mark = " (approximate)"
		}
		fmt.Fprintf(out, "Part 2: %d%s\n", res.TallyTotal, mark)
	}
	fmt.Fprintf(out, "Time: %d ms\n", res.Elapsed.Milliseconds())

	return nil
}

func printDevice(out io.Writer, d solver.DeviceResult, part solver.Part) {
	fmt.Fprintf(out, "device %d:", d.Index)
	if part.Has(solver.PartLights) {
		fmt.Fprintf(out, " lights=%d", d.LightPresses)
	}
	if part.Has(solver.PartTally) {
		fmt.Fprintf(out, " tally=%d presses=%v method=%s", d.TallyPresses, d.Presses, d.Method)
		if d.Approximate {
			fmt.Fprint(out, " approximate")
		}
	}
	fmt.Fprintln(out)
}
