// Command togglenet solves toggle-network puzzle inputs: for every device it
// reports the fewest presses that light the indicator pattern and the fewest
// presses that fill the counters, summed over the file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/togglenet/config"
	"github.com/katalvlaran/togglenet/solver"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries flag values and the logger between cobra hooks.
type app struct {
	configPath string
	verbose    bool
	workers    int
	part       int
	method     string
	detail     bool

	cfg    *config.Config
	parts  solver.Part
	logger *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "togglenet",
		Short: "Minimum button presses for toggle-network devices",
		Long: `togglenet reads device lines such as

  [.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}

and answers two questions per device:
  Part 1: fewest presses that toggle the lights into the [..] pattern
  Part 2: fewest presses that raise every counter exactly to its {..} target`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.IntVarP(&a.workers, "workers", "w", 1, "Devices solved concurrently")
	pf.IntVar(&a.part, "part", 0, "1 = lights only, 2 = counters only, 0 = both")
	pf.StringVar(&a.method, "method", "auto", "Counter solver: auto, tableau or lsq")

	root.AddCommand(newSolveCmd(a), newGenCmd(a), newVersionCmd())

	return root
}

// setup loads the config, applies explicit flags over it and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("part") {
		cfg.Part = a.part
	}
	if flags.Changed("method") {
		cfg.Tally.Method = a.method
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	if a.parts, err = solver.ParsePart(cfg.Part); err != nil {
		return err
	}

	lvl, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	if a.logger, err = zc.Build(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg

	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// The version needs neither config nor logger.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "togglenet", version)
		},
	}
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
