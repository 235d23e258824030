package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/logistic/internal/config"
)

var (
	configFile string
	preset     string
	scanPreset string
	outDir     string
	noSave     bool
	logLevel   string
	quiet      bool
	// single trajectory
	paramA      float64
	seedX0      float64
	stepTol     float64
	stepMaxIter int
	interactive bool
	// bifurcation scan
	aMin        float64
	aMax        float64
	points      int
	scanX0      float64
	scanTol     float64
	scanMaxIter int
	// terminal rendering
	plotWidth  int
	plotHeight int
	// pick
	pickNames []string
	pickCount int
	pickSeed  int64
	// config init
	force bool
)

// main runs the logistic CLI and exits with status 1 when a command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "logistic",
		Short:        "logistic map iteration and bifurcation diagrams",
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&outDir, "out", config.DefaultOutputDir, "output directory for images and data")
	pf.BoolVar(&noSave, "no-save", false, "do not write artifacts")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress terminal plots")
	pf.IntVar(&plotWidth, "width", 60, "terminal plot width in cells")
	pf.IntVar(&plotHeight, "height", 16, "terminal plot height in cells")

	stepCmd := &cobra.Command{
		Use:   "step",
		Short: "iterate one seed until consecutive values converge",
		Args:  cobra.NoArgs,
		RunE:  runStep,
	}
	addStepFlags(stepCmd)
	stepCmd.Flags().StringVar(&preset, "preset", "", "use step preset")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "scan a parameter range for cycles (Feigenbaum diagram)",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
	addScanFlags(scanCmd)
	scanCmd.Flags().StringVar(&scanPreset, "preset", "", "use scan preset")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "step plot followed by the bifurcation scan",
		Args:  cobra.NoArgs,
		RunE:  runAll,
	}
	addStepFlags(runCmd)
	addScanFlags(runCmd)
	runCmd.Flags().StringVar(&preset, "preset", "", "use step preset")
	runCmd.Flags().StringVar(&scanPreset, "scan-preset", "", "use scan preset")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot the artifacts of the last run in the terminal",
		Args:  cobra.NoArgs,
		RunE:  plotLast,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [mode]",
		Short: "list available presets (step, scan)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "draw names at random without replacement",
		Args:  cobra.NoArgs,
		RunE:  runPick,
	}
	pickCmd.Flags().StringSliceVar(&pickNames, "names", nil, "names to draw from (default from config)")
	pickCmd.Flags().IntVarP(&pickCount, "count", "n", 1, "number of draws")
	pickCmd.Flags().Int64Var(&pickSeed, "seed", 0, "random seed (default: config seed, else time)")

	rootCmd.AddCommand(stepCmd, scanCmd, runCmd, plotCmd, presetsCmd, configCmd, pickCmd)
	return rootCmd
}

func addStepFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&paramA, "a", config.DefaultA, "growth parameter (0<a<4)")
	f.Float64Var(&seedX0, "x0", config.DefaultX0, "initial value (0<=x0<=1)")
	f.Float64Var(&stepTol, "tol", config.DefaultConfig().Step.Tolerance, "convergence tolerance")
	f.IntVar(&stepMaxIter, "max-iter", config.DefaultMaxIterations, "iteration cap")
	f.BoolVarP(&interactive, "interactive", "i", false, "prompt for a and x0")
}

func addScanFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&aMin, "a-min", config.DefaultAMin, "first scanned parameter")
	f.Float64Var(&aMax, "a-max", config.DefaultAMax, "last scanned parameter")
	f.IntVar(&points, "points", config.DefaultPoints, "number of scanned parameters")
	f.Float64Var(&scanX0, "scan-x0", config.DefaultScanX0, "seed for every scanned parameter")
	f.Float64Var(&scanTol, "scan-tol", config.DefaultConfig().Scan.Tolerance, "recurrence tolerance")
	f.IntVar(&scanMaxIter, "scan-max-iter", config.DefaultMaxIterations, "iteration cap per parameter")
}
