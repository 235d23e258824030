package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/logistic/internal/analysis"
	"github.com/san-kum/logistic/internal/config"
	"github.com/san-kum/logistic/internal/draw"
	"github.com/san-kum/logistic/internal/export"
	"github.com/san-kum/logistic/internal/logging"
	"github.com/san-kum/logistic/internal/logistic"
	"github.com/san-kum/logistic/internal/prompt"
	"github.com/san-kum/logistic/internal/storage"
	"github.com/san-kum/logistic/internal/viz"
)

// loadConfig resolves defaults < presets < config file < flags set on the
// command line, and builds the logger from the result.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if err := cfg.ApplyPreset(config.ModeStep, preset); err != nil {
			return nil, nil, err
		}
	}
	if scanPreset != "" {
		if err := cfg.ApplyPreset(config.ModeScan, scanPreset); err != nil {
			return nil, nil, err
		}
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	if changed("a") {
		cfg.Step.A = paramA
	}
	if changed("x0") {
		cfg.Step.X0 = seedX0
	}
	if changed("tol") {
		cfg.Step.Tolerance = stepTol
	}
	if changed("max-iter") {
		cfg.Step.MaxIterations = stepMaxIter
	}
	if changed("a-min") {
		cfg.Scan.AMin = aMin
	}
	if changed("a-max") {
		cfg.Scan.AMax = aMax
	}
	if changed("points") {
		cfg.Scan.Points = points
	}
	if changed("scan-x0") {
		cfg.Scan.X0 = scanX0
	}
	if changed("scan-tol") {
		cfg.Scan.Tolerance = scanTol
	}
	if changed("scan-max-iter") {
		cfg.Scan.MaxIterations = scanMaxIter
	}
	if changed("out") {
		cfg.Output.Dir = outDir
	}
	if changed("no-save") {
		cfg.Output.Save = !noSave
	}
	if changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), level, os.Getenv("NO_COLOR") != "")
	return cfg, logger, nil
}

func terminal(cmd *cobra.Command) io.Writer {
	if quiet {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

// stepRun holds what the single-trajectory stage produced.
type stepRun struct {
	res      *logistic.Result
	lyapunov float64
}

func doStep(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*stepRun, error) {
	if interactive {
		vals, err := prompt.Run(prompt.Parameters(cfg.Step.A, cfg.Step.X0),
			prompt.WithIO(cmd.InOrStdin(), cmd.OutOrStdout())...)
		if err != nil {
			return nil, err
		}
		cfg.Step.A, cfg.Step.X0 = vals[0], vals[1]
	}

	a, x0 := cfg.Step.A, cfg.Step.X0
	if !logistic.InDomain(a, x0) {
		logger.Warn("parameters outside the map's domain", "a", a, "x0", x0)
	}

	res, err := logistic.Converge(a, x0, cfg.StepOptions())
	switch {
	case errors.Is(err, logistic.ErrNotConverged):
		logger.Warn("trajectory did not converge", "a", a, "x0", x0, "iterations", res.Iterations, "err", err)
	case err != nil:
		return nil, err
	default:
		logger.Info("trajectory converged", "a", a, "x0", x0, "iterations", res.Iterations)
	}

	run := &stepRun{
		res:      res,
		lyapunov: analysis.LyapunovExponent(a, x0, analysis.DefaultLyapunovConfig()),
	}

	out := terminal(cmd)
	fmt.Fprintln(out, viz.Cobweb(a, res.Trajectory, plotWidth, plotHeight))
	fmt.Fprintln(out, viz.TrajectoryChart(res.Trajectory, plotWidth, plotHeight/2, "x_n"))
	fmt.Fprintln(out, viz.StepSummary(res, run.lyapunov))
	return run, nil
}

func doScan(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (logistic.CycleMap, error) {
	params := cfg.Params()
	if !logistic.InDomain(cfg.Scan.AMin, cfg.Scan.X0) || !logistic.InDomain(cfg.Scan.AMax, cfg.Scan.X0) {
		logger.Warn("scan range outside the map's domain", "a_min", cfg.Scan.AMin, "a_max", cfg.Scan.AMax, "x0", cfg.Scan.X0)
	}

	start := time.Now()
	m, err := logistic.Scan(cmd.Context(), params, cfg.Scan.X0, cfg.ScanOptions())
	if err != nil {
		return nil, err
	}
	logger.Info("scan finished", "parameters", len(m), "points", m.PointCount(), "elapsed", time.Since(start).Round(time.Millisecond))
	if n := m.TruncatedCount(); n > 0 {
		logger.Warn("parameters hit the iteration cap", "count", n, "max_iterations", cfg.Scan.MaxIterations)
	}

	out := terminal(cmd)
	fmt.Fprintln(out, viz.Feigenbaum(m.Scatter(), plotWidth, plotHeight))
	fmt.Fprintln(out, scanSummary(m, cfg.Scan.X0))
	return m, nil
}

func scanSummary(m logistic.CycleMap, x0 float64) string {
	params := make([]float64, len(m))
	for i, rec := range m {
		params[i] = rec.A
	}
	lyap := analysis.LyapunovSweep(params, x0, analysis.DefaultLyapunovConfig())
	return viz.ScanSummary(analysis.Summarize(m, analysis.DefaultSummaryConfig()), lyap)
}

func saveStep(st *storage.Store, cfg *config.Config, run *stepRun, meta *storage.RunMetadata) {
	xs, ys := logistic.Curve(run.res.A, cfg.Step.CurvePoints)
	svg := export.StepPlotSVG(export.StepPlot{
		A: run.res.A, X0: run.res.X0,
		CurveX: xs, CurveY: ys,
		Trajectory: run.res.Trajectory,
	}, cfg.Output.Width, cfg.Output.Height)

	if st.SaveBestEffort(storage.StepImage, func() error { return st.SaveImage(storage.StepImage, svg) }) {
		meta.Artifacts = append(meta.Artifacts, storage.StepImage)
	}
	if st.SaveBestEffort(storage.TrajectoryFile, func() error { return st.SaveTrajectory(run.res.Trajectory) }) {
		meta.Artifacts = append(meta.Artifacts, storage.TrajectoryFile)
	}
	meta.Step = &storage.StepMetadata{
		A:          run.res.A,
		X0:         run.res.X0,
		Tolerance:  run.res.Tolerance,
		Iterations: run.res.Iterations,
		Converged:  run.res.Converged,
		Lyapunov:   run.lyapunov,
	}
}

func saveScan(st *storage.Store, cfg *config.Config, m logistic.CycleMap, meta *storage.RunMetadata) {
	svg := export.FeigenbaumSVG(m.Scatter(), cfg.Output.Width, cfg.Output.Height)

	if st.SaveBestEffort(storage.ScanImage, func() error { return st.SaveImage(storage.ScanImage, svg) }) {
		meta.Artifacts = append(meta.Artifacts, storage.ScanImage)
	}
	if st.SaveBestEffort(storage.CyclesFile, func() error { return st.SaveCycles(m) }) {
		meta.Artifacts = append(meta.Artifacts, storage.CyclesFile)
	}
	meta.Scan = &storage.ScanMetadata{
		AMin:      cfg.Scan.AMin,
		AMax:      cfg.Scan.AMax,
		Points:    cfg.Scan.Points,
		X0:        cfg.Scan.X0,
		Tolerance: cfg.Scan.Tolerance,
		Scatter:   m.PointCount(),
		Truncated: m.TruncatedCount(),
	}
}

func finish(st *storage.Store, logger *slog.Logger, meta *storage.RunMetadata) {
	st.SaveBestEffort(storage.MetadataFile, func() error { return st.SaveMetadata(*meta) })
	logger.Info("artifacts written", "dir", st.Dir(), "files", strings.Join(meta.Artifacts, ","))
}

func runStep(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	run, err := doStep(cmd, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Output.Save {
		st := storage.New(cfg.Output.Dir, logger)
		meta := &storage.RunMetadata{Timestamp: time.Now()}
		saveStep(st, cfg, run, meta)
		finish(st, logger, meta)
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	m, err := doScan(cmd, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Output.Save {
		st := storage.New(cfg.Output.Dir, logger)
		meta := &storage.RunMetadata{Timestamp: time.Now()}
		saveScan(st, cfg, m, meta)
		finish(st, logger, meta)
	}
	return nil
}

func runAll(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	run, err := doStep(cmd, cfg, logger)
	if err != nil {
		return err
	}
	m, err := doScan(cmd, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Output.Save {
		st := storage.New(cfg.Output.Dir, logger)
		meta := &storage.RunMetadata{Timestamp: time.Now()}
		saveStep(st, cfg, run, meta)
		saveScan(st, cfg, m, meta)
		finish(st, logger, meta)
	}
	return nil
}

func plotLast(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.Output.Dir, logger)
	meta, err := st.LoadMetadata()
	if err != nil {
		return fmt.Errorf("no run found in %s: %w", cfg.Output.Dir, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n\n", meta.Timestamp.Format("2006-01-02 15:04:05"))

	if meta.Step != nil {
		traj, err := st.LoadTrajectory()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "a = %g, x0 = %g, iterations = %d, converged = %v\n",
			meta.Step.A, meta.Step.X0, meta.Step.Iterations, meta.Step.Converged)
		fmt.Fprintln(out, viz.Cobweb(meta.Step.A, traj, plotWidth, plotHeight))
	}

	if meta.Scan != nil {
		m, err := st.LoadCycles()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, viz.Feigenbaum(m.Scatter(), plotWidth, plotHeight))
		fmt.Fprintln(out, scanSummary(m, meta.Scan.X0))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	modes := []string{config.ModeStep, config.ModeScan}
	if len(args) == 1 {
		modes = args
	}

	out := cmd.OutOrStdout()
	for _, mode := range modes {
		presets := config.ListPresets(mode)
		if len(presets) == 0 {
			return fmt.Errorf("no presets for mode: %s", mode)
		}
		fmt.Fprintf(out, "presets for %s:\n", mode)
		for _, name := range presets {
			fmt.Fprintf(out, "  %-12s %s\n", name, describePreset(mode, config.GetPreset(mode, name)))
		}
	}
	return nil
}

func describePreset(mode string, cfg *config.Config) string {
	if mode == config.ModeScan {
		sc := cfg.Scan
		return fmt.Sprintf("a=[%g, %g] points=%d x0=%g tol=%g", sc.AMin, sc.AMax, sc.Points, sc.X0, sc.Tolerance)
	}
	st := cfg.Step
	return fmt.Sprintf("a=%g x0=%g max_iter=%d", st.A, st.X0, st.MaxIterations)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "logistic.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := cfg.Pick.Names
	if cmd.Flags().Changed("names") {
		names = pickNames
	}
	seed := cfg.Pick.Seed
	if cmd.Flags().Changed("seed") {
		seed = pickSeed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	pool := draw.New(names, seed, logger)
	logger.Debug("drawing", "count", pickCount, "pool", pool.Len(), "seed", seed)
	out := cmd.OutOrStdout()
	for i := 0; i < pickCount; i++ {
		n, name, ok := pool.Draw()
		if !ok {
			continue
		}
		fmt.Fprintf(out, "n=%d; name=%s\n", n, name)
	}
	fmt.Fprintf(out, "remaining: %s\n", strings.Join(pool.Remaining(), " "))
	return nil
}
