package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/chargesim/internal/config"
	"github.com/san-kum/chargesim/internal/metrics"
	"github.com/san-kum/chargesim/internal/sim"
	"github.com/san-kum/chargesim/internal/storage"
	"github.com/san-kum/chargesim/internal/tui"
	"github.com/san-kum/chargesim/internal/world"
)

var (
	dataDir    string
	configFile string
	dt         float64
	ticks      int
	seed       int64
	verbose    bool
	ensembleN  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chargesim",
		Short: "surface charge simulation on circular conductors and insulators",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".chargesim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario and store its traces",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "tick length in seconds (override)")
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "tick count (override)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (override)")
	runCmd.Flags().IntVar(&ensembleN, "ensemble", 0, "run N seeded variants in parallel")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	liveCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (override)")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, n := range names {
				fmt.Println(n)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored run traces",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "time a scenario run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}
	benchCmd.Flags().IntVar(&ticks, "ticks", 2000, "tick count")

	rootCmd.AddCommand(runCmd, liveCmd, scenariosCmd, listCmd, plotCmd, exportCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// loadScenario resolves the scenario from flags: an explicit yaml file
// wins, then a named preset, then the merge preset as default. CLI
// overrides apply on top.
func loadScenario(args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown scenario %q (available: %v)", args[0], names)
		}
	default:
		cfg = config.GetPreset("merge")
	}

	out := *cfg
	if dt > 0 {
		out.Dt = dt
	}
	if ticks > 0 {
		out.Ticks = ticks
	}
	if seed != 0 {
		out.Seed = seed
	}
	return &out, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runCfg := sim.Config{Dt: cfg.Dt, Ticks: cfg.Ticks, Seed: cfg.Seed}

	stepper := sim.NewStepper(runCfg.Seed, logger)
	w, err := cfg.BuildWorld(stepper.Rand())
	if err != nil {
		return err
	}

	if ensembleN > 1 {
		return runEnsemble(ctx, logger, cfg, w, runCfg)
	}

	runner := sim.NewRunner(stepper)
	runner.AddMetric(metrics.NewNetCharge())
	runner.AddMetric(metrics.NewPauseFraction())
	runner.AddMetric(metrics.NewMaxSwing())

	start := time.Now()
	result, err := runner.Run(ctx, w, runCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Name, runCfg, result)
	if err != nil {
		return err
	}

	logger.Info("run complete",
		zap.String("run_id", runID),
		zap.String("scenario", cfg.Name),
		zap.Int("ticks", runCfg.Ticks),
		zap.Int("paused_ticks", result.PausedTicks),
		zap.Duration("elapsed", elapsed),
	)

	fmt.Printf("run %s (%d ticks, %s)\n", runID, runCfg.Ticks, elapsed.Round(time.Millisecond))
	for name, value := range result.Metrics {
		fmt.Printf("  %-16s %.4f\n", name, value)
	}
	return nil
}

func runEnsemble(ctx context.Context, logger *zap.Logger, cfg *config.Config, base *world.World, runCfg sim.Config) error {
	e := sim.NewEnsemble(ensembleN, runCfg.Seed)

	start := time.Now()
	results, err := e.Run(ctx, base, runCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	logger.Info("ensemble complete",
		zap.String("scenario", cfg.Name),
		zap.Int("runs", len(results)),
		zap.Duration("elapsed", elapsed),
	)

	fmt.Printf("%s: %d seeded runs in %s\n", cfg.Name, len(results), elapsed.Round(time.Millisecond))
	for i, res := range results {
		fmt.Printf("  seed %-6d paused=%-4d fingerprint=%016x\n",
			runCfg.Seed+int64(i), res.PausedTicks, res.Fingerprint)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTICKS\tPAUSED\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Scenario, r.Ticks, r.PausedTicks, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traces, err := st.LoadTraces(args[0])
	if err != nil {
		return err
	}

	for _, tr := range traces {
		if tr.Name == "time" || len(tr.Values) < 2 {
			continue
		}
		graph := asciigraph.Plot(tr.Values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(tr.Name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}
	cfg.Ticks = ticks

	stepper := sim.NewStepper(cfg.Seed, nil)
	w, err := cfg.BuildWorld(stepper.Rand())
	if err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < cfg.Ticks; i++ {
		stepper.Step(w, cfg.Dt)
	}
	elapsed := time.Since(start)

	perTick := elapsed / time.Duration(cfg.Ticks)
	fmt.Printf("%s: %d ticks in %s (%s/tick)\n", cfg.Name, cfg.Ticks, elapsed.Round(time.Millisecond), perTick)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}
	return tui.Run(cfg)
}
