package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/particlelife/internal/config"
	"github.com/san-kum/particlelife/internal/experiment"
	"github.com/san-kum/particlelife/internal/gui"
	"github.com/san-kum/particlelife/internal/palette"
	"github.com/san-kum/particlelife/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	hueOffset  float64

	particles int
	types     int
	width     float64
	height    float64
	wrap      bool
	seed      int64
	ticks     int
	layout    string
	workers   int
	friction  float64

	sampleEvery int
	runSVG      string
	plotSVGDir  string
	exportOut   string
	snapshotOut string
	svgScale    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "particlelife",
		Short: "particle life simulation lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			gui.RunInteractive(gui.Builder(build))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".particlelife", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or ini)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().Float64Var(&hueOffset, "hue", 0, "palette hue offset in [0,1)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store its metrics",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&sampleEvery, "sample", 1, "record metrics every n ticks")
	runCmd.Flags().StringVar(&runSVG, "svg", "", "also write the final frame as SVG")
	runCmd.Flags().Float64Var(&svgScale, "scale", 4, "SVG pixels per world unit")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation in the terminal",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal preset menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(viz.Builder(build))
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the simulation in a window",
		RunE:  runGUI,
	}
	addSimFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metric series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSVGDir, "svg", "", "also write one SVG chart per metric into this directory")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summary statistics, spectrum and phase portrait of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&xMetric, "x", "kinetic_energy", "portrait x-axis metric")
	analyzeCmd.Flags().StringVar(&yMetric, "y", "type_mixing", "portrait y-axis metric")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate and write the final frame as SVG",
		RunE:  snapshot,
	}
	addSimFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "snapshot.svg", "output file")
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 4, "SVG pixels per world unit")
	snapshotCmd.Flags().IntVar(&rdfBins, "rdf", 0, "also print the pair correlation with this many bins")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure ticks per second across worker counts",
		RunE:  bench,
	}
	addSimFlags(benchCmd)
	benchCmd.Flags().IntSliceVar(&benchWorkers, "threads", []int{1, 2, 4, 8}, "worker counts to compare")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the same config over a range of seeds in parallel",
		RunE:  sweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 8, "number of seeds")
	sweepCmd.Flags().IntVar(&sweepParallel, "parallel", 0, "concurrent runs (0 = unlimited)")
	sweepCmd.Flags().BoolVar(&sweepSave, "save", false, "store every run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	addSimFlags(initCmd)

	rootCmd.AddCommand(runCmd, liveCmd, tuiCmd, guiCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, snapshotCmd, benchCmd, sweepCmd, presetsCmd, initCmd)
	rootCmd.AddCommand(searchCommand(), scenarioCommand(), sweepParamCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// addSimFlags registers the per-run overrides. They only apply when set
// on the command line, so presets and config files keep their values.
func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVarP(&particles, "particles", "n", config.DefaultParticles, "particle count")
	f.IntVarP(&types, "types", "k", config.DefaultTypes, "number of particle types")
	f.Float64Var(&width, "width", config.DefaultWidth, "world width")
	f.Float64Var(&height, "height", config.DefaultWidth, "world height")
	f.BoolVar(&wrap, "wrap", true, "toroidal world (false = reflecting walls)")
	f.Int64Var(&seed, "seed", 0, "random seed")
	f.IntVar(&ticks, "ticks", config.DefaultTicks, "ticks to simulate")
	f.StringVar(&layout, "layout", config.LayoutUniform, "initial placement (uniform, noise)")
	f.IntVar(&workers, "workers", 0, "goroutines per phase (0 = GOMAXPROCS)")
	f.Float64Var(&friction, "friction", 0, "velocity damping per tick in [0,1]")
}

// loadConfig resolves defaults, then the preset, then the config file,
// then any flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	s := &cfg.Simulation
	if flags.Changed("particles") {
		s.Particles = particles
	}
	if flags.Changed("types") {
		s.Types = types
	}
	if flags.Changed("width") {
		s.Width = width
	}
	if flags.Changed("height") {
		s.Height = height
	}
	if flags.Changed("wrap") {
		s.Wrap = wrap
	}
	if flags.Changed("seed") {
		s.Seed = seed
	}
	if flags.Changed("ticks") {
		s.Ticks = ticks
	}
	if flags.Changed("layout") {
		s.Layout = layout
	}
	if flags.Changed("workers") {
		s.Workers = workers
	}
	if flags.Changed("friction") {
		cfg.Physics.Friction = friction
	}
	return cfg, cfg.Validate()
}

// build is shared by every front end: one experiment plus a palette sized
// to its type count.
func build(cfg *config.Config) (*experiment.Experiment, *palette.Palette, error) {
	exp, err := experiment.New(cfg, experiment.WithLogger(slog.Default()))
	if err != nil {
		return nil, nil, err
	}
	return exp, palette.New(cfg.Simulation.Types, hueOffset), nil
}

func buildFromFlags(cmd *cobra.Command) (*experiment.Experiment, *palette.Palette, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return build(cfg)
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, pal, err := buildFromFlags(cmd)
	if err != nil {
		return err
	}
	return viz.Run(exp, pal)
}

func runGUI(cmd *cobra.Command, args []string) error {
	exp, pal, err := buildFromFlags(cmd)
	if err != nil {
		return err
	}
	gui.Run(exp, pal)
	return nil
}
