package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/particlelife/internal/analysis"
	"github.com/san-kum/particlelife/internal/config"
	"github.com/san-kum/particlelife/internal/experiment"
	"github.com/san-kum/particlelife/internal/export"
	"github.com/san-kum/particlelife/internal/sim"
	"github.com/san-kum/particlelife/internal/storage"
)

var (
	xMetric       string
	yMetric       string
	rdfBins       int
	benchWorkers  []int
	sweepRuns     int
	sweepParallel int
	sweepSave     bool
)

func runName() string {
	if preset != "" {
		return preset
	}
	if configFile != "" {
		return strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}
	return "run"
}

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, pal, err := build(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := interruptible()
	defer stop()

	simCfg := exp.SimConfig()
	simCfg.SampleEvery = sampleEvery

	s := cfg.Simulation
	fmt.Printf("running %d particles, %d types for %d ticks...\n", s.Particles, s.Types, s.Ticks)
	result, err := exp.Runner().Run(ctx, exp.Initial(), simCfg)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted after %d ticks\n", result.TicksRun)
	}

	runID, err := st.Save(runName(), cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d (%.1f ticks/s)\n", result.TicksRun, result.TicksPerSecond())
	fmt.Println("\nmetrics:")
	for _, name := range slices.Sorted(maps.Keys(result.Metrics)) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	if runSVG != "" {
		if err := export.WriteFile(runSVG, export.FrameToSVG(result.Final, exp.World(), pal, svgScale)); err != nil {
			return err
		}
		fmt.Printf("final frame: %s\n", runSVG)
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
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tPARTICLES\tTYPES\tTICKS\tTICKS/S")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.1f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Simulation.Particles,
			run.Config.Simulation.Types,
			run.TicksRun,
			run.TicksPerSecond,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []int, map[string][]float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	ticks, series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(ticks) == 0 {
		return nil, nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, ticks, series, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, ticks, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d (ticks %d..%d)\n\n", len(ticks), ticks[0], ticks[len(ticks)-1])

	if plotSVGDir != "" {
		if err := os.MkdirAll(plotSVGDir, 0755); err != nil {
			return err
		}
	}

	for _, name := range slices.Sorted(maps.Keys(series)) {
		data := series[name]
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()

		if plotSVGDir != "" {
			path := filepath.Join(plotSVGDir, name+".svg")
			if err := export.WriteFile(path, export.SeriesToSVG(ticks, data, 800, 240, "#b4b4b4")); err != nil {
				return err
			}
		}
	}
	if plotSVGDir != "" {
		fmt.Printf("charts written to %s\n", plotSVGDir)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, ticks, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	interval := 1
	if len(ticks) > 1 {
		interval = ticks[1] - ticks[0]
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("samples: %d every %d ticks\n\n", len(ticks), interval)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTD\tMIN\tMAX\tFINAL\tPERIOD\tSHARE")
	for _, name := range slices.Sorted(maps.Keys(series)) {
		data := series[name]
		s := analysis.Describe(data)
		period, share := analysis.DominantPeriod(data, interval)
		p := "-"
		if period > 0 {
			p = fmt.Sprintf("%.1f", period)
		}
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%s\t%.2f\n",
			name, s.Mean, s.Std, s.Min, s.Max, s.Final, p, share)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if xs, ok := series[xMetric]; ok && len(xs) >= 4 {
		ps := analysis.PowerSpectrum(xs)
		fmt.Println()
		fmt.Println(asciigraph.Plot(ps[1:],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum ("+xMetric+")"),
		))
	}

	xs, okX := series[xMetric]
	ys, okY := series[yMetric]
	if !okX || !okY {
		return nil
	}
	fmt.Printf("\nphase portrait: %s vs %s\n", yMetric, xMetric)
	fmt.Print(analysis.NewPortrait(xMetric, xs, yMetric, ys).ASCII(60, 20))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	data, err := storage.New(dataDir).Export(args[0])
	if err != nil {
		return err
	}
	if exportOut == "" {
		return storage.ExportJSONStdout(data)
	}
	if err := storage.ExportJSON(exportOut, data); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", exportOut)
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	exp, pal, err := buildFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx, stop := interruptible()
	defer stop()

	result, err := exp.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if err := export.WriteFile(snapshotOut, export.FrameToSVG(result.Final, exp.World(), pal, svgScale)); err != nil {
		return err
	}
	fmt.Printf("tick %d written to %s\n", result.TicksRun, snapshotOut)

	if rdfBins > 0 {
		maxR := exp.Model().MaxInteractionRadius()
		g := analysis.PairCorrelation(result.Final, exp.World(), maxR, rdfBins)
		fmt.Println()
		fmt.Println(asciigraph.Plot(g,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("g(r), r in [0, %.1f]", maxR)),
		))
	}
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s := cfg.Simulation
	fmt.Printf("benchmarking %d particles, %d types, %d ticks\n\n", s.Particles, s.Types, s.Ticks)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tTICKS\tELAPSED\tTICKS/S\tSPEEDUP")

	var baseline float64
	for _, n := range benchWorkers {
		c := cfg.Clone()
		c.Simulation.Workers = n
		exp, err := experiment.New(c, experiment.WithMetrics("kinetic_energy"))
		if err != nil {
			return err
		}
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}

		tps := result.TicksPerSecond()
		if baseline == 0 {
			baseline = tps
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%.1f\t%.2fx\n",
			n, result.TicksRun, result.Elapsed.Round(time.Millisecond), tps, tps/baseline)
	}
	return w.Flush()
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if sweepRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", sweepRuns)
	}

	ctx, stop := interruptible()
	defer stop()

	ens := sim.NewEnsemble(experiment.Trial(cfg), sweepRuns, cfg.Simulation.Seed)
	ens.SetLimit(sweepParallel)

	fmt.Printf("sweeping %d seeds from %d...\n\n", sweepRuns, cfg.Simulation.Seed)
	start := time.Now()
	results, err := ens.Run(ctx)
	if err != nil {
		return err
	}

	var st *storage.Store
	if sweepSave {
		st = storage.New(dataDir)
	}

	names := slices.Sorted(maps.Keys(results[0].Metrics))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\t"+strings.ToUpper(strings.Join(names, "\t"))+"\tTICKS/S")

	perMetric := make(map[string][]float64, len(names))
	for _, res := range results {
		row := []string{fmt.Sprintf("%d", res.Seed)}
		for _, name := range names {
			v := res.Metrics[name]
			perMetric[name] = append(perMetric[name], v)
			row = append(row, fmt.Sprintf("%.4g", v))
		}
		row = append(row, fmt.Sprintf("%.1f", res.TicksPerSecond()))
		fmt.Fprintln(w, strings.Join(row, "\t"))

		if st != nil {
			c := cfg.Clone()
			c.Simulation.Seed = res.Seed
			if _, err := st.Save(fmt.Sprintf("%s-seed%d", runName(), res.Seed), c, res); err != nil {
				return err
			}
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nacross %d seeds (%v):\n", len(results), time.Since(start).Round(time.Millisecond))
	for _, name := range names {
		s := analysis.Describe(perMetric[name])
		fmt.Printf("  %-16s mean %.4g  std %.4g  range [%.4g, %.4g]\n", name, s.Mean, s.Std, s.Min, s.Max)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARTICLES\tTYPES\tWORLD\tBOUNDARY\tLAYOUT\tFRICTION")
	for _, name := range config.ListPresets() {
		s, p := config.Presets[name].Simulation, config.Presets[name].Physics
		boundary := "torus"
		if !s.Wrap {
			boundary = "walls"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%gx%g\t%s\t%s\t%g\n",
			name, s.Particles, s.Types, s.Width, s.Height, boundary, s.Layout, p.Friction)
	}
	return w.Flush()
}
