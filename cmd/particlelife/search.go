package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/particlelife/internal/automation"
	"github.com/san-kum/particlelife/internal/optim"
	"github.com/san-kum/particlelife/internal/storage"
)

var (
	searchMetric   string
	searchMaximize bool
	searchParallel int
)

// parseGrid reads "name=v1,v2,..." specs.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, nil, fmt.Errorf("bad grid spec %q (want name=v1,v2,...)", spec)
		}
		var values []float64
		for _, s := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", name, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func searchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search name=v1,v2,... [name=...]",
		Short: "grid search physics parameters for the best metric value",
		Args:  cobra.MinimumNArgs(1),
		RunE:  search,
	}
	addSimFlags(cmd)
	cmd.Flags().StringVar(&searchMetric, "metric", "type_mixing", "metric to score")
	cmd.Flags().BoolVar(&searchMaximize, "max", false, "maximize instead of minimize")
	cmd.Flags().IntVar(&searchParallel, "parallel", 0, "concurrent runs (0 = GOMAXPROCS)")
	return cmd
}

func search(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(args)
	if err != nil {
		return err
	}
	g, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	g.SetLimit(searchParallel)

	ctx, stop := interruptible()
	defer stop()

	fmt.Printf("searching %d points, scoring %s...\n\n", g.Size(), searchMetric)
	points, best, err := g.Search(ctx, cfg, searchMetric, searchMaximize)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(searchMetric))
	for i, p := range points {
		row := make([]string, 0, len(names)+1)
		for _, n := range names {
			row = append(row, strconv.FormatFloat(p.Params[n], 'g', -1, 64))
		}
		switch {
		case p.Err != nil:
			row = append(row, "error: "+p.Err.Error())
		case i == best:
			row = append(row, fmt.Sprintf("%.5g  <- best", p.Value))
		default:
			row = append(row, fmt.Sprintf("%.5g", p.Value))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if best < 0 {
		return fmt.Errorf("no grid point ran successfully")
	}
	return nil
}

func scenarioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}

			ctx, stop := interruptible()
			defer stop()

			results, err := automation.RunScenario(ctx, sc, storage.New(dataDir), slog.Default())
			for i, r := range results {
				line := fmt.Sprintf("step %d %-12s ticks %d  %.1f ticks/s", i+1, r.Step.Name, r.Result.TicksRun, r.Result.TicksPerSecond())
				if r.RunID != "" {
					line += "  saved " + r.RunID
				}
				fmt.Println(line)
			}
			return err
		},
	}
}

func sweepParamCommand() *cobra.Command {
	var (
		param    string
		from, to float64
		steps    int
	)
	cmd := &cobra.Command{
		Use:   "sweep-param",
		Short: "run one config across evenly spaced values of a physics parameter",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := interruptible()
			defer stop()

			results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
				Base:      cfg,
				ParamName: param,
				ParamMin:  from,
				ParamMax:  to,
				NumSteps:  steps,
			}, slog.Default())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\tENERGY MIN\tENERGY MAX\tMIXING\tMEAN SPEED\n", strings.ToUpper(param))
			for _, r := range results {
				fmt.Fprintf(w, "%g\t%.4g\t%.4g\t%.3f\t%.4g\n",
					r.ParamValue, r.MinEnergy, r.MaxEnergy, r.Metrics["type_mixing"], r.Metrics["mean_speed"])
			}
			return w.Flush()
		},
	}
	addSimFlags(cmd)
	cmd.Flags().StringVar(&param, "param", "friction", "physics parameter to sweep")
	cmd.Flags().Float64Var(&from, "from", 0, "first value")
	cmd.Flags().Float64Var(&to, "to", 0.5, "last value")
	cmd.Flags().IntVar(&steps, "steps", 6, "number of values")
	return cmd
}
