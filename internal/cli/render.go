package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datainsight-lab/datainsight/internal/catalog"
	"github.com/datainsight-lab/datainsight/internal/charting"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/core/config"
	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	"github.com/datainsight-lab/datainsight/internal/core/storage/memory"
	"github.com/datainsight-lab/datainsight/internal/ingestion"
	"github.com/datainsight-lab/datainsight/internal/render"
)

// ErrAllBackendsFailed is returned by render when no backend drew the chart.
var ErrAllBackendsFailed = errors.New("all backends failed")

type renderOptions struct {
	configPath string
	input      string
	sample     bool
	sampleRows int
	seed       uint64

	kind     string
	x        string
	y        string
	op       string
	top      int
	bins     int
	title    string
	backends []string
}

func (a *App) newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one chart to stdout",
		Long: `Render one chart from a CSV, JSON or XLSX file, or from the sample
dataset, and write the artifact to stdout. The backend that drew the chart
and any backends that failed before it are reported on stderr.

Examples:
  # Bar chart of sales per region from the sample dataset, text only
  datainsight render --sample --kind bar --x regiao --y vendas --backends ascii

  # Average margin per category from a file, first working backend
  datainsight render --input vendas.csv --kind pie --x categoria --y margem --op mean > chart.html

  # Histogram of customer satisfaction with 5 bins
  datainsight render --sample --kind histogram --x satisfacao --bins 5 --backends png > hist.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Dataset file (.csv, .json or .xlsx)")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "Use the generated sample dataset")
	cmd.Flags().IntVar(&opts.sampleRows, "rows", dataset.DefaultSampleRows, "Sample dataset rows")
	cmd.Flags().Uint64Var(&opts.seed, "seed", dataset.DefaultSampleSeed, "Sample dataset seed")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", string(chart.KindBar), "Chart kind: bar, pie, line, scatter, histogram, table")
	cmd.Flags().StringVar(&opts.x, "x", "", "Column for the x axis or groups")
	cmd.Flags().StringVar(&opts.y, "y", "", "Numeric column for the values")
	cmd.Flags().StringVar(&opts.op, "op", "", "Reduction: sum, mean, count, min, max")
	cmd.Flags().IntVar(&opts.top, "top", 0, "Keep only the N largest groups")
	cmd.Flags().IntVar(&opts.bins, "bins", 0, "Histogram bin count")
	cmd.Flags().StringVar(&opts.title, "title", "", "Chart title")
	cmd.Flags().StringSliceVar(&opts.backends, "backends", nil, "Backends to try, in order (default: configured order)")

	cmd.MarkFlagsMutuallyExclusive("input", "sample")
	cmd.MarkFlagsOneRequired("input", "sample")

	return cmd
}

func (a *App) render(ctx context.Context, opts *renderOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger := newLogger(config.LoggingConfig{Level: "warn", Format: cfg.Logging.Format}, a.stderr)

	ds, err := loadDataset(opts, cfg.Ingestion.MaxRows)
	if err != nil {
		return err
	}

	reg, err := charting.NewRegistry(cfg.Render)
	if err != nil {
		return err
	}
	presets, err := chart.NewFileSystemPresetRepository("", cfg.PresetLoading.Presets)
	if err != nil {
		return err
	}
	svc := charting.NewService(
		catalog.New(memory.New(), 1),
		presets,
		render.NewOrchestrator(reg, render.WithLogger(logger)),
		nil,
		1,
	)

	res, err := svc.RenderDataset(ctx, ds, opts.spec(), opts.backends)
	if err != nil {
		return err
	}

	for _, f := range res.Outcome.Failures {
		fmt.Fprintf(a.stderr, "skipped %s (%s): %s\n", f.Backend, f.Kind, f.Reason)
	}
	if !res.Outcome.Succeeded() {
		return fmt.Errorf("%w after %d attempts", ErrAllBackendsFailed, len(res.Outcome.Failures))
	}

	art := res.Outcome.Artifact
	body, err := art.Raw()
	if err != nil {
		return err
	}
	if _, err := a.stdout.Write(body); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	fmt.Fprintf(a.stderr, "backend: %s (%s, %d bytes)\n", res.Outcome.Backend, art.MediaType, len(body))
	return nil
}

func (o *renderOptions) spec() chart.Spec {
	spec := chart.Spec{
		Kind:   chart.Kind(o.kind),
		XField: o.x,
		YField: o.y,
		Title:  o.title,
		Extra:  map[string]any{},
	}
	if o.op != "" {
		spec.Extra[chart.HintOp] = o.op
	}
	if o.top > 0 {
		spec.Extra[chart.HintTopN] = o.top
	}
	if o.bins > 0 {
		spec.Extra[chart.HintBins] = o.bins
	}
	return spec
}

func loadDataset(opts *renderOptions, maxRows int) (*dataset.Dataset, error) {
	if opts.sample {
		return dataset.Sample(opts.sampleRows, opts.seed), nil
	}

	format, err := ingestion.ParseFormat("", opts.input)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(opts.input)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	return ingestion.Parse(f, format, maxRows)
}
