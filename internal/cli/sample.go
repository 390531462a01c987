package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	"github.com/datainsight-lab/datainsight/internal/export"
)

func (a *App) newSampleCmd() *cobra.Command {
	var (
		rows   int
		seed   uint64
		format string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the generated sales dataset",
		Long: `Write the synthetic sales dataset to stdout. The same --rows and --seed
always produce the same data.

Examples:
  datainsight sample --rows 100 --seed 42 --format csv > vendas.csv
  datainsight sample --format xlsx > vendas.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows <= 0 {
				return fmt.Errorf("--rows must be > 0, got %d", rows)
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return export.Write(a.stdout, dataset.Sample(rows, seed), f, "")
		},
	}

	cmd.Flags().IntVar(&rows, "rows", dataset.DefaultSampleRows, "Number of rows")
	cmd.Flags().Uint64Var(&seed, "seed", dataset.DefaultSampleSeed, "Random seed")
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "Output format: csv, json, xlsx")
	return cmd
}
