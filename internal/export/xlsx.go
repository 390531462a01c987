package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
)

// Workbook sheet names.
const (
	SheetData     = "Dados"
	SheetStats    = "Estatisticas"
	SheetInsights = "Analise"
)

var statRows = []struct {
	label string
	value func(dataset.ColumnStats) float64
}{
	{"count", func(s dataset.ColumnStats) float64 { return float64(s.Count) }},
	{"mean", func(s dataset.ColumnStats) float64 { return s.Mean }},
	{"std", func(s dataset.ColumnStats) float64 { return s.Std }},
	{"min", func(s dataset.ColumnStats) float64 { return s.Min }},
	{"25%", func(s dataset.ColumnStats) float64 { return s.Q1 }},
	{"50%", func(s dataset.ColumnStats) float64 { return s.Median }},
	{"75%", func(s dataset.ColumnStats) float64 { return s.Q3 }},
	{"max", func(s dataset.ColumnStats) float64 { return s.Max }},
}

// WriteXLSX writes the data sheet, a describe table of the numeric columns
// and, when insights is non-empty, a sheet holding the insights text.
func WriteXLSX(w io.Writer, ds *dataset.Dataset, insights string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetData); err != nil {
		return err
	}
	if err := writeData(f, ds); err != nil {
		return fmt.Errorf("writing %s sheet: %w", SheetData, err)
	}

	if _, err := f.NewSheet(SheetStats); err != nil {
		return err
	}
	if err := writeStats(f, ds); err != nil {
		return fmt.Errorf("writing %s sheet: %w", SheetStats, err)
	}

	if insights != "" {
		if _, err := f.NewSheet(SheetInsights); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetInsights, "A1", "Análise"); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetInsights, "A2", insights); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func writeData(f *excelize.File, ds *dataset.Dataset) error {
	sw, err := f.NewStreamWriter(SheetData)
	if err != nil {
		return err
	}

	header := ds.ColumnNames()
	row := make([]interface{}, len(header))
	for j, name := range header {
		row[j] = name
	}
	if err := sw.SetRow("A1", row); err != nil {
		return err
	}

	for i := 0; i < ds.Len(); i++ {
		row := make([]interface{}, len(header))
		for j, name := range header {
			row[j] = xlsxValue(ds.Value(i, name))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func writeStats(f *excelize.File, ds *dataset.Dataset) error {
	var stats []dataset.ColumnStats
	for _, c := range ds.Columns() {
		if c.Kind.Numeric() {
			stats = append(stats, dataset.Describe(ds, c.Name))
		}
	}

	header := []interface{}{""}
	for _, s := range stats {
		header = append(header, s.Column)
	}
	if err := f.SetSheetRow(SheetStats, "A1", &header); err != nil {
		return err
	}

	for i, r := range statRows {
		row := []interface{}{r.label}
		for _, s := range stats {
			row = append(row, xlsxValue(r.value(s)))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetStats, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// xlsxValue leaves missing and non-finite values as empty cells.
func xlsxValue(v any) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
	}
	return v
}
