package dataset

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// ColumnStats is the numeric description of one column.
type ColumnStats struct {
	Column  string  `json:"column"`
	Count   int     `json:"count"`
	Skipped int     `json:"skipped"`
	Sum     float64 `json:"sum"`
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	Min     float64 `json:"min"`
	Q1      float64 `json:"q1"`
	Median  float64 `json:"median"`
	Q3      float64 `json:"q3"`
	Max     float64 `json:"max"`
}

// TopValue is the most frequent value of a non-numeric column.
type TopValue struct {
	Column    string `json:"column"`
	Value     string `json:"value"`
	Frequency int    `json:"frequency"`
	Distinct  int    `json:"distinct"`
}

// Summary aggregates the column kinds, numeric statistics and top values of a dataset.
type Summary struct {
	Rows    int           `json:"rows"`
	Columns []Column      `json:"columns"`
	Numeric []ColumnStats `json:"numeric"`
	Top     []TopValue    `json:"top"`
}

// Summarize describes every column of the dataset in header order.
func Summarize(d *Dataset) Summary {
	s := Summary{Rows: d.Len(), Columns: d.Columns()}
	for _, c := range d.columns {
		if c.Kind.Numeric() {
			s.Numeric = append(s.Numeric, Describe(d, c.Name))
			continue
		}
		if top, ok := MostFrequent(d, c.Name); ok {
			s.Top = append(s.Top, top)
		}
	}
	return s
}

// Describe computes count, mean, sample standard deviation, min, quartiles
// and max of a numeric column. Missing and non-finite values are skipped.
func Describe(d *Dataset, column string) ColumnStats {
	stats := ColumnStats{Column: column}
	values := make([]float64, 0, d.Len())
	total := decimal.Zero
	for _, row := range d.records {
		f, ok := Finite(row[column])
		if !ok {
			stats.Skipped++
			continue
		}
		values = append(values, f)
		total = total.Add(decimal.NewFromFloat(f))
	}

	stats.Count = len(values)
	if stats.Count == 0 {
		return stats
	}

	sort.Float64s(values)
	stats.Sum = total.InexactFloat64()
	stats.Mean = total.Div(decimal.NewFromInt(int64(stats.Count))).InexactFloat64()
	if stats.Count > 1 {
		var sq float64
		for _, v := range values {
			sq += (v - stats.Mean) * (v - stats.Mean)
		}
		stats.Std = math.Sqrt(sq / float64(stats.Count-1))
	}
	stats.Min = values[0]
	stats.Max = values[len(values)-1]
	stats.Q1 = quantile(values, 0.25)
	stats.Median = quantile(values, 0.5)
	stats.Q3 = quantile(values, 0.75)
	return stats
}

// MostFrequent returns the most common value of a column. Ties go to the
// lexically smallest value.
func MostFrequent(d *Dataset, column string) (TopValue, bool) {
	counts := make(map[string]int)
	for _, row := range d.records {
		v, ok := row[column].(string)
		if !ok {
			continue
		}
		counts[v]++
	}
	if len(counts) == 0 {
		return TopValue{}, false
	}

	top := TopValue{Column: column, Distinct: len(counts)}
	for v, n := range counts {
		if n > top.Frequency || (n == top.Frequency && v < top.Value) {
			top.Value = v
			top.Frequency = n
		}
	}
	return top, true
}

// quantile uses linear interpolation between closest ranks on sorted input.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
