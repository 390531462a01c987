package aggregation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownOperator = errors.New("unknown aggregation operator")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrValueRequired   = errors.New("value column is required for this operator")
)

const (
	// DefaultBins is the histogram bin count when none is requested.
	DefaultBins = 10
	// MaxBins caps the histogram bin count.
	MaxBins = 1000
)

type group struct {
	key   any
	label string
	state State
	seen  bool
}

// Aggregate groups ds by groupBy and reduces valueCol with op. Rows come
// back sorted by ascending group value (numerically when both values are
// numbers). Missing group values and missing or non-finite measures are
// left out of the reduction and counted in View.Skipped.
//
// valueCol may be empty only for count, which then counts records per group.
func Aggregate(ds *dataset.Dataset, groupBy, valueCol, op string) (*View, error) {
	agg, ok := Operators[op]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
	if _, ok := ds.Column(groupBy); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, groupBy)
	}
	if valueCol == "" && op != OpCount {
		return nil, fmt.Errorf("%w: %s", ErrValueRequired, op)
	}
	if valueCol != "" {
		if _, ok := ds.Column(valueCol); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, valueCol)
		}
	}

	view := &View{GroupBy: groupBy, ValueColumn: valueCol, Op: op}
	if valueCol == "" {
		view.ValueColumn = CountColumn
		if groupBy == CountColumn {
			view.ValueColumn = CountColumn + "_"
		}
	}

	groups := make(map[string]*group)
	for i := 0; i < ds.Len(); i++ {
		label, ok := groupLabel(ds.Value(i, groupBy))
		if !ok {
			view.Skipped++
			continue
		}

		incoming := decimal.Zero
		if valueCol != "" {
			raw := ds.Value(i, valueCol)
			d, numeric := ExtractDecimal(raw)
			switch {
			case numeric:
				incoming = d
			case op == OpCount && raw != nil && !isNonFinite(raw):
				// count accepts any present value
			default:
				view.Skipped++
				continue
			}
		}

		g, exists := groups[label]
		if !exists {
			g = &group{key: ds.Value(i, groupBy), label: label}
			groups[label] = g
		}
		if !g.seen {
			g.state = agg.Initial(incoming)
			g.seen = true
			continue
		}
		g.state = agg.Apply(g.state, incoming)
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return lessKey(ordered[i].key, ordered[j].key)
	})

	view.Rows = make([]Row, len(ordered))
	for i, g := range ordered {
		view.Rows[i] = Row{
			Group: g.label,
			Value: agg.Result(g.state).InexactFloat64(),
			Count: g.state.Count,
			key:   g.key,
		}
	}
	return view, nil
}

// TopN returns a copy of view ranked by value descending, keeping at most
// n rows. Equal values are ordered by ascending group name. n <= 0 keeps
// every row.
func TopN(view *View, n int) *View {
	out := *view
	out.Rows = make([]Row, len(view.Rows))
	copy(out.Rows, view.Rows)

	sort.SliceStable(out.Rows, func(i, j int) bool {
		a, b := out.Rows[i], out.Rows[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Group < b.Group
	})
	if n > 0 && n < len(out.Rows) {
		out.Rows = out.Rows[:n]
	}
	return &out
}

// Histogram counts the finite values of field into equal-width bins.
// A column with a single distinct value yields one bin. bins above MaxBins
// is clamped to MaxBins.
func Histogram(ds *dataset.Dataset, field string, bins int) (*View, error) {
	if _, ok := ds.Column(field); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, field)
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	if bins > MaxBins {
		bins = MaxBins
	}

	view := &View{GroupBy: field, ValueColumn: CountColumn, Op: OpCount, NumericX: true}
	values := make([]float64, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		f, ok := dataset.Finite(ds.Value(i, field))
		if !ok {
			view.Skipped++
			continue
		}
		values = append(values, f)
	}
	if len(values) == 0 {
		return view, nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		bins = 1
	}
	width := (hi - lo) / float64(bins)

	counts := make([]int64, bins)
	for _, v := range values {
		idx := bins - 1
		if width > 0 {
			idx = int((v - lo) / width)
			if idx >= bins {
				idx = bins - 1
			}
		}
		counts[idx]++
	}

	view.Rows = make([]Row, bins)
	for i, c := range counts {
		start := lo + float64(i)*width
		end := start + width
		view.Rows[i] = Row{
			Group: fmt.Sprintf("[%s, %s)", formatBin(start), formatBin(end)),
			X:     start + width/2,
			Value: float64(c),
			Count: c,
		}
	}
	if bins == 1 {
		view.Rows[0].Group = fmt.Sprintf("[%s]", formatBin(lo))
		view.Rows[0].X = lo
	}
	return view, nil
}

// Points keeps one row per record holding finite x and y, in record order.
func Points(ds *dataset.Dataset, x, y string) (*View, error) {
	for _, col := range []string{x, y} {
		if _, ok := ds.Column(col); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
	}

	view := &View{GroupBy: x, ValueColumn: y, NumericX: true}
	for i := 0; i < ds.Len(); i++ {
		xv, okX := dataset.Finite(ds.Value(i, x))
		yv, okY := dataset.Finite(ds.Value(i, y))
		if !okX || !okY {
			view.Skipped++
			continue
		}
		view.Rows = append(view.Rows, Row{Group: formatFloat(xv), X: xv, Value: yv, Count: 1})
	}
	return view, nil
}

// Dataset turns the view back into a two-column dataset (group, value).
func (v *View) Dataset() (*dataset.Dataset, error) {
	records := make([]dataset.Record, len(v.Rows))
	for i, r := range v.Rows {
		var key any = r.Group
		if r.key != nil {
			key = r.key
		}
		records[i] = dataset.Record{v.GroupBy: key, v.ValueColumn: r.Value}
	}
	return dataset.New([]string{v.GroupBy, v.ValueColumn}, records)
}

func groupLabel(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return "", false
		}
		return formatFloat(val), true
	}
	return "", false
}

func isNonFinite(v any) bool {
	f, ok := v.(float64)
	return ok && (math.IsNaN(f) || math.IsInf(f, 0))
}

// lessKey orders numbers before strings, numbers numerically and strings lexically.
func lessKey(a, b any) bool {
	af, aNum := dataset.Number(a)
	bf, bNum := dataset.Number(b)
	switch {
	case aNum && bNum:
		return af < bf
	case aNum != bNum:
		return aNum
	}
	as, _ := a.(string)
	bs, _ := b.(string)
	return as < bs
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBin(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
