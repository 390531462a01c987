package chart

import (
	"errors"
	"testing"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([]string{"region", "sales", "margin", "seller"}, []dataset.Record{
		{"region": "North", "sales": 100, "margin": 0.5, "seller": "Ana"},
		{"region": "South", "sales": 300, "margin": 0.25, "seller": "Rui"},
	})
	require.NoError(t, err)
	return ds
}

func TestValidate_Valid(t *testing.T) {
	ds := fixture(t)
	tests := []struct {
		name string
		spec Spec
	}{
		{"bar", Spec{Kind: KindBar, XField: "region", YField: "sales"}},
		{"line", Spec{Kind: KindLine, XField: "region", YField: "margin"}},
		{"scatter", Spec{Kind: KindScatter, XField: "sales", YField: "margin"}},
		{"pie without y counts", Spec{Kind: KindPie, XField: "region"}},
		{"pie with y", Spec{Kind: KindPie, XField: "region", YField: "sales"}},
		{"histogram", Spec{Kind: KindHistogram, XField: "sales", Extra: map[string]any{HintBins: 4.0}}},
		{"histogram at bin limit", Spec{Kind: KindHistogram, XField: "sales", Extra: map[string]any{HintBins: MaxBins}}},
		{"table", Spec{Kind: KindTable, XField: "region"}},
		{"count over a string column", Spec{Kind: KindTable, XField: "region", YField: "seller", Extra: map[string]any{HintOp: "count"}}},
		{"pie counts a string column", Spec{Kind: KindPie, XField: "region", YField: "seller", Extra: map[string]any{HintOp: "count"}}},
		{"top_n as string", Spec{Kind: KindBar, XField: "region", YField: "sales", Extra: map[string]any{HintTopN: "3"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, Validate(tc.spec, ds))
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	ds := fixture(t)
	tests := []struct {
		name      string
		spec      Spec
		wantField string
	}{
		{"unknown kind", Spec{Kind: "donut", XField: "region"}, "kind"},
		{"empty x", Spec{Kind: KindBar, YField: "sales"}, "x_field"},
		{"nonexistent x", Spec{Kind: KindBar, XField: "nonexistent", YField: "sales"}, "x_field"},
		{"bar needs y", Spec{Kind: KindBar, XField: "region"}, "y_field"},
		{"line needs y", Spec{Kind: KindLine, XField: "region"}, "y_field"},
		{"scatter needs y", Spec{Kind: KindScatter, XField: "sales"}, "y_field"},
		{"missing y column", Spec{Kind: KindBar, XField: "region", YField: "profit"}, "y_field"},
		{"non-numeric y", Spec{Kind: KindBar, XField: "region", YField: "seller"}, "y_field"},
		{"pie sums a non-numeric y", Spec{Kind: KindPie, XField: "region", YField: "seller"}, "y_field"},
		{"table means a non-numeric y", Spec{Kind: KindTable, XField: "region", YField: "seller", Extra: map[string]any{HintOp: "mean"}}, "y_field"},
		{"bar counts still need numeric y", Spec{Kind: KindBar, XField: "region", YField: "seller", Extra: map[string]any{HintOp: "count"}}, "y_field"},
		{"histogram needs numeric x", Spec{Kind: KindHistogram, XField: "region"}, "x_field"},
		{"scatter needs numeric x", Spec{Kind: KindScatter, XField: "region", YField: "sales"}, "x_field"},
		{"pie mean without y", Spec{Kind: KindPie, XField: "region", Extra: map[string]any{HintOp: "mean"}}, "y_field"},
		{"unknown op", Spec{Kind: KindBar, XField: "region", YField: "sales", Extra: map[string]any{HintOp: "median"}}, "extra.op"},
		{"fractional bins", Spec{Kind: KindHistogram, XField: "sales", Extra: map[string]any{HintBins: 2.5}}, "extra.bins"},
		{"bins above limit", Spec{Kind: KindHistogram, XField: "sales", Extra: map[string]any{HintBins: float64(1 << 40)}}, "extra.bins"},
		{"bins one past limit", Spec{Kind: KindHistogram, XField: "sales", Extra: map[string]any{HintBins: MaxBins + 1}}, "extra.bins"},
		{"bins beyond int range", Spec{Kind: KindHistogram, XField: "sales", Extra: map[string]any{HintBins: 1e300}}, "extra.bins"},
		{"negative top_n", Spec{Kind: KindBar, XField: "region", YField: "sales", Extra: map[string]any{HintTopN: -1}}, "extra.top_n"},
		{"color must be a name", Spec{Kind: KindBar, XField: "region", YField: "sales", Extra: map[string]any{HintColor: 3}}, "extra.color"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.spec, ds)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidSpecification)

			var specErr *InvalidSpecificationError
			require.True(t, errors.As(err, &specErr))
			require.Equal(t, tc.wantField, specErr.Field)
			require.Equal(t, tc.wantField, specErr.Details()["field"])
		})
	}
}

func TestValidate_TypeMismatchDetails(t *testing.T) {
	err := Validate(Spec{Kind: KindBar, XField: "region", YField: "seller"}, fixture(t))

	var specErr *InvalidSpecificationError
	require.True(t, errors.As(err, &specErr))
	details := specErr.Details()
	require.Equal(t, "numeric", details["expected_type"])
	require.Equal(t, "category", details["actual_type"])
}

func TestSpecHints(t *testing.T) {
	require.Equal(t, "count", Spec{Kind: KindPie, XField: "r"}.Op())
	require.Equal(t, "sum", Spec{Kind: KindBar, XField: "r", YField: "v"}.Op())
	require.Equal(t, "mean", Spec{Extra: map[string]any{HintOp: "mean"}}.Op())

	require.Equal(t, 10, Spec{}.Bins())
	require.Equal(t, 4, Spec{Extra: map[string]any{HintBins: 4}}.Bins())
	require.Equal(t, 10, Spec{Extra: map[string]any{HintBins: "x"}}.Bins())

	require.Equal(t, 0, Spec{}.TopN())
	require.Equal(t, 5, Spec{Extra: map[string]any{HintTopN: float64(5)}}.TopN())

	require.Equal(t, "sales por region", Spec{XField: "region", YField: "sales"}.DisplayTitle())
	require.Equal(t, "Custom", Spec{Title: "Custom"}.DisplayTitle())
}
