package htmlchart

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/render"
	"github.com/stretchr/testify/require"
)

func view(groups []string, values []float64) *aggregation.View {
	v := &aggregation.View{GroupBy: "region", ValueColumn: "sales", Op: aggregation.OpSum}
	for i, g := range groups {
		v.Rows = append(v.Rows, aggregation.Row{Group: g, Value: values[i], Count: 1})
	}
	return v
}

func TestHeights(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []int
	}{
		{"proportional", []float64{150, 300}, []int{50, 100}},
		{"all zero", []float64{0, 0}, []int{0, 0}},
		{"negative clamps", []float64{-20, 40}, []int{0, 100}},
		{"rounding", []float64{1, 3}, []int{33, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := make([]string, len(tt.values))
			for i := range groups {
				groups[i] = string(rune('A' + i))
			}
			require.Equal(t, tt.want, Heights(view(groups, tt.values)))
		})
	}
}

func TestRender_Columns(t *testing.T) {
	art, err := New().Render(context.Background(),
		view([]string{"North", "South"}, []float64{150, 300}),
		chart.Spec{Kind: chart.KindBar, XField: "region", YField: "sales", Title: "Vendas"})
	require.NoError(t, err)
	require.Equal(t, Name, art.Backend)
	require.Contains(t, art.MediaType, "text/html")

	body := art.String()
	require.Contains(t, body, "<h3")
	require.Contains(t, body, "Vendas")
	require.Contains(t, body, "height:50%")
	require.Contains(t, body, "height:100%")
	require.Contains(t, body, "North")
	require.Contains(t, body, "South")
}

func TestRender_AllZeroValuesUseZeroHeights(t *testing.T) {
	art, err := New().Render(context.Background(),
		view([]string{"A", "B"}, []float64{0, 0}),
		chart.Spec{Kind: chart.KindBar, XField: "region", YField: "sales"})
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(art.String(), "width:40px;height:0%"))
}

func TestRender_EscapesLabels(t *testing.T) {
	art, err := New().Render(context.Background(),
		view([]string{"<script>x</script>"}, []float64{1}),
		chart.Spec{Kind: chart.KindBar, XField: "region", YField: "sales"})
	require.NoError(t, err)
	require.NotContains(t, art.String(), "<script>")
	require.Contains(t, art.String(), "&lt;script&gt;")
}

func TestRender_Pie(t *testing.T) {
	art, err := New().Render(context.Background(),
		view([]string{"a", "b"}, []float64{25, 75}),
		chart.Spec{Kind: chart.KindPie, XField: "region", YField: "sales"})
	require.NoError(t, err)
	body := art.String()
	require.Contains(t, body, "conic-gradient(")
	require.Contains(t, body, "0.00% 25.00%")
	require.Contains(t, body, "25.00% 100.00%")
	require.Contains(t, body, "75 (75.00%)")
}

func TestRender_PieWithZeroTotal(t *testing.T) {
	art, err := New().Render(context.Background(),
		view([]string{"a", "b"}, []float64{0, -3}),
		chart.Spec{Kind: chart.KindPie, XField: "region", YField: "sales"})
	require.NoError(t, err)
	require.Contains(t, art.String(), "conic-gradient(#e0e0e0 0% 100%)")
}

func TestRender_Table(t *testing.T) {
	art, err := New().Render(context.Background(),
		view([]string{"a", "b"}, []float64{1.5, 2}),
		chart.Spec{Kind: chart.KindTable, XField: "region"})
	require.NoError(t, err)
	body := art.String()
	require.Contains(t, body, "<table")
	require.Contains(t, body, "<th style=\"text-align:left;padding:4px 8px;\">region</th>")
	require.Contains(t, body, "1.50")
}

func TestRender_Failures(t *testing.T) {
	tests := []struct {
		name string
		view *aggregation.View
	}{
		{"zero rows", &aggregation.View{GroupBy: "region"}},
		{"nil view", nil},
		{"NaN", view([]string{"a"}, []float64{math.NaN()})},
		{"Inf", view([]string{"a", "b"}, []float64{1, math.Inf(-1)})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			art, err := New().Render(context.Background(), tt.view, chart.Spec{Kind: chart.KindBar, XField: "region"})
			require.Nil(t, art)
			require.ErrorIs(t, err, render.ErrRenderError)
		})
	}
}
