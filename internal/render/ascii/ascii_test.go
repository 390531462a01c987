package ascii

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

func view(values map[string]float64, order ...string) *aggregation.View {
	v := &aggregation.View{GroupBy: "region", ValueColumn: "sales", Op: aggregation.OpSum}
	for _, g := range order {
		v.Rows = append(v.Rows, aggregation.Row{Group: g, Value: values[g], Count: 1})
	}
	return v
}

func barLines(t *testing.T, body string) []string {
	t.Helper()
	var out []string
	for _, line := range strings.Split(body, "\n") {
		if strings.Contains(line, " | ") && !strings.HasPrefix(line, "max:") {
			out = append(out, line)
		}
	}
	return out
}

func TestRender_ProportionalBars(t *testing.T) {
	b := New(20)
	art, err := b.Render(context.Background(),
		view(map[string]float64{"North": 150, "South": 300}, "North", "South"),
		chart.Spec{Kind: chart.KindBar, XField: "region", YField: "sales", Title: "Sales"})
	require.NoError(t, err)
	require.Equal(t, Name, art.Backend)
	require.Contains(t, art.MediaType, "text/plain")

	lines := barLines(t, art.String())
	require.Len(t, lines, 2)
	require.Equal(t, 10, strings.Count(lines[0], barGlyph))
	require.Equal(t, 20, strings.Count(lines[1], barGlyph))
	require.True(t, strings.HasSuffix(lines[0], " 150"))
	require.Contains(t, art.String(), "max: 300 | min: 150 | mean: 225")
}

func TestRender_AllZeroValuesDrawEmptyBars(t *testing.T) {
	art, err := New(20).Render(context.Background(),
		view(map[string]float64{"A": 0, "B": 0}, "A", "B"),
		chart.Spec{Kind: chart.KindBar, XField: "region", YField: "sales"})
	require.NoError(t, err)

	lines := barLines(t, art.String())
	require.Len(t, lines, 2)
	for _, line := range lines {
		require.Zero(t, strings.Count(line, barGlyph), line)
	}
}

func TestRender_NegativeValuesClampToZero(t *testing.T) {
	art, err := New(10).Render(context.Background(),
		view(map[string]float64{"loss": -50, "gain": 100}, "loss", "gain"),
		chart.Spec{Kind: chart.KindBar, XField: "region", YField: "sales"})
	require.NoError(t, err)

	lines := barLines(t, art.String())
	require.Zero(t, strings.Count(lines[0], barGlyph))
	require.True(t, strings.HasSuffix(lines[0], " -50"))
	require.Equal(t, 10, strings.Count(lines[1], barGlyph))
}

func TestRender_NonFiniteValuesNeverFail(t *testing.T) {
	art, err := New(10).Render(context.Background(),
		view(map[string]float64{"a": math.NaN(), "b": math.Inf(1), "c": 4}, "a", "b", "c"),
		chart.Spec{Kind: chart.KindLine, XField: "region", YField: "sales"})
	require.NoError(t, err)

	lines := barLines(t, art.String())
	require.Zero(t, strings.Count(lines[0], barGlyph))
	require.Zero(t, strings.Count(lines[1], barGlyph))
	require.Equal(t, 10, strings.Count(lines[2], barGlyph))
	require.Contains(t, art.String(), "max: 4 | min: 4 | mean: 4")
}

func TestRender_ZeroRowsIsRenderError(t *testing.T) {
	_, err := New(20).Render(context.Background(), &aggregation.View{}, chart.Spec{Kind: chart.KindBar})
	require.ErrorIs(t, err, render.ErrRenderError)
}

func TestRender_PieUsesPercentages(t *testing.T) {
	art, err := New(20).Render(context.Background(),
		view(map[string]float64{"a": 25, "b": 75}, "a", "b"),
		chart.Spec{Kind: chart.KindPie, XField: "region", YField: "sales"})
	require.NoError(t, err)

	lines := barLines(t, art.String())
	require.Equal(t, 13, strings.Count(lines[0], pieGlyph)) // round(12.5)
	require.Equal(t, 38, strings.Count(lines[1], pieGlyph)) // round(37.5)
	require.Contains(t, lines[0], "25.0%")
	require.Contains(t, lines[1], "75.0%")
}

func TestRender_EveryKindSucceedsOnNonEmptyView(t *testing.T) {
	v := view(map[string]float64{"x": 1}, "x")
	for _, kind := range chart.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			_, err := New(0).Render(context.Background(), v, chart.Spec{Kind: kind, XField: "region"})
			require.NoError(t, err)
		})
	}
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 5))
	require.Equal(t, "ab…", truncate("abcdef", 3))
}
