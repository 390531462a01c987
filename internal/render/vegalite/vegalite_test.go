package vegalite

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesView() *aggregation.View {
	return &aggregation.View{
		GroupBy:     "region",
		ValueColumn: "sales",
		Op:          aggregation.OpSum,
		Rows: []aggregation.Row{
			{Group: "North", Value: 150, Count: 2},
			{Group: "South", Value: 300, Count: 1},
		},
	}
}

func decode(t *testing.T, art *render.Artifact) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(art.Body, &doc))
	return doc
}

func TestRender_Bar(t *testing.T) {
	art, err := New(600, 400).Render(context.Background(), salesView(),
		chart.Spec{Kind: chart.KindBar, XField: "region", YField: "sales"})
	require.NoError(t, err)
	assert.Equal(t, Name, art.Backend)

	doc := decode(t, art)
	assert.Equal(t, Schema, doc["$schema"])
	assert.Equal(t, "bar", doc["mark"].(map[string]any)["type"])

	values := doc["data"].(map[string]any)["values"].([]any)
	require.Len(t, values, 2)
	assert.Equal(t, "North", values[0].(map[string]any)["group"])
	assert.Equal(t, 300.0, values[1].(map[string]any)["value"])

	x := doc["encoding"].(map[string]any)["x"].(map[string]any)
	assert.Equal(t, "nominal", x["type"])
	assert.Equal(t, []any{"North", "South"}, x["sort"])
}

func TestBuild_MarkPerKind(t *testing.T) {
	tests := []struct {
		kind chart.Kind
		mark string
	}{
		{chart.KindBar, "bar"},
		{chart.KindHistogram, "bar"},
		{chart.KindLine, "line"},
		{chart.KindPie, "arc"},
		{chart.KindScatter, "point"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			doc := New(0, 0).Build(salesView(), chart.Spec{Kind: tt.kind, XField: "region"})
			assert.Equal(t, tt.mark, doc.Mark.Type)
		})
	}
}

func TestBuild_PieUsesTheta(t *testing.T) {
	doc := New(0, 0).Build(salesView(), chart.Spec{Kind: chart.KindPie, XField: "region"})
	require.NotNil(t, doc.Encoding.Theta)
	assert.Nil(t, doc.Encoding.X)
	assert.Equal(t, []string{"North", "South"}, doc.Encoding.Color.Scale.Domain)
	assert.Len(t, doc.Encoding.Color.Scale.Range, 2)
}

func TestBuild_ScatterUsesNumericX(t *testing.T) {
	view := &aggregation.View{
		GroupBy: "sales", ValueColumn: "profit", NumericX: true,
		Rows: []aggregation.Row{{Group: "2", X: 2, Value: 5, Count: 1}},
	}
	doc := New(0, 0).Build(view, chart.Spec{Kind: chart.KindScatter, XField: "sales", YField: "profit"})
	assert.Equal(t, "x", doc.Encoding.X.Field)
	assert.Equal(t, "quantitative", doc.Encoding.X.Type)
	assert.Equal(t, 2.0, doc.Data.Values[0]["x"])
}

func TestRender_Failures(t *testing.T) {
	inf := salesView()
	inf.Rows[1].Value = math.Inf(1)

	tests := []struct {
		name string
		view *aggregation.View
		kind chart.Kind
	}{
		{"table unsupported", salesView(), chart.KindTable},
		{"zero rows", &aggregation.View{}, chart.KindBar},
		{"non-finite", inf, chart.KindLine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(0, 0).Render(context.Background(), tt.view, chart.Spec{Kind: tt.kind, XField: "region"})
			require.ErrorIs(t, err, render.ErrRenderError)
		})
	}
}
