package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/core/palette"
	"github.com/datainsight-lab/datainsight/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func view(groups []string, values []float64) *aggregation.View {
	v := &aggregation.View{GroupBy: "region", ValueColumn: "sales", Op: aggregation.OpSum}
	for i, g := range groups {
		v.Rows = append(v.Rows, aggregation.Row{Group: g, Value: values[i], Count: 1})
	}
	return v
}

func decode(t *testing.T, art *render.Artifact) image.Image {
	t.Helper()
	require.Equal(t, "image/png", art.MediaType)
	require.Equal(t, "base64", art.Encoding)
	raw, err := base64.StdEncoding.DecodeString(art.String())
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func rgba(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestRender_BarHeightsFollowValues(t *testing.T) {
	art, err := New(0, 0).Render(context.Background(),
		view([]string{"North", "South"}, []float64{150, 300}),
		chart.Spec{Kind: chart.KindBar, XField: "region", YField: "sales"})
	require.NoError(t, err)
	assert.Equal(t, Name, art.Backend)

	img := decode(t, art)
	require.Equal(t, image.Rect(0, 0, DefaultWidth, DefaultHeight), img.Bounds())

	// plot area is (50,40)-(780,460); slots are 365px wide, bars 273px
	assert.Equal(t, palette.RGBA("South"), rgba(img, 561, 100))
	assert.Equal(t, palette.RGBA("North"), rgba(img, 196, 300))
	assert.Equal(t, background, rgba(img, 196, 200))
}

func TestRender_AllZeroValuesLeaveEmptyPlot(t *testing.T) {
	art, err := New(0, 0).Render(context.Background(),
		view([]string{"A", "B"}, []float64{0, 0}),
		chart.Spec{Kind: chart.KindBar, XField: "region", YField: "sales"})
	require.NoError(t, err)
	img := decode(t, art)
	assert.Equal(t, background, rgba(img, 196, 300))
}

func TestRender_PieSlices(t *testing.T) {
	art, err := New(0, 0).Render(context.Background(),
		view([]string{"a", "b"}, []float64{25, 75}),
		chart.Spec{Kind: chart.KindPie, XField: "region", YField: "sales"})
	require.NoError(t, err)
	img := decode(t, art)

	// disc centre is (260,250) with radius 210
	assert.Equal(t, palette.RGBA("a"), rgba(img, 310, 200))
	assert.Equal(t, palette.RGBA("b"), rgba(img, 210, 300))
}

func TestRender_LineAndScatter(t *testing.T) {
	for _, kind := range []chart.Kind{chart.KindLine, chart.KindScatter, chart.KindHistogram} {
		t.Run(string(kind), func(t *testing.T) {
			v := view([]string{"1", "2", "3"}, []float64{3, -1, 2})
			v.NumericX = true
			for i := range v.Rows {
				v.Rows[i].X = float64(i + 1)
			}
			art, err := New(320, 240).Render(context.Background(), v, chart.Spec{Kind: kind, XField: "region"})
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 320, 240), decode(t, art).Bounds())
		})
	}
}

func TestRender_Failures(t *testing.T) {
	crowded := &aggregation.View{GroupBy: "id", ValueColumn: "v"}
	for i := 0; i < 50; i++ {
		crowded.Rows = append(crowded.Rows, aggregation.Row{Group: fmt.Sprint(i), Value: 1})
	}

	tests := []struct {
		name    string
		backend *Backend
		view    *aggregation.View
		kind    chart.Kind
	}{
		{"table unsupported", New(0, 0), view([]string{"a"}, []float64{1}), chart.KindTable},
		{"zero rows", New(0, 0), &aggregation.View{}, chart.KindBar},
		{"non-finite", New(0, 0), view([]string{"a"}, []float64{math.NaN()}), chart.KindBar},
		{"categories wider than canvas", New(100, 100), crowded, chart.KindBar},
		{"no plot area", New(60, 60), view([]string{"a"}, []float64{1}), chart.KindBar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.backend.Render(context.Background(), tt.view, chart.Spec{Kind: tt.kind, XField: "region"})
			require.ErrorIs(t, err, render.ErrRenderError)
		})
	}
}

func TestFit(t *testing.T) {
	b := New(0, 0)
	// basicfont glyphs advance 7px
	assert.Equal(t, "abc", b.fit("abc", 30))
	assert.Equal(t, "ab", b.fit("abcdef", 15))
	assert.Equal(t, "", b.fit("abc", 5))
}
