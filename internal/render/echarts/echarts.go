// Package echarts renders aggregated views as interactive ECharts pages
// built with go-echarts.
package echarts

import (
	"bytes"
	"context"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/core/palette"
	"github.com/datainsight-lab/datainsight/internal/render"
)

// Name is the registry name of this backend.
const Name = "echarts"

const (
	defaultWidth  = "900px"
	defaultHeight = "500px"
)

// Config holds the page options.
type Config struct {
	// AssetsHost is where the page loads echarts.min.js from. Empty keeps
	// the go-echarts default CDN.
	AssetsHost string
	Width      string
	Height     string
}

// Backend builds a full HTML page per render.
type Backend struct {
	cfg Config
}

// New creates an ECharts backend.
func New(cfg Config) *Backend {
	if cfg.Width == "" {
		cfg.Width = defaultWidth
	}
	if cfg.Height == "" {
		cfg.Height = defaultHeight
	}
	return &Backend{cfg: cfg}
}

func (b *Backend) Name() string { return Name }

type renderer interface {
	Render(w io.Writer) error
}

// Render supports every kind except table.
func (b *Backend) Render(_ context.Context, view *aggregation.View, spec chart.Spec) (art *render.Artifact, err error) {
	if spec.Kind == chart.KindTable {
		return nil, render.Renderf("echarts has no table chart")
	}
	if err := render.RequireRows(view); err != nil {
		return nil, err
	}
	if err := render.RequireFinite(view); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			art = nil
			err = render.Renderf("echarts panicked: %v", r)
		}
	}()

	var c renderer
	switch spec.Kind {
	case chart.KindPie:
		c = b.pie(view, spec)
	case chart.KindLine:
		c = b.line(view, spec)
	case chart.KindScatter:
		c = b.scatter(view, spec)
	default:
		c = b.bar(view, spec)
	}

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return nil, render.Renderf("rendering echarts page: %v", err)
	}
	return &render.Artifact{
		Backend:   Name,
		MediaType: "text/html; charset=utf-8",
		Body:      buf.Bytes(),
	}, nil
}

func (b *Backend) globals(spec chart.Spec) []charts.GlobalOpts {
	page := opts.Initialization{
		PageTitle: spec.DisplayTitle(),
		Width:     b.cfg.Width,
		Height:    b.cfg.Height,
	}
	if b.cfg.AssetsHost != "" {
		page.AssetsHost = b.cfg.AssetsHost
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(page),
		charts.WithTitleOpts(opts.Title{Title: spec.DisplayTitle()}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
	}
}

func (b *Backend) bar(view *aggregation.View, spec chart.Spec) *charts.Bar {
	c := charts.NewBar()
	c.SetGlobalOptions(b.globals(spec)...)
	c.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: view.GroupBy}),
		charts.WithYAxisOpts(opts.YAxis{Name: view.ValueColumn}),
	)

	data := make([]opts.BarData, len(view.Rows))
	for i, r := range view.Rows {
		data[i] = opts.BarData{
			Name:      r.Group,
			Value:     r.Value,
			ItemStyle: &opts.ItemStyle{Color: palette.For(r.Group)},
		}
	}
	c.SetXAxis(view.Labels()).AddSeries(view.ValueColumn, data)
	return c
}

func (b *Backend) line(view *aggregation.View, spec chart.Spec) *charts.Line {
	c := charts.NewLine()
	c.SetGlobalOptions(b.globals(spec)...)
	c.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: view.GroupBy}),
		charts.WithYAxisOpts(opts.YAxis{Name: view.ValueColumn}),
	)

	data := make([]opts.LineData, len(view.Rows))
	for i, r := range view.Rows {
		data[i] = opts.LineData{Name: r.Group, Value: r.Value}
	}
	c.SetXAxis(view.Labels()).AddSeries(view.ValueColumn, data)
	return c
}

func (b *Backend) pie(view *aggregation.View, spec chart.Spec) *charts.Pie {
	c := charts.NewPie()
	c.SetGlobalOptions(b.globals(spec)...)

	data := make([]opts.PieData, len(view.Rows))
	for i, r := range view.Rows {
		data[i] = opts.PieData{
			Name:      r.Group,
			Value:     r.Value,
			ItemStyle: &opts.ItemStyle{Color: palette.For(r.Group)},
		}
	}
	c.AddSeries(view.ValueColumn, data)
	return c
}

// scatter plots (X, Value) pairs on two value axes.
func (b *Backend) scatter(view *aggregation.View, spec chart.Spec) *charts.Scatter {
	c := charts.NewScatter()
	c.SetGlobalOptions(b.globals(spec)...)
	c.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: view.GroupBy, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: view.ValueColumn, Type: "value"}),
	)

	data := make([]opts.ScatterData, len(view.Rows))
	for i, r := range view.Rows {
		data[i] = opts.ScatterData{Name: r.Group, Value: []float64{r.X, r.Value}}
	}
	c.AddSeries(view.ValueColumn, data)
	return c
}
