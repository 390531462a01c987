// Package htmlchart renders aggregated views as self-contained HTML using
// only primitive layout: flex-box columns, conic-gradient pies and tables.
package htmlchart

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/core/palette"
	"github.com/datainsight-lab/datainsight/internal/render"
)

// Name is the registry name of this backend.
const Name = "html"

const (
	layoutColumns = "columns"
	layoutPie     = "pie"
	layoutTable   = "table"

	// heights are percentages of the plot area
	heightScale = 100

	emptyPieColor = "#e0e0e0"
)

var pageTemplate = template.Must(template.New("chart").Parse(`<div class="di-chart di-chart--{{.Kind}}" style="font-family:sans-serif;">
<h3 style="margin:0 0 8px 0;">{{.Title}}</h3>
{{- if eq .Layout "columns"}}
<div class="di-plot" style="display:flex;align-items:flex-end;height:300px;gap:8px;padding:10px;border-left:1px solid #ccc;border-bottom:1px solid #ccc;">
{{- range .Bars}}
<div class="di-column" style="display:flex;flex-direction:column;align-items:center;justify-content:flex-end;height:100%;">
<div class="di-bar" style="{{.Style}}" title="{{.Label}}: {{.Value}}"></div>
<span class="di-label" style="font-size:11px;">{{.Label}}</span>
<span class="di-value" style="font-size:11px;color:#555;">{{.Value}}</span>
</div>
{{- end}}
</div>
{{- else if eq .Layout "pie"}}
<div style="display:flex;align-items:center;gap:24px;">
<div class="di-pie" style="{{.Pie}}"></div>
<ul class="di-legend" style="list-style:none;padding:0;margin:0;">
{{- range .Bars}}
<li><span style="{{.Style}}"></span> {{.Label}}: {{.Value}}</li>
{{- end}}
</ul>
</div>
{{- else}}
<table class="di-table" style="border-collapse:collapse;">
<thead><tr><th style="text-align:left;padding:4px 8px;">{{.GroupBy}}</th><th style="text-align:right;padding:4px 8px;">{{.ValueColumn}}</th></tr></thead>
<tbody>
{{- range .Bars}}
<tr><td style="padding:4px 8px;">{{.Label}}</td><td style="text-align:right;padding:4px 8px;">{{.Value}}</td></tr>
{{- end}}
</tbody>
</table>
{{- end}}
</div>
`))

type bar struct {
	Label string
	Value string
	Style template.CSS
}

type page struct {
	Title       string
	Kind        string
	Layout      string
	GroupBy     string
	ValueColumn string
	Bars        []bar
	Pie         template.CSS
}

// Backend produces HTML markup. It never depends on an external capability.
type Backend struct{}

// New creates an HTML backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string { return Name }

// Render fails only for malformed views: zero rows or non-finite values.
func (b *Backend) Render(_ context.Context, view *aggregation.View, spec chart.Spec) (*render.Artifact, error) {
	if err := render.RequireRows(view); err != nil {
		return nil, err
	}
	if err := render.RequireFinite(view); err != nil {
		return nil, err
	}

	p := page{
		Title:       spec.DisplayTitle(),
		Kind:        string(spec.Kind),
		GroupBy:     view.GroupBy,
		ValueColumn: view.ValueColumn,
	}
	switch spec.Kind {
	case chart.KindPie:
		p.Layout = layoutPie
		p.Bars, p.Pie = pieSlices(view)
	case chart.KindTable:
		p.Layout = layoutTable
		p.Bars = tableRows(view)
	default:
		p.Layout = layoutColumns
		p.Bars = columns(view)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return nil, render.Renderf("executing html template: %v", err)
	}
	return &render.Artifact{
		Backend:   Name,
		MediaType: "text/html; charset=utf-8",
		Body:      buf.Bytes(),
	}, nil
}

// Heights returns the bar height percentage of every row.
func Heights(view *aggregation.View) []int {
	max := render.MaxValue(view)
	out := make([]int, len(view.Rows))
	for i, r := range view.Rows {
		out[i] = render.BarLength(r.Value, max, heightScale)
	}
	return out
}

func columns(view *aggregation.View) []bar {
	heights := Heights(view)
	out := make([]bar, len(view.Rows))
	for i, r := range view.Rows {
		out[i] = bar{
			Label: r.Group,
			Value: render.FormatNumber(r.Value),
			Style: template.CSS(fmt.Sprintf("width:40px;height:%d%%;background:%s;", heights[i], palette.For(r.Group))),
		}
	}
	return out
}

func tableRows(view *aggregation.View) []bar {
	out := make([]bar, len(view.Rows))
	for i, r := range view.Rows {
		out[i] = bar{Label: r.Group, Value: render.FormatNumber(r.Value)}
	}
	return out
}

// pieSlices builds the legend entries and the conic-gradient for a pie.
// Negative values get no slice.
func pieSlices(view *aggregation.View) ([]bar, template.CSS) {
	total := 0.0
	for _, r := range view.Rows {
		total += render.Clamp(r.Value)
	}

	legend := make([]bar, len(view.Rows))
	stops := make([]string, 0, len(view.Rows))
	start := 0.0
	for i, r := range view.Rows {
		pct := 0.0
		if total > 0 {
			pct = render.Clamp(r.Value) / total * 100
		}
		color := palette.For(r.Group)
		legend[i] = bar{
			Label: r.Group,
			Value: fmt.Sprintf("%s (%s%%)", render.FormatNumber(r.Value), percent(pct)),
			Style: template.CSS(fmt.Sprintf("display:inline-block;width:10px;height:10px;background:%s;", color)),
		}
		if pct > 0 {
			end := start + pct
			if i == len(view.Rows)-1 || end > 100 {
				end = 100
			}
			stops = append(stops, fmt.Sprintf("%s %s%% %s%%", color, percent(start), percent(end)))
			start = end
		}
	}
	if len(stops) == 0 {
		stops = append(stops, emptyPieColor+" 0% 100%")
	}

	gradient := fmt.Sprintf("width:200px;height:200px;border-radius:50%%;background:conic-gradient(%s);", strings.Join(stops, ", "))
	return legend, template.CSS(gradient)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
