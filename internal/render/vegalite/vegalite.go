// Package vegalite renders aggregated views as Vega-Lite v5 specifications.
package vegalite

import (
	"context"
	"encoding/json"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/core/palette"
	"github.com/datainsight-lab/datainsight/internal/render"
)

// Name is the registry name of this backend.
const Name = "vegalite"

// Schema is the Vega-Lite schema every document declares.
const Schema = "https://vega.github.io/schema/vega-lite/v5.json"

// Fields used in the inline data values.
const (
	fieldGroup = "group"
	fieldX     = "x"
	fieldValue = "value"
)

// Document is the subset of a Vega-Lite top-level spec this backend emits.
type Document struct {
	Schema   string   `json:"$schema"`
	Title    string   `json:"title,omitempty"`
	Width    int      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
	Data     Data     `json:"data"`
	Mark     Mark     `json:"mark"`
	Encoding Encoding `json:"encoding"`
}

type Data struct {
	Values []map[string]any `json:"values"`
}

type Mark struct {
	Type    string `json:"type"`
	Point   bool   `json:"point,omitempty"`
	Tooltip bool   `json:"tooltip,omitempty"`
}

type Encoding struct {
	X     *Channel `json:"x,omitempty"`
	Y     *Channel `json:"y,omitempty"`
	Theta *Channel `json:"theta,omitempty"`
	Color *Channel `json:"color,omitempty"`
}

type Channel struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
	// Sort lists the domain in the view's row order.
	Sort  []string `json:"sort,omitempty"`
	Scale *Scale   `json:"scale,omitempty"`
}

type Scale struct {
	Domain []string `json:"domain,omitempty"`
	Range  []string `json:"range,omitempty"`
}

// Backend emits JSON documents for a Vega-Lite runtime to draw.
type Backend struct {
	width  int
	height int
}

// New creates a Vega-Lite backend. Zero sizes let the runtime pick.
func New(width, height int) *Backend {
	return &Backend{width: width, height: height}
}

func (b *Backend) Name() string { return Name }

// Render supports every kind except table.
func (b *Backend) Render(_ context.Context, view *aggregation.View, spec chart.Spec) (*render.Artifact, error) {
	if spec.Kind == chart.KindTable {
		return nil, render.Renderf("vega-lite has no table mark")
	}
	if err := render.RequireRows(view); err != nil {
		return nil, err
	}
	if err := render.RequireFinite(view); err != nil {
		return nil, err
	}

	doc := b.Build(view, spec)
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, render.Renderf("encoding vega-lite document: %v", err)
	}
	return &render.Artifact{
		Backend:   Name,
		MediaType: "application/vnd.vegalite.v5+json",
		Body:      body,
	}, nil
}

// Build assembles the document for a validated, finite view.
func (b *Backend) Build(view *aggregation.View, spec chart.Spec) Document {
	doc := Document{
		Schema: Schema,
		Title:  spec.DisplayTitle(),
		Width:  b.width,
		Height: b.height,
		Data:   Data{Values: make([]map[string]any, len(view.Rows))},
	}
	for i, r := range view.Rows {
		doc.Data.Values[i] = map[string]any{fieldGroup: r.Group, fieldX: r.X, fieldValue: r.Value}
	}

	value := &Channel{Field: fieldValue, Type: "quantitative", Title: view.ValueColumn}
	group := &Channel{Field: fieldGroup, Type: "nominal", Title: view.GroupBy, Sort: view.Labels()}
	colors := colorScale(view)

	switch spec.Kind {
	case chart.KindPie:
		doc.Mark = Mark{Type: "arc", Tooltip: true}
		doc.Encoding = Encoding{
			Theta: value,
			Color: &Channel{Field: fieldGroup, Type: "nominal", Title: view.GroupBy, Scale: colors},
		}
	case chart.KindLine:
		group.Type = "ordinal"
		doc.Mark = Mark{Type: "line", Point: true, Tooltip: true}
		doc.Encoding = Encoding{X: group, Y: value}
	case chart.KindScatter:
		doc.Mark = Mark{Type: "point", Tooltip: true}
		doc.Encoding = Encoding{
			X: &Channel{Field: fieldX, Type: "quantitative", Title: view.GroupBy},
			Y: value,
		}
	default:
		doc.Mark = Mark{Type: "bar", Tooltip: true}
		doc.Encoding = Encoding{
			X:     group,
			Y:     value,
			Color: &Channel{Field: fieldGroup, Type: "nominal", Title: view.GroupBy, Scale: colors},
		}
	}
	return doc
}

func colorScale(view *aggregation.View) *Scale {
	s := &Scale{Domain: make([]string, len(view.Rows)), Range: make([]string, len(view.Rows))}
	for i, r := range view.Rows {
		s.Domain[i] = r.Group
		s.Range[i] = palette.For(r.Group)
	}
	return s
}
