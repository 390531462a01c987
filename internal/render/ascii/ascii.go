// Package ascii renders aggregated views as plain-text bar charts.
// It needs nothing beyond the standard library and is the last backend in
// the fallback chain: any view with at least one row renders.
package ascii

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/render"
)

// Name is the registry name of this backend.
const Name = "ascii"

const (
	DefaultWidth = 20

	barGlyph = "█"
	pieGlyph = "■"

	// pie bars use one glyph per 2%
	pieScale = 50

	maxLabelWidth = 24
)

// Backend draws one horizontal bar per row.
type Backend struct {
	width int
}

// New creates an ASCII backend with the given bar width in characters.
func New(width int) *Backend {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Backend{width: width}
}

func (b *Backend) Name() string { return Name }

// Render fails only for a view with zero rows. Non-finite and negative
// values draw empty bars.
func (b *Backend) Render(_ context.Context, view *aggregation.View, spec chart.Spec) (*render.Artifact, error) {
	if err := render.RequireRows(view); err != nil {
		return nil, err
	}

	var sb strings.Builder
	title := spec.DisplayTitle()
	sb.WriteString(title)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("=", utf8.RuneCountInString(title)))
	sb.WriteByte('\n')

	labelWidth := 0
	for _, r := range view.Rows {
		if n := utf8.RuneCountInString(r.Group); n > labelWidth {
			labelWidth = n
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}

	if spec.Kind == chart.KindPie {
		b.writePie(&sb, view, labelWidth)
	} else {
		b.writeBars(&sb, view, labelWidth)
	}
	writeLegend(&sb, view)

	return &render.Artifact{
		Backend:   Name,
		MediaType: "text/plain; charset=utf-8",
		Body:      []byte(sb.String()),
	}, nil
}

func (b *Backend) writeBars(sb *strings.Builder, view *aggregation.View, labelWidth int) {
	max := render.MaxValue(view)
	for _, r := range view.Rows {
		n := render.BarLength(r.Value, max, b.width)
		fmt.Fprintf(sb, "%-*s | %-*s %s\n",
			labelWidth, truncate(r.Group, labelWidth),
			b.width, strings.Repeat(barGlyph, n),
			render.FormatNumber(r.Value))
	}
}

func (b *Backend) writePie(sb *strings.Builder, view *aggregation.View, labelWidth int) {
	total := 0.0
	for _, r := range view.Rows {
		total += render.Clamp(r.Value)
	}
	for _, r := range view.Rows {
		pct := 0.0
		if total > 0 {
			pct = render.Clamp(r.Value) / total * 100
		}
		n := render.BarLength(pct, 100, pieScale)
		fmt.Fprintf(sb, "%-*s | %-*s %5.1f%%\n",
			labelWidth, truncate(r.Group, labelWidth),
			pieScale, strings.Repeat(pieGlyph, n),
			pct)
	}
}

func writeLegend(sb *strings.Builder, view *aggregation.View) {
	min, max, sum := math.Inf(1), math.Inf(-1), 0.0
	count := 0
	for _, r := range view.Rows {
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			continue
		}
		min = math.Min(min, r.Value)
		max = math.Max(max, r.Value)
		sum += r.Value
		count++
	}
	sb.WriteString("---\n")
	if count == 0 {
		sb.WriteString("no finite values\n")
		return
	}
	fmt.Fprintf(sb, "max: %s | min: %s | mean: %s\n",
		render.FormatNumber(max), render.FormatNumber(min), render.FormatNumber(sum/float64(count)))
	if view.Skipped > 0 {
		fmt.Fprintf(sb, "skipped: %d\n", view.Skipped)
	}
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
