// Package raster draws aggregated views into fixed-resolution PNG images.
package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/core/palette"
	"github.com/datainsight-lab/datainsight/internal/render"
)

// Name is the registry name of this backend.
const Name = "png"

const (
	DefaultWidth  = 800
	DefaultHeight = 500

	marginLeft   = 50
	marginRight  = 20
	marginTop    = 40
	marginBottom = 40

	markerSize = 3
)

var (
	background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	axisColor  = color.RGBA{0x99, 0x99, 0x99, 0xff}
	textColor  = color.RGBA{0x33, 0x33, 0x33, 0xff}
	emptyColor = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
)

// Backend renders a PNG per call.
type Backend struct {
	width  int
	height int
	face   font.Face
}

// New creates a PNG backend with the given canvas size in pixels.
func New(width, height int) *Backend {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Backend{width: width, height: height, face: basicfont.Face7x13}
}

func (b *Backend) Name() string { return Name }

// Render draws the chart and returns it base64 encoded.
func (b *Backend) Render(_ context.Context, view *aggregation.View, spec chart.Spec) (*render.Artifact, error) {
	if spec.Kind == chart.KindTable {
		return nil, render.Renderf("png has no table layout")
	}
	if err := render.RequireRows(view); err != nil {
		return nil, err
	}
	if err := render.RequireFinite(view); err != nil {
		return nil, err
	}

	if b.width-marginLeft-marginRight <= 0 || b.height-marginTop-marginBottom <= 0 {
		return nil, render.Renderf("canvas %dx%d leaves no plot area", b.width, b.height)
	}
	plot := image.Rect(marginLeft, marginTop, b.width-marginRight, b.height-marginBottom)

	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	b.text(img, spec.DisplayTitle(), marginLeft, marginTop/2+5)

	var err error
	switch spec.Kind {
	case chart.KindPie:
		b.pie(img, view, plot)
	case chart.KindScatter:
		b.scatter(img, view, plot)
	case chart.KindLine:
		err = b.columns(img, view, plot, true)
	default:
		err = b.columns(img, view, plot, false)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, render.Renderf("encoding png: %v", err)
	}
	body := make([]byte, base64.StdEncoding.EncodedLen(buf.Len()))
	base64.StdEncoding.Encode(body, buf.Bytes())
	return &render.Artifact{
		Backend:   Name,
		MediaType: "image/png",
		Encoding:  render.EncodingBase64,
		Body:      body,
	}, nil
}

// columns draws one slot per row: a filled bar, or a marker joined to its
// neighbours when asLine is set.
func (b *Backend) columns(img *image.RGBA, view *aggregation.View, plot image.Rectangle, asLine bool) error {
	n := len(view.Rows)
	slot := plot.Dx() / n
	barWidth := slot * 3 / 4
	if barWidth < 1 {
		return render.Renderf("%d categories do not fit a %dpx plot", n, plot.Dx())
	}

	b.axes(img, plot)
	max := render.MaxValue(view)
	b.text(img, render.FormatNumber(max), 4, plot.Min.Y+4)

	var prev image.Point
	for i, r := range view.Rows {
		h := render.BarLength(r.Value, max, plot.Dy())
		x0 := plot.Min.X + i*slot + (slot-barWidth)/2
		c := palette.RGBA(r.Group)

		if asLine {
			p := image.Pt(x0+barWidth/2, plot.Max.Y-h)
			if i > 0 {
				line(img, prev, p, palette.Parse(palette.Colors[0]))
			}
			fill(img, image.Rect(p.X-markerSize, p.Y-markerSize, p.X+markerSize+1, p.Y+markerSize+1), c)
			prev = p
		} else {
			fill(img, image.Rect(x0, plot.Max.Y-h, x0+barWidth, plot.Max.Y), c)
		}

		if label := b.fit(r.Group, slot); label != "" {
			b.text(img, label, plot.Min.X+i*slot, plot.Max.Y+15)
		}
	}
	return nil
}

func (b *Backend) scatter(img *image.RGBA, view *aggregation.View, plot image.Rectangle) {
	b.axes(img, plot)
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, r := range view.Rows {
		minX, maxX = math.Min(minX, r.X), math.Max(maxX, r.X)
		minY, maxY = math.Min(minY, r.Value), math.Max(maxY, r.Value)
	}
	b.text(img, render.FormatNumber(maxY), 4, plot.Min.Y+4)
	b.text(img, render.FormatNumber(minX), plot.Min.X, plot.Max.Y+15)

	c := palette.Parse(palette.Colors[0])
	for _, r := range view.Rows {
		p := image.Pt(
			plot.Min.X+position(r.X, minX, maxX, plot.Dx()),
			plot.Max.Y-position(r.Value, minY, maxY, plot.Dy()),
		)
		fill(img, image.Rect(p.X-markerSize, p.Y-markerSize, p.X+markerSize+1, p.Y+markerSize+1), c)
	}
}

// pie fills each pixel of the disc with the colour of the slice its angle
// falls in, clockwise from twelve o'clock.
func (b *Backend) pie(img *image.RGBA, view *aggregation.View, plot image.Rectangle) {
	radius := min(plot.Dx(), plot.Dy()) / 2
	center := image.Pt(plot.Min.X+radius, plot.Min.Y+plot.Dy()/2)

	total := 0.0
	for _, r := range view.Rows {
		total += render.Clamp(r.Value)
	}
	bounds := make([]float64, len(view.Rows))
	acc := 0.0
	for i, r := range view.Rows {
		if total > 0 {
			acc += render.Clamp(r.Value) / total
		}
		bounds[i] = acc
	}

	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y > radius*radius {
				continue
			}
			c := emptyColor
			if total > 0 {
				frac := (math.Atan2(float64(x), float64(-y)) + 2*math.Pi) / (2 * math.Pi)
				frac -= math.Floor(frac)
				for i, bound := range bounds {
					if frac < bound || i == len(bounds)-1 {
						c = palette.RGBA(view.Rows[i].Group)
						break
					}
				}
			}
			img.SetRGBA(center.X+x, center.Y+y, c)
		}
	}

	// legend to the right of the disc
	lx := center.X + radius + 20
	for i, r := range view.Rows {
		ly := plot.Min.Y + i*16
		if ly+13 > plot.Max.Y {
			break
		}
		fill(img, image.Rect(lx, ly, lx+10, ly+10), palette.RGBA(r.Group))
		b.text(img, r.Group, lx+14, ly+10)
	}
}

func (b *Backend) axes(img *image.RGBA, plot image.Rectangle) {
	fill(img, image.Rect(plot.Min.X-1, plot.Min.Y, plot.Min.X, plot.Max.Y+1), axisColor)
	fill(img, image.Rect(plot.Min.X-1, plot.Max.Y, plot.Max.X, plot.Max.Y+1), axisColor)
}

func (b *Backend) text(img *image.RGBA, s string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: b.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// fit trims s until it is narrower than width pixels.
func (b *Backend) fit(s string, width int) string {
	runes := []rune(s)
	for len(runes) > 0 && font.MeasureString(b.face, string(runes)).Ceil() >= width {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

func position(v, lo, hi float64, span int) int {
	if hi <= lo {
		return span / 2
	}
	return int(math.Round((v - lo) / (hi - lo) * float64(span)))
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// line draws a one pixel segment with a simple DDA walk.
func line(img *image.RGBA, from, to image.Point, c color.RGBA) {
	dx, dy := to.X-from.X, to.Y-from.Y
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		img.SetRGBA(from.X, from.Y, c)
		return
	}
	for i := 0; i <= steps; i++ {
		x := from.X + int(math.Round(float64(dx*i)/float64(steps)))
		y := from.Y + int(math.Round(float64(dy*i)/float64(steps)))
		img.SetRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
