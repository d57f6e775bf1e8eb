// Package plot draws kernel profiles as line charts.
package plot

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	"github.com/gogpu/flipkernels/internal/filter"
	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrNoSeries is returned by Render when there is nothing to draw.
var ErrNoSeries = errors.New("plot: no series")

// Series is one kernel profile. Values are the taps of a full two-sided
// kernel; the center tap is drawn at x = 0.
type Series struct {
	Name   string
	Values []float64
	Color  gg.RGBA
}

// Options controls the chart layout.
type Options struct {
	Width  int
	Height int
	Title  string
}

// DefaultOptions returns an 800x480 chart.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 480}
}

// Palette holds the colors assigned to series without one.
var Palette = []gg.RGBA{
	gg.Hex("#1f77b4"),
	gg.Hex("#d62728"),
	gg.Hex("#2ca02c"),
	gg.Hex("#9467bd"),
	gg.Hex("#ff7f0e"),
	gg.Hex("#8c564b"),
	gg.Hex("#e377c2"),
}

const (
	margin     = 40
	legendLine = 16
)

// bounds is the data range shared by every series.
type bounds struct {
	radius     int
	minY, maxY float64
}

func dataBounds(series []Series) bounds {
	b := bounds{minY: math.Inf(1), maxY: math.Inf(-1)}
	for _, s := range series {
		if r := filter.KernelCenter(len(s.Values)); r > b.radius {
			b.radius = r
		}
		for _, v := range s.Values {
			b.minY = math.Min(b.minY, v)
			b.maxY = math.Max(b.maxY, v)
		}
	}
	// Always show the zero line.
	b.minY = math.Min(b.minY, 0)
	b.maxY = math.Max(b.maxY, 0)
	if b.maxY == b.minY {
		b.maxY = b.minY + 1
	}
	if b.radius == 0 {
		b.radius = 1
	}
	return b
}

// Render draws every series into a PNG written to w.
func Render(w io.Writer, series []Series, opts Options) error {
	img, err := Draw(series, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Draw rasterizes the chart and returns it.
func Draw(series []Series, opts Options) (*image.RGBA, error) {
	if len(series) == 0 {
		return nil, ErrNoSeries
	}
	if opts.Width <= 2*margin || opts.Height <= 2*margin {
		opts.Width, opts.Height = DefaultOptions().Width, DefaultOptions().Height
	}

	b := dataBounds(series)
	plotW := float64(opts.Width - 2*margin)
	plotH := float64(opts.Height - 2*margin)
	toX := func(offset float64) float64 {
		return margin + (offset+float64(b.radius))/float64(2*b.radius)*plotW
	}
	toY := func(v float64) float64 {
		return margin + (b.maxY-v)/(b.maxY-b.minY)*plotH
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	defer func() { _ = dc.Close() }()
	dc.ClearWithColor(gg.RGB(1, 1, 1))

	// Axes: zero line and center line.
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawLine(margin, toY(0), float64(opts.Width-margin), toY(0))
	dc.DrawLine(toX(0), margin, toX(0), float64(opts.Height-margin))
	if err := dc.Stroke(); err != nil {
		return nil, err
	}

	for i, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		col := s.Color
		if col == (gg.RGBA{}) {
			col = Palette[i%len(Palette)]
		}
		r := filter.KernelCenter(len(s.Values))

		dc.SetRGBA(col.R, col.G, col.B, col.A)
		dc.SetLineWidth(2)
		for j, v := range s.Values {
			x, y := toX(float64(j-r)), toY(v)
			if j == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		if err := dc.Stroke(); err != nil {
			return nil, err
		}

		for j, v := range s.Values {
			dc.DrawCircle(toX(float64(j-r)), toY(v), 2.5)
		}
		if err := dc.Fill(); err != nil {
			return nil, err
		}
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Src)
	drawLabels(out, series, b, opts)
	return out, nil
}

// drawLabels writes the title, legend and axis extents with a bitmap face.
func drawLabels(dst *image.RGBA, series []Series, b bounds, opts Options) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	label := func(s string, x, y int) {
		d.Dot = fixed.P(x, y)
		d.DrawString(s)
	}

	if opts.Title != "" {
		label(opts.Title, margin, margin/2+4)
	}

	label(formatTick(b.maxY), 4, margin+4)
	label(formatTick(b.minY), 4, opts.Height-margin+4)
	label("-"+strconv.Itoa(b.radius), margin-8, opts.Height-margin/2+4)
	label("+"+strconv.Itoa(b.radius), opts.Width-margin-8, opts.Height-margin/2+4)

	for i, s := range series {
		col := s.Color
		if col == (gg.RGBA{}) {
			col = Palette[i%len(Palette)]
		}
		d.Src = image.NewUniform(col.Color())
		label(s.Name, opts.Width-margin-120, margin+legendLine*(i+1))
	}
}

// formatTick prints an axis extent with four significant digits.
func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
