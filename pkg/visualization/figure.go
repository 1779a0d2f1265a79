package visualization

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"strings"

	"github.com/brianbland/xcsvplot/pkg/plot"
	"github.com/wcharczuk/go-chart/v2"
	xdraw "golang.org/x/image/draw"
)

const (
	defaultLineWidth  = 1.5
	defaultMarkerSize = 3.5

	// BackgroundAlpha is the opacity of background images.
	BackgroundAlpha = 0.5

	captionFontSize   = 9.0
	captionLineHeight = 14
	captionX          = 0.1
	captionY          = 0.02
)

var dashArrays = map[string][]float64{
	"--":      {5, 5},
	"dashed":  {5, 5},
	":":       {1, 3},
	"dotted":  {1, 3},
	"-.":      {6, 3, 1, 3},
	"dashdot": {6, 3, 1, 3},
}

// Figure is a static chart drawn with go-chart and written as PNG or SVG.
type Figure struct {
	Width  int
	Height int
	Format Format

	title   string
	caption string
	xlabel  string
	ylabel  string

	series  []chart.Series
	bounds  bounds
	invertX bool
	invertY bool
	legend  bool

	background       image.Image
	backgroundExtent plot.Extent
}

// NewFigure creates an empty PNG figure of the given size in pixels.
func NewFigure(width, height int) *Figure {
	return &Figure{Width: width, Height: height, Format: PNG}
}

func (f *Figure) SetTitle(title string)     { f.title = title }
func (f *Figure) SetCaption(caption string) { f.caption = caption }
func (f *Figure) SetXLabel(label string)    { f.xlabel = label }
func (f *Figure) SetYLabel(label string)    { f.ylabel = label }
func (f *Figure) InvertXAxis()              { f.invertX = true }
func (f *Figure) InvertYAxis()              { f.invertY = true }
func (f *Figure) ShowLegend()               { f.legend = true }

// Plot adds a line series.
func (f *Figure) Plot(s plot.Series) error {
	xs := s.X
	if xs == nil {
		xs = indexValues(len(s.Y))
	}
	if len(xs) != len(s.Y) {
		return fmt.Errorf("series %q has %d x values and %d y values", s.Label, len(xs), len(s.Y))
	}

	style, err := chartStyle(s.Style)
	if err != nil {
		return fmt.Errorf("series %q: %w", s.Label, err)
	}

	f.series = append(f.series, chart.ContinuousSeries{
		Name:    s.Label,
		XValues: xs,
		YValues: s.Y,
		Style:   style,
	})
	f.bounds.include(xs, s.Y)
	return nil
}

// Background sets an image to draw behind the data, stretched over e.
// Backgrounds are only supported for PNG output.
func (f *Figure) Background(img image.Image, e plot.Extent) error {
	if f.Format != PNG {
		return fmt.Errorf("background images need PNG output, not %s", f.Format)
	}
	f.background = img
	f.backgroundExtent = e
	f.bounds.include([]float64{e.Left, e.Right}, []float64{e.Bottom, e.Top})
	return nil
}

// Save writes the figure to path.
func (f *Figure) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := f.Render(file); err != nil {
		return err
	}
	return file.Close()
}

// Render writes the figure to w in f.Format.
func (f *Figure) Render(w io.Writer) error {
	var canvasBox chart.Box
	graph := f.chart(&canvasBox)

	provider := chart.PNG
	switch f.Format {
	case PNG:
	case SVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("unsupported format %q", f.Format)
	}

	if f.background == nil {
		if err := graph.Render(provider, w); err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
		return nil
	}

	// Draw the chart over a transparent canvas, then lay it on top of the
	// background image.
	graph.Background.FillColor = transparent
	graph.Canvas.FillColor = transparent

	var buf bytes.Buffer
	if err := graph.Render(provider, &buf); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	fg, err := png.Decode(&buf)
	if err != nil {
		return fmt.Errorf("failed to decode chart: %w", err)
	}

	out := image.NewRGBA(fg.Bounds())
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	f.drawBackground(out, canvasBox, graph.XAxis.Range, graph.YAxis.Range)
	draw.Draw(out, out.Bounds(), fg, fg.Bounds().Min, draw.Over)

	return png.Encode(w, out)
}

// chart builds the go-chart description of the figure. The plot area chosen
// by go-chart is stored in canvasBox during rendering.
func (f *Figure) chart(canvasBox *chart.Box) *chart.Chart {
	captionLines := wrapText(f.caption, f.captionWidth())

	graph := &chart.Chart{
		Title:  f.title,
		Width:  f.Width,
		Height: f.Height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  40,
				Bottom: 20 + len(captionLines)*captionLineHeight,
			},
		},
		XAxis: chart.XAxis{
			Name:  f.xlabel,
			Range: f.bounds.xRange(f.invertX),
		},
		YAxis: chart.YAxis{
			Name:  f.ylabel,
			Range: f.bounds.yRange(f.invertY),
		},
		Series: f.series,
	}

	graph.Elements = []chart.Renderable{
		func(_ chart.Renderer, cb chart.Box, _ chart.Style) {
			*canvasBox = cb
		},
	}
	if f.legend {
		graph.Elements = append(graph.Elements, chart.Legend(graph))
	}
	if len(captionLines) > 0 {
		graph.Elements = append(graph.Elements, f.captionRenderable(captionLines))
	}
	return graph
}

func (f *Figure) captionWidth() int {
	// Approximate glyph width at the caption font size.
	return int(float64(f.Width) * (1 - 2*captionX) / (captionFontSize * 0.55))
}

func (f *Figure) captionRenderable(lines []string) chart.Renderable {
	return func(r chart.Renderer, _ chart.Box, defaults chart.Style) {
		font := defaults.Font
		if font == nil {
			var err error
			if font, err = chart.GetDefaultFont(); err != nil {
				return
			}
		}
		r.SetFont(font)
		r.SetFontColor(chart.ColorBlack)
		r.SetFontSize(captionFontSize)

		x := int(float64(f.Width) * captionX)
		y := f.Height - int(float64(f.Height)*captionY) - (len(lines)-1)*captionLineHeight
		for i, line := range lines {
			r.Text(line, x, y+i*captionLineHeight)
		}
	}
}

// drawBackground scales the background image into the pixels covered by
// its extent and blends it onto dst.
func (f *Figure) drawBackground(dst draw.Image, canvasBox chart.Box, xr, yr chart.Range) {
	if xr == nil || yr == nil {
		return
	}
	e := f.backgroundExtent
	for _, v := range e.Slice() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}
	x0 := project(e.Left, xr, canvasBox.Left, canvasBox.Right)
	x1 := project(e.Right, xr, canvasBox.Left, canvasBox.Right)
	y0 := project(e.Top, yr, canvasBox.Bottom, canvasBox.Top)
	y1 := project(e.Bottom, yr, canvasBox.Bottom, canvasBox.Top)

	rect := image.Rect(x0, y0, x1, y1)
	if rect.Empty() {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), f.background, f.background.Bounds(), xdraw.Src, nil)
	flip(scaled, x0 > x1, y0 > y1)

	mask := image.NewUniform(color.Alpha{A: alphaByte(BackgroundAlpha)})
	draw.DrawMask(dst, rect, scaled, image.Point{}, mask, image.Point{}, draw.Over)
}

// alphaByte converts an opacity in [0, 1] to an 8-bit alpha value.
func alphaByte(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
}

// project maps a data value onto the pixel interval [lo, hi] of an axis.
func project(v float64, r chart.Range, lo, hi int) int {
	min, max := r.GetMin(), r.GetMax()
	if max == min {
		return lo
	}
	t := (v - min) / (max - min)
	if r.IsDescending() {
		t = 1 - t
	}
	return lo + int(math.Round(t*float64(hi-lo)))
}

// flip mirrors img in place.
func flip(img *image.RGBA, horizontal, vertical bool) {
	b := img.Bounds()
	if horizontal {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for l, r := b.Min.X, b.Max.X-1; l < r; l, r = l+1, r-1 {
				cl, cr := img.At(l, y), img.At(r, y)
				img.Set(l, y, cr)
				img.Set(r, y, cl)
			}
		}
	}
	if vertical {
		for x := b.Min.X; x < b.Max.X; x++ {
			for t, btm := b.Min.Y, b.Max.Y-1; t < btm; t, btm = t+1, btm-1 {
				ct, cb := img.At(x, t), img.At(x, btm)
				img.Set(x, t, cb)
				img.Set(x, btm, ct)
			}
		}
	}
}

// chartStyle translates plot style attributes into a go-chart style.
func chartStyle(st plot.Style) (chart.Style, error) {
	col, hasColor, err := seriesColor(st)
	if err != nil {
		return chart.Style{}, err
	}
	width, err := st.Float(plot.StyleLineWidth, defaultLineWidth)
	if err != nil {
		return chart.Style{}, err
	}

	style := chart.Style{StrokeWidth: width}
	if hasColor {
		style.StrokeColor = col
	}

	ls, set := st[plot.StyleLineStyle]
	if !set {
		ls = "-"
	}
	switch {
	case ls == "-" || ls == "solid":
	case dashArrays[ls] != nil:
		style.StrokeDashArray = dashArrays[ls]
	case strings.TrimSpace(ls) == "" || strings.EqualFold(ls, "none"):
		style.StrokeColor = transparent
	default:
		return chart.Style{}, fmt.Errorf("unsupported line style %q", ls)
	}

	if marker := st[plot.StyleMarker]; marker != "" && !strings.EqualFold(marker, "none") {
		def := defaultMarkerSize
		switch marker {
		case ".":
			def = 2
		case ",":
			def = 1
		}
		size, err := st.Float(plot.StyleMarkerSize, def)
		if err != nil {
			return chart.Style{}, err
		}
		style.DotWidth = size
		style.DotColor = col
		if !hasColor {
			style.DotColor = chart.ColorBlack
		}
	}
	return style, nil
}

// bounds tracks the data range of everything drawn on a figure.
type bounds struct {
	set                    bool
	minX, maxX, minY, maxY float64
}

func (b *bounds) include(xs, ys []float64) {
	for i := range xs {
		if i >= len(ys) {
			break
		}
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		if !b.set {
			b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
			b.set = true
			continue
		}
		b.minX, b.maxX = math.Min(b.minX, x), math.Max(b.maxX, x)
		b.minY, b.maxY = math.Min(b.minY, y), math.Max(b.maxY, y)
	}
}

func (b *bounds) xRange(descending bool) chart.Range {
	if !b.set {
		return nil
	}
	min, max := widen(b.minX, b.maxX)
	return &chart.ContinuousRange{Min: min, Max: max, Descending: descending}
}

func (b *bounds) yRange(descending bool) chart.Range {
	if !b.set {
		return nil
	}
	min, max := widen(b.minY, b.maxY)
	return &chart.ContinuousRange{Min: min, Max: max, Descending: descending}
}

// widen keeps a single-valued range from collapsing to zero width.
func widen(min, max float64) (float64, float64) {
	if min == max {
		return min - 0.5, max + 0.5
	}
	return min, max
}

// wrapText splits text into lines of at most width characters, breaking at
// spaces and keeping explicit newlines.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if width < 1 {
		width = 1
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line += " " + word
		}
		lines = append(lines, line)
	}
	return lines
}

var _ Canvas = (*Figure)(nil)
