package visualization

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"strings"

	"github.com/brianbland/xcsvplot/pkg/plot"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTMLFigure is an interactive chart written as a standalone ECharts page.
type HTMLFigure struct {
	Width  int
	Height int

	title    string
	caption  string
	xlabel   string
	ylabel   string
	legend   bool
	inverted bool
	series   []htmlSeries
}

type htmlSeries struct {
	label      string
	points     [][]interface{}
	color      string
	lineType   string
	showLine   bool
	marker     bool
	markerSize int
}

// NewHTMLFigure creates an empty interactive figure of the given size in
// pixels.
func NewHTMLFigure(width, height int) *HTMLFigure {
	return &HTMLFigure{Width: width, Height: height}
}

func (f *HTMLFigure) SetTitle(title string)     { f.title = title }
func (f *HTMLFigure) SetCaption(caption string) { f.caption = caption }
func (f *HTMLFigure) SetXLabel(label string)    { f.xlabel = label }
func (f *HTMLFigure) SetYLabel(label string)    { f.ylabel = label }
func (f *HTMLFigure) ShowLegend()               { f.legend = true }

// InvertXAxis marks the x axis as inverted. ECharts value axes are always
// ascending, so Render then fails.
func (f *HTMLFigure) InvertXAxis() { f.inverted = true }

// InvertYAxis marks the y axis as inverted, see InvertXAxis.
func (f *HTMLFigure) InvertYAxis() { f.inverted = true }

// Background always fails; interactive figures have no image layer.
func (f *HTMLFigure) Background(image.Image, plot.Extent) error {
	return errors.New("background images need PNG output, not html")
}

// Plot adds a series.
func (f *HTMLFigure) Plot(s plot.Series) error {
	xs := s.X
	if xs == nil {
		xs = indexValues(len(s.Y))
	}
	if len(xs) != len(s.Y) {
		return fmt.Errorf("series %q has %d x values and %d y values", s.Label, len(xs), len(s.Y))
	}

	hs := htmlSeries{label: s.Label, showLine: true, lineType: "solid"}

	col, ok, err := seriesColor(s.Style)
	if err != nil {
		return fmt.Errorf("series %q: %w", s.Label, err)
	}
	if ok {
		hs.color = cssColor(col)
	}

	if ls, set := s.Style[plot.StyleLineStyle]; set {
		switch {
		case ls == "-" || ls == "solid":
		case ls == "--" || ls == "dashed":
			hs.lineType = "dashed"
		case ls == ":" || ls == "dotted" || ls == "-." || ls == "dashdot":
			hs.lineType = "dotted"
		case strings.TrimSpace(ls) == "" || strings.EqualFold(ls, "none"):
			hs.showLine = false
		default:
			return fmt.Errorf("series %q: unsupported line style %q", s.Label, ls)
		}
	}

	if marker := s.Style[plot.StyleMarker]; marker != "" && !strings.EqualFold(marker, "none") {
		size, err := s.Style.Float(plot.StyleMarkerSize, defaultMarkerSize)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Label, err)
		}
		hs.marker = true
		hs.markerSize = int(math.Max(1, math.Round(size*2)))
	}

	hs.points = make([][]interface{}, len(xs))
	for i := range xs {
		hs.points[i] = []interface{}{jsonValue(xs[i]), jsonValue(s.Y[i])}
	}
	f.series = append(f.series, hs)
	return nil
}

// jsonValue maps NaN and infinities to the ECharts missing-value marker,
// since they cannot be encoded as JSON numbers.
func jsonValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return v
}

// Save writes the page to path.
func (f *HTMLFigure) Save(path string) error {
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

// Render writes the page to w.
func (f *HTMLFigure) Render(w io.Writer) error {
	if f.inverted {
		return errors.New("inverted axes need png or svg output, not html")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: f.title,
			Width:     fmt.Sprintf("%dpx", f.Width),
			Height:    fmt.Sprintf("%dpx", f.Height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    f.title,
			Subtitle: f.caption,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: f.xlabel,
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: f.ylabel,
			Type: "value",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(f.legend),
			Top:  "10%",
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  opts.Bool(true),
					Type:  "png",
					Title: "Save as Image",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show:  opts.Bool(true),
					Title: map[string]string{"zoom": "Zoom", "back": "Back"},
				},
			},
		}),
	)

	var scatter *charts.Scatter
	for _, s := range f.series {
		if !s.showLine {
			// Marker-only series go on an overlapping scatter chart.
			if scatter == nil {
				scatter = charts.NewScatter()
			}
			data := make([]opts.ScatterData, len(s.points))
			for i, p := range s.points {
				data[i] = opts.ScatterData{Value: p, SymbolSize: s.markerSize}
			}
			scatter.AddSeries(s.label, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.color}))
			continue
		}

		data := make([]opts.LineData, len(s.points))
		for i, p := range s.points {
			data[i] = opts.LineData{Value: p}
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{
				ShowSymbol: opts.Bool(s.marker),
			}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Color: s.color,
				Type:  s.lineType,
			}),
		}
		if s.color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.color}))
		}
		line.AddSeries(s.label, data, seriesOpts...)
	}
	if scatter != nil {
		line.Overlap(scatter)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

var _ Canvas = (*HTMLFigure)(nil)
