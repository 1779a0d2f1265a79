package analysis

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/aclements/go-moremath/stats"
	"github.com/brianbland/xcsvplot/pkg/dataset"
	"github.com/brianbland/xcsvplot/pkg/plot"
)

// Result summarises the plotted columns of one dataset
type Result struct {
	Label   string
	Rows    int
	Missing int // Rows with a missing x or y value

	XMin, XMax float64 // Row index bounds when no x column is used
	YMin, YMax float64
	YMean      float64
	YStdDev    float64
}

// Analyze summarises each dataset for the resolved parameters.
func Analyze(params plot.Parameters, datasets []*dataset.Dataset) ([]Result, error) {
	results := make([]Result, 0, len(datasets))
	for i, ds := range datasets {
		r, err := analyzeDataset(params, ds)
		if err != nil {
			return nil, fmt.Errorf("dataset %d: %w", i, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func analyzeDataset(params plot.Parameters, ds *dataset.Dataset) (Result, error) {
	ys, err := ds.Column(params.YColumn)
	if err != nil {
		return Result{}, err
	}

	var xs []float64
	if params.HasX() {
		if xs, err = ds.Column(params.XColumn); err != nil {
			return Result{}, err
		}
	}

	r := Result{
		Label: dataset.HeaderItem(ds, params.LabelKey),
		Rows:  ds.Len(),
	}

	var fx, fy []float64
	for i, y := range ys {
		x := float64(i)
		if xs != nil {
			x = xs[i]
		}
		if math.IsNaN(x) || math.IsNaN(y) {
			r.Missing++
			continue
		}
		fx = append(fx, x)
		fy = append(fy, y)
	}

	nan := math.NaN()
	r.XMin, r.XMax, r.YMin, r.YMax, r.YMean, r.YStdDev = nan, nan, nan, nan, nan, nan
	if len(fy) > 0 {
		r.XMin, r.XMax = stats.Bounds(fx)
		r.YMin, r.YMax = stats.Bounds(fy)
		r.YMean = stats.Mean(fy)
	}
	if len(fy) > 1 {
		r.YStdDev = stats.StdDev(fy)
	}
	return r, nil
}

// PrintParameters writes the resolved plot parameters and shared extent
func PrintParameters(w io.Writer, params plot.Parameters, extent plot.Extent) error {
	x := params.XColumn
	if !params.HasX() {
		x = "(row index)"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Parameter\tValue")
	fmt.Fprintf(tw, "x column\t%s\n", x)
	fmt.Fprintf(tw, "y column\t%s\n", params.YColumn)
	fmt.Fprintf(tw, "x label\t%s\n", oneLine(params.XLabel))
	fmt.Fprintf(tw, "y label\t%s\n", oneLine(params.YLabel))
	fmt.Fprintf(tw, "title\t%s\n", oneLine(params.Title))
	fmt.Fprintf(tw, "caption\t%s\n", oneLine(params.Caption))
	fmt.Fprintf(tw, "label key\t%s\n", params.LabelKey)
	fmt.Fprintf(tw, "invert axes\tx=%t y=%t\n", params.InvertX, params.InvertY)
	if len(params.Style) > 0 {
		fmt.Fprintf(tw, "plot options\t%s\n", params.Style)
	}
	fmt.Fprintf(tw, "extent\t%s\n", extent)
	return tw.Flush()
}

// PrintResults writes one row per dataset
func PrintResults(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Label\tRows\tMissing\tX Range\tY Range\tY Mean\tY Std Dev")

	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
			r.Label,
			r.Rows,
			r.Missing,
			formatRange(r.XMin, r.XMax),
			formatRange(r.YMin, r.YMax),
			formatValue(r.YMean),
			formatValue(r.YStdDev),
		)
	}
	return tw.Flush()
}

func formatRange(min, max float64) string {
	if math.IsNaN(min) {
		return "-"
	}
	return fmt.Sprintf("%g - %g", min, max)
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}

// oneLine keeps multi-line header values on a single table row.
func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " / ")
}
