package plot

import (
	"fmt"
	"image"
	"testing"

	"github.com/brianbland/xcsvplot/pkg/dataset"
)

const (
	timeCol  = "time (year) [a]"
	depthCol = "depth (m)"
)

// shortTestDatasets mirrors the three short test files: years 2012..2010
// and depths spanning 0.575..6.725.
func shortTestDatasets(t *testing.T) []*dataset.Dataset {
	t.Helper()

	depths := [][]float64{
		{0.575, 1.125, 2.225},
		{1.775, 2.825, 4.375},
		{2.975, 4.525, 6.725},
	}

	var datasets []*dataset.Dataset
	for i, d := range depths {
		var md dataset.Metadata
		md.Add("id", fmt.Sprint(i+1))
		md.Add("title", "The title")
		if i == 0 {
			md.Add("citation", "Doe, J. (2022)")
		}
		ds, err := dataset.New([]string{timeCol, depthCol}, [][]float64{{2012, 2011, 2010}, d}, md)
		if err != nil {
			t.Fatalf("dataset.New failed: %v", err)
		}
		datasets = append(datasets, ds)
	}
	return datasets
}

// recordingCanvas is a Canvas that logs every call in order.
type recordingCanvas struct {
	calls      []string
	series     []Series
	title      string
	caption    string
	xlabel     string
	ylabel     string
	background *Extent
}

func (c *recordingCanvas) SetTitle(title string) {
	c.title = title
	c.calls = append(c.calls, "title")
}

func (c *recordingCanvas) SetCaption(caption string) {
	c.caption = caption
	c.calls = append(c.calls, "caption")
}

func (c *recordingCanvas) SetXLabel(label string) {
	c.xlabel = label
	c.calls = append(c.calls, "xlabel")
}

func (c *recordingCanvas) SetYLabel(label string) {
	c.ylabel = label
	c.calls = append(c.calls, "ylabel")
}

func (c *recordingCanvas) Plot(s Series) error {
	c.series = append(c.series, s)
	c.calls = append(c.calls, "plot")
	return nil
}

func (c *recordingCanvas) InvertXAxis() { c.calls = append(c.calls, "invertx") }
func (c *recordingCanvas) InvertYAxis() { c.calls = append(c.calls, "inverty") }
func (c *recordingCanvas) ShowLegend()  { c.calls = append(c.calls, "legend") }

func (c *recordingCanvas) Background(img image.Image, e Extent) error {
	c.background = &e
	c.calls = append(c.calls, "background")
	return nil
}

func (c *recordingCanvas) count(call string) int {
	n := 0
	for _, got := range c.calls {
		if got == call {
			n++
		}
	}
	return n
}
