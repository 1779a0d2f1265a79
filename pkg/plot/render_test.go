package plot

import (
	"errors"
	"image"
	"reflect"
	"testing"

	"github.com/brianbland/xcsvplot/pkg/dataset"
)

func TestRenderOrder(t *testing.T) {
	datasets := shortTestDatasets(t)
	params, err := Resolve(datasets, Options{XIndex: Int(0), YIndex: 1, InvertX: true, InvertY: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	c := &recordingCanvas{}
	if err := Render(params, datasets, c, DefaultPalette); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := []string{"title", "caption", "xlabel", "ylabel", "plot", "plot", "plot", "invertx", "inverty", "legend"}
	if !reflect.DeepEqual(c.calls, want) {
		t.Errorf("Expected calls %v, got %v", want, c.calls)
	}
	if c.title != "The title" || c.xlabel != timeCol || c.ylabel != depthCol {
		t.Errorf("Unexpected annotations %q %q %q", c.title, c.xlabel, c.ylabel)
	}
}

func TestRenderSeries(t *testing.T) {
	datasets := shortTestDatasets(t)
	params, err := Resolve(datasets, Options{XIndex: Int(0), YIndex: 1})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	c := &recordingCanvas{}
	if err := Render(params, datasets, c, DefaultPalette); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(c.series) != 3 {
		t.Fatalf("Expected 3 series, got %d", len(c.series))
	}
	for i, s := range c.series {
		if want := string(rune('1' + i)); s.Label != want {
			t.Errorf("Series %d: expected label %q, got %q", i, want, s.Label)
		}
		if s.Style[StyleColor] != DefaultPalette[i] {
			t.Errorf("Series %d: expected color %q, got %q", i, DefaultPalette[i], s.Style[StyleColor])
		}
		if len(s.X) != 3 || s.X[0] != 2012 {
			t.Errorf("Series %d: unexpected x values %v", i, s.X)
		}
	}
	if c.series[2].Y[2] != 6.725 {
		t.Errorf("Expected last depth 6.725, got %v", c.series[2].Y[2])
	}
}

func TestRenderIndexBasedX(t *testing.T) {
	datasets := shortTestDatasets(t)
	params, err := Resolve(datasets, Options{YIndex: 1})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	c := &recordingCanvas{}
	if err := Render(params, datasets, c, DefaultPalette); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, s := range c.series {
		if s.X != nil {
			t.Errorf("Series %d: expected nil x values, got %v", i, s.X)
		}
	}
	if c.count("xlabel") != 0 {
		t.Error("Expected no x label for an index-based x-axis")
	}
}

func TestRenderColorsAreStable(t *testing.T) {
	datasets := shortTestDatasets(t)
	params, err := Resolve(datasets, Options{YIndex: 1})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	colors := func(ds []*dataset.Dataset) []string {
		c := &recordingCanvas{}
		if err := Render(params, ds, c, DefaultPalette); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		var out []string
		for _, s := range c.series {
			out = append(out, s.Style[StyleColor])
		}
		return out
	}

	first := colors(datasets)
	if !reflect.DeepEqual(first, colors(datasets)) {
		t.Error("Colors changed between identical renders")
	}

	// Colors follow position, not content.
	reversed := []*dataset.Dataset{datasets[2], datasets[1], datasets[0]}
	if !reflect.DeepEqual(first, colors(reversed)) {
		t.Error("Colors depend on dataset content")
	}
}

func TestRenderCallerColor(t *testing.T) {
	datasets := shortTestDatasets(t)
	style := Style{StyleColor: "red", StyleMarker: "."}
	params, err := Resolve(datasets, Options{YIndex: 1, Style: style})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	c := &recordingCanvas{}
	if err := Render(params, datasets, c, DefaultPalette); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, s := range c.series {
		if s.Style[StyleColor] != "red" || s.Style[StyleMarker] != "." {
			t.Errorf("Series %d: expected caller style, got %v", i, s.Style)
		}
	}
	if len(style) != 2 {
		t.Errorf("Caller style was modified: %v", style)
	}
}

func TestRenderNoLegendWithoutLabels(t *testing.T) {
	datasets := shortTestDatasets(t)
	params, err := Resolve(datasets, Options{LabelKey: String("non-existent")})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	c := &recordingCanvas{}
	if err := Render(params, datasets, c, DefaultPalette); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if c.count("legend") != 0 {
		t.Error("Expected no legend when no series has a label")
	}
	if c.count("invertx") != 0 || c.count("inverty") != 0 {
		t.Error("Expected no axis inversion")
	}
}

func TestRenderMissingColumnInLaterDataset(t *testing.T) {
	datasets := shortTestDatasets(t)
	other, err := dataset.New([]string{timeCol}, [][]float64{{2000}}, dataset.Metadata{})
	if err != nil {
		t.Fatal(err)
	}
	params, err := Resolve(datasets, Options{YIndex: 1})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	err = Render(params, append(datasets, other), &recordingCanvas{}, DefaultPalette)
	if !errors.Is(err, dataset.ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound, got %v", err)
	}
}

func TestPlotterPlotDatasets(t *testing.T) {
	datasets := shortTestDatasets(t)
	c := &recordingCanvas{}
	p := NewPlotter(c)

	params, err := p.PlotDatasets(datasets, Options{})
	if err != nil {
		t.Fatalf("PlotDatasets failed: %v", err)
	}
	if params.XColumn != "" || params.YColumn != timeCol {
		t.Errorf("Expected x absent and y=%q, got x=%q y=%q", timeCol, params.XColumn, params.YColumn)
	}
	if !reflect.DeepEqual(p.Parameters(), params) {
		t.Error("Parameters() does not echo the last render")
	}
	if len(p.Datasets()) != 3 {
		t.Errorf("Expected 3 datasets, got %d", len(p.Datasets()))
	}

	params, err = p.PlotDatasets(datasets, Options{XIndex: Int(0), YIndex: 1})
	if err != nil {
		t.Fatalf("PlotDatasets failed: %v", err)
	}
	if params.XColumn != timeCol || params.YColumn != depthCol {
		t.Errorf("Expected x=%q y=%q, got x=%q y=%q", timeCol, depthCol, params.XColumn, params.YColumn)
	}

	if _, err := p.PlotDatasets(datasets, Options{XIndex: Int(10), YIndex: 1}); !errors.Is(err, dataset.ErrColumnIndexOutOfRange) {
		t.Errorf("Expected ErrColumnIndexOutOfRange, got %v", err)
	}
	if _, err := p.PlotDatasets(datasets, Options{XColumn: String("dummy"), YIndex: 1}); !errors.Is(err, dataset.ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound, got %v", err)
	}
	// Failed calls leave the echo of the last successful render.
	if p.Parameters().XColumn != timeCol {
		t.Errorf("Expected echo of last successful render, got %+v", p.Parameters())
	}
}

func TestPlotterAddBackground(t *testing.T) {
	datasets := shortTestDatasets(t)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	c := &recordingCanvas{}
	p := NewPlotter(c)
	if err := p.AddBackground(img, nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput before any render, got %v", err)
	}

	if _, err := p.PlotDatasets(datasets, Options{XIndex: Int(0), YIndex: 1, InvertY: true}); err != nil {
		t.Fatalf("PlotDatasets failed: %v", err)
	}
	if err := p.AddBackground(img, nil); err != nil {
		t.Fatalf("AddBackground failed: %v", err)
	}
	want := Extent{Left: 2010, Right: 2012, Bottom: 6.725, Top: 0.575}
	if c.background == nil || *c.background != want {
		t.Errorf("Expected background extent %v, got %v", want, c.background)
	}

	explicit := Extent{Left: 0, Right: 1, Bottom: 0, Top: 1}
	if err := p.AddBackground(img, &explicit); err != nil {
		t.Fatalf("AddBackground failed: %v", err)
	}
	if *c.background != explicit {
		t.Errorf("Expected explicit extent %v, got %v", explicit, *c.background)
	}

	if err := p.AddBackground(nil, nil); err == nil {
		t.Error("Expected error for nil image")
	}
}
