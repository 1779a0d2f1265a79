package plot

import (
	"fmt"
	"image"

	"github.com/brianbland/xcsvplot/pkg/dataset"
)

// Render draws datasets onto c according to params.
//
// Annotations are applied once, then each dataset is drawn in order. Unless
// params.Style fixes a colour, series i is drawn in palette.Color(i). A
// legend is added only when at least one series has a label.
func Render(params Parameters, datasets []*dataset.Dataset, c Canvas, palette Palette) error {
	if len(datasets) == 0 {
		return ErrEmptyInput
	}

	c.SetTitle(params.Title)
	if params.Caption != "" {
		c.SetCaption(params.Caption)
	}
	if params.XLabel != "" {
		c.SetXLabel(params.XLabel)
	}
	if params.YLabel != "" {
		c.SetYLabel(params.YLabel)
	}

	generateColors := !params.Style.Has(StyleColor)
	labelled := false

	for i, ds := range datasets {
		s := Series{
			Label: dataset.HeaderItem(ds, params.LabelKey),
			Style: params.Style.Clone(),
		}
		if generateColors {
			s.Style[StyleColor] = palette.Color(i)
		}

		var err error
		if s.Y, err = ds.Column(params.YColumn); err != nil {
			return fmt.Errorf("dataset %d: %w", i, err)
		}
		if params.HasX() {
			if s.X, err = ds.Column(params.XColumn); err != nil {
				return fmt.Errorf("dataset %d: %w", i, err)
			}
		}

		if err := c.Plot(s); err != nil {
			return fmt.Errorf("failed to plot dataset %d: %w", i, err)
		}
		if s.Label != "" {
			labelled = true
		}
	}

	if params.InvertX {
		c.InvertXAxis()
	}
	if params.InvertY {
		c.InvertYAxis()
	}
	if labelled {
		c.ShowLegend()
	}
	return nil
}

// Plotter renders datasets onto a canvas and remembers what it last drew.
type Plotter struct {
	Canvas  Canvas
	Palette Palette

	datasets []*dataset.Dataset
	params   Parameters
}

// NewPlotter creates a plotter drawing onto c with the default palette.
func NewPlotter(c Canvas) *Plotter {
	return &Plotter{
		Canvas:  c,
		Palette: DefaultPalette,
	}
}

// PlotDatasets resolves opts against datasets and renders them.
func (p *Plotter) PlotDatasets(datasets []*dataset.Dataset, opts Options) (Parameters, error) {
	params, err := Resolve(datasets, opts)
	if err != nil {
		return Parameters{}, err
	}
	if err := Render(params, datasets, p.Canvas, p.Palette); err != nil {
		return Parameters{}, err
	}

	p.datasets = append([]*dataset.Dataset(nil), datasets...)
	p.params = params
	return params, nil
}

// Datasets returns the datasets of the last successful PlotDatasets call.
func (p *Plotter) Datasets() []*dataset.Dataset {
	return p.datasets
}

// Parameters returns the parameters of the last successful PlotDatasets call.
func (p *Plotter) Parameters() Parameters {
	return p.params
}

// AddBackground draws img behind the plotted data. With a nil extent the
// image covers the full data extent of the last render, with bounds swapped
// on inverted axes so the image keeps its orientation on screen.
func (p *Plotter) AddBackground(img image.Image, extent *Extent) error {
	if img == nil {
		return fmt.Errorf("no background image")
	}

	var e Extent
	if extent != nil {
		e = *extent
	} else {
		if len(p.datasets) == 0 {
			return fmt.Errorf("background extent: %w", ErrEmptyInput)
		}
		computed, err := ComputeExtent(p.datasets, p.params.XColumn, p.params.YColumn)
		if err != nil {
			return fmt.Errorf("background extent: %w", err)
		}
		e = computed.Inverted(p.params.InvertX, p.params.InvertY)
	}

	return p.Canvas.Background(img, e)
}
