package visualization

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/brianbland/xcsvplot/pkg/plot"
)

// Format is an output file format.
type Format string

const (
	PNG  Format = "png"
	SVG  Format = "svg"
	HTML Format = "html"
)

// FormatFromPath picks the output format from a file name's extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case PNG, SVG, HTML:
		return Format(ext), nil
	case "htm":
		return HTML, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want .png, .svg or .html)", filepath.Ext(path))
}

// Canvas is a plot.Canvas that can be written out.
type Canvas interface {
	plot.Canvas

	// Render writes the figure to w.
	Render(w io.Writer) error
	// Save writes the figure to the file at path.
	Save(path string) error
}

// Figure sizes are given in inches, as on the command line.
const (
	PixelsPerInch = 100
	DefaultWidth  = 640
	DefaultHeight = 480
)

// ChartOptions contains size and format options for a new canvas.
type ChartOptions struct {
	Width  int
	Height int
	Format Format
}

// NewCanvas creates an empty canvas for the given options. Zero sizes use
// the defaults.
func NewCanvas(opts ChartOptions) (Canvas, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	switch opts.Format {
	case PNG, SVG, "":
		f := NewFigure(opts.Width, opts.Height)
		if opts.Format == SVG {
			f.Format = SVG
		}
		return f, nil
	case HTML:
		return NewHTMLFigure(opts.Width, opts.Height), nil
	}
	return nil, fmt.Errorf("unsupported output format %q", opts.Format)
}

// indexValues returns 0, 1, ..., n-1 for series plotted against row index.
func indexValues(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}
