package plot

import "image"

// Canvas is a drawing surface for one figure. Implementations live in
// package visualization; a Canvas is not safe for concurrent use.
type Canvas interface {
	SetTitle(title string)
	SetCaption(caption string)
	SetXLabel(label string)
	SetYLabel(label string)

	// Plot draws one series. A nil X means the row index is used.
	Plot(s Series) error

	// InvertXAxis and InvertYAxis mark an axis as drawn inverted. Calling
	// them more than once has no further effect.
	InvertXAxis()
	InvertYAxis()

	ShowLegend()

	// Background draws img behind the data, stretched over e.
	Background(img image.Image, e Extent) error
}

// Series is one dataset's line as handed to a Canvas.
type Series struct {
	Label string
	X     []float64
	Y     []float64
	Style Style
}
