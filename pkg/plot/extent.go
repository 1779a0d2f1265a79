package plot

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/brianbland/xcsvplot/pkg/dataset"
)

// Extent is a bounding box in data coordinates, in the order
// [left, right, bottom, top] used for placing background images.
type Extent struct {
	Left   float64
	Right  float64
	Bottom float64
	Top    float64
}

// Inverted returns e with the horizontal and/or vertical bounds swapped, to
// match axes that are drawn inverted.
func (e Extent) Inverted(x, y bool) Extent {
	if x {
		e.Left, e.Right = e.Right, e.Left
	}
	if y {
		e.Bottom, e.Top = e.Top, e.Bottom
	}
	return e
}

// Slice returns the extent as [left, right, bottom, top].
func (e Extent) Slice() []float64 {
	return []float64{e.Left, e.Right, e.Bottom, e.Top}
}

func (e Extent) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", e.Left, e.Right, e.Bottom, e.Top)
}

// ComputeExtent returns the extent over which the datasets range.
//
// If xColumn is empty the x-axis is the row index, so the horizontal range
// is [0, longest dataset length - 1]. Otherwise the horizontal range is the
// min/max of xColumn over all datasets. The vertical range is always the
// min/max of yColumn. Each axis is reduced independently. Missing values
// (NaN) are ignored; an axis column with no other values fails with
// ErrNoValues.
func ComputeExtent(datasets []*dataset.Dataset, xColumn, yColumn string) (Extent, error) {
	if len(datasets) == 0 {
		return Extent{}, ErrEmptyInput
	}

	var xs, ys []float64
	lastIndex := 0
	for i, ds := range datasets {
		y, err := ds.Column(yColumn)
		if err != nil {
			return Extent{}, fmt.Errorf("dataset %d: %w", i, err)
		}
		ys = appendFinite(ys, y)

		if xColumn == "" {
			if n := ds.Len() - 1; n > lastIndex {
				lastIndex = n
			}
			continue
		}

		x, err := ds.Column(xColumn)
		if err != nil {
			return Extent{}, fmt.Errorf("dataset %d: %w", i, err)
		}
		xs = appendFinite(xs, x)
	}

	if len(ys) == 0 {
		return Extent{}, fmt.Errorf("column %q: %w", yColumn, ErrNoValues)
	}
	var e Extent
	e.Bottom, e.Top = stats.Bounds(ys)
	if xColumn == "" {
		e.Left, e.Right = 0, float64(lastIndex)
		return e, nil
	}
	if len(xs) == 0 {
		return Extent{}, fmt.Errorf("column %q: %w", xColumn, ErrNoValues)
	}
	e.Left, e.Right = stats.Bounds(xs)
	return e, nil
}

func appendFinite(dst, values []float64) []float64 {
	for _, v := range values {
		if !math.IsNaN(v) {
			dst = append(dst, v)
		}
	}
	return dst
}
