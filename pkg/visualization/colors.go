package visualization

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brianbland/xcsvplot/pkg/plot"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// transparent is non-zero so go-chart does not replace it with a default.
var transparent = drawing.Color{R: 1, G: 1, B: 1, A: 0}

var namedColors = map[string]string{
	"b":       "0000ff",
	"blue":    "0000ff",
	"g":       "008000",
	"green":   "008000",
	"r":       "ff0000",
	"red":     "ff0000",
	"c":       "00bfbf",
	"cyan":    "00ffff",
	"m":       "bf00bf",
	"magenta": "ff00ff",
	"y":       "bfbf00",
	"yellow":  "ffff00",
	"k":       "000000",
	"black":   "000000",
	"w":       "ffffff",
	"white":   "ffffff",
	"gray":    "808080",
	"grey":    "808080",
	"orange":  "ffa500",
	"purple":  "800080",
	"brown":   "a52a2a",
	"pink":    "ffc0cb",
}

// ParseColor accepts "#rgb", "#rrggbb", single-letter and common colour
// names, and "C0".."C9" references into the default palette.
func ParseColor(s string) (drawing.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[name]; ok {
		return drawing.ColorFromHex(hex), nil
	}

	if len(name) > 1 && name[0] == 'c' {
		if i, err := strconv.Atoi(name[1:]); err == nil && i >= 0 {
			name = plot.DefaultPalette.Color(i)
		}
	}

	hex := strings.TrimPrefix(name, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return drawing.Color{}, fmt.Errorf("invalid color %q", s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return drawing.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return drawing.ColorFromHex(hex), nil
}

// cssColor formats c for use in HTML output.
func cssColor(c drawing.Color) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, float64(c.A)/255)
}

// seriesColor resolves the colour and alpha of a series style. ok is false
// when the style leaves the colour to the chart library.
func seriesColor(st plot.Style) (c drawing.Color, ok bool, err error) {
	v, set := st[plot.StyleColor]
	if !set || v == "" {
		return drawing.Color{}, false, nil
	}
	if c, err = ParseColor(v); err != nil {
		return drawing.Color{}, false, err
	}

	alpha, err := st.Float(plot.StyleAlpha, 1)
	if err != nil {
		return drawing.Color{}, false, err
	}
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(alpha*255 + 0.5)
	return c, true, nil
}
