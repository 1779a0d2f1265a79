package plot

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Style keys understood by the canvases in this module.
const (
	StyleColor      = "color"
	StyleMarker     = "marker"
	StyleLineStyle  = "linestyle"
	StyleLineWidth  = "linewidth"
	StyleMarkerSize = "markersize"
	StyleAlpha      = "alpha"
)

var styleAliases = map[string]string{
	"c":  StyleColor,
	"ls": StyleLineStyle,
	"lw": StyleLineWidth,
	"ms": StyleMarkerSize,
}

// Style is a free-form set of draw attributes applied to every series,
// e.g. {"color": "red", "marker": "."}.
type Style map[string]string

// ScatterStyle returns the draw attributes for a marker-only plot.
func ScatterStyle() Style {
	return Style{StyleMarker: ".", StyleLineStyle: "none"}
}

// ParseStyle parses a JSON object of draw attributes. Non-string values are
// formatted as text and the short aliases c, ls, lw and ms are expanded.
func ParseStyle(s string) (Style, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("invalid plot options: %w", err)
	}

	style := make(Style, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case string:
			style[k] = v
		case float64:
			style[k] = strconv.FormatFloat(v, 'g', -1, 64)
		case bool:
			style[k] = strconv.FormatBool(v)
		case nil:
			style[k] = ""
		default:
			return nil, fmt.Errorf("invalid plot option %q: unsupported value %v", k, v)
		}
	}
	return style.Normalize(), nil
}

// Normalize returns a copy of s with aliased keys expanded. An explicit
// long key wins over its alias.
func (s Style) Normalize() Style {
	out := make(Style, len(s))
	for k, v := range s {
		if long, ok := styleAliases[k]; ok {
			if _, set := s[long]; set {
				continue
			}
			k = long
		}
		out[k] = v
	}
	return out
}

// Clone returns a copy of s that is never nil.
func (s Style) Clone() Style {
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Has reports whether key is set.
func (s Style) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Float returns the numeric value of key, or def if it is unset.
func (s Style) Float(key string, def float64) (float64, error) {
	v, ok := s[key]
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func (s Style) String() string {
	b, _ := json.Marshal(s)
	return string(b)
}
