package plot

// Palette is a cycle of series colours, indexed by a series' position.
type Palette []string

// DefaultPalette is the ten-colour "tab10" cycle.
var DefaultPalette = Palette{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#7f7f7f",
	"#bcbd22",
	"#17becf",
}

// Color returns the colour for the series at position i. The result depends
// only on i, never on the series' data.
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		p = DefaultPalette
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}
