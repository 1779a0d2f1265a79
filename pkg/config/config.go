package config

import (
	"fmt"
	"math"

	"github.com/brianbland/xcsvplot/pkg/plot"
	"github.com/brianbland/xcsvplot/pkg/visualization"
	"github.com/spf13/pflag"
)

// Default figure size in inches.
const (
	DefaultFigWidth  = 6.4
	DefaultFigHeight = 4.8
)

// Config holds everything needed for one plotting run
type Config struct {
	InputFiles []string // Extended CSV files to plot, in legend order

	Plot plot.Options // Axis selection, annotations and draw style

	Width  int // Figure width in pixels
	Height int // Figure height in pixels

	BackgroundImage string               // Image drawn behind the data, if any
	OutFile         string               // Output file; empty shows a temporary PNG
	Format          visualization.Format // Output format, derived from OutFile

	Workers  int  // Concurrent file readers (0 = one per CPU)
	Describe bool // Print the resolved parameters instead of plotting
	Verbose  bool // Debug logging
}

// Default returns a configuration with sensible defaults
func Default() Config {
	return Config{
		Plot: plot.Options{
			YIndex: 0,
		},
		Width:  int(math.Round(DefaultFigWidth * visualization.PixelsPerInch)),
		Height: int(math.Round(DefaultFigHeight * visualization.PixelsPerInch)),
		Format: visualization.PNG,
	}
}

// ChartOptions returns the canvas options for c.
func (c *Config) ChartOptions() visualization.ChartOptions {
	return visualization.ChartOptions{
		Width:  c.Width,
		Height: c.Height,
		Format: c.Format,
	}
}

// Parser handles command-line flag parsing
type Parser struct {
	config  *Config
	flagSet *pflag.FlagSet

	xIndex      int
	xColumn     string
	yColumn     string
	xLabel      string
	yLabel      string
	title       string
	caption     string
	labelKey    string
	figsize     []float64
	plotOptions string
	scatter     bool
}

// NewParser creates a parser with its own flag set
func NewParser() *Parser {
	return NewParserWithFlagSet(pflag.NewFlagSet("xcsvplot", pflag.ContinueOnError))
}

// NewParserWithFlagSet creates a parser that registers its flags on fs,
// such as the flag set of a cobra command.
func NewParserWithFlagSet(fs *pflag.FlagSet) *Parser {
	config := Default()
	return &Parser{
		config:  &config,
		flagSet: fs,
	}
}

// FlagSet returns the flag set the parser registers on.
func (p *Parser) FlagSet() *pflag.FlagSet {
	return p.flagSet
}

// RegisterFlags registers all command-line flags
func (p *Parser) RegisterFlags() {
	fs := p.flagSet

	// Axis selection
	fs.IntVarP(&p.xIndex, "x-index", "x", 0, "Column index (zero-based) containing values for the x-axis")
	fs.StringVarP(&p.xColumn, "x-column", "X", "", "Column label containing values for the x-axis")
	fs.IntVarP(&p.config.Plot.YIndex, "y-index", "y", p.config.Plot.YIndex, "Column index (zero-based) containing values for the y-axis")
	fs.StringVarP(&p.yColumn, "y-column", "Y", "", "Column label containing values for the y-axis")

	// Annotations
	fs.StringVar(&p.xLabel, "x-label", "", "Text to be used for the plot x-axis label")
	fs.StringVar(&p.yLabel, "y-label", "", "Text to be used for the plot y-axis label")
	fs.BoolVar(&p.config.Plot.InvertX, "invert-x-axis", false, "Invert the x-axis")
	fs.BoolVar(&p.config.Plot.InvertY, "invert-y-axis", false, "Invert the y-axis")
	fs.StringVar(&p.title, "title", "", "Text to be used for the plot title (default: the 'title' header item)")
	fs.StringVar(&p.caption, "caption", "", "Text to be used for the plot caption (default: the 'citation' header item)")
	fs.StringVar(&p.labelKey, "label-key", plot.DefaultLabelKey, "Header item whose value labels each dataset in the legend")

	// Figure and output
	fs.Float64SliceVarP(&p.figsize, "figsize", "s", []float64{DefaultFigWidth, DefaultFigHeight}, "Size of the figure in inches (width,height)")
	fs.StringVarP(&p.config.BackgroundImage, "background-image", "b", "", "Path to an image to show in the background of the plot")
	fs.StringVarP(&p.config.OutFile, "out-file", "o", "", "Output plot file (.png, .svg or .html); shown in a viewer if omitted")
	fs.StringVarP(&p.plotOptions, "plot-options", "P", "", `Options for the plot as a JSON object, e.g. '{"color": "red", "lw": 2}'`)
	fs.BoolVarP(&p.scatter, "scatter-plot", "S", false, "Produce a scatter plot (markers only, no lines)")

	// Run control
	fs.BoolVar(&p.config.Describe, "describe", false, "Print the resolved plot parameters and data extent instead of plotting")
	fs.IntVar(&p.config.Workers, "workers", 0, "Number of files read concurrently (0 = one per CPU)")
	fs.BoolVar(&p.config.Verbose, "verbose", false, "Enable debug logging")
}

// Parse parses command-line arguments and returns configuration
func (p *Parser) Parse(args []string) (*Config, error) {
	p.RegisterFlags()

	if err := p.flagSet.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	return p.Finalize(p.flagSet.Args())
}

// Finalize builds the configuration from flags that have already been
// parsed and the positional input files.
func (p *Parser) Finalize(inputFiles []string) (*Config, error) {
	c := p.config
	c.InputFiles = append([]string(nil), inputFiles...)

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	// Only flags given on the command line override header values; an
	// explicitly empty value is still an override.
	fs := p.flagSet
	if fs.Changed("x-index") {
		c.Plot.XIndex = plot.Int(p.xIndex)
	}
	stringOverrides := []struct {
		name  string
		value string
		dst   **string
	}{
		{"x-column", p.xColumn, &c.Plot.XColumn},
		{"y-column", p.yColumn, &c.Plot.YColumn},
		{"x-label", p.xLabel, &c.Plot.XLabel},
		{"y-label", p.yLabel, &c.Plot.YLabel},
		{"title", p.title, &c.Plot.Title},
		{"caption", p.caption, &c.Plot.Caption},
		{"label-key", p.labelKey, &c.Plot.LabelKey},
	}
	for _, o := range stringOverrides {
		if fs.Changed(o.name) {
			*o.dst = plot.String(o.value)
		}
	}

	c.Width = int(math.Round(p.figsize[0] * visualization.PixelsPerInch))
	c.Height = int(math.Round(p.figsize[1] * visualization.PixelsPerInch))

	// The scatter preset applies first so explicit plot options can
	// refine it.
	style := plot.Style{}
	if p.scatter {
		style = plot.ScatterStyle()
	}
	if p.plotOptions != "" {
		user, err := plot.ParseStyle(p.plotOptions)
		if err != nil {
			return nil, err
		}
		for k, v := range user {
			style[k] = v
		}
	}
	if len(style) > 0 {
		c.Plot.Style = style
	}

	c.Format = visualization.PNG
	if c.OutFile != "" {
		format, err := visualization.FormatFromPath(c.OutFile)
		if err != nil {
			return nil, err
		}
		c.Format = format
	}

	return c, nil
}

// Validate validates the configuration parameters
func (p *Parser) Validate() error {
	c := p.config
	fs := p.flagSet

	if len(c.InputFiles) == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	exclusive := [][2]string{
		{"x-index", "x-column"},
		{"y-index", "y-column"},
	}
	for _, pair := range exclusive {
		if fs.Changed(pair[0]) && fs.Changed(pair[1]) {
			return fmt.Errorf("--%s cannot be combined with --%s", pair[0], pair[1])
		}
	}

	if fs.Changed("x-index") && p.xIndex < 0 {
		return fmt.Errorf("x index (%d) must not be negative", p.xIndex)
	}
	if c.Plot.YIndex < 0 {
		return fmt.Errorf("y index (%d) must not be negative", c.Plot.YIndex)
	}

	if len(p.figsize) != 2 {
		return fmt.Errorf("figsize needs a width and a height, got %d values", len(p.figsize))
	}
	for _, v := range p.figsize {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("figsize (%v) must be positive", p.figsize)
		}
	}

	if p.plotOptions != "" {
		if _, err := plot.ParseStyle(p.plotOptions); err != nil {
			return err
		}
	}

	if c.OutFile != "" {
		if _, err := visualization.FormatFromPath(c.OutFile); err != nil {
			return err
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers (%d) must not be negative", c.Workers)
	}

	return nil
}
