package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"

	"github.com/brianbland/xcsvplot/pkg/analysis"
	"github.com/brianbland/xcsvplot/pkg/config"
	"github.com/brianbland/xcsvplot/pkg/dataset"
	"github.com/brianbland/xcsvplot/pkg/plot"
	"github.com/brianbland/xcsvplot/pkg/visualization"
	"github.com/brianbland/xcsvplot/pkg/xcsv"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	var level slog.LevelVar
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(os.Stdout, logger, &level)
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Error("xcsvplot failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer, logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xcsvplot [flags] in_file...",
		Short: "Plot the given extended CSV files",
		Long: `xcsvplot plots one series per extended CSV file on a shared chart.

Axis labels, the title, the caption and the legend labels are taken from the
files' header sections unless given on the command line. By default the
first column is plotted against the row index.`,
		Example: `  Given input files with the columns 'time (year) [a]' and 'depth (m)',
  plot depth against time:

    xcsvplot -x 0 -y 1 input.csv

  Plot several files as a scatter plot with inverted depth, into a PNG:

    xcsvplot -X 'time (year) [a]' -Y 'depth (m)' -S --invert-y-axis -o depth.png *.csv`,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.Flags().BoolP("version", "V", false, "Print the version and exit")

	parser := config.NewParserWithFlagSet(cmd.Flags())
	parser.RegisterFlags()
	cmd.MarkFlagsMutuallyExclusive("x-index", "x-column")
	cmd.MarkFlagsMutuallyExclusive("y-index", "y-column")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := parser.Finalize(args)
		if err != nil {
			return err
		}
		if cfg.Verbose {
			level.Set(slog.LevelDebug)
		}
		return run(cmd.Context(), cfg, stdout, logger)
	}
	return cmd
}

// run loads the input files and plots, shows or describes them.
func run(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	logger.Debug("reading input files", "files", len(cfg.InputFiles), "workers", cfg.Workers)
	datasets, err := xcsv.ReadFiles(ctx, cfg.InputFiles, cfg.Workers)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if cfg.Describe {
		return describe(stdout, cfg, datasets)
	}

	canvas, err := visualization.NewCanvas(cfg.ChartOptions())
	if err != nil {
		return err
	}

	plotter := plot.NewPlotter(canvas)
	params, err := plotter.PlotDatasets(datasets, cfg.Plot)
	if err != nil {
		return fmt.Errorf("failed to plot: %w", err)
	}
	logger.Debug("plotted datasets",
		"datasets", len(datasets),
		"x", params.XColumn,
		"y", params.YColumn,
		"title", params.Title,
	)

	if cfg.BackgroundImage != "" {
		img, err := visualization.LoadImage(cfg.BackgroundImage)
		if err != nil {
			return err
		}
		if err := plotter.AddBackground(img, nil); err != nil {
			return fmt.Errorf("failed to add background: %w", err)
		}
		logger.Debug("added background image", "path", cfg.BackgroundImage)
	}

	if cfg.OutFile != "" {
		if err := canvas.Save(cfg.OutFile); err != nil {
			return err
		}
		logger.Info("chart saved", "path", cfg.OutFile, "format", cfg.Format)
		return nil
	}
	return show(canvas, logger)
}

// describe prints the resolved parameters, the shared extent and a summary
// of each dataset instead of plotting.
func describe(w io.Writer, cfg *config.Config, datasets []*dataset.Dataset) error {
	params, err := plot.Resolve(datasets, cfg.Plot)
	if err != nil {
		return err
	}
	extent, err := plot.ComputeExtent(datasets, params.XColumn, params.YColumn)
	if err != nil {
		return err
	}
	results, err := analysis.Analyze(params, datasets)
	if err != nil {
		return err
	}

	if err := analysis.PrintParameters(w, params, extent); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return analysis.PrintResults(w, results)
}

// show writes the chart to a temporary PNG and opens it in the platform's
// image viewer.
func show(canvas visualization.Canvas, logger *slog.Logger) error {
	file, err := os.CreateTemp("", "xcsvplot-*.png")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	path := file.Name()
	file.Close()

	if err := canvas.Save(path); err != nil {
		return err
	}
	logger.Info("chart saved", "path", path)

	var viewer *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		viewer = exec.Command("open", path)
	case "windows":
		viewer = exec.Command("cmd", "/c", "start", "", path)
	default:
		viewer = exec.Command("xdg-open", path)
	}
	if err := viewer.Start(); err != nil {
		return fmt.Errorf("failed to open viewer: %w", err)
	}
	return nil
}
