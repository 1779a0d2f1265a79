package main

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testFiles = []string{
	"../../pkg/xcsv/testdata/short-test-data-1.csv",
	"../../pkg/xcsv/testdata/short-test-data-2.csv",
	"../../pkg/xcsv/testdata/short-test-data-3.csv",
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	var level slog.LevelVar
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: &level}))

	cmd := newRootCmd(&stdout, logger, &level)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestDescribe(t *testing.T) {
	args := append([]string{"--describe", "-x", "0", "-y", "1"}, testFiles...)
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("xcsvplot failed: %v", err)
	}

	for _, want := range []string{"time (year) [a]", "depth (m)", "[2010, 2012, 0.575, 6.725]", "The title"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestDescribeRowIndex(t *testing.T) {
	args := append([]string{"--describe", "-y", "1"}, testFiles...)
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("xcsvplot failed: %v", err)
	}
	if !strings.Contains(out, "[0, 2, 0.575, 6.725]") {
		t.Errorf("Expected a row index extent, got:\n%s", out)
	}
}

func TestPlotToPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "depth.png")
	args := append([]string{"-x", "0", "-y", "1", "--invert-y-axis", "-s", "5,4", "-o", out}, testFiles...)
	if _, err := execute(t, args...); err != nil {
		t.Fatalf("xcsvplot failed: %v", err)
	}

	file, err := os.Open(out)
	if err != nil {
		t.Fatalf("Chart file was not created: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Chart file is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 500 || b.Dy() != 400 {
		t.Errorf("Expected 500x400, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestPlotWithBackground(t *testing.T) {
	dir := t.TempDir()
	bg := filepath.Join(dir, "bg.png")
	file, err := os.Create(bg)
	if err != nil {
		t.Fatalf("Failed to create image: %v", err)
	}
	if err := png.Encode(file, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("Failed to encode image: %v", err)
	}
	file.Close()

	out := filepath.Join(dir, "chart.png")
	args := append([]string{"-x", "0", "-y", "1", "-b", bg, "-o", out}, testFiles...)
	if _, err := execute(t, args...); err != nil {
		t.Fatalf("xcsvplot failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Chart file was not created: %v", err)
	}

	args = append([]string{"-x", "0", "-y", "1", "-b", bg, "-o", filepath.Join(dir, "chart.svg")}, testFiles...)
	if _, err := execute(t, args...); err == nil {
		t.Error("Expected an error for a background on SVG output")
	}
}

func TestPlotToHTML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "depth.html")
	args := append([]string{"-X", "time (year) [a]", "-Y", "depth (m)", "-S", "-o", out}, testFiles...)
	if _, err := execute(t, args...); err != nil {
		t.Fatalf("xcsvplot failed: %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Chart file was not created: %v", err)
	}
	if !strings.Contains(string(content), "echarts") {
		t.Error("HTML file doesn't contain echarts library reference")
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input files", []string{"-o", "out.png"}},
		{"exclusive x flags", append([]string{"-x", "0", "-X", "time (year) [a]", "--describe"}, testFiles...)},
		{"missing file", []string{"--describe", "does-not-exist.csv"}},
		{"missing column", append([]string{"--describe", "-Y", "nope"}, testFiles...)},
		{"index out of range", append([]string{"--describe", "-y", "5"}, testFiles...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestVersion(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		out, err := execute(t, flag)
		if err != nil {
			t.Fatalf("xcsvplot %s failed: %v", flag, err)
		}
		if !strings.Contains(out, version) {
			t.Errorf("%s: expected the version in the output, got %q", flag, out)
		}
	}
}
