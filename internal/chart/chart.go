// Package chart renders scan artifacts as PNG images: the per-signal
// setup chart and the position progress comparison against a benchmark.
package chart

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"SwingSentinel/internal/indicator"
	"SwingSentinel/internal/model"
)

// SetupChartFile is the filename of the per-ticker setup chart.
const SetupChartFile = "pullback_setup.png"

// Generator writes setup charts under a date-partitioned tree:
// baseDir/YYYY/MM/DD/TICKER/pullback_setup.png.
type Generator struct {
	baseDir  string
	lookback int
}

// NewGenerator builds a Generator. An empty baseDir defaults to
// data/charts and a non-positive lookback to the last 180 bars.
func NewGenerator(baseDir string, lookback int) *Generator {
	if baseDir == "" {
		baseDir = "data/charts"
	}
	if lookback <= 0 {
		lookback = 180
	}
	return &Generator{baseDir: baseDir, lookback: lookback}
}

// DayDir returns the dated directory the charts of one run land in.
func (g *Generator) DayDir(runDate time.Time) string {
	return filepath.Join(g.baseDir,
		fmt.Sprintf("%04d", runDate.Year()),
		fmt.Sprintf("%02d", runDate.Month()),
		fmt.Sprintf("%02d", runDate.Day()))
}

// SaveSetupChart renders the ticker's technical chart and writes it to
// the run-date directory, returning the written path.
func (g *Generator) SaveSetupChart(s *indicator.Series, ticker string, signalDate, runDate time.Time) (string, error) {
	png, err := TechnicalPNG(s, ticker, signalDate, g.lookback)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(g.DayDir(runDate), safeTicker(ticker))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(dir, SetupChartFile)
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	return path, nil
}

// TechnicalPNG renders the last lookback bars as close price with
// SMA20/SMA50 overlays and volume on the secondary axis. The signal
// date is marked with a dashed vertical line.
func TechnicalPNG(s *indicator.Series, ticker string, signalDate time.Time, lookback int) ([]byte, error) {
	n := len(s.Bars)
	if n < 2 {
		return nil, fmt.Errorf("%s: %d bars, need at least 2 to plot", ticker, n)
	}
	start := 0
	if lookback > 0 && n > lookback {
		start = n - lookback
	}

	xs := make([]time.Time, 0, n-start)
	closes := make([]float64, 0, n-start)
	volumes := make([]float64, 0, n-start)
	for _, b := range s.Bars[start:] {
		xs = append(xs, b.Date)
		closes = append(closes, b.Close)
		volumes = append(volumes, b.Volume)
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    "Close",
			XValues: xs,
			YValues: closes,
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.5},
		},
		chart.TimeSeries{
			Name:    "Volume",
			YAxis:   chart.YAxisSecondary,
			XValues: xs,
			YValues: volumes,
			Style: chart.Style{
				StrokeColor: chart.ColorAlternateGray,
				FillColor:   chart.ColorAlternateGray.WithAlpha(64),
			},
		},
	}
	if smaX, smaY := validPoints(s.Bars, s.SMA20, start); len(smaX) >= 2 {
		series = append(series, chart.TimeSeries{
			Name:    "SMA20",
			XValues: smaX,
			YValues: smaY,
			Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeDashArray: []float64{5.0, 5.0}},
		})
	}
	if smaX, smaY := validPoints(s.Bars, s.SMA50, start); len(smaX) >= 2 {
		series = append(series, chart.TimeSeries{
			Name:    "SMA50",
			XValues: smaX,
			YValues: smaY,
			Style:   chart.Style{StrokeColor: chart.ColorOrange, StrokeDashArray: []float64{5.0, 5.0}},
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s - Pullback Setup", ticker),
		Width:  1024,
		Height: 600,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
			GridLines:      []chart.GridLine{{Value: chart.TimeToFloat64(signalDate)}},
			GridMajorStyle: chart.Style{
				StrokeColor:     chart.ColorRed,
				StrokeWidth:     1.0,
				StrokeDashArray: []float64{3.0, 3.0},
			},
		},
		YAxis:          chart.YAxis{Name: "Price"},
		YAxisSecondary: chart.YAxis{Name: "Volume"},
		Series:         series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s chart: %w", ticker, err)
	}
	return buf.Bytes(), nil
}

// PerformancePNG renders two aligned close series rebased to 100 at the
// first date, for judging a position against its benchmark.
func PerformancePNG(dates []time.Time, stock, bench []float64, ticker, benchmark string) ([]byte, error) {
	if len(dates) < 2 || len(stock) != len(dates) || len(bench) != len(dates) {
		return nil, fmt.Errorf("performance series misaligned: %d dates, %d stock, %d benchmark",
			len(dates), len(stock), len(bench))
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s vs %s (start = 100)", ticker, benchmark),
		Width:  1024,
		Height: 520,
		XAxis:  chart.XAxis{ValueFormatter: chart.TimeValueFormatter},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    ticker,
				XValues: dates,
				YValues: rebase(stock),
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.5},
			},
			chart.TimeSeries{
				Name:    benchmark,
				XValues: dates,
				YValues: rebase(bench),
				Style:   chart.Style{StrokeColor: chart.ColorAlternateGray, StrokeDashArray: []float64{5.0, 5.0}},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s performance chart: %w", ticker, err)
	}
	return buf.Bytes(), nil
}

// validPoints extracts the defined stretch of a rolling column, skipping
// indices where the window has not filled.
func validPoints(bars model.BarSeries, col []indicator.Value, start int) ([]time.Time, []float64) {
	xs := make([]time.Time, 0, len(bars)-start)
	ys := make([]float64, 0, len(bars)-start)
	for i := start; i < len(bars); i++ {
		if !col[i].Valid {
			continue
		}
		xs = append(xs, bars[i].Date)
		ys = append(ys, col[i].Float64)
	}
	return xs, ys
}

func rebase(values []float64) []float64 {
	out := make([]float64, len(values))
	base := values[0]
	if base == 0 {
		copy(out, values)
		return out
	}
	for i, v := range values {
		out[i] = v / base * 100
	}
	return out
}

func safeTicker(ticker string) string {
	return strings.ReplaceAll(ticker, "/", "-")
}
