package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"SwingSentinel/internal/indicator"
	"SwingSentinel/internal/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func barSeries(t *testing.T, n int) *indicator.Series {
	t.Helper()
	base := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	bars := make(model.BarSeries, n)
	for i := range bars {
		c := 100 + 0.3*float64(i)
		bars[i] = model.Bar{
			Date:   base.AddDate(0, 0, i),
			Open:   c - 0.1,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	s, err := indicator.Compute(bars)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return s
}

func TestTechnicalPNG(t *testing.T) {
	s := barSeries(t, 80)
	signal := s.Bars[len(s.Bars)-1].Date

	png, err := TechnicalPNG(s, "AAPL", signal, 60)
	if err != nil {
		t.Fatalf("TechnicalPNG: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output does not start with the PNG signature")
	}
}

func TestTechnicalPNG_TooFewBars(t *testing.T) {
	s := &indicator.Series{
		Bars:  model.BarSeries{{Date: time.Now(), Close: 100}},
		SMA20: make([]indicator.Value, 1),
		SMA50: make([]indicator.Value, 1),
	}
	if _, err := TechnicalPNG(s, "AAPL", time.Now(), 60); err == nil {
		t.Error("expected error for a single-bar series")
	}
}

func TestSaveSetupChart_PathLayout(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir, 60)
	s := barSeries(t, 80)
	signal := s.Bars[len(s.Bars)-1].Date
	run := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	path, err := g.SaveSetupChart(s, "BRK/B", signal, run)
	if err != nil {
		t.Fatalf("SaveSetupChart: %v", err)
	}
	want := filepath.Join(dir, "2026", "03", "05", "BRK-B", SetupChartFile)
	if path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("written file is not a PNG")
	}
}

func TestPerformancePNG(t *testing.T) {
	base := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)
	var dates []time.Time
	var stock, bench []float64
	for i := 0; i < 40; i++ {
		dates = append(dates, base.AddDate(0, 0, i))
		stock = append(stock, 50+float64(i))
		bench = append(bench, 400+0.5*float64(i))
	}

	png, err := PerformancePNG(dates, stock, bench, "NVDA", "SPY")
	if err != nil {
		t.Fatalf("PerformancePNG: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output does not start with the PNG signature")
	}
}

func TestPerformancePNG_Misaligned(t *testing.T) {
	dates := []time.Time{time.Now(), time.Now().AddDate(0, 0, 1)}
	if _, err := PerformancePNG(dates, []float64{1}, []float64{1, 2}, "A", "SPY"); err == nil {
		t.Error("expected error for misaligned series")
	}
}

func TestRebase(t *testing.T) {
	got := rebase([]float64{50, 55, 45})
	want := []float64{100, 110, 90}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rebase[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
