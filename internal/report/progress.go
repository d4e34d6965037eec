package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"SwingSentinel/internal/chart"
	"SwingSentinel/internal/indicator"
	"SwingSentinel/internal/model"
	"SwingSentinel/internal/provider"
)

// ProgressReporter writes the per-position progress artifacts: a
// one-page PDF pairing the technical and performance views plus a JSON
// sidecar, under baseDir/YYYY/MM/DD/TICKER/.
type ProgressReporter struct {
	baseDir   string
	benchmark string
	provider  provider.BarProvider
	pair      *PairExporter

	technicalBars int // bars shown on the technical chart
	historyDays   int // history fetched so the long average is warm
}

// NewProgressReporter builds a reporter over the given provider.
func NewProgressReporter(baseDir, benchmark string, p provider.BarProvider) *ProgressReporter {
	if baseDir == "" {
		baseDir = "data/progress"
	}
	if benchmark == "" {
		benchmark = "SPY"
	}
	return &ProgressReporter{
		baseDir:       baseDir,
		benchmark:     benchmark,
		provider:      p,
		pair:          NewPairExporter(),
		technicalBars: 90,
		historyDays:   365,
	}
}

// Meta is the JSON sidecar summarizing one progress run.
type Meta struct {
	Ticker                    string  `json:"ticker"`
	RunDate                   string  `json:"run_date"`
	SignalDate                string  `json:"signal_date"`
	Benchmark                 string  `json:"benchmark"`
	StockChangePct            float64 `json:"stock_change_pct"`
	BenchmarkChangePct        float64 `json:"benchmark_change_pct"`
	RelativeOutperformancePct float64 `json:"relative_outperformance_pct"`
	StartClose                float64 `json:"perf_start_close"`
	EndClose                  float64 `json:"perf_end_close"`
	BenchmarkStartClose       float64 `json:"bench_start_close"`
	BenchmarkEndClose         float64 `json:"bench_end_close"`
}

// Save writes report.pdf and meta.json for one open position and
// returns their paths. The position must carry a known entry date; the
// performance window runs from that date to the latest shared bar.
func (r *ProgressReporter) Save(pos model.Position, runDate time.Time) (string, string, error) {
	if pos.EntryDate.IsZero() {
		return "", "", fmt.Errorf("%s: entry date unknown, cannot chart progress", pos.Ticker)
	}

	days := int(runDate.Sub(pos.EntryDate).Hours()/24) + 10
	if days < 30 {
		days = 30
	}
	stock, err := r.fetchSince(pos.Ticker, pos.EntryDate, days)
	if err != nil {
		return "", "", err
	}
	bench, err := r.fetchSince(r.benchmark, pos.EntryDate, days)
	if err != nil {
		return "", "", err
	}

	dates, stockCloses, benchCloses := alignCloses(stock, bench)
	if len(dates) < 2 {
		return "", "", fmt.Errorf("%s: no overlapping dates with %s since %s",
			pos.Ticker, r.benchmark, pos.EntryDate.Format("2006-01-02"))
	}
	stockChange := (stockCloses[len(stockCloses)-1]/stockCloses[0] - 1) * 100
	benchChange := (benchCloses[len(benchCloses)-1]/benchCloses[0] - 1) * 100

	safe := strings.ReplaceAll(pos.Ticker, "/", "-")
	perfPNG, err := chart.PerformancePNG(dates, stockCloses, benchCloses, safe, r.benchmark)
	if err != nil {
		return "", "", err
	}

	history, err := r.provider.FetchDailyBars(pos.Ticker, r.historyDays)
	if err != nil {
		return "", "", fmt.Errorf("fetch %s history: %w", pos.Ticker, err)
	}
	series, err := indicator.Compute(history)
	if err != nil {
		return "", "", fmt.Errorf("%s indicators: %w", pos.Ticker, err)
	}
	techPNG, err := chart.TechnicalPNG(series, pos.Ticker, pos.EntryDate, r.technicalBars)
	if err != nil {
		return "", "", err
	}

	dir := filepath.Join(r.baseDir,
		fmt.Sprintf("%04d", runDate.Year()),
		fmt.Sprintf("%02d", runDate.Month()),
		fmt.Sprintf("%02d", runDate.Day()),
		safe)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("create progress dir: %w", err)
	}

	pdfPath := filepath.Join(dir, "report.pdf")
	subtitle := fmt.Sprintf("Run: %s | Signal: %s | Benchmark: %s | %s %+.2f%% | %s %+.2f%%",
		runDate.Format("2006-01-02"), pos.EntryDate.Format("2006-01-02"),
		r.benchmark, safe, stockChange, r.benchmark, benchChange)
	if err := r.pair.Export(techPNG, perfPNG, pdfPath, safe+" Progress Report", subtitle); err != nil {
		return "", "", err
	}

	meta := Meta{
		Ticker:                    safe,
		RunDate:                   runDate.Format("2006-01-02"),
		SignalDate:                pos.EntryDate.Format("2006-01-02"),
		Benchmark:                 r.benchmark,
		StockChangePct:            stockChange,
		BenchmarkChangePct:        benchChange,
		RelativeOutperformancePct: stockChange - benchChange,
		StartClose:                stockCloses[0],
		EndClose:                  stockCloses[len(stockCloses)-1],
		BenchmarkStartClose:       benchCloses[0],
		BenchmarkEndClose:         benchCloses[len(benchCloses)-1],
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("marshal meta: %w", err)
	}
	jsonPath := filepath.Join(dir, "meta.json")
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return "", "", fmt.Errorf("write meta: %w", err)
	}
	return pdfPath, jsonPath, nil
}

// fetchSince returns the symbol's bars from the given date onward.
func (r *ProgressReporter) fetchSince(symbol string, since time.Time, days int) (model.BarSeries, error) {
	bars, err := r.provider.FetchDailyBars(symbol, days)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	for i, b := range bars {
		if !b.Date.Before(since) {
			return bars[i:], nil
		}
	}
	return nil, nil
}

// alignCloses inner-joins two series on their trading dates.
func alignCloses(stock, bench model.BarSeries) ([]time.Time, []float64, []float64) {
	benchByDay := make(map[int64]float64, len(bench))
	for _, b := range bench {
		benchByDay[b.Date.Unix()] = b.Close
	}
	var dates []time.Time
	var stockCloses, benchCloses []float64
	for _, bar := range stock {
		c, ok := benchByDay[bar.Date.Unix()]
		if !ok {
			continue
		}
		dates = append(dates, bar.Date)
		stockCloses = append(stockCloses, bar.Close)
		benchCloses = append(benchCloses, c)
	}
	return dates, stockCloses, benchCloses
}
