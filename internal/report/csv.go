// Package report writes the scan's flat-file artifacts: the results
// CSV, the chart gallery PDF, and per-position progress reports.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"SwingSentinel/internal/model"
)

var csvHeader = []string{
	"ticker", "has_signal_today", "last_date", "most_recent_signal_date",
	"signals_in_lookback", "relative_strength", "rank",
}

// WriteCSV writes one row per scanned ticker, preserving scan order.
// Relative strength and rank stay empty for tickers that were not ranked.
func WriteCSV(path string, records []model.SignalRecord, ranked []model.RankedSignal) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	byTicker := make(map[string]model.RankedSignal, len(ranked))
	for _, r := range ranked {
		byTicker[r.Ticker] = r
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Ticker,
			strconv.FormatBool(rec.HasSignalToday),
			rec.LastDate.Format("2006-01-02"),
			"",
			strconv.Itoa(rec.SignalsInLookback),
			"",
			"",
		}
		if !rec.MostRecentSignal.IsZero() {
			row[3] = rec.MostRecentSignal.Format("2006-01-02")
		}
		if r, ok := byTicker[rec.Ticker]; ok {
			row[5] = strconv.FormatFloat(r.RelativeStrength, 'f', 2, 64)
			row[6] = strconv.Itoa(r.Rank)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", rec.Ticker, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
