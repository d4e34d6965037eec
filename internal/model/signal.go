package model

import "time"

// SignalRecord is the per-ticker outcome of one scan.
type SignalRecord struct {
	Ticker            string
	HasSignalToday    bool
	LastDate          time.Time
	MostRecentSignal  time.Time // zero when no signal fired within the lookback
	SignalsInLookback int
}

// RankedSignal is a SignalRecord annotated with relative strength
// against the benchmark and a 1-based rank (1 = strongest).
type RankedSignal struct {
	SignalRecord
	RelativeStrength float64 // signed percentage vs the benchmark
	Rank             int
}

// ScanResult is the aggregate outcome of one universe scan.
type ScanResult struct {
	Market  MarketStatus
	Records []SignalRecord
	Scanned int // tickers that produced a record
	Skipped int // tickers dropped for missing, short, or malformed history
}

// SignalsToday counts records whose signal fired on the most recent bar.
func (r *ScanResult) SignalsToday() int {
	n := 0
	for _, rec := range r.Records {
		if rec.HasSignalToday {
			n++
		}
	}
	return n
}
