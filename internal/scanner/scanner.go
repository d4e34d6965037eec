package scanner

import (
	"fmt"
	"log"
	"sort"

	"SwingSentinel/internal/indicator"
	"SwingSentinel/internal/model"
	"SwingSentinel/internal/provider"
	"SwingSentinel/internal/regime"
	"SwingSentinel/internal/setup"
)

const progressEvery = 100

// Options configures a Scanner. Zero values fall back to the defaults;
// negative values are rejected.
type Options struct {
	Benchmark       string // regime benchmark symbol, default SPY
	LookbackDays    int    // history window per ticker, default 504
	MinBars         int    // tickers with fewer bars are skipped, default 60
	RequireMarketOK bool   // abort the scan when the regime check fails
}

// Scanner sweeps a ticker universe for pullback-in-uptrend setups.
type Scanner struct {
	provider provider.BarProvider
	detector *setup.Detector
	opts     Options
}

// NewScanner builds a Scanner over the given provider and detector.
func NewScanner(p provider.BarProvider, det *setup.Detector, opts Options) (*Scanner, error) {
	if opts.LookbackDays < 0 || opts.MinBars < 0 {
		return nil, fmt.Errorf("lookback and min bars must not be negative, got %d and %d",
			opts.LookbackDays, opts.MinBars)
	}
	if opts.Benchmark == "" {
		opts.Benchmark = "SPY"
	}
	if opts.LookbackDays == 0 {
		opts.LookbackDays = 504
	}
	if opts.MinBars == 0 {
		opts.MinBars = 60
	}
	return &Scanner{provider: p, detector: det, opts: opts}, nil
}

// Scan sweeps the universe once. Per-ticker problems are logged and
// counted, never fatal: a bad symbol must not sink a 500-ticker pass.
// When the regime check is mandatory and fails, the scan stops before
// touching any ticker.
func (s *Scanner) Scan(tickers []string) *model.ScanResult {
	res := &model.ScanResult{}

	benchBars, err := s.provider.FetchDailyBars(s.opts.Benchmark, s.opts.LookbackDays)
	if err != nil {
		log.Printf("[WARN] benchmark %s fetch failed: %v", s.opts.Benchmark, err)
		benchBars = nil
	}
	res.Market = regime.Check(benchBars)
	s.logMarket(res.Market)

	if s.opts.RequireMarketOK && !res.Market.OK {
		log.Println("[WARN] market filter failed, returning empty result set")
		return res
	}

	log.Printf("[INFO] scanning %d tickers (lookback %d bars)", len(tickers), s.opts.LookbackDays)
	for i, ticker := range tickers {
		rec, ok := s.scanTicker(ticker)
		if ok {
			res.Records = append(res.Records, rec)
		} else {
			res.Skipped++
		}
		if (i+1)%progressEvery == 0 {
			log.Printf("[INFO] scanned %d/%d tickers", i+1, len(tickers))
		}
	}
	res.Scanned = len(res.Records)

	// fresh signals first, then by how often the setup repeated;
	// the stable sort keeps universe order for ties
	sort.SliceStable(res.Records, func(i, j int) bool {
		a, b := res.Records[i], res.Records[j]
		if a.HasSignalToday != b.HasSignalToday {
			return a.HasSignalToday
		}
		return a.SignalsInLookback > b.SignalsInLookback
	})

	log.Printf("[INFO] scan complete: %d scanned, %d skipped, %d signals today",
		res.Scanned, res.Skipped, res.SignalsToday())
	return res
}

func (s *Scanner) scanTicker(ticker string) (model.SignalRecord, bool) {
	bars, err := s.provider.FetchDailyBars(ticker, s.opts.LookbackDays)
	if err != nil {
		log.Printf("[WARN] %s: fetch failed, skipping: %v", ticker, err)
		return model.SignalRecord{}, false
	}
	if len(bars) < s.opts.MinBars {
		log.Printf("[WARN] %s: only %d bars (need %d), skipping", ticker, len(bars), s.opts.MinBars)
		return model.SignalRecord{}, false
	}

	series, err := indicator.Compute(bars)
	if err != nil {
		log.Printf("[WARN] %s: indicators failed, skipping: %v", ticker, err)
		return model.SignalRecord{}, false
	}
	signals := s.detector.Detect(series)

	rec := model.SignalRecord{
		Ticker:         ticker,
		LastDate:       bars[len(bars)-1].Date,
		HasSignalToday: signals[len(signals)-1],
	}
	for i, fired := range signals {
		if fired {
			rec.SignalsInLookback++
			rec.MostRecentSignal = bars[i].Date
		}
	}
	return rec, true
}

func (s *Scanner) logMarket(st model.MarketStatus) {
	switch {
	case st.Close == nil:
		// regime.Check already warned about the outage
	case st.SMA200 == nil:
		log.Printf("[WARN] market filter: %s has no 200-day average yet (close=%.2f)",
			s.opts.Benchmark, *st.Close)
	case st.OK:
		log.Printf("[INFO] market filter passed: %s close %.2f > SMA200 %.2f on %s",
			s.opts.Benchmark, *st.Close, *st.SMA200, st.AsOf.Format("2006-01-02"))
	default:
		log.Printf("[WARN] market filter failed: %s close %.2f <= SMA200 %.2f on %s",
			s.opts.Benchmark, *st.Close, *st.SMA200, st.AsOf.Format("2006-01-02"))
	}
}
