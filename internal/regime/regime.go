package regime

import (
	"log"
	"math"

	"SwingSentinel/internal/indicator"
	"SwingSentinel/internal/model"
)

// Window is the trailing span of the long-term trend average.
const Window = 200

// Check evaluates the benchmark regime on its most recent bar: OK when the
// close sits above its 200-day average. An unusable series (empty, or every
// close NaN) fails open so a benchmark outage never blocks a scan; a series
// that is merely too short for the average fails the check.
func Check(bars model.BarSeries) model.MarketStatus {
	clean := make(model.BarSeries, 0, len(bars))
	for _, b := range bars {
		if !math.IsNaN(b.Close) {
			clean = append(clean, b)
		}
	}
	if len(clean) == 0 {
		log.Println("[WARN] benchmark data unavailable, treating market as neutral")
		return model.MarketStatus{OK: true}
	}

	last := clean[len(clean)-1]
	close := last.Close
	st := model.MarketStatus{AsOf: last.Date, Close: &close}

	sma := indicator.SMA(clean.Closes(), Window)
	if v := sma[len(sma)-1]; v.Valid {
		sma200 := v.Float64
		st.SMA200 = &sma200
		st.OK = close > sma200
	}
	return st
}
