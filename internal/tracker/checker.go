package tracker

import (
	"log"

	"SwingSentinel/internal/exits"
	"SwingSentinel/internal/indicator"
	"SwingSentinel/internal/model"
	"SwingSentinel/internal/provider"
)

// Checker prices every open position and annotates trend health: holding
// below the 50-day average is an early warning even while the exit rules
// still read HEALTHY, and a close within reach of the target is worth a
// heads-up before the full move completes.
type Checker struct {
	book          *Book
	provider      provider.BarProvider
	nearTargetPct float64
	historyDays   int
	healthWindow  int
}

// NewChecker builds a Checker. nearTargetPct is the distance-to-target
// percentage at or under which a healthy position is flagged, default 1.0.
func NewChecker(book *Book, p provider.BarProvider, nearTargetPct float64) *Checker {
	if nearTargetPct <= 0 {
		nearTargetPct = 1.0
	}
	return &Checker{
		book:          book,
		provider:      p,
		nearTargetPct: nearTargetPct,
		historyDays:   90,
		healthWindow:  50,
	}
}

// CheckAll evaluates every open position. Positions whose data cannot be
// fetched are skipped with a warning; one dead symbol must not silence
// the rest of the book.
func (c *Checker) CheckAll() []model.PositionCheck {
	positions := c.book.Positions()
	if len(positions) == 0 {
		return nil
	}
	out := make([]model.PositionCheck, 0, len(positions))
	for _, pos := range positions {
		check, ok := c.checkOne(pos)
		if !ok {
			continue
		}
		out = append(out, check)
	}
	return out
}

func (c *Checker) checkOne(pos model.Position) (model.PositionCheck, bool) {
	bars, err := c.provider.FetchDailyBars(pos.Ticker, c.historyDays)
	if err != nil {
		log.Printf("[WARN] %s: fetch failed, skipping check: %v", pos.Ticker, err)
		return model.PositionCheck{}, false
	}
	last, ok := bars.Last()
	if !ok {
		log.Printf("[WARN] %s: no bars returned, skipping check", pos.Ticker)
		return model.PositionCheck{}, false
	}

	check := model.PositionCheck{
		Close:    last.Close,
		AsOf:     last.Date,
		Decision: exits.Evaluate(pos, last.Close, last.Date),
	}

	if len(bars) >= c.healthWindow {
		sma := indicator.SMA(bars.Closes(), c.healthWindow)
		if v := sma[len(sma)-1]; v.Valid {
			sma50 := v.Float64
			check.SMA50 = &sma50
			check.BelowSMA50 = last.Close < sma50
		}
	} else {
		log.Printf("[WARN] %s: only %d bars, skipping trend health check", pos.Ticker, len(bars))
	}

	if check.Decision.Verdict == model.Healthy &&
		check.Decision.DistanceToTargetPct <= c.nearTargetPct {
		check.NearTarget = true
	}
	return check, true
}
