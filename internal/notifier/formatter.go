package notifier

import (
	"fmt"
	"strings"
	"time"

	"SwingSentinel/internal/model"
)

// FormatScanReport formats one scan's outcome as a plain-text report.
func FormatScanReport(res *model.ScanResult, ranked []model.RankedSignal) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("SwingSentinel Scan | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(marketLine(res.Market))
	b.WriteString(fmt.Sprintf("Scanned %d tickers, skipped %d\n", res.Scanned, res.Skipped))

	today := res.SignalsToday()
	if today == 0 {
		b.WriteString("\nNo pullback setups fired today.\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Signals today: %d\n\n", today))
	b.WriteString("Top setups by relative strength:\n")
	for _, r := range ranked {
		b.WriteString(fmt.Sprintf("  #%d %s  RS %+.2f%%  last signal %s  (%d in lookback)\n",
			r.Rank, r.Ticker, r.RelativeStrength,
			r.MostRecentSignal.Format("2006-01-02"), r.SignalsInLookback))
	}
	return b.String()
}

func marketLine(st model.MarketStatus) string {
	switch {
	case st.Close == nil:
		return "Market: benchmark data unavailable, scanned anyway\n"
	case st.SMA200 == nil:
		return fmt.Sprintf("Market: close %.2f, SMA200 not yet available\n", *st.Close)
	case st.OK:
		return fmt.Sprintf("Market: uptrend, close %.2f > SMA200 %.2f\n", *st.Close, *st.SMA200)
	default:
		return fmt.Sprintf("Market: downtrend, close %.2f <= SMA200 %.2f\n", *st.Close, *st.SMA200)
	}
}

// FormatExitReport formats the exit checks of every open position.
func FormatExitReport(checks []model.PositionCheck) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("SwingSentinel Exit Check | %s\n\n", time.Now().Format("2006-01-02")))
	if len(checks) == 0 {
		b.WriteString("No open positions.\n")
		return b.String()
	}

	for _, c := range checks {
		d := c.Decision
		held := "entry date unknown"
		if d.DaysHeld >= 0 {
			held = fmt.Sprintf("held %dd", d.DaysHeld)
		}
		b.WriteString(fmt.Sprintf("%s: %s | P&L %+.2f%% | %s | close %.2f\n",
			d.Ticker, d.Verdict, d.PnLPct, held, c.Close))

		switch d.Verdict {
		case model.StopHit:
			b.WriteString(fmt.Sprintf("  stop %.2f breached, exit\n", d.StopPrice))
		case model.TargetHit:
			b.WriteString(fmt.Sprintf("  target %.2f reached, take profit\n", d.TargetPrice))
		case model.TimeStop:
			b.WriteString("  max holding time reached, exit\n")
		default:
			if c.NearTarget {
				b.WriteString(fmt.Sprintf("  %.1f%% from target %.2f\n", d.DistanceToTargetPct, d.TargetPrice))
			}
		}
		if c.BelowSMA50 && c.SMA50 != nil {
			b.WriteString(fmt.Sprintf("  below SMA50 (%.2f), trend weakening\n", *c.SMA50))
		}
	}
	return b.String()
}

// Actionable reports whether any check calls for a trade, so callers can
// skip sending all-quiet reports.
func Actionable(checks []model.PositionCheck) bool {
	for _, c := range checks {
		if c.Decision.Verdict != model.Healthy {
			return true
		}
	}
	return false
}
