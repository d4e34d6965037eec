// Package exits prices open positions against their stop-loss,
// profit-target, and time-stop rules.
package exits

import (
	"time"

	"SwingSentinel/internal/model"
)

// Evaluate classifies a position against the latest close. The checks run
// in a fixed order: stop-loss, then profit-target, then time-stop, so a
// breached stop always wins. The time stop needs a known entry date;
// without one a position can only exit on price. Evaluate never fails:
// position fields are validated at construction.
func Evaluate(pos model.Position, latestClose float64, asOf time.Time) model.ExitDecision {
	stop := pos.EntryPrice * (1 - pos.Policy.StopLoss)
	target := pos.EntryPrice * (1 + pos.Policy.ProfitTarget)

	d := model.ExitDecision{
		Ticker:      pos.Ticker,
		PnLPct:      (latestClose - pos.EntryPrice) / pos.EntryPrice * 100,
		StopPrice:   stop,
		TargetPrice: target,
		DaysHeld:    -1,
	}
	if !pos.EntryDate.IsZero() {
		d.DaysHeld = int(model.Day(asOf).Sub(model.Day(pos.EntryDate)).Hours() / 24)
	}

	switch {
	case latestClose <= stop:
		d.Verdict = model.StopHit
	case latestClose >= target:
		d.Verdict = model.TargetHit
	case !pos.EntryDate.IsZero() && d.DaysHeld >= pos.Policy.MaxHoldDays:
		d.Verdict = model.TimeStop
	default:
		d.Verdict = model.Healthy
		d.DistanceToTargetPct = (target - latestClose) / latestClose * 100
	}
	return d
}
