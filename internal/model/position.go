package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Verdict classifies an open position against its exit policy.
type Verdict string

const (
	StopHit   Verdict = "STOP_HIT"
	TargetHit Verdict = "TARGET_HIT"
	TimeStop  Verdict = "TIME_STOP"
	Healthy   Verdict = "HEALTHY"
)

// ExitPolicy fixes the loss, profit, and holding-time bounds for a position.
type ExitPolicy struct {
	StopLoss     float64 `json:"stop_loss"`     // fraction below entry, e.g. 0.02
	ProfitTarget float64 `json:"profit_target"` // fraction above entry, e.g. 0.07
	MaxHoldDays  int     `json:"max_hold_days"`
}

// Validate rejects thresholds the evaluator cannot price.
func (p ExitPolicy) Validate() error {
	if p.StopLoss <= 0 || p.StopLoss >= 1 {
		return fmt.Errorf("stop_loss must be in (0, 1), got %v", p.StopLoss)
	}
	if p.ProfitTarget <= 0 {
		return fmt.Errorf("profit_target must be positive, got %v", p.ProfitTarget)
	}
	if p.MaxHoldDays < 1 {
		return fmt.Errorf("max_hold_days must be at least 1, got %d", p.MaxHoldDays)
	}
	return nil
}

// IsZero reports whether the policy is entirely unset.
func (p ExitPolicy) IsZero() bool {
	return p == ExitPolicy{}
}

// Position is one open trade tracked for exit evaluation.
type Position struct {
	Ticker     string     `json:"ticker"`
	EntryPrice float64    `json:"entry_price"`
	EntryDate  time.Time  `json:"entry_date,omitzero"` // zero when unknown
	Policy     ExitPolicy `json:"policy"`
}

// NewPosition builds a validated Position. The ticker is upper-cased and
// the entry date, when known, is truncated to its trading day.
func NewPosition(ticker string, entryPrice float64, entryDate time.Time, policy ExitPolicy) (Position, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return Position{}, errors.New("ticker is required")
	}
	if entryPrice <= 0 {
		return Position{}, fmt.Errorf("entry price must be positive, got %v", entryPrice)
	}
	if err := policy.Validate(); err != nil {
		return Position{}, fmt.Errorf("exit policy for %s: %w", ticker, err)
	}
	return Position{
		Ticker:     ticker,
		EntryPrice: entryPrice,
		EntryDate:  Day(entryDate),
		Policy:     policy,
	}, nil
}

// ExitDecision is the outcome of pricing one position against its policy.
type ExitDecision struct {
	Ticker              string
	Verdict             Verdict
	PnLPct              float64
	StopPrice           float64
	TargetPrice         float64
	DaysHeld            int     // -1 when the entry date is unknown
	DistanceToTargetPct float64 // set only for HEALTHY verdicts
}

// PositionCheck pairs an exit decision with trend-health annotations
// derived from the position's recent history.
type PositionCheck struct {
	Close      float64
	AsOf       time.Time
	Decision   ExitDecision
	SMA50      *float64 // nil when under 50 bars of history
	BelowSMA50 bool
	NearTarget bool
}
