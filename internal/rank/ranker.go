package rank

import (
	"fmt"
	"log"
	"sort"

	"SwingSentinel/internal/model"
)

// ReturnProvider supplies trailing close-to-close returns as fractions.
type ReturnProvider interface {
	ReturnOver(symbol string, window int) (float64, error)
}

// Ranker orders fresh signals by relative strength: the ticker's trailing
// return minus the benchmark's, in percentage points. A ticker whose data
// cannot be priced gets a relative strength of exactly 0 rather than
// knocking out the whole ranking.
type Ranker struct {
	provider  ReturnProvider
	benchmark string
	window    int
}

// NewRanker builds a Ranker. An empty benchmark defaults to SPY and a zero
// window to 60 bars.
func NewRanker(p ReturnProvider, benchmark string, window int) (*Ranker, error) {
	if window < 0 {
		return nil, fmt.Errorf("rank window must not be negative, got %d", window)
	}
	if window == 0 {
		window = 60
	}
	if benchmark == "" {
		benchmark = "SPY"
	}
	return &Ranker{provider: p, benchmark: benchmark, window: window}, nil
}

// Rank scores the records that signaled today and returns them strongest
// first with dense 1-based ranks. Ties keep their scan order.
func (r *Ranker) Rank(records []model.SignalRecord) []model.RankedSignal {
	var today []model.SignalRecord
	for _, rec := range records {
		if rec.HasSignalToday {
			today = append(today, rec)
		}
	}
	if len(today) == 0 {
		return nil
	}

	benchRet, err := r.provider.ReturnOver(r.benchmark, r.window)
	if err != nil {
		log.Printf("[WARN] benchmark %s return unavailable: %v, using 0", r.benchmark, err)
		benchRet = 0
	}

	out := make([]model.RankedSignal, 0, len(today))
	for _, rec := range today {
		rs := 0.0
		if ret, err := r.provider.ReturnOver(rec.Ticker, r.window); err != nil {
			log.Printf("[WARN] %s return unavailable: %v, relative strength set to 0", rec.Ticker, err)
		} else {
			rs = (ret - benchRet) * 100
		}
		out = append(out, model.RankedSignal{SignalRecord: rec, RelativeStrength: rs})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelativeStrength > out[j].RelativeStrength
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
