package indicator

import (
	"errors"

	"github.com/markcheno/go-talib"

	"SwingSentinel/internal/model"
)

// Trailing windows used by the setup detector.
const (
	FastWindow   = 20
	SlowWindow   = 50
	VolumeWindow = 20
)

// Value is one rolling-window output. It is undefined (Valid=false) until a
// full window of observations exists, which keeps partial-window garbage out
// of downstream comparisons.
type Value struct {
	Float64 float64
	Valid   bool
}

// Series couples a bar series with its derived rolling statistics. Index i
// of every derived column refers to Bars[i].
type Series struct {
	Bars     model.BarSeries
	SMA20    []Value
	SMA50    []Value
	VolSMA20 []Value
}

// Compute derives the moving averages the detector needs. The input order
// is preserved and the same input always yields the same output.
func Compute(bars model.BarSeries) (*Series, error) {
	if len(bars) == 0 {
		return nil, errors.New("empty bar series")
	}
	closes := bars.Closes()
	return &Series{
		Bars:     bars,
		SMA20:    SMA(closes, FastWindow),
		SMA50:    SMA(closes, SlowWindow),
		VolSMA20: SMA(bars.Volumes(), VolumeWindow),
	}, nil
}

// SMA computes a trailing simple moving average. Outputs before the window
// fills are undefined, not zero. A non-positive window yields an all-undefined
// column.
func SMA(values []float64, window int) []Value {
	out := make([]Value, len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	raw := talib.Sma(values, window)
	for i := window - 1; i < len(raw); i++ {
		out[i] = Value{Float64: raw[i], Valid: true}
	}
	return out
}
