package setup

import (
	"fmt"
	"math"

	"SwingSentinel/internal/indicator"
)

// Detector flags bars that complete a pullback-in-uptrend pattern: an
// uptrending stock dips to its 20-day average on one bar and closes back
// above it on the next.
type Detector struct {
	pullbackFrac float64
	useVolume    bool
}

// NewDetector builds a Detector. pullbackFrac is the maximum relative
// distance of the pullback close from SMA20 (0.01 = within 1 percent);
// useVolume additionally requires the pullback bar to trade below its
// 20-day average volume.
func NewDetector(pullbackFrac float64, useVolume bool) (*Detector, error) {
	if pullbackFrac < 0 {
		return nil, fmt.Errorf("pullback fraction must be >= 0, got %v", pullbackFrac)
	}
	return &Detector{pullbackFrac: pullbackFrac, useVolume: useVolume}, nil
}

// Detect returns one flag per bar. A bar t is flagged when the trend holds
// at t, the previous bar pulled back to SMA20, and bar t reclaims SMA20.
// Any undefined operand makes the flag false; the first bar is never flagged.
func (d *Detector) Detect(s *indicator.Series) []bool {
	signals := make([]bool, len(s.Bars))
	for t := 1; t < len(s.Bars); t++ {
		sma20 := s.SMA20[t]
		sma50 := s.SMA50[t]
		prevSMA20 := s.SMA20[t-1]
		if !sma20.Valid || !sma50.Valid || !prevSMA20.Valid {
			continue
		}

		bar := s.Bars[t]
		prev := s.Bars[t-1]

		trend := bar.Close > sma50.Float64 && sma20.Float64 > sma50.Float64
		pullback := math.Abs(prev.Close-prevSMA20.Float64)/prevSMA20.Float64 <= d.pullbackFrac &&
			prev.Close <= prevSMA20.Float64
		reclaim := bar.Close > sma20.Float64

		ok := trend && pullback && reclaim
		if ok && d.useVolume {
			prevVol := s.VolSMA20[t-1]
			if !prevVol.Valid || prev.Volume >= prevVol.Float64 {
				ok = false
			}
		}
		signals[t] = ok
	}
	return signals
}
