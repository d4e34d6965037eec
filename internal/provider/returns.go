package provider

import "fmt"

// ReturnCalculator derives trailing close-to-close returns from a
// BarProvider. A window of w bars compares the latest close against the
// close w bars earlier, so w+1 bars must exist.
type ReturnCalculator struct {
	Provider BarProvider
}

// ReturnOver returns close[last]/close[last-window] - 1 as a fraction.
func (rc *ReturnCalculator) ReturnOver(symbol string, window int) (float64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("return window must be positive, got %d", window)
	}
	bars, err := rc.Provider.FetchDailyBars(symbol, window+30)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if len(bars) < window+1 {
		return 0, fmt.Errorf("%s: %d bars, need %d", symbol, len(bars), window+1)
	}
	base := bars[len(bars)-1-window].Close
	if base <= 0 {
		return 0, fmt.Errorf("%s: non-positive base close %v", symbol, base)
	}
	return bars[len(bars)-1].Close/base - 1, nil
}
