package provider

import (
	"fmt"
	"math"
	"time"

	"SwingSentinel/internal/model"
)

// MockProvider returns deterministic synthetic data for development and
// testing: a gentle uptrend with a slow oscillation, anchored to a fixed
// date so repeated runs produce identical series.
type MockProvider struct {
	Base   map[string]float64         // starting price per symbol, default 100
	Series map[string]model.BarSeries // canned series override per symbol
	Anchor time.Time                  // date of the last bar, default 2025-12-31
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) anchor() time.Time {
	if m.Anchor.IsZero() {
		return time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return model.Day(m.Anchor)
}

func (m *MockProvider) FetchDailyBars(symbol string, days int) (model.BarSeries, error) {
	if canned, ok := m.Series[symbol]; ok {
		return canned, nil
	}
	base := 100.0
	if b, ok := m.Base[symbol]; ok {
		base = b
	}
	end := m.anchor()
	bars := make(model.BarSeries, days)
	for i := 0; i < days; i++ {
		drift := 1 + float64(i-days/2)*0.001
		wave := 1 + 0.005*math.Sin(float64(i)/5)
		p := base * drift * wave
		bars[i] = model.Bar{
			Date:   end.AddDate(0, 0, i-days+1),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1_000_000,
		}
	}
	return bars, nil
}

func (m *MockProvider) FetchLatestClose(symbol string) (float64, time.Time, error) {
	bars, err := m.FetchDailyBars(symbol, 5)
	if err != nil {
		return 0, time.Time{}, err
	}
	last, ok := bars.Last()
	if !ok {
		return 0, time.Time{}, fmt.Errorf("mock: no data for %s", symbol)
	}
	return last.Close, last.Date, nil
}
