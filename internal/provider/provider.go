package provider

import (
	"time"

	"SwingSentinel/internal/model"
)

// BarProvider defines the interface for fetching daily price history.
type BarProvider interface {
	// FetchDailyBars returns up to days of daily bars, oldest first.
	FetchDailyBars(symbol string, days int) (model.BarSeries, error)
	// FetchLatestClose returns the most recent daily close and its date.
	FetchLatestClose(symbol string) (float64, time.Time, error)
	Name() string
}
