package model

import (
	"sort"
	"time"
)

// Bar represents a single daily OHLCV observation.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// BarSeries is a date-ordered, duplicate-free sequence of daily bars for
// one instrument, ascending by date. Non-trading days are simply absent.
type BarSeries []Bar

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Normalize sorts the series chronologically and collapses duplicate
// dates, keeping the last bar seen for each date.
func (s BarSeries) Normalize() BarSeries {
	if len(s) == 0 {
		return s
	}
	out := make(BarSeries, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	dedup := out[:1]
	for _, b := range out[1:] {
		if b.Date.Equal(dedup[len(dedup)-1].Date) {
			dedup[len(dedup)-1] = b
			continue
		}
		dedup = append(dedup, b)
	}
	return dedup
}

// Closes returns the close column.
func (s BarSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, b := range s {
		closes[i] = b.Close
	}
	return closes
}

// Volumes returns the volume column.
func (s BarSeries) Volumes() []float64 {
	volumes := make([]float64, len(s))
	for i, b := range s {
		volumes[i] = b.Volume
	}
	return volumes
}

// Last returns the most recent bar; ok is false for an empty series.
func (s BarSeries) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}
