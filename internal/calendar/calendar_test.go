package calendar

import (
	"testing"
	"time"
)

func TestOpen(t *testing.T) {
	nyse := NewNYSE()

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"regular tuesday", time.Date(2026, time.August, 25, 0, 0, 0, 0, time.UTC), true},
		{"saturday", time.Date(2026, time.August, 22, 0, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC), false},
		{"new year's day", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), false},
		{"mlk day", time.Date(2026, time.January, 19, 0, 0, 0, 0, time.UTC), false},
		{"good friday", time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC), false},
		{"independence day observed", time.Date(2026, time.July, 3, 0, 0, 0, 0, time.UTC), false},
		{"monday after the fourth", time.Date(2026, time.July, 6, 0, 0, 0, 0, time.UTC), true},
		{"thanksgiving", time.Date(2026, time.November, 26, 0, 0, 0, 0, time.UTC), false},
		{"christmas", time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC), false},
		{"day after christmas holiday week", time.Date(2026, time.December, 28, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nyse.Open(tt.date); got != tt.want {
				t.Errorf("Open(%s) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestOpen_IgnoresTimeOfDay(t *testing.T) {
	nyse := NewNYSE()
	evening := time.Date(2026, time.August, 25, 22, 30, 0, 0, time.UTC)
	if !nyse.Open(evening) {
		t.Error("a trading day should stay open regardless of the clock time")
	}
}
