package indicator

import (
	"math"
	"reflect"
	"testing"
	"time"

	"SwingSentinel/internal/model"
)

func makeBars(closes []float64) model.BarSeries {
	base := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	bars := make(model.BarSeries, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Date:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000 + float64(i),
		}
	}
	return bars
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMA_UndefinedBeforeWindowFills(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7}
	got := SMA(values, 5)

	for i := 0; i < 4; i++ {
		if got[i].Valid {
			t.Errorf("index %d: expected undefined before window fills", i)
		}
	}
	if !got[4].Valid || !almostEqual(got[4].Float64, 3) {
		t.Errorf("index 4: got %+v, want mean 3", got[4])
	}
	if !got[6].Valid || !almostEqual(got[6].Float64, 5) {
		t.Errorf("index 6: got %+v, want mean 5", got[6])
	}
}

func TestSMA_ShortInput(t *testing.T) {
	got := SMA([]float64{1, 2, 3}, 5)
	if len(got) != 3 {
		t.Fatalf("output length = %d, want 3", len(got))
	}
	for i, v := range got {
		if v.Valid {
			t.Errorf("index %d: expected undefined for input shorter than window", i)
		}
	}
}

func TestSMA_BadWindow(t *testing.T) {
	for _, window := range []int{0, -1} {
		got := SMA([]float64{1, 2, 3}, window)
		for i, v := range got {
			if v.Valid {
				t.Errorf("window %d index %d: expected undefined", window, i)
			}
		}
	}
}

func TestCompute_EmptyInput(t *testing.T) {
	if _, err := Compute(nil); err == nil {
		t.Error("expected error for empty bar series")
	}
}

func TestCompute_WindowBoundaries(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	s, err := Compute(makeBars(closes))
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if s.SMA20[18].Valid {
		t.Error("SMA20 defined before its window filled")
	}
	// mean of 1..20
	if !s.SMA20[19].Valid || !almostEqual(s.SMA20[19].Float64, 10.5) {
		t.Errorf("SMA20[19] = %+v, want 10.5", s.SMA20[19])
	}
	if s.SMA50[48].Valid {
		t.Error("SMA50 defined before its window filled")
	}
	// mean of 1..50
	if !s.SMA50[49].Valid || !almostEqual(s.SMA50[49].Float64, 25.5) {
		t.Errorf("SMA50[49] = %+v, want 25.5", s.SMA50[49])
	}
	// volumes are 1000..1019 at index 19
	if !s.VolSMA20[19].Valid || !almostEqual(s.VolSMA20[19].Float64, 1009.5) {
		t.Errorf("VolSMA20[19] = %+v, want 1009.5", s.VolSMA20[19])
	}
}

func TestCompute_Deterministic(t *testing.T) {
	closes := []float64{5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25}
	bars := makeBars(closes)

	a, err := Compute(bars)
	if err != nil {
		t.Fatalf("first Compute: %v", err)
	}
	b, err := Compute(bars)
	if err != nil {
		t.Fatalf("second Compute: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Compute is not deterministic for identical input")
	}
}
