package metrics

import (
	"errors"
	"testing"
)

func TestMovingAverage_Example(t *testing.T) {
	s := seriesFromCloses(10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20)

	ma, err := MovingAverage(s, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := s.Len() - 5 + 1; len(ma) != want {
		t.Fatalf("expected %d points, got %d", want, len(ma))
	}

	last, ok := ma.Last()
	if !ok {
		t.Fatal("expected non-empty series")
	}
	if !almostEqual(last.Value, 18) {
		t.Errorf("expected last MA = 18 (avg of 16..20), got %.6f", last.Value)
	}
}

func TestMovingAverage_SuffixAlignment(t *testing.T) {
	s := seriesFromCloses(1, 2, 3, 4, 5)

	ma, err := MovingAverage(s, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// First defined point belongs to bar index window-1.
	if !ma[0].Time.Equal(s.Bars[2].Time) {
		t.Errorf("first point timestamp %v, want %v", ma[0].Time, s.Bars[2].Time)
	}
	if !ma[len(ma)-1].Time.Equal(s.Bars[4].Time) {
		t.Errorf("last point timestamp %v, want %v", ma[len(ma)-1].Time, s.Bars[4].Time)
	}
}

func TestMovingAverage_InvalidWindow(t *testing.T) {
	s := seriesFromCloses(1, 2, 3)

	for _, window := range []int{0, -1, 4} {
		if _, err := MovingAverage(s, window); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("window %d: expected ErrInvalidWindow, got %v", window, err)
		}
	}
}

func TestEMA_ConstantSeries(t *testing.T) {
	s := seriesFromCloses(50, 50, 50, 50, 50)

	ema, err := EMA(s, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ema) != s.Len() {
		t.Fatalf("expected EMA over all %d bars, got %d", s.Len(), len(ema))
	}
	for i, p := range ema {
		if !almostEqual(p.Value, 50) {
			t.Errorf("point %d: expected 50, got %.6f", i, p.Value)
		}
	}
}

func TestEMA_SeedAndRecurrence(t *testing.T) {
	s := seriesFromCloses(10, 20)

	ema, err := EMA(s, 3) // alpha = 0.5
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(ema[0].Value, 10) {
		t.Errorf("EMA[0] should equal first close, got %.6f", ema[0].Value)
	}
	if !almostEqual(ema[1].Value, 15) {
		t.Errorf("EMA[1] = 0.5*20 + 0.5*10 = 15, got %.6f", ema[1].Value)
	}
}

func TestEMA_Errors(t *testing.T) {
	if _, err := EMA(seriesFromCloses(1, 2), 0); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got %v", err)
	}
	if _, err := EMA(seriesFromCloses(), 3); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}
