package metrics

import (
	"errors"
	"testing"
)

func TestRSI_AllGainsYields100(t *testing.T) {
	s := seriesFromCloses(10, 11, 12, 13, 14, 15)

	rsi, err := RSI(s, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range rsi {
		if !almostEqual(p.Value, 100) {
			t.Errorf("point %d: expected RSI=100 on pure uptrend, got %.4f", i, p.Value)
		}
	}
}

func TestRSI_Bounded(t *testing.T) {
	s := seriesFromCloses(100, 98, 103, 99, 107, 95, 110, 104, 112, 90, 120, 118)

	rsi, err := RSI(s, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range rsi {
		if p.Value < 0 || p.Value > 100 {
			t.Errorf("point %d: RSI %.4f outside [0,100]", i, p.Value)
		}
	}
}

func TestRSI_LengthAndAlignment(t *testing.T) {
	s := seriesFromCloses(1, 2, 1, 2, 1, 2, 1, 2)
	window := 3

	rsi, err := RSI(s, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := s.Len() - window; len(rsi) != want {
		t.Fatalf("expected %d points, got %d", want, len(rsi))
	}
	if !rsi[0].Time.Equal(s.Bars[window].Time) {
		t.Errorf("first RSI point at %v, want bar %d time %v", rsi[0].Time, window, s.Bars[window].Time)
	}
}

func TestRSI_Errors(t *testing.T) {
	s := seriesFromCloses(1, 2, 3)

	if _, err := RSI(s, 0); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got %v", err)
	}
	if _, err := RSI(s, 3); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for 3 bars with window 3, got %v", err)
	}
}
