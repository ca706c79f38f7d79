package metrics

import (
	"errors"
	"testing"
)

func TestBollingerBands_Ordering(t *testing.T) {
	s := seriesFromCloses(100, 102, 98, 105, 97, 110, 108, 95, 101, 104)

	b, err := BollingerBands(s, 4, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Upper) != len(b.Middle) || len(b.Lower) != len(b.Middle) {
		t.Fatalf("bands misaligned: upper=%d middle=%d lower=%d", len(b.Upper), len(b.Middle), len(b.Lower))
	}
	for i := range b.Middle {
		if b.Upper[i].Value < b.Middle[i].Value || b.Middle[i].Value < b.Lower[i].Value {
			t.Errorf("point %d: expected upper >= middle >= lower, got %.4f / %.4f / %.4f",
				i, b.Upper[i].Value, b.Middle[i].Value, b.Lower[i].Value)
		}
		if !b.Upper[i].Time.Equal(b.Middle[i].Time) || !b.Lower[i].Time.Equal(b.Middle[i].Time) {
			t.Errorf("point %d: band timestamps diverge", i)
		}
	}
}

func TestBollingerBands_ConstantSeriesCollapses(t *testing.T) {
	s := seriesFromCloses(42, 42, 42, 42, 42, 42)

	b, err := BollingerBands(s, 3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range b.Middle {
		if !almostEqual(b.Upper[i].Value, 42) || !almostEqual(b.Lower[i].Value, 42) {
			t.Errorf("point %d: zero-variance window should collapse bands to 42, got %.4f / %.4f",
				i, b.Upper[i].Value, b.Lower[i].Value)
		}
	}
}

func TestBollingerBands_KnownSigma(t *testing.T) {
	// Window {2,4,6}: mean 4, population sigma sqrt(8/3).
	s := seriesFromCloses(2, 4, 6)

	b, err := BollingerBands(s, 3, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Middle) != 1 {
		t.Fatalf("expected 1 point, got %d", len(b.Middle))
	}
	if !almostEqual(b.Middle[0].Value, 4) {
		t.Errorf("middle = %.6f, want 4", b.Middle[0].Value)
	}
	want := 4 + 1.632993161855452 // 4 + sqrt(8/3)
	if !almostEqual(b.Upper[0].Value, want) {
		t.Errorf("upper = %.12f, want %.12f", b.Upper[0].Value, want)
	}
}

func TestBollingerBands_Errors(t *testing.T) {
	s := seriesFromCloses(1, 2)

	if _, err := BollingerBands(s, 0, 2); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got %v", err)
	}
	if _, err := BollingerBands(s, 3, 2); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}
