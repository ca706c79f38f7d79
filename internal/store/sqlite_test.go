package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSearchHistory_DedupedMostRecentFirst(t *testing.T) {
	s := newTestStore(t)

	for _, sym := range []string{"aapl", "TSLA", "NVDA", "AAPL"} {
		if err := s.RecordSearch(sym); err != nil {
			t.Fatalf("RecordSearch(%s): %v", sym, err)
		}
	}

	got, err := s.RecentSearches(10)
	if err != nil {
		t.Fatalf("RecentSearches: %v", err)
	}
	want := []string{"AAPL", "NVDA", "TSLA"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSearchHistory_LimitAndClear(t *testing.T) {
	s := newTestStore(t)

	for _, sym := range []string{"A", "B", "C", "D"} {
		s.RecordSearch(sym)
	}

	got, err := s.RecentSearches(2)
	if err != nil {
		t.Fatalf("RecentSearches: %v", err)
	}
	if len(got) != 2 || got[0] != "D" {
		t.Errorf("got %v, want [D C]", got)
	}

	if err := s.ClearSearches(); err != nil {
		t.Fatalf("ClearSearches: %v", err)
	}
	got, _ = s.RecentSearches(10)
	if len(got) != 0 {
		t.Errorf("expected empty history after clear, got %v", got)
	}
}

func TestQuoteSnapshots_Roundtrip(t *testing.T) {
	s := newTestStore(t)

	for i, price := range []float64{100, 101, 102} {
		err := s.RecordQuote(&QuoteSnapshot{Symbol: "AAPL", Price: price, ChangePct: float64(i)})
		if err != nil {
			t.Fatalf("RecordQuote: %v", err)
		}
	}
	s.RecordQuote(&QuoteSnapshot{Symbol: "TSLA", Price: 250})

	got, err := s.RecentQuotes("AAPL", 2)
	if err != nil {
		t.Fatalf("RecentQuotes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(got))
	}
	if got[0].Price != 102 {
		t.Errorf("newest first: got price %.0f, want 102", got[0].Price)
	}
}

func TestRecordValuation(t *testing.T) {
	s := newTestStore(t)

	err := s.RecordValuation(&PortfolioValuation{Name: "main", Investment: 1000, Value: 1100})
	if err != nil {
		t.Fatalf("RecordValuation: %v", err)
	}
}
