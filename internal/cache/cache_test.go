package cache

import (
	"sync"
	"testing"
	"time"

	"MarketLens/internal/fetcher"
	"MarketLens/internal/model"
)

// countingFetcher counts upstream calls.
type countingFetcher struct {
	mu      sync.Mutex
	history int
	info    int
}

func (c *countingFetcher) Name() string { return "counting" }

func (c *countingFetcher) FetchHistory(symbol, period string) (*model.PriceSeries, error) {
	c.mu.Lock()
	c.history++
	c.mu.Unlock()
	return &model.PriceSeries{Symbol: symbol, Bars: fetcher.GenerateBars(100, 5)}, nil
}

func (c *countingFetcher) FetchCurrentPrice(symbol string) (float64, error) { return 100, nil }

func (c *countingFetcher) FetchQuoteInfo(symbol string) (*model.QuoteInfo, error) {
	c.mu.Lock()
	c.info++
	c.mu.Unlock()
	return &model.QuoteInfo{Symbol: symbol}, nil
}

func TestFetchHistory_CachedWithinTTL(t *testing.T) {
	inner := &countingFetcher{}
	c := New(inner, time.Minute, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := c.FetchHistory("AAPL", "1y"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if inner.history != 1 {
		t.Errorf("expected 1 upstream call, got %d", inner.history)
	}

	// Different period is a different cache key.
	if _, err := c.FetchHistory("AAPL", "1mo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.history != 2 {
		t.Errorf("expected 2 upstream calls after new period, got %d", inner.history)
	}
}

func TestFetchHistory_ExpiredEntryRefetches(t *testing.T) {
	inner := &countingFetcher{}
	c := New(inner, time.Nanosecond, time.Minute)

	if _, err := c.FetchHistory("AAPL", "1y"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := c.FetchHistory("AAPL", "1y"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.history != 2 {
		t.Errorf("expected refetch after TTL, got %d upstream calls", inner.history)
	}
}

func TestFetchQuoteInfo_ReturnsCopies(t *testing.T) {
	inner := &countingFetcher{}
	c := New(inner, time.Minute, time.Minute)

	first, err := c.FetchQuoteInfo("AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A caller decorating its result must not change what the next
	// caller sees.
	first.MarketCapDisplay = "$9.99T"

	second, err := c.FetchQuoteInfo("AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second == first {
		t.Fatal("cache handed out the same QuoteInfo pointer twice")
	}
	if second.MarketCapDisplay != "" {
		t.Errorf("caller write leaked into the cache: %q", second.MarketCapDisplay)
	}
	if inner.info != 1 {
		t.Errorf("expected cached hit, got %d upstream calls", inner.info)
	}
}

func TestSweep_DropsExpired(t *testing.T) {
	inner := &countingFetcher{}
	c := New(inner, time.Nanosecond, time.Nanosecond)

	c.FetchHistory("AAPL", "1y")
	c.FetchQuoteInfo("AAPL")
	time.Sleep(time.Millisecond)

	if removed := c.Sweep(); removed != 2 {
		t.Errorf("expected 2 swept entries, got %d", removed)
	}
}
