// Package cache wraps a Fetcher with a TTL-keyed in-memory cache so repeated
// dashboard requests within a short window do not hammer the upstream API.
package cache

import (
	"sync"
	"time"

	"MarketLens/internal/fetcher"
	"MarketLens/internal/model"
)

type historyEntry struct {
	series    *model.PriceSeries
	fetchedAt time.Time
}

type infoEntry struct {
	info      *model.QuoteInfo
	fetchedAt time.Time
}

// CachingFetcher decorates an inner Fetcher with per-symbol TTL caching of
// history and quote info. Current-price lookups always pass through.
type CachingFetcher struct {
	inner      fetcher.Fetcher
	historyTTL time.Duration
	infoTTL    time.Duration

	mu      sync.Mutex
	history map[string]historyEntry
	info    map[string]infoEntry
}

// New wraps inner with the given TTLs.
func New(inner fetcher.Fetcher, historyTTL, infoTTL time.Duration) *CachingFetcher {
	return &CachingFetcher{
		inner:      inner,
		historyTTL: historyTTL,
		infoTTL:    infoTTL,
		history:    make(map[string]historyEntry),
		info:       make(map[string]infoEntry),
	}
}

func (c *CachingFetcher) Name() string { return c.inner.Name() }

func (c *CachingFetcher) FetchHistory(symbol, period string) (*model.PriceSeries, error) {
	key := symbol + "|" + period

	c.mu.Lock()
	if e, ok := c.history[key]; ok && time.Since(e.fetchedAt) < c.historyTTL {
		c.mu.Unlock()
		return e.series, nil
	}
	c.mu.Unlock()

	series, err := c.inner.FetchHistory(symbol, period)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.history[key] = historyEntry{series: series, fetchedAt: time.Now()}
	c.mu.Unlock()
	return series, nil
}

func (c *CachingFetcher) FetchCurrentPrice(symbol string) (float64, error) {
	return c.inner.FetchCurrentPrice(symbol)
}

func (c *CachingFetcher) FetchQuoteInfo(symbol string) (*model.QuoteInfo, error) {
	c.mu.Lock()
	if e, ok := c.info[symbol]; ok && time.Since(e.fetchedAt) < c.infoTTL {
		c.mu.Unlock()
		cp := *e.info
		return &cp, nil
	}
	c.mu.Unlock()

	info, err := c.inner.FetchQuoteInfo(symbol)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.info[symbol] = infoEntry{info: info, fetchedAt: time.Now()}
	c.mu.Unlock()

	// Callers get a copy so writes to the result never reach the cache
	// or other goroutines holding the same entry.
	cp := *info
	return &cp, nil
}

// Sweep drops expired entries. Called periodically by the scheduler so a
// long-running server does not accumulate stale symbols.
func (c *CachingFetcher) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.history {
		if time.Since(e.fetchedAt) >= c.historyTTL {
			delete(c.history, k)
			removed++
		}
	}
	for k, e := range c.info {
		if time.Since(e.fetchedAt) >= c.infoTTL {
			delete(c.info, k)
			removed++
		}
	}
	return removed
}
