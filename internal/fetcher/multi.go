package fetcher

import (
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"MarketLens/internal/model"
)

// maxConcurrentFetches bounds the fan-out against the upstream API.
const maxConcurrentFetches = 4

// FetchMany fetches history for several symbols concurrently. Symbols that
// fail are logged and omitted from the result rather than failing the batch,
// so one delisted ticker does not break a whole portfolio valuation.
func FetchMany(f Fetcher, symbols []string, period string) map[string]*model.PriceSeries {
	var (
		mu  sync.Mutex
		out = make(map[string]*model.PriceSeries, len(symbols))
	)

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)
	for _, symbol := range symbols {
		g.Go(func() error {
			series, err := f.FetchHistory(symbol, period)
			if err != nil {
				log.Printf("[WARN] fetch %s: %v", symbol, err)
				return nil
			}
			mu.Lock()
			out[symbol] = series
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return out
}
