// Package market orchestrates data fetching and metric computation into the
// per-symbol snapshots the API serves.
package market

import (
	"fmt"
	"log"
	"sort"

	"gonum.org/v1/gonum/stat"

	"MarketLens/internal/fetcher"
	"MarketLens/internal/format"
	"MarketLens/internal/metrics"
	"MarketLens/internal/model"
)

// Service combines a Fetcher with the metrics engine.
type Service struct {
	Fetcher fetcher.Fetcher
}

// NewService creates a new Service.
func NewService(f fetcher.Fetcher) *Service {
	return &Service{Fetcher: f}
}

// StockSnapshot fetches history for an equity symbol and derives stats and
// indicators, annualizing over equity trading days.
func (s *Service) StockSnapshot(symbol, period string) (*model.MarketSnapshot, error) {
	return s.snapshot(symbol, period, metrics.TradingDaysEquity)
}

// CryptoSnapshot is StockSnapshot for a crypto pair: the symbol is
// normalized to its -USD quote and volatility annualizes over 365 days
// because crypto trades every day.
func (s *Service) CryptoSnapshot(symbol, period string) (*model.MarketSnapshot, error) {
	return s.snapshot(fetcher.NormalizeCryptoSymbol(symbol), period, metrics.TradingDaysCrypto)
}

func (s *Service) snapshot(symbol, period string, annualization float64) (*model.MarketSnapshot, error) {
	series, err := s.Fetcher.FetchHistory(symbol, period)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("series %s: %w", symbol, err)
	}

	snap := &model.MarketSnapshot{
		Symbol:     symbol,
		Bars:       series.Bars,
		Stats:      s.QuoteStats(series, annualization),
		Indicators: s.Indicators(series),
		FetchedAt:  series.FetchedAt,
	}

	// Fundamentals are best-effort: the snapshot is still useful without
	// them and some symbols never have any.
	if info, err := s.Fetcher.FetchQuoteInfo(symbol); err != nil {
		log.Printf("[WARN] quote info %s: %v", symbol, err)
	} else {
		// Decorate a copy: the fetcher may serve the same QuoteInfo to
		// concurrent requests.
		cp := *info
		cp.MarketCapDisplay = format.MarketCap(cp.MarketCap)
		cp.DividendDisplay = format.Percent(cp.DividendYield)
		snap.Info = &cp
	}

	return snap, nil
}

// QuoteStats derives price statistics over the fetched period.
func (s *Service) QuoteStats(series *model.PriceSeries, annualization float64) *model.QuoteStats {
	stats := &model.QuoteStats{}
	n := series.Len()
	if n == 0 {
		return stats
	}

	last := series.Bars[n-1]
	stats.CurrentPrice = last.Close
	stats.Volume = last.Volume
	stats.VolumeDisplay = format.Volume(last.Volume)

	if n > 1 {
		prev := series.Bars[n-2].Close
		stats.PriceChange = last.Close - prev
		if prev != 0 {
			stats.PercentChange = stats.PriceChange / prev * 100
		}
	}

	high, low := series.Bars[0].High, series.Bars[0].Low
	var volumeSum float64
	for _, b := range series.Bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
		volumeSum += b.Volume
	}
	stats.High52w = high
	stats.Low52w = low
	stats.AvgVolume = volumeSum / float64(n)

	closes := series.Closes()
	stats.AvgPrice = stat.Mean(closes, nil)

	sorted := append([]float64(nil), closes...)
	sort.Float64s(sorted)
	stats.MedianPrice = stat.Quantile(0.5, stat.Empirical, sorted, nil)

	if vol, err := metrics.Volatility(series, annualization); err != nil {
		log.Printf("[WARN] volatility %s: %v", series.Symbol, err)
	} else {
		stats.Volatility = vol * 100
	}

	return stats
}

// Indicators computes the latest value of each common indicator. Indicators
// that need more history than the series has are left at zero, matching how
// the dashboard hides them instead of failing the whole snapshot.
func (s *Service) Indicators(series *model.PriceSeries) *model.IndicatorSnapshot {
	ind := &model.IndicatorSnapshot{}

	if ma, err := metrics.MovingAverage(series, 20); err != nil {
		log.Printf("[WARN] SMA20 %s: %v", series.Symbol, err)
	} else if p, ok := ma.Last(); ok {
		ind.SMA20 = p.Value
	}

	if ma, err := metrics.MovingAverage(series, 50); err != nil {
		log.Printf("[WARN] SMA50 %s: %v", series.Symbol, err)
	} else if p, ok := ma.Last(); ok {
		ind.SMA50 = p.Value
	}

	if rsi, err := metrics.RSI(series, metrics.DefaultRSIWindow); err != nil {
		log.Printf("[WARN] RSI %s: %v", series.Symbol, err)
	} else if p, ok := rsi.Last(); ok {
		ind.RSI = p.Value
	}

	if bands, err := metrics.BollingerBands(series, metrics.DefaultBollingerWindow, metrics.DefaultBollingerStdDev); err != nil {
		log.Printf("[WARN] Bollinger %s: %v", series.Symbol, err)
	} else {
		if p, ok := bands.Upper.Last(); ok {
			ind.BBUpper = p.Value
		}
		if p, ok := bands.Middle.Last(); ok {
			ind.BBMiddle = p.Value
		}
		if p, ok := bands.Lower.Last(); ok {
			ind.BBLower = p.Value
		}
	}

	if macd, err := metrics.MACD(series, metrics.DefaultMACDFast, metrics.DefaultMACDSlow, metrics.DefaultMACDSignal); err != nil {
		log.Printf("[WARN] MACD %s: %v", series.Symbol, err)
	} else {
		if p, ok := macd.Line.Last(); ok {
			ind.MACDLine = p.Value
		}
		if p, ok := macd.Signal.Last(); ok {
			ind.MACDSignal = p.Value
		}
	}

	return ind
}

// Trending fetches a 5-day window for each symbol and reports the latest
// close with its day-over-day change. Failed symbols are skipped.
func (s *Service) Trending(symbols []string) []model.TrendingQuote {
	all := fetcher.FetchMany(s.Fetcher, symbols, "5d")

	out := make([]model.TrendingQuote, 0, len(symbols))
	for _, symbol := range symbols {
		series, ok := all[symbol]
		if !ok || series.Len() < 2 {
			continue
		}
		n := series.Len()
		current := series.Bars[n-1].Close
		prev := series.Bars[n-2].Close
		if prev == 0 {
			continue
		}
		out = append(out, model.TrendingQuote{
			Symbol:    symbol,
			Price:     current,
			ChangePct: (current - prev) / prev * 100,
		})
	}
	return out
}
