package fetcher

import (
	"fmt"
	"time"

	"MarketLens/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchHistory returns daily bars covering the given period
	// ("1mo", "1y", "max", ...), oldest first.
	FetchHistory(symbol, period string) (*model.PriceSeries, error)
	FetchCurrentPrice(symbol string) (float64, error)
	FetchQuoteInfo(symbol string) (*model.QuoteInfo, error)
	Name() string
}

// validPeriods are the history ranges the upstream chart API accepts.
var validPeriods = map[string]bool{
	"1d": true, "5d": true, "1mo": true, "3mo": true, "6mo": true,
	"1y": true, "2y": true, "5y": true, "10y": true, "ytd": true, "max": true,
}

// ValidPeriod reports whether period is an accepted history range.
func ValidPeriod(period string) bool { return validPeriods[period] }

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Series map[string]*model.PriceSeries
	Info   map[string]*model.QuoteInfo
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(symbol, period string) (*model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("mock: no data for %s", symbol)
}

func (m *MockFetcher) FetchCurrentPrice(symbol string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if s, ok := m.Series[symbol]; ok && len(s.Bars) > 0 {
		return s.Bars[len(s.Bars)-1].Close, nil
	}
	return m.Price, nil
}

func (m *MockFetcher) FetchQuoteInfo(symbol string) (*model.QuoteInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if info, ok := m.Info[symbol]; ok {
		return info, nil
	}
	return &model.QuoteInfo{Symbol: symbol}, nil
}

// GenerateBars produces a deterministic drifting series for mocks.
func GenerateBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	now := time.Now()
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   now.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
