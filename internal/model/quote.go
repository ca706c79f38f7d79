package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// QuoteInfo carries descriptive and fundamental data for a symbol. The
// upstream feed omits fundamentals for many symbols (indices, crypto), so
// those fields are nullable.
type QuoteInfo struct {
	Symbol           string     `json:"symbol"`
	Name             string     `json:"name,omitempty"`
	Currency         string     `json:"currency,omitempty"`
	MarketCap        null.Float `json:"market_cap"`
	MarketCapDisplay string     `json:"market_cap_display,omitempty"`
	PERatio          null.Float `json:"pe_ratio"`
	Beta             null.Float `json:"beta"`
	DividendYield    null.Float `json:"dividend_yield"`
	DividendDisplay  string     `json:"dividend_yield_display,omitempty"`
}

// QuoteStats holds derived price statistics for one symbol over the fetched
// period. Volatility is annualized and expressed in percent.
type QuoteStats struct {
	CurrentPrice  float64 `json:"current_price"`
	PriceChange   float64 `json:"price_change"`
	PercentChange float64 `json:"percent_change"`
	High52w       float64 `json:"high_52w"`
	Low52w        float64 `json:"low_52w"`
	AvgPrice      float64 `json:"avg_price"`
	MedianPrice   float64 `json:"median_price"`
	Volume        float64 `json:"volume"`
	VolumeDisplay string  `json:"volume_display,omitempty"`
	AvgVolume     float64 `json:"avg_volume"`
	Volatility    float64 `json:"price_volatility"`
}

// TrendingQuote is a compact mover entry for the trending endpoints.
type TrendingQuote struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change"`
}

// MarketSnapshot is the full per-symbol payload: history plus everything
// derived from it.
type MarketSnapshot struct {
	Symbol     string             `json:"symbol"`
	Bars       []Bar              `json:"data"`
	Info       *QuoteInfo         `json:"info,omitempty"`
	Stats      *QuoteStats        `json:"stats"`
	Indicators *IndicatorSnapshot `json:"indicators"`
	FetchedAt  time.Time          `json:"timestamp"`
}
