package store

import "time"

// QuoteSnapshot is one recorded observation of a symbol's price.
type QuoteSnapshot struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	ChangePct float64   `json:"change"`
	At        time.Time `json:"at"`
}

// PortfolioValuation records a portfolio's value at valuation time.
type PortfolioValuation struct {
	Name       string    `json:"name"`
	Investment float64   `json:"investment"`
	Value      float64   `json:"value"`
	At         time.Time `json:"at"`
}

// Store persists user activity and periodic observations.
type Store interface {
	// RecordSearch appends a symbol lookup to the search history.
	RecordSearch(symbol string) error
	// RecentSearches returns up to limit distinct symbols, most recent first.
	RecentSearches(limit int) ([]string, error)
	ClearSearches() error

	RecordQuote(q *QuoteSnapshot) error
	// RecentQuotes returns up to limit snapshots for symbol, newest first.
	RecentQuotes(symbol string, limit int) ([]QuoteSnapshot, error)

	RecordValuation(v *PortfolioValuation) error

	Close() error
}
