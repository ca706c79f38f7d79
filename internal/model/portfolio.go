package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// Holding is one position inside a portfolio.
type Holding struct {
	Shares        float64 `json:"shares"`
	PurchasePrice float64 `json:"purchase_price"`
}

// Portfolio is a named set of holdings tracked across sessions.
type Portfolio struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Holdings  map[string]Holding `json:"holdings"`
	CreatedAt time.Time          `json:"created_date"`
	UpdatedAt time.Time          `json:"last_updated"`
}

// PortfolioPerformance aggregates the performance metrics of a portfolio at
// valuation time. SharpeRatio is null when volatility is zero rather than a
// silent NaN. Percent fields are expressed in percent, MaxDrawdown included.
type PortfolioPerformance struct {
	TotalInvestment   float64    `json:"total_investment"`
	CurrentValue      float64    `json:"current_value"`
	TotalReturn       float64    `json:"total_return"`
	TotalReturnPct    float64    `json:"total_return_pct"`
	WeightedReturnPct float64    `json:"weighted_return_pct"`
	Volatility        float64    `json:"portfolio_volatility"`
	SharpeRatio       null.Float `json:"sharpe_ratio"`
	MaxDrawdown       float64    `json:"max_drawdown"`
	NumHoldings       int        `json:"number_of_holdings"`
}
