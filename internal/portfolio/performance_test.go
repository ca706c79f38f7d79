package portfolio

import (
	"math"
	"testing"
	"time"

	"MarketLens/internal/model"
)

func dailySeries(symbol string, closes ...float64) *model.PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Time: base.AddDate(0, 0, i), Close: c}
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars}
}

func TestPerformance_TwoHoldings(t *testing.T) {
	p := &model.Portfolio{
		Name: "test",
		Holdings: map[string]model.Holding{
			"AAA": {Shares: 10, PurchasePrice: 100}, // invested 1000, now 1200
			"BBB": {Shares: 20, PurchasePrice: 50},  // invested 1000, now 900
		},
	}
	data := map[string]*model.PriceSeries{
		"AAA": dailySeries("AAA", 100, 110, 120),
		"BBB": dailySeries("BBB", 50, 48, 45),
	}

	perf, err := Performance(p, data, 0.02)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perf.TotalInvestment != 2000 {
		t.Errorf("investment %.2f, want 2000", perf.TotalInvestment)
	}
	if perf.CurrentValue != 2100 {
		t.Errorf("value %.2f, want 2100", perf.CurrentValue)
	}
	if perf.TotalReturn != 100 {
		t.Errorf("return %.2f, want 100", perf.TotalReturn)
	}
	if math.Abs(perf.TotalReturnPct-5) > 1e-9 {
		t.Errorf("return pct %.4f, want 5", perf.TotalReturnPct)
	}
	// Weighted: equal weights, (+20% - 10%) / 2 = +5%.
	if math.Abs(perf.WeightedReturnPct-5) > 1e-9 {
		t.Errorf("weighted return pct %.4f, want 5", perf.WeightedReturnPct)
	}
	if perf.Volatility <= 0 {
		t.Errorf("expected positive volatility, got %.4f", perf.Volatility)
	}
	if !perf.SharpeRatio.Valid {
		t.Error("expected Sharpe ratio defined for non-zero volatility")
	}
}

func TestPerformance_MissingSymbolSkipped(t *testing.T) {
	p := &model.Portfolio{
		Name: "partial",
		Holdings: map[string]model.Holding{
			"AAA":  {Shares: 1, PurchasePrice: 100},
			"GONE": {Shares: 5, PurchasePrice: 10},
		},
	}
	data := map[string]*model.PriceSeries{
		"AAA": dailySeries("AAA", 100, 105, 110),
	}

	perf, err := Performance(p, data, 0.02)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perf.TotalInvestment != 100 {
		t.Errorf("investment %.2f should count only priced holdings", perf.TotalInvestment)
	}
}

func TestPerformance_NoDataFails(t *testing.T) {
	p := &model.Portfolio{
		Name:     "empty",
		Holdings: map[string]model.Holding{"AAA": {Shares: 1, PurchasePrice: 1}},
	}
	if _, err := Performance(p, map[string]*model.PriceSeries{}, 0.02); err == nil {
		t.Error("expected error with no price data")
	}
}

func TestPerformance_ZeroVolatilityLeavesSharpeNull(t *testing.T) {
	p := &model.Portfolio{
		Name:     "flat",
		Holdings: map[string]model.Holding{"AAA": {Shares: 1, PurchasePrice: 100}},
	}
	data := map[string]*model.PriceSeries{
		"AAA": dailySeries("AAA", 100, 100, 100, 100),
	}

	perf, err := Performance(p, data, 0.02)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perf.SharpeRatio.Valid {
		t.Error("Sharpe should be null for a flat value curve")
	}
	if perf.MaxDrawdown != 0 {
		t.Errorf("flat curve drawdown %.4f, want 0", perf.MaxDrawdown)
	}
}
