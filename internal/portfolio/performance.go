package portfolio

import (
	"fmt"
	"math"

	"github.com/guregu/null/v6"
	"gonum.org/v1/gonum/stat"

	"MarketLens/internal/metrics"
	"MarketLens/internal/model"
)

// volatilityWindow is the number of trailing daily returns used for the
// portfolio volatility estimate.
const volatilityWindow = 30

// Performance computes performance metrics for a portfolio against fetched
// price data. Holdings whose symbol is missing from data are skipped, so one
// failed fetch degrades the valuation instead of breaking it. riskFreeRate
// is the annual risk-free return used for the Sharpe ratio.
func Performance(p *model.Portfolio, data map[string]*model.PriceSeries, riskFreeRate float64) (*model.PortfolioPerformance, error) {
	perf := &model.PortfolioPerformance{NumHoldings: len(p.Holdings)}

	var totalInvestment, currentValue, weightedReturn float64
	priced := make(map[string]model.Holding, len(p.Holdings))
	for symbol, h := range p.Holdings {
		series, ok := data[symbol]
		if !ok || series.Len() == 0 {
			continue
		}
		priced[symbol] = h
		totalInvestment += h.Shares * h.PurchasePrice
		currentValue += h.Shares * series.Bars[series.Len()-1].Close
	}
	if len(priced) == 0 || totalInvestment == 0 {
		return nil, fmt.Errorf("no price data for any holding in %q", p.Name)
	}

	for symbol, h := range priced {
		series := data[symbol]
		current := series.Bars[series.Len()-1].Close
		stockReturn := (current - h.PurchasePrice) / h.PurchasePrice
		weight := h.Shares * h.PurchasePrice / totalInvestment
		weightedReturn += stockReturn * weight
	}

	perf.TotalInvestment = totalInvestment
	perf.CurrentValue = currentValue
	perf.TotalReturn = currentValue - totalInvestment
	perf.TotalReturnPct = perf.TotalReturn / totalInvestment * 100
	perf.WeightedReturnPct = weightedReturn * 100

	valueSeries := valueCurve(p.Name, priced, data)
	if valueSeries.Len() > 1 {
		if dd, err := metrics.MaxDrawdown(valueSeries); err == nil {
			perf.MaxDrawdown = dd * 100
		}

		rets, err := metrics.Returns(valueSeries)
		if err == nil && len(rets) >= 2 {
			if len(rets) > volatilityWindow {
				rets = rets[len(rets)-volatilityWindow:]
			}
			perf.Volatility = stat.StdDev(rets, nil) * math.Sqrt(metrics.TradingDaysEquity) * 100
		}
	}

	if perf.Volatility > 0 {
		perf.SharpeRatio = null.FloatFrom((weightedReturn - riskFreeRate) / (perf.Volatility / 100))
	}

	return perf, nil
}

// valueCurve builds the portfolio's daily value series over the trailing
// window where every priced holding has data.
func valueCurve(name string, holdings map[string]model.Holding, data map[string]*model.PriceSeries) *model.PriceSeries {
	minLen := -1
	var ref *model.PriceSeries
	for symbol := range holdings {
		series := data[symbol]
		if minLen == -1 || series.Len() < minLen {
			minLen = series.Len()
			ref = series
		}
	}
	if minLen <= 0 {
		return &model.PriceSeries{Symbol: name}
	}

	bars := make([]model.Bar, minLen)
	for i := 0; i < minLen; i++ {
		var value float64
		for symbol, h := range holdings {
			series := data[symbol]
			bar := series.Bars[series.Len()-minLen+i]
			value += h.Shares * bar.Close
		}
		bars[i] = model.Bar{
			Time:  ref.Bars[ref.Len()-minLen+i].Time,
			Close: value,
		}
	}
	return &model.PriceSeries{Symbol: name, Bars: bars}
}
