package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"MarketLens/internal/model"
)

// Returns computes simple period-over-period returns of closes:
// r[i] = close[i+1]/close[i] - 1. Requires at least two bars.
func Returns(series *model.PriceSeries) ([]float64, error) {
	closes := series.Closes()
	if len(closes) < 2 {
		return nil, fmt.Errorf("%w: returns need 2 bars, have %d", ErrInsufficientData, len(closes))
	}

	out := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		out[i-1] = closes[i]/closes[i-1] - 1
	}
	return out, nil
}

// Volatility computes the sample standard deviation of simple returns,
// annualized by sqrt(annualizationFactor). The factor is the number of
// return periods per year (TradingDaysEquity for daily equity bars).
// Requires at least three bars (two returns).
func Volatility(series *model.PriceSeries, annualizationFactor float64) (float64, error) {
	rets, err := Returns(series)
	if err != nil {
		return 0, err
	}
	if len(rets) < 2 {
		return 0, fmt.Errorf("%w: volatility needs 2 returns, have %d", ErrInsufficientData, len(rets))
	}
	return stat.StdDev(rets, nil) * math.Sqrt(annualizationFactor), nil
}

// SharpeRatio computes the annualized risk-adjusted return:
// (mean period return - riskFreeRate) / period volatility, scaled by
// sqrt(annualizationFactor). riskFreeRate is per return period, in the same
// units as the returns. Returns ErrUndefinedRatio when volatility is zero.
func SharpeRatio(series *model.PriceSeries, riskFreeRate, annualizationFactor float64) (float64, error) {
	rets, err := Returns(series)
	if err != nil {
		return 0, err
	}
	if len(rets) < 2 {
		return 0, fmt.Errorf("%w: sharpe needs 2 returns, have %d", ErrInsufficientData, len(rets))
	}

	sigma := stat.StdDev(rets, nil)
	if sigma == 0 {
		return 0, ErrUndefinedRatio
	}
	mean := stat.Mean(rets, nil)
	return (mean - riskFreeRate) / sigma * math.Sqrt(annualizationFactor), nil
}

// MaxDrawdown computes the maximum peak-to-trough decline of the close curve
// as a positive fraction in [0,1), in a single pass tracking the running
// peak. A monotonically increasing series yields 0.
func MaxDrawdown(series *model.PriceSeries) (float64, error) {
	closes := series.Closes()
	if len(closes) == 0 {
		return 0, fmt.Errorf("%w: empty series", ErrInsufficientData)
	}

	peak := closes[0]
	maxDD := 0.0
	for _, c := range closes[1:] {
		if c > peak {
			peak = c
			continue
		}
		if peak > 0 {
			if dd := (peak - c) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD, nil
}

// RollingVolatility computes the sample standard deviation of simple returns
// over a trailing window of `window` returns, unannualized. Requires
// window+1 bars; the output aligns to the suffix of the input.
func RollingVolatility(series *model.PriceSeries, window int) (model.IndicatorSeries, error) {
	if window < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	rets, err := Returns(series)
	if err != nil {
		return nil, err
	}
	if len(rets) < window {
		return nil, fmt.Errorf("%w: rolling volatility(%d) needs %d bars, have %d",
			ErrInsufficientData, window, window+1, series.Len())
	}

	out := make(model.IndicatorSeries, 0, len(rets)-window+1)
	for i := window; i <= len(rets); i++ {
		out = append(out, model.IndicatorPoint{
			Time:  series.Bars[i].Time,
			Value: stat.StdDev(rets[i-window:i], nil),
		})
	}
	return out, nil
}
