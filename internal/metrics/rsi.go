package metrics

import (
	"fmt"

	"MarketLens/internal/model"
)

// RSI computes the Relative Strength Index over a rolling window of close
// deltas: the simple average of gains over the simple average of losses in
// the trailing window, scaled to [0,100]. A window with zero average loss
// yields 100. Requires at least window+1 bars; the output aligns to the
// suffix of the input, one point per bar from index window onward.
func RSI(series *model.PriceSeries, window int) (model.IndicatorSeries, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	if series.Len() < window+1 {
		return nil, fmt.Errorf("%w: RSI(%d) needs %d bars, have %d",
			ErrInsufficientData, window, window+1, series.Len())
	}

	closes := series.Closes()
	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	out := make(model.IndicatorSeries, 0, len(closes)-window)
	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > window {
			gainSum -= gains[i-window]
			lossSum -= losses[i-window]
		}
		if i < window {
			continue
		}

		var rsi float64
		if lossSum == 0 {
			rsi = 100.0
		} else {
			rs := gainSum / lossSum
			rsi = 100.0 - 100.0/(1.0+rs)
		}
		out = append(out, model.IndicatorPoint{Time: series.Bars[i].Time, Value: rsi})
	}
	return out, nil
}
