package metrics

import (
	"fmt"

	"MarketLens/internal/model"
)

// RollingMean computes trailing-window arithmetic means over values.
// The result has len(values)-window+1 entries, one per fully covered window.
func RollingMean(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	if len(values) < window {
		return nil, fmt.Errorf("%w: window %d exceeds %d values", ErrInvalidWindow, window, len(values))
	}

	out := make([]float64, 0, len(values)-window+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out, nil
}

// MovingAverage computes the simple moving average of closes over window.
// The output aligns to the suffix of the input: the first point carries the
// timestamp of bar window-1, and len(result) = series.Len()-window+1.
func MovingAverage(series *model.PriceSeries, window int) (model.IndicatorSeries, error) {
	means, err := RollingMean(series.Closes(), window)
	if err != nil {
		return nil, err
	}

	out := make(model.IndicatorSeries, len(means))
	for i, m := range means {
		out[i] = model.IndicatorPoint{Time: series.Bars[i+window-1].Time, Value: m}
	}
	return out, nil
}

// EMA computes the exponential moving average of closes with smoothing
// α = 2/(period+1), seeded with the first close: EMA[0] = close[0].
func EMA(series *model.PriceSeries, period int) (model.IndicatorSeries, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, period)
	}
	if series.Len() == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrInsufficientData)
	}

	values := emaValues(series.Closes(), period)
	out := make(model.IndicatorSeries, len(values))
	for i, v := range values {
		out[i] = model.IndicatorPoint{Time: series.Bars[i].Time, Value: v}
	}
	return out, nil
}

func emaValues(values []float64, period int) []float64 {
	alpha := 2.0 / (float64(period) + 1.0)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
