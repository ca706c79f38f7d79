package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"MarketLens/internal/model"
)

// Bands holds the three aligned Bollinger band series.
type Bands struct {
	Middle model.IndicatorSeries
	Upper  model.IndicatorSeries
	Lower  model.IndicatorSeries
}

// BollingerBands computes Bollinger bands over closes: the middle band is the
// window moving average, the upper and lower bands sit numStdDev population
// standard deviations above and below it. All three series align to the same
// suffix of the input.
func BollingerBands(series *model.PriceSeries, window int, numStdDev float64) (*Bands, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	if series.Len() < window {
		return nil, fmt.Errorf("%w: Bollinger(%d) needs %d bars, have %d",
			ErrInsufficientData, window, window, series.Len())
	}

	closes := series.Closes()
	n := len(closes) - window + 1
	b := &Bands{
		Middle: make(model.IndicatorSeries, n),
		Upper:  make(model.IndicatorSeries, n),
		Lower:  make(model.IndicatorSeries, n),
	}

	for i := 0; i < n; i++ {
		wnd := closes[i : i+window]
		mean := stat.Mean(wnd, nil)
		sigma := stat.PopStdDev(wnd, nil)
		ts := series.Bars[i+window-1].Time

		b.Middle[i] = model.IndicatorPoint{Time: ts, Value: mean}
		b.Upper[i] = model.IndicatorPoint{Time: ts, Value: mean + numStdDev*sigma}
		b.Lower[i] = model.IndicatorPoint{Time: ts, Value: mean - numStdDev*sigma}
	}
	return b, nil
}
