package metrics

import (
	"fmt"

	"MarketLens/internal/model"
)

// MACDResult holds the MACD line and its signal line, aligned point for
// point to the full input series.
type MACDResult struct {
	Line   model.IndicatorSeries
	Signal model.IndicatorSeries
}

// MACD computes the Moving Average Convergence Divergence: the MACD line is
// EMA(fast) - EMA(slow) of closes, the signal line is the EMA(signal) of the
// MACD line. With fast == slow the MACD line is identically zero.
func MACD(series *model.PriceSeries, fast, slow, signal int) (*MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, fmt.Errorf("%w: fast=%d slow=%d signal=%d", ErrInvalidWindow, fast, slow, signal)
	}
	if series.Len() == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrInsufficientData)
	}

	closes := series.Closes()
	emaFast := emaValues(closes, fast)
	emaSlow := emaValues(closes, slow)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signalLine := emaValues(line, signal)

	res := &MACDResult{
		Line:   make(model.IndicatorSeries, len(line)),
		Signal: make(model.IndicatorSeries, len(line)),
	}
	for i := range line {
		ts := series.Bars[i].Time
		res.Line[i] = model.IndicatorPoint{Time: ts, Value: line[i]}
		res.Signal[i] = model.IndicatorPoint{Time: ts, Value: signalLine[i]}
	}
	return res, nil
}
