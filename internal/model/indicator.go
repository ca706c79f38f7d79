package model

import "time"

// IndicatorPoint pairs one computed value with the timestamp of the bar it
// belongs to.
type IndicatorPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// IndicatorSeries is a computed series aligned to a suffix of the input
// PriceSeries: the leading window-1 bars of a windowed indicator have no
// defined value and are omitted.
type IndicatorSeries []IndicatorPoint

// Last returns the most recent point, or false for an empty series.
func (s IndicatorSeries) Last() (IndicatorPoint, bool) {
	if len(s) == 0 {
		return IndicatorPoint{}, false
	}
	return s[len(s)-1], true
}

// Values extracts the raw values in series order.
func (s IndicatorSeries) Values() []float64 {
	vals := make([]float64, len(s))
	for i, p := range s {
		vals[i] = p.Value
	}
	return vals
}

// IndicatorSnapshot holds the latest value of each common technical indicator.
type IndicatorSnapshot struct {
	SMA20      float64 `json:"sma_20"`
	SMA50      float64 `json:"sma_50"`
	RSI        float64 `json:"rsi"`
	BBUpper    float64 `json:"bb_upper"`
	BBMiddle   float64 `json:"bb_middle"`
	BBLower    float64 `json:"bb_lower"`
	MACDLine   float64 `json:"macd_line"`
	MACDSignal float64 `json:"macd_signal"`
}
