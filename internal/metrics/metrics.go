// Package metrics computes technical indicators and performance statistics
// over an in-memory price series. Every function is pure: no I/O, no shared
// state, deterministic for a given input.
//
// Windowed indicators align to a suffix of the input series; the leading
// window-1 bars have no defined value and are omitted from the output rather
// than padded, so outputs never silently misalign with input timestamps.
package metrics

import "errors"

// Annualization factors: number of return periods per year for daily bars.
const (
	TradingDaysEquity = 252
	TradingDaysCrypto = 365
)

// Default indicator parameters, matching common charting conventions.
const (
	DefaultRSIWindow       = 14
	DefaultBollingerWindow = 20
	DefaultBollingerStdDev = 2.0
	DefaultMACDFast        = 12
	DefaultMACDSlow        = 26
	DefaultMACDSignal      = 9
)

var (
	// ErrInvalidWindow is returned for non-positive windows, or for a
	// moving-average window longer than the series.
	ErrInvalidWindow = errors.New("invalid window")

	// ErrInsufficientData is returned when a series is shorter than the
	// minimum an operation needs; no partial result is produced.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrUndefinedRatio is returned when a ratio's denominator is zero,
	// e.g. the Sharpe ratio of a series with zero volatility.
	ErrUndefinedRatio = errors.New("ratio undefined: zero volatility")
)
