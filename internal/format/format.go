// Package format renders numbers for display: market caps, percentages,
// volumes. Kept out of the model so the API payload stays numeric.
package format

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/guregu/null/v6"
)

// MarketCap abbreviates a market capitalization with a T/B/M suffix,
// e.g. 2.95e12 -> "$2.95T". Zero or null yields "N/A".
func MarketCap(v null.Float) string {
	if !v.Valid || v.Float64 == 0 {
		return "N/A"
	}
	mc := v.Float64
	switch {
	case mc >= 1e12:
		return fmt.Sprintf("$%.2fT", mc/1e12)
	case mc >= 1e9:
		return fmt.Sprintf("$%.2fB", mc/1e9)
	case mc >= 1e6:
		return fmt.Sprintf("$%.2fM", mc/1e6)
	default:
		return fmt.Sprintf("$%.0f", mc)
	}
}

// Percent renders a fractional value as a percentage, "N/A" when null.
func Percent(v null.Float) string {
	if !v.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", v.Float64*100)
}

// Volume renders a share/coin volume with thousands separators.
func Volume(v float64) string {
	return humanize.Comma(int64(v))
}
