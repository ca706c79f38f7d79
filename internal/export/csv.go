// Package export renders a price series as a CSV download with the derived
// columns analysts expect: per-day changes, moving averages, rolling
// volatility and volume ratios.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"time"

	"MarketLens/internal/format"
	"MarketLens/internal/metrics"
	"MarketLens/internal/model"
)

var columns = []string{
	"Date", "Open", "High", "Low", "Close", "Volume",
	"Daily_Change", "Daily_Change_Pct", "Price_Range", "Price_Range_Pct",
	"Daily_Return",
	"MA_7", "MA_20", "MA_50",
	"Volatility_7d", "Volatility_20d",
	"Volume_MA_20", "Volume_Ratio",
}

// HistoricalCSV writes the series as CSV. The first data row is a metadata
// record describing the symbol and export; windowed columns are blank for
// the leading bars where the indicator is undefined.
func HistoricalCSV(w io.Writer, series *model.PriceSeries, info *model.QuoteInfo) error {
	if series.Len() == 0 {
		return fmt.Errorf("export: empty series")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	if err := cw.Write(metadataRow(series, info)); err != nil {
		return err
	}

	n := series.Len()
	closes := series.Closes()
	ma7 := suffixColumn(n, rollingMeanOrNil(closes, 7))
	ma20 := suffixColumn(n, rollingMeanOrNil(closes, 20))
	ma50 := suffixColumn(n, rollingMeanOrNil(closes, 50))
	vol7 := suffixColumn(n, rollingVolOrNil(series, 7))
	vol20 := suffixColumn(n, rollingVolOrNil(series, 20))
	volumeMA20 := suffixColumn(n, rollingMeanOrNil(series.Volumes(), 20))

	for i, bar := range series.Bars {
		row := []string{
			bar.Time.Format("2006-01-02"),
			f(bar.Open), f(bar.High), f(bar.Low), f(bar.Close), f(bar.Volume),
			f(bar.Close - bar.Open),
			pctOf(bar.Close-bar.Open, bar.Open),
			f(bar.High - bar.Low),
			pctOf(bar.High-bar.Low, bar.Low),
			dailyReturn(closes, i),
			ma7[i], ma20[i], ma50[i],
			vol7[i], vol20[i],
			volumeMA20[i],
			volumeRatio(bar.Volume, volumeMA20[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func metadataRow(series *model.PriceSeries, info *model.QuoteInfo) []string {
	name, currency, marketCap := "N/A", "N/A", "N/A"
	if info != nil {
		if info.Name != "" {
			name = info.Name
		}
		if info.Currency != "" {
			currency = info.Currency
		}
		marketCap = format.MarketCap(info.MarketCap)
	}

	row := make([]string, len(columns))
	row[0] = "METADATA"
	row[1] = "Symbol: " + series.Symbol
	row[2] = "Company: " + name
	row[3] = "Currency: " + currency
	row[4] = "Market Cap: " + marketCap
	row[5] = "Export Date: " + time.Now().Format("2006-01-02 15:04:05")
	return row
}

func f(v float64) string { return fmt.Sprintf("%.6f", v) }

func pctOf(delta, base float64) string {
	if base == 0 {
		return ""
	}
	return f(delta / base * 100)
}

func dailyReturn(closes []float64, i int) string {
	if i == 0 || closes[i-1] == 0 {
		return ""
	}
	return f((closes[i]/closes[i-1] - 1) * 100)
}

func volumeRatio(volume float64, ma string) string {
	if ma == "" {
		return ""
	}
	var maVal float64
	if _, err := fmt.Sscanf(ma, "%f", &maVal); err != nil || maVal == 0 {
		return ""
	}
	return f(volume / maVal)
}

// suffixColumn right-aligns values into n formatted cells, blank-padding the
// undefined prefix.
func suffixColumn(n int, values []float64) []string {
	out := make([]string, n)
	offset := n - len(values)
	for i, v := range values {
		out[offset+i] = f(v)
	}
	return out
}

func rollingMeanOrNil(values []float64, window int) []float64 {
	means, err := metrics.RollingMean(values, window)
	if err != nil {
		log.Printf("[WARN] export MA%d: %v", window, err)
		return nil
	}
	return means
}

func rollingVolOrNil(series *model.PriceSeries, window int) []float64 {
	rv, err := metrics.RollingVolatility(series, window)
	if err != nil {
		log.Printf("[WARN] export volatility %dd: %v", window, err)
		return nil
	}
	return rv.Values()
}
