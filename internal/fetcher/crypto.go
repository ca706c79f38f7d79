package fetcher

import "strings"

// popularCryptos maps quote symbols to display names, mirroring the
// watchlist shown on the dashboard home screen.
var popularCryptos = map[string]string{
	"BTC-USD":   "Bitcoin",
	"ETH-USD":   "Ethereum",
	"BNB-USD":   "Binance Coin",
	"XRP-USD":   "Ripple",
	"ADA-USD":   "Cardano",
	"SOL-USD":   "Solana",
	"DOGE-USD":  "Dogecoin",
	"DOT-USD":   "Polkadot",
	"MATIC-USD": "Polygon",
	"SHIB-USD":  "Shiba Inu",
}

// NormalizeCryptoSymbol maps a bare coin ticker to its USD pair as quoted by
// the upstream feed: BTC -> BTC-USD. Already-suffixed symbols pass through.
func NormalizeCryptoSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.HasSuffix(symbol, "-USD") {
		return symbol
	}
	return symbol + "-USD"
}

// PopularCryptos returns the curated symbol-to-name watchlist.
func PopularCryptos() map[string]string {
	out := make(map[string]string, len(popularCryptos))
	for k, v := range popularCryptos {
		out[k] = v
	}
	return out
}
