// Package quotes provides market quote clients for BRAPI and Yahoo Finance,
// a provider resolver, and a Redis quote cache.
package quotes

import "strings"

// NormalizeB3 returns the Yahoo form of a B3 ticker: PETR4 -> PETR4.SA.
// Tickers already carrying the suffix pass through.
func NormalizeB3(symbol string) string {
	s := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(symbol)), " ", "")
	if s == "" || strings.HasSuffix(s, ".SA") {
		return s
	}
	return s + ".SA"
}

// BrapiSymbol returns the BRAPI form of a B3 ticker: PETR4.SA -> PETR4.
func BrapiSymbol(symbol string) string {
	s := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(symbol)), " ", "")
	return strings.TrimSuffix(s, ".SA")
}

// CryptoPair returns the Yahoo pair for a crypto symbol: BTC + USD -> BTC-USD.
// Symbols already holding a pair separator pass through.
func CryptoPair(symbol, currency string) string {
	base := strings.ToUpper(strings.TrimSpace(symbol))
	if base == "" || strings.Contains(base, "-") {
		return base
	}
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		cur = "USD"
	}
	return base + "-" + cur
}
