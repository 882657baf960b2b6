package utils

import (
	"regexp"
	"strings"
)

// Common company-name aliases for US tickers.
var tickerAliases = map[string]string{
	"AAPL":       "AAPL",
	"APPLE":      "AAPL",
	"MSFT":       "MSFT",
	"MICROSOFT":  "MSFT",
	"GOOGL":      "GOOGL",
	"GOOGLE":     "GOOGL",
	"ALPHABET":   "GOOGL",
	"AMZN":       "AMZN",
	"AMAZON":     "AMZN",
	"META":       "META",
	"FACEBOOK":   "META",
	"TSLA":       "TSLA",
	"TESLA":      "TSLA",
	"NVDA":       "NVDA",
	"NVIDIA":     "NVDA",
	"NFLX":       "NFLX",
	"NETFLIX":    "NFLX",
	"JPM":        "JPM",
	"JPMORGAN":   "JPM",
	"BRK":        "BRK-B",
	"BERKSHIRE":  "BRK-B",
	"XOM":        "XOM",
	"EXXON":      "XOM",
	"WMT":        "WMT",
	"WALMART":    "WMT",
	"DIS":        "DIS",
	"DISNEY":     "DIS",
	"INTC":       "INTC",
	"INTEL":      "INTC",
	"AMD":        "AMD",
	"IBM":        "IBM",
	"ORCL":       "ORCL",
	"ORACLE":     "ORCL",
	"KO":         "KO",
	"COCA COLA":  "KO",
	"PG":         "PG",
	"BA":         "BA",
	"BOEING":     "BA",
	"GE":         "GE",
	"F":          "F",
	"FORD":       "F",
	"GM":         "GM",
	"UBER":       "UBER",
	"ABNB":       "ABNB",
	"AIRBNB":     "ABNB",
	"PYPL":       "PYPL",
	"PAYPAL":     "PYPL",
	"CRM":        "CRM",
	"SALESFORCE": "CRM",
	"V":          "V",
	"VISA":       "V",
	"MA":         "MA",
	"MASTERCARD": "MA",
}

// Major US index tickers.
var indexTickers = map[string]string{
	"SPX":       "S&P 500",
	"SP500":     "S&P 500",
	"S&P 500":   "S&P 500",
	"S&P500":    "S&P 500",
	"DJI":       "DOW JONES",
	"DOW":       "DOW JONES",
	"DOW JONES": "DOW JONES",
	"IXIC":      "NASDAQ COMPOSITE",
	"NASDAQ":    "NASDAQ COMPOSITE",
	"NDX":       "NASDAQ 100",
	"RUT":       "RUSSELL 2000",
	"VIX":       "VIX",
}

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// ValidTicker reports whether the input is a well-formed US ticker
// symbol: one to five uppercase letters after normalization.
func ValidTicker(ticker string) bool {
	if ticker == "" {
		return false
	}
	return tickerPattern.MatchString(strings.ToUpper(strings.TrimSpace(ticker)))
}

// NormalizeTicker normalizes a user-input ticker to its canonical
// exchange symbol. It handles aliases, uppercasing, and whitespace.
func NormalizeTicker(ticker string) string {
	ticker = strings.TrimSpace(strings.ToUpper(ticker))

	// Remove $ prefix if present (common in chat)
	ticker = strings.TrimPrefix(ticker, "$")

	// Check if it's an index
	if idx, ok := indexTickers[ticker]; ok {
		return idx
	}

	// Check aliases
	if canonical, ok := tickerAliases[ticker]; ok {
		return canonical
	}

	return ticker
}

// ToYahooSymbol converts a ticker to Yahoo Finance format. Index
// tickers map to their caret-prefixed Yahoo symbols; equities pass
// through unchanged.
func ToYahooSymbol(ticker string) string {
	ticker = NormalizeTicker(ticker)

	switch ticker {
	case "S&P 500":
		return "^GSPC"
	case "DOW JONES":
		return "^DJI"
	case "NASDAQ COMPOSITE":
		return "^IXIC"
	case "NASDAQ 100":
		return "^NDX"
	case "RUSSELL 2000":
		return "^RUT"
	case "VIX":
		return "^VIX"
	}

	return ticker
}

// IsIndex checks if the ticker is an index (not a stock).
func IsIndex(ticker string) bool {
	ticker = NormalizeTicker(ticker)
	_, ok := indexTickers[ticker]
	if ok {
		return true
	}
	// Also check if it was already resolved to an index name
	for _, v := range indexTickers {
		if v == ticker {
			return true
		}
	}
	return false
}
