package currency

import "fmt"

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "C$",
	"AUD": "A$",
	"JPY": "¥",
	"CHF": "CHF ",
}

// Format renders an amount for display in the given ISO 4217 currency. No
// conversion happens here; unknown codes fall back to a "CODE " prefix.
func Format(amount float64, code string) string {
	symbol, ok := symbols[code]
	if !ok {
		symbol = code + " "
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
