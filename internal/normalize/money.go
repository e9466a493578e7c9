package normalize

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCents renders integer cents as a human-readable dollar string,
// e.g. 1234567 -> "$12,345.67". Used only in explanation text; all engine
// arithmetic stays in integer cents.
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return moneyPrinter.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}
