package utils

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatDuration renders minutes as "2h 30m", "45m" or "3h".
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"MXN": "MX$",
}

// FormatPrice renders a whole-unit amount with currency symbol and grouping,
// e.g. $1,235. Currencies without a known symbol are prefixed with their code.
func FormatPrice(price float64, code string) string {
	if code == "" {
		code = "USD"
	}
	prefix, ok := currencySymbols[code]
	if !ok {
		prefix = code + " "
	}
	amount := int64(RoundHalfUp(price))
	if amount < 0 {
		return "-" + prefix + printer.Sprintf("%d", -amount)
	}
	return prefix + printer.Sprintf("%d", amount)
}

// RoundHalfUp rounds to the nearest integer with halves going toward
// positive infinity (-2.5 rounds to -2).
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// FormatDate renders t as YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DATE_LAYOUT)
}

// WeeksUntil returns the number of weeks from now to t, rounded up.
func WeeksUntil(now, t time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / (7 * 24)))
}
