package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDurationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)
	priceRe       = regexp.MustCompile(`\$?\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`)
	codeFenceRe   = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
)

// ParseInt converts string to int
func ParseInt(value string) int {
	parsedValue, _ := strconv.Atoi(value)
	return parsedValue
}

// ParseISODuration converts an ISO-8601 flight duration such as PT2H30M to
// minutes. Anything unparseable yields 0.
func ParseISODuration(iso string) int {
	match := isoDurationRe.FindStringSubmatch(iso)
	if match == nil {
		return 0
	}
	return ParseInt(match[1])*60 + ParseInt(match[2])
}

// ParsePriceText pulls the first dollar amount out of free text like
// "under $1,250" or "around 800". Thousands separators are dropped.
func ParsePriceText(text string) (float64, bool) {
	match := priceRe.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// StripCodeFence removes a surrounding markdown code fence from model output.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if match := codeFenceRe.FindStringSubmatch(text); match != nil {
		return match[1]
	}
	return text
}

// ParseProviderTime parses a provider timestamp. Zone-less values are UTC.
func ParseProviderTime(value string) (time.Time, error) {
	if t, err := time.Parse(PROVIDER_TIME_LAYOUT, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// DatePart returns the YYYY-MM-DD prefix of a provider timestamp.
func DatePart(value string) string {
	date, _, _ := strings.Cut(value, "T")
	return date
}
