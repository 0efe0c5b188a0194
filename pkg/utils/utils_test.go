package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODuration(t *testing.T) {
	assert.Equal(t, 150, ParseISODuration("PT2H30M"))
	assert.Equal(t, 600, ParseISODuration("PT10H"))
	assert.Equal(t, 45, ParseISODuration("PT45M"))
	assert.Equal(t, 0, ParseISODuration("P1D"))
	assert.Equal(t, 0, ParseISODuration(""))
}

func TestParsePriceText(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"under $650", 650, true},
		{"around 800", 800, true},
		{"$ 499.99 max", 499.99, true},
		{"below $1,250", 1250, true},
		{"$1,250,000 dream trip", 1250000, true},
		{"cheap", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePriceText(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.InDelta(t, tt.want, got, 0.001, tt.in)
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence(`  {"a":1} `))
}

func TestParseProviderTime(t *testing.T) {
	got, err := ParseProviderTime("2025-03-15T10:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC), got)

	got, err = ParseProviderTime("2025-03-15T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 15, 8, 30, 0, 0, time.UTC), got)

	_, err = ParseProviderTime("tomorrow")
	assert.Error(t, err)

	assert.Equal(t, "2025-03-15", DatePart("2025-03-15T10:30:00"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", FormatDuration(45))
	assert.Equal(t, "3h", FormatDuration(180))
	assert.Equal(t, "2h 30m", FormatDuration(150))
	assert.Equal(t, "0m", FormatDuration(0))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$420", FormatPrice(420, "USD"))
	assert.Equal(t, "$1,235", FormatPrice(1234.5, "USD"))
	assert.Equal(t, "€99", FormatPrice(99.2, "EUR"))
	assert.Equal(t, "CHF 300", FormatPrice(300, "CHF"))
	assert.Equal(t, "$12", FormatPrice(12, ""))
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 35.0, RoundHalfUp(35.38))
	assert.Equal(t, 3.0, RoundHalfUp(2.5))
	assert.Equal(t, -2.0, RoundHalfUp(-2.5))
	assert.Equal(t, -3.0, RoundHalfUp(-2.6))
}

func TestWeeksUntil(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, WeeksUntil(now, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, WeeksUntil(now, now.Add(24*time.Hour)))
	assert.Equal(t, 0, WeeksUntil(now, now))
	assert.Equal(t, "2025-01-15", FormatDate(now))
}
