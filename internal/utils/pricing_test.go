package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("Date only", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), date)
	})

	t.Run("Naive timestamp", func(t *testing.T) {
		date, err := ParseDate("2024-01-15T10:30:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), date)
	})

	t.Run("RFC3339", func(t *testing.T) {
		date, err := ParseDate("2024-01-15T10:30:00+02:00")
		require.NoError(t, err)
		assert.True(t, date.Equal(time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)))
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("15/01/2024")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date format")
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseDate("  ")
		assert.Error(t, err)
	})
}

func TestFormatDate_RoundTrip(t *testing.T) {
	original := time.Date(2025, 3, 9, 14, 0, 0, 0, time.UTC)
	parsed, err := ParseDate(FormatDate(original))
	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))

	t.Run("Fractional seconds kept", func(t *testing.T) {
		original := time.Date(2025, 3, 9, 14, 0, 0, 500_000_000, time.UTC)
		parsed, err := ParseDate(FormatDate(original))
		require.NoError(t, err)
		assert.True(t, original.Equal(parsed))
	})
}

func TestRentalDays(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		end      time.Time
		expected int
	}{
		{"Two days", start.AddDate(0, 0, 2), 2},
		{"Partial day dropped", start.Add(36 * time.Hour), 1},
		{"Less than a day", start.Add(5 * time.Hour), 0},
		{"Across month end", time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RentalDays(start, tt.end))
		})
	}
}

func TestCalculateRentalCost(t *testing.T) {
	rate := decimal.RequireFromString("49.99")
	assert.True(t, decimal.RequireFromString("149.97").Equal(CalculateRentalCost(rate, 3)))
	assert.True(t, decimal.Zero.Equal(CalculateRentalCost(rate, 0)))
}

func TestMoneyHelpers(t *testing.T) {
	t.Run("Round", func(t *testing.T) {
		assert.Equal(t, "10.13", RoundMoney(decimal.RequireFromString("10.125")).String())
	})

	t.Run("Parse and format", func(t *testing.T) {
		d, err := ParseMoney(" 300 ")
		require.NoError(t, err)
		assert.Equal(t, "300.00", FormatMoney(d))
	})

	t.Run("Parse invalid", func(t *testing.T) {
		_, err := ParseMoney("abc")
		assert.Error(t, err)
	})
}
