package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places kept for balances.
const MoneyPlaces = 2

// dateLayouts are tried in order by ParseDate. Naive timestamps are the
// isoformat() output of the legacy data files and are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate converts an ISO-8601 date or timestamp into a time.Time
func ParseDate(dateStr string) (time.Time, error) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return time.Time{}, fmt.Errorf("invalid date format, expected ISO-8601")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format %q, expected ISO-8601", dateStr)
}

// FormatDate renders t in the textual form written to the data files.
// Fractional seconds are kept so durations survive a save and load.
func FormatDate(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// RentalDays returns the number of whole days between start and end.
// Partial days are dropped, so a 36 hour rental lasts one day.
func RentalDays(startDate, endDate time.Time) int {
	return int(math.Floor(endDate.Sub(startDate).Hours() / 24))
}

// CalculateRentalCost multiplies the daily rate by the whole-day duration
func CalculateRentalCost(dailyRate decimal.Decimal, days int) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(int64(days)))
}

// RoundMoney rounds an amount to MoneyPlaces decimal places
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// ParseMoney parses a textual amount such as "125.50"
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %v", s, err)
	}
	return d, nil
}

// FormatMoney renders an amount with exactly MoneyPlaces decimals
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPlaces)
}
