// Package format renders domain values for terminal output.
package format

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Money rounds a stored amount to two decimals for display only.
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Days prints a work-day count without trailing zeros (21, 20.5).
func Days(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// Period is "January 2024".
func Period(month, year int) string {
	if month < 1 || month > 12 {
		return "?"
	}
	return time.Month(month).String() + " " + strconv.Itoa(year)
}
