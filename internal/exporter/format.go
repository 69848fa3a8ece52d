package exporter

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatPercent renders a share as a percentage rounded to two decimals,
// e.g. 0.6667 becomes "66.67%".
func FormatPercent(share float64) string {
	return decimal.NewFromFloat(share).Mul(decimal.NewFromInt(100)).RoundBank(2).StringFixed(2) + "%"
}

// formatInt formats an int for table cells
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
