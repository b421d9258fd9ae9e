package utils

import (
	"fmt"
	"math"
)

// FormatMoney renders an amount with exactly two decimals, e.g. $599.98.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", RoundCents(amount))
}

// RoundCents rounds half away from zero to two decimals. Only used at
// presentation time.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
