// Package cli provides formatting, rendering, and CSV projection
// utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// Currency is the symbol printed before money amounts. Set once at
// startup from config.
var Currency = "£"

// FormatMoney formats a money amount with the configured currency
// symbol, two decimals, negative sign before the symbol.
// e.g., 4.7 -> "£4.70", -1.5 -> "-£1.50"
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + Currency + fmt.Sprintf("%.2f", -v)
	}
	return Currency + fmt.Sprintf("%.2f", v)
}

// FormatSigned formats a money delta with an explicit sign.
// e.g., 4.7 -> "+£4.70"
func FormatSigned(v float64) string {
	if v >= 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatKwh formats an energy amount.
// e.g., 42.5 -> "42.5 kWh"
func FormatKwh(v float64) string {
	return trimZeros(fmt.Sprintf("%.2f", v)) + " kWh"
}

// FormatRate formats a per-kWh price with three decimals.
// e.g., 0.56 -> "£0.560/kWh"
func FormatRate(v float64) string {
	return Currency + fmt.Sprintf("%.3f", v) + "/kWh"
}

// FormatPerMile formats a per-mile cost in pence-style minor units when
// small, otherwise as money.
func FormatPerMile(v float64) string {
	return Currency + fmt.Sprintf("%.3f", v) + "/mi"
}

// FormatNumber formats a float dropping trailing zeros.
// e.g., 42.50 -> "42.5", 42.00 -> "42"
func FormatNumber(v float64) string {
	return trimZeros(fmt.Sprintf("%.2f", v))
}

// FormatCount adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
