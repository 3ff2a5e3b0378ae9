// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"sitebudget/internal/model"
)

// FormatMoney formats a monetary value with a precision that scales
// down as amounts grow. e.g., 4.5 -> "$4.50", 45000 -> "$45,000"
func FormatMoney(amount float64) string {
	neg := ""
	if amount < 0 {
		neg = "-"
		amount = -amount
	}
	if amount >= 1000 {
		return neg + "$" + FormatNumber(int64(math.Round(amount)))
	}
	if amount >= 100 {
		return fmt.Sprintf("%s$%.0f", neg, amount)
	}
	return fmt.Sprintf("%s$%.2f", neg, amount)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
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

// FormatPercent formats a 0-100 percentage value.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatQuantity drops the decimals when a quantity is whole.
func FormatQuantity(q float64) string {
	if q == math.Trunc(q) {
		return strconv.FormatInt(int64(q), 10)
	}
	return fmt.Sprintf("%.2f", q)
}

// FormatDate renders a calendar date, or a dash when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(model.DateLayout)
}

// FormatDelta formats a money delta with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta)
	}
	return "-" + FormatMoney(-delta)
}

// StatusLabel maps raw status values to display form.
// e.g., "on_hold" -> "On Hold"
func StatusLabel(status string) string {
	words := strings.Split(status, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Truncate shortens a string to max runes with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
