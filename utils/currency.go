package utils

import (
	"strings"

	"github.com/yeremiapane/bar-pos/models"
)

// FormatCurrency renders an amount with a symbol and thousands separators,
// e.g. 123456 cents with "$" -> "$1,234.56".
func FormatCurrency(symbol string, amount models.Money) string {
	s := amount.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	integerPart, decimalPart, _ := strings.Cut(s, ".")

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return sign + symbol + strings.Join(groups, ",") + "." + decimalPart
}
