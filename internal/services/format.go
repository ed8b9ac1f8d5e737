package services

import (
	"strconv"
	"strings"
)

// takaSign is the BDT currency symbol used in user-facing advisory text.
const takaSign = "৳"

// formatMoney renders an amount as a currency string with thousands
// separators and two decimal places, e.g. 15000 -> "৳15,000.00".
func formatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(takaSign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
