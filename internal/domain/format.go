package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders a USD value with thousands separators and no forced
// decimals: 100 -> "US$ 100", 100000 -> "US$ 100,000", 1234.5 -> "US$ 1,234.5".
func FormatUSD(v decimal.Decimal) string {
	return "US$ " + groupThousands(v.String())
}

// FormatUSDFixed renders a USD value with exactly two decimals, as the
// statistics panel does: 45123.456 -> "US$ 45123.46".
func FormatUSDFixed(v decimal.Decimal) string {
	return "US$ " + v.StringFixed(2)
}

// FormatBTC renders a BTC amount with three decimals: 1 -> "BTC 1.000".
func FormatBTC(v decimal.Decimal) string {
	return "BTC " + v.StringFixed(3)
}

// FormatBTCSuffix is the statistics-panel variant: 1 -> "1.000 BTC".
func FormatBTCSuffix(v decimal.Decimal) string {
	return v.StringFixed(3) + " BTC"
}

// groupThousands inserts commas into the integer part of a plain
// decimal string. The fractional part is left untouched.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	n := len(intPart)
	if n > 3 {
		var b strings.Builder
		rem := n % 3
		if rem > 0 {
			b.WriteString(intPart[:rem])
		}
		for i := rem; i < n; i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	out := intPart + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
