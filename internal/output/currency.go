package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as euros with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "€" + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercentage formats a rate such as 0.045 as "4.50%"
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(2) + "%"
}

// FormatFraction formats a year fraction with four decimals
func FormatFraction(f decimal.Decimal) string {
	return f.StringFixed(4)
}
