// Package money holds the storefront's currency and quantity primitives.
//
// Backend records carry prices as integer minor units (cents). Views and the
// cart work in decimal major units. All arithmetic that produces a displayed
// or submitted amount goes through shopspring/decimal so that sums such as
// 79.99*2 + 99.99 land exactly on 259.97.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is an amount in minor currency units
type Cents int64

var hundred = decimal.NewFromInt(100)

// Dollars converts minor units to major units without rounding.
func (c Cents) Dollars() float64 {
	return decimal.New(int64(c), -2).InexactFloat64()
}

// FromDollars converts a major-unit amount to cents, rounding half away from zero.
func FromDollars(amount float64) Cents {
	return Cents(decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart())
}

// FromDecimal converts a decimal major-unit amount to cents.
func FromDecimal(amount decimal.Decimal) Cents {
	return Cents(amount.Mul(hundred).Round(0).IntPart())
}

// LineTotal returns price*quantity rounded to the cent.
func LineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// FormatCurrency renders an amount as "$1,234.56".
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	return sign + "$" + groupThousands(whole) + "." + frac
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
