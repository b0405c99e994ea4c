package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentsDollars(t *testing.T) {
	assert.Equal(t, 79.99, Cents(7999).Dollars())
	assert.Equal(t, 0.0, Cents(0).Dollars())
	assert.Equal(t, float64(1999)/100, Cents(1999).Dollars())
}

func TestFromDollars(t *testing.T) {
	assert.Equal(t, Cents(1999), FromDollars(19.99))
	assert.Equal(t, Cents(1000), FromDollars(9.995))
	assert.Equal(t, Cents(0), FromDollars(0))
}

func TestLineTotal(t *testing.T) {
	total := LineTotal(79.99, 2).Add(LineTotal(99.99, 1))
	assert.Equal(t, 259.97, total.InexactFloat64())
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{29.99, "$29.99"},
		{5, "$5.00"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{-9.99, "-$9.99"},
		{999.999, "$1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount))
		})
	}
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 3, ClampQuantity(3, 150, MinQuantity, MaxQuantity))
	assert.Equal(t, 5, ClampQuantity(3, 5, MinQuantity, MaxQuantity))
	assert.Equal(t, 3, ClampQuantity(3, 0, MinQuantity, MaxQuantity))
	assert.Equal(t, 99, ClampQuantity(3, 99, MinQuantity, MaxQuantity))
	assert.Equal(t, 1, ClampQuantity(3, 1, MinQuantity, MaxQuantity))
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 4, ParseQuantity(4, "abc", MinQuantity, MaxQuantity))
	assert.Equal(t, 4, ParseQuantity(4, "", MinQuantity, MaxQuantity))
	assert.Equal(t, 12, ParseQuantity(4, " 12 ", MinQuantity, MaxQuantity))
	assert.Equal(t, 4, ParseQuantity(4, "100", MinQuantity, MaxQuantity))
}

func TestStep(t *testing.T) {
	assert.Equal(t, 2, Increment(1, MaxQuantity))
	assert.Equal(t, 99, Increment(99, MaxQuantity))
	assert.Equal(t, 1, Decrement(1, MinQuantity))
	assert.Equal(t, 4, Decrement(5, MinQuantity))
}
