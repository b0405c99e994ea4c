package money

import (
	"strconv"
	"strings"
)

// Bounds for a single cart line.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// ClampQuantity accepts proposed when it lies in [min, max] and otherwise
// keeps current. Rejection is silent: the value guards a numeric input field.
func ClampQuantity(current, proposed, min, max int) int {
	if proposed < min || proposed > max {
		return current
	}
	return proposed
}

// ParseQuantity is ClampQuantity over raw field input. Non-numeric input
// keeps current.
func ParseQuantity(current int, input string, min, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return current
	}
	return ClampQuantity(current, n, min, max)
}

// Increment steps value up by one unless it is already at max.
func Increment(value, max int) int {
	if value < max {
		return value + 1
	}
	return value
}

// Decrement steps value down by one unless it is already at min.
func Decrement(value, min int) int {
	if value > min {
		return value - 1
	}
	return value
}
