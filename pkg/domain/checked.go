package domain

import (
	"fmt"
	"math"

	"chocolate/pkg/platform/sentinel"
)

// CheckedAdd returns a+b, or sentinel.ErrOverflow when the sum does not fit
// in 32 bits.
func CheckedAdd(a, b uint32) (uint32, error) {
	if b > math.MaxUint32-a {
		return 0, fmt.Errorf("%d + %d: %w", a, b, sentinel.ErrOverflow)
	}
	return a + b, nil
}

// CheckedInc is CheckedAdd(a, 1).
func CheckedInc(a uint32) (uint32, error) {
	return CheckedAdd(a, 1)
}
