package scudo

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// CheckPow2 returns a wrapped PowerOfTwoError if number is zero or not a power of two
func CheckPow2[T constraints.Unsigned](number T, name string) error {
	if number == 0 || number&(number-1) != 0 {
		return errors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// AlignUp rounds value up to the next multiple of alignment, which must be a power of two
func AlignUp(value uintptr, alignment uintptr) uintptr {
	return (value + alignment - 1) &^ (alignment - 1)
}

// EffectiveAlignment is the alignment actually handed to the engine: the requested alignment, raised to
// the engine's floor. Allocation and deallocation must both go through this function so that they agree.
func EffectiveAlignment(requested, floor uintptr) uintptr {
	return max(requested, floor)
}
