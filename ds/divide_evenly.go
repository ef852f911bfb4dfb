package ds

import (
	"golang.org/x/exp/constraints"
)

// DivideEvenly returns n / m and whether m divides n without remainder.
// A zero m never divides anything.
func DivideEvenly[T constraints.Integer](n T, m T) (T, bool) {
	if m == 0 {
		return 0, false
	}
	return n / m, n%m == 0
}
