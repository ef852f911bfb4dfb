package ds

// Repeat returns a slice holding n copies of initial.
func Repeat[T any](n int, initial T) []T {
	if n <= 0 {
		return []T{}
	}
	ts := make([]T, n)
	for i := range ts {
		ts[i] = initial
	}
	return ts
}
