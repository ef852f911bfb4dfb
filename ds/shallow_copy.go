package ds

// ShallowCopy copies the slice header's backing array so callers can't
// mutate the original through the result.
func ShallowCopy[T any](ts []T) []T {
	tsCopy := make([]T, len(ts))
	copy(tsCopy, ts)
	return tsCopy
}
