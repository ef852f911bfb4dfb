package ds

// MakeChunks splits ts into consecutive chunks of n elements. The chunks
// share memory with ts; a trailing short chunk is kept. For example,
//
//	MakeChunks([]int{1, 2, 3, 4, 5}, 2)
//
// returns
//
//	[][]int{{1, 2}, {3, 4}, {5}}
func MakeChunks[T any](ts []T, n int) [][]T {
	chunks := make([][]T, 0, len(ts)/n+1)
	for start := 0; start < len(ts); start += n {
		end := start + n
		if end > len(ts) {
			end = len(ts)
		}
		chunks = append(chunks, ts[start:end:end])
	}
	return chunks
}
