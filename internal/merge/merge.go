// Package merge concatenates per-chunk partial results.
package merge

// Concat joins partials in chunk order into one freshly allocated slice.
//
// When k >= 0 the output holds at most k indices: copying stops once the
// cap is reached, so surplus matches of later chunks are dropped, not the
// largest indices overall. A negative k means no cap.
func Concat(partials [][]int, k int) []int {
	total := 0
	for _, p := range partials {
		total += len(p)
	}
	if k >= 0 && total > k {
		total = k
	}

	out := make([]int, 0, total)
	for _, p := range partials {
		room := total - len(out)
		if room == 0 {
			break
		}
		if len(p) > room {
			p = p[:room]
		}
		out = append(out, p...)
	}
	return out
}
