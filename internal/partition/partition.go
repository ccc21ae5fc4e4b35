// Package partition splits a search range into per-worker chunks.
package partition

import (
	"errors"
	"fmt"

	"github.com/elafarge/simd-benchmarking/internal/simd"
)

// ErrNoWorkers is returned when fewer than one worker is requested.
var ErrNoWorkers = errors.New("partition: worker count must be at least 1")

// Chunk is the half-open sub-range [Start, End) owned by one worker.
type Chunk struct {
	Index int
	Start int
	End   int
}

// Len returns the number of elements in the chunk.
func (c Chunk) Len() int {
	return c.End - c.Start
}

// First returns the first index of the chunk reachable from origin by
// multiples of step, or End when the chunk holds none.
func (c Chunk) First(origin, step int) int {
	if step <= 1 || c.Start <= origin {
		return min(max(c.Start, origin), c.End)
	}
	first := c.Start
	if r := (c.Start - origin) % step; r != 0 {
		if step-r >= c.End-first {
			return c.End
		}
		first += step - r
	}
	return min(first, c.End)
}

// Split partitions [start, end) into n chunks.
//
// Every boundary but the last is start + i*size where size is
// floor((end-start)/n) rounded down to a multiple of simd.Lanes; the last
// chunk absorbs the remainder. When the range is too short to give each
// worker a full block, leading chunks are empty and the last chunk holds
// the whole range.
func Split(start, end, n int) ([]Chunk, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoWorkers, n)
	}
	if end < start {
		return nil, fmt.Errorf("partition: invalid range [%d, %d)", start, end)
	}

	size := (end - start) / n
	size -= size % simd.Lanes

	chunks := make([]Chunk, n)
	for i := range chunks {
		chunks[i] = Chunk{
			Index: i,
			Start: start + i*size,
			End:   start + (i+1)*size,
		}
	}
	chunks[n-1].End = end

	return chunks, nil
}
