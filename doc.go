// Package simdbmk provides a parallel, block-vectorized linear search over
// int32 arrays.
//
// A search partitions the requested range into one chunk per worker, scans
// every chunk on its own goroutine with either a scalar or a vectorized
// equality test, and concatenates the per-chunk matches in chunk order.
//
// # Quick Start
//
//	arr, _ := array.Generate(1_000_000, 0, 100, seed)
//
//	res, err := simdbmk.Search(simdbmk.Request{
//	    Array: arr,
//	    End:   len(arr),
//	    Value: 12,
//	    Mode:  simdbmk.ModeVectorized,
//	    K:     -1,
//	})
//	fmt.Println(res.Count(), res.Indices[:3])
//
// # Scan Modes
//
// ModeScalar compares element by element. ModeVectorized compares eight
// elements at a time and skips blocks without a match; it needs the array
// segment to be 32-byte aligned (use package array to allocate) and a step
// of 1. When either cannot be guaranteed the search falls back to scalar
// and reports the effective mode in Result.Mode.
//
// # Match Cap
//
// Request.K >= 0 bounds the number of returned indices. Workers share one
// mutex-guarded budget and stop as soon as it is exhausted, so the count is
// exactly min(K, matches) but which indices are returned depends on
// scheduling. They are not necessarily the K smallest.
//
// # Concurrency
//
// The array is only read. Callers must not modify it while a search is in
// flight. A Searcher is safe for concurrent use.
package simdbmk
