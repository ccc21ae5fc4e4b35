// Package bench times the four search variants against each other.
//
// A run generates (or loads) one array and searches it with:
//
//   - naive: scalar scan on one goroutine
//   - vect: vectorized scan on one goroutine
//   - mt_naive: scalar scan split across workers
//   - mt_vect: vectorized scan split across workers
//
// It then verifies that all four agree and derives the speedup factors.
// Sweep repeats runs over a range of array sizes and emits one CSV row per
// size.
package bench
