// Package testutil provides testing utilities for simdbmk.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded random arrays and a naive reference search that the
// parallel and vectorized paths are checked against.
//
// # Random Arrays
//
//	rng := testutil.NewRNG(seed)
//	arr := rng.Int32s(1000, 0, 9) // aligned, values in [0, 9]
//	v := rng.Pick(arr)           // a value known to occur
//
// # Ground Truth
//
//	want := testutil.ReferenceFind(arr, 0, len(arr), 1, v)
package testutil
