// Package conv provides checked integer conversions.
//
// Use them where a value comes from outside the process (dataset headers,
// user-supplied sizes) or crosses into a narrower type such as the uint32
// positions stored in roaring bitmaps. Loop indices and other values that
// are bounded by construction use plain casts.
package conv
