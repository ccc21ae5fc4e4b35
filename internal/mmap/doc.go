// Package mmap maps dataset files read-only into memory.
//
// A Mapping exposes the file contents as a byte slice without copying them
// through a read buffer. The dataset loader decodes straight out of that
// slice into an aligned int32 array.
//
//	m, err := mmap.Open("data/uniform-1000000.sbmk")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	hdr := m.Bytes()[:16]
//
// On unix platforms the file is mapped with mmap(2) and Advise forwards to
// madvise(2). Elsewhere the file is read into a heap buffer and Advise is a
// no-op, so callers never need a platform switch.
//
// Close is idempotent. Slices returned by Bytes must not be touched after
// Close returns.
package mmap
