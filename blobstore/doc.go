// Package blobstore abstracts where benchmark datasets live.
//
// A dataset is written once with Put and read back through Open. The
// BlobStore interface is small enough to back with a local directory, an
// in-process map, or an object store.
//
// # Built-in Implementations
//
//   - LocalStore: a directory on disk, read through mmap
//   - MemoryStore: an in-process map, for tests and `mem://`
//   - s3.Store: Amazon S3 with ranged reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible servers
//
// Implementations must be safe for concurrent use.
package blobstore
