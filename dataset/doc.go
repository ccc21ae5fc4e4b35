// Package dataset persists generated arrays so repeated benchmark runs
// search identical input.
//
// # File Format
//
// All integers are little-endian.
//
//	magic "SBMK" | version u8 | compression u8 | reserved u16 | count u64
//	block*: uncompressed u32 | compressed u32 | data
//
// The payload is count int32 values split into blocks of at most
// BlockSize bytes. A block whose compressed size is 0 is stored raw,
// which is also how blocks that do not shrink by at least 10% are kept.
//
// Load always returns a freshly allocated 32-byte aligned array, so the
// result can be fed to a vectorized search without copying again.
package dataset
