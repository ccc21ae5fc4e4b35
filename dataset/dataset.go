package dataset

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/elafarge/simd-benchmarking/array"
	"github.com/elafarge/simd-benchmarking/blobstore"
	"github.com/elafarge/simd-benchmarking/internal/conv"
)

const (
	// Magic identifies dataset files.
	Magic = "SBMK"
	// Version is the current format version.
	Version uint8 = 1
	// HeaderSize is the fixed header length in bytes.
	HeaderSize = 16
	// BlockSize is the maximum uncompressed block length in bytes.
	// It is a multiple of 4 so no value straddles two blocks.
	BlockSize = 256 * 1024

	perBlock = BlockSize / 4
)

var (
	// ErrBadMagic is returned when a blob is not a dataset file.
	ErrBadMagic = errors.New("dataset: bad magic")
	// ErrUnsupportedVersion is returned for files written by a newer format.
	ErrUnsupportedVersion = errors.New("dataset: unsupported version")
	// ErrUnknownCompression is returned for an unrecognised codec.
	ErrUnknownCompression = errors.New("dataset: unknown compression")
	// ErrCorrupt is returned when the payload does not match the header.
	ErrCorrupt = errors.New("dataset: corrupt file")
)

// Header is the decoded fixed-size file header.
type Header struct {
	Version     uint8
	Compression Compression
	Count       uint64
}

// Encode serializes arr with the given compression.
func Encode(arr []int32, c Compression) ([]byte, error) {
	if c > CompressionZSTD {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}

	out := make([]byte, HeaderSize, HeaderSize+len(arr)*4+blockHeaderSize)
	copy(out, Magic)
	out[4] = Version
	out[5] = byte(c)
	binary.LittleEndian.PutUint64(out[8:], uint64(len(arr)))

	raw := make([]byte, 0, BlockSize)
	for start := 0; start < len(arr); start += perBlock {
		end := min(start+perBlock, len(arr))
		raw = raw[:0]
		for _, v := range arr[start:end] {
			raw = binary.LittleEndian.AppendUint32(raw, uint32(v))
		}
		var err error
		if out, err = appendBlock(out, raw, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadHeader decodes and validates the fixed header.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize || string(data[:4]) != Magic {
		return Header{}, ErrBadMagic
	}
	h := Header{
		Version:     data[4],
		Compression: Compression(data[5]),
		Count:       binary.LittleEndian.Uint64(data[8:]),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if h.Compression > CompressionZSTD {
		return Header{}, fmt.Errorf("%w: %d", ErrUnknownCompression, h.Compression)
	}
	if h.Count > math.MaxInt32 {
		return Header{}, fmt.Errorf("%w: count %d too large", ErrCorrupt, h.Count)
	}
	return h, nil
}

// Decode parses a dataset into a new aligned array.
func Decode(data []byte) ([]int32, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	count, err := conv.Uint64ToInt(h.Count)
	if err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}
	if err := checkLayout(data[HeaderSize:], h.Compression, count); err != nil {
		return nil, err
	}
	arr := array.Aligned(count)
	buf := make([]byte, BlockSize)
	off := HeaderSize
	for start := 0; start < len(arr); start += perBlock {
		end := min(start+perBlock, len(arr))
		raw := buf[:(end-start)*4]
		n, err := readBlock(data[off:], h.Compression, raw)
		if err != nil {
			return nil, fmt.Errorf("block at offset %d: %w", off, err)
		}
		off += n
		for i := range arr[start:end] {
			arr[start+i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
		}
	}
	if off != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(data)-off)
	}
	return arr, nil
}

// checkLayout walks the block headers of payload and checks that they
// describe exactly count values before anything is allocated for them.
func checkLayout(payload []byte, c Compression, count int) error {
	blocks := (count + perBlock - 1) / perBlock
	if blocks > len(payload)/blockHeaderSize {
		return fmt.Errorf("%w: %d values need %d blocks, payload holds %d bytes",
			ErrCorrupt, count, blocks, len(payload))
	}
	if c == CompressionNone && count > (len(payload)-blocks*blockHeaderSize)/4 {
		return fmt.Errorf("%w: %d values do not fit in %d bytes", ErrCorrupt, count, len(payload))
	}

	off := 0
	for b := range blocks {
		if len(payload)-off < blockHeaderSize {
			return fmt.Errorf("%w: truncated block header", ErrCorrupt)
		}
		rawSize := int(binary.LittleEndian.Uint32(payload[off:]))
		packedSize := int(binary.LittleEndian.Uint32(payload[off+4:]))
		if want := min(perBlock, count-b*perBlock) * 4; rawSize != want {
			return fmt.Errorf("%w: block %d holds %d bytes, expected %d", ErrCorrupt, b, rawSize, want)
		}
		body := packedSize
		if body == 0 {
			body = rawSize
		}
		if body > len(payload)-off-blockHeaderSize {
			return fmt.Errorf("%w: block %d truncated", ErrCorrupt, b)
		}
		off += blockHeaderSize + body
	}
	return nil
}

// Save encodes arr and stores it under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, arr []int32, c Compression) error {
	data, err := Encode(arr, c)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("dataset: save %s: %w", name, err)
	}
	return nil
}

// Load reads the dataset stored under name into a new aligned array.
func Load(ctx context.Context, store blobstore.BlobStore, name string) ([]int32, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", name, err)
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", name, err)
	}
	arr, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("dataset: decode %s: %w", name, err)
	}
	return arr, nil
}

// Stat returns the header of the dataset stored under name without
// decoding its payload.
func Stat(ctx context.Context, store blobstore.BlobStore, name string) (Header, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return Header{}, fmt.Errorf("dataset: open %s: %w", name, err)
	}
	defer blob.Close()

	buf := make([]byte, HeaderSize)
	n, err := blob.ReadAt(ctx, buf, 0)
	if n < HeaderSize {
		if err != nil && !errors.Is(err, io.EOF) {
			return Header{}, fmt.Errorf("dataset: stat %s: %w", name, err)
		}
		return Header{}, fmt.Errorf("dataset: stat %s: %w", name, ErrBadMagic)
	}
	return ReadHeader(buf)
}
