package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block codec.
type Compression uint8

const (
	// CompressionNone stores blocks raw.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses zstd (better ratio on narrow value ranges).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "raw":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd", "zst":
		return CompressionZSTD, nil
	default:
		return CompressionNone, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

const blockHeaderSize = 8

// appendBlock appends data as one framed block to dst.
func appendBlock(dst, data []byte, c Compression) ([]byte, error) {
	var compressed []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}

	// Keep the block raw unless compression saves at least 10%.
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		compressed = nil
	}

	var hdr [blockHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(compressed)))
	dst = append(dst, hdr[:]...)
	if compressed == nil {
		return append(dst, data...), nil
	}
	return append(dst, compressed...), nil
}

// readBlock decodes the block at the head of src into dst, which must be
// exactly the uncompressed size. It returns the bytes consumed from src.
func readBlock(src []byte, c Compression, dst []byte) (int, error) {
	if len(src) < blockHeaderSize {
		return 0, fmt.Errorf("%w: truncated block header", ErrCorrupt)
	}
	rawSize := binary.LittleEndian.Uint32(src[0:])
	packedSize := binary.LittleEndian.Uint32(src[4:])
	if int(rawSize) != len(dst) {
		return 0, fmt.Errorf("%w: block holds %d bytes, expected %d", ErrCorrupt, rawSize, len(dst))
	}

	body := src[blockHeaderSize:]
	if packedSize == 0 {
		if len(body) < int(rawSize) {
			return 0, fmt.Errorf("%w: truncated raw block", ErrCorrupt)
		}
		copy(dst, body[:rawSize])
		return blockHeaderSize + int(rawSize), nil
	}

	if len(body) < int(packedSize) {
		return 0, fmt.Errorf("%w: truncated compressed block", ErrCorrupt)
	}
	packed := body[:packedSize]

	switch c {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(packed, dst)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if n != len(dst) {
			return 0, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
	case CompressionZSTD:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(packed, dst[:0])
		putZstdDecoder(dec)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if len(out) != len(dst) {
			return 0, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		copy(dst, out)
	default:
		return 0, errors.Join(ErrCorrupt, fmt.Errorf("compressed block in %s file", c))
	}
	return blockHeaderSize + int(packedSize), nil
}
