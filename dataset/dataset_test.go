package dataset

import (
	"context"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elafarge/simd-benchmarking/array"
	"github.com/elafarge/simd-benchmarking/blobstore"
	"github.com/elafarge/simd-benchmarking/testutil"
)

var codecs = []Compression{CompressionNone, CompressionLZ4, CompressionZSTD}

func TestEncodeDecode(t *testing.T) {
	rng := testutil.NewRNG(21)

	sizes := []int{0, 1, 7, 1000, BlockSize / 4, BlockSize/4 + 3, 3*BlockSize/4 + 11}
	for _, c := range codecs {
		for _, n := range sizes {
			arr := rng.Int32s(n, -5, 100)
			data, err := Encode(arr, c)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err, "codec=%s n=%d", c, n)
			require.Equal(t, arr, got, "codec=%s n=%d", c, n)
			assert.True(t, array.IsAligned(got, 0))
		}
	}
}

func TestEncodeHeader(t *testing.T) {
	data, err := Encode([]int32{1, -1}, CompressionLZ4)
	require.NoError(t, err)

	assert.Equal(t, "SBMK", string(data[:4]))
	assert.Equal(t, Version, data[4])
	assert.Equal(t, byte(CompressionLZ4), data[5])
	assert.Equal(t, uint64(2), binary.LittleEndian.Uint64(data[8:]))

	// Eight payload bytes never compress, so the block is stored raw.
	assert.Equal(t, uint32(8), binary.LittleEndian.Uint32(data[16:]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(data[20:]))
	assert.Len(t, data, HeaderSize+blockHeaderSize+8)
}

func TestCompressionShrinksRepetitiveData(t *testing.T) {
	arr := array.Aligned(BlockSize / 4)
	raw, err := Encode(arr, CompressionNone)
	require.NoError(t, err)

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		packed, err := Encode(arr, c)
		require.NoError(t, err)
		assert.Less(t, len(packed), len(raw)/10, c.String())
	}
}

func TestDecodeErrors(t *testing.T) {
	good, err := Encode([]int32{1, 2, 3, 4}, CompressionNone)
	require.NoError(t, err)

	_, err = Decode([]byte("nope"))
	assert.ErrorIs(t, err, ErrBadMagic)

	bad := append([]byte(nil), good...)
	bad[4] = 9
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	bad = append([]byte(nil), good...)
	bad[5] = 7
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrUnknownCompression)

	_, err = Decode(good[:len(good)-1])
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Decode(append(append([]byte(nil), good...), 0))
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Encode(nil, Compression(5))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestDecodeRejectsCountBeyondPayload(t *testing.T) {
	header := func(c Compression, count uint64) []byte {
		b := make([]byte, HeaderSize)
		copy(b, Magic)
		b[4] = Version
		b[5] = byte(c)
		binary.LittleEndian.PutUint64(b[8:], count)
		return b
	}

	for _, c := range codecs {
		_, err := Decode(header(c, 1<<28))
		assert.ErrorIs(t, err, ErrCorrupt, c.String())

		// Block headers for every block but no bodies.
		data := header(c, 1<<28)
		for range (1 << 28) / perBlock {
			data = binary.LittleEndian.AppendUint32(data, BlockSize)
			data = binary.LittleEndian.AppendUint32(data, 0)
		}
		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrCorrupt, c.String())
	}

	good, err := Encode([]int32{1, 2, 3, 4}, CompressionNone)
	require.NoError(t, err)
	bad := append([]byte(nil), good...)
	binary.LittleEndian.PutUint64(bad[8:], 5)
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrCorrupt)
}

type failingStore struct {
	blobstore.BlobStore
	err error
}

func (s failingStore) Open(context.Context, string) (blobstore.Blob, error) {
	return failingBlob{err: s.err}, nil
}

type failingBlob struct{ err error }

func (b failingBlob) ReadAt(context.Context, []byte, int64) (int, error) { return 0, b.err }
func (failingBlob) Size() int64  { return HeaderSize }
func (failingBlob) Close() error { return nil }

func TestStatReportsReadErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	_, err := Stat(ctx, failingStore{err: boom}, "uniform.sbmk")
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrBadMagic)

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "short.sbmk", []byte("SBMK")))
	_, err = Stat(ctx, store, "short.sbmk")
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(5)
	arr := rng.Int32s(100_003, 0, 100)

	stores := map[string]blobstore.BlobStore{
		"local":  blobstore.NewLocalStore(filepath.Join(t.TempDir(), "data")),
		"memory": blobstore.NewMemoryStore(),
	}
	for name, store := range stores {
		for _, c := range codecs {
			t.Run(name+"/"+c.String(), func(t *testing.T) {
				key := "uniform-" + c.String() + ".sbmk"
				require.NoError(t, Save(ctx, store, key, arr, c))

				h, err := Stat(ctx, store, key)
				require.NoError(t, err)
				assert.Equal(t, uint64(len(arr)), h.Count)
				assert.Equal(t, c, h.Compression)

				got, err := Load(ctx, store, key)
				require.NoError(t, err)
				assert.Equal(t, arr, got)
				assert.True(t, array.IsAligned(got, 0))
			})
		}
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(context.Background(), blobstore.NewMemoryStore(), "missing.sbmk")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestParseCompression(t *testing.T) {
	for _, c := range codecs {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseCompression("")
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, got)

	_, err = ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)
	assert.Equal(t, "compression(9)", Compression(9).String())
}
