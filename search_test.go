package simdbmk

import (
	"bytes"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/elafarge/simd-benchmarking/array"
	"github.com/elafarge/simd-benchmarking/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var modes = []Mode{ModeScalar, ModeVectorized}

func TestSearchScenario(t *testing.T) {
	arr := array.From([]int32{5, 3, 5, 5, 2, 5})

	for _, mode := range modes {
		for workers := 1; workers <= 8; workers++ {
			res, err := Search(Request{Array: arr, End: len(arr), Value: 5, Mode: mode, K: -1}, WithWorkers(workers))
			require.NoError(t, err)
			assert.Equal(t, []int{0, 2, 3, 5}, res.Indices, "mode=%s workers=%d", mode, workers)
			assert.Equal(t, 4, res.Count())
			assert.Equal(t, mode, res.Mode)
			assert.Equal(t, workers, res.Workers)
		}
	}
}

func TestSearchScenarioCapped(t *testing.T) {
	arr := array.From([]int32{5, 3, 5, 5, 2, 5})
	all := []int{0, 2, 3, 5}

	for _, mode := range modes {
		for workers := 1; workers <= 4; workers++ {
			res, err := Search(Request{Array: arr, End: len(arr), Value: 5, Mode: mode, K: 2}, WithWorkers(workers))
			require.NoError(t, err)
			assert.Equal(t, 2, res.Count())
			assert.True(t, testutil.IsSubset(res.Indices, all), "got %v", res.Indices)
		}
	}
}

func TestSearchTailOnlyZeros(t *testing.T) {
	arr := array.Aligned(17)
	want := make([]int, 17)
	for i := range want {
		want[i] = i
	}

	for _, mode := range modes {
		for _, workers := range []int{1, 2, 3} {
			res, err := Search(Request{Array: arr, End: 17, Value: 0, Mode: mode, K: -1}, WithWorkers(workers))
			require.NoError(t, err)
			assert.Equal(t, want, res.Indices, "mode=%s workers=%d", mode, workers)
		}
	}
}

func TestSearchMatchesReference(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, n := range []int{0, 1, 8, 17, 100, 1023, 4096, 10007} {
		arr := rng.Int32s(n, 0, 9)
		v := rng.Pick(arr)
		want := testutil.ReferenceFind(arr, 0, n, 1, v)

		for _, mode := range modes {
			for workers := 1; workers <= 13; workers++ {
				res, err := Search(Request{Array: arr, End: n, Value: v, Mode: mode, K: -1}, WithWorkers(workers))
				require.NoError(t, err)
				require.Equal(t, want, res.Indices, "n=%d mode=%s workers=%d", n, mode, workers)
			}
		}
	}
}

func TestSearchSubRangeAndStep(t *testing.T) {
	rng := testutil.NewRNG(99)
	arr := rng.Int32s(2000, 0, 3)

	tests := []struct {
		name       string
		start, end int
		step       int
		wantMode   Mode
	}{
		{"aligned start", 64, 1999, 1, ModeVectorized},
		{"unaligned start", 13, 1500, 1, ModeScalar},
		{"step two", 0, 2000, 2, ModeScalar},
		{"step seven offset", 5, 1777, 7, ModeScalar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := testutil.ReferenceFind(arr, tt.start, tt.end, tt.step, 2)
			for workers := 1; workers <= 9; workers++ {
				res, err := Search(Request{
					Array: arr, Start: tt.start, End: tt.end, Step: tt.step,
					Value: 2, Mode: ModeVectorized, K: -1,
				}, WithWorkers(workers))
				require.NoError(t, err)
				assert.Equal(t, want, res.Indices, "workers=%d", workers)
				assert.Equal(t, tt.wantMode, res.Mode)
			}
		})
	}
}

func TestSearchHugeStep(t *testing.T) {
	arr := array.Aligned(40)

	for _, step := range []int{math.MaxInt, math.MaxInt - 1} {
		for _, start := range []int{0, 1, 17} {
			want := []int{start}

			for workers := 1; workers <= 6; workers++ {
				res, err := Search(Request{
					Array: arr, Start: start, End: len(arr), Step: step, Mode: ModeVectorized, K: -1,
				}, WithWorkers(workers))
				require.NoError(t, err)
				assert.Equal(t, want, res.Indices, "step=%d start=%d workers=%d", step, start, workers)
				assert.Equal(t, ModeScalar, res.Mode)
			}

			got, err := Find(Request{Array: arr, Start: start, End: len(arr), Step: step, K: -1})
			require.NoError(t, err)
			assert.Equal(t, want, got, "step=%d start=%d", step, start)
		}
	}
}

func TestSearchCap(t *testing.T) {
	rng := testutil.NewRNG(3)
	arr := rng.Int32s(5000, 0, 4)
	want := testutil.ReferenceFind(arr, 0, len(arr), 1, 1)
	total := len(want)
	require.Greater(t, total, 100)

	for _, mode := range modes {
		for _, k := range []int{0, 1, 7, 100, total - 1, total, total + 1, 10 * total} {
			for _, workers := range []int{1, 3, 8} {
				res, err := Search(Request{Array: arr, End: len(arr), Value: 1, Mode: mode, K: k}, WithWorkers(workers))
				require.NoError(t, err)
				assert.Equal(t, min(k, total), res.Count(), "mode=%s k=%d workers=%d", mode, k, workers)
				assert.True(t, testutil.IsSubset(res.Indices, want))
			}
		}
	}
}

func TestSearchEmptyRange(t *testing.T) {
	arr := array.Aligned(16)

	for _, mode := range modes {
		res, err := Search(Request{Array: arr, Start: 8, End: 8, Value: 0, Mode: mode, K: -1}, WithWorkers(4))
		require.NoError(t, err)
		assert.NotNil(t, res.Indices)
		assert.Empty(t, res.Indices)

		res, err = Search(Request{Array: nil, Value: 0, Mode: mode, K: -1})
		require.NoError(t, err)
		assert.Empty(t, res.Indices)
	}
}

func TestSearchNoMatchIsNotAnError(t *testing.T) {
	arr := array.From([]int32{1, 2, 3})

	res, err := Search(Request{Array: arr, End: 3, Value: 4, K: -1})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count())
}

func TestSearchIdempotent(t *testing.T) {
	rng := testutil.NewRNG(11)
	arr := rng.Int32s(50000, 0, 20)
	s := New(WithWorkers(7))

	first, err := s.Search(Request{Array: arr, End: len(arr), Value: 13, Mode: ModeVectorized, K: -1})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := s.Search(Request{Array: arr, End: len(arr), Value: 13, Mode: ModeVectorized, K: -1})
		require.NoError(t, err)
		require.Equal(t, first.Indices, again.Indices)
	}
}

func TestSearchConcurrentUse(t *testing.T) {
	rng := testutil.NewRNG(5)
	arr := rng.Int32s(20000, 0, 50)
	want := testutil.ReferenceFind(arr, 0, len(arr), 1, 25)
	s := New(WithWorkers(4))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.Search(Request{Array: arr, End: len(arr), Value: 25, Mode: Mode(g % 2), K: -1})
			assert.NoError(t, err)
			assert.Equal(t, want, res.Indices)
		}()
	}
	wg.Wait()
}

func TestSearchErrors(t *testing.T) {
	arr := array.Aligned(10)

	_, err := Search(Request{Array: arr, Start: -1, End: 5})
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = Search(Request{Array: arr, Start: 6, End: 5})
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = Search(Request{Array: arr, End: 11})
	var re *ErrRange
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 10, re.Len)

	_, err = Search(Request{Array: arr, End: 10, Step: -1})
	require.ErrorIs(t, err, ErrInvalidStep)

	_, err = Search(Request{Array: arr, End: 10, Mode: Mode(7)})
	require.ErrorIs(t, err, ErrInvalidMode)

	_, err = Search(Request{Array: arr, End: 10}, WithProbe(func() int { return 0 }))
	require.ErrorIs(t, err, ErrInvalidWorkerCount)
}

func TestSearchDefaultProbe(t *testing.T) {
	arr := array.Aligned(64)

	res, err := Search(Request{Array: arr, End: 64, K: -1})
	require.NoError(t, err)
	assert.Equal(t, DefaultProbe(), res.Workers)
	assert.Equal(t, 64, res.Count())

	res, err = Search(Request{Array: arr, End: 64, K: -1}, WithWorkers(3), WithWorkers(0))
	require.NoError(t, err)
	assert.Equal(t, DefaultProbe(), res.Workers)
}

func TestSearchMetricsAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &BasicMetricsCollector{}
	s := New(WithWorkers(2), WithLogger(logger), WithMetricsCollector(metrics))

	arr := array.From([]int32{5, 3, 5, 5, 2, 5})
	_, err := s.Search(Request{Array: arr, End: 6, Value: 5, Mode: ModeVectorized, K: -1})
	require.NoError(t, err)
	_, err = s.Search(Request{Array: arr, Start: 1, End: 6, Value: 5, Mode: ModeVectorized, K: -1})
	require.NoError(t, err)
	_, err = s.Search(Request{Array: arr, End: 60})
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(3), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SearchErrors)
	assert.Equal(t, int64(1), stats.VectorSearches)
	assert.Equal(t, int64(1), stats.ScalarSearches)
	assert.Equal(t, int64(7), stats.Matches)

	out := buf.String()
	assert.Contains(t, out, "search completed")
	assert.Contains(t, out, "reason=unaligned")
	assert.Contains(t, out, "search failed")
}

func TestFind(t *testing.T) {
	rng := testutil.NewRNG(8)
	arr := rng.Int32s(777, 0, 6)

	for _, mode := range modes {
		got, err := Find(Request{Array: arr, End: len(arr), Value: 4, Mode: mode, K: -1})
		require.NoError(t, err)
		assert.Equal(t, testutil.ReferenceFind(arr, 0, len(arr), 1, 4), got)

		got, err = Find(Request{Array: arr, Start: 3, End: 700, Step: 5, Value: 4, Mode: mode, K: -1})
		require.NoError(t, err)
		assert.Equal(t, testutil.ReferenceFind(arr, 3, 700, 5, 4), got)

		got, err = Find(Request{Array: arr, End: len(arr), Value: 4, Mode: mode, K: 3})
		require.NoError(t, err)
		assert.Equal(t, testutil.ReferenceFind(arr, 0, len(arr), 1, 4)[:3], got)

		got, err = Find(Request{Array: arr, End: len(arr), Value: 4, Mode: mode, K: 0})
		require.NoError(t, err)
		assert.Empty(t, got)
	}

	_, err := Find(Request{Array: arr, End: 1000})
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestParseMode(t *testing.T) {
	for _, mode := range modes {
		got, err := ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	got, err := ParseMode("SIMD")
	require.NoError(t, err)
	assert.Equal(t, ModeVectorized, got)

	_, err = ParseMode("gpu")
	require.ErrorIs(t, err, ErrInvalidMode)
	assert.Equal(t, "unknown", Mode(9).String())
}

func BenchmarkSearch(b *testing.B) {
	rng := testutil.NewRNG(1)
	arr := rng.Sparse(1<<22, 4096, 42)

	for _, mode := range modes {
		s := New()
		b.Run(mode.String(), func(b *testing.B) {
			b.SetBytes(int64(len(arr) * 4))
			for i := 0; i < b.N; i++ {
				_, _ = s.Search(Request{Array: arr, End: len(arr), Value: 42, Mode: mode, K: -1})
			}
		})
	}
}
