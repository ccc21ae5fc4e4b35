package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcat(t *testing.T) {
	tests := []struct {
		name     string
		partials [][]int
		k        int
		want     []int
	}{
		{"no partials", nil, -1, []int{}},
		{"empty partials", [][]int{{}, nil, {}}, -1, []int{}},
		{"chunk order", [][]int{{0, 2}, {}, {9, 11}, {20}}, -1, []int{0, 2, 9, 11, 20}},
		{"cap larger than total", [][]int{{1}, {5}}, 10, []int{1, 5}},
		{"cap equal to total", [][]int{{1}, {5}}, 2, []int{1, 5}},
		{"cap truncates later chunks", [][]int{{1, 2}, {5, 6}, {9}}, 3, []int{1, 2, 5}},
		{"zero cap", [][]int{{1, 2}}, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Concat(tt.partials, tt.k)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), cap(got))
		})
	}
}

func TestConcatDoesNotAlias(t *testing.T) {
	p := []int{1, 2, 3}
	out := Concat([][]int{p}, -1)
	out[0] = 42
	assert.Equal(t, 1, p[0])
}
