package simdbmk_test

import (
	"fmt"

	simdbmk "github.com/elafarge/simd-benchmarking"
	"github.com/elafarge/simd-benchmarking/array"
)

func ExampleSearch() {
	arr := array.From([]int32{5, 3, 5, 5, 2, 5})

	res, err := simdbmk.Search(simdbmk.Request{
		Array: arr,
		End:   len(arr),
		Value: 5,
		Mode:  simdbmk.ModeVectorized,
		K:     -1,
	}, simdbmk.WithWorkers(2))
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Indices, res.Count())
	// Output: [0 2 3 5] 4
}

func ExampleSearch_capped() {
	arr := array.From([]int32{5, 3, 5, 5, 2, 5})

	res, err := simdbmk.Search(simdbmk.Request{
		Array: arr,
		End:   len(arr),
		Value: 5,
		K:     2,
	})
	if err != nil {
		panic(err)
	}

	// Which two indices are returned depends on scheduling.
	fmt.Println(res.Count())
	// Output: 2
}
