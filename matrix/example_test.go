// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/rctdprobe/matrix"
)

// ExampleNormalizeRowsL1 turns per-spot cell counts into cell fractions.
func ExampleNormalizeRowsL1() {
	counts, _ := matrix.NewDenseFrom(2, 2, []float64{1, 3, 3, 1})
	fractions, norms, _ := matrix.NormalizeRowsL1(counts)
	fmt.Print(fractions)
	fmt.Println(norms)
	// Output:
	// [0.25, 0.75]
	// [0.75, 0.25]
	// [4 4]
}
