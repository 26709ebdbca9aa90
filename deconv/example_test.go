// SPDX-License-Identifier: MIT

package deconv_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/rctdprobe/deconv"
	"github.com/katalvlaran/rctdprobe/expression"
	"github.com/katalvlaran/rctdprobe/reference"
	"github.com/katalvlaran/rctdprobe/spatial"
)

// ExampleEngine_Deconvolve fits the four synthetic spots in full mode.
func ExampleEngine_Deconvolve() {
	a, b, _ := expression.Archetypes()
	ref, _ := reference.Build([]expression.Archetype{a, b})
	sp, _ := spatial.Build(a, b, spatial.DefaultMixtures())

	eng := deconv.New(
		deconv.WithCellMin(2),
		deconv.WithUMIMin(10),
		deconv.WithUMIMinSigma(10),
		deconv.WithMaxCores(1),
	)
	res, err := eng.Deconvolve(context.Background(), ref, sp)
	if err != nil {
		fmt.Println(err)
		return
	}
	for i, id := range res.Spots() {
		row, _ := res.Weights.Row(i)
		fmt.Printf("%s typeA=%.4f typeB=%.4f\n", id, row[0], row[1])
	}
	// Output:
	// spot1 typeA=0.1538 typeB=0.8462
	// spot2 typeA=0.0571 typeB=0.9429
	// spot3 typeA=0.3529 typeB=0.6471
	// spot4 typeA=0.1538 typeB=0.8462
}
