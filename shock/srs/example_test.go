package srs_test

import (
	"fmt"

	"github.com/cwbudde/algo-shock/shock/srs"
)

func ExampleCompute() {
	// A constant 3 g base acceleration with steady-state handling passes
	// straight through every oscillator.
	sig := make([]float64, 500)
	for i := range sig {
		sig[i] = 3
	}

	res, err := srs.Compute(sig, 1000, []float64{10, 50}, 10,
		srs.WithInitialConditions(srs.ICSteady))
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.1f %.1f\n", res.Peaks[0][0], res.Peaks[0][1])

	// Output:
	// 3.0 3.0
}
