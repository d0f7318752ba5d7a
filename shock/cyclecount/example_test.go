package cyclecount_test

import (
	"fmt"

	"github.com/cwbudde/algo-shock/shock/cyclecount"
)

func ExampleRainflow() {
	// The classic ASTM E1049 reversal sequence.
	peaks := []float64{-2, 1, -3, 5, -1, 3, -4, 4, -2}

	c := cyclecount.Rainflow(peaks)
	fmt.Printf("cycles=%.1f max=%.1f\n", c.Total(), c.MaxAmp())

	// Output:
	// cycles=4.0 max=4.5
}
