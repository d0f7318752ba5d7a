package cyclecount

import "math"

// Cycles holds the outcome of a rainflow count. The slices are parallel:
// entry i is one counted cycle with amplitude Amp[i] (half the peak-to-peak
// range), mean value Mean[i], and Count[i] of either 1 (closed cycle) or 0.5
// (half cycle).
type Cycles struct {
	Amp   []float64
	Mean  []float64
	Count []float64
}

// Total returns the total cycle count (half cycles included at 0.5).
func (c Cycles) Total() float64 {
	var sum float64
	for _, v := range c.Count {
		sum += v
	}

	return sum
}

// MaxAmp returns the largest cycle amplitude, or 0 for an empty count.
func (c Cycles) MaxAmp() float64 {
	var m float64
	for _, v := range c.Amp {
		if v > m {
			m = v
		}
	}

	return m
}

// TurningPoints returns the indices of the local extrema of x, always
// including the first and last samples. Plateaus contribute their leading
// sample only.
func TurningPoints(x []float64) []int {
	n := len(x)
	if n == 0 {
		return nil
	}

	if n == 1 {
		return []int{0}
	}

	idx := make([]int, 1, n)
	idx[0] = 0

	lastSlope := 0.0
	runEnd := 0 // last index that changed value: the start of any plateau

	for i := 1; i < n; i++ {
		d := x[i] - x[i-1]
		if d == 0 {
			continue
		}

		s := math.Copysign(1, d)
		if lastSlope != 0 && s != lastSlope {
			idx = append(idx, runEnd)
		}

		lastSlope = s
		runEnd = i
	}

	return append(idx, n-1)
}

// Rainflow counts cycles in a sequence of reversal points (see
// [TurningPoints]). Interior closed cycles count 1, the residual ranges at
// either end count 0.5 each, per the three-point ASTM E1049 method.
func Rainflow(peaks []float64) Cycles {
	var out Cycles

	record := func(a, b, count float64) {
		out.Amp = append(out.Amp, math.Abs(a-b)/2)
		out.Mean = append(out.Mean, (a+b)/2)
		out.Count = append(out.Count, count)
	}

	stack := make([]float64, 0, len(peaks))

	for _, p := range peaks {
		stack = append(stack, p)

		for len(stack) >= 3 {
			n := len(stack)
			x := math.Abs(stack[n-1] - stack[n-2])
			y := math.Abs(stack[n-2] - stack[n-3])

			if x < y {
				break
			}

			if n == 3 {
				// Range includes the starting point: half cycle.
				record(stack[0], stack[1], 0.5)
				stack = stack[1:]
			} else {
				record(stack[n-3], stack[n-2], 1)
				stack = append(stack[:n-3], stack[n-1])
			}
		}
	}

	// Residue: count remaining ranges as half cycles.
	for i := 1; i < len(stack); i++ {
		record(stack[i-1], stack[i], 0.5)
	}

	return out
}

// RainflowHistory extracts turning points from a full response history and
// counts its cycles in one call.
func RainflowHistory(history []float64) Cycles {
	idx := TurningPoints(history)
	peaks := make([]float64, len(idx))
	for i, j := range idx {
		peaks[i] = history[j]
	}

	return Rainflow(peaks)
}
