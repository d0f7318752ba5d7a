package srs

import "math"

// peakFn resolves the configured reduction to a concrete function.
func (c *config) peakFn() PeakFunc {
	if c.peakFunc != nil {
		return c.peakFunc
	}

	switch c.peak {
	case PeakPos:
		return func(resp []float64) float64 { return math.Abs(maxOf(resp)) }
	case PeakPosSigned:
		return maxOf
	case PeakNeg:
		return func(resp []float64) float64 { return math.Abs(minOf(resp)) }
	case PeakNegSigned:
		return minOf
	case PeakRMS:
		return rmsOf
	default:
		return absPeak
	}
}

func absPeak(resp []float64) float64 {
	peak := 0.0
	for _, v := range resp {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	return peak
}

func maxOf(resp []float64) float64 {
	m := math.Inf(-1)
	for _, v := range resp {
		if v > m {
			m = v
		}
	}

	return m
}

func minOf(resp []float64) float64 {
	m := math.Inf(1)
	for _, v := range resp {
		if v < m {
			m = v
		}
	}

	return m
}

func rmsOf(resp []float64) float64 {
	if len(resp) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range resp {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(resp)))
}
