package testutil

import (
	"math"
	"math/rand"
)

// Sine returns amplitude*sin(2*pi*freq*t) sampled at sr for n samples.
func Sine(freq, amplitude, sr float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freq / sr

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// TwoTone returns the sum of two sines, the classic roll-off test input.
func TwoTone(f1, a1, f2, a2, sr float64, n int) []float64 {
	out := Sine(f1, a1, sr, n)
	hi := Sine(f2, a2, sr, n)

	for i := range out {
		out[i] += hi[i]
	}

	return out
}

// RandomBurst returns deterministic zero-mean noise from the given seed,
// suitable as a stand-in for measured flight data.
func RandomBurst(seed int64, amplitude float64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)

	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}
