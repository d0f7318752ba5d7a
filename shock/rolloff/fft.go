package rolloff

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

type fftMethod struct{}

// FFT returns the Fourier resampling strategy: the spectrum is zero-padded
// to the target length, which is exact for band-limited signals. Transform
// sizes must be powers of two, so the signal is zero-padded in time and the
// upsampling factor is rounded up; the returned rate can exceed the minimum
// the points-per-cycle requirement asks for.
func FFT() Method { return fftMethod{} }

func (fftMethod) Name() string { return "fft" }

func (fftMethod) Apply(sig [][]float64, sr, ppc, maxFreq float64) ([][]float64, float64, error) {
	factor, err := Factor(sr, ppc, maxFreq)
	if err != nil {
		return nil, 0, err
	}

	if len(sig) == 0 || len(sig[0]) <= 1 || factor <= 1 {
		return sig, sr, nil
	}

	// The plans are true DFTs for power-of-two sizes only.
	n := len(sig[0])
	n2 := nextPowerOfTwo(n)
	up := nextPowerOfTwo(factor)
	m := up * n2

	fwd, err := algofft.NewPlan64(n2)
	if err != nil {
		return nil, 0, fmt.Errorf("rolloff: forward FFT plan: %w", err)
	}

	inv, err := algofft.NewPlan64(m)
	if err != nil {
		return nil, 0, fmt.Errorf("rolloff: inverse FFT plan: %w", err)
	}

	out := make([][]float64, len(sig))
	spec := make([]complex128, n2)
	padded := make([]complex128, m)

	for r, row := range sig {
		for i := range spec {
			if i < n {
				spec[i] = complex(row[i], 0)
			} else {
				spec[i] = 0
			}
		}

		if err := fwd.Forward(spec, spec); err != nil {
			return nil, 0, fmt.Errorf("rolloff: forward FFT: %w", err)
		}

		for i := range padded {
			padded[i] = 0
		}

		half := n2 / 2
		copy(padded[:half], spec[:half])

		// Split the Nyquist bin between the positive and negative halves.
		padded[half] = spec[half] / 2
		padded[m-half] = spec[half] / 2

		for k := 1; k < half; k++ {
			padded[m-k] = spec[n2-k]
		}

		if err := inv.Inverse(padded, padded); err != nil {
			return nil, 0, fmt.Errorf("rolloff: inverse FFT: %w", err)
		}

		// Drop the interpolated zero padding. Inverse divides by m, so the
		// upsampling factor restores unit amplitude.
		y := make([]float64, up*n)
		for i := range y {
			y[i] = real(padded[i]) * float64(up)
		}

		out[r] = y
	}

	return out, sr * float64(up), nil
}

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}

	return p
}
