package iir

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrInvalidCutoff indicates a cutoff outside (0, Nyquist).
var ErrInvalidCutoff = errors.New("iir: cutoff must be within (0, Nyquist)")

// ButterworthHighpass designs a digital Butterworth high-pass filter of the
// given order via the bilinear transform of the analog prototype with
// frequency prewarping. It returns transfer-function coefficients (b, a)
// with a[0] == 1 for use with [Filter] or [FiltFilt].
func ButterworthHighpass(order int, cutoffHz, sampleRate float64) (b, a []float64, err error) {
	if order <= 0 {
		return nil, nil, fmt.Errorf("iir: order must be > 0: %d", order)
	}

	nyquist := sampleRate / 2
	if sampleRate <= 0 || cutoffHz <= 0 || cutoffHz >= nyquist {
		return nil, nil, fmt.Errorf("%w: cutoff %g Hz at sample rate %g Hz",
			ErrInvalidCutoff, cutoffHz, sampleRate)
	}

	// Normalized analog prototype: poles on the unit circle in the left
	// half plane, unit gain, no zeros.
	poles := make([]complex128, order)
	for k := 0; k < order; k++ {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		poles[k] = cmplx.Exp(complex(0, theta))
	}

	// Prewarped cutoff (bilinear transform with fs = 2).
	wn := cutoffHz / nyquist
	warped := 4 * math.Tan(math.Pi*wn/2)

	// Low-pass to high-pass: poles map to warped/p, zeros appear at s = 0.
	// The transformed gain is 1/prod(-p), which is exactly 1 for a
	// Butterworth polynomial, but is computed generically here.
	gain := complex(1, 0)
	for i, p := range poles {
		gain /= -p
		poles[i] = complex(warped, 0) / p
	}

	// Bilinear transform: s = 4*(z-1)/(z+1). Analog zeros at the origin
	// land on z = 1; the gain picks up prod(4 - z)/prod(4 - p).
	const fs2 = 4
	digitalPoles := make([]complex128, order)

	for i, p := range poles {
		gain *= complex(fs2, 0) / (complex(fs2, 0) - p)
		digitalPoles[i] = (complex(fs2, 0) + p) / (complex(fs2, 0) - p)
	}

	digitalZeros := make([]complex128, order)
	for i := range digitalZeros {
		digitalZeros[i] = 1
	}

	b = polyFromRoots(digitalZeros)
	for i := range b {
		b[i] *= real(gain)
	}

	a = polyFromRoots(digitalPoles)

	return b, a, nil
}

// polyFromRoots expands prod(z - r_i) into real polynomial coefficients in
// descending powers. Complex roots must come in conjugate pairs; the
// imaginary residue is discarded.
func polyFromRoots(roots []complex128) []float64 {
	coeffs := make([]complex128, 1, len(roots)+1)
	coeffs[0] = 1

	for _, r := range roots {
		coeffs = append(coeffs, 0)
		for i := len(coeffs) - 1; i > 0; i-- {
			coeffs[i] -= r * coeffs[i-1]
		}
	}

	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = real(c)
	}

	return out
}
