package srs

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-vecmath"
)

// ErrFRFShape indicates FRF data whose row count does not match its
// frequency vector.
var ErrFRFShape = errors.New("srs: FRF rows must match the FRF frequency vector")

// rigidBodyStiffness is the unit-mass stiffness below which an oscillator
// is treated as rigid: its absolute response equals the base motion.
const rigidBodyStiffness = 0.005

// mergeTolerance collapses near-duplicate frequencies when the FRF and
// spectrum grids are merged.
const mergeTolerance = 1e-5

// FromFRF computes a shock response spectrum directly from a base-motion
// frequency response function, avoiding any time-domain filtering. The FRF
// magnitude is interpolated onto a grid that includes the oscillator
// frequencies, and each oscillator's peak absolute response is evaluated
// from its transfer function. frfFreq must be sorted ascending. The peak
// of the returned spectrum relates to the peak FRF magnitude by
// sqrt(Q^2 + 1).
func FromFRF(frf []complex128, frfFreq, srsFreq []float64, q float64) ([]float64, error) {
	cols := make([][]complex128, len(frf))
	for i, v := range frf {
		cols[i] = []complex128{v}
	}

	shk, err := FromFRFMatrix(cols, frfFreq, srsFreq, q)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(shk))
	for i := range shk {
		out[i] = shk[i][0]
	}

	return out, nil
}

// FromFRFMatrix computes spectra for several FRFs at once. frf[i][k] is the
// k-th FRF evaluated at frfFreq[i]; the result has shape
// len(srsFreq) x len(frf[0]).
func FromFRFMatrix(frf [][]complex128, frfFreq, srsFreq []float64, q float64) ([][]float64, error) {
	if q <= 0.5 {
		return nil, ErrInvalidQ
	}
	if len(frf) == 0 || len(frf) != len(frfFreq) {
		return nil, ErrFRFShape
	}

	nfrf := len(frf[0])
	for _, row := range frf[1:] {
		if len(row) != nfrf {
			return nil, ErrFRFShape
		}
	}

	// Magnitudes column by column; using the absolute value before
	// interpolation gives equivalent spectra for complex FRFs.
	fabs := make([][]float64, nfrf)
	re := make([]float64, len(frf))
	im := make([]float64, len(frf))
	for k := 0; k < nfrf; k++ {
		for i := range frf {
			re[i] = real(frf[i][k])
			im[i] = imag(frf[i][k])
		}

		fabs[k] = make([]float64, len(frf))
		vecmath.Magnitude(fabs[k], re, im)
	}

	grid := mergeGrids(frfFreq, srsFreq)

	// Interpolate every FRF magnitude onto the merged grid, zero outside
	// the measured band.
	interp := make([][]float64, nfrf)
	for k := range interp {
		interp[k] = interpOntoGrid(grid, frfFreq, fabs[k])
	}

	shk := make([][]float64, len(srsFreq))
	a := make([]complex128, len(grid))

	for i, f := range srsFreq {
		ws := 2 * math.Pi * f
		ks := ws * ws
		bs := ws / q
		rigid := ks < rigidBodyStiffness

		shk[i] = make([]float64, nfrf)

		for k := 0; k < nfrf; k++ {
			peak := 0.0
			for n, gf := range grid {
				fs := -interp[k][n]
				if rigid {
					a[n] = complex(fs, 0)
				} else {
					fw := 2 * math.Pi * gf
					h := complex(ks-fw*fw, bs*fw)
					a[n] = -complex(fs, 0) / h * complex(fw*fw, 0)
				}

				if d := cmplx.Abs(a[n] - complex(fs, 0)); d > peak {
					peak = d
				}
			}

			shk[i][k] = peak
		}
	}

	return shk, nil
}

// mergeGrids returns the sorted union of the two frequency vectors with
// near-duplicates collapsed.
func mergeGrids(a, b []float64) []float64 {
	merged := make([]float64, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	sort.Float64s(merged)

	out := merged[:1]
	for _, f := range merged[1:] {
		if f-out[len(out)-1] > mergeTolerance {
			out = append(out, f)
		}
	}

	return out
}

// interpOntoGrid linearly interpolates y (sampled at x, ascending) onto the
// grid, returning zero outside [x[0], x[len-1]]. A single-point input is
// placed at its nearest grid slot.
func interpOntoGrid(grid, x, y []float64) []float64 {
	out := make([]float64, len(grid))

	if len(x) == 1 {
		i := sort.SearchFloat64s(grid, x[0])
		if i == len(grid) {
			i--
		}
		out[i] = y[0]

		return out
	}

	for n, g := range grid {
		if g < x[0] || g > x[len(x)-1] {
			continue
		}

		j := sort.SearchFloat64s(x, g)
		if j < len(x) && x[j] == g {
			out[n] = y[j]
			continue
		}

		// x[j-1] < g < x[j]
		t := (g - x[j-1]) / (x[j] - x[j-1])
		out[n] = y[j-1] + t*(y[j]-y[j-1])
	}

	return out
}
