package iir

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyCoefficients indicates an empty numerator or denominator.
	ErrEmptyCoefficients = errors.New("iir: filter coefficients must not be empty")
	// ErrZeroLeadingCoefficient indicates a denominator with a[0] == 0.
	ErrZeroLeadingCoefficient = errors.New("iir: leading denominator coefficient must be nonzero")
	// ErrSignalTooShort indicates a signal shorter than the filtfilt padding.
	ErrSignalTooShort = errors.New("iir: signal too short for zero-phase padding")
)

// normalize pads b and a to a common length and scales both by a[0].
func normalize(b, a []float64) (bn, an []float64, err error) {
	if len(b) == 0 || len(a) == 0 {
		return nil, nil, ErrEmptyCoefficients
	}

	if a[0] == 0 {
		return nil, nil, ErrZeroLeadingCoefficient
	}

	n := max(len(b), len(a))
	bn = make([]float64, n)
	an = make([]float64, n)

	for i, v := range b {
		bn[i] = v / a[0]
	}

	for i, v := range a {
		an[i] = v / a[0]
	}

	return bn, an, nil
}

// Filter applies the recursive filter defined by b and a to x with zero
// initial state, using the Direct Form II Transposed structure. The
// denominator a[0] need not be 1; both coefficient sets are normalized by it.
func Filter(b, a, x []float64) ([]float64, error) {
	bn, an, err := normalize(b, a)
	if err != nil {
		return nil, err
	}

	y := make([]float64, len(x))
	filterZ(bn, an, y, x, make([]float64, len(bn)-1))

	return y, nil
}

// filterZ runs the normalized filter over x into y starting from state z.
// z has length len(b)-1 and is updated in place.
func filterZ(b, a, y, x, z []float64) {
	order := len(z)

	for i, xv := range x {
		var yv float64
		if order == 0 {
			yv = b[0] * xv
		} else {
			yv = b[0]*xv + z[0]
			for k := 0; k < order-1; k++ {
				z[k] = b[k+1]*xv + z[k+1] - a[k+1]*yv
			}
			z[order-1] = b[order]*xv - a[order]*yv
		}

		y[i] = yv
	}
}

// steadyStateZ returns the internal filter state that makes the step
// response start at its steady-state value. Multiplying this vector by the
// first input sample removes the start-up transient of Filter.
//
// The state solves (I - A) z = B, where A is the transpose of the
// denominator companion matrix.
func steadyStateZ(b, a []float64) ([]float64, error) {
	n := len(a) - 1
	if n == 0 {
		return nil, nil
	}

	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}

	// Subtract companion(a)^T: first column -a[1:], superdiagonal ones.
	for i := 0; i < n; i++ {
		m.Set(i, 0, m.At(i, 0)+a[i+1])
	}

	for i := 0; i < n-1; i++ {
		m.Set(i, i+1, m.At(i, i+1)-1)
	}

	rhs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		rhs.SetVec(i, b[i+1]-a[i+1]*b[0])
	}

	var z mat.VecDense
	if err := z.SolveVec(m, rhs); err != nil {
		return nil, fmt.Errorf("iir: steady-state solve failed: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = z.AtVec(i)
	}

	return out, nil
}

// FiltFilt applies the filter forward and backward for zero phase
// distortion. The signal is extended at both ends by an odd reflection of
// three filter lengths, and each pass starts from steady-state initial
// conditions, matching the conventional forward-backward procedure.
func FiltFilt(b, a, x []float64) ([]float64, error) {
	bn, an, err := normalize(b, a)
	if err != nil {
		return nil, err
	}

	padLen := 3 * len(bn)
	if len(x) <= padLen {
		return nil, fmt.Errorf("%w: need more than %d samples, have %d",
			ErrSignalTooShort, padLen, len(x))
	}

	zi, err := steadyStateZ(bn, an)
	if err != nil {
		return nil, err
	}

	// Odd extension at both ends.
	ext := make([]float64, padLen+len(x)+padLen)
	for i := 0; i < padLen; i++ {
		ext[i] = 2*x[0] - x[padLen-i]
		ext[padLen+len(x)+i] = 2*x[len(x)-1] - x[len(x)-2-i]
	}

	copy(ext[padLen:], x)

	// Forward pass.
	y := make([]float64, len(ext))
	filterZ(bn, an, y, ext, scaled(zi, ext[0]))

	// Backward pass.
	reverse(y)
	y2 := make([]float64, len(y))
	filterZ(bn, an, y2, y, scaled(zi, y[0]))
	reverse(y2)

	out := make([]float64, len(x))
	copy(out, y2[padLen:padLen+len(x)])

	return out, nil
}

func scaled(z []float64, s float64) []float64 {
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = v * s
	}

	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
