package rolloff

import (
	"errors"
	"math"
)

// ErrInvalidRate indicates a non-positive sample rate or frequency.
var ErrInvalidRate = errors.New("rolloff: sample rate and frequency must be > 0")

// Method raises the sample rate of a signal matrix (one row per history) so
// that maxFreq has at least ppc points per cycle, or compensates the
// roll-off in place. Implementations return the new matrix and sample rate.
type Method interface {
	// Name identifies the strategy for result metadata.
	Name() string
	// Apply transforms the signal. Rows must share one length.
	Apply(sig [][]float64, sr, ppc, maxFreq float64) ([][]float64, float64, error)
}

// Func adapts a plain function to the [Method] contract.
type Func func(sig [][]float64, sr, ppc, maxFreq float64) ([][]float64, float64, error)

// Name implements [Method].
func (Func) Name() string { return "custom" }

// Apply implements [Method].
func (f Func) Apply(sig [][]float64, sr, ppc, maxFreq float64) ([][]float64, float64, error) {
	return f(sig, sr, ppc, maxFreq)
}

// Factor returns the integer upsampling factor needed for maxFreq to reach
// ppc points per cycle at the given rate. It returns 1 when no upsampling
// is needed.
func Factor(sr, ppc, maxFreq float64) (int, error) {
	if sr <= 0 || maxFreq <= 0 {
		return 0, ErrInvalidRate
	}

	curppc := sr / maxFreq
	f := int(math.Ceil(ppc / curppc))
	if f < 1 {
		f = 1
	}

	return f, nil
}

type noneMethod struct{}

// None returns the pass-through strategy: the signal and rate are returned
// unchanged and the points-per-cycle requirement is left unenforced.
func None() Method { return noneMethod{} }

func (noneMethod) Name() string { return "none" }

func (noneMethod) Apply(sig [][]float64, sr, _, _ float64) ([][]float64, float64, error) {
	return sig, sr, nil
}
