package rolloff

import (
	"fmt"

	"github.com/cwbudde/algo-shock/shock/iir"
)

// Fixed gain-compensation filter after Ahlin, "Shock Response Spectrum
// Calculation - An Improvement of the Smallwood Algorithm". Applied
// forward-backward, it boosts the band near Nyquist to cancel the
// ramp-invariant roll-off without changing the sample rate.
var (
	prefilterB = []float64{0.8767, 1.7533, 0.8767}
	prefilterA = []float64{1, 1.6296, 0.8111, 0.0659}
)

type prefilterMethod struct{}

// Prefilter returns the gain-compensation strategy. It leaves the sample
// rate unchanged; callers using it skip points-per-cycle enforcement
// entirely.
func Prefilter() Method { return prefilterMethod{} }

func (prefilterMethod) Name() string { return "prefilter" }

func (prefilterMethod) Apply(sig [][]float64, sr, _, _ float64) ([][]float64, float64, error) {
	out := make([][]float64, len(sig))

	for r, row := range sig {
		y, err := iir.FiltFilt(prefilterB, prefilterA, row)
		if err != nil {
			return nil, 0, fmt.Errorf("rolloff: prefilter row %d: %w", r, err)
		}

		out[r] = y
	}

	return out, sr, nil
}
