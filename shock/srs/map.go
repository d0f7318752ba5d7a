package srs

import (
	"errors"
	"math"
)

var (
	// ErrSliceLength indicates a time slice shorter than two samples or
	// longer than the signal.
	ErrSliceLength = errors.New("srs: time slice must span 2..len(sig) samples")
	// ErrOverlap indicates an overlap fraction outside [0, 1).
	ErrOverlap = errors.New("srs: overlap must be in [0, 1)")
)

// Map computes a spectral waterfall: the signal is cut into overlapping
// slices of timeSlice seconds and an equivalent-sine spectrum is computed
// for each. overlap is the slice fraction shared by neighbors (0.5 means
// 50%). taper, when positive, is the fraction of each slice end smoothed
// with a raised-cosine ramp before filtering, suppressing truncation
// transients.
//
// The map has one row per frequency and one column per slice; times holds
// the slice center times, assuming the signal starts at t = 0.
func Map(timeSlice, overlap float64, sig []float64, sr float64, freq []float64, q float64, taper float64, opts ...Option) (mp [][]float64, times []float64, err error) {
	if sr <= 0 {
		return nil, nil, ErrInvalidSampleRate
	}
	if overlap < 0 || overlap >= 1 {
		return nil, nil, ErrOverlap
	}

	ns := int(math.Round(timeSlice * sr))
	if ns < 2 || ns > len(sig) {
		return nil, nil, ErrSliceLength
	}

	step := int(math.Round(float64(ns) * (1 - overlap)))
	if step < 1 {
		step = 1
	}

	nslices := (len(sig)-ns)/step + 1

	mp = make([][]float64, len(freq))
	for i := range mp {
		mp[i] = make([]float64, nslices)
	}
	times = make([]float64, nslices)

	opts = append(opts[:len(opts):len(opts)], WithEquivalentSine())

	buf := make([]float64, ns)
	for s := 0; s < nslices; s++ {
		off := s * step
		copy(buf, sig[off:off+ns])
		if taper > 0 {
			taperEnds(buf, taper)
		}

		res, err := Compute(buf, sr, freq, q, opts...)
		if err != nil {
			return nil, nil, err
		}

		for i := range freq {
			mp[i][s] = res.Peaks[0][i]
		}

		times[s] = (float64(off) + float64(ns-1)/2) / sr
	}

	return mp, times, nil
}

// taperEnds applies a raised-cosine ramp over the given fraction of the
// slice at each end, in place.
func taperEnds(x []float64, portion float64) {
	k := int(math.Round(portion * float64(len(x))))
	if k < 1 {
		k = 1
	}
	if 2*k > len(x) {
		k = len(x) / 2
	}

	for i := 0; i < k; i++ {
		w := 0.5 - 0.5*math.Cos(math.Pi*float64(i)/float64(k))
		x[i] *= w
		x[len(x)-1-i] *= w
	}
}
