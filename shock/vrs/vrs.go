package vrs

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrInvalidQ indicates a dynamic amplification factor at or below 0.5;
	// the response integral assumes an underdamped oscillator.
	ErrInvalidQ = errors.New("vrs: Q must be > 0.5")
	// ErrSpecShape indicates a specification with fewer than two
	// breakpoints, a non-ascending frequency column, or ragged PSD rows.
	ErrSpecShape = errors.New("vrs: spec needs >= 2 ascending breakpoints with matching PSD rows")
	// ErrGridShape indicates an integration grid with fewer than two
	// ascending frequencies.
	ErrGridShape = errors.New("vrs: integration grid needs >= 2 ascending frequencies")
)

// Spec is a base acceleration PSD specification given as breakpoints.
// PSD[k][i] is the level of specification k at Freq[i]; several
// specifications can share one frequency column.
type Spec struct {
	Freq []float64
	PSD  [][]float64
}

// Interpolation selects how breakpoints are expanded onto the grid.
type Interpolation int

const (
	// LogLog interpolates on log-log axes, matching constant dB/octave
	// segments. Levels must be positive.
	LogLog Interpolation = iota
	// Linear interpolates the levels directly.
	Linear
)

// Result holds computed vibration response spectra.
type Result struct {
	// Freq is the response frequency grid in Hz.
	Freq []float64
	// RMS[k][i] is the RMS response of the oscillator at Freq[i] to
	// specification k, in the square root of the PSD unit (Grms for
	// G^2/Hz input).
	RMS [][]float64
	// Miles holds the Miles' equation estimates, populated when
	// requested. Same shape as RMS.
	Miles [][]float64
	// RespFreq and RespPSD hold the response PSD curves when requested:
	// RespPSD[k][i][n] is the response PSD of the oscillator at Freq[i]
	// evaluated at RespFreq[n].
	RespFreq []float64
	RespPSD  [][][]float64
}

type config struct {
	interp    Interpolation
	respFreq  []float64
	withMiles bool
	withResp  bool
}

// Option configures a spectrum computation.
type Option func(*config)

// WithInterpolation selects the breakpoint expansion mode. The default is
// log-log.
func WithInterpolation(m Interpolation) Option {
	return func(c *config) { c.interp = m }
}

// WithResponseFrequencies computes the response at fn instead of at the
// integration grid points.
func WithResponseFrequencies(fn []float64) Option {
	return func(c *config) { c.respFreq = fn }
}

// WithMiles adds the Miles' equation estimate sqrt(pi/2 * fn * Q * psd(fn))
// to the result. The estimate is good when the PSD is flat for about two
// octaves around fn.
func WithMiles() Option {
	return func(c *config) { c.withMiles = true }
}

// WithResponsePSD retains the full response PSD curves (and implies the
// Miles' estimate).
func WithResponsePSD() Option {
	return func(c *config) {
		c.withResp = true
		c.withMiles = true
	}
}

// Compute integrates the SDOF base-excitation transfer function against
// the expanded PSD over grid, returning one RMS response spectrum per
// specification. The grid defines the integration steps; responses are
// only accurate where the local step is below fn/Q, and within about an
// octave of the grid ends the truncated transfer function loses energy.
func Compute(spec Spec, grid []float64, q float64, opts ...Option) (*Result, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if q <= 0.5 {
		return nil, ErrInvalidQ
	}
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	if len(grid) < 2 || !ascending(grid) {
		return nil, ErrGridShape
	}

	nspec := len(spec.PSD)

	// Expand every specification onto the integration grid.
	full := make([][]float64, nspec)
	for k := range spec.PSD {
		full[k] = InterpPSD(grid, spec.Freq, spec.PSD[k], cfg.interp)
	}

	// Midpoint integration weights.
	df := make([]float64, len(grid))
	for i := 1; i < len(grid)-1; i++ {
		df[i] = (grid[i+1] - grid[i-1]) / 2
	}
	df[0] = grid[1] - grid[0]
	df[len(grid)-1] = grid[len(grid)-1] - grid[len(grid)-2]

	fn := cfg.respFreq
	onGrid := fn == nil
	if onGrid {
		fn = grid
	}

	res := &Result{
		Freq: append([]float64(nil), fn...),
		RMS:  make([][]float64, nspec),
	}
	for k := range res.RMS {
		res.RMS[k] = make([]float64, len(fn))
	}

	if cfg.withMiles {
		res.Miles = make([][]float64, nspec)
		for k := range full {
			psdAtFn := full[k]
			if !onGrid {
				psdAtFn = InterpPSD(fn, grid, full[k], Linear)
			}

			res.Miles[k] = make([]float64, len(fn))
			for i, f := range fn {
				res.Miles[k][i] = math.Sqrt(math.Pi / 2 * f * q * psdAtFn[i])
			}
		}
	}

	if cfg.withResp {
		res.RespFreq = append([]float64(nil), grid...)
		res.RespPSD = make([][][]float64, nspec)
		for k := range res.RespPSD {
			res.RespPSD[k] = make([][]float64, len(fn))
		}
	}

	zeta := 1 / (2 * q)

	for i, f := range fn {
		for k := range full {
			sum := 0.0

			var curve []float64
			if cfg.withResp {
				curve = make([]float64, len(grid))
			}

			for n, g := range grid {
				r := g / f
				zr := 2 * zeta * r
				h := (1 + zr*zr) / ((1-r*r)*(1-r*r) + zr*zr)
				p := h * full[k][n]

				sum += df[n] * p
				if curve != nil {
					curve[n] = p
				}
			}

			res.RMS[k][i] = math.Sqrt(sum)
			if curve != nil {
				res.RespPSD[k][i] = curve
			}
		}
	}

	return res, nil
}

// InterpPSD expands PSD breakpoints (x ascending, y levels) onto the grid,
// returning zero outside the breakpoint range. LogLog interpolation
// requires positive levels.
func InterpPSD(grid, x, y []float64, m Interpolation) []float64 {
	out := make([]float64, len(grid))

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
		if m == Linear {
			t := (g - x[j-1]) / (x[j] - x[j-1])
			out[n] = y[j-1] + t*(y[j]-y[j-1])
			continue
		}

		t := (math.Log(g) - math.Log(x[j-1])) / (math.Log(x[j]) - math.Log(x[j-1]))
		out[n] = math.Exp(math.Log(y[j-1]) + t*(math.Log(y[j])-math.Log(y[j-1])))
	}

	return out
}

func validateSpec(spec Spec) error {
	if len(spec.Freq) < 2 || !ascending(spec.Freq) || len(spec.PSD) == 0 {
		return ErrSpecShape
	}
	for _, row := range spec.PSD {
		if len(row) != len(spec.Freq) {
			return ErrSpecShape
		}
	}

	return nil
}

func ascending(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return false
		}
	}

	return true
}
