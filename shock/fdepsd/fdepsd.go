package fdepsd

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-shock/internal/parallel"
	"github.com/cwbudde/algo-shock/shock/cyclecount"
	"github.com/cwbudde/algo-shock/shock/iir"
	"github.com/cwbudde/algo-shock/shock/sdof"
)

// highpassOrder is the Butterworth order of the drift-removal pre-filter.
const highpassOrder = 3

// PSDSet holds one equivalent PSD level per frequency for each of the five
// estimates: the peak-based G1, the count-slope-based G2 and the
// damage-based levels for fatigue exponents 4, 8 and 12.
type PSDSet struct {
	G1, G2, G4, G8, G12 []float64
}

// AmpSet holds the peak response amplitudes per frequency: the measured
// rainflow maximum and the peaks a Gaussian test at each equivalent level
// would reach.
type AmpSet struct {
	Max, G2, G4, G8, G12 []float64
}

// Result holds a computed fatigue damage equivalent PSD.
type Result struct {
	// Freq is the oscillator frequency grid in Hz (a copy of the input).
	Freq []float64
	// PSD holds the equivalent levels, in the squared signal unit per Hz.
	PSD PSDSet
	// Amp holds the peak response amplitudes.
	Amp AmpSet
	// BinAmps[j] holds the amplitude levels cycles were counted at for
	// Freq[j]; Count[j][b] is the number of cycles with amplitude at or
	// above BinAmps[j][b] (so Count[j] is non-increasing and Count[j][0]
	// is the total cycle count).
	BinAmps [][]float64
	Count   [][]float64
	// SRS is the peak absolute response per frequency and Var its
	// population variance, both of the damage-basis response.
	SRS []float64
	Var []float64
	// Response is the damage basis used.
	Response Response
	// Parallel and Workers record the dispatch decision.
	Parallel bool
	Workers  int
}

// Compute derives the fatigue damage equivalent PSD of a base acceleration
// signal over the given frequency grid. Q is the dynamic amplification
// factor (Q = 1/(2*zeta)); the equivalent levels assume a test of the
// configured duration driving the same oscillators.
func Compute(sig []float64, sr float64, freq []float64, q float64, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if q <= 0.5 {
		return nil, ErrInvalidQ
	}
	if sr <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if len(sig) == 0 {
		return nil, ErrEmptySignal
	}
	if len(freq) == 0 {
		return nil, ErrInvalidFreq
	}
	for _, f := range freq {
		if f <= 0 {
			return nil, ErrInvalidFreq
		}
	}

	x := append([]float64(nil), sig...)

	if cfg.highpassHz > 0 {
		cfg.logger.Debug("high-pass filtering",
			zap.Float64("cutoff_hz", cfg.highpassHz))

		b, a, err := iir.ButterworthHighpass(highpassOrder, cfg.highpassHz, sr)
		if err != nil {
			return nil, err
		}
		if x, err = iir.FiltFilt(b, a, x); err != nil {
			return nil, err
		}
	}

	var err error

	maxFreq := maxOf(freq)
	roll := cfg.roll
	if roll != nil && roll.Name() == "prefilter" {
		rows := [][]float64{x}
		if rows, sr, err = roll.Apply(rows, sr, cfg.ppc, maxFreq); err != nil {
			return nil, err
		}
		x = rows[0]
		roll = nil
	}
	if roll != nil && sr/maxFreq < cfg.ppc {
		rows := [][]float64{x}
		if rows, sr, err = roll.Apply(rows, sr, cfg.ppc, maxFreq); err != nil {
			return nil, err
		}
		x = rows[0]

		cfg.logger.Debug("roll-off compensation applied",
			zap.String("method", roll.Name()),
			zap.Float64("sample_rate", sr),
			zap.Int("samples", len(x)))
	}

	lf := len(freq)

	plan, err := parallel.Decide(cfg.parallel.dispatch(), lf, len(x), cfg.maxWorkers, false)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Freq:     append([]float64(nil), freq...),
		BinAmps:  make([][]float64, lf),
		Count:    make([][]float64, lf),
		SRS:      make([]float64, lf),
		Var:      make([]float64, lf),
		Response: cfg.resp,
		Parallel: plan.Parallel,
		Workers:  plan.Workers,
	}

	amax := make([]float64, lf)

	cfg.logger.Debug("computing damage equivalent PSD",
		zap.Int("frequencies", lf),
		zap.Int("samples", len(x)),
		zap.Stringer("response", cfg.resp),
		zap.Bool("parallel", plan.Parallel),
		zap.Int("workers", plan.Workers))

	rt := cfg.resp.sdofType()
	dT := 1 / sr
	nbins := cfg.bins

	err = parallel.Run(plan, lf, func(j int) error {
		coef, err := sdof.ForResponse(rt, q, dT, 2*math.Pi*freq[j])
		if err != nil {
			return err
		}

		resp := coef.Filter(x)
		res.SRS[j] = absMax(resp)
		res.Var[j] = stat.PopVariance(resp, nil)

		cycles := cyclecount.RainflowHistory(resp)
		amax[j] = cycles.MaxAmp()

		bins := make([]float64, nbins)
		count := make([]float64, nbins)
		for b := range bins {
			bins[b] = amax[j] * float64(b) / float64(nbins)
		}

		// cumulative count of cycles at or above each level
		for i, amp := range cycles.Amp {
			for b := range bins {
				if amp >= bins[b] {
					count[b] += cycles.Count[i]
				} else {
					break
				}
			}
		}

		res.BinAmps[j] = bins
		res.Count[j] = count

		return nil
	})
	if err != nil {
		return nil, err
	}

	res.finish(q, cfg.duration, amax)

	return res, nil
}

// finish turns the per-frequency cycle counts into equivalent PSD levels.
func (r *Result) finish(q, t0 float64, amax []float64) {
	lf := len(r.Freq)
	nbins := len(r.BinAmps[0])

	r.PSD = PSDSet{
		G1:  make([]float64, lf),
		G2:  make([]float64, lf),
		G4:  make([]float64, lf),
		G8:  make([]float64, lf),
		G12: make([]float64, lf),
	}
	r.Amp = AmpSet{
		Max: append([]float64(nil), amax...),
		G2:  make([]float64, lf),
		G4:  make([]float64, lf),
		G8:  make([]float64, lf),
		G12: make([]float64, lf),
	}

	for j, f := range r.Freq {
		// damage indicators from the non-cumulative bin counts
		var df4, df8, df12 float64
		for b := 0; b < nbins; b++ {
			c := r.Count[j][b]
			if b < nbins-1 {
				c -= r.Count[j][b+1]
			}

			a2 := r.BinAmps[j][b] * r.BinAmps[j][b]
			a4 := a2 * a2
			df4 += a4 * c
			df8 += a4 * a4 * c
			df12 += a4 * a4 * a4 * c
		}

		g2max := r.fitG2Max(j, amax[j])

		n0 := f * t0
		lnN0 := math.Log(n0)

		if r.Response == AbsAcceleration {
			scale := q * math.Pi * f * lnN0
			r.PSD.G1[j] = amax[j] * amax[j] / scale
			r.PSD.G2[j] = g2max / scale

			abar := 2 * lnN0
			abar2 := abar * abar
			abar3 := abar2 * abar
			abar4 := abar2 * abar2
			abar5 := abar4 * abar
			abar6 := abar4 * abar2

			dt4 := 8*n0 - (abar2 + 4*abar + 8)
			dt8 := 384*n0 - (abar4 + 8*abar3 + 48*abar2 + 192*abar + 384)
			dt12 := 46080*n0 - (abar6 + 12*abar5 + 120*abar4 +
				960*abar3 + 5760*abar2 + 23040*abar + 46080)

			gscale := q * math.Pi / 2 * f
			r.PSD.G4[j] = math.Sqrt(df4/dt4) / gscale
			r.PSD.G8[j] = math.Pow(df8/dt8, 0.25) / gscale
			r.PSD.G12[j] = math.Pow(df12/dt12, 1.0/6) / gscale

			r.Amp.G2[j] = math.Sqrt(g2max)
			r.Amp.G4[j] = math.Sqrt(r.PSD.G4[j] * scale)
			r.Amp.G8[j] = math.Sqrt(r.PSD.G8[j] * scale)
			r.Amp.G12[j] = math.Sqrt(r.PSD.G12[j] * scale)
		} else {
			scale := q * lnN0 / (4 * math.Pi * f)
			r.PSD.G1[j] = amax[j] * amax[j] / scale
			r.PSD.G2[j] = g2max / scale

			gscale := 4 * math.Pi * f / q
			r.PSD.G4[j] = math.Sqrt(df4/(2*n0)) * gscale
			r.PSD.G8[j] = math.Pow(df8/(24*n0), 0.25) * gscale
			r.PSD.G12[j] = math.Pow(df12/(720*n0), 1.0/6) * gscale

			r.Amp.G2[j] = math.Sqrt(g2max)
			r.Amp.G4[j] = math.Sqrt(r.PSD.G4[j] * scale)
			r.Amp.G8[j] = math.Sqrt(r.PSD.G8[j] * scale)
			r.Amp.G12[j] = math.Sqrt(r.PSD.G12[j] * scale)
		}
	}
}

// fitG2Max bounds the observed cycle counts with a straight line on
// amp^2 vs log-count axes. Small cycles below a third of the peak are
// ignored; when no bin demands a steeper line than the peak-based one, the
// peak amplitude squared is returned unchanged.
func (r *Result) fitG2Max(j int, amax float64) float64 {
	g2max := amax * amax
	total := r.Count[j][0]
	if total <= 0 {
		return g2max
	}

	y1 := math.Log(total)

	bestTan := math.Inf(-1)
	bestX, bestY := 0.0, 0.0

	for b, amp := range r.BinAmps[j] {
		if amp < amax/3 {
			continue
		}

		x := amp * amp
		y := math.Log(r.Count[j][b])
		g1y := y1 * (1 - x/g2max)

		if tan := (y - g1y) / x; tan > bestTan {
			bestTan = tan
			bestX, bestY = x, y
		}
	}

	if bestTan > 0 {
		// x-intercept of the line through (0, y1) and (bestX, bestY)
		g2max = bestX * y1 / (y1 - bestY)
	}

	return g2max
}

func absMax(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > m {
			m = a
		}
	}

	return m
}

func maxOf(x []float64) float64 {
	m := math.Inf(-1)
	for _, v := range x {
		if v > m {
			m = v
		}
	}

	return m
}
