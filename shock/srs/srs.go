package srs

import (
	"math"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-shock/internal/parallel"
	"github.com/cwbudde/algo-shock/shock/sdof"
)

// Result holds a computed shock response spectrum.
type Result struct {
	// Peaks holds one spectrum per input signal: Peaks[s][j] is the peak
	// response of the oscillator at Freq[j] to signal s.
	Peaks [][]float64
	// Freq is the oscillator frequency grid in Hz (a copy of the input).
	Freq []float64
	// SampleRate is the rate the filters actually ran at, after any
	// roll-off compensation.
	SampleRate float64
	// Time and Histories are populated only when history retrieval is
	// requested: Histories[s][i][j] is the response of the oscillator at
	// Freq[j] to signal s at Time[i].
	Time      []float64
	Histories [][][]float64
	// Parallel and Workers record the dispatch decision.
	Parallel bool
	Workers  int
}

// Compute returns the shock response spectrum of a single base acceleration
// signal over the given frequency grid. Q is the dynamic amplification
// factor (Q = 1/(2*zeta)); it must exceed 0.5.
func Compute(sig []float64, sr float64, freq []float64, q float64, opts ...Option) (*Result, error) {
	return ComputeMatrix([][]float64{sig}, sr, freq, q, opts...)
}

// ComputeMatrix computes spectra for several signals at once. Each row of
// sigs is one base acceleration history; all rows must share one length.
// The rows are filtered with one coefficient set per frequency, so batching
// signals amortizes the per-frequency setup.
func ComputeMatrix(sigs [][]float64, sr float64, freq []float64, q float64, opts ...Option) (*Result, error) {
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
	if len(sigs) == 0 || len(sigs[0]) == 0 {
		return nil, ErrEmptySignal
	}
	for _, row := range sigs[1:] {
		if len(row) != len(sigs[0]) {
			return nil, ErrRaggedSignals
		}
	}

	nh := len(sigs)

	if len(freq) == 0 {
		peaks := make([][]float64, nh)
		for s := range peaks {
			peaks[s] = []float64{}
		}

		return &Result{Peaks: peaks, Freq: []float64{}, SampleRate: sr, Workers: 1}, nil
	}

	// Inputs are never mutated; initial-condition shifts and roll-off work
	// on this copy.
	sig := make([][]float64, nh)
	for s, row := range sigs {
		sig[s] = append([]float64(nil), row...)
	}

	wn := make([]float64, len(freq))
	for j, f := range freq {
		wn[j] = 2 * math.Pi * f
	}

	s1, icvals := applyIC(sig, cfg.ic, cfg.response)

	var err error

	maxFreq := maxOf(freq)
	roll := cfg.roll
	if roll != nil && roll.Name() == "prefilter" {
		if sig, sr, err = roll.Apply(sig, sr, cfg.ppc, maxFreq); err != nil {
			return nil, err
		}
		roll = nil
	}
	if roll != nil && maxFreq != 0 && sr/maxFreq < cfg.ppc {
		if sig, sr, err = roll.Apply(sig, sr, cfg.ppc, maxFreq); err != nil {
			return nil, err
		}

		cfg.logger.Debug("roll-off compensation applied",
			zap.String("method", roll.Name()),
			zap.Float64("sample_rate", sr),
			zap.Int("samples", len(sig[0])))
	}

	// M is the excitation length; windows beyond primary append one cycle
	// of the lowest positive frequency so the free decay can develop.
	m := len(sig[0])
	if cfg.window != TimePrimary {
		sig = padResidual(sig, freq, sr, cfg.ic, s1)
	}

	n := len(sig[0])
	start := 0
	if cfg.window == TimeResidual {
		start = m
	}

	plan, err := parallel.Decide(cfg.parallel.dispatch(), len(freq), n*nh, cfg.maxWorkers, cfg.histories)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Peaks:      make([][]float64, nh),
		Freq:       append([]float64(nil), freq...),
		SampleRate: sr,
		Parallel:   plan.Parallel,
		Workers:    plan.Workers,
	}
	for s := range res.Peaks {
		res.Peaks[s] = make([]float64, len(freq))
	}

	if cfg.histories {
		res.Time = make([]float64, n-start)
		for i := range res.Time {
			res.Time[i] = float64(start+i) / sr
		}

		res.Histories = make([][][]float64, nh)
		for s := range res.Histories {
			res.Histories[s] = make([][]float64, n-start)
			for i := range res.Histories[s] {
				res.Histories[s][i] = make([]float64, len(freq))
			}
		}
	}

	cfg.logger.Debug("computing shock response spectrum",
		zap.Int("frequencies", len(freq)),
		zap.Int("signals", nh),
		zap.Int("samples", n),
		zap.Stringer("response", cfg.response),
		zap.Bool("parallel", plan.Parallel),
		zap.Int("workers", plan.Workers))

	peakFn := cfg.peakFn()
	dT := 1 / sr

	err = parallel.Run(plan, len(freq), func(j int) error {
		coef, err := sdof.ForResponse(cfg.response, q, dT, wn[j])
		if err != nil {
			return err
		}

		resp := make([]float64, n)
		for s := range sig {
			coef.FilterTo(resp, sig[s])
			if icvals != nil {
				addConstant(resp, icCorrection(icvals[s], cfg.response, wn[j]))
			}

			window := resp[start:]
			res.Peaks[s][j] = peakFn(window)

			if cfg.histories {
				for i, v := range window {
					res.Histories[s][i][j] = v
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if cfg.eqsine {
		inv := 1 / q
		for s := range res.Peaks {
			scaleInPlace(res.Peaks[s], inv)
		}
		for s := range res.Histories {
			for i := range res.Histories[s] {
				scaleInPlace(res.Histories[s][i], inv)
			}
		}
	}

	return res, nil
}

// applyIC shifts the signals in place per the initial-condition mode and
// returns the first samples plus, for steady-state handling, the per-signal
// correction added back after filtering. icvals is nil when no correction
// applies.
func applyIC(sig [][]float64, ic ICMode, rt sdof.ResponseType) (s1, icvals []float64) {
	s1 = make([]float64, len(sig))
	for s, row := range sig {
		s1[s] = row[0]
	}

	switch ic {
	case ICShift:
		for s, row := range sig {
			addConstant(row, -s1[s])
		}
	case ICMeanShift:
		for _, row := range sig {
			addConstant(row, -meanOf(row))
		}
	case ICSteady:
		for s, row := range sig {
			addConstant(row, -s1[s])
		}

		switch rt {
		case sdof.RelAcceleration, sdof.RelVelocity:
			// Relative acceleration and velocity of a steady state are
			// zero; nothing to add back.
		case sdof.AbsAcceleration:
			icvals = append([]float64(nil), s1...)
		default:
			icvals = make([]float64, len(s1))
			for s, v := range s1 {
				icvals[s] = -v
			}
		}
	}

	return s1, icvals
}

// icCorrection scales the steady-state offset to the units of the response
// type. A zero oscillator frequency yields an infinite displacement-family
// correction, matching the physics of a free mass under constant load.
func icCorrection(v float64, rt sdof.ResponseType, wn float64) float64 {
	switch rt {
	case sdof.RelDisplacement:
		return v / (wn * wn)
	case sdof.PseudoVelocity:
		return v / wn
	default:
		return v
	}
}

// padResidual appends one cycle of the lowest positive frequency so the
// residual response can complete. Steady-state handling pads with the
// negated first sample instead of zero, keeping the shifted signal's
// trailing level consistent.
func padResidual(sig [][]float64, freq []float64, sr float64, ic ICMode, s1 []float64) [][]float64 {
	minf := math.Inf(1)
	for _, f := range freq {
		if f > 0 && f < minf {
			minf = f
		}
	}
	if math.IsInf(minf, 1) {
		return sig
	}

	nzeros := int(math.Ceil(sr / minf))
	out := make([][]float64, len(sig))
	for s, row := range sig {
		pad := make([]float64, nzeros)
		if ic == ICSteady {
			for i := range pad {
				pad[i] = -s1[s]
			}
		}

		out[s] = append(row, pad...)
	}

	return out
}

func scaleInPlace(x []float64, v float64) {
	for i := range x {
		x[i] *= v
	}
}

func addConstant(x []float64, v float64) {
	for i := range x {
		x[i] += v
	}
}

func meanOf(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v
	}

	return sum / float64(len(x))
}
