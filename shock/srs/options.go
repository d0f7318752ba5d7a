package srs

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-shock/internal/parallel"
	"github.com/cwbudde/algo-shock/shock/rolloff"
	"github.com/cwbudde/algo-shock/shock/sdof"
)

// Defaults applied by [Compute] when no option overrides them.
const (
	// DefaultPointsPerCycle is the minimum oscillation sampling density
	// enforced at the highest requested frequency.
	DefaultPointsPerCycle = 12
	// DefaultMaxWorkers bounds the parallel fan-out.
	DefaultMaxWorkers = 14
)

var (
	// ErrInvalidQ indicates a dynamic amplification factor at or below 0.5
	// (critically damped or over-damped, outside the resonant regime).
	ErrInvalidQ = errors.New("srs: Q must be > 0.5")
	// ErrInvalidSampleRate indicates a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("srs: sample rate must be > 0")
	// ErrEmptySignal indicates an input with no signals or no samples.
	ErrEmptySignal = errors.New("srs: signal must have at least one sample")
	// ErrRaggedSignals indicates signal rows of differing lengths.
	ErrRaggedSignals = errors.New("srs: all signal rows must share one length")
)

// ICMode selects how non-zero initial conditions of the base motion are
// handled before filtering.
type ICMode int

const (
	// ICZero uses the signal as-is; the oscillator starts at rest.
	ICZero ICMode = iota
	// ICShift subtracts the first sample from each signal.
	ICShift
	// ICMeanShift subtracts the mean from each signal.
	ICMeanShift
	// ICSteady subtracts the first sample and adds back the steady-state
	// response it implies after filtering.
	ICSteady
)

// String returns the mode name.
func (m ICMode) String() string {
	switch m {
	case ICZero:
		return "zero"
	case ICShift:
		return "shift"
	case ICMeanShift:
		return "mshift"
	case ICSteady:
		return "steady"
	default:
		return fmt.Sprintf("ICMode(%d)", int(m))
	}
}

// PeakFunc reduces one response history to a single spectrum value.
type PeakFunc func(resp []float64) float64

// PeakMode selects the built-in reduction applied to each response history.
type PeakMode int

const (
	// PeakAbs takes the largest absolute response.
	PeakAbs PeakMode = iota
	// PeakPos takes the absolute value of the largest response.
	PeakPos
	// PeakPosSigned takes the largest response, keeping its sign.
	PeakPosSigned
	// PeakNeg takes the absolute value of the smallest response.
	PeakNeg
	// PeakNegSigned takes the smallest response, keeping its sign.
	PeakNegSigned
	// PeakRMS takes the root-mean-square of the response.
	PeakRMS
)

// String returns the mode name.
func (m PeakMode) String() string {
	switch m {
	case PeakAbs:
		return "abs"
	case PeakPos:
		return "pos"
	case PeakPosSigned:
		return "poss"
	case PeakNeg:
		return "neg"
	case PeakNegSigned:
		return "negs"
	case PeakRMS:
		return "rms"
	default:
		return fmt.Sprintf("PeakMode(%d)", int(m))
	}
}

// TimeWindow selects which portion of the response is scanned for peaks.
type TimeWindow int

const (
	// TimePrimary scans the response during the excitation only.
	TimePrimary TimeWindow = iota
	// TimeTotal scans the excitation plus one trailing cycle of the lowest
	// positive frequency.
	TimeTotal
	// TimeResidual scans only the trailing free decay.
	TimeResidual
)

// String returns the window name.
func (w TimeWindow) String() string {
	switch w {
	case TimePrimary:
		return "primary"
	case TimeTotal:
		return "total"
	case TimeResidual:
		return "residual"
	default:
		return fmt.Sprintf("TimeWindow(%d)", int(w))
	}
}

// ParallelMode controls per-frequency dispatch.
type ParallelMode int

const (
	// ParallelAuto decides based on problem size and CPU count.
	ParallelAuto ParallelMode = iota
	// ParallelNo forces sequential execution.
	ParallelNo
	// ParallelYes forces parallel execution.
	ParallelYes
)

func (m ParallelMode) dispatch() parallel.Mode {
	switch m {
	case ParallelNo:
		return parallel.No
	case ParallelYes:
		return parallel.Yes
	default:
		return parallel.Auto
	}
}

type config struct {
	ic         ICMode
	response   sdof.ResponseType
	peak       PeakMode
	peakFunc   PeakFunc
	ppc        float64
	roll       rolloff.Method
	eqsine     bool
	window     TimeWindow
	histories  bool
	parallel   ParallelMode
	maxWorkers int
	logger     *zap.Logger
}

func defaultConfig() config {
	return config{
		ppc:        DefaultPointsPerCycle,
		roll:       rolloff.Lanczos(),
		maxWorkers: DefaultMaxWorkers,
		logger:     zap.NewNop(),
	}
}

func (c *config) validate() error {
	if c.ic < ICZero || c.ic > ICSteady {
		return fmt.Errorf("srs: unknown initial-condition mode %d", int(c.ic))
	}
	if !c.response.Valid() {
		return fmt.Errorf("srs: unknown response type %d", int(c.response))
	}
	if c.peakFunc == nil && (c.peak < PeakAbs || c.peak > PeakRMS) {
		return fmt.Errorf("srs: unknown peak mode %d", int(c.peak))
	}
	if c.window < TimePrimary || c.window > TimeResidual {
		return fmt.Errorf("srs: unknown time window %d", int(c.window))
	}
	if c.parallel < ParallelAuto || c.parallel > ParallelYes {
		return fmt.Errorf("srs: unknown parallel mode %d", int(c.parallel))
	}
	if c.ppc <= 0 {
		return fmt.Errorf("srs: points per cycle must be > 0, got %v", c.ppc)
	}

	return nil
}

// Option configures a spectrum computation.
type Option func(*config)

// WithInitialConditions selects the initial-condition handling.
func WithInitialConditions(m ICMode) Option {
	return func(c *config) { c.ic = m }
}

// WithResponseType selects the SDOF response quantity. The default is
// absolute acceleration.
func WithResponseType(rt sdof.ResponseType) Option {
	return func(c *config) { c.response = rt }
}

// WithPeakMode selects the built-in peak reduction. The default is the
// largest absolute response.
func WithPeakMode(m PeakMode) Option {
	return func(c *config) { c.peak = m }
}

// WithPeakFunc installs a custom reduction, overriding the peak mode.
func WithPeakFunc(f PeakFunc) Option {
	return func(c *config) { c.peakFunc = f }
}

// WithPointsPerCycle sets the minimum sampling density at the highest
// requested frequency before the roll-off strategy engages.
func WithPointsPerCycle(ppc float64) Option {
	return func(c *config) { c.ppc = ppc }
}

// WithRolloff selects the roll-off compensation strategy. The default is
// Lanczos interpolation; pass [rolloff.None] to disable compensation.
func WithRolloff(m rolloff.Method) Option {
	return func(c *config) { c.roll = m }
}

// WithEquivalentSine divides the spectrum (and any retained histories) by Q,
// turning it into an equivalent sine input level.
func WithEquivalentSine() Option {
	return func(c *config) { c.eqsine = true }
}

// WithTimeWindow selects which portion of the response is scanned.
func WithTimeWindow(w TimeWindow) Option {
	return func(c *config) { c.window = w }
}

// WithHistories retains the full response histories in the result.
func WithHistories() Option {
	return func(c *config) { c.histories = true }
}

// WithParallel controls per-frequency dispatch.
func WithParallel(m ParallelMode) Option {
	return func(c *config) { c.parallel = m }
}

// WithMaxWorkers caps the parallel worker count.
func WithMaxWorkers(n int) Option {
	return func(c *config) { c.maxWorkers = n }
}

// WithLogger installs a structured logger for progress diagnostics. The
// default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
