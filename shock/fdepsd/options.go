package fdepsd

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
	// DefaultHighpassHz removes drift and DC content before filtering.
	DefaultHighpassHz = 5.0
	// DefaultBins is the number of amplitude levels for cycle counting.
	DefaultBins = 300
	// DefaultDuration is the equivalent test duration in seconds.
	DefaultDuration = 60.0
	// DefaultPointsPerCycle is the minimum oscillation sampling density
	// enforced at the highest requested frequency.
	DefaultPointsPerCycle = 12
	// DefaultMaxWorkers bounds the parallel fan-out.
	DefaultMaxWorkers = 14
)

var (
	// ErrInvalidQ indicates a dynamic amplification factor at or below 0.5.
	ErrInvalidQ = errors.New("fdepsd: Q must be > 0.5")
	// ErrInvalidSampleRate indicates a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("fdepsd: sample rate must be > 0")
	// ErrEmptySignal indicates a signal with no samples.
	ErrEmptySignal = errors.New("fdepsd: signal must have at least one sample")
	// ErrInvalidFreq indicates an empty grid or a non-positive frequency;
	// the damage inversion divides by frequency and log cycle count.
	ErrInvalidFreq = errors.New("fdepsd: frequencies must be > 0")
)

// Response selects which oscillator response the damage is based on.
type Response int

const (
	// AbsAcceleration bases damage on the absolute acceleration response.
	AbsAcceleration Response = iota
	// PseudoVelocity bases damage on the pseudo velocity response.
	PseudoVelocity
)

// String returns the conventional short name.
func (r Response) String() string {
	switch r {
	case AbsAcceleration:
		return "absacce"
	case PseudoVelocity:
		return "pvelo"
	default:
		return fmt.Sprintf("Response(%d)", int(r))
	}
}

func (r Response) sdofType() sdof.ResponseType {
	if r == PseudoVelocity {
		return sdof.PseudoVelocity
	}

	return sdof.AbsAcceleration
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
	resp       Response
	highpassHz float64
	bins       int
	duration   float64
	roll       rolloff.Method
	ppc        float64
	parallel   ParallelMode
	maxWorkers int
	logger     *zap.Logger
}

func defaultConfig() config {
	return config{
		highpassHz: DefaultHighpassHz,
		bins:       DefaultBins,
		duration:   DefaultDuration,
		roll:       rolloff.Lanczos(),
		ppc:        DefaultPointsPerCycle,
		maxWorkers: DefaultMaxWorkers,
		logger:     zap.NewNop(),
	}
}

func (c *config) validate() error {
	if c.resp != AbsAcceleration && c.resp != PseudoVelocity {
		return fmt.Errorf("fdepsd: unknown response %d", int(c.resp))
	}
	if c.parallel < ParallelAuto || c.parallel > ParallelYes {
		return fmt.Errorf("fdepsd: unknown parallel mode %d", int(c.parallel))
	}
	if c.bins < 2 {
		return fmt.Errorf("fdepsd: need at least 2 bins, got %d", c.bins)
	}
	if c.duration <= 0 {
		return fmt.Errorf("fdepsd: test duration must be > 0, got %v", c.duration)
	}
	if c.ppc <= 0 {
		return fmt.Errorf("fdepsd: points per cycle must be > 0, got %v", c.ppc)
	}

	return nil
}

// Option configures a damage equivalent PSD computation.
type Option func(*config)

// WithResponse selects the damage basis. The default is absolute
// acceleration.
func WithResponse(r Response) Option {
	return func(c *config) { c.resp = r }
}

// WithHighpass sets the zero-phase high-pass cutoff applied before
// filtering. The default is 5 Hz.
func WithHighpass(hz float64) Option {
	return func(c *config) { c.highpassHz = hz }
}

// WithoutHighpass disables the high-pass pre-filter.
func WithoutHighpass() Option {
	return func(c *config) { c.highpassHz = 0 }
}

// WithBins sets the number of amplitude levels for cycle counting.
func WithBins(n int) Option {
	return func(c *config) { c.bins = n }
}

// WithDuration sets the equivalent test duration in seconds.
func WithDuration(t0 float64) Option {
	return func(c *config) { c.duration = t0 }
}

// WithRolloff selects the roll-off compensation strategy. The default is
// Lanczos interpolation; pass [rolloff.None] to disable compensation.
func WithRolloff(m rolloff.Method) Option {
	return func(c *config) { c.roll = m }
}

// WithPointsPerCycle sets the minimum sampling density at the highest
// requested frequency before the roll-off strategy engages.
func WithPointsPerCycle(ppc float64) Option {
	return func(c *config) { c.ppc = ppc }
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
