package srs

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-shock/internal/testutil"
	"github.com/cwbudde/algo-shock/shock/rolloff"
	"github.com/cwbudde/algo-shock/shock/sdof"
)

func TestComputeValidation(t *testing.T) {
	sig := testutil.Sine(10, 1, 1000, 100)
	freq := []float64{10}

	if _, err := Compute(sig, 1000, freq, 0.4); !errors.Is(err, ErrInvalidQ) {
		t.Fatalf("low Q error = %v, want ErrInvalidQ", err)
	}
	if _, err := Compute(sig, 0, freq, 10); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("zero rate error = %v, want ErrInvalidSampleRate", err)
	}
	if _, err := Compute(nil, 1000, freq, 10); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("empty signal error = %v, want ErrEmptySignal", err)
	}
	if _, err := ComputeMatrix([][]float64{{1, 2}, {1}}, 1000, freq, 10); !errors.Is(err, ErrRaggedSignals) {
		t.Fatalf("ragged error = %v, want ErrRaggedSignals", err)
	}
	if _, err := Compute(sig, 1000, freq, 10, WithPeakMode(PeakMode(99))); err == nil {
		t.Fatal("unknown peak mode accepted")
	}
	if _, err := Compute(sig, 1000, freq, 10, WithResponseType(sdof.ResponseType(99))); err == nil {
		t.Fatal("unknown response type accepted")
	}
}

func TestComputeEmptyFrequencyGrid(t *testing.T) {
	sig := testutil.Sine(10, 1, 1000, 100)

	res, err := Compute(sig, 1000, nil, 10)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(res.Peaks) != 1 || len(res.Peaks[0]) != 0 {
		t.Fatalf("empty grid peaks = %v", res.Peaks)
	}
}

// A long resonant sine must amplify to the absolute-acceleration
// transmissibility sqrt(Q^2+1).
func TestComputeResonantAmplification(t *testing.T) {
	const (
		fn = 15.0
		q  = 20.0
		sr = 1000.0
	)

	sig := testutil.Sine(fn, 1, sr, 4000)

	res, err := Compute(sig, sr, []float64{fn}, q)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	want := math.Sqrt(q*q + 1)
	testutil.RequireNear(t, res.Peaks[0][0], want, 0.2)
}

func TestComputeEquivalentSine(t *testing.T) {
	sig := testutil.RandomBurst(7, 1, 2000)
	freq := []float64{10, 30, 80}

	plain, err := Compute(sig, 1000, freq, 10)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	eq, err := Compute(sig, 1000, freq, 10, WithEquivalentSine())
	if err != nil {
		t.Fatalf("Compute(eqsine) error = %v", err)
	}

	for j := range freq {
		testutil.RequireNear(t, eq.Peaks[0][j], plain.Peaks[0][j]/10, 1e-14)
	}
}

func TestComputeSerialParallelIdentical(t *testing.T) {
	sig := testutil.RandomBurst(42, 2, 5000)
	freq := make([]float64, 50)
	for j := range freq {
		freq[j] = float64(j + 1)
	}

	serial, err := Compute(sig, 1000, freq, 25, WithParallel(ParallelNo))
	if err != nil {
		t.Fatalf("serial Compute() error = %v", err)
	}
	if serial.Parallel {
		t.Fatal("serial run reported parallel")
	}

	par, err := Compute(sig, 1000, freq, 25, WithParallel(ParallelYes))
	if err != nil {
		t.Fatalf("parallel Compute() error = %v", err)
	}

	testutil.RequireSliceEqual(t, par.Peaks[0], serial.Peaks[0])
}

func TestComputeShiftRemovesOffset(t *testing.T) {
	base := testutil.Sine(20, 1, 1000, 1000) // starts at exactly zero
	offset := make([]float64, len(base))
	for i, v := range base {
		offset[i] = v + 5
	}

	freq := []float64{10, 20, 40}

	want, err := Compute(base, 1000, freq, 10)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	got, err := Compute(offset, 1000, freq, 10, WithInitialConditions(ICShift))
	if err != nil {
		t.Fatalf("Compute(shift) error = %v", err)
	}

	// The (v+5)-5 round trip is not bit-exact in float64.
	testutil.RequireSliceNearlyEqual(t, got.Peaks[0], want.Peaks[0], 1e-9)
}

// A constant base acceleration under steady-state handling must come back
// out as a constant absolute acceleration at every frequency.
func TestComputeSteadyConstantSignal(t *testing.T) {
	sig := make([]float64, 500)
	for i := range sig {
		sig[i] = 3
	}

	res, err := Compute(sig, 1000, []float64{10, 50}, 10,
		WithInitialConditions(ICSteady))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, res.Peaks[0], []float64{3, 3}, 1e-12)
}

func TestComputeRolloffRaisesRate(t *testing.T) {
	sig := testutil.RandomBurst(3, 1, 1024)

	res, err := Compute(sig, 1000, []float64{200}, 10)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if res.SampleRate < 200*DefaultPointsPerCycle {
		t.Fatalf("SampleRate = %v, want >= %v", res.SampleRate, 200*DefaultPointsPerCycle)
	}

	none, err := Compute(sig, 1000, []float64{200}, 10, WithRolloff(rolloff.None()))
	if err != nil {
		t.Fatalf("Compute(none) error = %v", err)
	}
	if none.SampleRate != 1000 {
		t.Fatalf("rolloff.None changed rate to %v", none.SampleRate)
	}
}

func TestComputeHistoriesMatchPeaks(t *testing.T) {
	sig := testutil.RandomBurst(11, 1, 800)
	freq := []float64{10, 25}

	res, err := Compute(sig, 1000, freq, 10, WithHistories())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if len(res.Time) == 0 || len(res.Histories) != 1 {
		t.Fatalf("histories missing: t=%d h=%d", len(res.Time), len(res.Histories))
	}
	if len(res.Histories[0]) != len(res.Time) {
		t.Fatalf("history rows %d != time samples %d", len(res.Histories[0]), len(res.Time))
	}

	for j := range freq {
		peak := 0.0
		for i := range res.Histories[0] {
			if a := math.Abs(res.Histories[0][i][j]); a > peak {
				peak = a
			}
		}

		testutil.RequireNear(t, res.Peaks[0][j], peak, 0)
	}
}

func TestComputeTimeWindows(t *testing.T) {
	sig := testutil.Sine(20, 1, 1000, 500)
	freq := []float64{10, 20}

	primary, err := Compute(sig, 1000, freq, 10, WithHistories())
	if err != nil {
		t.Fatalf("primary error = %v", err)
	}

	total, err := Compute(sig, 1000, freq, 10, WithHistories(),
		WithTimeWindow(TimeTotal))
	if err != nil {
		t.Fatalf("total error = %v", err)
	}

	residual, err := Compute(sig, 1000, freq, 10, WithHistories(),
		WithTimeWindow(TimeResidual))
	if err != nil {
		t.Fatalf("residual error = %v", err)
	}

	// Total appends one cycle of the lowest frequency (100 samples at 10 Hz).
	if len(total.Time) != len(primary.Time)+100 {
		t.Fatalf("total window %d samples, primary %d", len(total.Time), len(primary.Time))
	}

	// Residual starts where the excitation ends.
	testutil.RequireNear(t, residual.Time[0], 0.5, 1e-12)

	// Total bounds both windows.
	for j := range freq {
		if total.Peaks[0][j]+1e-12 < primary.Peaks[0][j] ||
			total.Peaks[0][j]+1e-12 < residual.Peaks[0][j] {
			t.Fatalf("freq %v: total %v < primary %v or residual %v",
				freq[j], total.Peaks[0][j], primary.Peaks[0][j], residual.Peaks[0][j])
		}
	}
}

func TestComputePeakModes(t *testing.T) {
	sig := testutil.RandomBurst(5, 1, 1000)
	freq := []float64{15}

	get := func(opts ...Option) float64 {
		t.Helper()

		res, err := Compute(sig, 1000, freq, 10, opts...)
		if err != nil {
			t.Fatalf("Compute() error = %v", err)
		}

		return res.Peaks[0][0]
	}

	abs := get()
	pos := get(WithPeakMode(PeakPos))
	neg := get(WithPeakMode(PeakNeg))
	poss := get(WithPeakMode(PeakPosSigned))
	negs := get(WithPeakMode(PeakNegSigned))
	rms := get(WithPeakMode(PeakRMS))

	if math.Abs(poss) != pos || math.Abs(negs) != neg {
		t.Fatalf("signed/unsigned mismatch: pos %v/%v neg %v/%v", pos, poss, neg, negs)
	}
	if abs != math.Max(pos, neg) {
		t.Fatalf("abs %v != max(pos %v, neg %v)", abs, pos, neg)
	}
	if rms <= 0 || rms >= abs {
		t.Fatalf("rms %v outside (0, %v)", rms, abs)
	}

	custom := get(WithPeakFunc(func(resp []float64) float64 { return float64(len(resp)) }))
	if custom <= 0 {
		t.Fatalf("custom peak func not applied: %v", custom)
	}
}

func TestComputeMatrixBatches(t *testing.T) {
	a := testutil.Sine(20, 1, 1000, 1000)
	b := testutil.RandomBurst(9, 1, 1000)
	freq := []float64{10, 20, 40}

	batch, err := ComputeMatrix([][]float64{a, b}, 1000, freq, 10)
	if err != nil {
		t.Fatalf("ComputeMatrix() error = %v", err)
	}

	one, err := Compute(b, 1000, freq, 10)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	testutil.RequireSliceEqual(t, batch.Peaks[1], one.Peaks[0])
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	sig := testutil.Sine(20, 1, 1000, 400)
	orig := append([]float64(nil), sig...)

	if _, err := Compute(sig, 1000, []float64{10}, 10,
		WithInitialConditions(ICMeanShift)); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	testutil.RequireSliceEqual(t, sig, orig)
}
