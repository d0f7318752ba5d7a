package rolloff

import (
	"math"
	"testing"
)

func sineMatrix(freq, sr float64, n int) [][]float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.Sin(2 * math.Pi * freq * float64(i) / sr)
	}

	return [][]float64{row}
}

func TestFactor(t *testing.T) {
	tests := []struct {
		sr, ppc, maxFreq float64
		want             int
	}{
		{1000, 12, 50, 1},   // 20 ppc already
		{1000, 12, 100, 2},  // 10 ppc -> need 2x
		{200, 12, 85, 6},    // 2.35 ppc -> need 6x
		{1000, 10, 1000, 10},
	}

	for _, tc := range tests {
		got, err := Factor(tc.sr, tc.ppc, tc.maxFreq)
		if err != nil {
			t.Fatalf("Factor(%v, %v, %v) error = %v", tc.sr, tc.ppc, tc.maxFreq, err)
		}
		if got != tc.want {
			t.Errorf("Factor(%v, %v, %v) = %d, want %d", tc.sr, tc.ppc, tc.maxFreq, got, tc.want)
		}
	}

	if _, err := Factor(0, 12, 50); err == nil {
		t.Error("expected error for zero sample rate")
	}
}

func TestNonePassThrough(t *testing.T) {
	sig := sineMatrix(15, 200, 400)

	out, sr, err := None().Apply(sig, 200, 12, 85)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if sr != 200 || len(out[0]) != 400 {
		t.Fatalf("none changed signal: sr=%v len=%d", sr, len(out[0]))
	}
}

func TestUpsamplersMeetPPC(t *testing.T) {
	const (
		inSR    = 200.0
		ppc     = 12.0
		maxFreq = 85.0
	)

	for _, m := range []Method{FFT(), Lanczos(), Linear()} {
		t.Run(m.Name(), func(t *testing.T) {
			sig := sineMatrix(15, inSR, 400)

			out, sr, err := m.Apply(sig, inSR, ppc, maxFreq)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}

			if sr/maxFreq < ppc {
				t.Fatalf("ppc after %s = %v, want >= %v", m.Name(), sr/maxFreq, ppc)
			}

			if len(out) != 1 || len(out[0]) <= len(sig[0]) {
				t.Fatalf("output not upsampled: %d rows, %d samples", len(out), len(out[0]))
			}
		})
	}
}

func TestFFTPreservesSine(t *testing.T) {
	// Fourier resampling of a band-limited signal is exact away from the
	// truncated endpoints.
	const (
		inSR = 200.0
		freq = 15.0
	)

	sig := sineMatrix(freq, inSR, 400)

	out, sr, err := FFT().Apply(sig, inSR, 12, 85)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	factor := int(sr / inSR)
	for i := 50 * factor; i < len(out[0])-50*factor; i++ {
		want := math.Sin(2 * math.Pi * freq * float64(i) / sr)
		if math.Abs(out[0][i]-want) > 0.02 {
			t.Fatalf("index %d: got %v, want %v", i, out[0][i], want)
		}
	}
}

func TestFFTPreservesInputSamples(t *testing.T) {
	// 400 samples is not a transform size; the power-of-two plan padding
	// must not disturb the values at the original sample points.
	sig := sineMatrix(15, 200, 400)

	out, sr, err := FFT().Apply(sig, 200, 12, 85)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	factor := int(sr / 200)
	if factor&(factor-1) != 0 {
		t.Fatalf("upsampling factor = %d, want a power of two", factor)
	}

	if len(out[0]) != factor*len(sig[0]) {
		t.Fatalf("output length = %d, want %d", len(out[0]), factor*len(sig[0]))
	}

	for i, v := range sig[0] {
		if got := out[0][i*factor]; math.Abs(got-v) > 1e-9 {
			t.Fatalf("input sample %d not preserved: got %v, want %v", i, got, v)
		}
	}
}

func TestLanczosInterpolatesExactSamples(t *testing.T) {
	sig := sineMatrix(15, 200, 400)

	out, sr, err := Lanczos().Apply(sig, 200, 12, 85)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	factor := int(sr / 200)
	for i, v := range sig[0] {
		if got := out[0][i*factor]; got != v {
			t.Fatalf("input sample %d not preserved: got %v, want %v", i, got, v)
		}
	}
}

func TestLinearPreservesBreakpoints(t *testing.T) {
	sig := [][]float64{{0, 1, 0, -1, 0}}

	out, sr, err := Linear().Apply(sig, 10, 12, 5)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	factor := int(sr / 10)
	for i, v := range sig[0] {
		if out[0][i*factor] != v {
			t.Fatalf("breakpoint %d: got %v, want %v", i, out[0][i*factor], v)
		}
	}

	// Midpoints are averages of their neighbors for factor 2+.
	if factor >= 2 {
		mid := out[0][factor/2]
		if factor%2 == 0 && math.Abs(mid-0.5) > 1e-12 {
			t.Fatalf("midpoint = %v, want 0.5", mid)
		}
	}
}

func TestPrefilterKeepsRate(t *testing.T) {
	sig := sineMatrix(15, 200, 400)

	out, sr, err := Prefilter().Apply(sig, 200, 12, 85)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if sr != 200 {
		t.Fatalf("prefilter changed sample rate to %v", sr)
	}

	if len(out[0]) != len(sig[0]) {
		t.Fatalf("prefilter changed length to %d", len(out[0]))
	}
}

func TestFuncAdapter(t *testing.T) {
	called := false
	m := Func(func(sig [][]float64, sr, ppc, maxFreq float64) ([][]float64, float64, error) {
		called = true
		return sig, sr * 2, nil
	})

	if m.Name() != "custom" {
		t.Fatalf("Name() = %q", m.Name())
	}

	_, sr, err := m.Apply(sineMatrix(15, 200, 10), 200, 12, 85)
	if err != nil || !called || sr != 400 {
		t.Fatalf("adapter not dispatched: sr=%v err=%v", sr, err)
	}
}
