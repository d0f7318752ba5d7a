package srs

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-shock/internal/testutil"
)

func TestMapDimensions(t *testing.T) {
	sig := testutil.Sine(20, 1, 100, 100) // 1 second
	freq := []float64{5, 10, 20}

	mp, times, err := Map(0.25, 0.5, sig, 100, freq, 10, 0.02)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}

	// ns = 25, step = 13: slices at 0, 13, ..., 65.
	const wantSlices = 6

	if len(mp) != len(freq) {
		t.Fatalf("map rows = %d, want %d", len(mp), len(freq))
	}
	for i := range mp {
		if len(mp[i]) != wantSlices {
			t.Fatalf("row %d columns = %d, want %d", i, len(mp[i]), wantSlices)
		}
	}
	if len(times) != wantSlices {
		t.Fatalf("times = %d, want %d", len(times), wantSlices)
	}

	for s := 1; s < len(times); s++ {
		if times[s] <= times[s-1] {
			t.Fatalf("times not increasing: %v", times)
		}
	}
}

// A steady sine mapped at its own frequency gives near-constant
// equivalent-sine levels close to the input amplitude across interior
// slices.
func TestMapSteadySine(t *testing.T) {
	const (
		fn = 10.0
		sr = 1000.0
	)

	sig := testutil.Sine(fn, 1, sr, 8000)

	mp, _, err := Map(2, 0.5, sig, sr, []float64{fn}, 25, 0)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}

	for _, v := range mp[0] {
		testutil.RequireNear(t, v, 1, 0.15)
	}
}

func TestMapValidation(t *testing.T) {
	sig := testutil.Sine(10, 1, 100, 50)

	if _, _, err := Map(10, 0.5, sig, 100, []float64{10}, 10, 0); !errors.Is(err, ErrSliceLength) {
		t.Fatalf("long slice error = %v, want ErrSliceLength", err)
	}
	if _, _, err := Map(0.25, 1, sig, 100, []float64{10}, 10, 0); !errors.Is(err, ErrOverlap) {
		t.Fatalf("overlap error = %v, want ErrOverlap", err)
	}
	if _, _, err := Map(0.25, 0.5, sig, 0, []float64{10}, 10, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("rate error = %v, want ErrInvalidSampleRate", err)
	}
}
