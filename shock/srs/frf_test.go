package srs

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-shock/internal/testutil"
)

// The spectrum peak of an FRF relates to the peak FRF magnitude by
// sqrt(Q^2+1), provided the grid contains the peak frequency.
func TestFromFRFPeakRelation(t *testing.T) {
	mags := []float64{1, 1, 1, 1, 1.2, 1.4, 2.6, 1, 0.7, 0.8, 1}

	frf := make([]complex128, len(mags))
	frfFreq := make([]float64, len(mags))
	for i, m := range mags {
		frf[i] = complex(m, 0)
		frfFreq[i] = 0.5*float64(i) + 1
	}

	srsFreq := make([]float64, 79)
	for i := range srsFreq {
		srsFreq[i] = 0.1 * float64(i+1)
	}

	const q = 20.0

	shk, err := FromFRF(frf, frfFreq, srsFreq, q)
	if err != nil {
		t.Fatalf("FromFRF() error = %v", err)
	}

	peak := 0.0
	for _, v := range shk {
		if v > peak {
			peak = v
		}
	}

	want := 2.6 * math.Sqrt(q*q+1)
	testutil.RequireNear(t, peak, want, 1e-9)
}

func TestFromFRFComplexMagnitude(t *testing.T) {
	frfFreq := []float64{1, 2, 3, 4, 5}
	srsFreq := []float64{1, 2, 3, 4, 5}

	re := make([]complex128, len(frfFreq))
	rot := make([]complex128, len(frfFreq))
	for i := range frfFreq {
		m := 1 + 0.2*float64(i)
		re[i] = complex(m, 0)
		// same magnitude, rotated into the complex plane
		rot[i] = complex(m*math.Cos(0.7), m*math.Sin(0.7))
	}

	a, err := FromFRF(re, frfFreq, srsFreq, 10)
	if err != nil {
		t.Fatalf("FromFRF() error = %v", err)
	}

	b, err := FromFRF(rot, frfFreq, srsFreq, 10)
	if err != nil {
		t.Fatalf("FromFRF(rotated) error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, a, b, 1e-12)
}

func TestFromFRFRigidBody(t *testing.T) {
	frf := []complex128{1, 1, 1}
	frfFreq := []float64{1, 2, 3}

	// Below the rigid-body stiffness threshold the absolute response
	// tracks the base exactly, so the relative spectrum vanishes.
	shk, err := FromFRF(frf, frfFreq, []float64{0.005}, 20)
	if err != nil {
		t.Fatalf("FromFRF() error = %v", err)
	}

	testutil.RequireNear(t, shk[0], 0, 1e-12)
}

func TestFromFRFMatrixColumns(t *testing.T) {
	frfFreq := []float64{1, 2, 3, 4}
	srsFreq := []float64{1.5, 2.5, 3.5}

	col0 := []complex128{1, 2, 1, 0.5}
	col1 := []complex128{0.3, 0.3, 0.9, 0.1}

	frf := make([][]complex128, len(frfFreq))
	for i := range frf {
		frf[i] = []complex128{col0[i], col1[i]}
	}

	shk, err := FromFRFMatrix(frf, frfFreq, srsFreq, 10)
	if err != nil {
		t.Fatalf("FromFRFMatrix() error = %v", err)
	}

	one, err := FromFRF(col1, frfFreq, srsFreq, 10)
	if err != nil {
		t.Fatalf("FromFRF() error = %v", err)
	}

	for i := range srsFreq {
		testutil.RequireNear(t, shk[i][1], one[i], 0)
	}
}

func TestFromFRFValidation(t *testing.T) {
	frf := []complex128{1, 1}

	if _, err := FromFRF(frf, []float64{1}, []float64{1}, 10); !errors.Is(err, ErrFRFShape) {
		t.Fatalf("shape error = %v, want ErrFRFShape", err)
	}
	if _, err := FromFRF(frf, []float64{1, 2}, []float64{1}, 0.5); !errors.Is(err, ErrInvalidQ) {
		t.Fatalf("Q error = %v, want ErrInvalidQ", err)
	}
}
