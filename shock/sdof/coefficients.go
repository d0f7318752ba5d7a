package sdof

import (
	"fmt"
	"math"
)

// Coefficients holds one second-order recursive filter:
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
//
// a0 is normalized to 1 and not stored. The sign convention matches Direct
// Form II Transposed processing (see [Section]).
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// ctx holds the sub-expressions shared by every ramp-invariant formula
// branch: damping ratio, damped frequency and the sampled exponential
// envelope terms.
type ctx struct {
	zeta float64 // 1/(2Q)
	sqz  float64 // sqrt(1 - zeta^2)
	wd   float64 // damped natural frequency
	e    float64 // exp(-zeta*wn*dT)
	e2   float64 // e^2
	b    float64 // dT*wd
	c    float64 // e*cos(b)
	s    float64 // e*sin(b)
}

func newCtx(q, dT, wn float64) ctx {
	zeta := 1 / (2 * q)
	sqz := math.Sqrt(1 - zeta*zeta)
	wd := wn * sqz
	e := math.Exp(-zeta * wn * dT)
	b := dT * wd

	return ctx{
		zeta: zeta,
		sqz:  sqz,
		wd:   wd,
		e:    e,
		e2:   e * e,
		b:    b,
		c:    e * math.Cos(b),
		s:    e * math.Sin(b),
	}
}

// denominator returns the feedback pair shared by all wn > 0 branches
// (and the wn == 0 limits of all but the relative-velocity filter).
func (x ctx) denominator() (a1, a2 float64) {
	return -2 * x.c, x.e2
}

// absAcceleration returns the ramp-invariant filter recovering absolute
// acceleration. At wn == 0 there is no relative motion and the numerator is
// identically zero.
func absAcceleration(q, dT, wn float64) Coefficients {
	x := newCtx(q, dT, wn)
	a1, a2 := x.denominator()

	if wn == 0 {
		return Coefficients{A1: a1, A2: a2}
	}

	sb := x.s / x.b

	return Coefficients{
		B0: 1 - sb,
		B1: 2 * (sb - x.c),
		B2: x.e2 - sb,
		A1: a1,
		A2: a2,
	}
}

// relAcceleration returns the ramp-invariant filter recovering relative
// acceleration.
func relAcceleration(q, dT, wn float64) Coefficients {
	x := newCtx(q, dT, wn)
	a1, a2 := x.denominator()

	scale := 1.0
	if wn != 0 {
		scale = x.s / x.b
	}

	return Coefficients{
		B0: -scale,
		B1: 2 * scale,
		B2: -scale,
		A1: a1,
		A2: a2,
	}
}

// relDisplacement returns the ramp-invariant filter recovering relative
// displacement. The wn == 0 limit follows from the z-transform of the double
// integrator driven by a piecewise-linear input.
func relDisplacement(q, dT, wn float64) Coefficients {
	x := newCtx(q, dT, wn)
	a1, a2 := x.denominator()

	if wn == 0 {
		k := dT * dT / 6

		return Coefficients{
			B0: -k,
			B1: -4 * k,
			B2: -k,
			A1: a1,
			A2: a2,
		}
	}

	b0, b1, b2 := x.dispNumerator(q, dT, wn, dT*wn*wn*wn)

	return Coefficients{B0: b0, B1: b1, B2: b2, A1: a1, A2: a2}
}

// pseudoVelocity returns the ramp-invariant filter recovering relative
// displacement scaled by omega.
func pseudoVelocity(q, dT, wn float64) Coefficients {
	x := newCtx(q, dT, wn)
	a1, a2 := x.denominator()

	if wn == 0 {
		return Coefficients{A1: a1, A2: a2}
	}

	b0, b1, b2 := x.dispNumerator(q, dT, wn, dT*wn*wn)

	return Coefficients{B0: b0, B1: b1, B2: b2, A1: a1, A2: a2}
}

// pseudoAcceleration returns the ramp-invariant filter recovering relative
// displacement scaled by omega^2.
func pseudoAcceleration(q, dT, wn float64) Coefficients {
	x := newCtx(q, dT, wn)
	a1, a2 := x.denominator()

	if wn == 0 {
		return Coefficients{A1: a1, A2: a2}
	}

	b0, b1, b2 := x.dispNumerator(q, dT, wn, dT*wn)

	return Coefficients{B0: b0, B1: b1, B2: b2, A1: a1, A2: a2}
}

// dispNumerator evaluates the shared displacement-family numerator with the
// response-specific normalization f (dT*wn^3, dT*wn^2 or dT*wn).
func (x ctx) dispNumerator(q, dT, wn, f float64) (b0, b1, b2 float64) {
	qq := (2*x.zeta*x.zeta - 1) / x.sqz
	b0 = ((1-x.c)/q - qq*x.s - wn*dT) / f
	b1 = (2*x.c*wn*dT - (1-x.e2)/q + 2*qq*x.s) / f
	b2 = (-x.e2*(wn*dT+1/q) + x.c/q - qq*x.s) / f

	return b0, b1, b2
}

// relVelocity returns the ramp-invariant filter recovering relative velocity.
// The wn == 0 limit degenerates to a first-order integrator; its second taps
// are zero.
func relVelocity(q, dT, wn float64) Coefficients {
	if wn == 0 {
		k := dT / 2

		return Coefficients{B0: -k, B1: -k, A1: -1}
	}

	x := newCtx(q, dT, wn)
	a1, a2 := x.denominator()
	sz := x.s * x.zeta / x.sqz
	f := dT * wn * wn

	return Coefficients{
		B0: (x.c + sz - 1) / f,
		B1: (1 - x.e2 - 2*sz) / f,
		B2: (x.e2 + sz - x.c) / f,
		A1: a1,
		A2: a2,
	}
}

// ForResponse returns the ramp-invariant filter for the given response type.
func ForResponse(rt ResponseType, q, dT, wn float64) (Coefficients, error) {
	switch rt {
	case AbsAcceleration:
		return absAcceleration(q, dT, wn), nil
	case RelAcceleration:
		return relAcceleration(q, dT, wn), nil
	case RelDisplacement:
		return relDisplacement(q, dT, wn), nil
	case RelVelocity:
		return relVelocity(q, dT, wn), nil
	case PseudoVelocity:
		return pseudoVelocity(q, dT, wn), nil
	case PseudoAcceleration:
		return pseudoAcceleration(q, dT, wn), nil
	default:
		return Coefficients{}, fmt.Errorf("sdof: unknown response type %d", int(rt))
	}
}
