// Package sdof provides ramp-invariant digital filter coefficients for
// single-degree-of-freedom base-excitation oscillators.
//
// Each [ResponseType] maps the continuous SDOF transfer function to a
// second-order recursive filter via the ramp-invariant z-transform, which
// assumes the base acceleration is piecewise linear between samples. The
// resulting [Coefficients] drive a Direct Form II Transposed section and are
// exact for ramp inputs (ISO 18431-4; Smallwood's recursive formulation).
//
// Coefficient design is pure and stateless: one set per (response type,
// amplification factor, sample interval, natural frequency) combination.
// The wn == 0 limits are special-cased so no branch divides by zero.
package sdof
