// Package iir provides direct-form IIR filtering for arbitrary filter
// orders, zero-phase forward-backward filtering, and Butterworth high-pass
// design.
//
// The response engines use second-order sections from shock/sdof for the
// oscillator filters themselves; this package covers the pre-processing
// filters whose orders do not fit a single biquad (the 3rd-order high-pass
// and the fixed roll-off compensation filter).
package iir
