// Package rolloff provides the sample-rate strategies used to counter shock
// response spectrum roll-off when an oscillator frequency has too few points
// per cycle.
//
// Each [Method] either raises the sample rate until the points-per-cycle
// requirement holds (FFT, Lanczos, Linear) or compensates the expected
// attenuation in place without touching the sample rate (Prefilter, after
// Ahlin). A caller-supplied [Func] plugs into the same contract.
package rolloff
