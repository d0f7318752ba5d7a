// Package vrs computes vibration response spectra: the RMS acceleration
// response of single-degree-of-freedom oscillators excited through their
// base by an acceleration PSD.
//
// The base PSD is given as breakpoints and expanded onto an integration
// grid, either linearly or on log-log axes (the natural choice for
// constant dB/octave specifications). Each oscillator response is the
// transfer-function-weighted integral of the expanded PSD; Miles' equation
// provides the flat-spectrum closed form for comparison.
package vrs
