// Package srs computes shock response spectra: the peak responses of a bank
// of single-degree-of-freedom oscillators excited through their base by an
// acceleration signal.
//
// Each oscillator frequency is filtered independently through the
// ramp-invariant coefficients from shock/sdof, so the per-frequency work
// fans out across workers without any cross-talk; result slot j always
// belongs to frequency j regardless of completion order, and serial and
// parallel runs produce bit-identical spectra.
//
// Beyond time-domain spectra, the package derives spectra directly from
// frequency response functions ([FromFRF]) and builds waterfall maps over
// sliding time slices ([Map]).
package srs
