// Package fdepsd computes fatigue damage equivalent PSDs: the Gaussian
// random vibration levels that, over a chosen test duration, reproduce the
// fatigue damage a measured signal inflicts on a bank of
// single-degree-of-freedom oscillators.
//
// For every oscillator frequency the base signal is filtered to its
// response, rainflow cycle counting bins the response amplitudes, and the
// damage indicators sum amp^b over the bins for fatigue exponents b of 4,
// 8 and 12. Inverting the closed-form damage of a stationary Gaussian
// response of the same duration yields the equivalent PSD for each
// exponent, alongside the peak-based G1 and count-slope-based G2 levels.
package fdepsd
