// Package cyclecount implements turning-point extraction and rainflow cycle
// counting for fatigue analysis of response histories.
//
// The counting follows the three-point ASTM E1049 rainflow method: closed
// cycles interior to the history count as full cycles, the unpaired
// excursions at the ends count as half cycles. Amplitudes are half the
// peak-to-peak range of each cycle.
package cyclecount
