// Package filter provides helpers for symmetric half-kernels.
//
// A half-kernel stores the center tap at index 0 followed by the taps at
// offsets 1..r. The helpers here rebuild the two-sided kernel and compute
// the mirrored sums used as normalization denominators.
package filter
