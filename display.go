package flipkernels

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry is returned when a display axis has a non-positive
// length, resolution or viewing distance.
var ErrInvalidGeometry = errors.New("flipkernels: invalid display geometry")

// AxisGeometry describes one axis of a display as seen by the observer.
type AxisGeometry struct {
	// Length is the physical extent of the axis in meters.
	Length float64

	// Resolution is the number of pixels along the axis.
	Resolution int

	// Distance is the viewing distance in meters.
	Distance float64
}

// DisplayGeometry pairs the horizontal and vertical axes of a display.
type DisplayGeometry struct {
	Horizontal AxisGeometry
	Vertical   AxisGeometry
}

// ReferenceDisplay is a 32" 4K monitor (0.709 m x 0.399 m, 3840x2160)
// viewed from 0.70 m.
var ReferenceDisplay = DisplayGeometry{
	Horizontal: AxisGeometry{Length: 0.709, Resolution: 3840, Distance: 0.70},
	Vertical:   AxisGeometry{Length: 0.399, Resolution: 2160, Distance: 0.70},
}

// Validate reports whether every axis of the display is usable.
func (d DisplayGeometry) Validate() error {
	if err := d.Horizontal.validate(); err != nil {
		return fmt.Errorf("horizontal axis: %w", err)
	}
	if err := d.Vertical.validate(); err != nil {
		return fmt.Errorf("vertical axis: %w", err)
	}
	return nil
}

func (a AxisGeometry) validate() error {
	if !(a.Length > 0) || a.Resolution <= 0 || !(a.Distance > 0) {
		return fmt.Errorf("%w: length=%v resolution=%d distance=%v",
			ErrInvalidGeometry, a.Length, a.Resolution, a.Distance)
	}
	return nil
}

// PixelsPerDegree returns the number of pixels subtended by one degree of
// visual angle along the axis. It uses the small-angle approximation
// tan(x) = x.
func PixelsPerDegree(a AxisGeometry) float64 {
	return a.Distance * float64(a.Resolution) / a.Length * math.Pi / 180
}

// SamplingDensity is the angular sampling density shared by every kernel.
type SamplingDensity struct {
	// PPDX and PPDY are the per-axis densities before rounding.
	PPDX float64
	PPDY float64

	// PPD is the mean of PPDX and PPDY rounded up.
	PPD int

	// Spacing is the distance between two samples in degrees (1/PPD).
	Spacing float64
}

// NewSamplingDensity derives the sampling density of a display.
// The geometry is assumed valid; see [DisplayGeometry.Validate].
func NewSamplingDensity(d DisplayGeometry) SamplingDensity {
	x := PixelsPerDegree(d.Horizontal)
	y := PixelsPerDegree(d.Vertical)
	s := DensityFromPPD(int(math.Ceil((x + y) / 2)))
	s.PPDX = x
	s.PPDY = y
	return s
}

// DensityFromPPD builds a sampling density from an integral pixels-per-degree
// value, skipping the display geometry entirely. PPDX and PPDY are set to ppd.
func DensityFromPPD(ppd int) SamplingDensity {
	return SamplingDensity{
		PPDX:    float64(ppd),
		PPDY:    float64(ppd),
		PPD:     ppd,
		Spacing: 1 / float64(ppd),
	}
}
