package flipkernels

import (
	"fmt"
	"math"

	"github.com/gogpu/flipkernels/internal/filter"
)

// FilterKernel is a symmetric half-kernel.
//
// Weights[0] is the center tap and Weights[i], i in [1, Radius], is the tap
// at offset i samples. The full kernel is
// Weights[Radius]..Weights[1], Weights[0], Weights[1]..Weights[Radius].
type FilterKernel struct {
	Weights []float64
	Radius  int
}

// ReconstructedSum returns the sum of the full two-sided kernel.
func (k FilterKernel) ReconstructedSum() float64 {
	return filter.MirroredSum(k.Weights)
}

// Full returns the two-sided kernel, 2*Radius+1 taps.
func (k FilterKernel) Full() []float64 {
	return filter.Expand(k.Weights)
}

// scale multiplies every weight by factor. Only the generators call it,
// before the kernel is handed out.
func (k FilterKernel) scale(factor float64) {
	filter.Scale(k.Weights, factor)
}

// FilterRadius returns the half-width in samples that truncates a CSF
// Gaussian of spread b at three standard deviations, for a density of ppd
// pixels per degree.
func FilterRadius(spread float64, ppd int) int {
	sigma := math.Sqrt(spread / 2 / (math.Pi * math.Pi))
	return int(math.Ceil(sigma * 3 * float64(ppd)))
}

// WeightMode selects how FilterWeights evaluates the Gaussian.
type WeightMode int

const (
	// WeightsDirect samples a * sqrt(pi/b) * exp(-pi^2/b * x^2).
	WeightsDirect WeightMode = iota

	// WeightsSquareRoot samples sqrt(a * sqrt(pi/b)) * exp(-pi^2/b * x^2).
	// Components combined in quadrature use this mode.
	WeightsSquareRoot
)

// String returns the mode name.
func (m WeightMode) String() string {
	switch m {
	case WeightsDirect:
		return "direct"
	case WeightsSquareRoot:
		return "sqrt"
	default:
		return "unknown"
	}
}

// FilterWeights samples a CSF Gaussian at x = i*spacing for i = 0..radius.
// The radius is FilterRadius(p.Spread, d.PPD) unless radiusOverride is
// positive, in which case radiusOverride is used as is.
//
// The returned kernel is not normalized. FilterWeights panics on a mode
// other than WeightsDirect and WeightsSquareRoot.
func FilterWeights(p CSFParam, d SamplingDensity, mode WeightMode, radiusOverride int) FilterKernel {
	r := radiusOverride
	if r <= 0 {
		r = FilterRadius(p.Spread, d.PPD)
	}

	amplitude := p.Amplitude * math.Sqrt(math.Pi/p.Spread)
	switch mode {
	case WeightsDirect:
	case WeightsSquareRoot:
		amplitude = math.Sqrt(amplitude)
	default:
		panic(fmt.Sprintf("flipkernels: unknown weight mode %d", int(mode)))
	}
	falloff := -math.Pi * math.Pi / p.Spread

	weights := make([]float64, r+1)
	for i := range weights {
		x := d.Spacing * float64(i)
		weights[i] = amplitude * math.Exp(falloff*(x*x))
	}
	return FilterKernel{Weights: weights, Radius: r}
}

// CSFKernels holds the normalized CSF half-kernels and the quantities
// used to normalize them.
type CSFKernels struct {
	Sy  FilterKernel
	Sx  FilterKernel
	Sz1 FilterKernel
	Sz2 FilterKernel

	// SumSz1 and SumSz2 are the reconstructed sums of the blue-yellow
	// components before scaling.
	SumSz1 float64
	SumSz2 float64

	// NormSy, NormSx and NormSz are the scale factors applied to the
	// kernels. NormSz is shared by both blue-yellow components.
	NormSy float64
	NormSx float64
	NormSz float64
}

// RadiusSz returns the radius shared by both blue-yellow components, the
// radius of the wider of the two Gaussians.
func (c CSFKernels) RadiusSz() int {
	return c.Sz1.Radius
}

// GenerateCSFKernels derives and normalizes the three CSF kernels.
//
// Sy and Sx are scaled so their full kernels sum to 1. The two blue-yellow
// components are sampled in square-root mode on the radius of the wider
// one, then both are scaled by 1/sqrt(sum1^2 + sum2^2) so that their
// combined energy is 1.
func GenerateCSFKernels(t CSFTable, d SamplingDensity) CSFKernels {
	sy := FilterWeights(t.Sy, d, WeightsDirect, 0)
	sx := FilterWeights(t.Sx, d, WeightsDirect, 0)
	rz := max(FilterRadius(t.Sz1.Spread, d.PPD), FilterRadius(t.Sz2.Spread, d.PPD))
	sz1 := FilterWeights(t.Sz1, d, WeightsSquareRoot, rz)
	sz2 := FilterWeights(t.Sz2, d, WeightsSquareRoot, rz)

	c := CSFKernels{
		NormSy: 1 / sy.ReconstructedSum(),
		NormSx: 1 / sx.ReconstructedSum(),
		SumSz1: sz1.ReconstructedSum(),
		SumSz2: sz2.ReconstructedSum(),
	}
	c.NormSz = 1 / math.Sqrt(c.SumSz1*c.SumSz1+c.SumSz2*c.SumSz2)

	Logger().Debug("csf kernels",
		"radius_sy", sy.Radius,
		"radius_sx", sx.Radius,
		"radius_sz", rz,
		"sum_sz1", c.SumSz1,
		"sum_sz2", c.SumSz2,
	)

	sy.scale(c.NormSy)
	sx.scale(c.NormSx)
	sz1.scale(c.NormSz)
	sz2.scale(c.NormSz)

	c.Sy, c.Sx, c.Sz1, c.Sz2 = sy, sx, sz1, sz2
	return c
}
