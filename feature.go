package flipkernels

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/flipkernels/internal/filter"
)

// EdgeWidthDegrees is the peak-to-trough width of the edge detection filter
// of the human visual system, in degrees. From "Estimates of edge detection
// filters in human vision" (McIlhagga, 2018).
const EdgeWidthDegrees = 0.082

// ErrInvalidEdgeWidth is returned when the edge width is not positive.
var ErrInvalidEdgeWidth = errors.New("flipkernels: edge width must be positive")

// FeatureStdDev returns the standard deviation in pixels of the feature
// Gaussian for an edge width in degrees at ppd pixels per degree.
func FeatureStdDev(edgeWidth float64, ppd int) float64 {
	return 0.5 * edgeWidth * float64(ppd)
}

// FeatureRadius truncates a Gaussian of the given standard deviation in
// pixels at three standard deviations.
func FeatureRadius(stdDev float64) int {
	return int(math.Ceil(stdDev * 3))
}

// FeatureKernel holds the three co-located half-kernels of the edge and
// point detectors: a Gaussian and its first and second derivatives.
//
// Smooth and Laplacian are even; Gradient is odd, so its full kernel is
// the negated mirror image on the left of the center.
type FeatureKernel struct {
	Smooth    []float64
	Gradient  []float64
	Laplacian []float64

	Radius int
	StdDev float64

	// Raw normalization totals, before scaling.
	SumSmooth   float64
	SumGradient float64
	SumPositive float64
	SumNegative float64
}

// SmoothKernel returns the 0th derivative as a FilterKernel.
func (f FeatureKernel) SmoothKernel() FilterKernel {
	return FilterKernel{Weights: f.Smooth, Radius: f.Radius}
}

// FullGradient returns the two-sided first derivative kernel.
func (f FeatureKernel) FullGradient() []float64 {
	return filter.ExpandOdd(f.Gradient)
}

// FullLaplacian returns the two-sided second derivative kernel.
func (f FeatureKernel) FullLaplacian() []float64 {
	return filter.Expand(f.Laplacian)
}

// LobeSums returns the full-kernel totals of the positive and negative
// second derivative taps, as magnitudes.
func (f FeatureKernel) LobeSums() (pos, neg float64) {
	return lobeSums(f.Laplacian)
}

// lobeSums accumulates positive and negative taps separately, then mirrors
// each total across the origin. The center tap is counted once, in the
// lobe matching its sign; every other tap is counted twice.
func lobeSums(w []float64) (pos, neg float64) {
	for _, v := range w {
		if v > 0 {
			pos += v
		} else {
			neg -= v
		}
	}
	if len(w) == 0 {
		return pos, neg
	}
	c := w[0]
	if c > 0 {
		pos = 2*(pos-c) + c
		neg *= 2
	} else {
		pos *= 2
		neg = 2*(neg+c) - c
	}
	return pos, neg
}

// GenerateFeatureKernel derives the feature half-kernels for a Gaussian of
// the given standard deviation in pixels.
//
// Normalization:
//   - Smooth: the full kernel sums to 1.
//   - Gradient: the stored taps have unit absolute sum.
//   - Laplacian: the positive and negative lobes of the full kernel each
//     have unit magnitude.
//
// GenerateFeatureKernel panics if stdDev is not a positive finite number.
// Generate validates the edge width before calling it.
func GenerateFeatureKernel(stdDev float64) FeatureKernel {
	if !(stdDev > 0) || math.IsInf(stdDev, 0) {
		panic(fmt.Sprintf("flipkernels: feature std dev must be positive, got %v", stdDev))
	}
	r := FeatureRadius(stdDev)
	b := 0.5 / stdDev / stdDev

	f := FeatureKernel{
		Smooth:    make([]float64, r+1),
		Gradient:  make([]float64, r+1),
		Laplacian: make([]float64, r+1),
		Radius:    r,
		StdDev:    stdDev,
	}

	for i := 0; i <= r; i++ {
		x := float64(i)
		g := math.Exp(-x * x * b)
		f.Smooth[i] = g
		f.Gradient[i] = -x * g
		f.Laplacian[i] = (x*x*b*2 - 1) * g
	}

	f.SumSmooth = filter.MirroredSum(f.Smooth)
	// The gradient is odd: the absolute one-sided sum already accounts
	// for both halves.
	f.SumGradient = filter.AbsSum(f.Gradient)
	f.SumPositive, f.SumNegative = lobeSums(f.Laplacian)

	Logger().Debug("feature kernel",
		"std_dev", stdDev,
		"radius", r,
		"sum", f.SumSmooth,
		"sum_dx", f.SumGradient,
		"sum_ddx_pos", f.SumPositive,
		"sum_ddx_neg", f.SumNegative,
		"center_ddx", f.Laplacian[0],
	)

	filter.Scale(f.Smooth, 1/f.SumSmooth)
	filter.Scale(f.Gradient, 1/f.SumGradient)
	for i, v := range f.Laplacian {
		if v > 0 {
			f.Laplacian[i] = v / f.SumPositive
		} else {
			f.Laplacian[i] = v / f.SumNegative
		}
	}
	return f
}

func validateEdgeWidth(w float64) error {
	if !(w > 0) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidEdgeWidth, w)
	}
	return nil
}
