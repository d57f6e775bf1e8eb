package flipkernels

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSpread is returned when a CSF Gaussian has a non-positive spread.
var ErrInvalidSpread = errors.New("flipkernels: CSF spread must be positive")

// CSFParam holds the shape of one CSF Gaussian
//
//	g(x) = a * sqrt(pi/b) * exp(-pi^2/b * x^2)
//
// with x in degrees of visual angle.
type CSFParam struct {
	// Amplitude is a. Kernels normalized to unit sum ignore it.
	Amplitude float64

	// Spread is b. It must be strictly positive.
	Spread float64
}

// MustCSFParam returns a CSFParam and panics if spread is not positive.
// Use it for parameter tables fixed at build time.
func MustCSFParam(amplitude, spread float64) CSFParam {
	p := CSFParam{Amplitude: amplitude, Spread: spread}
	if err := p.Validate(); err != nil {
		panic(err)
	}
	return p
}

// Validate returns ErrInvalidSpread if the spread is not positive.
func (p CSFParam) Validate() error {
	if !(p.Spread > 0) || math.IsInf(p.Spread, 0) {
		return fmt.Errorf("%w: b=%v", ErrInvalidSpread, p.Spread)
	}
	return nil
}

// Sigma returns the standard deviation of the Gaussian in degrees.
func (p CSFParam) Sigma() float64 {
	return math.Sqrt(p.Spread / (2 * math.Pi * math.Pi))
}

// CSFTable is the set of Gaussians approximating the three FLIP CSFs.
// The blue-yellow CSF is the sum of two Gaussians, Sz1 and Sz2.
type CSFTable struct {
	Sy  CSFParam // luminance
	Sx  CSFParam // red-green
	Sz1 CSFParam // blue-yellow, wide component
	Sz2 CSFParam // blue-yellow, narrow component
}

// DefaultCSFTable returns the parameters published with FLIP.
// Sy and Sx are normalized to unit sum, so their amplitude is 1.
func DefaultCSFTable() CSFTable {
	return CSFTable{
		Sy:  MustCSFParam(1, 0.0047),
		Sx:  MustCSFParam(1, 0.0053),
		Sz1: MustCSFParam(34.1, 0.04),
		Sz2: MustCSFParam(13.5, 0.025),
	}
}

// Validate checks every entry of the table.
func (t CSFTable) Validate() error {
	for _, e := range []struct {
		name string
		p    CSFParam
	}{
		{"Sy", t.Sy},
		{"Sx", t.Sx},
		{"Sz1", t.Sz1},
		{"Sz2", t.Sz2},
	} {
		if err := e.p.Validate(); err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
	}
	return nil
}
