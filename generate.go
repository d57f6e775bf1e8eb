package flipkernels

import (
	"fmt"
	"math"
)

// Constants is the complete output of a generation run.
type Constants struct {
	Display DisplayGeometry
	Density SamplingDensity
	Table   CSFTable
	CSF     CSFKernels

	EdgeWidth float64
	Feature   FeatureKernel
}

// Generate runs every stage of the derivation and returns the constants.
//
// With no options it reproduces the published FLIP constants: a 67
// pixels-per-degree density, CSF radii 4, 4 and 10 and a feature radius of 9.
// An error is returned only for invalid options.
func Generate(opts ...Option) (*Constants, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.table.Validate(); err != nil {
		return nil, err
	}
	if err := validateEdgeWidth(o.edgeWidth); err != nil {
		return nil, err
	}

	var density SamplingDensity
	if o.ppd > 0 {
		density = DensityFromPPD(o.ppd)
	} else {
		if err := o.display.Validate(); err != nil {
			return nil, err
		}
		density = NewSamplingDensity(o.display)
	}

	// The edge width alone can pass yet underflow or overflow once scaled.
	stdDev := FeatureStdDev(o.edgeWidth, density.PPD)
	if !(stdDev > 0) || math.IsInf(stdDev, 0) {
		return nil, fmt.Errorf("%w: %v degrees at %d ppd", ErrInvalidEdgeWidth, o.edgeWidth, density.PPD)
	}

	log := Logger()
	log.Debug("sampling density",
		"ppd_x", density.PPDX,
		"ppd_y", density.PPDY,
		"ppd", density.PPD,
		"spacing", density.Spacing,
	)

	c := &Constants{
		Display:   o.display,
		Density:   density,
		Table:     o.table,
		CSF:       GenerateCSFKernels(o.table, density),
		EdgeWidth: o.edgeWidth,
		Feature:   GenerateFeatureKernel(stdDev),
	}

	log.Info("constants generated",
		"ppd", density.PPD,
		"radius_sy", c.CSF.Sy.Radius,
		"radius_sx", c.CSF.Sx.Radius,
		"radius_sz", c.CSF.RadiusSz(),
		"radius_feature", c.Feature.Radius,
	)
	return c, nil
}
