// Package flipkernels derives the filter constants of the FLIP perceptual
// image-difference metric.
//
// # Overview
//
// FLIP approximates the human contrast sensitivity functions (CSFs) and the
// edge and point detectors of the visual system with separable
// Gaussian-family kernels. The weights of those kernels depend only on the
// assumed viewing conditions, so they are computed once, offline, and
// hard-coded by the filtering pipeline. This package performs that
// derivation.
//
// # Quick Start
//
//	import "github.com/gogpu/flipkernels"
//
//	c, err := flipkernels.Generate()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	flipkernels.WriteReport(os.Stdout, c)
//
// # Stages
//
// The derivation runs in a fixed order:
//   - Sampling density: display geometry to pixels per degree and sample spacing
//   - CSF parameter table: Gaussian amplitude and spread for Sy, Sx and Sz
//   - CSF kernels: normalized half-kernels and radii
//   - Feature kernels: 0th, 1st and 2nd derivative-of-Gaussian half-kernels
//   - Reporting: text, JSON, or an HLSL or WGSL constant block; the WGSL
//     block can be compiled to SPIR-V as a check
//
// # Half-kernels
//
// Every kernel is stored as its center tap followed by the taps at positive
// offsets. The full kernel is the mirror image of the stored taps around the
// center. Filters are applied as two 1D passes, so only one axis is stored.
package flipkernels

// Version information
const (
	// Version is the current version of the module
	Version = "0.1.0"
)
