package flipkernels

// Option configures Generate.
//
// Example:
//
//	// Reference display, published parameters
//	c, err := flipkernels.Generate()
//
//	// Fixed density, as rounded in the FLIP paper
//	c, err := flipkernels.Generate(flipkernels.WithDensity(67))
type Option func(*options)

// options holds the inputs of a generation run.
type options struct {
	display   DisplayGeometry
	table     CSFTable
	edgeWidth float64

	// ppd, when positive, replaces the density derived from display.
	ppd int
}

// defaultOptions returns the reference viewing conditions.
func defaultOptions() options {
	return options{
		display:   ReferenceDisplay,
		table:     DefaultCSFTable(),
		edgeWidth: EdgeWidthDegrees,
	}
}

// WithDisplay sets the display geometry used to derive the sampling density.
func WithDisplay(d DisplayGeometry) Option {
	return func(o *options) {
		o.display = d
	}
}

// WithCSFTable replaces the CSF Gaussian parameters.
func WithCSFTable(t CSFTable) Option {
	return func(o *options) {
		o.table = t
	}
}

// WithEdgeWidth sets the peak-to-trough edge width in degrees used by the
// feature kernels.
func WithEdgeWidth(degrees float64) Option {
	return func(o *options) {
		o.edgeWidth = degrees
	}
}

// WithDensity fixes the pixels-per-degree value, bypassing the display
// geometry. Values <= 0 restore the derived density.
func WithDensity(ppd int) Option {
	return func(o *options) {
		o.ppd = ppd
	}
}
