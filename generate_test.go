package flipkernels

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateDefaults(t *testing.T) {
	c, err := Generate()
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}

	if c.Density.PPD != 67 {
		t.Errorf("PPD = %d, want 67", c.Density.PPD)
	}
	if c.CSF.Sy.Radius != 4 || c.CSF.Sx.Radius != 4 || c.CSF.RadiusSz() != 10 {
		t.Errorf("CSF radii = %d, %d, %d, want 4, 4, 10",
			c.CSF.Sy.Radius, c.CSF.Sx.Radius, c.CSF.RadiusSz())
	}
	if c.Feature.Radius != 9 {
		t.Errorf("feature radius = %d, want 9", c.Feature.Radius)
	}
	if c.EdgeWidth != EdgeWidthDegrees {
		t.Errorf("EdgeWidth = %v, want %v", c.EdgeWidth, EdgeWidthDegrees)
	}
	if c.Display != ReferenceDisplay {
		t.Errorf("Display = %+v, want ReferenceDisplay", c.Display)
	}
}

func TestGenerateWithDensity(t *testing.T) {
	c, err := Generate(WithDensity(40))
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}

	if c.Density.PPD != 40 {
		t.Errorf("PPD = %d, want 40", c.Density.PPD)
	}
	if want := FilterRadius(0.04, 40); c.CSF.RadiusSz() != want {
		t.Errorf("radius Sz = %d, want %d", c.CSF.RadiusSz(), want)
	}
	if want := FeatureRadius(FeatureStdDev(EdgeWidthDegrees, 40)); c.Feature.Radius != want {
		t.Errorf("feature radius = %d, want %d", c.Feature.Radius, want)
	}
}

func TestGenerateWithDisplay(t *testing.T) {
	// A 1080p panel of the same size, viewed from the same distance.
	d := ReferenceDisplay
	d.Horizontal.Resolution = 1920
	d.Vertical.Resolution = 1080

	c, err := Generate(WithDisplay(d))
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	if c.Density.PPD != 34 {
		t.Errorf("PPD = %d, want 34", c.Density.PPD)
	}
}

func TestGenerateWithEdgeWidth(t *testing.T) {
	c, err := Generate(WithEdgeWidth(0.164))
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	if c.Feature.Radius != FeatureRadius(FeatureStdDev(0.164, 67)) {
		t.Errorf("feature radius = %d", c.Feature.Radius)
	}
}

func TestGenerateInvalidOptions(t *testing.T) {
	badTable := DefaultCSFTable()
	badTable.Sy.Spread = -1

	badDisplay := ReferenceDisplay
	badDisplay.Vertical.Distance = 0

	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"spread", []Option{WithCSFTable(badTable)}, ErrInvalidSpread},
		{"edge width", []Option{WithEdgeWidth(0)}, ErrInvalidEdgeWidth},
		{"edge width underflow", []Option{WithEdgeWidth(5e-324)}, ErrInvalidEdgeWidth},
		{"edge width overflow", []Option{WithEdgeWidth(math.MaxFloat64)}, ErrInvalidEdgeWidth},
		{"display", []Option{WithDisplay(badDisplay)}, ErrInvalidGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Generate(tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("Generate() error = %v, want %v", err, tt.want)
			}
			if c != nil {
				t.Error("Generate() returned constants with an error")
			}
		})
	}
}

func TestGenerateDensityBypassesDisplay(t *testing.T) {
	badDisplay := ReferenceDisplay
	badDisplay.Horizontal.Length = 0

	if _, err := Generate(WithDisplay(badDisplay), WithDensity(67)); err != nil {
		t.Errorf("Generate() = %v, want nil with a fixed density", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate()
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.CSF.Sz2.Weights {
		if a.CSF.Sz2.Weights[i] != b.CSF.Sz2.Weights[i] {
			t.Errorf("Sz2[%d] differs: %v != %v", i, a.CSF.Sz2.Weights[i], b.CSF.Sz2.Weights[i])
		}
	}
	for i := range a.Feature.Laplacian {
		if a.Feature.Laplacian[i] != b.Feature.Laplacian[i] {
			t.Errorf("Laplacian[%d] differs: %v != %v", i, a.Feature.Laplacian[i], b.Feature.Laplacian[i])
		}
	}
}
