package flipkernels

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// WeightDigits is the number of fractional digits printed for kernel weights.
const WeightDigits = 8

// formatWeights prints weights with WeightDigits fractional digits,
// separated by ", ".
func formatWeights(weights []float64) string {
	parts := make([]string, len(weights))
	for i, v := range weights {
		if v == 0 {
			v = 0 // no "-0.00000000"
		}
		parts[i] = strconv.FormatFloat(v, 'f', WeightDigits, 64)
	}
	return strings.Join(parts, ", ")
}

// decimal formats a scalar with every significant digit and no grouping
// separators. Report lines are comma separated.
func decimal(v any) number.Formatter {
	return number.Decimal(v, number.NoSeparator(), number.MaxFractionDigits(-1))
}

// WriteReport writes the diagnostic text report, one derived quantity per
// line: densities, spacing, radii, normalization sums and factors, the CSF
// tables, the feature spread and radius, then the feature tables.
func WriteReport(w io.Writer, c *Constants) error {
	p := message.NewPrinter(language.English)
	ew := &errWriter{w: w}

	ew.printf(p, "Pixels per degree (x): %v\n", decimal(c.Density.PPDX))
	ew.printf(p, "Pixels per degree (y): %v\n", decimal(c.Density.PPDY))
	ew.printf(p, "Pixels per degree: %v\n", decimal(c.Density.PPD))
	ew.printf(p, "Spacing between two samples: %v\n", decimal(c.Density.Spacing))
	ew.printf(p, "Filter radii (r_Sy, r_Sx, r_Sz): %v, %v, %v\n",
		decimal(c.CSF.Sy.Radius), decimal(c.CSF.Sx.Radius), decimal(c.CSF.RadiusSz()))
	ew.printf(p, "Sz sums: %v, %v\n", decimal(c.CSF.SumSz1), decimal(c.CSF.SumSz2))
	ew.printf(p, "Norm factors: %v, %v, %v\n",
		decimal(c.CSF.NormSy), decimal(c.CSF.NormSx), decimal(c.CSF.NormSz))

	ew.printf(p, "Sy: %s\n", formatWeights(c.CSF.Sy.Weights))
	ew.printf(p, "Sx: %s\n", formatWeights(c.CSF.Sx.Weights))
	ew.printf(p, "Sz: %s\n", formatWeights(c.CSF.Sz1.Weights))
	ew.printf(p, "Sz: %s\n", formatWeights(c.CSF.Sz2.Weights))

	f := c.Feature
	ew.printf(p, "Feature std dev: %v\n", decimal(f.StdDev))
	ew.printf(p, "Feature kernel radius: %v\n", decimal(f.Radius))
	ew.printf(p, "Feature sums: %v, %v, %v:%v\n",
		decimal(f.SumSmooth), decimal(f.SumGradient), decimal(f.SumPositive), decimal(f.SumNegative))
	ew.printf(p, "%s\n", formatWeights(f.Smooth))
	ew.printf(p, "%s\n", formatWeights(f.Gradient))
	ew.printf(p, "%s\n", formatWeights(f.Laplacian))

	return ew.err
}

// errWriter keeps the first write error and turns later writes into no-ops.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(p *message.Printer, format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = p.Fprintf(ew.w, format, args...)
}

// jsonKernel is the JSON form of a half-kernel.
type jsonKernel struct {
	Radius  int       `json:"radius"`
	Weights []float64 `json:"weights"`
}

// jsonReport is the JSON form of Constants.
type jsonReport struct {
	Version string  `json:"version"`
	PPDX    float64 `json:"ppd_x"`
	PPDY    float64 `json:"ppd_y"`
	PPD     int     `json:"ppd"`
	Spacing float64 `json:"spacing"`

	CSF struct {
		Sy     jsonKernel `json:"sy"`
		Sx     jsonKernel `json:"sx"`
		Sz1    jsonKernel `json:"sz1"`
		Sz2    jsonKernel `json:"sz2"`
		SumSz1 float64    `json:"sum_sz1"`
		SumSz2 float64    `json:"sum_sz2"`
		NormSy float64    `json:"norm_sy"`
		NormSx float64    `json:"norm_sx"`
		NormSz float64    `json:"norm_sz"`
	} `json:"csf"`

	Feature struct {
		EdgeWidth float64   `json:"edge_width"`
		StdDev    float64   `json:"std_dev"`
		Radius    int       `json:"radius"`
		Smooth    []float64 `json:"smooth"`
		Gradient  []float64 `json:"gradient"`
		Laplacian []float64 `json:"laplacian"`
	} `json:"feature"`
}

// WriteJSON writes the constants as indented JSON.
func WriteJSON(w io.Writer, c *Constants) error {
	var r jsonReport
	r.Version = Version
	r.PPDX = c.Density.PPDX
	r.PPDY = c.Density.PPDY
	r.PPD = c.Density.PPD
	r.Spacing = c.Density.Spacing

	r.CSF.Sy = jsonKernel{Radius: c.CSF.Sy.Radius, Weights: c.CSF.Sy.Weights}
	r.CSF.Sx = jsonKernel{Radius: c.CSF.Sx.Radius, Weights: c.CSF.Sx.Weights}
	r.CSF.Sz1 = jsonKernel{Radius: c.CSF.Sz1.Radius, Weights: c.CSF.Sz1.Weights}
	r.CSF.Sz2 = jsonKernel{Radius: c.CSF.Sz2.Radius, Weights: c.CSF.Sz2.Weights}
	r.CSF.SumSz1 = c.CSF.SumSz1
	r.CSF.SumSz2 = c.CSF.SumSz2
	r.CSF.NormSy = c.CSF.NormSy
	r.CSF.NormSx = c.CSF.NormSx
	r.CSF.NormSz = c.CSF.NormSz

	r.Feature.EdgeWidth = c.EdgeWidth
	r.Feature.StdDev = c.Feature.StdDev
	r.Feature.Radius = c.Feature.Radius
	r.Feature.Smooth = c.Feature.Smooth
	r.Feature.Gradient = c.Feature.Gradient
	r.Feature.Laplacian = c.Feature.Laplacian

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&r)
}

var shaderTemplate = template.Must(template.New("hlsl").Parse(
	`// Generated by flipkernels {{.Version}}. Do not edit.
// ppd = {{.C.Density.PPD}}, edge width = {{.C.EdgeWidth}} degrees

#define FLIP_PPD {{.C.Density.PPD}}
#define FLIP_RADIUS_SY {{.C.CSF.Sy.Radius}}
#define FLIP_RADIUS_SX {{.C.CSF.Sx.Radius}}
#define FLIP_RADIUS_SZ {{.C.CSF.RadiusSz}}
#define FLIP_RADIUS_FEATURE {{.C.Feature.Radius}}
{{range .Arrays}}
static const float {{.Name}}[{{.Len}}] = { {{.Values}} };{{end}}
`))

type shaderArray struct {
	Name   string
	Len    int
	Values string
}

// Last returns the index of the outermost tap.
func (a shaderArray) Last() int {
	return a.Len - 1
}

type shaderParams struct {
	Version string
	C       *Constants
	Arrays  []shaderArray
}

// shaderData lists the half-kernels in the order both shader emitters
// declare them.
func shaderData(c *Constants) shaderParams {
	return shaderParams{
		Version: Version,
		C:       c,
		Arrays: []shaderArray{
			newShaderArray("FLIP_SY", c.CSF.Sy.Weights),
			newShaderArray("FLIP_SX", c.CSF.Sx.Weights),
			newShaderArray("FLIP_SZ1", c.CSF.Sz1.Weights),
			newShaderArray("FLIP_SZ2", c.CSF.Sz2.Weights),
			newShaderArray("FLIP_FEATURE_0", c.Feature.Smooth),
			newShaderArray("FLIP_FEATURE_1", c.Feature.Gradient),
			newShaderArray("FLIP_FEATURE_2", c.Feature.Laplacian),
		},
	}
}

// WriteShader writes the half-kernels as an HLSL constant block, the form
// in which the FLIP compute shaders embed them.
func WriteShader(w io.Writer, c *Constants) error {
	return shaderTemplate.Execute(w, shaderData(c))
}

// newShaderArray formats weights as f32 literals, valid in both HLSL and
// WGSL.
func newShaderArray(name string, weights []float64) shaderArray {
	return shaderArray{
		Name:   name,
		Len:    len(weights),
		Values: strings.ReplaceAll(formatWeights(weights), ", ", "f, ") + "f",
	}
}
