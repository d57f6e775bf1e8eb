package flipkernels

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/gogpu/naga"
)

var wgslTemplate = template.Must(template.New("wgsl").Parse(
	`// Generated by flipkernels {{.Version}}. Do not edit.
// ppd = {{.C.Density.PPD}}, edge width = {{.C.EdgeWidth}} degrees

const FLIP_PPD: i32 = {{.C.Density.PPD}};
const FLIP_RADIUS_SY: i32 = {{.C.CSF.Sy.Radius}};
const FLIP_RADIUS_SX: i32 = {{.C.CSF.Sx.Radius}};
const FLIP_RADIUS_SZ: i32 = {{.C.CSF.RadiusSz}};
const FLIP_RADIUS_FEATURE: i32 = {{.C.Feature.Radius}};
{{range .Arrays}}
const {{.Name}} = array<f32, {{.Len}}>({{.Values}});{{end}}
`))

// wgslEntryTemplate closes the constant block with a compute entry point
// that reads every array, giving the compiler a complete module.
var wgslEntryTemplate = template.Must(template.New("wgsl-entry").Parse(`
@group(0) @binding(0) var<storage, read_write> flip_taps: array<f32, {{len .}}>;

@compute @workgroup_size(1)
fn flip_kernel_taps() {
{{- range $i, $a := .}}
    flip_taps[{{$i}}] = {{$a.Name}}[{{$a.Last}}];
{{- end}}
}
`))

// WriteWGSL writes the half-kernels as a WGSL constant block, ready to be
// prepended to a WGSL compute shader.
func WriteWGSL(w io.Writer, c *Constants) error {
	return wgslTemplate.Execute(w, shaderData(c))
}

// CompileWGSL compiles the WGSL constant block, closed by a minimal compute
// entry point, and returns the SPIR-V words. It fails when the emitted
// block is not valid WGSL.
func CompileWGSL(c *Constants) ([]uint32, error) {
	var src strings.Builder
	if err := WriteWGSL(&src, c); err != nil {
		return nil, err
	}
	if err := wgslEntryTemplate.Execute(&src, shaderData(c).Arrays); err != nil {
		return nil, err
	}

	spirvBytes, err := naga.Compile(src.String())
	if err != nil {
		return nil, fmt.Errorf("flipkernels: compile wgsl: %w", err)
	}

	// SPIR-V is a stream of little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	Logger().Debug("wgsl compiled", "words", len(words))
	return words, nil
}
