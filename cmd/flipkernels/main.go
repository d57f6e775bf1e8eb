// Command flipkernels prints the FLIP filter constants.
//
// Usage:
//
//	flipkernels [-format text|json|hlsl|wgsl] [-check] [-ppd N] [-plot kernels.png] [-v]
//
// With -check, the WGSL block is compiled to SPIR-V before anything is
// written.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/flipkernels"
	"github.com/gogpu/flipkernels/internal/plot"
)

func main() {
	var (
		format    = flag.String("format", "text", "output format: text, json, hlsl or wgsl")
		check     = flag.Bool("check", false, "compile the WGSL constant block before writing")
		ppd       = flag.Int("ppd", 0, "fixed pixels per degree (0 derives it from the display)")
		edgeWidth = flag.Float64("edge-width", flipkernels.EdgeWidthDegrees, "HVS edge width in degrees")
		plotPath  = flag.String("plot", "", "write a PNG chart of the kernels to this file")
		verbose   = flag.Bool("v", false, "log every stage to stderr")
	)
	flag.Parse()

	if *verbose {
		flipkernels.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	c, err := flipkernels.Generate(
		flipkernels.WithDensity(*ppd),
		flipkernels.WithEdgeWidth(*edgeWidth),
	)
	if err != nil {
		log.Fatalf("Failed to generate constants: %v", err)
	}

	if *check {
		words, err := flipkernels.CompileWGSL(c)
		if err != nil {
			log.Fatalf("WGSL check failed: %v", err)
		}
		flipkernels.Logger().Info("wgsl check passed", "spirv_words", len(words))
	}

	if err := write(os.Stdout, *format, c); err != nil {
		log.Fatalf("Failed to write %s output: %v", *format, err)
	}

	if *plotPath != "" {
		if err := savePlot(*plotPath, c); err != nil {
			log.Fatalf("Failed to save plot: %v", err)
		}
		flipkernels.Logger().Info("plot saved", "path", *plotPath)
	}
}

func write(w io.Writer, format string, c *flipkernels.Constants) error {
	switch format {
	case "text":
		return flipkernels.WriteReport(w, c)
	case "json":
		return flipkernels.WriteJSON(w, c)
	case "hlsl":
		return flipkernels.WriteShader(w, c)
	case "wgsl":
		return flipkernels.WriteWGSL(w, c)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func savePlot(path string, c *flipkernels.Constants) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	opts := plot.DefaultOptions()
	opts.Title = fmt.Sprintf("FLIP kernels, %d ppd", c.Density.PPD)
	return plot.Render(f, kernelSeries(c), opts)
}

// kernelSeries returns every kernel as a full two-sided profile.
func kernelSeries(c *flipkernels.Constants) []plot.Series {
	return []plot.Series{
		{Name: "Sy", Values: c.CSF.Sy.Full()},
		{Name: "Sx", Values: c.CSF.Sx.Full()},
		{Name: "Sz1", Values: c.CSF.Sz1.Full()},
		{Name: "Sz2", Values: c.CSF.Sz2.Full()},
		{Name: "feature", Values: c.Feature.SmoothKernel().Full()},
		{Name: "feature dx", Values: c.Feature.FullGradient()},
		{Name: "feature ddx", Values: c.Feature.FullLaplacian()},
	}
}
