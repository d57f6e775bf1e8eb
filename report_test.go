package flipkernels

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

func mustGenerate(t *testing.T) *Constants {
	t.Helper()
	c, err := Generate()
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	return c
}

func TestFormatWeights(t *testing.T) {
	got := formatWeights([]float64{0.5, -0.125, 0, 1.0 / 3})
	want := "0.50000000, -0.12500000, 0.00000000, 0.33333333"
	if got != want {
		t.Errorf("formatWeights = %q, want %q", got, want)
	}
}

func TestFormatWeightsNegativeZero(t *testing.T) {
	if got := formatWeights([]float64{math.Copysign(0, -1)}); got != "0.00000000" {
		t.Errorf("formatWeights(-0) = %q, want 0.00000000", got)
	}
}

func TestWriteReportOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, mustGenerate(t)); err != nil {
		t.Fatalf("WriteReport() = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	prefixes := []string{
		"Pixels per degree (x): ",
		"Pixels per degree (y): ",
		"Pixels per degree: 67",
		"Spacing between two samples: ",
		"Filter radii (r_Sy, r_Sx, r_Sz): 4, 4, 10",
		"Sz sums: ",
		"Norm factors: ",
		"Sy: ",
		"Sx: ",
		"Sz: ",
		"Sz: ",
		"Feature std dev: ",
		"Feature kernel radius: 9",
		"Feature sums: ",
		"",
		"0.00000000, -",
		"",
	}
	if len(lines) != len(prefixes) {
		t.Fatalf("report has %d lines, want %d:\n%s", len(lines), len(prefixes), buf.String())
	}
	for i, p := range prefixes {
		if !strings.HasPrefix(lines[i], p) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], p)
		}
	}
}

func TestWriteReportTables(t *testing.T) {
	c := mustGenerate(t)
	var buf bytes.Buffer
	if err := WriteReport(&buf, c); err != nil {
		t.Fatalf("WriteReport() = %v", err)
	}

	out := buf.String()
	for _, table := range [][]float64{c.CSF.Sy.Weights, c.CSF.Sz2.Weights, c.Feature.Laplacian} {
		if !strings.Contains(out, formatWeights(table)) {
			t.Errorf("report missing table %q", formatWeights(table))
		}
	}
}

func TestWriteReportHighDensityNoGrouping(t *testing.T) {
	c, err := Generate(WithDensity(1200))
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	var buf bytes.Buffer
	if err := WriteReport(&buf, c); err != nil {
		t.Fatalf("WriteReport() = %v", err)
	}

	grouped := regexp.MustCompile(`\d,\d`)
	for i, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if grouped.MatchString(line) {
			t.Errorf("line %d has a grouping separator: %q", i, line)
		}
	}

	out := buf.String()
	if !strings.Contains(out, "Pixels per degree: 1200\n") {
		t.Errorf("report missing ungrouped density:\n%s", out)
	}
	radii := "Filter radii (r_Sy, r_Sx, r_Sz): " + strconv.Itoa(c.CSF.Sy.Radius) + ", " +
		strconv.Itoa(c.CSF.Sx.Radius) + ", " + strconv.Itoa(c.CSF.RadiusSz()) + "\n"
	if !strings.Contains(out, radii) {
		t.Errorf("report missing %q", radii)
	}

	_, sums, _ := strings.Cut(out, "Sz sums: ")
	sums, _, _ = strings.Cut(sums, "\n")
	fields := strings.Split(sums, ", ")
	if len(fields) != 2 {
		t.Fatalf("Sz sums = %q, want two values", sums)
	}
	for i, want := range []float64{c.CSF.SumSz1, c.CSF.SumSz2} {
		got, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			t.Fatalf("Sz sum %d = %q: %v", i, fields[i], err)
		}
		if got != want {
			t.Errorf("Sz sum %d = %v, want %v", i, got, want)
		}
	}
}

type failingWriter struct{ n int }

var errWrite = errors.New("write failed")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errWrite
	}
	w.n--
	return len(p), nil
}

func TestWriteReportError(t *testing.T) {
	err := WriteReport(&failingWriter{n: 3}, mustGenerate(t))
	if !errors.Is(err, errWrite) {
		t.Errorf("WriteReport() = %v, want errWrite", err)
	}
}

func TestWriteJSON(t *testing.T) {
	c := mustGenerate(t)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, c); err != nil {
		t.Fatalf("WriteJSON() = %v", err)
	}

	var got jsonReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() = %v", err)
	}

	if got.PPD != 67 || got.Version != Version {
		t.Errorf("ppd = %d, version = %q", got.PPD, got.Version)
	}
	if got.CSF.Sz1.Radius != 10 || len(got.CSF.Sz2.Weights) != 11 {
		t.Errorf("sz1 radius = %d, len(sz2) = %d, want 10, 11",
			got.CSF.Sz1.Radius, len(got.CSF.Sz2.Weights))
	}
	if got.Feature.Radius != 9 || len(got.Feature.Laplacian) != 10 {
		t.Errorf("feature radius = %d, len(laplacian) = %d, want 9, 10",
			got.Feature.Radius, len(got.Feature.Laplacian))
	}
}

func TestWriteShader(t *testing.T) {
	c := mustGenerate(t)
	var buf bytes.Buffer
	if err := WriteShader(&buf, c); err != nil {
		t.Fatalf("WriteShader() = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"#define FLIP_PPD 67",
		"#define FLIP_RADIUS_SY 4",
		"#define FLIP_RADIUS_SX 4",
		"#define FLIP_RADIUS_SZ 10",
		"#define FLIP_RADIUS_FEATURE 9",
		"static const float FLIP_SY[5] = { ",
		"static const float FLIP_SZ2[11] = { ",
		"static const float FLIP_FEATURE_2[10] = { ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("shader output missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, ", ,") || strings.Contains(out, "ff") {
		t.Errorf("malformed array literal:\n%s", out)
	}
}
