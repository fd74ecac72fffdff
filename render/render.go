// Package render draws a spectrum and its deconvolution result (assigned
// ion markers per component) with gonum/plot, and assembles
// a PDF report from the resulting figures with gofpdf, the way webserver.go
// builds plot.Plot/plotter/vgimg figures for InMAP's vertical-profile and
// legend handlers. Both are external-collaborator seams: the engine's own
// packages never import this one.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/spelveris/lcms-go/deconv"
)

// SpectrumFigure renders the raw spectrum trace and, for each component,
// the ions assigned to it marked on the trace; picked peaks that no
// component claims are not marked. It returns a PNG-encoded image.
func SpectrumFigure(spec deconv.Spectrum, components []deconv.Component, width, height vg.Length) ([]byte, error) {
	p, err := plot.New()
	if err != nil {
		return nil, fmt.Errorf("render: creating plot: %w", err)
	}
	p.Title.Text = "Spectrum and assigned charge-state envelopes"
	p.X.Label.Text = "m/z"
	p.Y.Label.Text = "Intensity"

	trace := make(plotter.XYs, len(spec.MZ))
	for i := range spec.MZ {
		trace[i].X = spec.MZ[i]
		trace[i].Y = spec.Intensity[i]
	}
	line, err := plotter.NewLine(trace)
	if err != nil {
		return nil, fmt.Errorf("render: building spectrum line: %w", err)
	}
	p.Add(line)
	p.Legend.Add("spectrum", line)

	for i, c := range components {
		if len(c.IonMZs) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(c.IonMZs))
		for j, mz := range c.IonMZs {
			pts[j].X = mz
			pts[j].Y = c.IonIntensities[j]
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("render: building component %d markers: %w", i, err)
		}
		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("mass %.1f", c.Mass), scatter)
	}

	c := vgimg.New(width, height)
	dc := draw.New(c)
	p.Draw(dc)

	var buf bytes.Buffer
	if _, err := vgimg.PngCanvas{Canvas: c}.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render: encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportPDF assembles a PDF report: a spectrum/envelope figure page
// followed by a summary table of the deconvolution result's components.
func ReportPDF(spec deconv.Spectrum, components []deconv.Component) ([]byte, error) {
	const figWidth, figHeight = 6.5 * vg.Inch, 4 * vg.Inch
	png, err := SpectrumFigure(spec, components, figWidth, figHeight)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Deconvolution report")
	pdf.Ln(14)

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("spectrum", imgOpts, bytes.NewReader(png))
	pdf.ImageOptions("spectrum", 10, 20, 270, 0, false, imgOpts, 0, "")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 10, "Components")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 10)
	headers := []string{"Mass", "Mass StdDev", "Charges", "Intensity", "Peaks", "R2"}
	widths := []float64{40, 40, 40, 40, 25, 25}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, c := range components {
		pdf.CellFormat(widths[0], 8, fmt.Sprintf("%.4f", c.Mass), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 8, fmt.Sprintf("%.4f", c.MassStd), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[2], 8, fmt.Sprintf("%d", c.NumCharges), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[3], 8, fmt.Sprintf("%.1f", c.Intensity), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[4], 8, fmt.Sprintf("%d", c.PeaksFound), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[5], 8, fmt.Sprintf("%.3f", c.R2), "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
