package report

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// PairExporter writes a single-page PDF stacking the technical chart
// above the performance comparison, on the gallery's letter landscape.
type PairExporter struct {
	Margin float64
	Gutter float64
}

// NewPairExporter returns the default layout.
func NewPairExporter() *PairExporter {
	return &PairExporter{Margin: 0.4 * 72, Gutter: 0.25 * 72}
}

// Export writes the paired report from in-memory PNGs.
func (e *PairExporter) Export(techPNG, perfPNG []byte, outputPath, title, subtitle string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	pdf := fpdf.New("L", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	headerH := 0.0
	if title != "" || subtitle != "" {
		headerH = 0.6 * 72
	}
	if title != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Text(e.Margin, e.Margin+12, title)
	}
	if subtitle != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(e.Margin, e.Margin+28, subtitle)
	}

	cellW := pageW - 2*e.Margin
	cellH := (pageH - 2*e.Margin - headerH - e.Gutter) / 2

	top := e.Margin + headerH
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(e.Margin, top+11, "Technical")
	placeImageBytes(pdf, "technical", techPNG, e.Margin, top+16, cellW, cellH-16)

	bottom := top + cellH + e.Gutter
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(e.Margin, bottom+11, "Performance")
	placeImageBytes(pdf, "performance", perfPNG, e.Margin, bottom+16, cellW, cellH-16)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("write report pdf: %w", err)
	}
	return nil
}

// placeImageBytes draws an in-memory PNG centered inside the given box,
// preserving its aspect ratio. Decode failures degrade to a text note.
func placeImageBytes(pdf *fpdf.Fpdf, name string, png []byte, x, y, w, h float64) {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	if pdf.Err() || info == nil {
		pdf.ClearError()
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(x, y+h/2, "Failed to render "+name+" chart")
		return
	}
	iw, ih := info.Extent()
	scale := math.Min(w/iw, h/ih)
	dw, dh := iw*scale, ih*scale
	pdf.ImageOptions(name, x+(w-dw)/2, y+(h-dh)/2, dw, dh, false, opts, 0, "")
}
