package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// GalleryExporter lays chart PNGs out as a paged grid, four to a
// landscape letter page by default.
type GalleryExporter struct {
	Cols   int
	Rows   int
	Margin float64 // page margin in points
	Gutter float64 // spacing between cells in points
}

// NewGalleryExporter returns the default 2x2 layout.
func NewGalleryExporter() *GalleryExporter {
	return &GalleryExporter{Cols: 2, Rows: 2, Margin: 0.4 * 72, Gutter: 0.25 * 72}
}

// Export writes a multi-page gallery PDF with a filename caption above
// each chart. An unreadable image is replaced with a note in its cell
// rather than sinking the whole gallery.
func (e *GalleryExporter) Export(imagePaths []string, outputPath, title, subtitle string) error {
	if len(imagePaths) == 0 {
		return fmt.Errorf("no images to export")
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create gallery dir: %w", err)
		}
	}

	pdf := fpdf.New("L", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pageW, pageH := pdf.GetPageSize()

	headerH := 0.0
	if title != "" || subtitle != "" {
		headerH = 0.5 * 72
	}
	usableW := pageW - 2*e.Margin
	usableH := pageH - 2*e.Margin - headerH
	cellW := (usableW - float64(e.Cols-1)*e.Gutter) / float64(e.Cols)
	cellH := (usableH - float64(e.Rows-1)*e.Gutter) / float64(e.Rows)
	perPage := e.Cols * e.Rows
	gridTop := e.Margin + headerH

	for pageStart := 0; pageStart < len(imagePaths); pageStart += perPage {
		pdf.AddPage()
		if title != "" {
			pdf.SetFont("Helvetica", "B", 14)
			pdf.Text(e.Margin, e.Margin+12, title)
		}
		if subtitle != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.Text(e.Margin, e.Margin+28, subtitle)
		}

		end := pageStart + perPage
		if end > len(imagePaths) {
			end = len(imagePaths)
		}
		for idx, imgPath := range imagePaths[pageStart:end] {
			col := idx % e.Cols
			row := idx / e.Cols
			x0 := e.Margin + float64(col)*(cellW+e.Gutter)
			yTop := gridTop + float64(row)*(cellH+e.Gutter)

			pdf.SetFont("Helvetica", "", 9)
			pdf.Text(x0, yTop+9, filepath.Base(imgPath))
			placeImageFile(pdf, imgPath, x0, yTop+14, cellW, cellH-14)
		}
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("write gallery pdf: %w", err)
	}
	return nil
}

// placeImageFile draws a PNG file centered inside the given box,
// preserving its aspect ratio. Load failures degrade to a text note.
func placeImageFile(pdf *fpdf.Fpdf, path string, x, y, w, h float64) {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := pdf.RegisterImageOptions(path, opts)
	if pdf.Err() || info == nil {
		pdf.ClearError()
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(x, y+h/2, "Failed to load: "+filepath.Base(path))
		return
	}
	iw, ih := info.Extent()
	scale := math.Min(w/iw, h/ih)
	dw, dh := iw*scale, ih*scale
	pdf.ImageOptions(path, x+(w-dw)/2, y+(h-dh)/2, dw, dh, false, opts, 0, "")
}
