package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// testPNG encodes a small solid-color PNG.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 90, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, testPNG(t), 0644); err != nil {
		t.Fatalf("write test png: %v", err)
	}
}

func requirePDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("%s does not start with the PDF signature", path)
	}
}

func TestGalleryExport(t *testing.T) {
	dir := t.TempDir()
	var images []string
	for _, name := range []string{"aapl.png", "msft.png", "nvda.png"} {
		p := filepath.Join(dir, name)
		writeTestPNG(t, p)
		images = append(images, p)
	}

	out := filepath.Join(dir, "out", "gallery.pdf")
	e := NewGalleryExporter()
	if err := e.Export(images, out, "Setup Gallery", "Run: 2026-03-06 | 3 charts"); err != nil {
		t.Fatalf("Export: %v", err)
	}
	requirePDF(t, out)
}

func TestGalleryExport_MultiplePages(t *testing.T) {
	dir := t.TempDir()
	var images []string
	for i := 0; i < 5; i++ {
		p := filepath.Join(dir, string(rune('a'+i))+".png")
		writeTestPNG(t, p)
		images = append(images, p)
	}

	out := filepath.Join(dir, "gallery.pdf")
	e := NewGalleryExporter()
	if err := e.Export(images, out, "Setup Gallery", ""); err != nil {
		t.Fatalf("Export: %v", err)
	}
	requirePDF(t, out)
}

func TestGalleryExport_MissingImage(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	writeTestPNG(t, good)
	images := []string{good, filepath.Join(dir, "does-not-exist.png")}

	out := filepath.Join(dir, "gallery.pdf")
	e := NewGalleryExporter()
	if err := e.Export(images, out, "Setup Gallery", ""); err != nil {
		t.Fatalf("a missing image should not fail the export: %v", err)
	}
	requirePDF(t, out)
}

func TestGalleryExport_NoImages(t *testing.T) {
	e := NewGalleryExporter()
	if err := e.Export(nil, filepath.Join(t.TempDir(), "gallery.pdf"), "", ""); err == nil {
		t.Error("expected error for an empty image list")
	}
}

func TestPairExport(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "2026", "03", "06", "AAPL", "report.pdf")

	e := NewPairExporter()
	err := e.Export(testPNG(t), testPNG(t), out, "AAPL Progress Report",
		"Run: 2026-03-06 | Signal: 2026-02-20 | Benchmark: SPY | AAPL +4.20% | SPY +1.10%")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	requirePDF(t, out)
}

func TestPairExport_BadImageBytes(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")
	e := NewPairExporter()
	if err := e.Export([]byte("not a png"), testPNG(t), out, "", ""); err != nil {
		t.Fatalf("a bad image should degrade to a note, not fail: %v", err)
	}
	requirePDF(t, out)
}
