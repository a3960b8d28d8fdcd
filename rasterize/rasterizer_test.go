package rasterize

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
}

func TestImageRasterizer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")
	writePNG(t, path, 30, 20)

	r := NewImageRasterizer()
	n, err := r.PageCount(path)
	if err != nil || n != 1 {
		t.Fatalf("PageCount() = %d, %v; expected 1", n, err)
	}

	img, err := r.RenderPage(path, 0, 200)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 20 {
		t.Errorf("bounds = %v; expected 30x20", img.Bounds())
	}

	if _, err := r.RenderPage(path, 1, 200); !errors.Is(err, ErrDocumentUnreadable) {
		t.Errorf("RenderPage(1) error = %v; expected ErrDocumentUnreadable", err)
	}
}

func TestImageRasterizerErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	r := NewImageRasterizer()
	for _, path := range []string{corrupt, filepath.Join(dir, "missing.png")} {
		if _, err := r.PageCount(path); !errors.Is(err, ErrDocumentUnreadable) {
			t.Errorf("PageCount(%s) error = %v; expected ErrDocumentUnreadable", filepath.Base(path), err)
		}
	}
}

type countingRasterizer struct {
	calls int
}

func (c *countingRasterizer) PageCount(string) (int, error) {
	c.calls++
	return 7, nil
}

func (c *countingRasterizer) RenderPage(string, int, float64) (image.Image, error) {
	c.calls++
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func TestDispatcher(t *testing.T) {
	images, docs := &countingRasterizer{}, &countingRasterizer{}
	d := &Dispatcher{Images: images, Documents: docs}

	if _, err := d.PageCount("scan.PNG"); err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if _, err := d.RenderPage("contract.pdf", 0, 72); err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	if images.calls != 1 || docs.calls != 1 {
		t.Errorf("images.calls = %d, docs.calls = %d; expected 1 each", images.calls, docs.calls)
	}
}

func TestIsDocumentFile(t *testing.T) {
	tests := map[string]bool{
		"a.pdf":   true,
		"b.PDF":   true,
		"c.epub":  true,
		"d.png":   true,
		"e.docx":  false,
		"f.json":  false,
		"no-ext":  false,
		"g.xps":   true,
		"h.jpeg":  true,
		"i.pdf.x": false,
	}
	for name, want := range tests {
		if got := IsDocumentFile(name); got != want {
			t.Errorf("IsDocumentFile(%q) = %v; expected %v", name, got, want)
		}
	}
}

func TestFitzRasterizerUnreadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.pdf")

	r := NewFitzRasterizer()
	if _, err := r.PageCount(path); !errors.Is(err, ErrDocumentUnreadable) {
		t.Errorf("PageCount() error = %v; expected ErrDocumentUnreadable", err)
	}
	if _, err := r.RenderPage(path, 0, 72); !errors.Is(err, ErrDocumentUnreadable) {
		t.Errorf("RenderPage() error = %v; expected ErrDocumentUnreadable", err)
	}
}
