package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadImage(t *testing.T) {
	tempDir := t.TempDir()
	img := createTestImageWithPattern(16, 8, white, squarePattern(2, 2, 4))

	for _, name := range []string{"out.png", "out.jpg", "out.jpeg"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tempDir, name)
			if err := SaveImage(img, path, 90); err != nil {
				t.Fatalf("SaveImage() error = %v", err)
			}
			loaded, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage() error = %v", err)
			}
			if loaded.Bounds() != img.Bounds() {
				t.Errorf("bounds = %v; expected %v", loaded.Bounds(), img.Bounds())
			}
		})
	}
}

func TestLoadImageErrors(t *testing.T) {
	tempDir := t.TempDir()

	corrupt := filepath.Join(tempDir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name     string
		filePath string
	}{
		{"異常系: 存在しないファイル", filepath.Join(tempDir, "non_existent.png")},
		{"異常系: サポートされていない形式", filepath.Join(tempDir, "test.txt")},
		{"異常系: 壊れた画像", corrupt},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := LoadImage(test.filePath); err == nil {
				t.Errorf("LoadImage(%s) expected error", test.filePath)
			}
		})
	}
}

func TestSaveImageErrors(t *testing.T) {
	img := createTestImageWithPattern(4, 4, white, nil)
	tempDir := t.TempDir()

	if err := SaveImage(img, filepath.Join(tempDir, "out.gif"), 90); err == nil {
		t.Errorf("expected error for unsupported output format")
	}
	if err := SaveImage(img, filepath.Join(tempDir, "missing", "out.png"), 90); err == nil {
		t.Errorf("expected error for missing directory")
	}
}

func TestIsImageFile(t *testing.T) {
	tests := map[string]bool{
		"a.png":  true,
		"b.JPG":  true,
		"c.tiff": true,
		"d.webp": true,
		"e.pdf":  false,
		"f":      false,
	}
	for name, want := range tests {
		if got := IsImageFile(name); got != want {
			t.Errorf("IsImageFile(%q) = %v; expected %v", name, got, want)
		}
	}
}

func TestEncodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	img.SetGray(1, 1, color.Gray{Y: 200})
	if err := EncodeJPEG(&buf, img, 80); err != nil {
		t.Fatalf("EncodeJPEG() error = %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(buf.Bytes())); err == nil {
		t.Errorf("output should be JPEG, not PNG")
	}
	if _, format, err := image.Decode(bytes.NewReader(buf.Bytes())); err != nil || format != "jpeg" {
		t.Errorf("image.Decode() format = %q, err = %v", format, err)
	}
}
