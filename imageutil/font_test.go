package imageutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xshoji/go-doc-diff/config"
)

func TestLoadTypeface(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.ttf")
	if err := os.WriteFile(broken, []byte("not a font"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name string
		src  config.FontSource
	}{
		{"組み込みフォント", config.FontSource{Kind: config.FontDefault}},
		{"存在しないフォント", config.FontSource{Kind: config.FontCustom, Path: filepath.Join(dir, "missing.ttf")}},
		{"壊れたフォント", config.FontSource{Kind: config.FontCustom, Path: broken}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tf := LoadTypeface(test.src)
			if tf.Name() != "goregular" {
				t.Errorf("Name() = %q; expected fallback to goregular", tf.Name())
			}
			face := tf.Face(24)
			if face == nil {
				t.Fatalf("Face() returned nil")
			}
			if face.Metrics().Height <= 0 {
				t.Errorf("face should have a positive line height")
			}
		})
	}
}

func TestFallbackTypeface(t *testing.T) {
	if face := FallbackTypeface().Face(30); face == nil {
		t.Errorf("fallback face should not be nil")
	}
	var tf *Typeface
	if face := tf.Face(12); face == nil {
		t.Errorf("nil typeface should return the basic face")
	}
}
