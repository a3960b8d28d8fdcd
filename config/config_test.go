package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Mode != ModeVisual {
		t.Errorf("Mode should be %q, but got %q", ModeVisual, cfg.Mode)
	}

	if cfg.Threshold != 30 {
		t.Errorf("Threshold should be 30, but got %d", cfg.Threshold)
	}

	if cfg.DPI != 200 {
		t.Errorf("DPI should be 200, but got %f", cfg.DPI)
	}

	if cfg.NumCPU < 1 {
		t.Errorf("NumCPU should be at least 1, but got %d", cfg.NumCPU)
	}

	if cfg.HighlightColor != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("HighlightColor should be red, but got %v", cfg.HighlightColor)
	}

	if cfg.BorderThickness != 2 {
		t.Errorf("BorderThickness should be 2, but got %d", cfg.BorderThickness)
	}

	if cfg.HeaderHeight != 40 {
		t.Errorf("HeaderHeight should be 40, but got %d", cfg.HeaderHeight)
	}

	if cfg.CollapseNested {
		t.Errorf("CollapseNested should be false, but got %v", cfg.CollapseNested)
	}

	if cfg.Font().Kind != FontDefault {
		t.Errorf("Font should be the default font, but got %+v", cfg.Font())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docdiff.yaml")
	content := "threshold: 45\ndpi: 150\nhighlight: \"#00ff00\"\nfont: /fonts/arial.ttf\nreport_formats: [md, html]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Threshold != 45 {
		t.Errorf("Threshold should be 45, but got %d", cfg.Threshold)
	}
	if cfg.DPI != 150 {
		t.Errorf("DPI should be 150, but got %f", cfg.DPI)
	}
	if cfg.HighlightColor != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("HighlightColor should be green, but got %v", cfg.HighlightColor)
	}
	if got := cfg.Font(); got.Kind != FontCustom || got.Path != "/fonts/arial.ttf" {
		t.Errorf("Font should be custom, but got %+v", got)
	}
	if len(cfg.ReportFormats) != 2 || cfg.ReportFormats[1] != "html" {
		t.Errorf("ReportFormats should be [md html], but got %v", cfg.ReportFormats)
	}
	// ファイルに無い値はデフォルトのまま
	if cfg.HeaderHeight != 40 {
		t.Errorf("HeaderHeight should keep its default, but got %d", cfg.HeaderHeight)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("threshold: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DOCDIFF_THRESHOLD", "12")
	t.Setenv("DOCDIFF_DPI", "96")
	t.Setenv("DOCDIFF_HIGHLIGHT", "#0000ff")
	t.Setenv("DOCDIFF_MODE", "structural")

	cfg := NewDefaultConfig()
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Threshold != 12 {
		t.Errorf("Threshold should be 12, but got %d", cfg.Threshold)
	}
	if cfg.DPI != 96 {
		t.Errorf("DPI should be 96, but got %f", cfg.DPI)
	}
	if cfg.HighlightColor != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("HighlightColor should be blue, but got %v", cfg.HighlightColor)
	}
	if cfg.Mode != ModeStructural {
		t.Errorf("Mode should be structural, but got %q", cfg.Mode)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *AppConfig)
		check   func(t *testing.T, c *AppConfig)
		wantErr bool
	}{
		{
			name:   "threshold is clamped",
			modify: func(c *AppConfig) { c.Threshold = 400 },
			check: func(t *testing.T, c *AppConfig) {
				if c.Threshold != 255 {
					t.Errorf("Threshold should be clamped to 255, got %d", c.Threshold)
				}
			},
		},
		{
			name:   "non-positive values fall back",
			modify: func(c *AppConfig) { c.DPI = 0; c.NumCPU = 0; c.BorderThickness = -3 },
			check: func(t *testing.T, c *AppConfig) {
				if c.DPI != 200 || c.NumCPU != 1 || c.BorderThickness != 1 {
					t.Errorf("unexpected values: dpi=%f cpu=%d thickness=%d", c.DPI, c.NumCPU, c.BorderThickness)
				}
			},
		},
		{
			name:   "hex without hash",
			modify: func(c *AppConfig) { c.Highlight = "ff8000" },
			check: func(t *testing.T, c *AppConfig) {
				if c.HighlightColor != (color.RGBA{255, 128, 0, 255}) {
					t.Errorf("unexpected color %v", c.HighlightColor)
				}
			},
		},
		{
			name:    "invalid color",
			modify:  func(c *AppConfig) { c.Highlight = "#zzzzzz" },
			wantErr: true,
		},
		{
			name:    "unknown mode",
			modify:  func(c *AppConfig) { c.Mode = "ocr" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
