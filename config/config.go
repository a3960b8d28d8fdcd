package config

import (
	"fmt"
	"image/color"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v2"

	"github.com/xshoji/go-doc-diff/utils"
)

// 比較モード
const (
	ModeVisual     = "visual"
	ModeStructural = "structural"
)

// FontKind はタイトル描画に使うフォントの取得元
type FontKind int

const (
	FontDefault FontKind = iota // 組み込みフォント
	FontCustom                  // 指定パスの TTF/OTF
)

// FontSource はフォントの取得元を表す
// Custom の読み込みに失敗した場合は組み込みフォントにフォールバックする
type FontSource struct {
	Kind FontKind
	Path string
}

// AppConfig はドキュメント差分比較のための設定を保持する構造体
type AppConfig struct {
	// 比較モード (visual / structural)
	Mode string `yaml:"mode"`

	// 差分検出の設定
	Threshold      int  `yaml:"threshold"`       // 差分とみなす輝度差の閾値 (1-255)
	CollapseNested bool `yaml:"collapse_nested"` // 他の領域に内包される領域を除外するか

	// ラスタライズの設定
	DPI float64 `yaml:"dpi"`

	// 並列処理のための設定
	NumCPU int `yaml:"workers"`

	// 描画の設定
	Highlight       string     `yaml:"highlight"` // 枠の色 (#rrggbb)
	HighlightColor  color.RGBA `yaml:"-"`         // Highlight を解析した結果
	BorderThickness int        `yaml:"border_thickness"`
	HeaderHeight    int        `yaml:"header_height"`
	TitleFontSize   float64    `yaml:"title_font_size"`
	BodyFontSize    float64    `yaml:"body_font_size"`
	FontPath        string     `yaml:"font"` // 空なら組み込みフォント

	// レポートの設定
	JPEGQuality   int      `yaml:"jpeg_quality"`
	ReportFormats []string `yaml:"report_formats"` // structural モードの出力形式
}

// NewDefaultConfig はデフォルト設定を持つ新しいAppConfigを返す
func NewDefaultConfig() *AppConfig {
	return &AppConfig{
		Mode:            ModeVisual,
		Threshold:       30,
		CollapseNested:  false,
		DPI:             200,
		NumCPU:          runtime.NumCPU(),
		Highlight:       "#ff0000",
		HighlightColor:  color.RGBA{255, 0, 0, 255},
		BorderThickness: 2,
		HeaderHeight:    40,
		TitleFontSize:   30,
		BodyFontSize:    24,
		FontPath:        "",
		JPEGQuality:     90,
		ReportFormats:   []string{"json", "md", "tex"},
	}
}

// LoadFile はYAMLファイルの値をデフォルト設定に上書きして返す
func LoadFile(path string) (*AppConfig, error) {
	cfg := NewDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv は DOCDIFF_* 環境変数の値を設定に反映する
func (c *AppConfig) ApplyEnv() {
	c.Mode = utils.GetEnvOrDefault("DOCDIFF_MODE", c.Mode)
	c.Threshold = utils.GetEnvIntOrDefault("DOCDIFF_THRESHOLD", c.Threshold)
	c.NumCPU = utils.GetEnvIntOrDefault("DOCDIFF_WORKERS", c.NumCPU)
	c.FontPath = utils.GetEnvOrDefault("DOCDIFF_FONT", c.FontPath)
	c.Highlight = utils.GetEnvOrDefault("DOCDIFF_HIGHLIGHT", c.Highlight)

	if v := utils.GetEnvOrDefault("DOCDIFF_DPI", ""); v != "" {
		if dpi, err := strconv.ParseFloat(v, 64); err == nil {
			c.DPI = dpi
		}
	}
}

// Validate は値を許容範囲に収め、色指定を解析する
func (c *AppConfig) Validate() error {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode != ModeVisual && c.Mode != ModeStructural {
		return fmt.Errorf("unknown mode %q (want %s or %s)", c.Mode, ModeVisual, ModeStructural)
	}

	c.Threshold = utils.Clamp(c.Threshold, 1, 255)
	c.NumCPU = utils.Max(1, c.NumCPU)
	c.BorderThickness = utils.Max(1, c.BorderThickness)
	c.HeaderHeight = utils.Max(0, c.HeaderHeight)
	c.JPEGQuality = utils.Clamp(c.JPEGQuality, 1, 100)

	if c.DPI <= 0 {
		c.DPI = 200
	}
	if c.TitleFontSize <= 0 {
		c.TitleFontSize = 30
	}
	if c.BodyFontSize <= 0 {
		c.BodyFontSize = 24
	}

	hl, err := ParseColor(c.Highlight)
	if err != nil {
		return err
	}
	c.HighlightColor = hl

	return nil
}

// Font はフォント設定を FontSource として返す
func (c *AppConfig) Font() FontSource {
	if c.FontPath == "" {
		return FontSource{Kind: FontDefault}
	}
	return FontSource{Kind: FontCustom, Path: c.FontPath}
}

// ParseColor は #rrggbb 形式の色指定を解析する
func ParseColor(hex string) (color.RGBA, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid highlight color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}
