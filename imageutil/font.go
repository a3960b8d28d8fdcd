package imageutil

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/xshoji/go-doc-diff/config"
)

// Typeface はタイトルやサマリーの描画に使う書体
// font.Face は並行利用できないため、描画のたびに Face で新しく生成する
type Typeface struct {
	font *opentype.Font // nil の場合は basicfont を使う
	name string
}

// LoadTypeface は FontSource から書体を読み込む
// Custom の読み込みに失敗した場合は組み込みの Go Regular、
// それも使えない場合は basicfont にフォールバックするため失敗しない
func LoadTypeface(src config.FontSource) *Typeface {
	if src.Kind == config.FontCustom {
		f, err := loadFontFile(src.Path)
		if err == nil {
			return &Typeface{font: f, name: src.Path}
		}
		log.WithError(err).WithField("font", src.Path).Warn("Failed to load custom font, falling back to built-in font")
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.WithError(err).Warn("Failed to parse built-in font, falling back to basic font")
		return FallbackTypeface()
	}
	return &Typeface{font: f, name: "goregular"}
}

// FallbackTypeface は外部データに依存しない固定ビットマップ書体を返す
func FallbackTypeface() *Typeface {
	return &Typeface{name: "basicfont"}
}

// Name は書体の識別名を返す
func (t *Typeface) Name() string {
	return t.name
}

// Face は指定サイズ（ポイント, 72dpi）のフェイスを返す
func (t *Typeface) Face(size float64) font.Face {
	if t == nil || t.font == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(t.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.WithError(err).WithField("font", t.name).Warn("Failed to create font face, using basic font")
		return basicfont.Face7x13
	}
	return face
}

// loadFontFile は TTF/OTF ファイルを読み込む
func loadFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font file: %w", err)
	}
	return f, nil
}
