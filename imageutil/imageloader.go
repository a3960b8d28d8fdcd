package imageutil

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// 読み込み可能な画像の拡張子
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImageFile は拡張子から読み込み可能な画像かどうかを判定する
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// LoadImage 指定されたパスから画像を読み込む
func LoadImage(filePath string) (image.Image, error) {
	if !IsImageFile(filePath) {
		return nil, fmt.Errorf("unsupported image format: %s", filepath.Ext(filePath))
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return img, nil
}

// SaveImage 画像をファイルに保存する（拡張子で形式を決める）
func SaveImage(img image.Image, outputPath string, jpegQuality int) error {
	ext := strings.ToLower(filepath.Ext(outputPath))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return fmt.Errorf("unsupported output format: %s", ext)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w := bufio.NewWriter(file)
	if ext == ".png" {
		err = png.Encode(w, img)
	} else {
		err = EncodeJPEG(w, img, jpegQuality)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to save image %s: %w", outputPath, err)
	}
	return nil
}

// EncodeJPEG は画像をJPEGとして書き出す
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}
