package rasterize

import (
	"fmt"
	"image"
	"os"

	"github.com/xshoji/go-doc-diff/imageutil"
)

// ImageRasterizer は画像ファイルを1ページのドキュメントとして扱う
// 既にラスタ画像なので dpi は使わない
type ImageRasterizer struct{}

// NewImageRasterizer は新しい ImageRasterizer を返す
func NewImageRasterizer() *ImageRasterizer {
	return &ImageRasterizer{}
}

// PageCount は画像として読めるかを確認して 1 を返す
func (r *ImageRasterizer) PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, unreadable(path, err)
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return 0, unreadable(path, err)
	}
	return 1, nil
}

// RenderPage は画像を読み込んで返す。index は 0 のみ有効
func (r *ImageRasterizer) RenderPage(path string, index int, _ float64) (image.Image, error) {
	if index != 0 {
		return nil, unreadable(path, fmt.Errorf("page %d out of range (1 page)", index+1))
	}
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, unreadable(path, err)
	}
	return img, nil
}
