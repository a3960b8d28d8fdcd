package rasterize

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/sirupsen/logrus"
)

// FitzRasterizer は go-fitz (MuPDF) を使って PDF などのページを描画する
type FitzRasterizer struct{}

// NewFitzRasterizer は新しい FitzRasterizer を返す
func NewFitzRasterizer() *FitzRasterizer {
	return &FitzRasterizer{}
}

// PageCount はドキュメントのページ数を返す
func (r *FitzRasterizer) PageCount(path string) (int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, unreadable(path, err)
	}
	defer doc.Close()

	return doc.NumPage(), nil
}

// RenderPage は index (0始まり) のページを dpi で描画する
func (r *FitzRasterizer) RenderPage(path string, index int, dpi float64) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, unreadable(path, err)
	}
	defer doc.Close()

	if index < 0 || index >= doc.NumPage() {
		return nil, unreadable(path, fmt.Errorf("page %d out of range (%d pages)", index+1, doc.NumPage()))
	}

	img, err := doc.ImageDPI(index, dpi)
	if err != nil {
		return nil, unreadable(path, fmt.Errorf("failed to render page %d: %w", index+1, err))
	}

	log.WithFields(logrus.Fields{
		"file":   path,
		"page":   index + 1,
		"dpi":    dpi,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Debug("Rendered page")

	return img, nil
}
