// rasterize パッケージはドキュメントのページを画像に変換する
package rasterize

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/xshoji/go-doc-diff/imageutil"
)

// ErrDocumentUnreadable はドキュメントを開けない・ページを描画できない場合のエラー
var ErrDocumentUnreadable = errors.New("document unreadable")

var log = logrus.WithField("component", "rasterize")

// Rasterizer はドキュメントのページ数を返し、ページを画像に変換する
// 失敗はすべて ErrDocumentUnreadable をラップして返す
type Rasterizer interface {
	PageCount(path string) (int, error)
	RenderPage(path string, index int, dpi float64) (image.Image, error)
}

// MuPDF で描画できるドキュメントの拡張子
var documentExtensions = map[string]bool{
	".pdf":  true,
	".xps":  true,
	".oxps": true,
	".epub": true,
	".cbz":  true,
	".fb2":  true,
	".mobi": true,
}

// IsDocumentFile は拡張子から比較対象のドキュメントかどうかを判定する
func IsDocumentFile(path string) bool {
	return documentExtensions[strings.ToLower(filepath.Ext(path))] || imageutil.IsImageFile(path)
}

// Dispatcher は拡張子に応じて画像用と文書用の Rasterizer を使い分ける
type Dispatcher struct {
	Images    Rasterizer
	Documents Rasterizer
}

// NewDispatcher は画像ファイルと MuPDF 対応文書を扱う Dispatcher を返す
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		Images:    NewImageRasterizer(),
		Documents: NewFitzRasterizer(),
	}
}

func (d *Dispatcher) pick(path string) Rasterizer {
	if imageutil.IsImageFile(path) {
		return d.Images
	}
	return d.Documents
}

// PageCount はドキュメントのページ数を返す
func (d *Dispatcher) PageCount(path string) (int, error) {
	return d.pick(path).PageCount(path)
}

// RenderPage は index (0始まり) のページを dpi で描画する
func (d *Dispatcher) RenderPage(path string, index int, dpi float64) (image.Image, error) {
	return d.pick(path).RenderPage(path, index, dpi)
}

// unreadable は原因のエラーを ErrDocumentUnreadable と一緒にラップする
func unreadable(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDocumentUnreadable, filepath.Base(path), err)
}
