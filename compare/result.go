// compare パッケージはページ・ドキュメント・バッチ単位の比較を行う
package compare

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/xshoji/go-doc-diff/imageutil"
)

var log = logrus.WithField("component", "compare")

// Side は比較の左右どちらのコレクションかを表す
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// PageResult は1ページ分の比較結果
// Regions は検出順（ラスタ走査順）で、位置でソートはしない
type PageResult struct {
	Index          int                        // 1始まりのページ番号
	Regions        []imageutil.BoundingRegion // 差分領域
	DiffPixelCount int                        // 差分ピクセル数（領域数ではない）
	Image          *image.RGBA                // 左: A, 右: 枠付きの B
}

// PageCountMismatch はページ数が異なる場合の両方のページ数
type PageCountMismatch struct {
	CountA int
	CountB int
}

// ExtraPage は短い方のドキュメントを超えた、片側にしかないページ
// 差分検出は行わず、そのまま提示する
type ExtraPage struct {
	Side      Side
	Number    int         // 1始まりのページ番号
	Image     image.Image // 描画されたページそのもの
	Composite *image.RGBA // レポート用に空白ページと並べた画像
}

// DocumentResult は1組のドキュメントの比較結果
type DocumentResult struct {
	Name        string
	Pages       []*PageResult
	Mismatch    *PageCountMismatch // ページ数が同じなら nil
	Extra       []ExtraPage
	Summary     []string
	SummaryPage *image.RGBA
}

// HasDifferences は差分領域またはページ数の不一致があるかを返す
func (r *DocumentResult) HasDifferences() bool {
	if r.Mismatch != nil {
		return true
	}
	for _, p := range r.Pages {
		if len(p.Regions) > 0 {
			return true
		}
	}
	return false
}

// ReportPages はレポートに載せる画像を順に返す
// 比較したページ、片側にしかないページ、サマリーページの順
func (r *DocumentResult) ReportPages() []image.Image {
	pages := make([]image.Image, 0, len(r.Pages)+len(r.Extra)+1)
	for _, p := range r.Pages {
		pages = append(pages, p.Image)
	}
	for _, e := range r.Extra {
		pages = append(pages, e.Composite)
	}
	if r.SummaryPage != nil {
		pages = append(pages, r.SummaryPage)
	}
	return pages
}

// CollectReportPages は全ドキュメントのレポート画像をドキュメント順に連結する
func CollectReportPages(results []*DocumentResult) []image.Image {
	var pages []image.Image
	for _, r := range results {
		pages = append(pages, r.ReportPages()...)
	}
	return pages
}

// DocumentError はドキュメント単位の失敗。どのドキュメント・ページかを保持する
type DocumentError struct {
	Document string
	Side     Side
	Page     int // 1始まり。ページに依存しない失敗は 0
	Err      error
}

func (e *DocumentError) Error() string {
	msg := "document " + e.Document
	if e.Side != "" {
		msg += fmt.Sprintf(" (side %s)", e.Side)
	}
	if e.Page > 0 {
		msg += fmt.Sprintf(", page %d", e.Page)
	}
	return msg + ": " + e.Err.Error()
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
