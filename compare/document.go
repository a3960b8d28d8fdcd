package compare

import (
	"context"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/xshoji/go-doc-diff/config"
	"github.com/xshoji/go-doc-diff/imageutil"
	"github.com/xshoji/go-doc-diff/utils"
)

// サマリーの定型文
const (
	summaryNoDifferences = "No differences found between the documents."
	summaryPageFormat    = "Page %d: %d differences found."
	summaryMismatch      = "Warning: Unequal number of pages (%d vs %d)"
	summaryNoContent     = "No comparable content (%d vs %d pages)."

	// サマリーページにだけ載せる行
	summaryExtraPage  = "Extra page in document %s, page %d"
	summaryConclusion = "Conclusion: Some pages show visual differences. Please review highlighted pages for details."
)

// DocumentComparator は1組のドキュメントのページ列を比較する
type DocumentComparator struct {
	cfg      *config.AppConfig
	pages    *PageComparator
	typeface *imageutil.Typeface
}

// NewDocumentComparator 設定と書体をもとに新しいDocumentComparatorを作成
func NewDocumentComparator(cfg *config.AppConfig, tf *imageutil.Typeface) *DocumentComparator {
	return &DocumentComparator{
		cfg:      cfg,
		pages:    NewPageComparator(cfg, tf),
		typeface: tf,
	}
}

// CompareDocument は pagesA と pagesB を先頭から同じ番号同士で比較する
// 短い方を超えたページは比較せず ExtraPage として記録する
// エラーを返すのは ctx がキャンセルされた場合のみ
func (dc *DocumentComparator) CompareDocument(ctx context.Context, name string, pagesA, pagesB []image.Image) (*DocumentResult, error) {
	logger := log.WithFields(logrus.Fields{
		"document": name,
		"pages_a":  len(pagesA),
		"pages_b":  len(pagesB),
	})
	logger.Info("Comparing document")

	n := utils.Min(len(pagesA), len(pagesB))
	result := &DocumentResult{
		Name:  name,
		Pages: make([]*PageResult, n),
	}

	// ページごとの比較は並列に行い、結果はページ番号のスロットに書く
	err := utils.RunIndexed(ctx, n, dc.cfg.NumCPU, func(i int) error {
		result.Pages[i] = dc.pages.ComparePage(name, i+1, pagesA[i], pagesB[i])
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("comparing %s: %w", name, err)
	}

	if len(pagesA) != len(pagesB) {
		result.Mismatch = &PageCountMismatch{CountA: len(pagesA), CountB: len(pagesB)}
		logger.Warn("Unequal number of pages")

		extraSide, extraPages := SideB, pagesB
		if len(pagesA) > len(pagesB) {
			extraSide, extraPages = SideA, pagesA
		}
		for i := n; i < len(extraPages); i++ {
			result.Extra = append(result.Extra, dc.extraPage(name, extraSide, i+1, extraPages[i]))
		}
	}

	result.Summary = summarize(result, len(pagesA), len(pagesB))
	result.SummaryPage = imageutil.RenderSummaryPage(
		name,
		summaryPageLines(result),
		dc.typeface.Face(dc.cfg.TitleFontSize+6),
		dc.typeface.Face(dc.cfg.BodyFontSize),
	)

	return result, nil
}

// extraPage は片側にしかないページを空白ページと並べた画像を作る
func (dc *DocumentComparator) extraPage(name string, side Side, number int, page image.Image) ExtraPage {
	b := page.Bounds()
	titleFace := dc.typeface.Face(dc.cfg.TitleFontSize)
	placeholder := imageutil.PlaceholderPage(b.Dx(), b.Dy(), "(no page)", dc.typeface.Face(dc.cfg.BodyFontSize))
	title := fmt.Sprintf("%s (only in %s)", pageTitle(number, name), side)

	left, right := image.Image(placeholder), page
	if side == SideA {
		left, right = page, placeholder
	}

	return ExtraPage{
		Side:      side,
		Number:    number,
		Image:     page,
		Composite: imageutil.SideBySide(left, right, title, titleFace, dc.cfg.HeaderHeight),
	}
}

// summarize はサマリーの各行を作る
// 差分のあるページの行、ページ数の警告、どちらもなければ差分なしの行
func summarize(result *DocumentResult, countA, countB int) []string {
	var lines []string

	for _, p := range result.Pages {
		if len(p.Regions) > 0 {
			lines = append(lines, fmt.Sprintf(summaryPageFormat, p.Index, p.DiffPixelCount))
		}
	}

	if countA == 0 || countB == 0 {
		lines = append(lines, fmt.Sprintf(summaryNoContent, countA, countB))
	}

	if result.Mismatch != nil {
		lines = append(lines, fmt.Sprintf(summaryMismatch, result.Mismatch.CountA, result.Mismatch.CountB))
	}

	if len(lines) == 0 {
		lines = append(lines, summaryNoDifferences)
	}

	return lines
}

// summaryPageLines はサマリーページに描く行を返す
// Summary に続けて片側にしかないページの一覧と結論の行を加える
func summaryPageLines(result *DocumentResult) []string {
	lines := append([]string(nil), result.Summary...)
	if !result.HasDifferences() {
		return lines
	}
	for _, e := range result.Extra {
		lines = append(lines, fmt.Sprintf(summaryExtraPage, e.Side, e.Number))
	}
	return append(lines, summaryConclusion)
}
