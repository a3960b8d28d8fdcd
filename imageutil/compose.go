package imageutil

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/xshoji/go-doc-diff/utils"
)

// サマリーページのレイアウト
const (
	summaryWidth     = 1200
	summaryMinHeight = 400
	summaryMarginX   = 50
	summaryTitleY    = 30
	summaryBodyY     = 80
	summaryIndent    = 70
	summaryMinLineH  = 30
)

var placeholderColor = color.RGBA{235, 235, 235, 255}

// SideBySide は left と right を横に並べ、上部の headerHeight の帯に title を描画する
// キャンバスは (left幅+right幅, max(高さ)+headerHeight)
func SideBySide(left, right image.Image, title string, face font.Face, headerHeight int) *image.RGBA {
	lb, rb := left.Bounds(), right.Bounds()
	width := lb.Dx() + rb.Dx()
	height := utils.Max(lb.Dy(), rb.Dy()) + headerHeight

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	draw.Draw(canvas, image.Rect(0, headerHeight, lb.Dx(), headerHeight+lb.Dy()), left, lb.Min, draw.Src)
	draw.Draw(canvas, image.Rect(lb.Dx(), headerHeight, width, headerHeight+rb.Dy()), right, rb.Min, draw.Src)

	if headerHeight > 0 && title != "" {
		header := canvas.SubImage(image.Rect(0, 0, width, headerHeight)).(*image.RGBA)
		drawText(header, title, 10, 5, face, color.Black)
	}

	return canvas
}

// RenderSummaryPage は1ドキュメント分の結果をまとめたページを描画する
// 行数が多い場合はページを縦に伸ばす
func RenderSummaryPage(name string, lines []string, titleFace, bodyFace font.Face) *image.RGBA {
	lineHeight := utils.Max(summaryMinLineH, bodyFace.Metrics().Height.Ceil()+6)
	height := utils.Max(summaryMinHeight, summaryBodyY+len(lines)*lineHeight+summaryMarginX)

	page := image.NewRGBA(image.Rect(0, 0, summaryWidth, height))
	draw.Draw(page, page.Bounds(), image.White, image.Point{}, draw.Src)

	drawText(page, "File: "+name, summaryMarginX, summaryTitleY, titleFace, color.Black)

	y := summaryBodyY
	for _, line := range lines {
		drawText(page, "- "+line, summaryIndent, y, bodyFace, color.Black)
		y += lineHeight
	}

	return page
}

// PlaceholderPage は片側にしか存在しないページの反対側に置く空白ページを返す
func PlaceholderPage(width, height int, label string, face font.Face) *image.RGBA {
	page := image.NewRGBA(image.Rect(0, 0, utils.Max(1, width), utils.Max(1, height)))
	draw.Draw(page, page.Bounds(), image.NewUniform(placeholderColor), image.Point{}, draw.Src)
	if label != "" {
		drawText(page, label, 20, 20, face, color.Gray{Y: 96})
	}
	return page
}

// drawText は (x, top) を文字の上端としてテキストを描画する
// 描画先の範囲外は切り捨てられる
func drawText(dst draw.Image, text string, x, top int, face font.Face, c color.Color) {
	b := dst.Bounds()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(b.Min.X+x, b.Min.Y+top+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}
