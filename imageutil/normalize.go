package imageutil

import (
	"image"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/xshoji/go-doc-diff/utils"
)

// ToRGBA は画像を原点(0,0)の新しい *image.RGBA にコピーする
// 透過部分は白背景に合成され、以降の処理ではアルファを無視する
func ToRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// NormalizeDimensions は2つの画像を同じサイズにそろえる
// サイズが異なる場合は両方を (max幅, max高さ) にバイリニア補間で拡大縮小する
// 情報の欠落を伴う正規化であり、エラーにはしない
func NormalizeDimensions(a, b image.Image) (*image.RGBA, *image.RGBA) {
	boundsA := a.Bounds()
	boundsB := b.Bounds()

	if boundsA.Dx() == boundsB.Dx() && boundsA.Dy() == boundsB.Dy() {
		return ToRGBA(a), ToRGBA(b)
	}

	width := utils.Max(boundsA.Dx(), boundsB.Dx())
	height := utils.Max(boundsA.Dy(), boundsB.Dy())

	log.WithFields(logrus.Fields{
		"a":      boundsA.Size().String(),
		"b":      boundsB.Size().String(),
		"target": image.Pt(width, height).String(),
	}).Debug("Resampling images to common dimensions")

	return resample(a, width, height), resample(b, width, height)
}

// resample は画像を指定サイズに拡大縮小する
func resample(src image.Image, width, height int) *image.RGBA {
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return ToRGBA(src)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if b.Empty() || dst.Bounds().Empty() {
		return dst
	}

	draw.BiLinear.Scale(dst, dst.Bounds(), ToRGBA(src), image.Rect(0, 0, b.Dx(), b.Dy()), draw.Src, nil)
	return dst
}
