package imageutil

import (
	"image"
	"image/color"
	"image/draw"
)

// Annotate は target のコピーに各領域の枠（塗りつぶしなし）を描画して返す
// target 自体は変更しない。画像外にはみ出す部分は切り詰める
func Annotate(target image.Image, regions []BoundingRegion, c color.Color, thickness int) *image.RGBA {
	img := ToRGBA(target)
	drawBorders(img, regions, c, thickness)
	return img
}

// drawBorders は指定された領域に枠を描画する
// 枠は矩形の内側に thickness ピクセル分描く
func drawBorders(img *image.RGBA, regions []BoundingRegion, c color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	src := image.NewUniform(c)
	canvas := img.Bounds()

	for _, region := range regions {
		rect, ok := clipRegion(region, canvas)
		if !ok {
			continue
		}

		// 上辺・下辺・左辺・右辺
		edges := []image.Rectangle{
			image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thickness),
			image.Rect(rect.Min.X, rect.Max.Y-thickness, rect.Max.X, rect.Max.Y),
			image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thickness, rect.Max.Y),
			image.Rect(rect.Max.X-thickness, rect.Min.Y, rect.Max.X, rect.Max.Y),
		}
		for _, e := range edges {
			draw.Draw(img, e.Intersect(rect), src, image.Point{}, draw.Src)
		}
	}
}
