package imageutil

import (
	"image"

	"github.com/xshoji/go-doc-diff/utils"
)

// BoundingRegion は差分ピクセルの連結成分を囲む矩形（画像のピクセル座標）
// 検出器が返す矩形は常に画像内に収まり、幅・高さは1以上
type BoundingRegion struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect は image.Rectangle に変換する
func (r BoundingRegion) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Area は矩形の面積を返す
func (r BoundingRegion) Area() int {
	return r.Width * r.Height
}

// neighbours8 は8近傍のオフセット
var neighbours8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// extractRegions はマスクの8連結成分ごとの外接矩形を返す
// 順序はラスタ走査（上から下、左から右）で成分の最初のピクセルを見つけた順
func extractRegions(mask *BinaryMask) []BoundingRegion {
	if mask.Width == 0 || mask.Height == 0 {
		return nil
	}

	var regions []BoundingRegion
	visited := make([]bool, len(mask.Bits))
	stack := make([]int, 0, 64)

	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			start := y*mask.Width + x
			if !mask.Bits[start] || visited[start] {
				continue
			}

			// 新しい成分をスタックで塗りつぶす
			minX, minY := x, y
			maxX, maxY := x, y
			visited[start] = true
			stack = append(stack[:0], start)

			for len(stack) > 0 {
				idx := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cx, cy := idx%mask.Width, idx/mask.Width

				minX = utils.Min(minX, cx)
				minY = utils.Min(minY, cy)
				maxX = utils.Max(maxX, cx)
				maxY = utils.Max(maxY, cy)

				for _, d := range neighbours8 {
					nx, ny := cx+d[0], cy+d[1]
					if nx < 0 || nx >= mask.Width || ny < 0 || ny >= mask.Height {
						continue
					}
					n := ny*mask.Width + nx
					if mask.Bits[n] && !visited[n] {
						visited[n] = true
						stack = append(stack, n)
					}
				}
			}

			regions = append(regions, BoundingRegion{
				X:      minX,
				Y:      minY,
				Width:  maxX - minX + 1,
				Height: maxY - minY + 1,
			})
		}
	}

	return regions
}

// collapseNestedRegions は先に見つかった矩形に完全に内包される矩形を取り除く
// 残った矩形の順序は変えない
func collapseNestedRegions(regions []BoundingRegion) []BoundingRegion {
	if len(regions) <= 1 {
		return regions
	}

	result := make([]BoundingRegion, 0, len(regions))
	for _, r := range regions {
		nested := false
		for _, kept := range result {
			if containsRect(kept.Rect(), r.Rect()) {
				nested = true
				break
			}
		}
		if !nested {
			result = append(result, r)
		}
	}
	return result
}

// containsRect は矩形r1が矩形r2を完全に含むかどうかをチェック（入れ子検出）
func containsRect(r1, r2 image.Rectangle) bool {
	return r1.Min.X <= r2.Min.X &&
		r1.Min.Y <= r2.Min.Y &&
		r1.Max.X >= r2.Max.X &&
		r1.Max.Y >= r2.Max.Y
}

// isValidRect は矩形が有効かどうかをチェック
func isValidRect(rect image.Rectangle) bool {
	return rect.Min.X < rect.Max.X && rect.Min.Y < rect.Max.Y
}

// clipRegion は矩形を bounds 内に切り詰める。はみ出し部分しかない場合は false
func clipRegion(r BoundingRegion, bounds image.Rectangle) (image.Rectangle, bool) {
	clipped := r.Rect().Intersect(bounds)
	return clipped, isValidRect(clipped)
}
