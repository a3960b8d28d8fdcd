package imageutil

import (
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xshoji/go-doc-diff/config"
	"github.com/xshoji/go-doc-diff/utils"
)

// BinaryMask は差分ありのピクセルを true とする2値マスク（行優先）
type BinaryMask struct {
	Width  int
	Height int
	Bits   []bool
}

// At は (x, y) が差分ピクセルかどうかを返す。範囲外は false
func (m *BinaryMask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Bits[y*m.Width+x]
}

// Count は差分ピクセル数を返す
func (m *BinaryMask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Detection は1組の画像に対する差分検出結果
type Detection struct {
	Mask           *BinaryMask
	Regions        []BoundingRegion
	DiffPixelCount int
}

// Detector は2つの画像の差分を検出する
// 状態を持たないため複数のゴルーチンから同時に使える
type Detector struct {
	cfg *config.AppConfig
}

// NewDetector 設定をもとに新しいDetectorを作成
func NewDetector(cfg *config.AppConfig) *Detector {
	return &Detector{cfg: cfg}
}

// Detect は2つの画像の差分マスク・差分領域・差分ピクセル数を返す
// 閾値を上げても差分ピクセル数は増えないが、連結成分が分断されて領域数は増えることがある
// サイズが異なる場合は NormalizeDimensions でそろえてから比較する
func (d *Detector) Detect(a, b image.Image) *Detection {
	imgA, imgB := NormalizeDimensions(a, b)
	return d.DetectRGBA(imgA, imgB)
}

// DetectRGBA は NormalizeDimensions 済みの2画像を比較する
// サイズや原点がそろっていない場合は改めて正規化する
func (d *Detector) DetectRGBA(imgA, imgB *image.RGBA) *Detection {
	if imgA.Bounds() != imgB.Bounds() || imgA.Bounds().Min != (image.Point{}) {
		imgA, imgB = NormalizeDimensions(imgA, imgB)
	}
	startTime := time.Now()

	mask := d.diffMask(imgA, imgB)
	count := mask.Count()

	var regions []BoundingRegion
	if count > 0 {
		regions = extractRegions(mask)
		if d.cfg.CollapseNested {
			regions = collapseNestedRegions(regions)
		}
	}

	log.WithFields(logrus.Fields{
		"width":   mask.Width,
		"height":  mask.Height,
		"pixels":  count,
		"regions": len(regions),
		"elapsed": time.Since(startTime).String(),
	}).Debug("Diff detection complete")

	return &Detection{
		Mask:           mask,
		Regions:        regions,
		DiffPixelCount: count,
	}
}

// diffMask はピクセルごとの差分強度を閾値で2値化する（閾値以上を差分とする）
func (d *Detector) diffMask(imgA, imgB *image.RGBA) *BinaryMask {
	width := imgA.Bounds().Dx()
	height := imgA.Bounds().Dy()

	mask := &BinaryMask{
		Width:  width,
		Height: height,
		Bits:   make([]bool, width*height),
	}

	// 閾値0では同一画像も全面差分になるため下限を1とする
	threshold := utils.Max(1, d.cfg.Threshold)
	for y := 0; y < height; y++ {
		rowA := imgA.Pix[y*imgA.Stride:]
		rowB := imgB.Pix[y*imgB.Stride:]
		for x := 0; x < width; x++ {
			i := x * 4
			if pixelDifference(rowA[i:i+4], rowB[i:i+4]) >= threshold {
				mask.Bits[y*width+x] = true
			}
		}
	}

	return mask
}
