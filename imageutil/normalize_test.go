package imageutil

import (
	"image"
	"image/color"
	"testing"
)

func TestToRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 14, 12))
	src.SetNRGBA(10, 10, color.NRGBA{0, 0, 0, 255})
	// (11,10) は完全に透明

	out := ToRGBA(src)
	if out.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Fatalf("bounds = %v; expected origin at (0,0)", out.Bounds())
	}
	if out.RGBAAt(0, 0) != black {
		t.Errorf("opaque pixel = %v; expected black", out.RGBAAt(0, 0))
	}
	if out.RGBAAt(1, 0) != white {
		t.Errorf("transparent pixel = %v; expected white", out.RGBAAt(1, 0))
	}
}

func TestNormalizeDimensions(t *testing.T) {
	tests := []struct {
		name         string
		sizeA, sizeB image.Point
		want         image.Point
	}{
		{"同じサイズ", image.Pt(20, 10), image.Pt(20, 10), image.Pt(20, 10)},
		{"Bが大きい", image.Pt(20, 10), image.Pt(40, 30), image.Pt(40, 30)},
		{"幅と高さが交差", image.Pt(50, 10), image.Pt(20, 60), image.Pt(50, 60)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := createTestImageWithPattern(test.sizeA.X, test.sizeA.Y, white, nil)
			b := createTestImageWithPattern(test.sizeB.X, test.sizeB.Y, white, nil)
			na, nb := NormalizeDimensions(a, b)
			want := image.Rectangle{Max: test.want}
			if na.Bounds() != want || nb.Bounds() != want {
				t.Errorf("bounds = %v, %v; expected %v", na.Bounds(), nb.Bounds(), want)
			}
		})
	}
}

func TestNormalizeDimensionsPreservesColor(t *testing.T) {
	a := createTestImageWithPattern(10, 10, black, nil)
	b := createTestImageWithPattern(20, 20, white, nil)

	na, _ := NormalizeDimensions(a, b)
	if c := na.RGBAAt(10, 10); c.R > 10 {
		t.Errorf("upscaled black image should stay dark, got %v", c)
	}
}
