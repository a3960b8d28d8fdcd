package imageutil

import "testing"

func TestPixelDifference(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   []uint8
		expected int
	}{
		{"同じ色", []uint8{10, 20, 30, 255}, []uint8{10, 20, 30, 255}, 0},
		{"白と黒", []uint8{255, 255, 255, 255}, []uint8{0, 0, 0, 255}, 255},
		{"赤のみ", []uint8{255, 0, 0, 255}, []uint8{0, 0, 0, 255}, 76},
		{"緑のみ", []uint8{0, 255, 0, 255}, []uint8{0, 0, 0, 255}, 150},
		{"青のみ", []uint8{0, 0, 255, 255}, []uint8{0, 0, 0, 255}, 29},
		{"アルファは無視", []uint8{0, 0, 0, 0}, []uint8{0, 0, 0, 255}, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := pixelDifference(test.p1, test.p2); got != test.expected {
				t.Errorf("pixelDifference(%v, %v) = %d; expected %d", test.p1, test.p2, got, test.expected)
			}
			if got := pixelDifference(test.p2, test.p1); got != test.expected {
				t.Errorf("pixelDifference should be symmetric, got %d", got)
			}
		})
	}
}
