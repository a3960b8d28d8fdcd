package imageutil

import "github.com/xshoji/go-doc-diff/utils"

// 輝度の重み (ITU-R BT.601, 1/1000 単位)
const (
	lumaR = 299
	lumaG = 587
	lumaB = 114
)

// pixelDifference は2つのRGBAピクセルの差分強度を返す（0-255）
// 各チャンネルの絶対差を輝度の重みで1つの値にまとめる
// 整数演算のみを使うため実行環境によらず結果は一定
func pixelDifference(p1, p2 []uint8) int {
	dr := utils.AbsInt(int(p1[0]) - int(p2[0]))
	dg := utils.AbsInt(int(p1[1]) - int(p2[1]))
	db := utils.AbsInt(int(p1[2]) - int(p2[2]))

	return (lumaR*dr + lumaG*dg + lumaB*db + 500) / 1000
}
