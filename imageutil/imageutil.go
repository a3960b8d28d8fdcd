// imageutil パッケージはページ画像の差分検出と注釈描画を提供します
package imageutil

import "github.com/sirupsen/logrus"

// 機能は以下のファイルに分割されています：
// - normalize.go: 画像サイズの正規化とRGBA変換
// - color_utils.go: ピクセル単位の差分強度
// - detector.go: 差分マスクの生成
// - rectangles.go: 連結成分と矩形処理
// - renderer.go: 差分領域の枠描画
// - compose.go: 横並び画像とサマリーページ
// - font.go: タイトル描画用フォント
// - imageloader.go: 画像の読み込み・保存

var log = logrus.WithField("component", "imageutil")
