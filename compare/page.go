package compare

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/xshoji/go-doc-diff/config"
	"github.com/xshoji/go-doc-diff/imageutil"
)

// PageComparator は1組のページ画像を比較して PageResult を作る
// 枠は常に2つ目の画像（新しい版）に描く
type PageComparator struct {
	cfg      *config.AppConfig
	detector *imageutil.Detector
	typeface *imageutil.Typeface
}

// NewPageComparator 設定と書体をもとに新しいPageComparatorを作成
func NewPageComparator(cfg *config.AppConfig, tf *imageutil.Typeface) *PageComparator {
	return &PageComparator{
		cfg:      cfg,
		detector: imageutil.NewDetector(cfg),
		typeface: tf,
	}
}

// ComparePage は imgA と imgB を比較し、A と枠付きの B を横に並べた画像を作る
// index は1始まりのページ番号、docName はタイトルに使う
func (pc *PageComparator) ComparePage(docName string, index int, imgA, imgB image.Image) *PageResult {
	normA, normB := imageutil.NormalizeDimensions(imgA, imgB)
	detection := pc.detector.DetectRGBA(normA, normB)

	highlighted := imageutil.Annotate(normB, detection.Regions, pc.cfg.HighlightColor, pc.cfg.BorderThickness)
	title := pageTitle(index, docName)
	combined := imageutil.SideBySide(normA, highlighted, title, pc.typeface.Face(pc.cfg.TitleFontSize), pc.cfg.HeaderHeight)

	if len(detection.Regions) > 0 {
		log.WithFields(logrus.Fields{
			"document": docName,
			"page":     index,
			"regions":  len(detection.Regions),
			"pixels":   detection.DiffPixelCount,
		}).Info("Found differences")
	}

	return &PageResult{
		Index:          index,
		Regions:        detection.Regions,
		DiffPixelCount: detection.DiffPixelCount,
		Image:          combined,
	}
}

func pageTitle(index int, docName string) string {
	return fmt.Sprintf("Page %d - %s", index, docName)
}
