package compare

import (
	"context"
	"image"

	"github.com/xshoji/go-doc-diff/config"
	"github.com/xshoji/go-doc-diff/imageutil"
	"github.com/xshoji/go-doc-diff/rasterize"
)

// VisualStrategy はページを画像化して比較する方式
type VisualStrategy struct {
	rasterizer rasterize.Rasterizer
	dpi        float64
	documents  *DocumentComparator
}

// NewVisualStrategy は画像比較の Strategy を作成
func NewVisualStrategy(cfg *config.AppConfig, r rasterize.Rasterizer, tf *imageutil.Typeface) *VisualStrategy {
	return &VisualStrategy{
		rasterizer: r,
		dpi:        cfg.DPI,
		documents:  NewDocumentComparator(cfg, tf),
	}
}

// Name は方式の名前を返す
func (s *VisualStrategy) Name() string {
	return config.ModeVisual
}

// ComparePair は両方のドキュメントを描画してページごとに比較する
func (s *VisualStrategy) ComparePair(ctx context.Context, pair DocumentPair) (*DocumentResult, error) {
	pagesA, err := s.renderAll(ctx, pair.Name, SideA, pair.PathA)
	if err != nil {
		return nil, err
	}
	pagesB, err := s.renderAll(ctx, pair.Name, SideB, pair.PathB)
	if err != nil {
		return nil, err
	}
	return s.documents.CompareDocument(ctx, pair.Name, pagesA, pagesB)
}

// renderAll はドキュメントの全ページを描画する
func (s *VisualStrategy) renderAll(ctx context.Context, name string, side Side, path string) ([]image.Image, error) {
	count, err := s.rasterizer.PageCount(path)
	if err != nil {
		return nil, &DocumentError{Document: name, Side: side, Err: err}
	}

	pages := make([]image.Image, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := s.rasterizer.RenderPage(path, i, s.dpi)
		if err != nil {
			return nil, &DocumentError{Document: name, Side: side, Page: i + 1, Err: err}
		}
		pages = append(pages, img)
	}
	return pages, nil
}
