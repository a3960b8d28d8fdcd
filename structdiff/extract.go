// structdiff パッケージはドキュメントの構造（テキスト木）同士を比較する
// 画像比較とは独立した方式で、データ構造も共有しない
package structdiff

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/xshoji/go-doc-diff/rasterize"
)

var log = logrus.WithField("component", "structdiff")

// Tree はドキュメントモデルを表す入れ子のキー・値の木
type Tree = map[string]interface{}

// Extractor はドキュメントから Tree を取り出す
type Extractor interface {
	Extract(path string) (Tree, error)
}

// IsSupported は構造比較で扱える拡張子かを返す
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".json":
		return true
	}
	return false
}

// FileExtractor は拡張子で PDF と抽出済みJSONを使い分ける
type FileExtractor struct{}

// NewFileExtractor は新しい FileExtractor を返す
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// Extract は path のドキュメントモデルを返す
// 失敗は rasterize.ErrDocumentUnreadable をラップする
func (e *FileExtractor) Extract(path string) (Tree, error) {
	var (
		tree Tree
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		tree, err = loadJSONTree(path)
	case ".pdf":
		tree, err = extractPDF(path)
	default:
		err = fmt.Errorf("unsupported document format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", rasterize.ErrDocumentUnreadable, filepath.Base(path), err)
	}
	return tree, nil
}

// loadJSONTree は抽出済みのドキュメントモデル（JSON）を読み込む
func loadJSONTree(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tree Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse document model: %w", err)
	}
	return tree, nil
}

// extractPDF はページごとのテキストを取り出して木にする
// {page_count, pages: [{number, text, lines}]}
func extractPDF(path string) (Tree, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	count := r.NumPage()
	pages := make([]interface{}, 0, count)
	for i := 1; i <= count; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		text = norm.NFC.String(text)
		pages = append(pages, map[string]interface{}{
			"number": i,
			"text":   text,
			"lines":  splitLines(text),
		})
	}

	log.WithFields(logrus.Fields{
		"file":  path,
		"pages": count,
	}).Debug("Extracted document model")

	return Tree{
		"page_count": count,
		"pages":      pages,
	}, nil
}

// splitLines は空行を除いた行の一覧を返す
func splitLines(text string) []interface{} {
	lines := make([]interface{}, 0)
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
