package structdiff

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/xshoji/go-doc-diff/compare"
	"github.com/xshoji/go-doc-diff/config"
)

// Strategy はドキュメントモデルの木を比較する方式
type Strategy struct {
	extractor Extractor
}

// NewStrategy は構造比較の Strategy を作成
func NewStrategy(e Extractor) *Strategy {
	return &Strategy{extractor: e}
}

// Name は方式の名前を返す
func (s *Strategy) Name() string {
	return config.ModeStructural
}

// ComparePair は両方のドキュメントモデルを取り出して差分を求める
func (s *Strategy) ComparePair(ctx context.Context, pair compare.DocumentPair) (*Record, error) {
	treeA, err := s.extractor.Extract(pair.PathA)
	if err != nil {
		return nil, &compare.DocumentError{Document: pair.Name, Side: compare.SideA, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	treeB, err := s.extractor.Extract(pair.PathB)
	if err != nil {
		return nil, &compare.DocumentError{Document: pair.Name, Side: compare.SideB, Err: err}
	}

	diffs, err := Diff(treeA, treeB)
	if err != nil {
		return nil, &compare.DocumentError{Document: pair.Name, Err: err}
	}

	rec := &Record{
		Name:        pair.Name,
		SourceA:     pair.PathA,
		SourceB:     pair.PathB,
		Differences: diffs,
	}
	log.WithFields(logrus.Fields{
		"document":    pair.Name,
		"differences": countChanges(diffs),
	}).Info("Structural comparison finished")
	return rec, nil
}

func countChanges(d Differences) int {
	n := 0
	for _, changes := range d {
		n += len(changes)
	}
	return n
}
