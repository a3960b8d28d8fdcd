package compare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xshoji/go-doc-diff/utils"
)

// StatusNoMatches は突き合わせるドキュメントが無かった場合のステータス
const StatusNoMatches = "No matching documents found in both collections."

// Strategy は1組のドキュメントを比較する方式（画像比較・構造比較）
// 複数のゴルーチンから同時に呼ばれる
type Strategy[R any] interface {
	Name() string
	ComparePair(ctx context.Context, pair DocumentPair) (R, error)
}

// Batch はバッチ実行の結果
// Results と Failures はどちらもドキュメント名の辞書順
type Batch[R any] struct {
	Results  []R
	Failures []*DocumentError
	OnlyInA  []string
	OnlyInB  []string
	Status   string
}

// BatchResult は画像比較のバッチ結果
type BatchResult = Batch[*DocumentResult]

// Orchestrator は2つのコレクションを突き合わせ、各組を Strategy で比較する
type Orchestrator[R any] struct {
	strategy Strategy[R]
	workers  int
}

// NewOrchestrator は workers 個のワーカーで比較する Orchestrator を作成
func NewOrchestrator[R any](strategy Strategy[R], workers int) *Orchestrator[R] {
	return &Orchestrator[R]{strategy: strategy, workers: workers}
}

// Run は a と b の両方にあるドキュメントを比較する
// 個々のドキュメントの失敗は Failures に記録して他の比較を続ける
// エラーを返すのは ctx がキャンセルされた場合のみ
func (o *Orchestrator[R]) Run(ctx context.Context, a, b *Collection) (*Batch[R], error) {
	startTime := time.Now()
	matching := MatchCollections(a, b)

	batch := &Batch[R]{
		OnlyInA: matching.OnlyInA,
		OnlyInB: matching.OnlyInB,
	}

	for _, name := range matching.OnlyInA {
		log.WithField("document", name).Warn("Document only in first collection, skipped")
	}
	for _, name := range matching.OnlyInB {
		log.WithField("document", name).Warn("Document only in second collection, skipped")
	}

	if len(matching.Pairs) == 0 {
		batch.Status = StatusNoMatches
		log.Warn(StatusNoMatches)
		return batch, nil
	}

	log.WithFields(logrus.Fields{
		"documents": len(matching.Pairs),
		"strategy":  o.strategy.Name(),
		"workers":   o.workers,
	}).Info("Starting comparison")

	// 各組の結果はインデックスごとのスロットに一度だけ書き込む
	n := len(matching.Pairs)
	results := make([]R, n)
	failures := make([]error, n)

	err := utils.RunIndexed(ctx, n, o.workers, func(i int) error {
		pair := matching.Pairs[i]
		r, err := o.strategy.ComparePair(ctx, pair)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failures[i] = err
			log.WithError(err).WithField("document", pair.Name).Error("Comparison failed")
			return nil
		}
		results[i] = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch run interrupted: %w", err)
	}

	for i, pair := range matching.Pairs {
		if failures[i] != nil {
			batch.Failures = append(batch.Failures, asDocumentError(pair.Name, failures[i]))
			continue
		}
		batch.Results = append(batch.Results, results[i])
	}

	batch.Status = fmt.Sprintf("Compared %d of %d matching documents (%d failed).",
		len(batch.Results), n, len(batch.Failures))

	log.WithFields(logrus.Fields{
		"compared": len(batch.Results),
		"failed":   len(batch.Failures),
		"elapsed":  time.Since(startTime).String(),
	}).Info("Comparison finished")

	return batch, nil
}

// asDocumentError はエラーをドキュメント名付きの DocumentError にそろえる
func asDocumentError(name string, err error) *DocumentError {
	var de *DocumentError
	if errors.As(err, &de) {
		return de
	}
	return &DocumentError{Document: name, Err: err}
}
