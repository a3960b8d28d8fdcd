package utils

import (
	"context"
	"sync"
)

// RunIndexed は 0..n-1 の各インデックスについて fn をワーカープールで実行する
// 結果は呼び出し側がインデックスごとのスロットに書き込むことで順序を保つ
// ctx がキャンセルされると新しいインデックスの投入をやめ、ctx.Err() を返す
func RunIndexed(ctx context.Context, n, workers int, fn func(i int) error) error {
	if n == 0 {
		return ctx.Err()
	}

	// ワーカー数を決定（処理数を超えないように）
	numWorkers := Clamp(workers, 1, n)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	indexCh := make(chan int)

	// ワーカーを起動
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexCh {
				if err := fn(i); err != nil {
					once.Do(func() { firstErr = err })
				}
			}
		}()
	}

	// インデックスを送信
dispatch:
	for i := 0; i < n && ctx.Err() == nil; i++ {
		select {
		case <-ctx.Done():
			break dispatch
		case indexCh <- i:
		}
	}
	close(indexCh)

	// すべてのワーカーが完了するまで待機
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
