package structdiff

import (
	"encoding/json"
)

// Record は1組のドキュメントの構造比較の結果
type Record struct {
	Name        string
	SourceA     string
	SourceB     string
	Differences Differences
}

type recordJSON struct {
	SourceA     string      `json:"source_a"`
	SourceB     string      `json:"source_b"`
	Differences interface{} `json:"differences"`
}

// HasDifferences は差分があるかを返す
func (r *Record) HasDifferences() bool {
	return !r.Differences.Empty()
}

// MarshalJSON は差分が無い場合 differences を NoDifferences の文字列にする
func (r *Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{SourceA: r.SourceA, SourceB: r.SourceB}
	if r.HasDifferences() {
		out.Differences = r.Differences
	} else {
		out.Differences = NoDifferences
	}
	return json.Marshal(out)
}
