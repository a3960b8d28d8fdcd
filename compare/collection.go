package compare

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xshoji/go-doc-diff/utils"
)

// Collection は比較対象のドキュメント群。名前（ファイル名）からパスを引く
type Collection struct {
	Root   string
	Single bool // ファイルが直接指定された場合 true
	Docs   map[string]string
}

// LoadCollection はディレクトリ（直下のみ）またはファイル1つからコレクションを作る
// accept が false を返すファイルは対象外
func LoadCollection(path string, accept func(name string) bool) (*Collection, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}

	if !info.IsDir() {
		return &Collection{
			Root:   filepath.Dir(path),
			Single: true,
			Docs:   map[string]string{filepath.Base(path): path},
		}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	c := &Collection{Root: path, Docs: make(map[string]string)}
	for _, e := range entries {
		if e.IsDir() || (accept != nil && !accept(e.Name())) {
			continue
		}
		c.Docs[e.Name()] = filepath.Join(path, e.Name())
	}
	return c, nil
}

// Names はドキュメント名を辞書順で返す
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.Docs))
	for name := range c.Docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DocumentPair は比較する1組のドキュメント
type DocumentPair struct {
	Name  string
	PathA string
	PathB string
}

// Matching は2つのコレクションの突き合わせ結果
type Matching struct {
	Pairs   []DocumentPair // 名前の辞書順
	OnlyInA []string
	OnlyInB []string
}

// MatchCollections は両方にある名前（大文字小文字を区別）を辞書順に組にする
// 両方ともファイルが直接指定された場合は名前に関係なく1組にする
func MatchCollections(a, b *Collection) Matching {
	if a.Single && b.Single {
		nameA, nameB := a.Names()[0], b.Names()[0]
		name := nameA
		if nameA != nameB {
			name = nameA + " vs " + nameB
		}
		return Matching{Pairs: []DocumentPair{{Name: name, PathA: a.Docs[nameA], PathB: b.Docs[nameB]}}}
	}

	namesA, namesB := a.Names(), b.Names()
	m := Matching{
		OnlyInA: utils.SortedDifference(namesA, namesB),
		OnlyInB: utils.SortedDifference(namesB, namesA),
	}
	for _, name := range utils.SortedIntersection(namesA, namesB) {
		m.Pairs = append(m.Pairs, DocumentPair{Name: name, PathA: a.Docs[name], PathB: b.Docs[name]})
	}
	return m
}
