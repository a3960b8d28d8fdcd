package structdiff

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/wI2L/jsondiff"
)

// 変更の分類
const (
	CategoryAdded   = "added"
	CategoryRemoved = "removed"
	CategoryChanged = "changed"
)

// NoDifferences は差分が無い場合に differences に入る文字列
const NoDifferences = "no differences found"

// Change は1つのパスの変更前後の値
// 値が null の場合と値が無い場合を区別するため HasOld / HasNew を持つ
type Change struct {
	Old    interface{}
	New    interface{}
	HasOld bool
	HasNew bool
}

// oldValue は削除された値の Change を返す
func oldValue(v interface{}) Change {
	return Change{Old: v, HasOld: true}
}

// newValue は追加された値の Change を返す
func newValue(v interface{}) Change {
	return Change{New: v, HasNew: true}
}

// replaced は置き換えられた値の Change を返す
func replaced(before, after interface{}) Change {
	return Change{Old: before, New: after, HasOld: true, HasNew: true}
}

// MarshalJSON は存在する側だけを old_value / new_value として出力する（null も出力する）
func (c Change) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, 2)
	if c.HasOld {
		out["old_value"] = c.Old
	}
	if c.HasNew {
		out["new_value"] = c.New
	}
	return json.Marshal(out)
}

// Differences は分類名 → 構造パス（JSON Pointer） → 変更
type Differences map[string]map[string]Change

// Empty は差分が無いかを返す
func (d Differences) Empty() bool {
	for _, changes := range d {
		if len(changes) > 0 {
			return false
		}
	}
	return true
}

func (d Differences) add(category, path string, c Change) {
	if d[category] == nil {
		d[category] = make(map[string]Change)
	}
	d[category][path] = c
}

// Diff は2つの木の差分を分類ごとにまとめる
func Diff(a, b Tree) (Differences, error) {
	// 数値型などをJSONの表現にそろえてから比較する
	source, err := normalize(a)
	if err != nil {
		return nil, err
	}
	target, err := normalize(b)
	if err != nil {
		return nil, err
	}

	patch, err := jsondiff.Compare(source, target)
	if err != nil {
		return nil, fmt.Errorf("failed to compare document models: %w", err)
	}

	diffs := make(Differences)
	for _, op := range patch {
		switch op.Type {
		case jsondiff.OperationAdd:
			diffs.add(CategoryAdded, op.Path, newValue(op.Value))
		case jsondiff.OperationRemove:
			diffs.add(CategoryRemoved, op.Path, oldValue(resolvePointer(source, op.Path)))
		case jsondiff.OperationReplace:
			diffs.add(CategoryChanged, op.Path, replaced(resolvePointer(source, op.Path), op.Value))
		}
	}
	return diffs, nil
}

// normalize は JSON に一度変換して汎用の値に戻す
func normalize(t Tree) (interface{}, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document model: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode document model: %w", err)
	}
	return v, nil
}

// resolvePointer は JSON Pointer (RFC 6901) が指す値を返す。見つからなければ nil
func resolvePointer(doc interface{}, pointer string) interface{} {
	if pointer == "" {
		return doc
	}
	cur := doc
	for _, token := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		switch node := cur.(type) {
		case map[string]interface{}:
			v, ok := node[token]
			if !ok {
				return nil
			}
			cur = v
		case []interface{}:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			cur = node[i]
		default:
			return nil
		}
	}
	return cur
}
