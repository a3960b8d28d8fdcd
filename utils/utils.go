package utils

import (
	"os"
	"sort"
	"strconv"
	"strings"
)

// Min は2つの整数のうち小さい方を返す
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max は2つの整数のうち大きい方を返す
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clamp は値を指定範囲内に制限する
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// AbsInt は整数の絶対値を返す
func AbsInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// GetEnvOrDefault は環境変数の値を取得し、設定されていない場合はデフォルト値を返す
func GetEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvIntOrDefault は環境変数を整数として取得する
// 未設定または数値として解釈できない場合はデフォルト値を返す
func GetEnvIntOrDefault(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

// SortedIntersection は両方に含まれる名前を辞書順で返す（大文字小文字は区別する）
func SortedIntersection(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, name := range b {
		inB[name] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a))
	var result []string
	for _, name := range a {
		if _, ok := inB[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// SortedDifference は a にのみ含まれる名前を辞書順で返す
func SortedDifference(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, name := range b {
		inB[name] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a))
	var result []string
	for _, name := range a {
		if _, ok := inB[name]; ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// SplitList はカンマ区切りの文字列を空要素を除いたスライスに分割する
func SplitList(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
