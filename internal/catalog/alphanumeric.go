// Package catalog 目录领域的纯函数：标签排序与分组、分页窗口、分类树。
package catalog

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// NumericValue 返回名称中第一个数值（小数点或逗号皆可），没有数值时 ok 为 false。
// 例如 "0,8 т" 得到 0.8，"Л-12.5" 得到 12.5。
func NumericValue(name string) (float64, bool) {
	runes := []rune(name)
	for i := 0; i < len(runes); i++ {
		if !unicode.IsDigit(runes[i]) {
			continue
		}
		j := i
		seenSeparator := false
		for j < len(runes) {
			r := runes[j]
			if unicode.IsDigit(r) {
				j++
				continue
			}
			if (r == '.' || r == ',') && !seenSeparator && j+1 < len(runes) && unicode.IsDigit(runes[j+1]) {
				seenSeparator = true
				j++
				continue
			}
			break
		}
		raw := strings.ReplaceAll(string(runes[i:j]), ",", ".")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(value, 0) {
			return 0, false
		}
		return value, true
	}
	return 0, false
}

// CompareAlphanumeric 字母数字比较：带数值的名称按数值升序排在前面，
// 数值相同或都没有数值时按名称（不区分大小写）比较。
func CompareAlphanumeric(a, b string) int {
	av, aok := NumericValue(a)
	bv, bok := NumericValue(b)
	switch {
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	case aok && bok && av != bv:
		if av < bv {
			return -1
		}
		return 1
	}
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
