package utils

import (
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/bidi"
)

// Ellipsis 截断时追加的省略号
const Ellipsis = "…"

// EllipsizeEnd 在末尾截断文本使其宽度不超过 avail
//
// 参数:
//   - textStr: 原文本
//   - avail: 可用宽度（像素）
//   - measure: 宽度测量函数
//
// 返回:
//   - string: 原文本（放得下时）、截断后追加省略号的文本，或空字符串（连省略号都放不下时）
//
// 截断只发生在字素簇边界上，不会拆开组合字符或 emoji 序列。
// 返回值的测量宽度保证不超过 avail。
func EllipsizeEnd(textStr string, avail float64, measure func(string) float64) string {
	if textStr == "" {
		return ""
	}
	if measure(textStr) <= avail {
		return textStr
	}
	if avail <= 0 || measure(Ellipsis) > avail {
		return ""
	}

	// 记录每个字素簇的结束位置
	var ends []int
	state := -1
	rest := textStr
	offset := 0
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
		ends = append(ends, offset)
	}

	fits := func(n int) bool {
		if n == 0 {
			return true
		}
		return measure(textStr[:ends[n-1]]+Ellipsis) <= avail
	}

	// 二分查找能放下的最多字素簇数量
	lo, hi := 0, len(ends)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	// 字距调整可能让宽度不严格单调，这里再向下校正一次
	for lo > 0 && !fits(lo) {
		lo--
	}
	if lo == 0 {
		return Ellipsis
	}
	return textStr[:ends[lo-1]] + Ellipsis
}

// IsRTL 按"第一个强方向字符"规则判断文本方向
//
// 参数:
//   - textStr: 要判断的文本
//   - defaultRTL: 文本中没有强方向字符时使用的方向（通常是视图的布局方向）
func IsRTL(textStr string, defaultRTL bool) bool {
	for _, r := range textStr {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return false
		case bidi.R, bidi.AL:
			return true
		}
	}
	return defaultRTL
}
