// Package gravity 提供文本在矩形区域内的对齐方式（Gravity）
//
// 取值与 Android 平台的 Gravity 常量保持一致，方便直接使用布局属性中的整数值。
// 水平分量和垂直分量各占独立的位段，可以用按位或组合：
//
//	gravity.Start | gravity.CenterVertical
//
// Start/End 属于相对方向，需要结合布局方向通过 Absolute() 转换为 Left/Right。
package gravity

import (
	"fmt"
	"strings"
)

// Gravity 对齐方式位标志
type Gravity int

const (
	// NoGravity 未指定对齐
	NoGravity Gravity = 0x0000

	axisSpecified  = 0x0001
	axisPullBefore = 0x0002
	axisPullAfter  = 0x0004
	axisXShift     = 0
	axisYShift     = 4

	// relativeLayoutDirection 标记水平分量为相对方向（Start/End）
	relativeLayoutDirection Gravity = 0x00800000
)

// 水平对齐
const (
	Left             Gravity = (axisPullBefore | axisSpecified) << axisXShift
	Right            Gravity = (axisPullAfter | axisSpecified) << axisXShift
	CenterHorizontal Gravity = axisSpecified << axisXShift
	Start                    = relativeLayoutDirection | Left
	End                      = relativeLayoutDirection | Right
)

// 垂直对齐
const (
	Top            Gravity = (axisPullBefore | axisSpecified) << axisYShift
	Bottom         Gravity = (axisPullAfter | axisSpecified) << axisYShift
	CenterVertical Gravity = axisSpecified << axisYShift
)

// 组合与掩码
const (
	Center Gravity = CenterVertical | CenterHorizontal

	// HorizontalMask 绝对水平分量掩码
	HorizontalMask Gravity = (axisSpecified | axisPullBefore | axisPullAfter) << axisXShift
	// VerticalMask 垂直分量掩码
	VerticalMask Gravity = (axisSpecified | axisPullBefore | axisPullAfter) << axisYShift
	// RelativeHorizontalMask 包含相对方向标志的水平分量掩码
	RelativeHorizontalMask = Start | End
)

// Vertical 返回垂直分量（Top / Bottom / CenterVertical 或 0）
func (g Gravity) Vertical() Gravity { return g & VerticalMask }

// Horizontal 返回绝对水平分量（Left / Right / CenterHorizontal 或 0）
//
// 对于 Start/End，需要先调用 Absolute() 解析方向。
func (g Gravity) Horizontal() Gravity { return g & HorizontalMask }

// IsRelative 是否包含 Start/End 相对方向
func (g Gravity) IsRelative() bool { return g&relativeLayoutDirection != 0 }

// Absolute 将 Start/End 解析为 Left/Right
//
// 参数:
//   - rtl: 布局方向是否为从右到左
//
// 返回:
//   - Gravity: 不含相对方向标志的对齐方式
func (g Gravity) Absolute(rtl bool) Gravity {
	result := g
	if result&relativeLayoutDirection == 0 {
		return result
	}

	if result&Start == Start {
		result &^= Start
		if rtl {
			result |= Right
		} else {
			result |= Left
		}
	} else if result&End == End {
		result &^= End
		if rtl {
			result |= Left
		} else {
			result |= Right
		}
	}
	return result &^ relativeLayoutDirection
}

// names 属性字符串中可用的标志名
var names = map[string]Gravity{
	"top":               Top,
	"bottom":            Bottom,
	"left":              Left,
	"right":             Right,
	"start":             Start,
	"end":               End,
	"center_vertical":   CenterVertical,
	"center_horizontal": CenterHorizontal,
	"center":            Center,
	"no_gravity":        NoGravity,
}

// Parse 解析 "start|center_vertical" 形式的对齐字符串
//
// 标志名不区分大小写，允许两侧带空格。空字符串返回 NoGravity。
func Parse(s string) (Gravity, error) {
	var g Gravity
	s = strings.TrimSpace(s)
	if s == "" {
		return NoGravity, nil
	}

	for _, part := range strings.Split(s, "|") {
		name := strings.ToLower(strings.TrimSpace(part))
		flag, ok := names[name]
		if !ok {
			return NoGravity, fmt.Errorf("unknown gravity flag %q in %q", part, s)
		}
		g |= flag
	}
	return g, nil
}

// String 返回可以被 Parse 解析回来的表示
func (g Gravity) String() string {
	if g == NoGravity {
		return "no_gravity"
	}

	var parts []string
	switch {
	case g&Start == Start:
		parts = append(parts, "start")
	case g&End == End:
		parts = append(parts, "end")
	case g.Horizontal() == Left:
		parts = append(parts, "left")
	case g.Horizontal() == Right:
		parts = append(parts, "right")
	case g.Horizontal() == CenterHorizontal:
		parts = append(parts, "center_horizontal")
	}

	switch g.Vertical() {
	case Top:
		parts = append(parts, "top")
	case Bottom:
		parts = append(parts, "bottom")
	case CenterVertical:
		parts = append(parts, "center_vertical")
	}

	if len(parts) == 0 {
		return fmt.Sprintf("gravity(%#x)", int(g))
	}
	return strings.Join(parts, "|")
}
