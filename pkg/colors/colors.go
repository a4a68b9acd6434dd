// Package colors 提供随视图状态变化的颜色集合
//
// 视图在按下、获得焦点等状态下可以使用不同的文字颜色。
// ColorSet 抽象了"根据当前状态解析出具体颜色"这一能力：
//   - Solid: 与状态无关的单一颜色
//   - StateList: 按顺序匹配状态规格的颜色列表（第一个匹配的条目生效）
package colors

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// State 视图状态
type State int

const (
	Pressed State = iota + 1
	Focused
	Selected
	Enabled
	Activated
	Hovered
	Checked
)

var stateNames = map[string]State{
	"pressed":   Pressed,
	"focused":   Focused,
	"selected":  Selected,
	"enabled":   Enabled,
	"activated": Activated,
	"hovered":   Hovered,
	"checked":   Checked,
}

// ParseState 解析状态名（如 "pressed"）
func ParseState(name string) (State, error) {
	s, ok := stateNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown view state %q", name)
	}
	return s, nil
}

// String 返回状态名
func (s State) String() string {
	for name, v := range stateNames {
		if v == s {
			return name
		}
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// StateSet 视图当前所处的状态集合
type StateSet []State

// Has 是否包含指定状态
func (set StateSet) Has(s State) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// ColorSet 可根据视图状态解析颜色的颜色集合
type ColorSet interface {
	// ColorForState 返回指定状态下的颜色，没有匹配的条目时返回 DefaultColor()
	ColorForState(states StateSet) color.NRGBA
	// DefaultColor 无状态信息时使用的颜色
	DefaultColor() color.NRGBA
	// IsStateful 颜色是否会随状态变化
	IsStateful() bool
}

// Resolve 解析颜色；states 为 nil 时使用默认颜色，cs 为 nil 时返回不透明黑色
func Resolve(cs ColorSet, states StateSet) color.NRGBA {
	if cs == nil {
		return color.NRGBA{A: 0xff}
	}
	if states == nil {
		return cs.DefaultColor()
	}
	return cs.ColorForState(states)
}

// Solid 与状态无关的单一颜色
type Solid color.NRGBA

// ColorForState 实现 ColorSet
func (c Solid) ColorForState(StateSet) color.NRGBA { return color.NRGBA(c) }

// DefaultColor 实现 ColorSet
func (c Solid) DefaultColor() color.NRGBA { return color.NRGBA(c) }

// IsStateful 实现 ColorSet
func (c Solid) IsStateful() bool { return false }

// StateSpec 单个状态规格
//
// Negated 为 true 表示要求视图不处于该状态（属性中写作 "-pressed"）。
type StateSpec struct {
	State   State
	Negated bool
}

// StateEntry 状态列表中的一项：所有规格都满足时使用 Color
type StateEntry struct {
	Specs []StateSpec
	Color color.NRGBA
}

func (e StateEntry) matches(states StateSet) bool {
	for _, spec := range e.Specs {
		if states.Has(spec.State) == spec.Negated {
			return false
		}
	}
	return true
}

// StateList 状态颜色列表
//
// 条目按声明顺序匹配，规格为空的条目匹配任意状态，通常放在最后作为默认值。
type StateList struct {
	entries      []StateEntry
	defaultColor color.NRGBA
}

// NewStateList 创建状态颜色列表
//
// 默认颜色取自第一个不带状态规格的条目；若没有则使用第一项的颜色。
func NewStateList(entries ...StateEntry) *StateList {
	l := &StateList{entries: entries, defaultColor: color.NRGBA{A: 0xff}}
	for _, e := range entries {
		if len(e.Specs) == 0 {
			l.defaultColor = e.Color
			return l
		}
	}
	if len(entries) > 0 {
		l.defaultColor = entries[0].Color
	}
	return l
}

// ColorForState 实现 ColorSet
func (l *StateList) ColorForState(states StateSet) color.NRGBA {
	for _, e := range l.entries {
		if e.matches(states) {
			return e.Color
		}
	}
	return l.defaultColor
}

// DefaultColor 实现 ColorSet
func (l *StateList) DefaultColor() color.NRGBA { return l.defaultColor }

// IsStateful 实现 ColorSet：至少有一个条目带状态规格
func (l *StateList) IsStateful() bool {
	for _, e := range l.entries {
		if len(e.Specs) > 0 {
			return true
		}
	}
	return false
}

// Entries 返回条目副本
func (l *StateList) Entries() []StateEntry {
	out := make([]StateEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Blend 按比例混合两种颜色
//
// 在 0-255 整数空间按通道线性插值，ratio=0 返回 c1，ratio=1 返回 c2。
func Blend(c1, c2 color.NRGBA, ratio float64) color.NRGBA {
	inverse := 1 - ratio
	mix := func(a, b uint8) uint8 {
		v := math.Round(float64(a)*inverse + float64(b)*ratio)
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return color.NRGBA{
		R: mix(c1.R, c2.R),
		G: mix(c1.G, c2.G),
		B: mix(c1.B, c2.B),
		A: mix(c1.A, c2.A),
	}
}

// ParseHex 解析 "#RGB"、"#RRGGBB" 或 "#AARRGGBB" 格式的颜色
//
// 与平台资源一致，8 位格式的透明度在前。
func ParseHex(s string) (color.NRGBA, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(raw) {
	case 3:
		raw = "ff" + string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	case 6:
		raw = "ff" + raw
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected #RGB, #RRGGBB or #AARRGGBB", s)
	}

	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// Hex 返回 "#AARRGGBB" 表示
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}
