package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/colors"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/gravity"
)

// 默认值（像素）
const (
	DefaultExpandedTitleMargin    = 32
	DefaultScrimAnimationDuration = 600
	DefaultToolbarHeight          = 56
	DefaultToolbarTitleMargin     = 16

	// ScrimTriggerAuto 表示按工具栏高度自动计算遮罩触发高度
	ScrimTriggerAuto = -1
)

// 内置文字外观名称
const (
	AppearanceExpandedTitle     = "TextAppearance.Design.CollapsingToolbar.Expanded"
	AppearanceCollapsedTitle    = "TextAppearance.AppCompat.Widget.ActionBar.Title"
	AppearanceExpandedSubtitle  = "TextAppearance.Design.CollapsingToolbar.Expanded.Subtitle"
	AppearanceCollapsedSubtitle = "TextAppearance.AppCompat.Widget.ActionBar.Subtitle"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

var builtinAppearances = map[string]TextAppearance{
	AppearanceExpandedTitle: {
		TextSize:  34,
		TextColor: ColorValue{set: colors.Solid(white)},
	},
	AppearanceCollapsedTitle: {
		TextSize:   20,
		TextColor:  ColorValue{set: colors.Solid(white)},
		FontFamily: "sans-serif-medium",
	},
	AppearanceExpandedSubtitle: {
		TextSize:  18,
		TextColor: ColorValue{set: colors.Solid(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb3})},
	},
	AppearanceCollapsedSubtitle: {
		TextSize:  14,
		TextColor: ColorValue{set: colors.Solid(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb3})},
	},
}

// Attributes 折叠标题栏属性配置
//
// 配置文件位置: data/collapsing_toolbar.yaml
// 未出现在文件中的字段保留 DefaultAttributes 中的默认值。
type Attributes struct {
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	TitleEnabled bool   `yaml:"titleEnabled"`

	// ExpandedTitleGravity 展开状态对齐方式，如 "start|bottom"
	ExpandedTitleGravity string `yaml:"expandedTitleGravity"`
	// CollapsedTitleGravity 折叠状态对齐方式，如 "start|center_vertical"
	CollapsedTitleGravity string `yaml:"collapsedTitleGravity"`

	// ExpandedTitleMargin 四边统一边距，单边设置优先
	ExpandedTitleMargin       int  `yaml:"expandedTitleMargin"`
	ExpandedTitleMarginStart  *int `yaml:"expandedTitleMarginStart"`
	ExpandedTitleMarginTop    *int `yaml:"expandedTitleMarginTop"`
	ExpandedTitleMarginEnd    *int `yaml:"expandedTitleMarginEnd"`
	ExpandedTitleMarginBottom *int `yaml:"expandedTitleMarginBottom"`

	ExpandedTitleTextAppearance     string `yaml:"expandedTitleTextAppearance"`
	CollapsedTitleTextAppearance    string `yaml:"collapsedTitleTextAppearance"`
	ExpandedSubtitleTextAppearance  string `yaml:"expandedSubtitleTextAppearance"`
	CollapsedSubtitleTextAppearance string `yaml:"collapsedSubtitleTextAppearance"`

	// ContentScrim 内容遮罩颜色 "#AARRGGBB"，为空表示没有遮罩
	ContentScrim string `yaml:"contentScrim"`
	// StatusBarScrim 状态栏遮罩颜色
	StatusBarScrim string `yaml:"statusBarScrim"`

	ToolbarID string `yaml:"toolbarId"`

	// ScrimVisibleHeightTrigger 可见高度低于该值时显示遮罩，-1 为自动
	ScrimVisibleHeightTrigger int `yaml:"scrimVisibleHeightTrigger"`
	// ScrimAnimationDuration 遮罩渐变时长（毫秒）
	ScrimAnimationDuration int `yaml:"scrimAnimationDuration"`

	TextAppearances map[string]TextAppearance `yaml:"textAppearances"`

	// Fonts 字体族名称 -> 字体文件路径
	Fonts map[string]string `yaml:"fonts"`

	Toolbar ToolbarConfig `yaml:"toolbar"`
}

// ToolbarConfig 折叠后固定在顶部的工具栏
type ToolbarConfig struct {
	Height           int `yaml:"height"`
	TitleMarginStart int `yaml:"titleMarginStart"`
	TitleMarginEnd   int `yaml:"titleMarginEnd"`
}

// TextAppearance 文字外观
type TextAppearance struct {
	TextSize     float64    `yaml:"textSize"`
	TextColor    ColorValue `yaml:"textColor"`
	FontFamily   string     `yaml:"fontFamily"`
	ShadowRadius float64    `yaml:"shadowRadius"`
	ShadowDx     float64    `yaml:"shadowDx"`
	ShadowDy     float64    `yaml:"shadowDy"`
	ShadowColor  string     `yaml:"shadowColor"`
}

// ShadowNRGBA 返回阴影颜色，未设置时为透明
func (a TextAppearance) ShadowNRGBA() (color.NRGBA, error) {
	if a.ShadowColor == "" {
		return color.NRGBA{}, nil
	}
	return colors.ParseHex(a.ShadowColor)
}

// DefaultAttributes 返回默认属性
func DefaultAttributes() *Attributes {
	return &Attributes{
		TitleEnabled:                    true,
		ExpandedTitleGravity:            "start|bottom",
		CollapsedTitleGravity:           "start|center_vertical",
		ExpandedTitleMargin:             DefaultExpandedTitleMargin,
		ExpandedTitleTextAppearance:     AppearanceExpandedTitle,
		CollapsedTitleTextAppearance:    AppearanceCollapsedTitle,
		ExpandedSubtitleTextAppearance:  AppearanceExpandedSubtitle,
		CollapsedSubtitleTextAppearance: AppearanceCollapsedSubtitle,
		ScrimVisibleHeightTrigger:       ScrimTriggerAuto,
		ScrimAnimationDuration:          DefaultScrimAnimationDuration,
		Toolbar: ToolbarConfig{
			Height:           DefaultToolbarHeight,
			TitleMarginStart: DefaultToolbarTitleMargin,
			TitleMarginEnd:   DefaultToolbarTitleMargin,
		},
	}
}

// LoadAttributes 加载属性配置
//
// 参数:
//   - path: 配置文件路径（如 "data/collapsing_toolbar.yaml"）
//
// 返回:
//   - *Attributes: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadAttributes(path string) (*Attributes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attributes %s: %w", path, err)
	}
	attrs, err := ParseAttributes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return attrs, nil
}

// ParseAttributes 在默认属性之上解析 YAML 并验证
func ParseAttributes(data []byte) (*Attributes, error) {
	attrs := DefaultAttributes()
	if err := yaml.Unmarshal(data, attrs); err != nil {
		return nil, fmt.Errorf("failed to parse attributes: %w", err)
	}
	if err := attrs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid attributes: %w", err)
	}
	return attrs, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 对齐方式可以解析
//   - 边距、工具栏尺寸和遮罩时长不为负
//   - 引用的文字外观存在，字号不为负，颜色可以解析
//   - 遮罩颜色可以解析
func (a *Attributes) Validate() error {
	if _, err := gravity.Parse(a.ExpandedTitleGravity); err != nil {
		return fmt.Errorf("expandedTitleGravity: %w", err)
	}
	if _, err := gravity.Parse(a.CollapsedTitleGravity); err != nil {
		return fmt.Errorf("collapsedTitleGravity: %w", err)
	}

	start, top, end, bottom := a.ExpandedMargins()
	for name, v := range map[string]int{"start": start, "top": top, "end": end, "bottom": bottom} {
		if v < 0 {
			return fmt.Errorf("expandedTitleMargin %s should be >= 0, got %d", name, v)
		}
	}

	if a.ScrimAnimationDuration < 0 {
		return fmt.Errorf("scrimAnimationDuration should be >= 0, got %d", a.ScrimAnimationDuration)
	}
	if a.ScrimVisibleHeightTrigger < ScrimTriggerAuto {
		return fmt.Errorf("scrimVisibleHeightTrigger should be >= -1, got %d", a.ScrimVisibleHeightTrigger)
	}
	if a.Toolbar.Height < 0 || a.Toolbar.TitleMarginStart < 0 || a.Toolbar.TitleMarginEnd < 0 {
		return fmt.Errorf("toolbar dimensions should be >= 0, got %+v", a.Toolbar)
	}

	for _, scrim := range []struct{ name, value string }{
		{"contentScrim", a.ContentScrim},
		{"statusBarScrim", a.StatusBarScrim},
	} {
		if scrim.value == "" {
			continue
		}
		if _, err := colors.ParseHex(scrim.value); err != nil {
			return fmt.Errorf("%s: %w", scrim.name, err)
		}
	}

	for _, ref := range []struct{ attr, name string }{
		{"expandedTitleTextAppearance", a.ExpandedTitleTextAppearance},
		{"collapsedTitleTextAppearance", a.CollapsedTitleTextAppearance},
		{"expandedSubtitleTextAppearance", a.ExpandedSubtitleTextAppearance},
		{"collapsedSubtitleTextAppearance", a.CollapsedSubtitleTextAppearance},
	} {
		ta, ok := a.Appearance(ref.name)
		if !ok {
			return fmt.Errorf("%s: unknown text appearance '%s'", ref.attr, ref.name)
		}
		if ta.TextSize < 0 {
			return fmt.Errorf("text appearance '%s': textSize should be >= 0, got %.1f", ref.name, ta.TextSize)
		}
		if _, err := ta.ShadowNRGBA(); err != nil {
			return fmt.Errorf("text appearance '%s': shadowColor: %w", ref.name, err)
		}
	}

	return nil
}

// ExpandedMargins 返回展开标题的四边边距，单边设置覆盖统一边距
func (a *Attributes) ExpandedMargins() (start, top, end, bottom int) {
	pick := func(p *int) int {
		if p != nil {
			return *p
		}
		return a.ExpandedTitleMargin
	}
	return pick(a.ExpandedTitleMarginStart), pick(a.ExpandedTitleMarginTop),
		pick(a.ExpandedTitleMarginEnd), pick(a.ExpandedTitleMarginBottom)
}

// Gravities 返回展开和折叠的对齐方式，配置已通过 Validate 时不会出错
func (a *Attributes) Gravities() (expanded, collapsed gravity.Gravity, err error) {
	if expanded, err = gravity.Parse(a.ExpandedTitleGravity); err != nil {
		return 0, 0, err
	}
	if collapsed, err = gravity.Parse(a.CollapsedTitleGravity); err != nil {
		return 0, 0, err
	}
	return expanded, collapsed, nil
}

// Appearance 按名称查找文字外观，先查配置文件，再查内置外观
func (a *Attributes) Appearance(name string) (TextAppearance, bool) {
	if ta, ok := a.TextAppearances[name]; ok {
		return ta, true
	}
	ta, ok := builtinAppearances[name]
	return ta, ok
}

// ScrimColors 返回内容遮罩和状态栏遮罩颜色，未设置时为透明
func (a *Attributes) ScrimColors() (content, statusBar color.NRGBA) {
	if a.ContentScrim != "" {
		content, _ = colors.ParseHex(a.ContentScrim)
	}
	if a.StatusBarScrim != "" {
		statusBar, _ = colors.ParseHex(a.StatusBarScrim)
	}
	return content, statusBar
}

// ColorValue 文字颜色，可以是十六进制字符串或状态颜色列表
//
//	textColor: "#FFFFFFFF"
//	textColor:
//	  - states: [pressed]
//	    color: "#FFFF0000"
//	  - color: "#FFFFFFFF"
type ColorValue struct {
	set colors.ColorSet
}

// NewColorValue 用已有颜色集合构造
func NewColorValue(cs colors.ColorSet) ColorValue {
	return ColorValue{set: cs}
}

// ColorSet 返回颜色集合，未设置时为 nil
func (v ColorValue) ColorSet() colors.ColorSet {
	return v.set
}

// IsSet 是否设置了颜色
func (v ColorValue) IsSet() bool {
	return v.set != nil
}

type stateColorItem struct {
	States []string `yaml:"states"`
	Color  string   `yaml:"color"`
}

// UnmarshalYAML 解析标量或状态列表
func (v *ColorValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		c, err := colors.ParseHex(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		v.set = colors.Solid(c)
		return nil

	case yaml.SequenceNode:
		var items []stateColorItem
		if err := node.Decode(&items); err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("line %d: empty color state list", node.Line)
		}
		entries := make([]colors.StateEntry, 0, len(items))
		for i, item := range items {
			c, err := colors.ParseHex(item.Color)
			if err != nil {
				return fmt.Errorf("line %d: item %d: %w", node.Line, i, err)
			}
			specs, err := parseStateSpecs(item.States)
			if err != nil {
				return fmt.Errorf("line %d: item %d: %w", node.Line, i, err)
			}
			entries = append(entries, colors.StateEntry{Specs: specs, Color: c})
		}
		v.set = colors.NewStateList(entries...)
		return nil

	default:
		return fmt.Errorf("line %d: textColor must be a hex string or a state list", node.Line)
	}
}

// parseStateSpecs 解析 "pressed" 或取反形式 "-pressed" / "!pressed"
func parseStateSpecs(names []string) ([]colors.StateSpec, error) {
	specs := make([]colors.StateSpec, 0, len(names))
	for _, name := range names {
		negated := false
		if len(name) > 0 && (name[0] == '-' || name[0] == '!') {
			negated = true
			name = name[1:]
		}
		s, err := colors.ParseState(name)
		if err != nil {
			return nil, err
		}
		specs = append(specs, colors.StateSpec{State: s, Negated: negated})
	}
	return specs, nil
}
