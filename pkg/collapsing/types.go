package collapsing

import (
	"image/color"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/colors"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/typeface"
)

// Slot 文本槽位
type Slot int

const (
	Title Slot = iota
	Subtitle

	slotCount
)

// String 返回槽位名称
func (s Slot) String() string {
	if s == Subtitle {
		return "subtitle"
	}
	return "title"
}

// Tier 布局状态（展开 / 折叠）
type Tier int

const (
	Expanded Tier = iota
	Collapsed

	tierCount
)

// String 返回状态名称
func (t Tier) String() string {
	if t == Collapsed {
		return "collapsed"
	}
	return "expanded"
}

// Shadow 文字阴影，只作用于标题
type Shadow struct {
	Radius float64
	DX     float64
	DY     float64
	Color  color.NRGBA
}

// Appearance 某个槽位在某个状态下的外观
//
// Color 的动态类型必须可比较（colors.Solid 或 *colors.StateList）。
type Appearance struct {
	Size     float64
	Color    colors.ColorSet
	Typeface *typeface.Typeface
	Shadow   Shadow
}

func (a Appearance) equal(b Appearance) bool {
	return a.Size == b.Size &&
		a.Typeface == b.Typeface &&
		a.Shadow == b.Shadow &&
		a.Color == b.Color
}

// Metrics 字体度量，Ascent 与 Descent 均为正值
//
// Ascent 是基线以上的高度，Descent 是基线以下的深度。
type Metrics struct {
	Ascent  float64
	Descent float64
}

// Height 行高
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent
}

// Measurer 文本测量能力
type Measurer interface {
	// Advance 返回文本在指定字体和字号下的排版宽度
	Advance(s string, tf *typeface.Typeface, size float64) float64
	// Metrics 返回指定字体和字号的度量
	Metrics(tf *typeface.Typeface, size float64) Metrics
}

// Paint 一帧内某个槽位的绘制参数
type Paint struct {
	Typeface *typeface.Typeface
	Size     float64
	Color    color.NRGBA
	Shadow   Shadow
}

// Texture 离屏纹理
//
// 纹理以白色绘制字形，绘制时再用 Paint.Color 着色。
type Texture interface {
	Size() (width, height int)
	// Deallocate 立即释放底层像素缓冲
	Deallocate()
}

// TextureFactory 创建离屏纹理
type TextureFactory interface {
	// NewTexture 创建 width x height 的纹理，并以自然尺寸在 baseline 处绘制 s
	NewTexture(width, height int, s string, baseline float64, paint Paint) Texture
}

// Canvas 绘制目标
//
// Save/Restore 维护变换栈，Scale 以 (px, py) 为中心缩放后续绘制。
type Canvas interface {
	Save()
	Restore()
	Scale(sx, sy, px, py float64)
	// DrawText 以 (x, baseline) 为起点绘制文本
	DrawText(s string, x, baseline float64, paint Paint)
	// DrawTexture 以 (x, y) 为左上角绘制纹理
	DrawTexture(tex Texture, x, y float64, paint Paint)
}

// Host 宿主视图
type Host interface {
	Width() int
	Height() int
	// PostInvalidate 请求在下一帧重绘
	PostInvalidate()
}

// RectF 浮点矩形
type RectF struct {
	Left, Top, Right, Bottom float64
}

// Width 宽度
func (r RectF) Width() float64 { return r.Right - r.Left }

// Height 高度
func (r RectF) Height() float64 { return r.Bottom - r.Top }

// CenterX 水平中心
func (r RectF) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY 垂直中心
func (r RectF) CenterY() float64 { return (r.Top + r.Bottom) / 2 }
