// Package collapsing 实现可折叠标题栏的文字插值引擎
//
// TextHelper 管理标题和副标题两个文本槽位。每个槽位在展开和折叠两种状态下
// 各有一套外观（字号、颜色、字体、阴影），宿主视图提供两个边界矩形和
// 一个 [0, 1] 的进度值，引擎据此计算每一帧的位置、缩放、颜色和阴影。
//
// 计算分为两层：
//   - 基础偏移：只在边界或外观变化时计算（测量、省略号截断、按对齐方式求锚点）
//   - 当前偏移：每次进度变化时计算（对锚点、字号、颜色、阴影做插值）
//
// 所有方法都应在同一个（UI）goroutine 上调用。
package collapsing

import (
	"image"
	"image/color"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/colors"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/gravity"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/typeface"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/utils"
)

// 默认字号（像素）
const defaultTextSize = 15

// textSlot 单个文本槽位的状态
type textSlot struct {
	text         string
	display      string
	displayValid bool
	rtl          bool

	appearance [tierCount]Appearance

	currentTypeface  *typeface.Typeface
	currentSize      float64
	interpolatedSize float64
	scale            float64
	boundsChanged    bool

	expandedX, expandedY   float64
	collapsedX, collapsedY float64
	currentX, currentY     float64

	color  color.NRGBA
	shadow Shadow

	useTexture     bool
	texture        Texture
	textureAscent  float64
	textureDescent float64
}

// TextHelper 标题/副标题折叠文字引擎
type TextHelper struct {
	host     Host
	measurer Measurer
	textures TextureFactory

	useScalingTexture bool
	drawTitle         bool

	expandedBounds  image.Rectangle
	collapsedBounds image.Rectangle
	currentBounds   RectF

	expandedGravity  gravity.Gravity
	collapsedGravity gravity.Gravity
	layoutRTL        bool

	fraction             float64
	positionInterpolator utils.Interpolator
	sizeInterpolator     utils.Interpolator

	state colors.StateSet
	slots [slotCount]textSlot
}

// Option TextHelper 构造选项
type Option func(*TextHelper)

// WithTextureFactory 设置离屏纹理工厂，未设置时纹理路径不可用
func WithTextureFactory(f TextureFactory) Option {
	return func(h *TextHelper) { h.textures = f }
}

// WithScalingTexture 标记平台缺少硬件加速的缩放文字绘制，
// 字号缩放时改为缩放预渲染的纹理
func WithScalingTexture(enabled bool) Option {
	return func(h *TextHelper) { h.useScalingTexture = enabled }
}

// NewTextHelper 创建文字引擎
//
// 参数:
//   - host: 宿主视图，提供尺寸和重绘调度
//   - measurer: 文本测量能力
//   - opts: 可选配置
func NewTextHelper(host Host, measurer Measurer, opts ...Option) *TextHelper {
	h := &TextHelper{
		host:             host,
		measurer:         measurer,
		expandedGravity:  gravity.CenterVertical,
		collapsedGravity: gravity.CenterVertical,
	}
	for i := range h.slots {
		sl := &h.slots[i]
		sl.scale = 1
		for t := range sl.appearance {
			sl.appearance[t].Size = defaultTextSize
		}
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetExpandedBounds 设置展开状态的文字区域
func (h *TextHelper) SetExpandedBounds(left, top, right, bottom int) {
	h.SetBounds(Expanded, image.Rect(left, top, right, bottom))
}

// SetCollapsedBounds 设置折叠状态的文字区域
func (h *TextHelper) SetCollapsedBounds(left, top, right, bottom int) {
	h.SetBounds(Collapsed, image.Rect(left, top, right, bottom))
}

// SetBounds 设置指定状态的文字区域
//
// 四条边完全相同时不做任何事。边界变化标记脏位并释放纹理，
// 真正的重新计算由宿主在布局完成后调用 Recalculate 触发。
func (h *TextHelper) SetBounds(tier Tier, r image.Rectangle) {
	target := &h.expandedBounds
	if tier == Collapsed {
		target = &h.collapsedBounds
	}
	if *target == r {
		return
	}

	*target = r
	for i := range h.slots {
		h.slots[i].boundsChanged = true
	}
	// 可用宽度变了，下一次进度更新会重新截断文本，旧纹理不能再用
	h.clearTextures()
	h.onBoundsChanged()
}

func (h *TextHelper) onBoundsChanged() {
	h.drawTitle = h.collapsedBounds.Dx() > 0 && h.collapsedBounds.Dy() > 0 &&
		h.expandedBounds.Dx() > 0 && h.expandedBounds.Dy() > 0
}

// ExpandedBounds 返回展开状态的文字区域
func (h *TextHelper) ExpandedBounds() image.Rectangle { return h.expandedBounds }

// CollapsedBounds 返回折叠状态的文字区域
func (h *TextHelper) CollapsedBounds() image.Rectangle { return h.collapsedBounds }

// CurrentBounds 返回按当前进度插值后的文字区域
func (h *TextHelper) CurrentBounds() RectF { return h.currentBounds }

// DrawTitle 两个边界是否都有效（否则不绘制任何内容）
func (h *TextHelper) DrawTitle() bool { return h.drawTitle }

// SetAppearance 设置某个槽位在某个状态下的完整外观
//
// 外观没有变化时不触发重新计算。
func (h *TextHelper) SetAppearance(tier Tier, slot Slot, a Appearance) {
	sl := &h.slots[slot]
	if sl.appearance[tier].equal(a) {
		return
	}
	sl.appearance[tier] = a
	h.Recalculate()
}

// Appearance 返回某个槽位在某个状态下的外观
func (h *TextHelper) Appearance(tier Tier, slot Slot) Appearance {
	return h.slots[slot].appearance[tier]
}

// SetTextSize 设置字号
func (h *TextHelper) SetTextSize(tier Tier, slot Slot, size float64) {
	a := h.slots[slot].appearance[tier]
	a.Size = size
	h.SetAppearance(tier, slot, a)
}

// SetTextColor 设置文字颜色
func (h *TextHelper) SetTextColor(tier Tier, slot Slot, cs colors.ColorSet) {
	a := h.slots[slot].appearance[tier]
	a.Color = cs
	h.SetAppearance(tier, slot, a)
}

// SetTypeface 设置字体
func (h *TextHelper) SetTypeface(tier Tier, slot Slot, tf *typeface.Typeface) {
	a := h.slots[slot].appearance[tier]
	a.Typeface = tf
	h.SetAppearance(tier, slot, a)
}

// SetShadow 设置标题阴影
func (h *TextHelper) SetShadow(tier Tier, shadow Shadow) {
	a := h.slots[Title].appearance[tier]
	a.Shadow = shadow
	h.SetAppearance(tier, Title, a)
}

// SetExpandedGravity 设置展开状态的对齐方式
func (h *TextHelper) SetExpandedGravity(g gravity.Gravity) {
	if h.expandedGravity != g {
		h.expandedGravity = g
		h.Recalculate()
	}
}

// ExpandedGravity 返回展开状态的对齐方式
func (h *TextHelper) ExpandedGravity() gravity.Gravity { return h.expandedGravity }

// SetCollapsedGravity 设置折叠状态的对齐方式
func (h *TextHelper) SetCollapsedGravity(g gravity.Gravity) {
	if h.collapsedGravity != g {
		h.collapsedGravity = g
		h.Recalculate()
	}
}

// CollapsedGravity 返回折叠状态的对齐方式
func (h *TextHelper) CollapsedGravity() gravity.Gravity { return h.collapsedGravity }

// SetLayoutRTL 设置宿主的布局方向
//
// 用于解析 Start/End 对齐，以及文本没有强方向字符时的默认方向。
func (h *TextHelper) SetLayoutRTL(rtl bool) {
	if h.layoutRTL != rtl {
		h.layoutRTL = rtl
		for i := range h.slots {
			h.slots[i].displayValid = false
		}
		h.Recalculate()
	}
}

// SetText 设置槽位文本
//
// 清空已截断的显示文本和离屏纹理；宿主尚未布局时推迟计算。
func (h *TextHelper) SetText(slot Slot, s string) {
	sl := &h.slots[slot]
	if sl.text == s {
		return
	}
	sl.text = s
	sl.display = ""
	sl.displayValid = false
	h.clearTexture(slot)
	h.Recalculate()
}

// Text 返回槽位的原始文本
func (h *TextHelper) Text(slot Slot) string { return h.slots[slot].text }

// SetExpansionFraction 设置折叠进度，0 为完全展开，1 为完全折叠
//
// 超出范围的值会被限制到 [0, 1]。只重新计算每帧插值，不重新测量。
func (h *TextHelper) SetExpansionFraction(fraction float64) {
	fraction = utils.Clamp(fraction, 0, 1)
	if fraction != h.fraction {
		h.fraction = fraction
		h.calculateCurrentOffsets()
	}
}

// ExpansionFraction 返回当前折叠进度
func (h *TextHelper) ExpansionFraction() float64 { return h.fraction }

// SetPositionInterpolator 设置位置插值器，nil 为线性
func (h *TextHelper) SetPositionInterpolator(i utils.Interpolator) {
	h.positionInterpolator = i
	h.Recalculate()
}

// SetTextSizeInterpolator 设置字号插值器，nil 为线性
func (h *TextHelper) SetTextSizeInterpolator(i utils.Interpolator) {
	h.sizeInterpolator = i
	h.Recalculate()
}

// SetState 设置视图状态，用于解析状态颜色
//
// 返回:
//   - bool: 任意颜色随状态变化时返回 true，宿主需要重绘
func (h *TextHelper) SetState(states colors.StateSet) bool {
	h.state = states
	if h.isStateful() {
		h.Recalculate()
		return true
	}
	return false
}

func (h *TextHelper) isStateful() bool {
	for i := range h.slots {
		for _, a := range h.slots[i].appearance {
			if a.Color != nil && a.Color.IsStateful() {
				return true
			}
		}
	}
	return false
}

// Recalculate 重新计算基础偏移和当前偏移
//
// 宿主宽高都为正之前不做任何事。
func (h *TextHelper) Recalculate() {
	if h.host.Height() > 0 && h.host.Width() > 0 {
		h.calculateBaseOffsets()
		h.calculateCurrentOffsets()
	}
}

// DisplayText 返回槽位当前绘制的（可能已截断的）文本
func (h *TextHelper) DisplayText(slot Slot) string { return h.slots[slot].display }

// IsRTL 返回槽位显示文本的方向
func (h *TextHelper) IsRTL(slot Slot) bool { return h.slots[slot].rtl }

// CurrentPosition 返回槽位当前的绘制起点（基线坐标）
func (h *TextHelper) CurrentPosition(slot Slot) (x, y float64) {
	sl := &h.slots[slot]
	return sl.currentX, sl.currentY
}

// ExpandedPosition 返回槽位展开状态的绘制起点
func (h *TextHelper) ExpandedPosition(slot Slot) (x, y float64) {
	sl := &h.slots[slot]
	return sl.expandedX, sl.expandedY
}

// CollapsedPosition 返回槽位折叠状态的绘制起点
func (h *TextHelper) CollapsedPosition(slot Slot) (x, y float64) {
	sl := &h.slots[slot]
	return sl.collapsedX, sl.collapsedY
}

// CurrentTextSize 返回槽位当前插值后的字号
func (h *TextHelper) CurrentTextSize(slot Slot) float64 { return h.slots[slot].interpolatedSize }

// Scale 返回槽位当前的缩放比例
func (h *TextHelper) Scale(slot Slot) float64 { return h.slots[slot].scale }

// CurrentColor 返回槽位当前的文字颜色
func (h *TextHelper) CurrentColor(slot Slot) color.NRGBA { return h.slots[slot].color }

// CurrentShadow 返回标题当前的阴影
func (h *TextHelper) CurrentShadow() Shadow { return h.slots[Title].shadow }

// UseTexture 槽位当前是否走纹理路径
func (h *TextHelper) UseTexture(slot Slot) bool { return h.slots[slot].useTexture }

// HasTexture 槽位是否持有离屏纹理
func (h *TextHelper) HasTexture(slot Slot) bool { return h.slots[slot].texture != nil }

// CollapsedTitleWidth 返回完整标题在折叠字号下的宽度（不截断）
func (h *TextHelper) CollapsedTitleWidth() float64 {
	sl := &h.slots[Title]
	if sl.text == "" {
		return 0
	}
	a := sl.appearance[Collapsed]
	return h.measurer.Advance(sl.text, a.Typeface, a.Size)
}

// CollapsedTitleActualBounds 返回折叠标题实际占据的区域
//
// 宽度不超过折叠区域，水平位置遵循折叠对齐方式。
func (h *TextHelper) CollapsedTitleActualBounds() RectF {
	sl := &h.slots[Title]
	a := sl.appearance[Collapsed]
	b := h.collapsedBounds

	width := h.CollapsedTitleWidth()
	if avail := float64(b.Dx()); width > avail {
		width = avail
	}

	var left float64
	switch h.collapsedGravity.Absolute(sl.rtl).Horizontal() {
	case gravity.CenterHorizontal:
		left = float64(b.Min.X+b.Max.X)/2 - width/2
	case gravity.Right:
		left = float64(b.Max.X) - width
	default:
		left = float64(b.Min.X)
	}

	top := float64(b.Min.Y)
	return RectF{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + h.measurer.Metrics(a.Typeface, a.Size).Height(),
	}
}
