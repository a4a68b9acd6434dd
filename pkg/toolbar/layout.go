// Package toolbar 实现可折叠标题栏容器
//
// CollapsingToolbarLayout 持有一个文字引擎，负责：
//   - 根据自身尺寸、展开边距和工具栏计算展开/折叠两个文字区域
//   - 把外部滚动偏移换算成 [0, 1] 的折叠进度
//   - 根据可见高度显示或隐藏内容遮罩和状态栏遮罩（带渐变动画）
//   - 按"内容遮罩 -> 标题文字 -> 状态栏遮罩"的顺序绘制
package toolbar

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/collapsing"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/colors"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/config"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/render"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/typeface"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/utils"
)

// Toolbar 折叠后固定在顶部的工具栏
type Toolbar struct {
	ID               string
	Height           int
	TitleMarginStart int
	TitleMarginEnd   int
}

// CollapsingToolbarLayout 可折叠标题栏容器，实现 collapsing.Host
//
// 坐标系以容器左上角为原点。容器随滚动整体上移 |offset|，
// 绘制时由 Draw 负责平移。
type CollapsingToolbarLayout struct {
	text     *collapsing.TextHelper
	measurer *render.Measurer
	canvas   *render.Canvas
	fonts    *typeface.Registry

	width, height int
	toolbar       *Toolbar
	insetTop      int
	offset        int
	layoutRTL     bool

	titleEnabled bool
	marginStart  int
	marginTop    int
	marginEnd    int
	marginBottom int

	contentScrim   color.NRGBA
	statusBarScrim color.NRGBA
	scrimTrigger   int
	scrimDuration  time.Duration
	scrimsShown    bool
	scrim          scrimAnimator

	invalidated bool
}

// NewCollapsingToolbarLayout 创建容器并应用属性
//
// 参数:
//   - attrs: 属性配置
//   - fonts: 字体注册表，attrs.Fonts 中的文件会注册到这里
//   - measurer: 文本测量器，同时用于绘制
//   - opts: 额外的文字引擎选项，追加在默认选项之后
func NewCollapsingToolbarLayout(attrs *config.Attributes, fonts *typeface.Registry, measurer *render.Measurer, opts ...collapsing.Option) (*CollapsingToolbarLayout, error) {
	l := &CollapsingToolbarLayout{
		measurer: measurer,
		canvas:   render.NewCanvas(nil, measurer),
		fonts:    fonts,
	}

	engineOpts := []collapsing.Option{
		collapsing.WithTextureFactory(render.NewTextureFactory(measurer)),
		collapsing.WithScalingTexture(utils.UseScalingTexture()),
	}
	l.text = collapsing.NewTextHelper(l, measurer, append(engineOpts, opts...)...)

	if err := l.ApplyAttributes(attrs); err != nil {
		return nil, err
	}
	return l, nil
}

// ApplyAttributes 应用属性配置，可以重复调用（配置热重载）
func (l *CollapsingToolbarLayout) ApplyAttributes(attrs *config.Attributes) error {
	if err := attrs.Validate(); err != nil {
		return fmt.Errorf("invalid attributes: %w", err)
	}

	for family, path := range attrs.Fonts {
		l.fonts.RegisterFile(family, path)
	}

	expanded, collapsed, err := attrs.Gravities()
	if err != nil {
		return err
	}
	l.text.SetExpandedGravity(expanded)
	l.text.SetCollapsedGravity(collapsed)

	l.marginStart, l.marginTop, l.marginEnd, l.marginBottom = attrs.ExpandedMargins()

	for _, ref := range []struct {
		tier collapsing.Tier
		slot collapsing.Slot
		name string
	}{
		{collapsing.Expanded, collapsing.Title, attrs.ExpandedTitleTextAppearance},
		{collapsing.Collapsed, collapsing.Title, attrs.CollapsedTitleTextAppearance},
		{collapsing.Expanded, collapsing.Subtitle, attrs.ExpandedSubtitleTextAppearance},
		{collapsing.Collapsed, collapsing.Subtitle, attrs.CollapsedSubtitleTextAppearance},
	} {
		ta, _ := attrs.Appearance(ref.name)
		l.applyAppearance(ref.tier, ref.slot, ta)
	}

	l.contentScrim, l.statusBarScrim = attrs.ScrimColors()
	l.scrimTrigger = attrs.ScrimVisibleHeightTrigger
	l.scrimDuration = time.Duration(attrs.ScrimAnimationDuration) * time.Millisecond

	l.toolbar = &Toolbar{
		ID:               attrs.ToolbarID,
		Height:           attrs.Toolbar.Height,
		TitleMarginStart: attrs.Toolbar.TitleMarginStart,
		TitleMarginEnd:   attrs.Toolbar.TitleMarginEnd,
	}
	l.titleEnabled = attrs.TitleEnabled
	l.text.SetText(collapsing.Title, attrs.Title)
	l.text.SetText(collapsing.Subtitle, attrs.Subtitle)

	l.updateTextBounds()
	l.updateScrimVisibility(false)
	l.PostInvalidate()

	log.Printf("[Toolbar] Applied attributes: title=%q subtitle=%q expanded=%s collapsed=%s toolbar=%q",
		attrs.Title, attrs.Subtitle, expanded, collapsed, l.toolbar.ID)
	return nil
}

// applyAppearance 把文字外观合并到引擎当前外观上
//
// 字号为 0 或未设置颜色时保留引擎中的原值。阴影只作用于标题。
func (l *CollapsingToolbarLayout) applyAppearance(tier collapsing.Tier, slot collapsing.Slot, ta config.TextAppearance) {
	a := l.text.Appearance(tier, slot)
	if ta.TextSize > 0 {
		a.Size = ta.TextSize
	}
	if ta.TextColor.IsSet() {
		a.Color = ta.TextColor.ColorSet()
	}
	a.Typeface = l.fonts.ResolveOrDefault(ta.FontFamily)
	if slot == collapsing.Title {
		shadowColor, _ := ta.ShadowNRGBA()
		a.Shadow = collapsing.Shadow{
			Radius: ta.ShadowRadius,
			DX:     ta.ShadowDx,
			DY:     ta.ShadowDy,
			Color:  shadowColor,
		}
	}
	l.text.SetAppearance(tier, slot, a)
}

// Width 实现 collapsing.Host
func (l *CollapsingToolbarLayout) Width() int { return l.width }

// Height 实现 collapsing.Host
func (l *CollapsingToolbarLayout) Height() int { return l.height }

// PostInvalidate 实现 collapsing.Host，标记下一帧需要重绘
func (l *CollapsingToolbarLayout) PostInvalidate() { l.invalidated = true }

// ConsumeInvalidation 返回自上次调用以来是否请求过重绘，并清除标记
func (l *CollapsingToolbarLayout) ConsumeInvalidation() bool {
	v := l.invalidated
	l.invalidated = false
	return v
}

// TextHelper 返回内部的文字引擎
func (l *CollapsingToolbarLayout) TextHelper() *collapsing.TextHelper { return l.text }

// SetToolbar 设置工具栏，nil 表示没有工具栏（此时不绘制标题）
func (l *CollapsingToolbarLayout) SetToolbar(tb *Toolbar) {
	l.toolbar = tb
	l.updateTextBounds()
}

// Toolbar 返回当前工具栏
func (l *CollapsingToolbarLayout) Toolbar() *Toolbar { return l.toolbar }

// Layout 设置容器尺寸并重新计算文字区域
func (l *CollapsingToolbarLayout) Layout(width, height int) {
	if l.width == width && l.height == height {
		return
	}
	l.width, l.height = width, height
	l.updateTextBounds()
	l.updateScrimVisibility(false)
}

// SetWindowInsetTop 设置顶部窗口内边距（状态栏高度）
func (l *CollapsingToolbarLayout) SetWindowInsetTop(px int) {
	if px < 0 {
		px = 0
	}
	if l.insetTop == px {
		return
	}
	l.insetTop = px
	l.updateTextBounds()
	l.OnOffsetChanged(l.offset)
}

// InsetTop 返回顶部窗口内边距
func (l *CollapsingToolbarLayout) InsetTop() int { return l.insetTop }

// SetLayoutRTL 设置布局方向，影响 start/end 边距和对齐
func (l *CollapsingToolbarLayout) SetLayoutRTL(rtl bool) {
	if l.layoutRTL == rtl {
		return
	}
	l.layoutRTL = rtl
	l.text.SetLayoutRTL(rtl)
	l.updateTextBounds()
}

// SetExpandedTitleMargin 设置展开标题四边边距
func (l *CollapsingToolbarLayout) SetExpandedTitleMargin(start, top, end, bottom int) {
	l.marginStart, l.marginTop, l.marginEnd, l.marginBottom = start, top, end, bottom
	l.updateTextBounds()
}

// ExpandedTitleMargin 返回展开标题四边边距
func (l *CollapsingToolbarLayout) ExpandedTitleMargin() (start, top, end, bottom int) {
	return l.marginStart, l.marginTop, l.marginEnd, l.marginBottom
}

// MinHeight 完全折叠后容器保留的高度（工具栏高度）
func (l *CollapsingToolbarLayout) MinHeight() int {
	if l.toolbar == nil {
		return 0
	}
	return l.toolbar.Height
}

// updateTextBounds 按尺寸、边距和工具栏计算两个文字区域
//
// 展开区域是容器减去顶部内边距和展开边距。折叠区域是完全折叠时工具栏标题的位置：
// 工具栏固定在可见区域顶部，对应容器坐标中的最底部一条。
func (l *CollapsingToolbarLayout) updateTextBounds() {
	if l.width <= 0 || l.height <= 0 {
		return
	}

	start, end := l.marginStart, l.marginEnd
	if l.layoutRTL {
		start, end = end, start
	}
	// 展开区域的上边距从状态栏下方算起
	l.text.SetExpandedBounds(start, l.insetTop+l.marginTop, l.width-end, l.height-l.marginBottom)

	if l.toolbar != nil && l.toolbar.Height > 0 {
		ts, te := l.toolbar.TitleMarginStart, l.toolbar.TitleMarginEnd
		if l.layoutRTL {
			ts, te = te, ts
		}
		l.text.SetCollapsedBounds(ts, l.height-l.toolbar.Height, l.width-te, l.height)
	} else {
		l.text.SetCollapsedBounds(0, 0, 0, 0)
	}

	l.text.Recalculate()
}

// OnOffsetChanged 响应外部滚动偏移（0 为完全展开，负数为向上滚动）
//
// 折叠进度 = |offset| / (高度 - 最小高度 - 顶部内边距)。
func (l *CollapsingToolbarLayout) OnOffsetChanged(verticalOffset int) {
	l.offset = verticalOffset
	l.updateScrimVisibility(true)

	fraction := 0.0
	if expandRange := l.height - l.MinHeight() - l.insetTop; expandRange > 0 {
		fraction = math.Abs(float64(verticalOffset)) / float64(expandRange)
	}
	l.text.SetExpansionFraction(fraction)
	l.PostInvalidate()
}

// Offset 返回当前滚动偏移
func (l *CollapsingToolbarLayout) Offset() int { return l.offset }

// ExpansionFraction 返回当前折叠进度
func (l *CollapsingToolbarLayout) ExpansionFraction() float64 {
	return l.text.ExpansionFraction()
}

// ScrimVisibleHeightTrigger 可见高度低于该值时显示遮罩
//
// 配置了非负值时为配置值加顶部内边距；否则为两倍最小高度加顶部内边距，
// 不超过容器高度；没有最小高度时为容器高度的三分之一。
func (l *CollapsingToolbarLayout) ScrimVisibleHeightTrigger() int {
	if l.scrimTrigger >= 0 {
		return l.scrimTrigger + l.insetTop
	}
	if minHeight := l.MinHeight(); minHeight > 0 {
		return min(minHeight*2+l.insetTop, l.height)
	}
	return l.height / 3
}

// SetScrimVisibleHeightTrigger 设置遮罩触发高度，-1 为自动
func (l *CollapsingToolbarLayout) SetScrimVisibleHeightTrigger(px int) {
	if l.scrimTrigger != px {
		l.scrimTrigger = px
		l.updateScrimVisibility(true)
	}
}

func (l *CollapsingToolbarLayout) updateScrimVisibility(animate bool) {
	if l.height <= 0 {
		return
	}
	if l.contentScrim.A == 0 && l.statusBarScrim.A == 0 {
		return
	}
	l.SetScrimsShown(l.height+l.offset < l.ScrimVisibleHeightTrigger(), animate)
}

// SetScrimsShown 显示或隐藏遮罩
//
// animate 为 true 时按配置时长渐变：显示用 fast-out-linear-in，隐藏用 linear-out-slow-in。
func (l *CollapsingToolbarLayout) SetScrimsShown(shown, animate bool) {
	if l.scrimsShown == shown {
		return
	}
	l.scrimsShown = shown

	target := 0.0
	if shown {
		target = 1
	}
	duration := l.scrimDuration
	if !animate {
		duration = 0
	}
	l.scrim.animateTo(target, duration)
	l.PostInvalidate()
}

// ScrimsShown 遮罩是否处于显示状态（渐变可能尚未完成）
func (l *CollapsingToolbarLayout) ScrimsShown() bool { return l.scrimsShown }

// ScrimAlpha 返回遮罩当前透明度 [0, 1]
func (l *CollapsingToolbarLayout) ScrimAlpha() float64 { return l.scrim.alpha }

// Update 推进遮罩渐变动画
func (l *CollapsingToolbarLayout) Update(dt time.Duration) {
	if l.scrim.update(dt) {
		l.PostInvalidate()
	}
}

// SetDrawableState 设置视图状态（按下、聚焦等）
//
// 返回:
//   - bool: 文字颜色随状态变化，需要重绘
func (l *CollapsingToolbarLayout) SetDrawableState(states colors.StateSet) bool {
	changed := l.text.SetState(states)
	if changed {
		l.PostInvalidate()
	}
	return changed
}

// SetTitle 设置标题
func (l *CollapsingToolbarLayout) SetTitle(s string) {
	l.text.SetText(collapsing.Title, s)
}

// Title 返回标题
func (l *CollapsingToolbarLayout) Title() string {
	return l.text.Text(collapsing.Title)
}

// SetSubtitle 设置副标题
func (l *CollapsingToolbarLayout) SetSubtitle(s string) {
	l.text.SetText(collapsing.Subtitle, s)
}

// Subtitle 返回副标题
func (l *CollapsingToolbarLayout) Subtitle() string {
	return l.text.Text(collapsing.Subtitle)
}

// SetTitleEnabled 是否由容器绘制标题
func (l *CollapsingToolbarLayout) SetTitleEnabled(enabled bool) {
	if l.titleEnabled != enabled {
		l.titleEnabled = enabled
		l.PostInvalidate()
	}
}

// TitleEnabled 返回是否由容器绘制标题
func (l *CollapsingToolbarLayout) TitleEnabled() bool { return l.titleEnabled }

// Draw 绘制遮罩和标题
//
// 容器在屏幕上的纵坐标等于当前偏移；状态栏遮罩始终画在屏幕顶部。
func (l *CollapsingToolbarLayout) Draw(screen *ebiten.Image) {
	oy := float64(l.offset)
	alpha := l.scrim.alpha

	if alpha > 0 && l.contentScrim.A > 0 {
		vector.DrawFilledRect(screen, 0, float32(oy), float32(l.width), float32(l.height),
			scaleAlpha(l.contentScrim, alpha), false)
	}

	if l.titleEnabled {
		l.canvas.Reset(screen)
		l.canvas.Translate(0, oy)
		l.text.Draw(l.canvas)
	}

	if alpha > 0 && l.statusBarScrim.A > 0 && l.insetTop > 0 {
		vector.DrawFilledRect(screen, 0, 0, float32(l.width), float32(l.insetTop),
			scaleAlpha(l.statusBarScrim, alpha), false)
	}
}

// Release 释放文字纹理
func (l *CollapsingToolbarLayout) Release() {
	l.text.Release()
}

func scaleAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * utils.Clamp(a, 0, 1)))
	return c
}
