package collapsing

import (
	"math"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/colors"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/gravity"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/utils"
)

// isClose 字号比较容差
func isClose(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

// hasText 槽位是否参与测量；没有标题时副标题也不显示
func (h *TextHelper) hasText(slot Slot) bool {
	if h.slots[Title].text == "" {
		return false
	}
	return h.slots[slot].text != ""
}

// expandedAvailableWidth 展开状态下截断文本使用的宽度
//
// 展开文字缩小到折叠字号后如果会超出折叠区域，则按折叠区域反推可用宽度，
// 保证折叠过程中截断位置不会突变。
func expandedAvailableWidth(collapsedSize, expandedSize, collapsedWidth, expandedWidth float64) float64 {
	if expandedSize <= 0 {
		return expandedWidth
	}
	ratio := collapsedSize / expandedSize
	scaledDownWidth := expandedWidth * ratio
	if scaledDownWidth > collapsedWidth {
		return math.Min(collapsedWidth/ratio, expandedWidth)
	}
	return expandedWidth
}

// calculateUsingTextSize 按给定字号选择字号档位、计算缩放并截断文本
//
// 字号接近折叠字号时使用折叠档位（缩放 1），否则使用展开档位并通过缩放
// 得到中间字号。只有档位、字体或边界变化时才重新截断。
func (h *TextHelper) calculateUsingTextSize(slot Slot, textSize float64) {
	if !h.hasText(slot) {
		return
	}
	sl := &h.slots[slot]
	collapsed := sl.appearance[Collapsed]
	expanded := sl.appearance[Expanded]

	collapsedWidth := float64(h.collapsedBounds.Dx())
	expandedWidth := float64(h.expandedBounds.Dx())

	var availableWidth, newTextSize float64
	updateDisplay := false

	if isClose(textSize, collapsed.Size) {
		newTextSize = collapsed.Size
		sl.scale = 1
		if sl.currentTypeface != collapsed.Typeface {
			sl.currentTypeface = collapsed.Typeface
			updateDisplay = true
		}
		availableWidth = collapsedWidth
	} else {
		newTextSize = expanded.Size
		if sl.currentTypeface != expanded.Typeface {
			sl.currentTypeface = expanded.Typeface
			updateDisplay = true
		}
		if isClose(textSize, expanded.Size) || expanded.Size <= 0 {
			sl.scale = 1
		} else {
			sl.scale = textSize / expanded.Size
		}
		availableWidth = expandedAvailableWidth(collapsed.Size, expanded.Size, collapsedWidth, expandedWidth)
	}

	if availableWidth > 0 {
		updateDisplay = updateDisplay || sl.currentSize != newTextSize || sl.boundsChanged
		sl.currentSize = newTextSize
		sl.boundsChanged = false
	}

	if !sl.displayValid || updateDisplay {
		tf, size := sl.currentTypeface, sl.currentSize
		display := utils.EllipsizeEnd(sl.text, availableWidth, func(s string) float64 {
			return h.measurer.Advance(s, tf, size)
		})
		if !sl.displayValid || display != sl.display {
			if display != sl.display {
				h.clearTexture(slot)
			}
			sl.display = display
			sl.rtl = utils.IsRTL(display, h.layoutRTL)
		}
		sl.displayValid = true
	}
}

// calculateBaseOffsets 计算两个档位下各槽位的锚点
//
// 只在边界、外观、对齐或文本变化时调用，进度变化不会触发。
func (h *TextHelper) calculateBaseOffsets() {
	title := &h.slots[Title]
	sub := &h.slots[Subtitle]
	if !h.hasText(Title) {
		h.clearTextures()
		return
	}
	titleOnly := !h.hasText(Subtitle)

	for _, tier := range []Tier{Collapsed, Expanded} {
		h.calculateUsingTextSize(Title, title.appearance[tier].Size)
		h.calculateUsingTextSize(Subtitle, sub.appearance[tier].Size)

		var bounds RectF
		var g gravity.Gravity
		if tier == Collapsed {
			bounds = rectF(h.collapsedBounds)
			g = h.collapsedGravity
		} else {
			bounds = rectF(h.expandedBounds)
			g = h.expandedGravity
		}
		g = g.Absolute(title.rtl)

		titleMetrics := h.measurer.Metrics(title.currentTypeface, title.currentSize)
		var subMetrics Metrics
		if !titleOnly {
			subMetrics = h.measurer.Metrics(sub.currentTypeface, sub.currentSize)
		}

		var titleY, subY float64
		if titleOnly {
			titleY = singleLineY(bounds, g.Vertical(), titleMetrics)
		} else {
			var gap float64
			if tier == Collapsed {
				// 剩余垂直空间三等分：上方、两行之间、下方
				gap = (bounds.Height() - titleMetrics.Height() - subMetrics.Height()) / 3
			} else {
				gap = math.Max(0, (titleMetrics.Ascent-titleMetrics.Descent)/2)
			}
			titleY, subY = twoLineY(bounds, g.Vertical(), titleMetrics, subMetrics, gap)
		}

		titleX := anchorX(bounds, g.Horizontal(), h.measureDisplay(Title))
		var subX float64
		if !titleOnly {
			subX = anchorX(bounds, g.Horizontal(), h.measureDisplay(Subtitle))
		}

		if tier == Collapsed {
			title.collapsedX, title.collapsedY = titleX, titleY
			sub.collapsedX, sub.collapsedY = subX, subY
		} else {
			title.expandedX, title.expandedY = titleX, titleY
			sub.expandedX, sub.expandedY = subX, subY
		}
	}

	// 边界变了，之前的纹理已经过期
	h.clearTextures()

	// 恢复到重新计算前的插值字号，保证下一次进度更新前画面一致
	for slot := Title; slot < slotCount; slot++ {
		if size := h.slots[slot].interpolatedSize; size > 0 {
			h.setInterpolatedTextSize(slot, size)
		}
	}
}

func (h *TextHelper) measureDisplay(slot Slot) float64 {
	sl := &h.slots[slot]
	if sl.display == "" {
		return 0
	}
	return h.measurer.Advance(sl.display, sl.currentTypeface, sl.currentSize)
}

// singleLineY 只有标题时的基线位置
func singleLineY(b RectF, vertical gravity.Gravity, m Metrics) float64 {
	switch vertical {
	case gravity.Bottom:
		return b.Bottom - m.Descent
	case gravity.Top:
		return b.Top + m.Ascent
	default:
		return b.CenterY() + (m.Ascent-m.Descent)/2
	}
}

// twoLineY 标题 + 副标题时两行的基线位置，两行之间间隔 gap
func twoLineY(b RectF, vertical gravity.Gravity, title, sub Metrics, gap float64) (titleY, subY float64) {
	switch vertical {
	case gravity.Bottom:
		subY = b.Bottom - gap - sub.Descent
		titleY = subY - sub.Ascent - gap - title.Descent
		return titleY, subY
	case gravity.Top:
		titleY = b.Top + gap + title.Ascent
	default:
		block := title.Height() + gap + sub.Height()
		titleY = b.CenterY() - block/2 + title.Ascent
	}
	subY = titleY + title.Descent + gap + sub.Ascent
	return titleY, subY
}

// anchorX 按水平对齐方式求绘制起点
func anchorX(b RectF, horizontal gravity.Gravity, width float64) float64 {
	switch horizontal {
	case gravity.CenterHorizontal:
		return b.CenterX() - width/2
	case gravity.Right:
		return b.Right - width
	default:
		return b.Left
	}
}

func (h *TextHelper) calculateCurrentOffsets() {
	h.calculateOffsets(h.fraction)
}

// calculateOffsets 按进度插值位置、字号、颜色和阴影
func (h *TextHelper) calculateOffsets(fraction float64) {
	h.interpolateBounds(fraction)

	for slot := Title; slot < slotCount; slot++ {
		sl := &h.slots[slot]
		sl.currentX = utils.LerpWith(sl.expandedX, sl.collapsedX, fraction, h.positionInterpolator)
		sl.currentY = utils.LerpWith(sl.expandedY, sl.collapsedY, fraction, h.positionInterpolator)

		expanded := sl.appearance[Expanded]
		collapsed := sl.appearance[Collapsed]
		h.setInterpolatedTextSize(slot, utils.LerpWith(expanded.Size, collapsed.Size, fraction, h.sizeInterpolator))

		expandedColor := colors.Resolve(expanded.Color, h.state)
		collapsedColor := colors.Resolve(collapsed.Color, h.state)
		if expandedColor == collapsedColor {
			sl.color = collapsedColor
		} else {
			sl.color = colors.Blend(expandedColor, collapsedColor, fraction)
		}
	}

	title := &h.slots[Title]
	es := title.appearance[Expanded].Shadow
	cs := title.appearance[Collapsed].Shadow
	title.shadow = Shadow{
		Radius: utils.Lerp(es.Radius, cs.Radius, fraction),
		DX:     utils.Lerp(es.DX, cs.DX, fraction),
		DY:     utils.Lerp(es.DY, cs.DY, fraction),
		Color:  colors.Blend(es.Color, cs.Color, fraction),
	}

	h.host.PostInvalidate()
}

func (h *TextHelper) interpolateBounds(fraction float64) {
	e, c := rectF(h.expandedBounds), rectF(h.collapsedBounds)
	h.currentBounds = RectF{
		Left:   utils.LerpWith(e.Left, c.Left, fraction, h.positionInterpolator),
		Top:    utils.LerpWith(e.Top, c.Top, fraction, h.positionInterpolator),
		Right:  utils.LerpWith(e.Right, c.Right, fraction, h.positionInterpolator),
		Bottom: utils.LerpWith(e.Bottom, c.Bottom, fraction, h.positionInterpolator),
	}
}

// setInterpolatedTextSize 按插值字号更新档位和缩放，并决定渲染路径
func (h *TextHelper) setInterpolatedTextSize(slot Slot, textSize float64) {
	sl := &h.slots[slot]
	sl.interpolatedSize = textSize
	h.calculateUsingTextSize(slot, textSize)

	sl.useTexture = h.useScalingTexture && sl.scale != 1
	if sl.useTexture {
		h.ensureTexture(slot)
	}
}
