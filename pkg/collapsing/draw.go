package collapsing

import (
	"image"
	"log"
	"math"
)

func rectF(r image.Rectangle) RectF {
	return RectF{
		Left:   float64(r.Min.X),
		Top:    float64(r.Min.Y),
		Right:  float64(r.Max.X),
		Bottom: float64(r.Max.Y),
	}
}

// Draw 绘制副标题和标题
//
// 副标题先画，并在独立的变换中完成，避免它的缩放影响标题。
// 两个边界任一无效或标题没有可绘制内容时什么也不画。
func (h *TextHelper) Draw(c Canvas) {
	title := &h.slots[Title]
	if !h.drawTitle || title.display == "" {
		return
	}

	if sub := &h.slots[Subtitle]; h.hasText(Subtitle) && sub.display != "" {
		c.Save()
		h.drawSlot(c, Subtitle)
		c.Restore()
	}

	c.Save()
	h.drawSlot(c, Title)
	c.Restore()
}

func (h *TextHelper) drawSlot(c Canvas, slot Slot) {
	sl := &h.slots[slot]
	x, y := sl.currentX, sl.currentY
	paint := h.paint(slot)

	drawTexture := sl.useTexture && sl.texture != nil
	if drawTexture {
		// 纹理以左上角定位，基线在纹理内部 ascent 处
		y -= sl.textureAscent * sl.scale
	}
	if sl.scale != 1 {
		c.Scale(sl.scale, sl.scale, x, y)
	}

	if drawTexture {
		c.DrawTexture(sl.texture, x, y, paint)
	} else {
		c.DrawText(sl.display, x, y, paint)
	}
}

// paint 返回槽位当前的绘制参数，阴影只用于标题
func (h *TextHelper) paint(slot Slot) Paint {
	sl := &h.slots[slot]
	p := Paint{
		Typeface: sl.currentTypeface,
		Size:     sl.currentSize,
		Color:    sl.color,
	}
	if slot == Title {
		p.Shadow = sl.shadow
	}
	return p
}

// ensureTexture 为展开档位的文本创建离屏纹理
//
// 纹理已存在、展开区域为空、没有可绘制文本或平台不支持纹理时直接返回；
// 测量出的宽高不为正时静默跳过，本帧退回直接绘制。
func (h *TextHelper) ensureTexture(slot Slot) {
	sl := &h.slots[slot]
	if sl.texture != nil || h.textures == nil || h.expandedBounds.Empty() || sl.display == "" {
		return
	}

	m := h.measurer.Metrics(sl.currentTypeface, sl.currentSize)
	w := int(math.Round(h.measurer.Advance(sl.display, sl.currentTypeface, sl.currentSize)))
	ht := int(math.Round(m.Height()))
	if w <= 0 || ht <= 0 {
		return
	}

	sl.textureAscent = m.Ascent
	sl.textureDescent = m.Descent
	sl.texture = h.textures.NewTexture(w, ht, sl.display, float64(ht)-m.Descent, Paint{
		Typeface: sl.currentTypeface,
		Size:     sl.currentSize,
	})
	if sl.texture != nil {
		log.Printf("[CollapsingText] Created %s texture %dx%d (size %.1f)", slot, w, ht, sl.currentSize)
	}
}

// clearTexture 释放槽位的离屏纹理
func (h *TextHelper) clearTexture(slot Slot) {
	sl := &h.slots[slot]
	if sl.texture != nil {
		sl.texture.Deallocate()
		sl.texture = nil
	}
}

func (h *TextHelper) clearTextures() {
	for slot := Title; slot < slotCount; slot++ {
		h.clearTexture(slot)
	}
}

// Release 释放所有离屏纹理，宿主销毁时调用
func (h *TextHelper) Release() {
	h.clearTextures()
}
