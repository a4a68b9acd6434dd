package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/collapsing"
)

// 阴影模糊的采样方向数
const shadowTapDirections = 8

// Canvas 在 *ebiten.Image 上实现 collapsing.Canvas
//
// 维护一个 GeoM 栈：Save 压栈，Restore 出栈，Scale 作用于之后的所有绘制。
type Canvas struct {
	dst      *ebiten.Image
	measurer *Measurer
	geoM     ebiten.GeoM
	stack    []ebiten.GeoM
}

// NewCanvas 创建画布
func NewCanvas(dst *ebiten.Image, measurer *Measurer) *Canvas {
	return &Canvas{dst: dst, measurer: measurer}
}

// Reset 切换绘制目标并清空变换栈，每帧开始时调用
func (c *Canvas) Reset(dst *ebiten.Image) {
	c.dst = dst
	c.geoM.Reset()
	c.stack = c.stack[:0]
}

// Save 保存当前变换
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.geoM)
}

// Restore 恢复到最近一次 Save 时的变换，栈为空时什么也不做
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.geoM = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Depth 返回变换栈深度
func (c *Canvas) Depth() int {
	return len(c.stack)
}

// GeoM 返回当前变换
func (c *Canvas) GeoM() ebiten.GeoM {
	return c.geoM
}

// Scale 以 (px, py) 为中心缩放后续绘制
func (c *Canvas) Scale(sx, sy, px, py float64) {
	var m ebiten.GeoM
	m.Translate(-px, -py)
	m.Scale(sx, sy)
	m.Translate(px, py)
	m.Concat(c.geoM)
	c.geoM = m
}

// Translate 平移后续绘制
func (c *Canvas) Translate(dx, dy float64) {
	var m ebiten.GeoM
	m.Translate(dx, dy)
	m.Concat(c.geoM)
	c.geoM = m
}

// DrawText 以 (x, baseline) 为起点绘制文本
func (c *Canvas) DrawText(s string, x, baseline float64, p collapsing.Paint) {
	face := c.measurer.Face(p.Typeface, p.Size)
	if face == nil || s == "" || c.dst == nil {
		return
	}
	top := baseline - face.Metrics().HAscent

	c.drawShadow(p.Shadow, func(dx, dy float64, tint color.Color) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+dx, top+dy)
		op.GeoM.Concat(c.geoM)
		op.ColorScale.ScaleWithColor(tint)
		text.Draw(c.dst, s, face, op)
	})

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, top)
	op.GeoM.Concat(c.geoM)
	op.ColorScale.ScaleWithColor(p.Color)
	text.Draw(c.dst, s, face, op)
}

// DrawTexture 以 (x, y) 为左上角绘制纹理，并用 Paint.Color 着色
func (c *Canvas) DrawTexture(tex collapsing.Texture, x, y float64, p collapsing.Paint) {
	t, ok := tex.(*Texture)
	if !ok || t == nil || t.img == nil || c.dst == nil {
		return
	}

	c.drawShadow(p.Shadow, func(dx, dy float64, tint color.Color) {
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Translate(x+dx, y+dy)
		op.GeoM.Concat(c.geoM)
		op.ColorScale.ScaleWithColor(tint)
		c.dst.DrawImage(t.img, op)
	})

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(c.geoM)
	op.ColorScale.ScaleWithColor(p.Color)
	c.dst.DrawImage(t.img, op)
}

// drawShadow 按阴影参数调用 pass 若干次
//
// 半径为 0 时只画一次偏移后的阴影；否则在中心和半径一半处的 8 个方向各画一次，
// 每次的透明度均分阴影颜色的透明度。
func (c *Canvas) drawShadow(s collapsing.Shadow, pass func(dx, dy float64, tint color.Color)) {
	for _, tap := range shadowTaps(s) {
		pass(tap.dx, tap.dy, tap.tint)
	}
}

type shadowTap struct {
	dx, dy float64
	tint   color.NRGBA
}

func shadowTaps(s collapsing.Shadow) []shadowTap {
	if s.Color.A == 0 {
		return nil
	}
	if s.Radius <= 0 {
		return []shadowTap{{dx: s.DX, dy: s.DY, tint: s.Color}}
	}

	n := shadowTapDirections + 1
	tint := s.Color
	tint.A = uint8(math.Max(1, math.Round(float64(s.Color.A)/float64(n))))

	taps := make([]shadowTap, 0, n)
	taps = append(taps, shadowTap{dx: s.DX, dy: s.DY, tint: tint})
	r := s.Radius / 2
	for i := 0; i < shadowTapDirections; i++ {
		a := 2 * math.Pi * float64(i) / shadowTapDirections
		taps = append(taps, shadowTap{
			dx:   s.DX + r*math.Cos(a),
			dy:   s.DY + r*math.Sin(a),
			tint: tint,
		})
	}
	return taps
}
