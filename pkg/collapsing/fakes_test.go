package collapsing

import (
	"fmt"
	"unicode/utf8"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/typeface"
)

// fakeHost 固定尺寸的宿主，记录重绘请求次数
type fakeHost struct {
	width, height int
	invalidations int
}

func (h *fakeHost) Width() int      { return h.width }
func (h *fakeHost) Height() int     { return h.height }
func (h *fakeHost) PostInvalidate() { h.invalidations++ }

// fakeMeasurer 等宽测量：每个字符宽 size/2，ascent = 0.8*size，descent = 0.2*size
type fakeMeasurer struct {
	advanceCalls int
	metricsCalls int
	zeroMetrics  bool
}

func (m *fakeMeasurer) Advance(s string, _ *typeface.Typeface, size float64) float64 {
	m.advanceCalls++
	return float64(utf8.RuneCountInString(s)) * size / 2
}

func (m *fakeMeasurer) Metrics(_ *typeface.Typeface, size float64) Metrics {
	m.metricsCalls++
	if m.zeroMetrics {
		return Metrics{}
	}
	return Metrics{Ascent: size * 0.8, Descent: size * 0.2}
}

// fakeTexture 记录是否已释放
type fakeTexture struct {
	w, h        int
	text        string
	baseline    float64
	deallocated bool
}

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }
func (t *fakeTexture) Deallocate()      { t.deallocated = true }

type fakeTextureFactory struct {
	created []*fakeTexture
}

func (f *fakeTextureFactory) NewTexture(w, h int, s string, baseline float64, _ Paint) Texture {
	t := &fakeTexture{w: w, h: h, text: s, baseline: baseline}
	f.created = append(f.created, t)
	return t
}

// fakeCanvas 把绘制调用记录为字符串
type fakeCanvas struct {
	ops    []string
	paints []Paint
}

func (c *fakeCanvas) Save()    { c.ops = append(c.ops, "save") }
func (c *fakeCanvas) Restore() { c.ops = append(c.ops, "restore") }

func (c *fakeCanvas) Scale(sx, sy, px, py float64) {
	c.ops = append(c.ops, fmt.Sprintf("scale %.3f %.3f @ %.1f,%.1f", sx, sy, px, py))
}

func (c *fakeCanvas) DrawText(s string, x, baseline float64, p Paint) {
	c.ops = append(c.ops, fmt.Sprintf("text %q @ %.1f,%.1f", s, x, baseline))
	c.paints = append(c.paints, p)
}

func (c *fakeCanvas) DrawTexture(tex Texture, x, y float64, p Paint) {
	ft := tex.(*fakeTexture)
	c.ops = append(c.ops, fmt.Sprintf("texture %q @ %.1f,%.1f", ft.text, x, y))
	c.paints = append(c.paints, p)
}

// newTestHelper 创建已布局的引擎：折叠区域 (0,0,200,50)，展开区域 (0,0,400,150)
func newTestHelper(opts ...Option) (*TextHelper, *fakeHost, *fakeMeasurer) {
	host := &fakeHost{width: 400, height: 200}
	m := &fakeMeasurer{}
	h := NewTextHelper(host, m, opts...)
	h.SetCollapsedBounds(0, 0, 200, 50)
	h.SetExpandedBounds(0, 0, 400, 150)
	return h, host, m
}
