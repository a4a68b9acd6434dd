// Package render 基于 ebiten 实现文字引擎需要的测量、绘制和离屏纹理能力
package render

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/collapsing"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/typeface"
)

type faceKey struct {
	family string
	size   float64
}

// Measurer 使用 text/v2 测量文本，实现 collapsing.Measurer
//
// 每个（字体族, 字号）组合只保留一个 GoTextFace，
// text/v2 的字形缓存以 face 为单位，复用 face 可以避免重复光栅化。
// 字体族重新注册（配置热重载）后字体源会变，旧 face 在下次取用时被替换。
type Measurer struct {
	fallback *typeface.Typeface
	faces    map[faceKey]*text.GoTextFace
}

// NewMeasurer 创建测量器
//
// 参数:
//   - fallback: Paint 或外观中没有指定字体时使用的字体，可以为 nil
func NewMeasurer(fallback *typeface.Typeface) *Measurer {
	return &Measurer{
		fallback: fallback,
		faces:    make(map[faceKey]*text.GoTextFace),
	}
}

// Face 返回字体和字号对应的 face
//
// 字体（包括后备字体）没有字体源或字号不为正时返回 nil。
func (m *Measurer) Face(tf *typeface.Typeface, size float64) *text.GoTextFace {
	if tf == nil || tf.Source == nil {
		tf = m.fallback
	}
	if tf == nil || tf.Source == nil || size <= 0 {
		return nil
	}

	key := faceKey{family: tf.Family, size: size}
	if face, ok := m.faces[key]; ok && face.Source == tf.Source {
		return face
	}
	face := &text.GoTextFace{
		Source:    tf.Source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	m.faces[key] = face
	return face
}

// Advance 返回文本的水平前进宽度
func (m *Measurer) Advance(s string, tf *typeface.Typeface, size float64) float64 {
	face := m.Face(tf, size)
	if face == nil || s == "" {
		return 0
	}
	return text.Advance(s, face)
}

// Metrics 返回字体在给定字号下的 ascent 和 descent（均为正数）
func (m *Measurer) Metrics(tf *typeface.Typeface, size float64) collapsing.Metrics {
	face := m.Face(tf, size)
	if face == nil {
		return collapsing.Metrics{}
	}
	fm := face.Metrics()
	return collapsing.Metrics{Ascent: fm.HAscent, Descent: fm.HDescent}
}

// CachedFaces 返回已缓存的 face 数量
func (m *Measurer) CachedFaces() int {
	return len(m.faces)
}
