package render

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/collapsing"
)

// Texture 离屏纹理，字形以白色绘制
type Texture struct {
	img *ebiten.Image
}

// Image 返回底层图片，已释放时返回 nil
func (t *Texture) Image() *ebiten.Image {
	return t.img
}

// Size 返回纹理尺寸
func (t *Texture) Size() (int, int) {
	if t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Deallocate 立即释放 GPU 资源，重复调用是安全的
func (t *Texture) Deallocate() {
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}

// TextureFactory 创建离屏纹理，实现 collapsing.TextureFactory
type TextureFactory struct {
	measurer *Measurer
}

// NewTextureFactory 创建纹理工厂
func NewTextureFactory(measurer *Measurer) *TextureFactory {
	return &TextureFactory{measurer: measurer}
}

// NewTexture 创建 width x height 的纹理，并在 baseline 处以白色绘制 s
//
// 颜色在绘制纹理时通过 ColorScale 叠加，Paint.Color 在这里被忽略。
func (f *TextureFactory) NewTexture(width, height int, s string, baseline float64, p collapsing.Paint) collapsing.Texture {
	if width <= 0 || height <= 0 {
		return nil
	}
	face := f.measurer.Face(p.Typeface, p.Size)
	if face == nil {
		log.Printf("[Render] Warning: no face for texture %q (size %.1f)", s, p.Size)
		return nil
	}

	img := ebiten.NewImage(width, height)
	op := &text.DrawOptions{}
	op.GeoM.Translate(0, baseline-face.Metrics().HAscent)
	text.Draw(img, s, face, op)
	return &Texture{img: img}
}
