package collapsing

import (
	"fmt"
	"strings"
	"testing"
)

func newTextureHelper() (*TextHelper, *fakeTextureFactory, *fakeMeasurer) {
	f := &fakeTextureFactory{}
	h, _, m := newTestHelper(WithScalingTexture(true), WithTextureFactory(f))
	h.SetTextSize(Collapsed, Title, 20)
	h.SetTextSize(Expanded, Title, 40)
	return h, f, m
}

func hasOp(ops []string, prefix string) bool {
	for _, op := range ops {
		if strings.HasPrefix(op, prefix) {
			return true
		}
	}
	return false
}

// TestScalingTextureCreated 缩放时使用展开字号预渲染的纹理
func TestScalingTextureCreated(t *testing.T) {
	h, f, _ := newTextureHelper()
	h.SetText(Title, "Headline")

	if h.UseTexture(Title) || h.HasTexture(Title) {
		t.Fatal("完全展开时缩放为 1，不应使用纹理")
	}

	h.SetExpansionFraction(0.5)
	if !h.UseTexture(Title) || !h.HasTexture(Title) {
		t.Fatalf("缩放时应使用纹理: use=%v has=%v", h.UseTexture(Title), h.HasTexture(Title))
	}
	if len(f.created) != 1 {
		t.Fatalf("创建了 %d 个纹理, 期望 1", len(f.created))
	}

	tex := f.created[0]
	// 展开字号 40：宽 8*20=160，高 32+8=40，基线在 40-8=32
	if tex.w != 160 || tex.h != 40 || tex.baseline != 32 {
		t.Errorf("纹理 = %dx%d 基线 %v, 期望 160x40 基线 32", tex.w, tex.h, tex.baseline)
	}

	c := &fakeCanvas{}
	h.Draw(c)
	if !hasOp(c.ops, `texture "Headline"`) {
		t.Errorf("应绘制纹理: %v", c.ops)
	}
	if hasOp(c.ops, "text ") {
		t.Errorf("纹理路径不应再直接绘制文字: %v", c.ops)
	}

	// 纹理左上角 = 基线 - ascent*scale
	x, y := h.CurrentPosition(Title)
	want := `texture "Headline" @ ` + formatPoint(x, y-32*0.75)
	if !hasOp(c.ops, want) {
		t.Errorf("纹理位置错误: %v, 期望 %s", c.ops, want)
	}

	// 折叠到底缩放回到 1，回到直接绘制
	h.SetExpansionFraction(1)
	c = &fakeCanvas{}
	h.Draw(c)
	if h.UseTexture(Title) || !hasOp(c.ops, `text "Headline"`) {
		t.Errorf("缩放为 1 时应直接绘制文字: %v", c.ops)
	}
}

// TestTextureInvalidation 边界或文本变化时旧纹理被释放
func TestTextureInvalidation(t *testing.T) {
	h, f, _ := newTextureHelper()
	h.SetText(Title, "Headline")
	h.SetExpansionFraction(0.5)

	first := f.created[0]
	h.SetExpandedBounds(0, 0, 380, 150)
	h.Recalculate()

	if !first.deallocated {
		t.Error("边界变化后旧纹理应被释放")
	}
	if len(f.created) != 2 || !h.HasTexture(Title) {
		t.Fatalf("边界变化后应按当前字号重建纹理: created=%d has=%v", len(f.created), h.HasTexture(Title))
	}

	second := f.created[1]
	h.SetText(Title, "Other")
	if !second.deallocated {
		t.Error("文本变化后旧纹理应被释放")
	}
	if last := f.created[len(f.created)-1]; last.text != "Other" {
		t.Errorf("新纹理文本 = %q, 期望 Other", last.text)
	}

	h.Release()
	if !f.created[len(f.created)-1].deallocated || h.HasTexture(Title) {
		t.Error("Release 后不应持有纹理")
	}
}

// TestTextureReleasedOnBoundsChangeBeforeRecalculate 边界变小后未调用 Recalculate
// 就推进进度时，不能继续绘制按旧宽度渲染的纹理
func TestTextureReleasedOnBoundsChangeBeforeRecalculate(t *testing.T) {
	h, f, _ := newTextureHelper()
	const full = "ABCDEFGHIJKLMNOPQRST"
	h.SetText(Title, full)
	h.SetExpansionFraction(0.5)

	if len(f.created) != 1 {
		t.Fatalf("创建了 %d 个纹理, 期望 1", len(f.created))
	}
	stale := f.created[0]
	// 展开字号 40：20 个字符正好 400 宽
	if stale.text != full || stale.w != 400 {
		t.Fatalf("初始纹理 = %q %d 宽, 期望完整文本 400 宽", stale.text, stale.w)
	}

	h.SetExpandedBounds(0, 0, 300, 150)
	if !stale.deallocated || h.HasTexture(Title) {
		t.Fatal("边界变化后应立即释放旧纹理")
	}

	h.SetExpansionFraction(0.4)
	display := h.DisplayText(Title)
	if display == full {
		t.Fatalf("边界变小后应重新截断, display=%q", display)
	}

	c := &fakeCanvas{}
	h.Draw(c)
	if hasOp(c.ops, `texture "`+full+`"`) {
		t.Errorf("不应绘制旧纹理: %v", c.ops)
	}
	last := f.created[len(f.created)-1]
	if last == stale || last.text != display {
		t.Errorf("应按截断后的文本重建纹理: %q, 期望 %q", last.text, display)
	}
	if last.w > 300 {
		t.Errorf("新纹理宽 %d, 超出展开区域 300", last.w)
	}
}

// TestTextureSkippedOnZeroSize 测量结果为零时跳过纹理，退回直接绘制
func TestTextureSkippedOnZeroSize(t *testing.T) {
	h, f, m := newTextureHelper()
	m.zeroMetrics = true
	h.SetText(Title, "Headline")
	h.SetExpansionFraction(0.5)

	if !h.UseTexture(Title) {
		t.Error("缩放时仍应标记纹理路径")
	}
	if h.HasTexture(Title) || len(f.created) != 0 {
		t.Fatalf("高度为零时不应创建纹理: created=%d", len(f.created))
	}

	c := &fakeCanvas{}
	h.Draw(c)
	if !hasOp(c.ops, `text "Headline"`) {
		t.Errorf("没有纹理时应直接绘制文字: %v", c.ops)
	}
}

// TestTextureDisabledWithoutScalingFlag 未开启缩放纹理时从不创建纹理
func TestTextureDisabledWithoutScalingFlag(t *testing.T) {
	f := &fakeTextureFactory{}
	h, _, _ := newTestHelper(WithTextureFactory(f))
	h.SetTextSize(Collapsed, Title, 20)
	h.SetTextSize(Expanded, Title, 40)
	h.SetText(Title, "Headline")

	for _, fraction := range []float64{0.25, 0.5, 0.75} {
		h.SetExpansionFraction(fraction)
		if h.UseTexture(Title) {
			t.Errorf("fraction=%.2f 不应使用纹理", fraction)
		}
	}
	if len(f.created) != 0 {
		t.Errorf("创建了 %d 个纹理, 期望 0", len(f.created))
	}
}

func formatPoint(x, y float64) string {
	return fmt.Sprintf("%.1f,%.1f", x, y)
}
