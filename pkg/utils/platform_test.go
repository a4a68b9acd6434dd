//go:build !mobile

package utils

import "testing"

// TestIsMobile_Desktop 测试桌面端编译时 IsMobile() 返回 false
func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("COLLAPSING_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}
}

// TestUseScalingTexture 测试纹理路径开关
func TestUseScalingTexture(t *testing.T) {
	t.Setenv("COLLAPSING_MOBILE_EMULATE", "")
	t.Setenv("COLLAPSING_SCALING_TEXTURE", "")
	if UseScalingTexture() {
		t.Error("桌面端默认不应使用纹理缩放路径")
	}

	t.Setenv("COLLAPSING_SCALING_TEXTURE", "1")
	if !UseScalingTexture() {
		t.Error("COLLAPSING_SCALING_TEXTURE=1 时应使用纹理缩放路径")
	}

	t.Setenv("COLLAPSING_SCALING_TEXTURE", "")
	t.Setenv("COLLAPSING_MOBILE_EMULATE", "1")
	if !UseScalingTexture() {
		t.Error("模拟移动端时应使用纹理缩放路径")
	}
}
