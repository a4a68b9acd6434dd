//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false
// 可以通过设置环境变量 COLLAPSING_MOBILE_EMULATE=1 强制启用移动模式（用于本地调试）
func IsMobile() bool {
	return os.Getenv("COLLAPSING_MOBILE_EMULATE") == "1"
}

// UseScalingTexture 当前平台是否需要走纹理缩放路径
//
// 桌面端 GPU 直接绘制缩放后的字形，不需要纹理；
// 设置 COLLAPSING_SCALING_TEXTURE=1 可强制启用（用于对比两条渲染路径）。
func UseScalingTexture() bool {
	return IsMobile() || os.Getenv("COLLAPSING_SCALING_TEXTURE") == "1"
}
