//go:build mobile

package utils

// IsMobile 检测当前是否在移动设备上运行
// 移动端编译时返回 true
func IsMobile() bool {
	return true
}

// UseScalingTexture 移动端每帧重新栅格化缩放字形的代价较高，
// 统一走纹理缩放路径
func UseScalingTexture() bool {
	return true
}
