//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	cp -r data mobile/ && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.hanggrian.collapsingtoolbar -o build/android/collapsingtoolbar.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r data mobile/ && ebitenmobile bind -target ios -tags mobile -o build/ios/CollapsingToolbar.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/app"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/embedded"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	// 移动端没有配置文件路径，使用内置配置；状态栏内边距按平台决定
	previewApp, err := app.NewApp(app.Config{
		Verbose:  true,
		InsetTop: -1,
	})
	if err != nil {
		log.Fatalf("预览程序初始化失败: %v", err)
	}

	mobile.SetGame(previewApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
