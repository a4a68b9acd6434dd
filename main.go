package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/app"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/embedded"
)

func main() {
	configPath := flag.String("config", "", "属性配置文件路径（默认使用内置配置）")
	watch := flag.Bool("watch", false, "监听配置文件，修改后自动重新加载")
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	insetTop := flag.Int("inset", -1, "顶部窗口内边距（-1 按平台自动决定）")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	previewApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Watch:      *watch,
		InsetTop:   *insetTop,
	})
	if err != nil {
		log.Fatalf("预览程序初始化失败: %v", err)
	}
	defer previewApp.Close()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("CollapsingToolbarLayout Subtitle")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// P 切换预设，R 切换布局方向，T 开关标题，I 开关状态栏内边距
	if err := ebiten.RunGame(previewApp); err != nil {
		log.Fatal(err)
	}
}
