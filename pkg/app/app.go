// Package app 提供折叠标题栏预览程序的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
//
// 预览界面是一个可滚动列表，顶部是 CollapsingToolbarLayout：
// 拖动、滚轮或惯性滑动改变滚动位置，滚动位置换算成容器偏移。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/colors"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/config"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/embedded"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/render"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/toolbar"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/typeface"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/utils"
)

// 预览窗口布局
const (
	ScreenWidth  = 400
	ScreenHeight = 720

	// HeaderHeight 展开状态下标题栏高度（不含状态栏）
	HeaderHeight = 256
	// MobileStatusBarInset 移动端模拟的状态栏高度
	MobileStatusBarInset = 24

	listItemHeight = 64
	listItemCount  = 30
	listTextSize   = 16
)

// PresetPattern 内置预设配置
const PresetPattern = "data/presets/*.yaml"

var (
	headerBackground = color.NRGBA{R: 0x5c, G: 0x6b, B: 0xc0, A: 0xff}
	headerStripe     = color.NRGBA{R: 0x7e, G: 0x8b, B: 0xd0, A: 0xff}
	listBackground   = color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
	listDivider      = color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	listText         = color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 属性配置文件路径，为空时使用内置默认配置
	ConfigPath string
	// Watch 监听 ConfigPath，文件修改后自动重新加载
	Watch bool
	// InsetTop 顶部窗口内边距，小于 0 时按平台自动决定
	InsetTop int
}

// App 预览程序，实现 ebiten.Game 接口
type App struct {
	layout   *toolbar.CollapsingToolbarLayout
	fonts    *typeface.Registry
	measurer *render.Measurer
	scroller *utils.DragScroller
	watcher  *configWatcher
	listFace *text.GoTextFace

	sources     []string
	sourceIndex int
	insetTop    int
	layoutRTL   bool
	pressed     bool
	tick        time.Duration
	verbose     bool
}

// NewApp 创建并初始化预览程序
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sources, err := attributeSources(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	attrs, err := loadAttributes(sources[0])
	if err != nil {
		return nil, fmt.Errorf("属性配置加载失败: %w", err)
	}

	fonts := typeface.NewRegistry()
	measurer := render.NewMeasurer(fonts.Default())
	layout, err := toolbar.NewCollapsingToolbarLayout(attrs, fonts, measurer)
	if err != nil {
		return nil, fmt.Errorf("标题栏初始化失败: %w", err)
	}

	insetTop := cfg.InsetTop
	if insetTop < 0 {
		insetTop = 0
		if utils.IsMobile() {
			insetTop = MobileStatusBarInset
		}
	}

	a := &App{
		layout:   layout,
		fonts:    fonts,
		measurer: measurer,
		listFace: measurer.Face(fonts.Default(), listTextSize),
		sources:  sources,
		insetTop: insetTop,
		tick:     time.Second / time.Duration(ebiten.TPS()),
		verbose:  cfg.Verbose,
	}
	a.layoutHeader()
	a.scroller = utils.NewDragScroller(maxScroll(a.headerHeight(), layout.MinHeight(), insetTop))

	if cfg.Watch && cfg.ConfigPath != "" {
		w, err := newConfigWatcher(cfg.ConfigPath)
		if err != nil {
			log.Printf("[App] Warning: config watch disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	log.Printf("[App] Loaded %s (%d sources, insetTop=%d)", sources[0], len(sources), insetTop)
	return a, nil
}

// attributeSources 返回可切换的配置来源，第一个是启动时加载的配置
func attributeSources(configPath string) ([]string, error) {
	first := configPath
	if first == "" {
		first = embedded.DefaultAttributesPath
	}
	sources := []string{first}
	if first != embedded.DefaultAttributesPath {
		sources = append(sources, embedded.DefaultAttributesPath)
	}

	presets, err := embedded.Glob(PresetPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	sort.Strings(presets)
	return append(sources, presets...), nil
}

// loadAttributes 从嵌入资源或文件系统加载属性配置
//
// 磁盘上存在的文件优先；否则以 "data/" 开头的路径从嵌入资源读取。
func loadAttributes(path string) (*config.Attributes, error) {
	if _, err := os.Stat(path); err != nil && strings.HasPrefix(path, "data/") && embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded attributes %s: %w", path, err)
		}
		return config.ParseAttributes(data)
	}
	return config.LoadAttributes(path)
}

// headerOffset 把列表滚动位置换算成标题栏偏移
//
// 标题栏最多上移 高度 - 最小高度 - 顶部内边距，之后固定，列表继续在它下面滚动。
func headerOffset(scroll float64, height, minHeight, insetTop int) int {
	collapseRange := height - minHeight - insetTop
	if collapseRange <= 0 || scroll <= 0 {
		return 0
	}
	if scroll > float64(collapseRange) {
		return -collapseRange
	}
	return -int(scroll)
}

// maxScroll 最大滚动位置：列表底部贴住屏幕底部，且至少能让标题栏完全折叠
func maxScroll(height, minHeight, insetTop int) float64 {
	content := height + listItemCount*listItemHeight - ScreenHeight
	collapseRange := height - minHeight - insetTop
	if collapseRange > content {
		content = collapseRange
	}
	if content < 0 {
		return 0
	}
	return float64(content)
}

func (a *App) headerHeight() int {
	return HeaderHeight + a.insetTop
}

func (a *App) layoutHeader() {
	a.layout.Layout(ScreenWidth, a.headerHeight())
	a.layout.SetWindowInsetTop(a.insetTop)
}

// applySource 加载配置并应用到标题栏，失败时保留当前配置
func (a *App) applySource(path string) {
	attrs, err := loadAttributes(path)
	if err == nil {
		err = a.layout.ApplyAttributes(attrs)
	}
	if err != nil {
		log.Printf("[App] Warning: failed to apply %s: %v", path, err)
		return
	}
	a.scroller.SetMax(maxScroll(a.headerHeight(), a.layout.MinHeight(), a.insetTop))
	a.layout.OnOffsetChanged(headerOffset(a.scroller.Scroll(), a.headerHeight(), a.layout.MinHeight(), a.insetTop))
	log.Printf("[App] Applied %s", path)
}

// Update 更新预览状态
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.watcher != nil {
		if path, ok := a.watcher.poll(); ok {
			a.applySource(path)
		}
	}

	a.handleKeys()

	pointer := utils.GetPointerState()
	if a.scroller.Update(pointer, a.tick) {
		a.layout.OnOffsetChanged(headerOffset(a.scroller.Scroll(), a.headerHeight(), a.layout.MinHeight(), a.insetTop))
	}

	// 按住标题栏（未拖动）时进入按下状态
	visible := a.headerHeight() + a.layout.Offset()
	pressed := a.scroller.IsHolding() && pointer.Y < visible
	if pressed != a.pressed {
		a.pressed = pressed
		var states colors.StateSet
		if pressed {
			states = colors.StateSet{colors.Pressed}
		}
		a.layout.SetDrawableState(states)
	}

	a.layout.Update(a.tick)
	return nil
}

func (a *App) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.sourceIndex = (a.sourceIndex + 1) % len(a.sources)
		a.applySource(a.sources[a.sourceIndex])

	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.layoutRTL = !a.layoutRTL
		a.layout.SetLayoutRTL(a.layoutRTL)
		log.Printf("[App] Layout RTL: %v", a.layoutRTL)

	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		a.layout.SetTitleEnabled(!a.layout.TitleEnabled())

	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		if a.insetTop > 0 {
			a.insetTop = 0
		} else {
			a.insetTop = MobileStatusBarInset
		}
		a.layoutHeader()
		a.scroller.SetMax(maxScroll(a.headerHeight(), a.layout.MinHeight(), a.insetTop))
		a.layout.OnOffsetChanged(headerOffset(a.scroller.Scroll(), a.headerHeight(), a.layout.MinHeight(), a.insetTop))

	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
}

// Draw 绘制列表和标题栏
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(listBackground)

	// 列表从标题栏底部开始，随滚动上移
	top := float32(float64(a.headerHeight()) - a.scroller.Scroll())
	for i := 0; i < listItemCount; i++ {
		y := top + float32(i*listItemHeight)
		if y+listItemHeight < 0 || y > ScreenHeight {
			continue
		}
		vector.DrawFilledRect(screen, 0, y+listItemHeight-1, ScreenWidth, 1, listDivider, false)
		if a.listFace != nil {
			op := &text.DrawOptions{}
			op.GeoM.Translate(16, float64(y)+listItemHeight/2-listTextSize/2)
			op.ColorScale.ScaleWithColor(listText)
			text.Draw(screen, fmt.Sprintf("Item %d", i+1), a.listFace, op)
		}
	}

	// 标题栏背景随容器上移
	oy := float32(a.layout.Offset())
	h := float32(a.headerHeight())
	vector.DrawFilledRect(screen, 0, oy, ScreenWidth, h, headerBackground, false)
	for x := float32(-h); x < ScreenWidth; x += 48 {
		vector.StrokeLine(screen, x, oy+h, x+h, oy, 12, headerStripe, true)
	}

	a.layout.Draw(screen)
	a.layout.ConsumeInvalidation()
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close 停止配置监听并释放纹理
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[App] Warning: failed to close watcher: %v", err)
		}
		a.watcher = nil
	}
	a.layout.Release()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
