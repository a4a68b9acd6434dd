// validate_attributes - 折叠标题栏属性配置检查工具
//
// 解析 YAML 属性文件，检查字段合法性和字体解析，
// 并在给定尺寸下排版一次，报告展开/折叠两端实际显示的文字。
//
// 用法:
//
//	go run ./cmd/validate_attributes                       # 检查 data/ 下所有配置
//	go run ./cmd/validate_attributes -width 360 my.yaml    # 检查指定文件
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/collapsing"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/config"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/render"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/toolbar"
	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/typeface"
)

var (
	width   = flag.Int("width", 400, "标题栏宽度")
	height  = flag.Int("height", 256, "标题栏展开高度")
	inset   = flag.Int("inset", 0, "顶部窗口内边距")
	verbose = flag.Bool("verbose", false, "输出详细日志")
)

type report struct {
	file    string
	passed  bool
	message string
}

var reports []report

func addReport(file string, passed bool, format string, args ...any) {
	r := report{file: file, passed: passed, message: fmt.Sprintf(format, args...)}
	reports = append(reports, r)
	status := "✗ FAIL"
	if passed {
		status = "✓ PASS"
	}
	fmt.Printf("%s | %-40s | %s\n", status, file, r.message)
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	files := flag.Args()
	if len(files) == 0 {
		files = defaultFiles()
	}
	if len(files) == 0 {
		fmt.Println("❌ 没有找到属性配置文件")
		os.Exit(1)
	}

	for _, file := range files {
		validate(file)
	}

	failed := 0
	for _, r := range reports {
		if !r.passed {
			failed++
		}
	}
	fmt.Printf("\n共 %d 项检查，%d 项失败\n", len(reports), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// defaultFiles 返回 data/ 下的默认配置和预设
func defaultFiles() []string {
	files := []string{"data/collapsing_toolbar.yaml"}
	presets, _ := filepath.Glob("data/presets/*.yaml")
	sort.Strings(presets)
	return append(files, presets...)
}

func validate(file string) {
	attrs, err := config.LoadAttributes(file)
	if err != nil {
		addReport(file, false, "解析失败: %v", err)
		return
	}
	addReport(file, true, "字段合法 (title=%q)", attrs.Title)

	fonts := typeface.NewRegistry()
	for family, path := range attrs.Fonts {
		fonts.RegisterFile(family, path)
	}
	for _, name := range []string{
		attrs.ExpandedTitleTextAppearance,
		attrs.CollapsedTitleTextAppearance,
		attrs.ExpandedSubtitleTextAppearance,
		attrs.CollapsedSubtitleTextAppearance,
	} {
		ta, _ := attrs.Appearance(name)
		if ta.FontFamily == "" {
			continue
		}
		if _, err := fonts.Resolve(ta.FontFamily); err != nil {
			addReport(file, false, "%s: %v", name, err)
		}
	}

	layout, err := toolbar.NewCollapsingToolbarLayout(attrs, fonts, render.NewMeasurer(fonts.Default()),
		collapsing.WithScalingTexture(false))
	if err != nil {
		addReport(file, false, "标题栏创建失败: %v", err)
		return
	}
	defer layout.Release()

	if tb := layout.Toolbar(); tb.ID == "" {
		addReport(file, true, "工具栏: 未命名, 高度 %d", tb.Height)
	} else {
		addReport(file, true, "工具栏: %s, 高度 %d", tb.ID, tb.Height)
	}

	layout.Layout(*width, *height+*inset)
	layout.SetWindowInsetTop(*inset)
	helper := layout.TextHelper()

	for _, fraction := range []float64{0, 1} {
		helper.SetExpansionFraction(fraction)
		title := helper.DisplayText(collapsing.Title)
		subtitle := helper.DisplayText(collapsing.Subtitle)
		tx, ty := helper.CurrentPosition(collapsing.Title)

		state := "展开"
		if fraction == 1 {
			state = "折叠"
		}
		truncated := title != attrs.Title || subtitle != attrs.Subtitle
		msg := fmt.Sprintf("%s: 标题 %q @ (%.1f, %.1f) 副标题 %q", state, title, tx, ty, subtitle)
		if truncated {
			msg += " [已截断]"
		}
		addReport(file, helper.DrawTitle() || attrs.Title == "", "%s", msg)
	}
}
