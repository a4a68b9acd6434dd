package app

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/embedded"
)

func initTestData() {
	embedded.InitFS(fstest.MapFS{
		"data/collapsing_toolbar.yaml": {Data: []byte("title: Default\n")},
		"data/presets/rtl.yaml":        {Data: []byte("title: RTL\n")},
		"data/presets/centered.yaml":   {Data: []byte("title: Centered\nexpandedTitleGravity: center\n")},
	})
}

// TestHeaderOffset 测试滚动位置到标题栏偏移的换算
func TestHeaderOffset(t *testing.T) {
	tests := []struct {
		name      string
		scroll    float64
		height    int
		minHeight int
		insetTop  int
		want      int
	}{
		{"顶部", 0, 256, 56, 0, 0},
		{"负滚动", -20, 256, 56, 0, 0},
		{"折叠中", 100, 256, 56, 0, -100},
		{"完全折叠", 200, 256, 56, 0, -200},
		{"超出折叠范围后固定", 900, 256, 56, 0, -200},
		{"有顶部内边距", 900, 280, 56, 24, -200},
		{"没有折叠范围", 50, 56, 56, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := headerOffset(tt.scroll, tt.height, tt.minHeight, tt.insetTop)
			if got != tt.want {
				t.Errorf("headerOffset(%v) = %d, expected %d", tt.scroll, got, tt.want)
			}
		})
	}
}

// TestMaxScroll 测试最大滚动位置
func TestMaxScroll(t *testing.T) {
	// 256 + 30*64 - 720 = 1456
	if got := maxScroll(256, 56, 0); got != 1456 {
		t.Errorf("maxScroll = %v, expected 1456", got)
	}

	// 折叠范围大于列表可滚动距离时，至少能完全折叠
	if got := maxScroll(3000, 56, 0); got < 3000-56 {
		t.Errorf("maxScroll = %v, expected at least %d", got, 3000-56)
	}
}

// TestAttributeSources 测试配置来源列表
func TestAttributeSources(t *testing.T) {
	initTestData()

	sources, err := attributeSources("")
	if err != nil {
		t.Fatalf("attributeSources() error: %v", err)
	}
	want := []string{
		embedded.DefaultAttributesPath,
		"data/presets/centered.yaml",
		"data/presets/rtl.yaml",
	}
	if len(sources) != len(want) {
		t.Fatalf("attributeSources() = %v, expected %v", sources, want)
	}
	for i := range want {
		if sources[i] != want[i] {
			t.Errorf("sources[%d] = %s, expected %s", i, sources[i], want[i])
		}
	}

	sources, err = attributeSources("my.yaml")
	if err != nil {
		t.Fatalf("attributeSources() error: %v", err)
	}
	if sources[0] != "my.yaml" || sources[1] != embedded.DefaultAttributesPath {
		t.Errorf("attributeSources(my.yaml) = %v", sources)
	}
}

// TestLoadAttributes 测试从嵌入资源和磁盘加载
func TestLoadAttributes(t *testing.T) {
	initTestData()

	attrs, err := loadAttributes("data/presets/centered.yaml")
	if err != nil {
		t.Fatalf("loadAttributes(embedded) error: %v", err)
	}
	if attrs.Title != "Centered" || attrs.ExpandedTitleGravity != "center" {
		t.Errorf("unexpected embedded attributes: title=%q gravity=%q", attrs.Title, attrs.ExpandedTitleGravity)
	}

	path := filepath.Join(t.TempDir(), "attrs.yaml")
	if err := os.WriteFile(path, []byte("title: Disk\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	attrs, err = loadAttributes(path)
	if err != nil {
		t.Fatalf("loadAttributes(disk) error: %v", err)
	}
	if attrs.Title != "Disk" {
		t.Errorf("Title = %q, expected Disk", attrs.Title)
	}

	if _, err := loadAttributes("data/presets/missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestIsConfigChange 测试监听事件过滤
func TestIsConfigChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attrs.yaml")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"写入", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"重新创建", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"权限变化", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"删除", fsnotify.Event{Name: path, Op: fsnotify.Remove}, false},
		{"其他文件", fsnotify.Event{Name: path + ".swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConfigChange(tt.event, path); got != tt.want {
				t.Errorf("isConfigChange(%v) = %v, expected %v", tt.event, got, tt.want)
			}
		})
	}
}

// TestConfigWatcher 测试文件修改后能收到通知
func TestConfigWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attrs.yaml")
	if err := os.WriteFile(path, []byte("title: A\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := newConfigWatcher(path)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("title: B\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.changes:
		if got != w.path {
			t.Errorf("change path = %s, expected %s", got, w.path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification received")
	}
}
