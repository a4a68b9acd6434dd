// Package typeface 提供字体句柄与按字体族名称解析字体的能力
//
// 平台的字体匹配逻辑不在本项目范围内，这里只维护"名称 -> 字体源"的注册表：
//   - 内置 Go 字体（sans-serif / sans-serif-medium / monospace 等）
//   - 通过配置文件注册的 TTF/OTF 文件
package typeface

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Typeface 字体句柄
//
// 引擎通过指针比较判断字体是否变化，同一字体族始终返回同一个 *Typeface。
// Source 可以为 nil（测试中使用的占位字体）。
type Typeface struct {
	Family string
	Source *text.GoTextFaceSource
}

// String 返回字体族名称
func (t *Typeface) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Family
}

// Resolver 字体解析能力
type Resolver interface {
	Resolve(family string) (*Typeface, error)
}

// 内置字体族名称
const (
	SansSerif       = "sans-serif"
	SansSerifMedium = "sans-serif-medium"
	SansSerifBold   = "sans-serif-bold"
	SansSerifItalic = "sans-serif-italic"
	Monospace       = "monospace"
)

var builtin = map[string][]byte{
	SansSerif:       goregular.TTF,
	SansSerifMedium: gomedium.TTF,
	SansSerifBold:   gobold.TTF,
	SansSerifItalic: goitalic.TTF,
	Monospace:       gomono.TTF,
}

// aliases 常见别名映射到内置字体
var aliases = map[string]string{
	"":        SansSerif,
	"default": SansSerif,
	"normal":  SansSerif,
	"sans":    SansSerif,
	"serif":   SansSerif,
	"bold":    SansSerifBold,
	"medium":  SansSerifMedium,
	"italic":  SansSerifItalic,
	"mono":    Monospace,
}

// Registry 字体注册表，实现 Resolver
//
// 内置字体在首次解析时才创建字体源。
type Registry struct {
	faces map[string]*Typeface
	files map[string]string
}

// NewRegistry 创建只包含内置字体的注册表
func NewRegistry() *Registry {
	return &Registry{
		faces: make(map[string]*Typeface),
		files: make(map[string]string),
	}
}

// RegisterFile 注册字体文件，文件在首次解析时读取
func (r *Registry) RegisterFile(family, path string) {
	family = normalize(family)
	r.files[family] = path
	delete(r.faces, family)
}

// Register 注册已加载的字体数据
func (r *Registry) Register(family string, data []byte) (*Typeface, error) {
	family = normalize(family)
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load font %q: %w", family, err)
	}
	tf := &Typeface{Family: family, Source: source}
	r.faces[family] = tf
	return tf, nil
}

// Resolve 按字体族名称解析字体
//
// 查找顺序：已缓存 -> 注册的文件 -> 内置字体 -> 别名。
// 未知名称返回错误，调用方可以回退到 Default()。
func (r *Registry) Resolve(family string) (*Typeface, error) {
	family = normalize(family)
	if tf, ok := r.faces[family]; ok {
		return tf, nil
	}

	if path, ok := r.files[family]; ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file for %q: %w", family, err)
		}
		log.Printf("[Typeface] Loaded font file %s for family %q", path, family)
		return r.Register(family, data)
	}

	if data, ok := builtin[family]; ok {
		return r.Register(family, data)
	}

	if target, ok := aliases[family]; ok {
		tf, err := r.Resolve(target)
		if err != nil {
			return nil, err
		}
		r.faces[family] = tf
		return tf, nil
	}

	return nil, fmt.Errorf("unknown font family %q", family)
}

// Default 返回默认字体（sans-serif）
func (r *Registry) Default() *Typeface {
	tf, err := r.Resolve(SansSerif)
	if err != nil {
		// 内置字体数据是编译进来的，解析失败说明字体源本身损坏
		panic(fmt.Sprintf("typeface: builtin font unusable: %v", err))
	}
	return tf
}

// ResolveOrDefault 解析失败时记录日志并返回默认字体
func (r *Registry) ResolveOrDefault(family string) *Typeface {
	tf, err := r.Resolve(family)
	if err != nil {
		log.Printf("[Typeface] Warning: %v, falling back to %s", err, SansSerif)
		return r.Default()
	}
	return tf
}

func normalize(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}
