package utils

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态，统一鼠标和触摸输入
type PointerState struct {
	// 是否按下（鼠标左键或任一触摸点）
	Pressed bool
	// 本帧刚按下 / 刚释放
	JustPressed  bool
	JustReleased bool
	// 指针位置
	X, Y int
	// 本帧滚轮纵向增量，向上滚为正
	WheelY float64
}

// 保存最后一次触摸位置（触摸释放后无法再读取位置）
var lastTouchX, lastTouchY int

// GetPointerState 获取当前帧的指针状态
// 优先检测触摸，没有触摸时使用鼠标
func GetPointerState() PointerState {
	var state PointerState
	_, state.WheelY = ebiten.Wheel()

	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.Pressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		lastTouchX, lastTouchY = state.X, state.Y
		state.JustPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
		return state
	}

	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		state.JustReleased = true
		state.X, state.Y = lastTouchX, lastTouchY
		return state
	}

	state.X, state.Y = ebiten.CursorPosition()
	state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return state
}

// 滚动参数
const (
	// DragSlop 移动超过该距离才算拖动，否则视为按住
	DragSlop = 8
	// WheelStep 滚轮每格滚动的像素
	WheelStep = 48
	// flingFriction 惯性滑动的衰减系数（每秒）
	flingFriction = 4.0
	// minFlingVelocity 低于该速度（像素/秒）停止惯性滑动
	minFlingVelocity = 20.0
)

// DragScroller 把拖动和滚轮转换为滚动位置，释放后按速度惯性滑动
//
// 滚动位置 0 表示列表顶部，向上拖动时增大，始终限制在 [0, max]。
type DragScroller struct {
	scroll   float64
	max      float64
	velocity float64

	dragging bool
	moved    bool
	startY   int
	lastY    int
}

// NewDragScroller 创建滚动器
func NewDragScroller(max float64) *DragScroller {
	return &DragScroller{max: math.Max(0, max)}
}

// SetMax 设置最大滚动位置
func (d *DragScroller) SetMax(max float64) {
	d.max = math.Max(0, max)
	d.scroll = Clamp(d.scroll, 0, d.max)
}

// Scroll 返回当前滚动位置
func (d *DragScroller) Scroll() float64 { return d.scroll }

// SetScroll 直接设置滚动位置并停止惯性滑动
func (d *DragScroller) SetScroll(v float64) {
	d.scroll = Clamp(v, 0, d.max)
	d.velocity = 0
}

// Velocity 返回当前滚动速度（像素/秒）
func (d *DragScroller) Velocity() float64 { return d.velocity }

// IsDragging 是否正在拖动（已超过 DragSlop）
func (d *DragScroller) IsDragging() bool { return d.dragging && d.moved }

// IsHolding 是否按住但没有拖动，可用于按下状态
func (d *DragScroller) IsHolding() bool { return d.dragging && !d.moved }

// Update 按本帧指针状态推进滚动
//
// 返回:
//   - bool: 滚动位置是否变化
func (d *DragScroller) Update(p PointerState, dt time.Duration) bool {
	before := d.scroll
	seconds := dt.Seconds()

	switch {
	case p.JustPressed:
		d.dragging = true
		d.moved = false
		d.startY, d.lastY = p.Y, p.Y
		d.velocity = 0

	case d.dragging && p.Pressed:
		dy := p.Y - d.lastY
		d.lastY = p.Y
		if !d.moved && abs(p.Y-d.startY) > DragSlop {
			d.moved = true
		}
		if d.moved {
			d.scroll -= float64(dy)
			if seconds > 0 {
				d.velocity = -float64(dy) / seconds
			}
		}

	case d.dragging:
		d.dragging = false
		if !d.moved {
			d.velocity = 0
		}
		d.moved = false

	default:
		if d.velocity != 0 && seconds > 0 {
			d.scroll += d.velocity * seconds
			d.velocity *= math.Exp(-flingFriction * seconds)
			if math.Abs(d.velocity) < minFlingVelocity {
				d.velocity = 0
			}
		}
	}

	if p.WheelY != 0 {
		d.scroll -= p.WheelY * WheelStep
		d.velocity = 0
	}

	clamped := Clamp(d.scroll, 0, d.max)
	if clamped != d.scroll {
		d.scroll = clamped
		if !d.dragging {
			d.velocity = 0
		}
	}
	return d.scroll != before
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
