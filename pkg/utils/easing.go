package utils

import "math"

// Interpolators（插值器）
//
// 插值器把线性进度 t ∈ [0, 1] 重新映射为缓动后的进度 ∈ [0, 1]，
// 用于文字位置/字号插值以及遮罩透明度动画。nil 插值器等价于线性。
//
// 参考：https://easings.net/

// Interpolator 插值器函数
type Interpolator func(t float64) float64

// Linear 线性插值器（匀速）
func Linear(t float64) float64 {
	return t
}

// Decelerate 减速插值器
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)²
func Decelerate(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Accelerate 加速插值器
// 公式：f(t) = t²
func Accelerate(t float64) float64 {
	return t * t
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Material 标准曲线（三次贝塞尔）
var (
	// FastOutSlowIn 标准曲线，控制点 (0.4, 0) (0.2, 1)
	FastOutSlowIn = CubicBezier(0.4, 0, 0.2, 1)
	// FastOutLinearIn 加速离场，控制点 (0.4, 0) (1, 1)
	FastOutLinearIn = CubicBezier(0.4, 0, 1, 1)
	// LinearOutSlowIn 减速入场，控制点 (0, 0) (0.2, 1)
	LinearOutSlowIn = CubicBezier(0, 0, 0.2, 1)
)

// CubicBezier 创建起点 (0,0)、终点 (1,1) 的三次贝塞尔插值器
//
// 参数:
//   - x1, y1: 第一个控制点
//   - x2, y2: 第二个控制点
//
// 对给定的 t（作为 x 坐标）先用牛顿迭代求曲线参数 u，失败时退回二分法，
// 再返回 y(u)。
func CubicBezier(x1, y1, x2, y2 float64) Interpolator {
	bezier := func(u, p1, p2 float64) float64 {
		inv := 1 - u
		return 3*inv*inv*u*p1 + 3*inv*u*u*p2 + u*u*u
	}
	derivative := func(u, p1, p2 float64) float64 {
		inv := 1 - u
		return 3*inv*inv*p1 + 6*inv*u*(p2-p1) + 3*u*u*(1-p2)
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		for i := 0; i < 8; i++ {
			x := bezier(u, x1, x2) - t
			if math.Abs(x) < 1e-7 {
				return bezier(u, y1, y2)
			}
			d := derivative(u, x1, x2)
			if math.Abs(d) < 1e-7 {
				break
			}
			u -= x / d
		}

		lo, hi := 0.0, 1.0
		u = t
		for i := 0; i < 64 && hi-lo > 1e-9; i++ {
			x := bezier(u, x1, x2)
			if x < t {
				lo = u
			} else {
				hi = u
			}
			u = (lo + hi) / 2
		}
		return bezier(u, y1, y2)
	}
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 精确返回 a，t=1 精确返回 b
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// LerpWith 先用插值器映射 t 再线性插值，interpolator 为 nil 时等价于 Lerp
func LerpWith(a, b, t float64, interpolator Interpolator) float64 {
	if interpolator != nil {
		t = interpolator(t)
	}
	return Lerp(a, b, t)
}

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
