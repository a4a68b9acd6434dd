package toolbar

import (
	"time"

	"github.com/hanggrian/collapsingtoolbarlayout-subtitle/pkg/utils"
)

// scrimAnimator 遮罩透明度渐变
type scrimAnimator struct {
	alpha        float64
	from, to     float64
	elapsed      time.Duration
	duration     time.Duration
	interpolator utils.Interpolator
	running      bool
}

// animateTo 从当前透明度渐变到 target，duration 不为正时立即完成
func (s *scrimAnimator) animateTo(target float64, duration time.Duration) {
	if duration <= 0 {
		s.alpha = target
		s.running = false
		return
	}

	s.from, s.to = s.alpha, target
	s.elapsed = 0
	s.duration = duration
	s.running = true
	if target > s.alpha {
		s.interpolator = utils.FastOutLinearIn
	} else {
		s.interpolator = utils.LinearOutSlowIn
	}
}

// update 推进动画，返回透明度是否变化
func (s *scrimAnimator) update(dt time.Duration) bool {
	if !s.running {
		return false
	}

	s.elapsed += dt
	t := utils.Clamp(float64(s.elapsed)/float64(s.duration), 0, 1)
	s.alpha = utils.LerpWith(s.from, s.to, t, s.interpolator)
	if t >= 1 {
		s.alpha = s.to
		s.running = false
	}
	return true
}
