package systems

import (
	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/game"
)

// CountdownSystem 每秒递减剩余时间，并推进碰边惩罚冷却
// 升级暂停期间倒计时不走，但冷却照常推进
type CountdownSystem struct {
	session *game.GameSession
	timer   components.TimerComponent
}

// NewCountdownSystem 创建倒计时系统
func NewCountdownSystem(session *game.GameSession) *CountdownSystem {
	return &CountdownSystem{
		session: session,
		timer: components.TimerComponent{
			Name:       "countdown",
			TargetTime: session.Variant().Timer.TickInterval,
		},
	}
}

// Update 推进倒计时
func (s *CountdownSystem) Update(deltaTime float64) {
	state := s.session.State()
	if state == game.StatePlaying || state == game.StateLevelUpPause {
		s.session.TickCooldown(deltaTime)
	}
	if state != game.StatePlaying {
		return
	}

	for i := advanceTimer(&s.timer, deltaTime); i > 0; i-- {
		s.session.TickCountdown()
		if s.session.State() != game.StatePlaying {
			return
		}
	}
}

// Reset 清零计时器
func (s *CountdownSystem) Reset() {
	resetTimer(&s.timer)
}
