package systems

import (
	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/game"
)

// MovementSystem 让危险球和奖励球按固定间隔下落，移出场地的实体被丢弃
type MovementSystem struct {
	session *game.GameSession
	timer   components.TimerComponent
}

// NewMovementSystem 创建下落动画系统，间隔取自变体配置（默认 50ms）
func NewMovementSystem(session *game.GameSession) *MovementSystem {
	return &MovementSystem{
		session: session,
		timer: components.TimerComponent{
			Name:       "entity_move",
			TargetTime: session.Variant().Hazard.MoveInterval,
		},
	}
}

// Update 累积时间，每满一个间隔执行一次下落
func (s *MovementSystem) Update(deltaTime float64) {
	if s.session.State() != game.StatePlaying {
		return
	}
	for i := advanceTimer(&s.timer, deltaTime); i > 0; i-- {
		s.Step()
	}
}

// Step 执行一次下落：危险球下落 2 + level*0.5，奖励球下落固定距离
// 用幸存者列表替换原列表
func (s *MovementSystem) Step() {
	variant := s.session.Variant()
	fieldHeight := s.session.Field().Height

	hazards := s.session.Hazards()
	if len(hazards) > 0 {
		fall := variant.HazardFallStep(s.session.Level())
		survivors := make([]components.Hazard, 0, len(hazards))
		for _, h := range hazards {
			h.Y += fall
			if h.Y < fieldHeight {
				survivors = append(survivors, h)
			}
		}
		s.session.SetHazards(survivors)
	}

	bonuses := s.session.Bonuses()
	if len(bonuses) > 0 {
		survivors := make([]components.Bonus, 0, len(bonuses))
		for _, b := range bonuses {
			b.Y += variant.Bonus.FallStep
			if b.Y < fieldHeight {
				survivors = append(survivors, b)
			}
		}
		s.session.SetBonuses(survivors)
	}
}

// Reset 清零计时器
func (s *MovementSystem) Reset() {
	resetTimer(&s.timer)
}
