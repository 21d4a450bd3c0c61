package systems

import (
	"log"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/game"
)

// SpawnSystem 按各自的周期生成危险球和奖励球
//
// 危险球周期随关卡缩短（2000ms - level*150ms，有下限），关卡变化时重新计时；
// 奖励球周期固定（5s）。两者都受数量上限约束，非 Playing 状态不生成。
type SpawnSystem struct {
	session     *game.GameSession
	hazardTimer components.TimerComponent
	bonusTimer  components.TimerComponent
	armedLevel  int // hazardTimer 当前周期对应的关卡
}

// NewSpawnSystem 创建生成系统
func NewSpawnSystem(session *game.GameSession) *SpawnSystem {
	return &SpawnSystem{
		session:     session,
		hazardTimer: components.TimerComponent{Name: "hazard_spawn"},
		bonusTimer: components.TimerComponent{
			Name:       "bonus_spawn",
			TargetTime: session.Variant().Bonus.SpawnInterval,
		},
	}
}

// Update 推进两个生成计时器
func (s *SpawnSystem) Update(deltaTime float64) {
	if s.session.State() != game.StatePlaying {
		return
	}

	variant := s.session.Variant()
	level := s.session.Level()

	if variant.HazardsUnlocked(level) {
		s.armHazardTimer(level)
		for i := advanceTimer(&s.hazardTimer, deltaTime); i > 0; i-- {
			s.trySpawnHazard()
		}
	}

	if variant.BonusesUnlocked(level) {
		for i := advanceTimer(&s.bonusTimer, deltaTime); i > 0; i-- {
			s.trySpawnBonus()
		}
	}
}

// armHazardTimer 关卡变化时按新关卡的周期重新计时
func (s *SpawnSystem) armHazardTimer(level int) {
	if s.armedLevel == level && s.hazardTimer.TargetTime > 0 {
		return
	}
	s.armedLevel = level
	s.hazardTimer.TargetTime = s.session.Variant().HazardSpawnInterval(level)
	s.hazardTimer.CurrentTime = 0
	log.Printf("[SpawnSystem] Hazard spawn interval for level %d: %.2fs", level, s.hazardTimer.TargetTime)
}

func (s *SpawnSystem) trySpawnHazard() {
	limit := s.session.Variant().HazardCapacity(s.session.Level())
	if len(s.session.Hazards()) >= limit {
		return
	}
	h := s.session.SpawnHazard()
	log.Printf("[SpawnSystem] Hazard %s at (%.0f, %.0f)", h.ID, h.X, h.Y)
}

func (s *SpawnSystem) trySpawnBonus() {
	if len(s.session.Bonuses()) >= s.session.Variant().Bonus.Capacity {
		return
	}
	b := s.session.SpawnBonus()
	log.Printf("[SpawnSystem] Bonus %s at (%.0f, %.0f)", b.ID, b.X, b.Y)
}

// Reset 清零两个计时器，下次进入 Playing 时重新计时
func (s *SpawnSystem) Reset() {
	resetTimer(&s.hazardTimer)
	resetTimer(&s.bonusTimer)
	s.armedLevel = 0
}
