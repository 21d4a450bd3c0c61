package game

import "github.com/decker502/tiltorbs/pkg/components"

// LevelNotices 当前关卡已启用的特殊机制，用于升级提示和图例
type LevelNotices struct {
	HazardsActive       bool // ⚠️ 紫色危险球
	BonusesActive       bool // ⏱️ 金色时间球
	BorderPenaltyActive bool // 🚫 碰边扣时
}

// Snapshot 渲染层每帧读取的只读状态副本
// 列表是深拷贝，渲染层可以放心持有
type Snapshot struct {
	State          State
	Mode           Mode
	VariantName    string
	Level          int
	Score          int
	TimeRemaining  int
	OrbsCollected  int
	OrbsNeeded     int
	Progress       float64 // OrbsCollected / OrbsNeeded，用于进度条
	GameOverReason GameOverReason

	Avatar  components.Body
	Target  components.Body
	Hazards []components.Hazard
	Bonuses []components.Bonus

	BorderPenaltyOnCooldown bool
	Notices                 LevelNotices
}

// Snapshot 生成当前状态的快照
func (s *GameSession) Snapshot() Snapshot {
	needed := s.OrbsNeeded()
	progress := 0.0
	if needed > 0 {
		progress = float64(s.orbsCollected) / float64(needed)
	}

	hazards := make([]components.Hazard, len(s.hazards))
	copy(hazards, s.hazards)
	bonuses := make([]components.Bonus, len(s.bonuses))
	copy(bonuses, s.bonuses)

	return Snapshot{
		State:          s.state,
		Mode:           s.mode,
		VariantName:    s.variant.Name,
		Level:          s.level,
		Score:          s.score,
		TimeRemaining:  s.timeRemaining,
		OrbsCollected:  s.orbsCollected,
		OrbsNeeded:     needed,
		Progress:       progress,
		GameOverReason: s.reason,

		Avatar:  s.Avatar(),
		Target:  s.Target(),
		Hazards: hazards,
		Bonuses: bonuses,

		BorderPenaltyOnCooldown: s.BorderPenaltyOnCooldown(),
		Notices: LevelNotices{
			HazardsActive:       s.variant.HazardsUnlocked(s.level),
			BonusesActive:       s.variant.BonusesUnlocked(s.level),
			BorderPenaltyActive: s.variant.BorderPenaltyActive(s.level),
		},
	}
}
