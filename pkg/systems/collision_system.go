package systems

import (
	"github.com/decker502/tiltorbs/pkg/game"
	"github.com/decker502/tiltorbs/pkg/utils"
)

// CollisionSystem 处理玩家与各类实体的圆形碰撞
//
// 检测顺序：
//  1. 危险球：碰到即结束本局，本 tick 不再有其他状态变化
//  2. 目标 orb：计数、得分、重生；可能同步进入升级暂停
//  3. 奖励球：每个被碰到的奖励球各结算一次，按 ID 移除
type CollisionSystem struct {
	session *game.GameSession
}

// NewCollisionSystem 创建碰撞系统
func NewCollisionSystem(session *game.GameSession) *CollisionSystem {
	return &CollisionSystem{session: session}
}

// Update 使用玩家当前位置执行一次碰撞检测
func (s *CollisionSystem) Update(deltaTime float64) {
	if s.session.State() != game.StatePlaying {
		return
	}

	variant := s.session.Variant()
	level := s.session.Level()
	avatar := s.session.Avatar()

	if variant.HazardsUnlocked(level) {
		for _, h := range s.session.Hazards() {
			if utils.CirclesOverlap(avatar, h.Body) {
				s.session.HitHazard()
				return
			}
		}
	}

	if utils.CirclesOverlap(avatar, s.session.Target()) {
		s.session.CollectTarget()
		// 升级后危险球/奖励球已清空，状态也不再是 Playing
		if s.session.State() != game.StatePlaying {
			return
		}
	}

	if variant.BonusesUnlocked(level) {
		// 先收集命中的 ID，再逐个移除，避免边遍历边删除导致跳过或重复结算
		var hit []string
		for _, b := range s.session.Bonuses() {
			if utils.CirclesOverlap(avatar, b.Body) {
				hit = append(hit, b.ID)
			}
		}
		for _, id := range hit {
			s.session.CollectBonus(id)
		}
	}
}
