package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/config"
)

// GameSession 一局游戏的全部可变状态（根聚合）
//
// 所有 tick 处理函数都通过 GameLoop 顺序地持有它的独占引用，
// 不存在并发访问，因此不需要锁。
//
// 尺寸、所需 orb 数量、时间预算都是 level 的纯函数，每次按需计算，不单独存储。
type GameSession struct {
	variant *config.VariantConfig
	field   config.FieldSize
	rng     *rand.Rand
	newID   func() string

	state   State
	mode    Mode
	serial  int // 每次开局递增，GameLoop 用它识别新的一局
	reason  GameOverReason
	events  []Event
	hasMode bool

	level          int
	score          int
	timeRemaining  int
	orbsCollected  int
	borderCooldown float64 // 碰边惩罚剩余冷却时间（秒），> 0 表示冷却中

	avatarX, avatarY float64
	targetX, targetY float64

	hazards []components.Hazard
	bonuses []components.Bonus
}

// NewGameSession 创建处于主菜单状态的会话
//
// 参数：
//   - variant: 变体配置（常量表）
//   - field: 场地尺寸
//   - rng: 随机数源，nil 时使用当前时间作为种子（测试时注入固定种子）
func NewGameSession(variant *config.VariantConfig, field config.FieldSize, rng *rand.Rand) *GameSession {
	if variant == nil {
		variant = config.DefaultVariant()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &GameSession{
		variant: variant,
		field:   field,
		rng:     rng,
		newID:   uuid.NewString,
		state:   StateMenu,
		level:   1,
	}
}

// StartSession 以指定模式开局（Menu/GameOver → Playing）
func (s *GameSession) StartSession(mode Mode) error {
	if s.state != StateMenu && s.state != StateGameOver {
		return fmt.Errorf("start session from %s: %w", s.state, ErrInvalidTransition)
	}
	if mode.Kind == ModeFixedLevel && !s.variant.IsStartLevelAllowed(mode.StartLevel) {
		return fmt.Errorf("level %d (allowed %v): %w", mode.StartLevel, s.variant.Progression.StartLevels, ErrInvalidStartLevel)
	}

	s.mode = mode
	s.hasMode = true
	s.reset()
	return nil
}

// RestartSession 使用上一次选择的模式重新开局（GameOver/Menu → Playing）
// 从未开局时使用无尽模式
func (s *GameSession) RestartSession() error {
	if s.state != StateMenu && s.state != StateGameOver {
		return fmt.Errorf("restart session from %s: %w", s.state, ErrInvalidTransition)
	}
	if !s.hasMode {
		s.mode = InfiniteMode()
		s.hasMode = true
	}
	s.reset()
	return nil
}

// AcknowledgeLevelUp 玩家确认升级提示后继续（LevelUpPause → Playing）
func (s *GameSession) AcknowledgeLevelUp() error {
	if s.state != StateLevelUpPause {
		return fmt.Errorf("acknowledge level up from %s: %w", s.state, ErrInvalidTransition)
	}
	s.state = StatePlaying
	log.Printf("[GameSession] Continue at level %d", s.level)
	return nil
}

// ReturnToMenu 从结算界面返回主菜单（GameOver → Menu）
func (s *GameSession) ReturnToMenu() error {
	if s.state != StateGameOver {
		return fmt.Errorf("return to menu from %s: %w", s.state, ErrInvalidTransition)
	}
	s.state = StateMenu
	log.Printf("[GameSession] Returned to menu")
	return nil
}

// reset 完全重新初始化本局状态
func (s *GameSession) reset() {
	start := s.mode.InitialLevel()

	s.serial++
	s.state = StatePlaying
	s.reason = ReasonNone
	s.level = start
	s.score = 0
	// 起始关卡使用上一关的时间预算：第 1 关即基础时间（30 秒）
	s.timeRemaining = s.variant.TimeLimit(start - 1)
	s.orbsCollected = 0
	s.borderCooldown = 0
	s.hazards = nil
	s.bonuses = nil

	// 玩家从场地中心出发
	s.avatarX = s.field.Width / 2
	s.avatarY = s.field.Height / 2
	s.respawnTarget()

	log.Printf("[GameSession] Session #%d started: mode=%s, level=%d, time=%ds",
		s.serial, s.mode, s.level, s.timeRemaining)
	s.emit(Event{Type: EventSessionStarted, Level: s.level})
}

// RandomPosition 返回直径为 size 的实体在场地内的随机左上角坐标
func (s *GameSession) RandomPosition(size float64) (float64, float64) {
	maxX := s.field.Width - size
	maxY := s.field.Height - size
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	return s.rng.Float64() * maxX, s.rng.Float64() * maxY
}

func (s *GameSession) respawnTarget() {
	s.targetX, s.targetY = s.RandomPosition(s.TargetSize())
}

// CollectTarget 玩家吃到目标 orb
//
// 得分按吃到时的关卡计算；达到本关所需数量时同步进入升级暂停：
// 关卡 +1，计数清零，时间重置为刚完成关卡的预算，清空危险球和奖励球。
// 返回是否触发了升级。
func (s *GameSession) CollectTarget() bool {
	if s.state != StatePlaying {
		return false
	}

	s.orbsCollected++
	s.score += s.variant.TargetPoints(s.level)
	s.emit(Event{Type: EventTargetCollected, Level: s.level, Score: s.score})

	leveledUp := false
	if s.orbsCollected >= s.variant.OrbsNeeded(s.level) {
		s.levelUp()
		leveledUp = true
	}

	s.respawnTarget()
	return leveledUp
}

func (s *GameSession) levelUp() {
	completed := s.level
	s.level++
	s.orbsCollected = 0
	s.timeRemaining = s.variant.TimeLimit(completed)
	s.hazards = nil
	s.bonuses = nil
	s.state = StateLevelUpPause

	log.Printf("[GameSession] Level up: %d -> %d, score=%d, time=%ds", completed, s.level, s.score, s.timeRemaining)
	s.emit(Event{Type: EventLevelUp, Level: s.level, Score: s.score})
}

// HitHazard 玩家碰到危险球，立即结束本局
func (s *GameSession) HitHazard() {
	if s.state != StatePlaying {
		return
	}
	s.endGame(ReasonHazard)
}

// CollectBonus 玩家吃到指定 ID 的奖励球：加时间、加分并移除该球
// ID 不存在（已被移除）时返回 false
func (s *GameSession) CollectBonus(id string) bool {
	if s.state != StatePlaying {
		return false
	}

	found := false
	survivors := make([]components.Bonus, 0, len(s.bonuses))
	for _, b := range s.bonuses {
		if !found && b.ID == id {
			found = true
			continue
		}
		survivors = append(survivors, b)
	}
	if !found {
		return false
	}
	s.bonuses = survivors

	s.timeRemaining += s.variant.Bonus.TimeReward
	s.score += s.variant.Bonus.ScoreReward
	s.emit(Event{Type: EventBonusCollected, Level: s.level, Score: s.score})
	return true
}

// ApplyBorderPenalty 玩家接触边界时的扣时惩罚
//
// 仅在 Playing 状态、关卡达到解锁条件且不在冷却中时生效；
// 扣时后开启冷却，时间扣到 0 时结束本局。返回是否实际扣时。
func (s *GameSession) ApplyBorderPenalty() bool {
	if s.state != StatePlaying || !s.variant.BorderPenaltyActive(s.level) || s.borderCooldown > 0 {
		return false
	}

	s.timeRemaining -= s.variant.BorderPenalty.Seconds
	if s.timeRemaining < 0 {
		s.timeRemaining = 0
	}
	s.borderCooldown = s.variant.BorderPenalty.Cooldown
	s.emit(Event{Type: EventBorderPenalty, Level: s.level, Score: s.score})

	if s.timeRemaining == 0 {
		s.endGame(ReasonTimeout)
	}
	return true
}

// TickCountdown 倒计时走一秒
// 剩余 1 秒或更少时归零并结束本局；非 Playing 状态（包括已经结束）不做任何事
func (s *GameSession) TickCountdown() {
	if s.state != StatePlaying {
		return
	}
	if s.timeRemaining <= 1 {
		s.timeRemaining = 0
		s.endGame(ReasonTimeout)
		return
	}
	s.timeRemaining--
}

// TickCooldown 推进碰边惩罚冷却
func (s *GameSession) TickCooldown(deltaTime float64) {
	if s.borderCooldown <= 0 {
		return
	}
	s.borderCooldown -= deltaTime
	// 浮点累积误差：剩余不足 1 微秒视为结束
	if s.borderCooldown < 1e-6 {
		s.borderCooldown = 0
	}
}

func (s *GameSession) endGame(reason GameOverReason) {
	s.state = StateGameOver
	s.reason = reason
	log.Printf("[GameSession] Game over (%s): level=%d, score=%d", reason, s.level, s.score)
	s.emit(Event{Type: EventGameOver, Level: s.level, Score: s.score, Reason: reason})
}

// SpawnHazard 在随机位置生成一个危险球
func (s *GameSession) SpawnHazard() components.Hazard {
	size := s.variant.Hazard.Size
	x, y := s.RandomPosition(size)
	h := components.Hazard{ID: s.newID(), Body: components.Body{X: x, Y: y, Size: size}}
	s.hazards = append(s.hazards, h)
	return h
}

// SpawnBonus 在随机位置生成一个奖励球
func (s *GameSession) SpawnBonus() components.Bonus {
	size := s.variant.Bonus.Size
	x, y := s.RandomPosition(size)
	b := components.Bonus{ID: s.newID(), Body: components.Body{X: x, Y: y, Size: size}}
	s.bonuses = append(s.bonuses, b)
	return b
}

// SetAvatarPosition 更新玩家位置（由 InputSystem 在限位后调用）
func (s *GameSession) SetAvatarPosition(x, y float64) {
	s.avatarX = x
	s.avatarY = y
}

// Hazards 返回当前危险球列表（系统内部使用，调用方不得长期持有）
func (s *GameSession) Hazards() []components.Hazard {
	return s.hazards
}

// SetHazards 替换危险球列表（MovementSystem 用幸存者列表替换）
func (s *GameSession) SetHazards(h []components.Hazard) {
	s.hazards = h
}

// Bonuses 返回当前奖励球列表（系统内部使用，调用方不得长期持有）
func (s *GameSession) Bonuses() []components.Bonus {
	return s.bonuses
}

// SetBonuses 替换奖励球列表
func (s *GameSession) SetBonuses(b []components.Bonus) {
	s.bonuses = b
}

// Avatar 返回玩家圆形实体（尺寸按当前关卡计算）
func (s *GameSession) Avatar() components.Body {
	return components.Body{X: s.avatarX, Y: s.avatarY, Size: s.AvatarSize()}
}

// Target 返回目标 orb（尺寸按当前关卡计算）
func (s *GameSession) Target() components.Body {
	return components.Body{X: s.targetX, Y: s.targetY, Size: s.TargetSize()}
}

// AvatarSize 当前关卡的玩家直径
func (s *GameSession) AvatarSize() float64 { return s.variant.AvatarSize(s.level) }

// TargetSize 当前关卡的目标直径
func (s *GameSession) TargetSize() float64 { return s.variant.TargetSize(s.level) }

// OrbsNeeded 当前关卡升级所需的目标数量
func (s *GameSession) OrbsNeeded() int { return s.variant.OrbsNeeded(s.level) }

// State 当前状态
func (s *GameSession) State() State { return s.state }

// Mode 本局模式
func (s *GameSession) Mode() Mode { return s.mode }

// Level 当前关卡
func (s *GameSession) Level() int { return s.level }

// Score 当前分数
func (s *GameSession) Score() int { return s.score }

// TimeRemaining 剩余时间（秒）
func (s *GameSession) TimeRemaining() int { return s.timeRemaining }

// OrbsCollected 本关已收集的目标数量
func (s *GameSession) OrbsCollected() int { return s.orbsCollected }

// BorderPenaltyOnCooldown 碰边惩罚是否在冷却中
func (s *GameSession) BorderPenaltyOnCooldown() bool { return s.borderCooldown > 0 }

// GameOverReason 结束原因，未结束时为 ReasonNone
func (s *GameSession) GameOverReason() GameOverReason { return s.reason }

// Serial 开局序号，每次 StartSession/RestartSession 递增
func (s *GameSession) Serial() int { return s.serial }

// Variant 本局使用的变体配置
func (s *GameSession) Variant() *config.VariantConfig { return s.variant }

// Field 场地尺寸
func (s *GameSession) Field() config.FieldSize { return s.field }
