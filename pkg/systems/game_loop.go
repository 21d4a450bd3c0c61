package systems

import (
	"log"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/game"
)

// GameLoop 固定调度的游戏循环驱动
//
// 持有唯一的 GameSession，每帧按固定顺序调用各子系统：
//  1. InputSystem      读数 → 位移 → 限位 → 碰边惩罚
//  2. MovementSystem   50ms 下落动画
//  3. SpawnSystem      危险球/奖励球生成
//  4. CollisionSystem  使用本帧更新后的位置做碰撞检测
//  5. CountdownSystem  1s 倒计时和惩罚冷却
//
// 所有子系统在同一个 goroutine 中顺序执行，每个 tick 完整结束后才执行下一个。
// 离开 Playing 状态或开始新的一局时，所有周期计时器清零，
// 保证暂停/结束后不会有残留的 tick 触发。
type GameLoop struct {
	session *game.GameSession

	input     *InputSystem
	movement  *MovementSystem
	spawn     *SpawnSystem
	collision *CollisionSystem
	countdown *CountdownSystem

	lastState  game.State
	lastSerial int
}

// NewGameLoop 为会话创建游戏循环
func NewGameLoop(session *game.GameSession) *GameLoop {
	l := &GameLoop{
		session:    session,
		input:      NewInputSystem(session),
		movement:   NewMovementSystem(session),
		spawn:      NewSpawnSystem(session),
		collision:  NewCollisionSystem(session),
		countdown:  NewCountdownSystem(session),
		lastState:  session.State(),
		lastSerial: session.Serial(),
	}
	log.Printf("[GameLoop] Initialized for variant %q", session.Variant().Name)
	return l
}

// Session 返回被驱动的会话（命令和快照都通过它）
func (l *GameLoop) Session() *game.GameSession {
	return l.session
}

// PushTilt 转发最新的倾斜读数
func (l *GameLoop) PushTilt(sample components.TiltSample) {
	l.input.PushTilt(sample)
}

// HitBorder 最近一次运动 tick 是否接触边界
func (l *GameLoop) HitBorder() bool {
	return l.input.HitBorder()
}

// Update 执行一帧
//
// 参数：
//   - deltaTime: 自上一帧以来经过的时间（秒）
func (l *GameLoop) Update(deltaTime float64) {
	l.syncSchedule()

	l.input.Update(deltaTime)
	l.movement.Update(deltaTime)
	l.spawn.Update(deltaTime)
	l.collision.Update(deltaTime)
	l.countdown.Update(deltaTime)

	l.syncSchedule()
}

// syncSchedule 检测状态变化并在需要时清零所有计时器
func (l *GameLoop) syncSchedule() {
	state := l.session.State()
	serial := l.session.Serial()

	if serial != l.lastSerial {
		l.resetTimers()
		log.Printf("[GameLoop] New session #%d, schedule reset", serial)
	} else if state != l.lastState && state != game.StatePlaying {
		l.resetTimers()
		log.Printf("[GameLoop] %s -> %s, periodic ticks stopped", l.lastState, state)
	}

	l.lastState = state
	l.lastSerial = serial
}

func (l *GameLoop) resetTimers() {
	l.movement.Reset()
	l.spawn.Reset()
	l.countdown.Reset()
}
