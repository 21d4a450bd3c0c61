package systems

import (
	"math"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/config"
	"github.com/decker502/tiltorbs/pkg/game"
	"github.com/decker502/tiltorbs/pkg/utils"
)

// InputSystem 把最新的倾斜读数映射为玩家位移
//
// 职责：
//   - 保存平台层推送的最新读数（只保留最新一次，不排队）
//   - 每个运动 tick 计算位移、按场地限位、判断是否接触边界
//   - 接触边界时触发碰边惩罚（是否生效由 GameSession 判断冷却和关卡）
type InputSystem struct {
	session   *game.GameSession
	latest    components.TiltSample
	hasSample bool
	hitBorder bool
}

// NewInputSystem 创建输入映射系统
func NewInputSystem(session *game.GameSession) *InputSystem {
	return &InputSystem{session: session}
}

// PushTilt 记录最新的传感器读数
func (s *InputSystem) PushTilt(sample components.TiltSample) {
	s.latest = sample
	s.hasSample = true
}

// HitBorder 最近一次运动 tick 是否接触了边界
func (s *InputSystem) HitBorder() bool {
	return s.hitBorder
}

// Update 执行一次运动 tick
// 位置更新在本方法内同步完成，随后的碰撞检测使用的就是更新后的位置
func (s *InputSystem) Update(deltaTime float64) {
	if s.session.State() != game.StatePlaying {
		return
	}

	var dx, dy float64
	if s.hasSample {
		dx, dy = TiltDisplacement(s.latest, s.session.Variant().Tilt)
	}

	avatar := s.session.Avatar()
	field := s.session.Field()

	x, hitX := utils.ClampAxis(avatar.X+dx, field.Width-avatar.Size)
	y, hitY := utils.ClampAxis(avatar.Y+dy, field.Height-avatar.Size)
	s.session.SetAvatarPosition(x, y)

	s.hitBorder = hitX || hitY
	if s.hitBorder {
		s.session.ApplyBorderPenalty()
	}
}

// TiltDisplacement 计算一次读数对应的位移
//
//	dx = -tiltY * K
//	dy = sign * tiltX * K
//
// 读数包含 NaN/Inf 时视为零位移（传感器异常不应影响游戏）
func TiltDisplacement(sample components.TiltSample, tilt config.TiltConfig) (float64, float64) {
	if !finite(sample.X) || !finite(sample.Y) {
		return 0, 0
	}
	dx := -sample.Y * tilt.Sensitivity
	dy := tilt.VerticalSign * sample.X * tilt.Sensitivity
	return dx, dy
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
