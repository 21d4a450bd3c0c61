package game

import (
	"errors"
	"fmt"
)

// State 会话状态，任意时刻只有一个处于激活
type State int

const (
	// StateMenu 主菜单，等待选择模式
	StateMenu State = iota
	// StatePlaying 游戏进行中，所有 tick 生效
	StatePlaying
	// StateLevelUpPause 升级暂停，等待玩家确认，倒计时暂停
	StateLevelUpPause
	// StateGameOver 游戏结束（碰到危险球或时间耗尽）
	StateGameOver
)

// String 返回状态名称（日志用）
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StateLevelUpPause:
		return "LevelUpPause"
	case StateGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ModeKind 游戏模式类型
type ModeKind int

const (
	// ModeInfinite 无尽模式，从第 1 关开始
	ModeInfinite ModeKind = iota
	// ModeFixedLevel 固定起始关卡模式
	ModeFixedLevel
)

// Mode 开局时选择的模式，整局不变
type Mode struct {
	Kind       ModeKind
	StartLevel int // 仅 ModeFixedLevel 使用
}

// InfiniteMode 返回无尽模式
func InfiniteMode() Mode {
	return Mode{Kind: ModeInfinite}
}

// FixedLevelMode 返回从指定关卡开始的模式
func FixedLevelMode(level int) Mode {
	return Mode{Kind: ModeFixedLevel, StartLevel: level}
}

// InitialLevel 返回该模式的起始关卡
func (m Mode) InitialLevel() int {
	if m.Kind == ModeFixedLevel {
		return m.StartLevel
	}
	return 1
}

// String 返回模式描述
func (m Mode) String() string {
	if m.Kind == ModeFixedLevel {
		return fmt.Sprintf("FixedLevel(%d)", m.StartLevel)
	}
	return "Infinite"
}

// GameOverReason 游戏结束原因
type GameOverReason int

const (
	// ReasonNone 尚未结束
	ReasonNone GameOverReason = iota
	// ReasonHazard 碰到危险球
	ReasonHazard
	// ReasonTimeout 时间耗尽（倒计时或碰边惩罚）
	ReasonTimeout
)

// String 返回结束原因描述
func (r GameOverReason) String() string {
	switch r {
	case ReasonHazard:
		return "hazard"
	case ReasonTimeout:
		return "timeout"
	default:
		return "none"
	}
}

var (
	// ErrInvalidTransition 当前状态不接受该命令
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidStartLevel 固定起始关卡不在允许列表中
	ErrInvalidStartLevel = errors.New("start level not allowed")
)
