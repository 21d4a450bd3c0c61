package components

// TimerComponent 通用周期计时器组件
// 用于驱动各个独立频率的 tick（下落动画 50ms、危险球生成、奖励球生成 5s、倒计时 1s）
// 注意：遵循 ECS 原则，组件仅存储数据，推进逻辑在 systems 包中
type TimerComponent struct {
	Name        string  // 计时器名称，如 "hazard_spawn"
	TargetTime  float64 // 周期（秒）
	CurrentTime float64 // 当前周期内已累积的时间（秒）
}
