package systems

import "github.com/decker502/tiltorbs/pkg/components"

// timerEpsilon 浮点累积误差容忍（60 次 1/60 秒的累加可能略小于 1.0）
const timerEpsilon = 1e-9

// advanceTimer 推进周期计时器，返回本次跨过的周期数
// 一帧时间过长（例如窗口被拖动后恢复）时可能返回多个周期，调用方逐个处理
func advanceTimer(t *components.TimerComponent, deltaTime float64) int {
	if t.TargetTime <= 0 || deltaTime <= 0 {
		return 0
	}

	t.CurrentTime += deltaTime
	fired := 0
	for t.CurrentTime+timerEpsilon >= t.TargetTime {
		t.CurrentTime -= t.TargetTime
		fired++
	}
	if t.CurrentTime < 0 {
		t.CurrentTime = 0
	}
	return fired
}

// resetTimer 清零计时器（离开 Playing 状态或开新局时调用）
func resetTimer(t *components.TimerComponent) {
	t.CurrentTime = 0
}
