package utils

import (
	"sync"

	"github.com/decker502/tiltorbs/pkg/components"
)

// SensorFeed 平台传感器回调与游戏循环之间的交接点
//
// 移动端的加速度计回调运行在平台线程上，游戏循环在 ebiten 的更新线程上，
// 因此这里需要加锁。只保留最新一次读数，旧读数直接被覆盖。
type SensorFeed struct {
	mu     sync.Mutex
	sample components.TiltSample
	has    bool
}

// NewSensorFeed 创建空的传感器通道
func NewSensorFeed() *SensorFeed {
	return &SensorFeed{}
}

// Push 写入最新读数（任意 goroutine）
func (f *SensorFeed) Push(sample components.TiltSample) {
	f.mu.Lock()
	f.sample = sample
	f.has = true
	f.mu.Unlock()
}

// Latest 返回最新读数；从未收到读数时返回 false
func (f *SensorFeed) Latest() (components.TiltSample, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sample, f.has
}

// Clear 丢弃已有读数（例如应用切到后台）
func (f *SensorFeed) Clear() {
	f.mu.Lock()
	f.sample = components.TiltSample{}
	f.has = false
	f.mu.Unlock()
}
