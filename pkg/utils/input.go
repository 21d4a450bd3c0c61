// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/tiltorbs/pkg/components"
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// IsAnyKeyJustPressed 任一按键在本帧刚按下
func IsAnyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// TiltFromKeys 把方向键状态转换为等效的倾斜读数
//
// 读数满足 dx = -Y*K, dy = sign*X*K，
// 所以向右需要负的 Y，向下需要 X 与 sign 同号。
func TiltFromKeys(left, right, up, down bool, strength, verticalSign float64) components.TiltSample {
	var h, v float64
	if right {
		h++
	}
	if left {
		h--
	}
	if down {
		v++
	}
	if up {
		v--
	}
	return components.TiltSample{X: verticalSign * v * strength, Y: -h * strength}
}

// KeyboardTilt 读取方向键/WASD 生成倾斜读数，没有按键时返回 false
func KeyboardTilt(strength, verticalSign float64) (components.TiltSample, bool) {
	left := ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	right := ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	up := ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW)
	down := ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS)
	if !left && !right && !up && !down {
		return components.TiltSample{}, false
	}
	return TiltFromKeys(left, right, up, down, strength, verticalSign), true
}

// StickTilt 把虚拟摇杆偏移（像素）转换为倾斜读数
// 偏移按半径归一化并截断到 [-1, 1]
func StickTilt(dx, dy int, radius, verticalSign float64) components.TiltSample {
	if radius <= 0 {
		return components.TiltSample{}
	}
	nx := math.Max(-1, math.Min(1, float64(dx)/radius))
	ny := math.Max(-1, math.Min(1, float64(dy)/radius))
	return components.TiltSample{X: verticalSign * ny, Y: -nx}
}

// VirtualStick 没有加速度计时（桌面、模拟移动端）用拖拽模拟倾斜
// 按下位置为摇杆中心，拖拽偏移决定倾斜方向和幅度
type VirtualStick struct {
	Radius float64

	active         bool
	isTouch        bool
	touchID        ebiten.TouchID
	startX, startY int
	curX, curY     int
}

// NewVirtualStick 创建虚拟摇杆
func NewVirtualStick(radius float64) *VirtualStick {
	return &VirtualStick{Radius: radius, touchID: -1}
}

// Update 每帧调用一次，跟踪触摸或鼠标拖拽
func (v *VirtualStick) Update() {
	if !v.active {
		v.checkStart()
		return
	}

	if v.isTouch {
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == v.touchID {
				v.curX, v.curY = ebiten.TouchPosition(id)
				return
			}
		}
		v.Reset()
		return
	}

	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		v.Reset()
		return
	}
	v.curX, v.curY = ebiten.CursorPosition()
}

func (v *VirtualStick) checkStart() {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		v.begin(x, y, true, ids[0])
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		v.begin(x, y, false, -1)
	}
}

func (v *VirtualStick) begin(x, y int, touch bool, id ebiten.TouchID) {
	v.active = true
	v.isTouch = touch
	v.touchID = id
	v.startX, v.startY = x, y
	v.curX, v.curY = x, y
}

// Reset 松开摇杆
func (v *VirtualStick) Reset() {
	*v = VirtualStick{Radius: v.Radius, touchID: -1}
}

// Active 是否正在拖拽
func (v *VirtualStick) Active() bool {
	return v.active
}

// Center 摇杆中心（按下位置）
func (v *VirtualStick) Center() (int, int) {
	return v.startX, v.startY
}

// Offset 当前位置相对中心的偏移
func (v *VirtualStick) Offset() (dx, dy int) {
	return v.curX - v.startX, v.curY - v.startY
}

// Tilt 当前摇杆对应的倾斜读数，未拖拽时返回 false
func (v *VirtualStick) Tilt(verticalSign float64) (components.TiltSample, bool) {
	if !v.active {
		return components.TiltSample{}, false
	}
	dx, dy := v.Offset()
	return StickTilt(dx, dy, v.Radius, verticalSign), true
}
