package components

// TiltSample 一次三轴倾斜传感器读数
// 由平台层（陀螺仪回调、键盘模拟）推送，游戏循环只使用最新的一次读数
type TiltSample struct {
	X float64
	Y float64
	Z float64
}
