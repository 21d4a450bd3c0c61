package config

// 布局配置常量
// 本文件定义了游戏画面的逻辑尺寸，所有实体坐标都使用这个坐标系（左上角为原点）

const (
	// FieldWidth 是游戏场地的逻辑宽度（像素）
	// 竖屏手机布局，Ebitengine 负责缩放到实际屏幕
	FieldWidth = 480.0

	// FieldHeight 是游戏场地的逻辑高度（像素）
	FieldHeight = 800.0

	// GameWindowWidth 桌面端窗口宽度
	GameWindowWidth = int(FieldWidth)

	// GameWindowHeight 桌面端窗口高度
	GameWindowHeight = int(FieldHeight)

	// HUDHeight 顶部信息栏高度，仅供渲染层参考，不影响场地边界
	HUDHeight = 56.0
)

// FieldSize 描述一个矩形场地的尺寸
type FieldSize struct {
	Width  float64
	Height float64
}

// DefaultFieldSize 返回默认的竖屏场地尺寸
func DefaultFieldSize() FieldSize {
	return FieldSize{Width: FieldWidth, Height: FieldHeight}
}
