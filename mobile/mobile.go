//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.tiltorbs -o build/android/tiltorbs.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/TiltOrbs.xcframework -v ./mobile
//
// 宿主应用在加速度计回调中调用 PushTilt，在切到后台时调用 ClearTilt。
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/tiltorbs/pkg/app"
	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/embedded"
)

var gameApp *app.App

func init() {
	embedded.Init(dataFS)

	var err error
	gameApp, err = app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	mobile.SetGame(gameApp)
}

// PushTilt 推送一次加速度计读数（可以在任意线程调用）
func PushTilt(x, y, z float64) {
	gameApp.Sensor().Push(components.TiltSample{X: x, Y: y, Z: z})
}

// ClearTilt 丢弃当前读数，玩家停止移动
func ClearTilt() {
	gameApp.Sensor().Clear()
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
