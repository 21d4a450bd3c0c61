// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/tiltorbs/pkg/config"
	"github.com/decker502/tiltorbs/pkg/game"
	"github.com/decker502/tiltorbs/pkg/scenes"
	"github.com/decker502/tiltorbs/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Variant 变体名称，为空使用配置文件中的默认变体
	Variant string
	// ConfigPath 外部变体配置文件，为空使用嵌入的 data/variants.yaml
	ConfigPath string
	// StartLevel 跳过主菜单直接从该关卡开局（0 表示显示主菜单）
	StartLevel int
	// Infinite 跳过主菜单直接开始无尽模式
	Infinite bool
	// Silent 不创建音频上下文
	Silent bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	session                  *game.GameSession
	sensor                   *utils.SensorFeed
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时使用内置 classic 变体。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	variant, err := config.ResolveVariant(cfg.ConfigPath, cfg.Variant)
	if err != nil {
		return nil, fmt.Errorf("变体配置加载失败: %w", err)
	}

	var audioManager *game.AudioManager
	if cfg.Silent {
		audioManager = game.NewAudioManager(nil)
	} else {
		audioManager = game.NewAudioManager(audio.NewContext(game.SampleRate))
	}
	log.Printf("[App] AudioManager initialized")

	session := game.NewGameSession(variant, config.DefaultFieldSize(), nil)
	sensor := utils.NewSensorFeed()

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(mode game.Mode) game.Scene {
		scene, err := scenes.NewPlayScene(sceneManager, session, audioManager, sensor, mode)
		if err != nil {
			log.Printf("[App] %v", err)
			return nil
		}
		return scene
	})
	sceneManager.SetMenuFactory(func() game.Scene {
		return scenes.NewMenuScene(sceneManager, session)
	})

	switch {
	case cfg.Infinite:
		log.Printf("[App] Skipping menu, starting Infinite mode")
		if !sceneManager.StartMode(game.InfiniteMode()) {
			return nil, fmt.Errorf("failed to start infinite mode")
		}
	case cfg.StartLevel > 0:
		log.Printf("[App] Skipping menu, starting at level %d", cfg.StartLevel)
		if !sceneManager.StartMode(game.FixedLevelMode(cfg.StartLevel)) {
			return nil, fmt.Errorf("level %d (allowed %v): %w",
				cfg.StartLevel, variant.Progression.StartLevels, game.ErrInvalidStartLevel)
		}
	default:
		sceneManager.ShowMenu()
	}

	return &App{
		sceneManager: sceneManager,
		session:      session,
		sensor:       sensor,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧 letterbox 填充黑色，画面使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Sensor 返回传感器通道，移动端把加速度计读数推送到这里
func (a *App) Sensor() *utils.SensorFeed {
	return a.sensor
}

// Session 返回共享的会话
func (a *App) Session() *game.GameSession {
	return a.session
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
