package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/config"
	"github.com/decker502/tiltorbs/pkg/game"
	"github.com/decker502/tiltorbs/pkg/systems"
	"github.com/decker502/tiltorbs/pkg/utils"
)

const (
	// keyboardTiltStrength 方向键等效的倾斜幅度（乘以灵敏度即每帧位移）
	keyboardTiltStrength = 0.6
	// stickRadius 虚拟摇杆满偏半径（像素）
	stickRadius = 80.0
	// penaltyFlashDuration 碰边惩罚后 HUD 闪红的时长（秒）
	penaltyFlashDuration = 0.35
)

// PlayScene 游戏场景
//
// 职责：
//   - 每帧把平台输入（传感器、键盘、拖拽）转换为倾斜读数交给 GameLoop
//   - 在暂停/结束状态下把点击和按键翻译为会话命令
//   - 消费会话事件播放音效
//   - 按快照绘制场地、HUD 和提示层
type PlayScene struct {
	sceneManager *game.SceneManager
	session      *game.GameSession
	loop         *systems.GameLoop
	audio        *game.AudioManager
	sensor       *utils.SensorFeed
	stick        *utils.VirtualStick

	penaltyFlash float64
}

// NewPlayScene 以指定模式开局并创建游戏场景
//
// 参数：
//   - sm: 场景管理器（返回主菜单用）
//   - session: 共享的会话（必须处于 Menu 或 GameOver）
//   - audio: 音频管理器，可为 nil
//   - sensor: 传感器通道，可为 nil（桌面端）
//   - mode: 开局模式
func NewPlayScene(sm *game.SceneManager, session *game.GameSession, audio *game.AudioManager, sensor *utils.SensorFeed, mode game.Mode) (*PlayScene, error) {
	if err := session.StartSession(mode); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", mode, err)
	}
	if audio == nil {
		audio = game.NewAudioManager(nil)
	}

	return &PlayScene{
		sceneManager: sm,
		session:      session,
		loop:         systems.NewGameLoop(session),
		audio:        audio,
		sensor:       sensor,
		stick:        utils.NewVirtualStick(stickRadius),
	}, nil
}

// Update 执行一帧
func (p *PlayScene) Update(deltaTime float64) {
	p.stick.Update()

	switch p.session.State() {
	case game.StatePlaying:
		p.loop.PushTilt(p.currentTilt())

	case game.StateLevelUpPause:
		p.stick.Reset()
		if p.confirmPressed() {
			if err := p.session.AcknowledgeLevelUp(); err != nil {
				log.Printf("[PlayScene] Warning: %v", err)
			}
		}

	case game.StateGameOver:
		p.stick.Reset()
		if p.handleGameOverInput() {
			return
		}
	}

	p.loop.Update(deltaTime)
	p.handleEvents()

	if p.penaltyFlash > 0 {
		p.penaltyFlash -= deltaTime
	}
}

// currentTilt 输入优先级：加速度计 > 键盘 > 拖拽摇杆
// 没有任何输入时返回零读数，玩家停在原地
func (p *PlayScene) currentTilt() components.TiltSample {
	if p.sensor != nil {
		if sample, ok := p.sensor.Latest(); ok {
			return sample
		}
	}

	sign := p.session.Variant().Tilt.VerticalSign
	if sample, ok := utils.KeyboardTilt(keyboardTiltStrength, sign); ok {
		return sample
	}
	if sample, ok := p.stick.Tilt(sign); ok {
		return sample
	}
	return components.TiltSample{}
}

func (p *PlayScene) confirmPressed() bool {
	if utils.IsAnyKeyJustPressed(ebiten.KeySpace, ebiten.KeyEnter) {
		return true
	}
	clicked, _, _ := utils.IsJustTouchedOrClicked()
	return clicked
}

// handleGameOverInput 处理结算界面的命令，返回场景是否已被切换
func (p *PlayScene) handleGameOverInput() bool {
	action := gameOverActionNone
	if utils.IsAnyKeyJustPressed(ebiten.KeyR, ebiten.KeySpace, ebiten.KeyEnter) {
		action = gameOverActionRestart
	} else if utils.IsAnyKeyJustPressed(ebiten.KeyM, ebiten.KeyEscape) {
		action = gameOverActionMenu
	} else if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		action = gameOverButtonAt(x, y)
	}

	switch action {
	case gameOverActionRestart:
		if err := p.session.RestartSession(); err != nil {
			log.Printf("[PlayScene] Warning: %v", err)
		}
	case gameOverActionMenu:
		if err := p.session.ReturnToMenu(); err != nil {
			log.Printf("[PlayScene] Warning: %v", err)
			return false
		}
		p.sceneManager.ShowMenu()
		return true
	}
	return false
}

func (p *PlayScene) handleEvents() {
	events := p.session.DrainEvents()
	if len(events) == 0 {
		return
	}
	p.audio.HandleEvents(events)
	for _, e := range events {
		if e.Type == game.EventBorderPenalty {
			p.penaltyFlash = penaltyFlashDuration
		}
	}
}

// gameOverAction 结算界面的按钮
type gameOverAction int

const (
	gameOverActionNone gameOverAction = iota
	gameOverActionRestart
	gameOverActionMenu
)

// 结算界面按钮布局
const (
	gameOverButtonX      = 110.0
	gameOverButtonWidth  = config.FieldWidth - 2*gameOverButtonX
	gameOverButtonHeight = 56.0
	gameOverRestartY     = 470.0
	gameOverMenuY        = 546.0
)

// gameOverButtonAt 点击位置对应的按钮
func gameOverButtonAt(x, y int) gameOverAction {
	fx, fy := float64(x), float64(y)
	if fx < gameOverButtonX || fx >= gameOverButtonX+gameOverButtonWidth {
		return gameOverActionNone
	}
	switch {
	case fy >= gameOverRestartY && fy < gameOverRestartY+gameOverButtonHeight:
		return gameOverActionRestart
	case fy >= gameOverMenuY && fy < gameOverMenuY+gameOverButtonHeight:
		return gameOverActionMenu
	}
	return gameOverActionNone
}
