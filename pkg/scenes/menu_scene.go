package scenes

import (
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/tiltorbs/pkg/config"
	"github.com/decker502/tiltorbs/pkg/game"
	"github.com/decker502/tiltorbs/pkg/utils"
)

// 菜单布局
const (
	menuOptionX      = 90.0
	menuOptionTop    = 330.0
	menuOptionWidth  = config.FieldWidth - 2*menuOptionX
	menuOptionHeight = 56.0
	menuOptionGap    = 18.0
)

// menuOption 主菜单中的一个模式选项
type menuOption struct {
	Label string
	Mode  game.Mode
}

// buildMenuOptions 无尽模式 + 变体允许的每个起始关卡
func buildMenuOptions(v *config.VariantConfig) []menuOption {
	options := []menuOption{{Label: "Infinite", Mode: game.InfiniteMode()}}
	for _, level := range v.Progression.StartLevels {
		options = append(options, menuOption{
			Label: fmt.Sprintf("Start at level %d", level),
			Mode:  game.FixedLevelMode(level),
		})
	}
	return options
}

// optionRect 第 i 个选项的按钮区域
func optionRect(i int) (x, y, w, h float64) {
	return menuOptionX, menuOptionTop + float64(i)*(menuOptionHeight+menuOptionGap), menuOptionWidth, menuOptionHeight
}

// optionAt 返回点击位置对应的选项下标，没有命中返回 -1
func optionAt(count, px, py int) int {
	for i := 0; i < count; i++ {
		x, y, w, h := optionRect(i)
		if float64(px) >= x && float64(px) < x+w && float64(py) >= y && float64(py) < y+h {
			return i
		}
	}
	return -1
}

// controlsHint 操作说明
func controlsHint(mobile bool) string {
	if mobile {
		return "Tilt your device to steer the blue orb"
	}
	return "Arrows / WASD or drag with the mouse to steer"
}

// MenuScene 主菜单：选择无尽模式或固定起始关卡
type MenuScene struct {
	sceneManager *game.SceneManager
	variant      *config.VariantConfig
	options      []menuOption
	selected     int
	elapsed      float64 // 标题动画用
}

// NewMenuScene 创建主菜单
func NewMenuScene(sm *game.SceneManager, session *game.GameSession) *MenuScene {
	variant := session.Variant()
	return &MenuScene{
		sceneManager: sm,
		variant:      variant,
		options:      buildMenuOptions(variant),
	}
}

// Update 处理菜单导航
func (m *MenuScene) Update(deltaTime float64) {
	m.elapsed += deltaTime

	if utils.IsAnyKeyJustPressed(ebiten.KeyArrowUp, ebiten.KeyW) {
		m.selected = (m.selected + len(m.options) - 1) % len(m.options)
	}
	if utils.IsAnyKeyJustPressed(ebiten.KeyArrowDown, ebiten.KeyS) {
		m.selected = (m.selected + 1) % len(m.options)
	}

	digits := []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5}
	for i, k := range digits {
		if i < len(m.options) && utils.IsAnyKeyJustPressed(k) {
			m.start(i)
			return
		}
	}

	if utils.IsAnyKeyJustPressed(ebiten.KeyEnter, ebiten.KeySpace) {
		m.start(m.selected)
		return
	}

	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		if i := optionAt(len(m.options), x, y); i >= 0 {
			m.start(i)
		}
	}
}

func (m *MenuScene) start(i int) {
	m.selected = i
	opt := m.options[i]
	log.Printf("[MenuScene] Selected %s", opt.Mode)
	m.sceneManager.StartMode(opt.Mode)
}

// Draw 绘制菜单
func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	// 标题下方的装饰 orb 轻微浮动
	bob := float32(math.Sin(m.elapsed*2) * 8)
	cx := float32(config.FieldWidth / 2)
	vector.DrawFilledCircle(screen, cx-60, 200+bob, 24, colorAvatar, true)
	vector.DrawFilledCircle(screen, cx+10, 180-bob, 14, colorTarget, true)
	vector.DrawFilledCircle(screen, cx+70, 215+bob/2, 10, colorHazard, true)

	ebitenutil.DebugPrintAt(screen, "TILT ORBS", int(cx)-27, 90)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("variant: %s", m.variant.Name), int(cx)-50, 110)

	for i, opt := range m.options {
		x, y, w, h := optionRect(i)
		clr := colorButton
		if i == m.selected {
			clr = colorSelected
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d  %s", i+1, opt.Label), int(x)+20, int(y+h/2)-8)
	}

	_, lastY, _, lastH := optionRect(len(m.options))
	ebitenutil.DebugPrintAt(screen, controlsHint(utils.IsMobile()), 60, int(lastY+lastH))
}
