// orbs-term 终端版 Tilt Orbs
//
// 与图形版共用同一套会话和系统，只替换输入（方向键模拟倾斜）、渲染（tcell 字符画）和音效（beep）。
//
// 用法：
//
//	go run ./cmd/orbs-term [-variant floating] [-config data/variants.yaml] [-mute]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/config"
	"github.com/decker502/tiltorbs/pkg/game"
	"github.com/decker502/tiltorbs/pkg/systems"
	"github.com/decker502/tiltorbs/pkg/utils"
)

var (
	variantName = flag.String("variant", "", "变体名称")
	configPath  = flag.String("config", "data/variants.yaml", "变体配置文件，不存在时使用内置 classic")
	mute        = flag.Bool("mute", false, "关闭音效")
	logFile     = flag.String("log", "", "日志文件（终端被界面占用，默认丢弃日志）")
)

const (
	// keyHoldDuration 终端没有按键抬起事件，一次按键视为按住这么久
	keyHoldDuration = 180 * time.Millisecond
	// termTiltStrength 方向键等效倾斜幅度
	termTiltStrength = 0.8
	// maxFrameTime 单帧时间上限，防止终端挂起恢复后一次推进太多
	maxFrameTime = 0.1
)

// keyHold 记录每个方向的按住截止时间
type keyHold struct {
	left, right, up, down time.Time
}

func (h *keyHold) press(key tcell.Key, r rune, now time.Time) bool {
	until := now.Add(keyHoldDuration)
	switch {
	case key == tcell.KeyLeft || r == 'a':
		h.left = until
	case key == tcell.KeyRight || r == 'd':
		h.right = until
	case key == tcell.KeyUp || r == 'w':
		h.up = until
	case key == tcell.KeyDown || r == 's':
		h.down = until
	default:
		return false
	}
	return true
}

func (h keyHold) tilt(now time.Time, verticalSign float64) components.TiltSample {
	return utils.TiltFromKeys(now.Before(h.left), now.Before(h.right), now.Before(h.up), now.Before(h.down),
		termTiltStrength, verticalSign)
}

type termGame struct {
	screen  tcell.Screen
	session *game.GameSession
	loop    *systems.GameLoop
	sound   *termSound
	modes   []game.Mode

	holds      keyHold
	flashUntil time.Time
	lastFrame  time.Time
}

func newTermGame(session *game.GameSession, sound *termSound) (*termGame, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	modes := []game.Mode{game.InfiniteMode()}
	for _, level := range session.Variant().Progression.StartLevels {
		modes = append(modes, game.FixedLevelMode(level))
	}

	return &termGame{
		screen:    screen,
		session:   session,
		loop:      systems.NewGameLoop(session),
		sound:     sound,
		modes:     modes,
		lastFrame: time.Now(),
	}, nil
}

// handleKey 返回 false 表示退出
func (g *termGame) handleKey(ev *tcell.EventKey) bool {
	key, r := ev.Key(), ev.Rune()
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC || r == 'q' {
		return false
	}
	if g.holds.press(key, r, time.Now()) {
		return true
	}

	confirm := key == tcell.KeyEnter || r == ' '
	var err error
	switch g.session.State() {
	case game.StateMenu:
		if confirm {
			err = g.session.StartSession(g.modes[0])
		} else if i := int(r - '1'); i >= 0 && i < len(g.modes) {
			err = g.session.StartSession(g.modes[i])
		}
	case game.StateLevelUpPause:
		if confirm {
			err = g.session.AcknowledgeLevelUp()
		}
	case game.StateGameOver:
		if confirm || r == 'r' {
			err = g.session.RestartSession()
		} else if r == 'm' {
			err = g.session.ReturnToMenu()
		}
	}
	if err != nil {
		log.Printf("[Term] %v", err)
	}
	return true
}

func (g *termGame) tick() {
	now := time.Now()
	dt := now.Sub(g.lastFrame).Seconds()
	g.lastFrame = now
	if dt > maxFrameTime {
		dt = maxFrameTime
	}

	if g.session.State() == game.StatePlaying {
		g.loop.PushTilt(g.holds.tilt(now, g.session.Variant().Tilt.VerticalSign))
	}
	g.loop.Update(dt)

	events := g.session.DrainEvents()
	for _, e := range events {
		if e.Type == game.EventBorderPenalty {
			g.flashUntil = now.Add(300 * time.Millisecond)
		}
	}
	g.sound.play(events)
	g.draw(now)
}

func (g *termGame) draw(now time.Time) {
	g.screen.Clear()
	snap := g.session.Snapshot()

	if snap.State == game.StateMenu {
		drawCentered(g.screen, menuText(g.modes), styleText)
		g.screen.Show()
		return
	}

	w, h := g.screen.Size()
	field := g.session.Field()
	view := newViewport(field.Width, field.Height, w, h)

	hud := styleHUD
	if now.Before(g.flashUntil) {
		hud = stylePenalty
	}
	for x := 0; x < w; x++ {
		g.screen.SetContent(x, 0, ' ', nil, hud)
	}
	drawText(g.screen, 0, 0, hud, hudText(snap))
	drawText(g.screen, 0, 1, styleText, progressBar(snap.Progress, w))

	for _, hz := range snap.Hazards {
		x, y := view.cell(hz.Body)
		g.screen.SetContent(x, y, 'x', nil, styleHazard)
	}
	for _, b := range snap.Bonuses {
		x, y := view.cell(b.Body)
		g.screen.SetContent(x, y, '+', nil, styleBonus)
	}
	tx, ty := view.cell(snap.Target)
	g.screen.SetContent(tx, ty, 'o', nil, styleTarget)
	ax, ay := view.cell(snap.Avatar)
	g.screen.SetContent(ax, ay, '@', nil, styleAvatar)

	if lines := overlayText(snap); lines != nil {
		drawCentered(g.screen, lines, styleText.Reverse(true))
	}
	g.screen.Show()
}

// progressBar 本关进度条
func progressBar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '='
		} else {
			bar[i] = '.'
		}
	}
	return string(bar)
}

func (g *termGame) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !g.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				g.screen.Sync()
			}
		case <-ticker.C:
			g.tick()
		}
	}
}

func (g *termGame) cleanup() {
	g.sound.close()
	g.screen.Fini()
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	path := *configPath
	if _, err := os.Stat(path); err != nil {
		path = ""
	}
	variant, err := config.ResolveVariant(path, *variantName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load variant: %v\n", err)
		os.Exit(1)
	}

	session := game.NewGameSession(variant, config.DefaultFieldSize(), nil)
	g, err := newTermGame(session, newTermSound(*mute))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()

	g.run()
}
