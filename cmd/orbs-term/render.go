package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/game"
)

// hudRows 顶部 HUD 占用的行数
const hudRows = 2

// viewport 把场地坐标映射到终端字符格
type viewport struct {
	fieldW, fieldH float64
	cols, rows     int // 可用于场地的字符格数量（不含 HUD）
}

func newViewport(fieldW, fieldH float64, screenW, screenH int) viewport {
	rows := screenH - hudRows
	if rows < 1 {
		rows = 1
	}
	if screenW < 1 {
		screenW = 1
	}
	return viewport{fieldW: fieldW, fieldH: fieldH, cols: screenW, rows: rows}
}

// cell 返回实体圆心所在的字符格（含 HUD 偏移），结果总在屏幕范围内
func (v viewport) cell(b components.Body) (int, int) {
	r := b.Size / 2
	cx := int((b.X + r) / v.fieldW * float64(v.cols))
	cy := int((b.Y + r) / v.fieldH * float64(v.rows))
	if cx >= v.cols {
		cx = v.cols - 1
	}
	if cy >= v.rows {
		cy = v.rows - 1
	}
	if cx < 0 {
		cx = 0
	}
	if cy < 0 {
		cy = 0
	}
	return cx, cy + hudRows
}

var (
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	stylePenalty = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
	styleAvatar  = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue)
	styleTarget  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHazard  = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleBonus   = tcell.StyleDefault.Foreground(tcell.ColorGold)
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// hudText HUD 文字
func hudText(snap game.Snapshot) string {
	return fmt.Sprintf(" L%d  score %d  time %ds  orbs %d/%d  [%s]",
		snap.Level, snap.Score, snap.TimeRemaining, snap.OrbsCollected, snap.OrbsNeeded, snap.VariantName)
}

// menuText 终端主菜单文字
func menuText(options []game.Mode) []string {
	lines := []string{"TILT ORBS", ""}
	for i, m := range options {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, m))
	}
	return append(lines, "", "arrows/wasd steer, space confirm, q quit")
}

// overlayText 暂停/结束提示
func overlayText(snap game.Snapshot) []string {
	switch snap.State {
	case game.StateLevelUpPause:
		return []string{fmt.Sprintf("LEVEL %d", snap.Level), "press space"}
	case game.StateGameOver:
		return []string{
			fmt.Sprintf("GAME OVER (%s)", snap.GameOverReason),
			fmt.Sprintf("score %d", snap.Score),
			"space restart, m menu",
		}
	}
	return nil
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func drawCentered(s tcell.Screen, lines []string, style tcell.Style) {
	w, h := s.Size()
	top := (h - len(lines)) / 2
	for i, line := range lines {
		drawText(s, (w-len(line))/2, top+i, style, line)
	}
}
