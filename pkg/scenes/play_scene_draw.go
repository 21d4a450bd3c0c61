package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/config"
	"github.com/decker502/tiltorbs/pkg/game"
)

// hudLines HUD 第一行和第二行的文字
func hudLines(snap game.Snapshot) (string, string) {
	first := fmt.Sprintf("Level %d   Score %d   Time %ds", snap.Level, snap.Score, snap.TimeRemaining)
	second := fmt.Sprintf("Orbs %d/%d   %s", snap.OrbsCollected, snap.OrbsNeeded, snap.Mode)
	return first, second
}

// overlayLines 暂停/结束时覆盖层的文字，Playing 时返回 nil
func overlayLines(snap game.Snapshot) []string {
	switch snap.State {
	case game.StateLevelUpPause:
		lines := []string{
			fmt.Sprintf("LEVEL %d", snap.Level),
			fmt.Sprintf("Collect %d orbs in %ds", snap.OrbsNeeded, snap.TimeRemaining),
		}
		if snap.Notices.HazardsActive {
			lines = append(lines, "Purple orbs fall from above: touching one ends the game")
		}
		if snap.Notices.BonusesActive {
			lines = append(lines, "Golden orbs give extra time and points")
		}
		if snap.Notices.BorderPenaltyActive {
			lines = append(lines, "Touching the border costs time")
		}
		return append(lines, "", "Tap or press Space to continue")

	case game.StateGameOver:
		cause := "Time's up!"
		if snap.GameOverReason == game.ReasonHazard {
			cause = "Hit by a purple orb!"
		}
		return []string{
			"GAME OVER",
			cause,
			fmt.Sprintf("Level %d   Score %d", snap.Level, snap.Score),
		}
	}
	return nil
}

// Draw 绘制场地、HUD 和覆盖层
func (p *PlayScene) Draw(screen *ebiten.Image) {
	snap := p.session.Snapshot()

	screen.Fill(colorBackground)

	for _, h := range snap.Hazards {
		drawBody(screen, h.Body, colorHazard)
	}
	for _, b := range snap.Bonuses {
		drawBody(screen, b.Body, colorBonus)
	}
	drawBody(screen, snap.Target, colorTarget)
	drawBody(screen, snap.Avatar, colorAvatar)

	if p.stick.Active() {
		cx, cy := p.stick.Center()
		vector.StrokeCircle(screen, float32(cx), float32(cy), stickRadius, 2, colorButton, true)
	}

	p.drawHUD(screen, snap)

	if lines := overlayLines(snap); lines != nil {
		p.drawOverlay(screen, snap, lines)
	}
}

// drawBody Body 坐标是左上角，圆心需要加上半径
func drawBody(screen *ebiten.Image, b components.Body, clr color.Color) {
	r := b.Size / 2
	vector.DrawFilledCircle(screen, float32(b.X+r), float32(b.Y+r), float32(r), clr, true)
}

func (p *PlayScene) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	bg := colorHUD
	if p.penaltyFlash > 0 {
		bg = colorPenalty
	}
	vector.DrawFilledRect(screen, 0, 0, config.FieldWidth, config.HUDHeight, bg, false)

	// 本关进度条
	barWidth := float32(config.FieldWidth * snap.Progress)
	vector.DrawFilledRect(screen, 0, config.HUDHeight-4, barWidth, 4, colorProgress, false)

	first, second := hudLines(snap)
	ebitenutil.DebugPrintAt(screen, first, 10, 8)
	ebitenutil.DebugPrintAt(screen, second, 10, 28)

	if snap.Notices.BorderPenaltyActive {
		penalty := fmt.Sprintf("border: -%ds", p.session.Variant().BorderPenalty.Seconds)
		ebitenutil.DebugPrintAt(screen, penalty, int(config.FieldWidth)-90, 28)
	}
}

func (p *PlayScene) drawOverlay(screen *ebiten.Image, snap game.Snapshot, lines []string) {
	vector.DrawFilledRect(screen, 0, 0, config.FieldWidth, config.FieldHeight, colorOverlay, false)

	y := 260
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 40, y)
		y += 22
	}

	if snap.State == game.StateGameOver {
		drawButton(screen, gameOverRestartY, "Restart (R)")
		drawButton(screen, gameOverMenuY, "Menu (M)")
	}
}

func drawButton(screen *ebiten.Image, y float64, label string) {
	vector.DrawFilledRect(screen, gameOverButtonX, float32(y), gameOverButtonWidth, gameOverButtonHeight, colorSelected, false)
	ebitenutil.DebugPrintAt(screen, label, int(gameOverButtonX)+20, int(y+gameOverButtonHeight/2)-8)
}
