package scenes

import (
	"image/color"

	"github.com/decker502/tiltorbs/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// 调色板
var (
	colorBackground = color.RGBA{R: 18, G: 24, B: 38, A: 255}
	colorHUD        = color.RGBA{R: 30, G: 40, B: 62, A: 255}
	colorAvatar     = color.RGBA{R: 52, G: 152, B: 219, A: 255}
	colorTarget     = color.RGBA{R: 46, G: 204, B: 113, A: 255}
	colorHazard     = color.RGBA{R: 155, G: 89, B: 182, A: 255}
	colorBonus      = color.RGBA{R: 241, G: 196, B: 15, A: 255}
	colorProgress   = color.RGBA{R: 46, G: 204, B: 113, A: 200}
	colorPenalty    = color.RGBA{R: 231, G: 76, B: 60, A: 255}
	colorOverlay    = color.RGBA{A: 180}
	colorButton     = color.RGBA{R: 52, G: 73, B: 94, A: 255}
	colorSelected   = color.RGBA{R: 41, G: 128, B: 185, A: 255}
)
