package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/game"
)

func TestViewportCell(t *testing.T) {
	view := newViewport(480, 800, 48, 42)

	tests := []struct {
		name   string
		body   components.Body
		wantX  int
		wantY  int
	}{
		{name: "top left", body: components.Body{X: 0, Y: 0, Size: 0}, wantX: 0, wantY: hudRows},
		{name: "center", body: components.Body{X: 230, Y: 390, Size: 20}, wantX: 24, wantY: 20 + hudRows},
		{name: "clamped bottom right", body: components.Body{X: 480, Y: 800, Size: 40}, wantX: 47, wantY: 39 + hudRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := view.cell(tt.body)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Expected (%d, %d), got (%d, %d)", tt.wantX, tt.wantY, x, y)
			}
		})
	}
}

func TestKeyHoldExpires(t *testing.T) {
	var h keyHold
	now := time.Now()

	if !h.press(tcell.KeyRight, 0, now) {
		t.Fatal("Expected arrow key to be handled")
	}
	if h.press(tcell.KeyRune, 'z', now) {
		t.Error("Expected 'z' to be ignored")
	}

	tilt := h.tilt(now.Add(keyHoldDuration/2), -1)
	if tilt.Y >= 0 {
		t.Errorf("Expected rightward tilt (negative Y) while held, got %+v", tilt)
	}

	tilt = h.tilt(now.Add(keyHoldDuration*2), -1)
	if tilt.X != 0 || tilt.Y != 0 {
		t.Errorf("Expected no tilt after hold expired, got %+v", tilt)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		progress float64
		width    int
		want     string
	}{
		{progress: 0, width: 4, want: "...."},
		{progress: 0.5, width: 4, want: "==.."},
		{progress: 1.5, width: 4, want: "===="},
		{progress: 0.5, width: 0, want: ""},
	}

	for _, tt := range tests {
		if got := progressBar(tt.progress, tt.width); got != tt.want {
			t.Errorf("progressBar(%v, %d): Expected %q, got %q", tt.progress, tt.width, tt.want, got)
		}
	}
}

func TestOverlayText(t *testing.T) {
	if overlayText(game.Snapshot{State: game.StatePlaying}) != nil {
		t.Error("Expected no overlay while playing")
	}
	lines := overlayText(game.Snapshot{State: game.StateGameOver, GameOverReason: game.ReasonTimeout, Score: 90})
	if len(lines) != 3 || lines[0] != "GAME OVER (timeout)" || lines[1] != "score 90" {
		t.Errorf("Unexpected game over text: %v", lines)
	}
}
