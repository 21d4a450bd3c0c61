package utils

import (
	"testing"
)

func TestTiltFromKeys(t *testing.T) {
	tests := []struct {
		name                  string
		left, right, up, down bool
		sign                  float64
		wantX, wantY          float64
	}{
		{name: "none", sign: -1, wantX: 0, wantY: 0},
		{name: "right", right: true, sign: -1, wantX: 0, wantY: -1},
		{name: "left", left: true, sign: -1, wantX: 0, wantY: 1},
		{name: "down classic", down: true, sign: -1, wantX: -1, wantY: 0},
		{name: "down floating", down: true, sign: 1, wantX: 1, wantY: 0},
		{name: "opposite keys cancel", left: true, right: true, up: true, down: true, sign: -1, wantX: 0, wantY: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TiltFromKeys(tt.left, tt.right, tt.up, tt.down, 1, tt.sign)
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Errorf("Expected (%v, %v), got (%v, %v)", tt.wantX, tt.wantY, got.X, got.Y)
			}
		})
	}
}

// TestTiltFromKeysMovesInKeyDirection 读数代入位移公式后方向与按键一致
func TestTiltFromKeysMovesInKeyDirection(t *testing.T) {
	for _, sign := range []float64{-1, 1} {
		s := TiltFromKeys(false, true, false, true, 0.8, sign)
		dx := -s.Y * 10
		dy := sign * s.X * 10
		if dx <= 0 || dy <= 0 {
			t.Errorf("sign %v: Expected right/down displacement, got (%v, %v)", sign, dx, dy)
		}
	}
}

func TestStickTilt(t *testing.T) {
	tests := []struct {
		name         string
		dx, dy       int
		radius       float64
		wantX, wantY float64
	}{
		{name: "centered", radius: 60, wantX: 0, wantY: 0},
		{name: "half right", dx: 30, radius: 60, wantX: 0, wantY: -0.5},
		{name: "clamped down", dy: 300, radius: 60, wantX: -1, wantY: 0},
		{name: "zero radius", dx: 30, dy: 30, radius: 0, wantX: 0, wantY: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StickTilt(tt.dx, tt.dy, tt.radius, -1)
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Errorf("Expected (%v, %v), got (%v, %v)", tt.wantX, tt.wantY, got.X, got.Y)
			}
		})
	}
}

func TestVirtualStickInitialState(t *testing.T) {
	v := NewVirtualStick(60)

	if v.Active() {
		t.Error("Expected stick to be inactive initially")
	}
	if _, ok := v.Tilt(-1); ok {
		t.Error("Expected no tilt from an inactive stick")
	}
}

func TestVirtualStickOffsetAndReset(t *testing.T) {
	v := NewVirtualStick(60)
	v.begin(100, 200, true, 3)
	v.curX, v.curY = 160, 170

	dx, dy := v.Offset()
	if dx != 60 || dy != -30 {
		t.Errorf("Expected offset (60, -30), got (%d, %d)", dx, dy)
	}
	tilt, ok := v.Tilt(-1)
	if !ok || tilt.Y != -1 || tilt.X != 0.5 {
		t.Errorf("Expected tilt (0.5, -1), got %+v (ok=%v)", tilt, ok)
	}

	v.Reset()
	if v.Active() || v.touchID != -1 || v.Radius != 60 {
		t.Errorf("Expected clean inactive stick after reset, got %+v", v)
	}
}
