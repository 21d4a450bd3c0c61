package systems

import (
	"math"
	"testing"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/config"
	"github.com/decker502/tiltorbs/pkg/game"
)

func TestMovementStepFallDistances(t *testing.T) {
	tests := []struct {
		level      int
		wantHazard float64
	}{
		{level: 5, wantHazard: 104.5},
		{level: 10, wantHazard: 107},
	}

	for _, tt := range tests {
		s := newPlayingSession(t, game.FixedLevelMode(tt.level))
		s.SetHazards([]components.Hazard{{ID: "h", Body: components.Body{X: 10, Y: 100, Size: 20}}})
		s.SetBonuses([]components.Bonus{{ID: "b", Body: components.Body{X: 50, Y: 100, Size: 25}}})

		NewMovementSystem(s).Step()

		if got := s.Hazards()[0].Y; math.Abs(got-tt.wantHazard) > 1e-9 {
			t.Errorf("level %d: Expected hazard y=%v, got %v", tt.level, tt.wantHazard, got)
		}
		if got := s.Bonuses()[0].Y; math.Abs(got-101.5) > 1e-9 {
			t.Errorf("level %d: Expected bonus y=101.5, got %v", tt.level, got)
		}
		if s.Hazards()[0].X != 10 || s.Bonuses()[0].X != 50 {
			t.Errorf("level %d: Horizontal position must not change", tt.level)
		}
	}
}

func TestMovementDropsEntitiesLeavingField(t *testing.T) {
	s := newPlayingSession(t, game.FixedLevelMode(5))
	s.SetHazards([]components.Hazard{
		{ID: "edge", Body: components.Body{Y: config.FieldHeight - 1, Size: 20}},
		{ID: "keep", Body: components.Body{Y: 10, Size: 20}},
	})
	s.SetBonuses([]components.Bonus{
		{ID: "edge", Body: components.Body{Y: config.FieldHeight - 1.5, Size: 25}},
	})

	NewMovementSystem(s).Step()

	if len(s.Hazards()) != 1 || s.Hazards()[0].ID != "keep" {
		t.Errorf("Expected only hazard 'keep' to survive, got %+v", s.Hazards())
	}
	if len(s.Bonuses()) != 0 {
		t.Errorf("Expected bonus reaching the bottom to be dropped, got %+v", s.Bonuses())
	}
}

func TestMovementUsesFixedInterval(t *testing.T) {
	s := newPlayingSession(t, game.FixedLevelMode(5))
	s.SetHazards([]components.Hazard{{ID: "h", Body: components.Body{Y: 0, Size: 20}}})
	movement := NewMovementSystem(s)

	movement.Update(0.02)
	movement.Update(0.02)
	if got := s.Hazards()[0].Y; got != 0 {
		t.Fatalf("Expected no movement before 50ms, got y=%v", got)
	}

	movement.Update(0.02)
	if got := s.Hazards()[0].Y; math.Abs(got-4.5) > 1e-9 {
		t.Errorf("Expected one step after 60ms (y=4.5), got %v", got)
	}

	// 一帧跨越多个周期时逐个补上
	movement.Update(0.1)
	if got := s.Hazards()[0].Y; math.Abs(got-13.5) > 1e-9 {
		t.Errorf("Expected three steps total (y=13.5), got %v", got)
	}
}

func TestMovementFrozenOutsidePlaying(t *testing.T) {
	s := newPlayingSession(t, game.FixedLevelMode(5))
	s.SetHazards([]components.Hazard{{ID: "h", Body: components.Body{Y: 0, Size: 20}}})
	s.HitHazard()

	NewMovementSystem(s).Update(1)

	if got := s.Hazards()[0].Y; got != 0 {
		t.Errorf("Expected hazards frozen after game over, got y=%v", got)
	}
}
