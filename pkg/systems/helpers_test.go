package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/config"
	"github.com/decker502/tiltorbs/pkg/game"
)

// newPlayingSession 创建固定种子并已开局的会话
func newPlayingSession(t *testing.T, mode game.Mode) *game.GameSession {
	t.Helper()
	s := game.NewGameSession(config.DefaultVariant(), config.DefaultFieldSize(), rand.New(rand.NewSource(7)))
	if err := s.StartSession(mode); err != nil {
		t.Fatalf("StartSession(%s) failed: %v", mode, err)
	}
	return s
}

// moveAvatarOntoTarget 把玩家左上角放到目标左上角，两圆必然重叠
func moveAvatarOntoTarget(s *game.GameSession) {
	target := s.Target()
	s.SetAvatarPosition(target.X, target.Y)
}

// moveAvatarAwayFromTarget 把玩家放到离目标最远的角落
func moveAvatarAwayFromTarget(s *game.GameSession) components.Body {
	target := s.Target()
	field := s.Field()
	size := s.AvatarSize()

	x, y := 0.0, 0.0
	if target.X < field.Width/2 {
		x = field.Width - size
	}
	if target.Y < field.Height/2 {
		y = field.Height - size
	}
	s.SetAvatarPosition(x, y)
	return s.Avatar()
}

const frame = 1.0 / 60.0
