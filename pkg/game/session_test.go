package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/config"
)

// newTestSession 创建使用固定随机种子的会话
func newTestSession(t *testing.T) *GameSession {
	t.Helper()
	return NewGameSession(config.DefaultVariant(), config.DefaultFieldSize(), rand.New(rand.NewSource(1)))
}

// startTestSession 创建并以指定模式开局
func startTestSession(t *testing.T, mode Mode) *GameSession {
	t.Helper()
	s := newTestSession(t)
	if err := s.StartSession(mode); err != nil {
		t.Fatalf("StartSession(%s) failed: %v", mode, err)
	}
	return s
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestNewSessionStartsInMenu(t *testing.T) {
	s := newTestSession(t)

	if s.State() != StateMenu {
		t.Errorf("Expected state=Menu, got %s", s.State())
	}
	if s.Level() != 1 {
		t.Errorf("Expected level=1, got %d", s.Level())
	}
}

func TestStartSessionInfinite(t *testing.T) {
	s := startTestSession(t, InfiniteMode())

	if s.State() != StatePlaying {
		t.Errorf("Expected state=Playing, got %s", s.State())
	}
	if s.Level() != 1 {
		t.Errorf("Expected level=1, got %d", s.Level())
	}
	if s.Score() != 0 {
		t.Errorf("Expected score=0, got %d", s.Score())
	}
	if s.TimeRemaining() != 30 {
		t.Errorf("Expected timeRemaining=30, got %d", s.TimeRemaining())
	}
	if s.OrbsCollected() != 0 {
		t.Errorf("Expected orbsCollected=0, got %d", s.OrbsCollected())
	}

	avatar := s.Avatar()
	if avatar.X != config.FieldWidth/2 || avatar.Y != config.FieldHeight/2 {
		t.Errorf("Expected avatar at field center, got (%v, %v)", avatar.X, avatar.Y)
	}
	if avatar.Size != 48 {
		t.Errorf("Expected avatar size 48 at level 1, got %v", avatar.Size)
	}

	target := s.Target()
	if target.X < 0 || target.X > config.FieldWidth-target.Size || target.Y < 0 || target.Y > config.FieldHeight-target.Size {
		t.Errorf("Target out of bounds: %+v", target)
	}

	if got := countEvents(s.DrainEvents(), EventSessionStarted); got != 1 {
		t.Errorf("Expected 1 session_started event, got %d", got)
	}
}

func TestStartSessionFixedLevel(t *testing.T) {
	tests := []struct {
		level    int
		wantTime int
	}{
		{level: 1, wantTime: 30},
		{level: 5, wantTime: 22},
		{level: 10, wantTime: 12},
	}

	for _, tt := range tests {
		s := startTestSession(t, FixedLevelMode(tt.level))
		if s.Level() != tt.level {
			t.Errorf("Expected level=%d, got %d", tt.level, s.Level())
		}
		if s.TimeRemaining() != tt.wantTime {
			t.Errorf("level %d: Expected timeRemaining=%d, got %d", tt.level, tt.wantTime, s.TimeRemaining())
		}
	}
}

func TestStartSessionRejectsUnknownLevel(t *testing.T) {
	s := newTestSession(t)

	err := s.StartSession(FixedLevelMode(3))
	if !errors.Is(err, ErrInvalidStartLevel) {
		t.Fatalf("Expected ErrInvalidStartLevel, got %v", err)
	}
	if s.State() != StateMenu {
		t.Errorf("Expected state to remain Menu, got %s", s.State())
	}
}

func TestCollectTargetsTriggersLevelUp(t *testing.T) {
	s := startTestSession(t, InfiniteMode())
	s.DrainEvents()

	needed := s.OrbsNeeded()
	if needed != 6 {
		t.Fatalf("Expected orbsNeeded=6 at level 1, got %d", needed)
	}

	for i := 0; i < needed-1; i++ {
		if s.CollectTarget() {
			t.Fatalf("Unexpected level up after %d targets", i+1)
		}
		if s.State() != StatePlaying {
			t.Fatalf("Expected Playing after %d targets, got %s", i+1, s.State())
		}
	}
	if !s.CollectTarget() {
		t.Fatal("Expected level up on the 6th target")
	}

	if s.Level() != 2 {
		t.Errorf("Expected level=2, got %d", s.Level())
	}
	if s.Score() != 60 {
		t.Errorf("Expected score=60 (6 targets x 10 x level 1), got %d", s.Score())
	}
	if s.OrbsCollected() != 0 {
		t.Errorf("Expected orbsCollected=0, got %d", s.OrbsCollected())
	}
	if s.State() != StateLevelUpPause {
		t.Errorf("Expected state=LevelUpPause, got %s", s.State())
	}
	// 时间重置为刚完成关卡（第 1 关）的预算
	if s.TimeRemaining() != 28 {
		t.Errorf("Expected timeRemaining=28, got %d", s.TimeRemaining())
	}

	events := s.DrainEvents()
	if got := countEvents(events, EventLevelUp); got != 1 {
		t.Errorf("Expected exactly 1 level_up event, got %d", got)
	}
	if got := countEvents(events, EventTargetCollected); got != 6 {
		t.Errorf("Expected 6 target_collected events, got %d", got)
	}

	// 暂停期间再吃目标无效
	if s.CollectTarget() {
		t.Error("CollectTarget should be ignored during LevelUpPause")
	}
	if s.Score() != 60 {
		t.Errorf("Expected score unchanged during pause, got %d", s.Score())
	}

	if err := s.AcknowledgeLevelUp(); err != nil {
		t.Fatalf("AcknowledgeLevelUp failed: %v", err)
	}
	if s.State() != StatePlaying {
		t.Errorf("Expected Playing after acknowledge, got %s", s.State())
	}
	if s.Target().Size != 27 {
		t.Errorf("Expected target size 27 at level 2, got %v", s.Target().Size)
	}
}

func TestLevelUpClearsEntities(t *testing.T) {
	s := startTestSession(t, FixedLevelMode(5))
	s.SpawnHazard()
	s.SpawnHazard()
	s.SpawnBonus()

	for i := 0; i < s.variant.OrbsNeeded(5); i++ {
		s.CollectTarget()
	}

	if s.Level() != 6 {
		t.Fatalf("Expected level=6, got %d", s.Level())
	}
	if len(s.Hazards()) != 0 || len(s.Bonuses()) != 0 {
		t.Errorf("Expected entity lists cleared, got %d hazards, %d bonuses", len(s.Hazards()), len(s.Bonuses()))
	}
	if s.TimeRemaining() != 20 {
		t.Errorf("Expected timeRemaining=TimeLimit(5)=20, got %d", s.TimeRemaining())
	}
	if s.Score() != 10*5*10 {
		t.Errorf("Expected score=500, got %d", s.Score())
	}
}

func TestHitHazardEndsGame(t *testing.T) {
	s := startTestSession(t, FixedLevelMode(5))
	s.score = 120
	s.DrainEvents()

	s.HitHazard()

	if s.State() != StateGameOver {
		t.Fatalf("Expected GameOver, got %s", s.State())
	}
	if s.GameOverReason() != ReasonHazard {
		t.Errorf("Expected reason=hazard, got %s", s.GameOverReason())
	}

	// 终止状态不再接受任何状态变化
	if s.CollectTarget() {
		t.Error("CollectTarget should be ignored after GameOver")
	}
	s.TickCountdown()
	s.HitHazard()
	if s.Score() != 120 {
		t.Errorf("Expected score unchanged, got %d", s.Score())
	}
	if got := countEvents(s.DrainEvents(), EventGameOver); got != 1 {
		t.Errorf("Expected exactly 1 game_over event, got %d", got)
	}
}

func TestCollectBonus(t *testing.T) {
	s := startTestSession(t, InfiniteMode())
	s.level = 8
	s.timeRemaining = 10
	s.score = 40
	s.bonuses = []components.Bonus{
		{ID: "a", Body: components.Body{X: 10, Y: 10, Size: 25}},
		{ID: "b", Body: components.Body{X: 100, Y: 10, Size: 25}},
	}
	avatarBefore := s.Avatar()
	targetBefore := s.Target()

	if !s.CollectBonus("a") {
		t.Fatal("Expected bonus a to be collected")
	}

	if s.TimeRemaining() != 15 {
		t.Errorf("Expected timeRemaining=15, got %d", s.TimeRemaining())
	}
	if s.Score() != 60 {
		t.Errorf("Expected score=60, got %d", s.Score())
	}
	if len(s.Bonuses()) != 1 || s.Bonuses()[0].ID != "b" {
		t.Errorf("Expected only bonus b to remain, got %+v", s.Bonuses())
	}
	if s.Avatar() != avatarBefore || s.Target() != targetBefore {
		t.Error("Avatar/target must not change when collecting a bonus")
	}

	if s.CollectBonus("a") {
		t.Error("Collecting an already removed bonus should fail")
	}
	if s.Score() != 60 {
		t.Errorf("Expected score unchanged after duplicate collect, got %d", s.Score())
	}
}

func TestTickCountdownReachesZeroOnce(t *testing.T) {
	s := startTestSession(t, InfiniteMode())
	s.timeRemaining = 2
	s.DrainEvents()

	s.TickCountdown()
	if s.TimeRemaining() != 1 || s.State() != StatePlaying {
		t.Fatalf("Expected 1s left and Playing, got %d/%s", s.TimeRemaining(), s.State())
	}

	s.TickCountdown()
	if s.TimeRemaining() != 0 {
		t.Errorf("Expected timeRemaining=0, got %d", s.TimeRemaining())
	}
	if s.State() != StateGameOver {
		t.Errorf("Expected GameOver, got %s", s.State())
	}
	if s.GameOverReason() != ReasonTimeout {
		t.Errorf("Expected reason=timeout, got %s", s.GameOverReason())
	}

	s.TickCountdown()
	if s.TimeRemaining() != 0 {
		t.Errorf("Expected timeRemaining to stay 0, got %d", s.TimeRemaining())
	}
	if got := countEvents(s.DrainEvents(), EventGameOver); got != 1 {
		t.Errorf("Expected exactly 1 game_over event, got %d", got)
	}
}

func TestCountdownPausedDuringLevelUp(t *testing.T) {
	s := startTestSession(t, InfiniteMode())
	for i := 0; i < s.OrbsNeeded(); i++ {
		s.CollectTarget()
	}
	before := s.TimeRemaining()

	s.TickCountdown()

	if s.TimeRemaining() != before {
		t.Errorf("Expected countdown paused (%d), got %d", before, s.TimeRemaining())
	}
}

func TestBorderPenaltyCooldown(t *testing.T) {
	s := startTestSession(t, FixedLevelMode(10))
	s.timeRemaining = 20

	if !s.ApplyBorderPenalty() {
		t.Fatal("Expected first penalty to apply")
	}
	if s.TimeRemaining() != 18 {
		t.Errorf("Expected timeRemaining=18, got %d", s.TimeRemaining())
	}
	if !s.BorderPenaltyOnCooldown() {
		t.Error("Expected cooldown to be active")
	}

	// 冷却窗口内无论触发多少次都只扣一次
	for i := 0; i < 30; i++ {
		if s.ApplyBorderPenalty() {
			t.Fatalf("Penalty applied again during cooldown (iteration %d)", i)
		}
		s.TickCooldown(1.0 / 60.0)
	}
	if s.TimeRemaining() != 18 {
		t.Errorf("Expected timeRemaining=18 during cooldown, got %d", s.TimeRemaining())
	}

	s.TickCooldown(0.5)
	if s.BorderPenaltyOnCooldown() {
		t.Fatal("Expected cooldown to expire after 1 second")
	}
	if !s.ApplyBorderPenalty() {
		t.Error("Expected penalty to apply after cooldown")
	}
	if s.TimeRemaining() != 16 {
		t.Errorf("Expected timeRemaining=16, got %d", s.TimeRemaining())
	}
}

func TestBorderPenaltyInactiveBelowUnlockLevel(t *testing.T) {
	s := startTestSession(t, FixedLevelMode(5))
	before := s.TimeRemaining()

	if s.ApplyBorderPenalty() {
		t.Error("Border penalty should not apply at level 5")
	}
	if s.TimeRemaining() != before {
		t.Errorf("Expected timeRemaining=%d, got %d", before, s.TimeRemaining())
	}
}

func TestBorderPenaltyExhaustsTime(t *testing.T) {
	s := startTestSession(t, FixedLevelMode(10))
	s.timeRemaining = 1

	if !s.ApplyBorderPenalty() {
		t.Fatal("Expected penalty to apply")
	}
	if s.TimeRemaining() != 0 {
		t.Errorf("Expected timeRemaining floored at 0, got %d", s.TimeRemaining())
	}
	if s.State() != StateGameOver {
		t.Errorf("Expected GameOver when penalty exhausts time, got %s", s.State())
	}
}

func TestRestartSessionReinitializes(t *testing.T) {
	s := startTestSession(t, FixedLevelMode(5))
	fresh := startTestSession(t, FixedLevelMode(5))

	// 打乱状态
	for i := 0; i < 4; i++ {
		s.CollectTarget()
	}
	s.SpawnHazard()
	s.SetAvatarPosition(0, 0)
	s.HitHazard()

	if err := s.RestartSession(); err != nil {
		t.Fatalf("RestartSession failed: %v", err)
	}

	got := s.Snapshot()
	want := fresh.Snapshot()

	if got.State != want.State || got.Mode != want.Mode || got.Level != want.Level ||
		got.Score != want.Score || got.TimeRemaining != want.TimeRemaining ||
		got.OrbsCollected != want.OrbsCollected || got.Avatar != want.Avatar ||
		len(got.Hazards) != 0 || len(got.Bonuses) != 0 ||
		got.GameOverReason != ReasonNone || got.BorderPenaltyOnCooldown {
		t.Errorf("Restarted session differs from fresh session:\n got  %+v\n want %+v", got, want)
	}
	if s.Serial() != 2 {
		t.Errorf("Expected serial=2 after restart, got %d", s.Serial())
	}
}

func TestRestartFromMenuWithoutModeUsesInfinite(t *testing.T) {
	s := newTestSession(t)

	if err := s.RestartSession(); err != nil {
		t.Fatalf("RestartSession failed: %v", err)
	}
	if s.Mode() != InfiniteMode() {
		t.Errorf("Expected Infinite mode, got %s", s.Mode())
	}
	if s.Level() != 1 {
		t.Errorf("Expected level=1, got %d", s.Level())
	}
}

func TestInvalidTransitions(t *testing.T) {
	s := startTestSession(t, InfiniteMode())

	tests := []struct {
		name string
		fn   func() error
	}{
		{name: "start while playing", fn: func() error { return s.StartSession(InfiniteMode()) }},
		{name: "restart while playing", fn: s.RestartSession},
		{name: "acknowledge while playing", fn: s.AcknowledgeLevelUp},
		{name: "menu while playing", fn: s.ReturnToMenu},
	}

	for _, tt := range tests {
		if err := tt.fn(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s: Expected ErrInvalidTransition, got %v", tt.name, err)
		}
	}
	if s.State() != StatePlaying {
		t.Errorf("Expected state to remain Playing, got %s", s.State())
	}
}

func TestGameOverToMenuAndBack(t *testing.T) {
	s := startTestSession(t, FixedLevelMode(10))
	s.HitHazard()

	if err := s.ReturnToMenu(); err != nil {
		t.Fatalf("ReturnToMenu failed: %v", err)
	}
	if s.State() != StateMenu {
		t.Fatalf("Expected Menu, got %s", s.State())
	}

	if err := s.RestartSession(); err != nil {
		t.Fatalf("RestartSession failed: %v", err)
	}
	if s.Level() != 10 {
		t.Errorf("Expected restart to keep FixedLevel(10), got level %d", s.Level())
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := startTestSession(t, FixedLevelMode(10))
	s.SpawnHazard()
	s.SpawnBonus()

	snap := s.Snapshot()
	snap.Hazards[0].X = -100
	snap.Bonuses[0].ID = "changed"

	if s.Hazards()[0].X == -100 {
		t.Error("Snapshot hazards must not alias session state")
	}
	if s.Bonuses()[0].ID == "changed" {
		t.Error("Snapshot bonuses must not alias session state")
	}
	if !snap.Notices.HazardsActive || !snap.Notices.BonusesActive || !snap.Notices.BorderPenaltyActive {
		t.Errorf("Expected all notices active at level 10, got %+v", snap.Notices)
	}
	if snap.OrbsNeeded != 15 {
		t.Errorf("Expected orbsNeeded=15, got %d", snap.OrbsNeeded)
	}
}

func TestSpawnedEntitiesHaveUniqueIDs(t *testing.T) {
	s := startTestSession(t, FixedLevelMode(10))
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		h := s.SpawnHazard()
		b := s.SpawnBonus()
		for _, id := range []string{h.ID, b.ID} {
			if id == "" || seen[id] {
				t.Fatalf("Duplicate or empty id %q", id)
			}
			seen[id] = true
		}
		if h.X < 0 || h.X > config.FieldWidth-h.Size || h.Y < 0 || h.Y > config.FieldHeight-h.Size {
			t.Fatalf("Hazard out of bounds: %+v", h)
		}
	}
}

func TestDrainEventsBounded(t *testing.T) {
	s := startTestSession(t, FixedLevelMode(10))
	s.DrainEvents()

	for i := 0; i < maxPendingEvents*2; i++ {
		s.emit(Event{Type: EventTargetCollected})
	}
	if got := len(s.DrainEvents()); got != maxPendingEvents {
		t.Errorf("Expected %d pending events, got %d", maxPendingEvents, got)
	}
	if s.DrainEvents() != nil {
		t.Error("Expected no events after drain")
	}
}
