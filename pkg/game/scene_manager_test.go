package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
	mode         Mode
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerUpdateNoScene verifies that Update handles nil scene gracefully.
func TestSceneManagerUpdateNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016) // Should not panic
}

func TestSceneManagerStartMode(t *testing.T) {
	sm := NewSceneManager()
	var created []Mode
	sm.SetSceneFactory(func(mode Mode) Scene {
		created = append(created, mode)
		if mode.Kind == ModeFixedLevel && mode.StartLevel == 3 {
			return nil
		}
		return &MockScene{mode: mode}
	})

	if !sm.StartMode(FixedLevelMode(5)) {
		t.Fatal("Expected StartMode to succeed")
	}
	scene, ok := sm.GetCurrentScene().(*MockScene)
	if !ok || scene.mode != FixedLevelMode(5) {
		t.Errorf("Expected scene for FixedLevel(5), got %+v", sm.GetCurrentScene())
	}

	// 工厂失败时保持原场景
	if sm.StartMode(FixedLevelMode(3)) {
		t.Error("Expected StartMode to fail for rejected mode")
	}
	if sm.GetCurrentScene() != scene {
		t.Error("Expected current scene to be kept after a failed StartMode")
	}
	if len(created) != 2 {
		t.Errorf("Expected factory called twice, got %d", len(created))
	}
}

func TestSceneManagerWithoutFactories(t *testing.T) {
	sm := NewSceneManager()

	if sm.StartMode(InfiniteMode()) {
		t.Error("Expected StartMode to fail without a factory")
	}
	sm.ShowMenu() // Should not panic
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no scene without factories")
	}
}

func TestSceneManagerShowMenu(t *testing.T) {
	sm := NewSceneManager()
	menu := &MockScene{}
	sm.SetMenuFactory(func() Scene { return menu })
	sm.SwitchTo(&MockScene{})

	sm.ShowMenu()
	sm.Update(0.016)

	if sm.GetCurrentScene() != menu {
		t.Error("Expected menu scene to be active")
	}
	if !menu.updateCalled {
		t.Error("Menu's Update was not called")
	}
}
