package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按模式创建游戏场景，避免 game 包依赖 scenes 包
type SceneFactory func(mode Mode) Scene

// MenuFactory 主菜单工厂函数类型
type MenuFactory func() Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	menuFactory  MenuFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or ShowMenu to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置游戏场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SetMenuFactory 设置主菜单工厂函数
func (sm *SceneManager) SetMenuFactory(factory MenuFactory) {
	sm.menuFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// StartMode 以指定模式创建游戏场景并切换过去
// 工厂返回 nil（例如起始关卡非法）时保持当前场景
func (sm *SceneManager) StartMode(mode Mode) bool {
	log.Printf("[SceneManager] Starting mode: %s", mode)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return false
	}

	newScene := sm.sceneFactory(mode)
	if newScene == nil {
		log.Printf("[SceneManager] Error: failed to create scene for mode %s", mode)
		return false
	}
	sm.SwitchTo(newScene)
	return true
}

// ShowMenu 切换到主菜单
func (sm *SceneManager) ShowMenu() {
	if sm.menuFactory == nil {
		log.Printf("[SceneManager] Error: MenuFactory not set")
		return
	}
	sm.SwitchTo(sm.menuFactory())
	log.Printf("[SceneManager] Switched to menu")
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
