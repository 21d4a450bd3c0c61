package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/tiltorbs/pkg/app"
	"github.com/decker502/tiltorbs/pkg/config"
	"github.com/decker502/tiltorbs/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	variant    = flag.String("variant", "", "变体名称（classic, floating），为空使用默认变体")
	configPath = flag.String("config", "", "外部变体配置文件路径")
	level      = flag.Int("level", 0, "跳过主菜单，从指定关卡开始（1, 5, 10）")
	infinite   = flag.Bool("infinite", false, "跳过主菜单，直接开始无尽模式")
	silent     = flag.Bool("silent", false, "关闭音效")
	envFile    = flag.String("env", ".env", "环境变量文件")
)

func main() {
	flag.Parse()

	fileEnv, err := config.ReadDotEnv(*envFile)
	if err != nil {
		log.Fatalf("Error loading %s: %v", *envFile, err)
	}
	opts := config.LaunchOptions{Variant: *variant, ConfigPath: *configPath, Verbose: *verbose}
	opts.ApplyEnv(config.EnvLookup(fileEnv))

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    opts.Verbose,
		Variant:    opts.Variant,
		ConfigPath: opts.ConfigPath,
		StartLevel: *level,
		Infinite:   *infinite,
		Silent:     *silent,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Tilt Orbs")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
