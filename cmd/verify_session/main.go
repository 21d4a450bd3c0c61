// verify_session 无界面地运行一局并打印事件流，用于检查难度曲线和状态机
//
// 自动驾驶每帧把玩家朝目标推，并绕开正下方的危险球；
// 升级暂停时立即确认，结束时打印汇总。
//
// 用法：
//
//	go run ./cmd/verify_session -level 5 -seconds 120 -seed 42 -verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/decker502/tiltorbs/pkg/components"
	"github.com/decker502/tiltorbs/pkg/config"
	"github.com/decker502/tiltorbs/pkg/game"
	"github.com/decker502/tiltorbs/pkg/systems"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	variantName = flag.String("variant", "", "变体名称")
	configPath  = flag.String("config", "", "变体配置文件")
	level       = flag.Int("level", 0, "固定起始关卡（0 表示无尽模式）")
	seconds     = flag.Float64("seconds", 90, "最长模拟时间（秒）")
	seed        = flag.Int64("seed", 1, "随机种子")
)

const frame = 1.0 / 60.0

// steer 计算把玩家推向目标的倾斜读数
// 危险球在玩家附近时改为横向躲避
func steer(snap game.Snapshot, tilt config.TiltConfig) components.TiltSample {
	ax, ay := center(snap.Avatar)
	tx, ty := center(snap.Target)
	wantX, wantY := tx-ax, ty-ay

	for _, h := range snap.Hazards {
		hx, hy := center(h.Body)
		if math.Abs(hx-ax) < snap.Avatar.Size && hy < ay && ay-hy < 120 {
			wantY = 0
			if hx > ax {
				wantX = -tilt.Sensitivity
			} else {
				wantX = tilt.Sensitivity
			}
			break
		}
	}

	// 每帧最多移动 K 像素
	dx := clamp(wantX, tilt.Sensitivity)
	dy := clamp(wantY, tilt.Sensitivity)
	return components.TiltSample{
		X: dy / (tilt.VerticalSign * tilt.Sensitivity),
		Y: -dx / tilt.Sensitivity,
	}
}

func center(b components.Body) (float64, float64) {
	return b.X + b.Size/2, b.Y + b.Size/2
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	variant, err := config.ResolveVariant(*configPath, *variantName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load variant: %v\n", err)
		os.Exit(1)
	}

	session := game.NewGameSession(variant, config.DefaultFieldSize(), rand.New(rand.NewSource(*seed)))
	loop := systems.NewGameLoop(session)

	mode := game.InfiniteMode()
	if *level > 0 {
		mode = game.FixedLevelMode(*level)
	}
	if err := session.StartSession(mode); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== verify_session: variant=%s mode=%s seed=%d ===\n", variant.Name, mode, *seed)

	elapsed := 0.0
	for elapsed < *seconds && session.State() != game.StateGameOver {
		if session.State() == game.StateLevelUpPause {
			if err := session.AcknowledgeLevelUp(); err != nil {
				fmt.Fprintf(os.Stderr, "Acknowledge failed: %v\n", err)
				os.Exit(1)
			}
		}

		loop.PushTilt(steer(session.Snapshot(), variant.Tilt))
		loop.Update(frame)
		elapsed += frame

		for _, e := range session.DrainEvents() {
			if e.Type == game.EventTargetCollected && !*verbose {
				continue
			}
			fmt.Printf("[%7.2fs] %-16s level=%-3d score=%-5d time=%ds\n",
				elapsed, e.Type, e.Level, e.Score, session.TimeRemaining())
		}
	}

	snap := session.Snapshot()
	fmt.Printf("=== %s after %.1fs: level=%d score=%d reason=%s ===\n",
		snap.State, elapsed, snap.Level, snap.Score, snap.GameOverReason)
}
