package main

import (
	"flag"
	"log"

	"github.com/gonewx/geotd/pkg/app"
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细日志")
	stage   = flag.Int("stage", 1, "关卡编号（从 1 开始）")
	speed   = flag.Int("speed", 1, "初始游戏速度（1~3）")
	seed    = flag.Int64("seed", 0, "随机种子，0 表示按时间播种")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	game, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Stage:   *stage - 1,
		Speed:   *speed,
		Seed:    *seed,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Geometry Tower Defense")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
	if err := game.SaveProgress(); err != nil {
		log.Printf("[Main] Failed to save progress: %v", err)
	}
}
