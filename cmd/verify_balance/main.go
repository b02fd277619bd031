// verify_balance 无界面平衡性验证工具
//
// 按固定策略自动建塔，以固定的帧间隔跑完一整个关卡，输出每一波的统计。
//
// 用法：
//
//	go run ./cmd/verify_balance -stage 1 -upgrades all -v
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/embedded"
	"github.com/gonewx/geotd/pkg/game"
	"github.com/gonewx/geotd/pkg/types"
	"github.com/gonewx/geotd/pkg/utils"
)

var (
	verbose   = flag.Bool("v", false, "显示详细日志")
	stageNum  = flag.Int("stage", 1, "关卡编号（从 1 开始）")
	seed      = flag.Int64("seed", 1, "随机种子")
	speed     = flag.Int("speed", 1, "游戏速度（1~3）")
	fps       = flag.Float64("fps", 60, "模拟帧率")
	upgrades  = flag.String("upgrades", "none", "升级解锁：none 只有根节点，all 解锁整棵树")
	maxMinute = flag.Float64("max-minutes", 120, "模拟时长上限（分钟）")
)

// waveStats 单个波次的统计
type waveStats struct {
	killed     int
	leaked     int
	money      float64
	bossKilled bool
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS("."))
	data, err := config.LoadGameData()
	if err != nil {
		fmt.Printf("❌ 游戏数据加载失败: %v\n", err)
		os.Exit(1)
	}

	unlocked := resolveUpgrades(data, *upgrades)
	resolved := game.NewStatResolver(data.Towers, data.Upgrades).Resolve(unlocked)

	session, err := game.NewSession(data, *stageNum-1, resolved, utils.NewRandomSource(*seed))
	if err != nil {
		fmt.Printf("❌ 对局创建失败: %v\n", err)
		os.Exit(1)
	}
	session.SetSpeed(*speed)

	stats := make(map[int]*waveStats)
	printed := make(map[int]bool)
	current := func() *waveStats {
		i := session.WaveIndex()
		if stats[i] == nil {
			stats[i] = &waveStats{}
		}
		return stats[i]
	}
	session.Events.Subscribe(game.EventEnemyKilled, game.ListenerFunc(func(ev game.Event) {
		k := ev.Data.(game.EnemyKilledEvent)
		w := current()
		w.killed++
		w.money += k.Money
		if k.Enemy.IsBoss() {
			w.bossKilled = true
		}
	}))
	session.Events.Subscribe(game.EventEnemyReachedEnd, game.ListenerFunc(func(ev game.Event) {
		current().leaked++
	}))
	session.Events.Subscribe(game.EventWaveCleared, game.ListenerFunc(func(ev game.Event) {
		i := ev.Data.(game.WaveClearedEvent).WaveIndex
		printWave(i, stats[i], session)
		printed[i] = true
	}))

	fmt.Printf("=== %s: %d 波, 升级 %s (%d 个节点, %d 研究点) ===\n",
		session.Stage().ID, len(session.Stage().Waves), *upgrades, len(unlocked), resolved.TotalSpent)

	dt := 1.0 / *fps
	limit := int(*maxMinute * 60 * *fps)
	placed := 0
	for frame := 0; frame < limit && session.Phase() != game.PhaseGameOver; frame++ {
		if session.Phase() != game.PhaseWaveInProgress {
			placed += autoPlace(session)
		}
		if session.Phase() == game.PhasePlacing {
			session.StartWave()
		}
		session.Update(dt)
	}

	if session.Phase() != game.PhaseGameOver {
		fmt.Printf("❌ 超过 %.0f 分钟仍未结束（当前第 %d 波）\n", *maxMinute, session.WaveIndex()+1)
		os.Exit(1)
	}
	// 最后一波结束时直接进入结束阶段，不会收到 WaveCleared
	if i := session.WaveIndex(); i >= 0 && !printed[i] {
		printWave(i, stats[i], session)
	}

	result := "失败"
	if session.Victory() {
		result = "胜利"
	}
	fmt.Printf("=== 结果: %s, 生命 %.0f, 金币 %.0f, 建塔 %d, 研究点 +%d ===\n",
		result, session.Health(), session.Money(), placed, session.ResearchPointsEarned())
}

// resolveUpgrades 按参数决定解锁哪些升级
func resolveUpgrades(data *config.GameData, mode string) []string {
	unlocks := game.NewUpgradeUnlockManager(data.Upgrades)
	if mode == "all" {
		unlocks.AddResearchPoints(1 << 20)
		// 依赖可能排在后面，重复扫描直到没有新的解锁
		for progress := true; progress; {
			progress = false
			for _, node := range data.Upgrades.Nodes {
				if unlocks.TryUnlock(node.ID) {
					progress = true
				}
			}
		}
	}
	return unlocks.Unlocked()
}

// autoPlace 固定建塔策略：按格子编号依次填满，每次选当前最便宜的已解锁防御塔
func autoPlace(s *game.Session) int {
	placed := 0
	for slot := range s.Stage().Slots {
		if s.World().SlotOccupied(slot) {
			continue
		}
		t, ok := cheapestTower(s)
		if !ok {
			break
		}
		if _, ok := s.PlaceTower(slot, t); !ok {
			break
		}
		placed++
	}
	return placed
}

func cheapestTower(s *game.Session) (types.TowerType, bool) {
	var (
		best     types.TowerType
		bestCost float64
		found    bool
	)
	for _, t := range s.Resolved().Settings.UnlockedTowers {
		cost, ok := s.TowerCost(t)
		if !ok || cost > s.Money() {
			continue
		}
		if !found || cost < bestCost {
			best, bestCost, found = t, cost, true
		}
	}
	return best, found
}

func printWave(index int, w *waveStats, s *game.Session) {
	if w == nil {
		w = &waveStats{}
	}
	boss := ""
	if w.bossKilled {
		boss = " [Boss 已击杀]"
	}
	fmt.Printf("第 %2d 波: 击杀 %3d, 漏怪 %2d, 收入 %6.0f, 生命 %3.0f, 金币 %6.0f%s\n",
		index+1, w.killed, w.leaked, w.money, s.Health(), s.Money(), boss)
}
