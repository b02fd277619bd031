package app

import (
	"log"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/game"
	"github.com/gonewx/geotd/pkg/systems"
	"github.com/gonewx/geotd/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// digitKeys 数字键 1~9
// 对局中前 6 个按 AllTowerTypes 的顺序选择防御塔，结束画面中用于选择研究节点
var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// handleInput 把本帧输入翻译为玩家操作
//
// 操作说明：
//   - 1~6：选择防御塔（结束画面中 1~9 解锁对应的研究节点）
//   - 空格：开始第一波 / 倒计时中提前开始下一波
//   - S：切换游戏速度
//   - 左键空格子：放置选中的防御塔；右键防御塔：出售
//   - 回车：结束画面出现后开始下一局
func (a *App) handleInput() error {
	gameOver := a.session.GameOverVisible()
	for i, key := range digitKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if gameOver {
			buyUpgrade(a.unlocks, a.saveManager, i)
		} else if t, ok := towerForKey(i, a.session.Resolved().Settings); ok {
			a.selected = t
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		startNextWave(a.session)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.session.SetSpeed(nextSpeed(a.session.Speed()))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && gameOver {
		return a.startSession(nextStageIndex(a.session, len(a.data.Stages)))
	}

	input := pointerState()
	if input.JustPressed() {
		a.handlePointer(input)
	}
	return nil
}

// handlePointer 处理地图上的点击
func (a *App) handlePointer(input InputState) {
	slot := a.session.Stage().SlotIndexAt(input.X, input.Y)
	if slot < 0 {
		return
	}

	switch input.Button {
	case PointerPrimary:
		if id, ok := a.session.PlaceTower(slot, a.selected); ok {
			log.Printf("[App] Placed %s on slot %d (entity %d)", a.selected, slot, id)
		}
	case PointerSecondary:
		if id, ok := towerAtSlot(a.session.World(), slot); ok {
			if refund, ok := a.session.SellTower(id); ok {
				log.Printf("[App] Sold tower on slot %d for %.1f", slot, refund)
			}
		}
	}
}

// startNextWave 布置阶段开始第一波，倒计时中提前开始下一波
func startNextWave(s *game.Session) bool {
	switch s.Phase() {
	case game.PhasePlacing:
		return s.StartWave()
	case game.PhaseWaveCountdown:
		return s.StartWaveEarly()
	}
	return false
}

// towerForKey 返回第 index 个防御塔类型，未解锁或越界时返回 false
func towerForKey(index int, settings game.GlobalSettings) (types.TowerType, bool) {
	all := types.AllTowerTypes()
	if index < 0 || index >= len(all) {
		return "", false
	}
	t := all[index]
	if !settings.IsTowerUnlocked(t) {
		return "", false
	}
	return t, true
}

// firstUnlockedTower 默认选中的防御塔
func firstUnlockedTower(settings game.GlobalSettings) types.TowerType {
	for i := range types.AllTowerTypes() {
		if t, ok := towerForKey(i, settings); ok {
			return t
		}
	}
	return types.TowerCircle
}

// nextSpeed 1 → 2 → 3 → 1 循环
func nextSpeed(speed int) int {
	if speed >= config.MaxGameSpeed {
		return config.MinGameSpeed
	}
	return speed + 1
}

// nextStageIndex 胜利后进入下一关（最后一关之后回到第一关），失败则重玩本关
func nextStageIndex(s *game.Session, stageCount int) int {
	if !s.Victory() || stageCount == 0 {
		return s.StageIndex
	}
	return (s.StageIndex + 1) % stageCount
}

// towerAtSlot 查找占用格子的防御塔
func towerAtSlot(w *systems.World, slot int) (ecs.EntityID, bool) {
	found := ecs.InvalidEntity
	w.Towers.Each(func(id ecs.EntityID, t components.TowerComponent) bool {
		if t.SlotIndex == slot {
			found = id
			return false
		}
		return true
	})
	return found, found != ecs.InvalidEntity
}
