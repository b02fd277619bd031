package app

import (
	"log"
	"time"

	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/game"
)

// recordSessionEnd 把对局结果交回局外成长
//
// 研究点计入解锁管理器，胜利时标记关卡完成，
// 然后追加对局记录并写入存档。保存失败只记录日志，不影响游戏继续。
func recordSessionEnd(unlocks *game.UpgradeUnlockManager, saveManager *game.SaveManager, ev game.SessionEndedEvent) {
	unlocks.AddResearchPoints(ev.ResearchPoints)
	if ev.Victory {
		unlocks.CompleteStage(ev.StageIndex)
	}

	saveManager.SetProgress(unlocks.Export())
	saveManager.AppendSession(game.NewSessionRecord(ev, time.Now()))
	if err := saveManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save progress: %v", err)
	}
}

// maxResearchChoices 结束画面最多列出的可研究节点数（对应数字键 1~9）
const maxResearchChoices = 9

// researchChoices 结束画面列出的可研究节点
func researchChoices(unlocks *game.UpgradeUnlockManager) []config.UpgradeNode {
	choices := unlocks.Available()
	if len(choices) > maxResearchChoices {
		choices = choices[:maxResearchChoices]
	}
	return choices
}

// buyUpgrade 解锁第 index 个可研究节点并保存
// 研究点不足或序号越界时不生效
func buyUpgrade(unlocks *game.UpgradeUnlockManager, saveManager *game.SaveManager, index int) bool {
	choices := researchChoices(unlocks)
	if index < 0 || index >= len(choices) {
		return false
	}
	if !unlocks.TryUnlock(choices[index].ID) {
		return false
	}
	saveManager.SetProgress(unlocks.Export())
	if err := saveManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save progress: %v", err)
	}
	return true
}
