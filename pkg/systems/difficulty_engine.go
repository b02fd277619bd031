package systems

import (
	"math"

	"github.com/gonewx/geotd/pkg/config"
)

// DifficultyEngine 难度引擎
// 负责击杀 Boss 后的临时难度提升，以及按研究点花费计算的 Boss 护甲/抗性加成
type DifficultyEngine struct{}

// NewDifficultyEngine 创建新的难度引擎实例
func NewDifficultyEngine() *DifficultyEngine {
	return &DifficultyEngine{}
}

// BossModifiersForSpent 根据升级累计花费计算 Boss 加成
// 公式: armor = min(0.5, spent × 0.005)，resistance = min(0.5, spent × 0.002)
func (d *DifficultyEngine) BossModifiersForSpent(spent int) config.BossModifiers {
	s := float64(spent)
	return config.BossModifiers{
		Armor:      math.Min(config.BossModifierCap, s*config.BossArmorPerPoint),
		Resistance: math.Min(config.BossModifierCap, s*config.BossResistancePerPoint),
	}
}

// CounterAfterBossKill 击杀 Boss 后难度计数器的值
func (d *DifficultyEngine) CounterAfterBossKill() int {
	return config.PostBossDifficultyWaves
}

// CounterOnWaveStart 开始新一波时计数器递减（不低于 0）
func (d *DifficultyEngine) CounterOnWaveStart(counter int) int {
	if counter > 0 {
		return counter - 1
	}
	return 0
}

// HealthMultiplier 敌人基础血量倍率
func (d *DifficultyEngine) HealthMultiplier(counter int) float64 {
	if counter > 0 {
		return config.PostBossHealthMultiplier
	}
	return 1
}

// ScaleGroupCount 按难度计数器缩放生成组数量
// Boss 组不缩放；非 Boss 组 ×1.4 向下取整
func (d *DifficultyEngine) ScaleGroupCount(count int, isBoss bool, counter int) int {
	if isBoss || counter <= 0 {
		return count
	}
	return int(math.Floor(float64(count) * config.PostBossCountMultiplier))
}

// ResearchPointsForBoss 击杀第 bossIndex 个 Boss 获得的研究点
// 公式: floor((bossIndex + 3) × researchPointModifier)
func (d *DifficultyEngine) ResearchPointsForBoss(bossIndex int, modifier float64) int {
	return int(math.Floor(float64(bossIndex+config.BossResearchPointBase) * modifier))
}
