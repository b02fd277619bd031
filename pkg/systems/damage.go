package systems

import (
	"math"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/types"
)

// CalculateDamage 计算一次命中的最终伤害
//
// 公式: max(0, raw × critMultiplier × (1 - resistance) × (1 - armor))
//   - 暴击倍率为 1 + critDamage
//   - 抗性可以为负数（易伤）
//   - 护甲只作用于物理伤害
func CalculateDamage(raw float64, damageType types.DamageType, target *components.EnemyComponent, crit bool, critDamage float64) float64 {
	damage := raw
	if crit {
		damage *= 1 + critDamage
	}
	damage *= 1 - target.Resistance(damageType)
	if damageType == types.DamagePhysical {
		damage *= 1 - target.Armor()
	}
	return math.Max(0, damage)
}
