package entities

import (
	"fmt"
	"math"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/types"
)

// NewEnemyEntity 创建普通敌人实体
// 敌人出生在路径起点，下一个目标航点为 1
//
// healthMultiplier 用于击杀 Boss 后的难度提升（通常为 1 或 1.2）
func NewEnemyEntity(em *ecs.EntityManager, enemies *ecs.Store[components.EnemyComponent], stats config.EnemyStats, start types.Vector, healthMultiplier float64) (ecs.EntityID, error) {
	if em == nil || enemies == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager and enemy store cannot be nil")
	}
	if !stats.Type.IsValid() {
		return ecs.InvalidEntity, fmt.Errorf("invalid enemy type %q", stats.Type)
	}

	health := stats.Health * healthMultiplier
	id := em.CreateEntity()
	enemies.Set(id, components.EnemyComponent{
		Type:      stats.Type,
		Position:  start,
		Health:    health,
		MaxHealth: health,
		Speed:     stats.Speed,
		Reward:    stats.Reward,
		PathIndex: 1,
	})
	return id, nil
}

// NewBossEntity 创建 Boss 实体
//
// 参数:
//   - def: Boss 定义
//   - bossIndex: floor(waveIndex / 5)
//   - speed: Boss 移动速度（取自敌人属性表）
//   - start: 路径起点
//   - healthMultiplier: 难度提升倍率
//   - mods: 按研究点花费计算的护甲/抗性加成
//
// 最终护甲和每项已配置的抗性都不超过 MaxCombinedReduction；未配置的抗性保持缺省（0）
func NewBossEntity(em *ecs.EntityManager, enemies *ecs.Store[components.EnemyComponent], def config.BossDefinition, bossIndex int, speed float64, start types.Vector, healthMultiplier float64, mods config.BossModifiers) (ecs.EntityID, error) {
	if em == nil || enemies == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager and enemy store cannot be nil")
	}

	resistances := make(map[types.DamageType]float64, len(def.Resistances))
	for damageType, r := range def.Resistances {
		resistances[damageType] = math.Min(config.MaxCombinedReduction, r+mods.Resistance)
	}

	ability := def.SpecialAbility
	health := def.BaseHealth * healthMultiplier
	id := em.CreateEntity()
	enemies.Set(id, components.EnemyComponent{
		Type:      types.EnemyBoss,
		Position:  start,
		Health:    health,
		MaxHealth: health,
		Speed:     speed,
		Reward:    def.BaseReward,
		PathIndex: 1,
		Boss: &components.BossState{
			BossIndex:   bossIndex,
			NameKey:     def.NameKey,
			Armor:       math.Min(config.MaxCombinedReduction, def.Armor+mods.Armor),
			Resistances: resistances,
			Ability: components.BossAbility{
				Type:            ability.Type,
				TriggerDistance: ability.TriggerDistance,
				SpawnCount:      ability.SpawnCount,
				SpawnType:       ability.SpawnType,
				Duration:        ability.Duration,
			},
			NextAbilityTrigger: ability.TriggerDistance,
		},
	})
	return id, nil
}

// NewCritterEntity 创建 Boss 技能召唤的小怪
// 小怪继承召唤者的路径进度，使用基础血量（不受难度提升影响）
func NewCritterEntity(em *ecs.EntityManager, enemies *ecs.Store[components.EnemyComponent], stats config.EnemyStats, position types.Vector, pathIndex int, distanceTraveled float64) (ecs.EntityID, error) {
	if em == nil || enemies == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager and enemy store cannot be nil")
	}

	id := em.CreateEntity()
	enemies.Set(id, components.EnemyComponent{
		Type:             stats.Type,
		Position:         position,
		Health:           stats.Health,
		MaxHealth:        stats.Health,
		Speed:            stats.Speed,
		Reward:           stats.Reward,
		PathIndex:        pathIndex,
		DistanceTraveled: distanceTraveled,
	})
	return id, nil
}
