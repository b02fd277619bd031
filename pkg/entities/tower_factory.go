package entities

import (
	"fmt"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/types"
)

// NewTowerEntity 创建防御塔实体
// 属性从解析后的属性块复制，之后的升级不会影响已放置的塔
//
// 参数:
//   - em: 实体管理器
//   - towers: 防御塔存储
//   - stats: 已应用升级修正的属性块
//   - slotIndex: 占用的格子编号
//   - position: 格子中心的世界坐标
//   - purchaseCost: 实际支付的价格
//
// 返回:
//   - ecs.EntityID: 创建的防御塔实体ID
//   - error: 如果参数无效返回错误信息
func NewTowerEntity(em *ecs.EntityManager, towers *ecs.Store[components.TowerComponent], stats config.TowerStats, slotIndex int, position types.Vector, purchaseCost float64) (ecs.EntityID, error) {
	if em == nil || towers == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager and tower store cannot be nil")
	}
	if !stats.Type.IsValid() {
		return ecs.InvalidEntity, fmt.Errorf("invalid tower type %q", stats.Type)
	}

	tower := components.TowerComponent{
		Type:         stats.Type,
		Position:     position,
		SlotIndex:    slotIndex,
		Range:        stats.Range,
		Damage:       stats.Damage,
		DamageType:   stats.DamageType,
		FireRate:     stats.FireRate,
		PurchaseCost: purchaseCost,
		Payload:      towerPayload(stats),
	}
	// 新建的塔需要等待一个射击间隔
	if tower.FireRate > 0 {
		tower.FireCooldown = 1 / tower.FireRate
	}

	id := em.CreateEntity()
	towers.Set(id, tower)
	return id, nil
}

// towerPayload 根据属性块选择类型专属属性
func towerPayload(stats config.TowerStats) components.TowerPayload {
	switch {
	case stats.Burn != nil:
		return components.BurnPayload{DPS: stats.Burn.DPS, Duration: stats.Burn.Duration}
	case stats.SlowFactor != nil:
		return components.SlowPayload{Factor: *stats.SlowFactor}
	case stats.Chain != nil:
		return components.ChainPayload{InitialCount: stats.Chain.InitialCount}
	}
	return nil
}
