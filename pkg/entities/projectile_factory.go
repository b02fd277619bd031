package entities

import (
	"fmt"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/types"
)

// NewProjectileEntity 创建防御塔射出的子弹
// 子弹从塔的位置出发；电塔的子弹带有闪电链状态，首个目标记为已命中
//
// 参数:
//   - em: 实体管理器
//   - projectiles: 子弹存储
//   - towerID / tower: 发射子弹的塔
//   - targetID: 目标敌人
//   - speed: 子弹速度（基础速度 × 全局修正）
func NewProjectileEntity(em *ecs.EntityManager, projectiles *ecs.Store[components.ProjectileComponent], towerID ecs.EntityID, tower *components.TowerComponent, targetID ecs.EntityID, speed float64) (ecs.EntityID, error) {
	if em == nil || projectiles == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager and projectile store cannot be nil")
	}
	if tower == nil {
		return ecs.InvalidEntity, fmt.Errorf("source tower cannot be nil")
	}

	p := components.ProjectileComponent{
		SourceTowerID: towerID,
		TargetID:      targetID,
		Position:      tower.Position,
		Speed:         speed,
		Damage:        tower.Damage,
		DamageType:    tower.DamageType,
	}
	if chain, ok := tower.Chain(); ok {
		p.Chain = &components.ChainState{
			Remaining:  chain.InitialCount - 1,
			AlreadyHit: []ecs.EntityID{targetID},
		}
	}

	id := em.CreateEntity()
	projectiles.Set(id, p)
	return id, nil
}

// NewChainProjectileEntity 创建闪电链弹射产生的子弹
// 从上一次命中的位置飞向下一个目标，剩余弹射次数减 1，命中列表追加新目标
func NewChainProjectileEntity(em *ecs.EntityManager, projectiles *ecs.Store[components.ProjectileComponent], prev *components.ProjectileComponent, hitPosition types.Vector, nextTargetID ecs.EntityID) (ecs.EntityID, error) {
	if em == nil || projectiles == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager and projectile store cannot be nil")
	}
	if prev == nil || prev.Chain == nil || prev.Chain.Remaining <= 0 {
		return ecs.InvalidEntity, fmt.Errorf("previous projectile has no bounces left")
	}

	hit := make([]ecs.EntityID, 0, len(prev.Chain.AlreadyHit)+1)
	hit = append(hit, prev.Chain.AlreadyHit...)
	hit = append(hit, nextTargetID)

	p := *prev
	p.Position = hitPosition
	p.TargetID = nextTargetID
	p.Chain = &components.ChainState{
		Remaining:  prev.Chain.Remaining - 1,
		AlreadyHit: hit,
	}

	id := em.CreateEntity()
	projectiles.Set(id, p)
	return id, nil
}
