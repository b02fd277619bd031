package components

import (
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/types"
)

// ChainState 闪电链子弹的弹射状态
type ChainState struct {
	Remaining  int            // 剩余弹射次数
	AlreadyHit []ecs.EntityID // 本次射击已命中过的敌人
}

// HasHit 该敌人是否已经被这条闪电链命中过
func (c *ChainState) HasHit(id ecs.EntityID) bool {
	for _, hit := range c.AlreadyHit {
		if hit == id {
			return true
		}
	}
	return false
}

// ProjectileComponent 飞向目标的子弹
// 目标和来源塔都以 ID 引用，每个 tick 重新查找
type ProjectileComponent struct {
	SourceTowerID ecs.EntityID
	TargetID      ecs.EntityID
	Position      types.Vector
	Speed         float64
	Damage        float64
	DamageType    types.DamageType

	Chain *ChainState
}

// Clone 复制子弹，闪电链命中列表重新分配
func (p ProjectileComponent) Clone() ProjectileComponent {
	c := p
	if p.Chain != nil {
		c.Chain = &ChainState{
			Remaining:  p.Chain.Remaining,
			AlreadyHit: append([]ecs.EntityID(nil), p.Chain.AlreadyHit...),
		}
	}
	return c
}
