package systems

import (
	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/ecs"
)

// LifetimeSystem 管理特效的生命周期
// 只推进 snapshot 中已有的特效；本 tick 新建的特效从下一个 tick 开始计时
type LifetimeSystem struct{}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

// Update 增加特效年龄，移除 Age >= MaxAge 的特效
func (s *LifetimeSystem) Update(snapshot, next *World, deltaTime float64) {
	snapshot.Effects.Each(func(id ecs.EntityID, effect components.EffectComponent) bool {
		effect.Age += deltaTime
		if effect.Age >= effect.MaxAge {
			next.Effects.Remove(id)
		} else {
			next.Effects.Set(id, effect)
		}
		return true
	})
}
