package entities

import (
	"image/color"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/types"
)

// 特效颜色
var (
	HitEffectColor     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff} // #fff
	CritHitEffectColor = color.RGBA{R: 0xfe, G: 0xf0, B: 0x8a, A: 0xff} // #fef08a
	ChainEffectColor   = color.RGBA{R: 0x67, G: 0xe8, B: 0xf9, A: 0xff} // #67e8f9
)

// NewHitEffectEntity 创建命中特效
// 暴击特效颜色不同，持续时间更长
func NewHitEffectEntity(em *ecs.EntityManager, effects *ecs.Store[components.EffectComponent], position types.Vector, crit bool) ecs.EntityID {
	effect := components.EffectComponent{
		Kind:     components.EffectHit,
		Position: position,
		MaxAge:   config.HitEffectDuration,
		Color:    HitEffectColor,
	}
	if crit {
		effect.Kind = components.EffectCritHit
		effect.MaxAge = config.CritHitEffectDuration
		effect.Color = CritHitEffectColor
	}

	id := em.CreateEntity()
	effects.Set(id, effect)
	return id
}

// NewChainEffectEntity 创建闪电链弹射特效
func NewChainEffectEntity(em *ecs.EntityManager, effects *ecs.Store[components.EffectComponent], position types.Vector) ecs.EntityID {
	id := em.CreateEntity()
	effects.Set(id, components.EffectComponent{
		Kind:     components.EffectChain,
		Position: position,
		MaxAge:   config.ChainEffectDuration,
		Color:    ChainEffectColor,
	})
	return id
}
