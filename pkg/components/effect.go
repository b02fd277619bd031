package components

import (
	"image/color"

	"github.com/gonewx/geotd/pkg/types"
)

// EffectKind 特效种类
type EffectKind int

const (
	EffectHit EffectKind = iota
	EffectCritHit
	EffectChain
)

// EffectComponent 命中/闪电链特效
// 只用于渲染，Age >= MaxAge 时被移除
type EffectComponent struct {
	Kind     EffectKind
	Position types.Vector
	Age      float64
	MaxAge   float64
	Color    color.RGBA
}

// Progress 特效进度 0-1
func (e *EffectComponent) Progress() float64 {
	if e.MaxAge <= 0 {
		return 1
	}
	p := e.Age / e.MaxAge
	if p > 1 {
		return 1
	}
	return p
}
