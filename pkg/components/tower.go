package components

import (
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/types"
)

// TowerPayload 防御塔类型专属的附加属性
// 只有 BurnPayload、SlowPayload、ChainPayload 三种实现，物理塔为 nil
type TowerPayload interface {
	isTowerPayload()
}

// BurnPayload 火焰塔：命中时给目标附加燃烧
type BurnPayload struct {
	DPS      float64
	Duration float64
}

// SlowPayload 冰冻塔：对射程内所有敌人施加减速光环
type SlowPayload struct {
	Factor float64 // 0-1，移动速度乘以 (1 - Factor)
}

// ChainPayload 电塔：子弹命中后弹射到附近的其他敌人
type ChainPayload struct {
	InitialCount int // 一次射击最多命中的目标数
}

func (BurnPayload) isTowerPayload()  {}
func (SlowPayload) isTowerPayload()  {}
func (ChainPayload) isTowerPayload() {}

// TowerComponent 已放置的防御塔
// 属性在放置时从解析后的属性表复制，之后不随升级变化
type TowerComponent struct {
	Type       types.TowerType
	Position   types.Vector
	SlotIndex  int // 占用的可建造格子编号
	Range      float64
	Damage     float64
	DamageType types.DamageType
	FireRate   float64 // 每秒射击次数，0 表示不发射子弹

	// FireCooldown 距离下次可射击的剩余秒数
	// 不射击的 tick 会被截断到 0，不会无限减小
	FireCooldown float64

	PurchaseCost float64 // 实际支付的价格，用于计算出售返还

	Payload TowerPayload

	// TargetID 最近一次射击的目标，渲染时画出瞄准线
	TargetID ecs.EntityID
}

// Burn 返回燃烧属性，非火焰塔返回 false
func (t *TowerComponent) Burn() (BurnPayload, bool) {
	p, ok := t.Payload.(BurnPayload)
	return p, ok
}

// Slow 返回减速属性，非冰冻塔返回 false
func (t *TowerComponent) Slow() (SlowPayload, bool) {
	p, ok := t.Payload.(SlowPayload)
	return p, ok
}

// Chain 返回闪电链属性，非电塔返回 false
func (t *TowerComponent) Chain() (ChainPayload, bool) {
	p, ok := t.Payload.(ChainPayload)
	return p, ok
}

// CanFire 是否会发射子弹
func (t *TowerComponent) CanFire() bool {
	return t.FireRate > 0
}
