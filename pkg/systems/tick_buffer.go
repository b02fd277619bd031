package systems

import (
	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/ecs"
)

// EnemyOutcome 本 tick 内被击杀或到达终点的敌人
type EnemyOutcome struct {
	ID    ecs.EntityID
	Enemy components.EnemyComponent
}

// TickReport 一个 tick 的结算结果，由 Session 应用到金币、生命和研究点
type TickReport struct {
	Killed     []EnemyOutcome
	ReachedEnd []EnemyOutcome
	Spawned    []ecs.EntityID // 波次生成的敌人
	Summoned   []ecs.EntityID // Boss 技能召唤的小怪
}

// TickBuffer 一个 tick 内各系统共享的写缓冲
type TickBuffer struct {
	// Damage 本 tick 累计的直接伤害，敌人更新阶段一次性扣除
	Damage map[ecs.EntityID]float64
	// Fired 本 tick 新发射的子弹，同一 tick 内参与飞行结算
	Fired []ecs.EntityID
	// Released 本 tick 到时间的生成项，在提交前实例化
	Released []components.SpawnEntry

	owned  map[ecs.EntityID]bool
	report TickReport
}

// NewTickBuffer 创建空缓冲
func NewTickBuffer() *TickBuffer {
	return &TickBuffer{
		Damage: make(map[ecs.EntityID]float64),
		owned:  make(map[ecs.EntityID]bool),
	}
}

// EditEnemy 以写时复制的方式修改 next 中的敌人
// 每个敌人在一个 tick 内第一次被修改时复制其状态字段，之后直接在副本上修改
// 敌人不存在时返回 false
func (b *TickBuffer) EditEnemy(next *World, id ecs.EntityID, fn func(e *components.EnemyComponent)) bool {
	e, ok := next.Enemies.Get(id)
	if !ok {
		return false
	}
	if !b.owned[id] {
		e = e.Clone()
		b.owned[id] = true
	}
	fn(&e)
	next.Enemies.Set(id, e)
	return true
}

// Own 标记新创建的敌人为本 tick 独占，之后修改无需复制
func (b *TickBuffer) Own(id ecs.EntityID) {
	b.owned[id] = true
}

// Report 返回本 tick 的结算结果
func (b *TickBuffer) Report() TickReport {
	return b.report
}
