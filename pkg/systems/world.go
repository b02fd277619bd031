package systems

import (
	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/ecs"
)

// World 一个 tick 可见的完整对局状态
//
// Simulation.Step 读取一个 World，产出一个新的 World；
// 调用方在 Step 返回前看不到任何中间状态。
type World struct {
	Entities    *ecs.EntityManager
	Towers      *ecs.Store[components.TowerComponent]
	Enemies     *ecs.Store[components.EnemyComponent]
	Projectiles *ecs.Store[components.ProjectileComponent]
	Effects     *ecs.Store[components.EffectComponent]

	// SpawnQueue 当前波次尚未生成的敌人，按时间升序
	SpawnQueue []components.SpawnEntry
	// WaveTime 当前波次的时钟（秒）
	WaveTime float64
	// GameTime 对局累计时间（秒，已按游戏速度缩放）
	GameTime float64
}

// NewWorld 创建空的对局状态
func NewWorld() *World {
	return &World{
		Entities:    ecs.NewEntityManager(),
		Towers:      ecs.NewStore[components.TowerComponent](),
		Enemies:     ecs.NewStore[components.EnemyComponent](),
		Projectiles: ecs.NewStore[components.ProjectileComponent](),
		Effects:     ecs.NewStore[components.EffectComponent](),
	}
}

// Clone 复制对局状态
// 存储按值复制组件；组件内部的切片和指针仍然共享，
// 修改敌人状态前必须通过 TickBuffer.EditEnemy 取得独立副本
func (w *World) Clone() *World {
	return &World{
		Entities:    w.Entities.Clone(),
		Towers:      w.Towers.Clone(),
		Enemies:     w.Enemies.Clone(),
		Projectiles: w.Projectiles.Clone(),
		Effects:     w.Effects.Clone(),
		SpawnQueue:  append([]components.SpawnEntry(nil), w.SpawnQueue...),
		WaveTime:    w.WaveTime,
		GameTime:    w.GameTime,
	}
}

// IsWaveCleared 场上没有敌人且生成队列为空
func (w *World) IsWaveCleared() bool {
	return w.Enemies.Len() == 0 && len(w.SpawnQueue) == 0
}

// SlotOccupied 指定格子上是否已有防御塔
func (w *World) SlotOccupied(slotIndex int) bool {
	occupied := false
	w.Towers.Each(func(_ ecs.EntityID, t components.TowerComponent) bool {
		if t.SlotIndex == slotIndex {
			occupied = true
			return false
		}
		return true
	})
	return occupied
}
