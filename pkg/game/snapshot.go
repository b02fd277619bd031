package game

import (
	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/systems"
	"github.com/gonewx/geotd/pkg/types"
)

// SessionSnapshot 渲染层使用的只读视图
// World 是已提交的状态，渲染层不得修改
type SessionSnapshot struct {
	Phase          Phase
	Money          float64
	Health         float64
	Speed          int
	WaveIndex      int
	TotalWaves     int
	Countdown      int
	ResearchPoints int
	Victory        bool
	GameOver       bool // 结束画面可见

	World *systems.World
	Path  []types.Vector
	Slots []types.Vector

	// Boss 场上第一个 Boss，没有时为 nil
	Boss   *components.EnemyComponent
	BossID ecs.EntityID
}

// Snapshot 生成当前对局的只读视图
func (s *Session) Snapshot() SessionSnapshot {
	snap := SessionSnapshot{
		Phase:          s.phase,
		Money:          s.money,
		Health:         s.health,
		Speed:          s.speed,
		WaveIndex:      s.waveTimer.CurrentWaveIndex,
		TotalWaves:     s.waveTimer.TotalWaves,
		Countdown:      s.Countdown(),
		ResearchPoints: s.researchPoints,
		Victory:        s.victory,
		GameOver:       s.GameOverVisible(),
		World:          s.world,
		Path:           s.sim.Path,
		Slots:          s.slots,
	}
	s.world.Enemies.Each(func(id ecs.EntityID, e components.EnemyComponent) bool {
		if e.Boss == nil {
			return true
		}
		boss := e
		snap.Boss = &boss
		snap.BossID = id
		return false
	})
	return snap
}
