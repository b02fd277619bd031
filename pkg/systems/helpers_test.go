package systems

import (
	"math"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/types"
)

// testGameData 构造最小的对局数据
func testGameData() *config.GameData {
	return &config.GameData{
		Enemies: &config.EnemyStatsConfig{Enemies: map[types.EnemyType]config.EnemyStats{
			types.EnemyTriangle: {Type: types.EnemyTriangle, Health: 40, Speed: 80, Reward: 5},
			types.EnemySquare:   {Type: types.EnemySquare, Health: 250, Speed: 40, Reward: 10},
			types.EnemyPentagon: {Type: types.EnemyPentagon, Health: 100, Speed: 60, Reward: 8},
			types.EnemyBoss:     {Type: types.EnemyBoss, Health: 800, Speed: 30, Reward: 100},
			types.EnemyCritter:  {Type: types.EnemyCritter, Health: 1, Speed: 120, Reward: 1},
		}},
		Bosses: &config.BossConfig{Bosses: []config.BossDefinition{{
			NameKey:    "boss_1_name",
			BaseHealth: 1200,
			BaseReward: 100,
			Armor:      0.2,
			Resistances: map[types.DamageType]float64{
				types.DamageFire: 0.25,
			},
			SpecialAbility: config.SpecialAbility{
				Type:            types.AbilitySpawnCritters,
				TriggerDistance: 200,
				SpawnCount:      2,
				SpawnType:       types.EnemyCritter,
				Duration:        3,
			},
		}}},
	}
}

// straightPath 从 (0,0) 到 (1000,0) 的直线路径
func straightPath() []types.Vector {
	return []types.Vector{{X: 0, Y: 0}, {X: 1000, Y: 0}}
}

// bentPath (0,0) → (1000,0) → (1000,500)
func bentPath() []types.Vector {
	return []types.Vector{{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 500}}
}

func addEnemy(w *World, e components.EnemyComponent) ecs.EntityID {
	if e.PathIndex == 0 {
		e.PathIndex = 1
	}
	if e.MaxHealth == 0 {
		e.MaxHealth = e.Health
	}
	id := w.Entities.CreateEntity()
	w.Enemies.Set(id, e)
	return id
}

func addTower(w *World, t components.TowerComponent) ecs.EntityID {
	id := w.Entities.CreateEntity()
	w.Towers.Set(id, t)
	return id
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
