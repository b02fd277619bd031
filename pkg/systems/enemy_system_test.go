package systems

import (
	"testing"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/types"
	"github.com/gonewx/geotd/pkg/utils"
)

func runEnemies(snapshot *World, buf *TickBuffer, dt, now float64, rng utils.RandomSource) *World {
	return runEnemiesOnPath(straightPath(), snapshot, buf, dt, now, rng)
}

func runEnemiesOnPath(path []types.Vector, snapshot *World, buf *TickBuffer, dt, now float64, rng utils.RandomSource) *World {
	next := snapshot.Clone()
	NewEnemySystem(path, testGameData().Enemies, rng).Update(snapshot, next, buf, dt, now)
	return next
}

func TestEnemySystem_Movement(t *testing.T) {
	tests := []struct {
		name         string
		path         []types.Vector
		enemy        components.EnemyComponent
		wantPosition types.Vector
		wantDistance float64
		wantIndex    int
	}{
		{
			name:         "正常移动",
			enemy:        components.EnemyComponent{Position: types.Vector{X: 100}, Speed: 50, Health: 10},
			wantPosition: types.Vector{X: 105},
			wantDistance: 5,
			wantIndex:    1,
		},
		{
			name:         "减速后移动",
			enemy:        components.EnemyComponent{Position: types.Vector{X: 100}, Speed: 50, Health: 10, Slow: &components.SlowStatus{Factor: 0.4, ExpiresAt: 10}},
			wantPosition: types.Vector{X: 103},
			wantDistance: 3,
			wantIndex:    1,
		},
		{
			name:         "越过航点时吸附并丢弃剩余距离",
			path:         bentPath(),
			enemy:        components.EnemyComponent{Position: types.Vector{X: 995}, Speed: 100, Health: 10},
			wantPosition: types.Vector{X: 1000},
			wantDistance: 5,
			wantIndex:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == nil {
				path = straightPath()
			}
			snapshot := NewWorld()
			id := addEnemy(snapshot, tt.enemy)
			next := runEnemiesOnPath(path, snapshot, NewTickBuffer(), 0.1, 0, nil)

			e, ok := next.Enemies.Get(id)
			if !ok {
				t.Fatal("Enemy should still be alive")
			}
			if !almostEqual(e.Position.X, tt.wantPosition.X) || !almostEqual(e.Position.Y, tt.wantPosition.Y) {
				t.Errorf("Expected position %v, got %v", tt.wantPosition, e.Position)
			}
			if !almostEqual(e.DistanceTraveled, tt.wantDistance) {
				t.Errorf("Expected distance %v, got %v", tt.wantDistance, e.DistanceTraveled)
			}
			if e.PathIndex != tt.wantIndex {
				t.Errorf("Expected path index %d, got %d", tt.wantIndex, e.PathIndex)
			}
		})
	}
}

func TestEnemySystem_SnapToLastWaypointReachesEnd(t *testing.T) {
	snapshot := NewWorld()
	id := addEnemy(snapshot, components.EnemyComponent{Position: types.Vector{X: 995}, Speed: 100, Health: 10})

	buf := NewTickBuffer()
	next := runEnemies(snapshot, buf, 0.1, 0, nil)

	report := buf.Report()
	if len(report.ReachedEnd) != 1 || report.ReachedEnd[0].ID != id {
		t.Fatalf("Expected enemy %d to reach the end, got %+v", id, report.ReachedEnd)
	}
	if next.Enemies.Len() != 0 {
		t.Errorf("Enemy at the end should be removed, %d left", next.Enemies.Len())
	}
}

func TestEnemySystem_StatusEffects(t *testing.T) {
	snapshot := NewWorld()
	id := addEnemy(snapshot, components.EnemyComponent{
		Position: types.Vector{X: 100},
		Speed:    50,
		Health:   100,
		Slow:     &components.SlowStatus{Factor: 0.5, ExpiresAt: 1},
		Burns: []components.BurnStatus{
			{SourceTowerID: 7, DPS: 10, ExpiresAt: 5},
			{SourceTowerID: 8, DPS: 20, ExpiresAt: 1.5},
		},
	})

	buf := NewTickBuffer()
	buf.Damage[id] = 25
	next := runEnemies(snapshot, buf, 0.5, 2, nil)

	e, _ := next.Enemies.Get(id)
	// 100 - 25 直接伤害 - 10*0.5 燃烧
	if !almostEqual(e.Health, 70) {
		t.Errorf("Expected health 70, got %v", e.Health)
	}
	if len(e.Burns) != 1 || e.Burns[0].SourceTowerID != 7 {
		t.Errorf("Expired burn should be dropped, got %+v", e.Burns)
	}
	if e.Slow != nil {
		t.Error("Expired slow should be cleared")
	}
	// 减速已清除，按原速移动
	if !almostEqual(e.Position.X, 125) {
		t.Errorf("Expected full-speed move to 125, got %v", e.Position.X)
	}

	orig, _ := snapshot.Enemies.Get(id)
	if orig.Health != 100 || len(orig.Burns) != 2 || orig.Slow == nil {
		t.Errorf("Snapshot enemy mutated: %+v", orig)
	}
}

func TestEnemySystem_KilledAndReachedEnd(t *testing.T) {
	snapshot := NewWorld()
	dying := addEnemy(snapshot, components.EnemyComponent{Type: types.EnemyTriangle, Position: types.Vector{X: 100}, Speed: 50, Health: 10, Reward: 5})
	leaking := addEnemy(snapshot, components.EnemyComponent{Type: types.EnemySquare, Position: types.Vector{X: 999}, Speed: 50, Health: 10})
	finished := addEnemy(snapshot, components.EnemyComponent{Type: types.EnemySquare, Position: types.Vector{X: 1000}, Speed: 50, Health: 10, PathIndex: 2})

	buf := NewTickBuffer()
	buf.Damage[dying] = 12
	next := runEnemies(snapshot, buf, 0.1, 0, nil)

	report := buf.Report()
	if len(report.Killed) != 1 || report.Killed[0].ID != dying {
		t.Fatalf("Expected enemy %d killed, got %+v", dying, report.Killed)
	}
	if report.Killed[0].Enemy.Health != 0 || report.Killed[0].Enemy.Reward != 5 {
		t.Errorf("Unexpected killed outcome: %+v", report.Killed[0].Enemy)
	}
	if len(report.ReachedEnd) != 2 || report.ReachedEnd[0].ID != leaking || report.ReachedEnd[1].ID != finished {
		t.Errorf("Expected enemies %d and %d at the end, got %+v", leaking, finished, report.ReachedEnd)
	}
	if next.Enemies.Len() != 0 {
		t.Errorf("Resolved enemies should be removed, %d left", next.Enemies.Len())
	}
}

func bossAt(distance float64) components.EnemyComponent {
	return components.EnemyComponent{
		Type:             types.EnemyBoss,
		Position:         types.Vector{X: distance},
		Speed:            50,
		Health:           1000,
		DistanceTraveled: distance,
		Boss: &components.BossState{
			Ability: components.BossAbility{
				Type:            types.AbilitySpawnCritters,
				TriggerDistance: 200,
				SpawnCount:      2,
				SpawnType:       types.EnemyCritter,
				Duration:        3,
			},
			NextAbilityTrigger: 200,
		},
	}
}

func TestEnemySystem_BossSummonsCritters(t *testing.T) {
	snapshot := NewWorld()
	bossID := addEnemy(snapshot, bossAt(150))

	buf := NewTickBuffer()
	next := runEnemies(snapshot, buf, 1, 0, utils.NewSequenceRandom(0.5))

	boss, _ := next.Enemies.Get(bossID)
	if !almostEqual(boss.Position.X, 200) {
		t.Errorf("Boss should still move this tick, got %v", boss.Position)
	}
	if boss.Boss.AbilityTimer != 3 || boss.Boss.NextAbilityTrigger != 400 {
		t.Errorf("Unexpected boss state: %+v", boss.Boss)
	}

	summoned := buf.Report().Summoned
	if len(summoned) != 2 {
		t.Fatalf("Expected 2 critters, got %d", len(summoned))
	}
	for _, id := range summoned {
		c, ok := next.Enemies.Get(id)
		if !ok {
			t.Fatalf("Critter %d not stored", id)
		}
		if c.Type != types.EnemyCritter || c.Position != (types.Vector{X: 150}) {
			t.Errorf("Critter should spawn at pre-move position, got %+v", c)
		}
		if c.PathIndex != 1 || !almostEqual(c.DistanceTraveled, 200) {
			t.Errorf("Critter should inherit path progress, got index %d distance %v", c.PathIndex, c.DistanceTraveled)
		}
	}

	if orig, _ := snapshot.Enemies.Get(bossID); orig.Boss.AbilityTimer != 0 || orig.Boss.NextAbilityTrigger != 200 {
		t.Error("Snapshot boss state mutated")
	}

	// 施法期间停止移动
	after := runEnemies(next, NewTickBuffer(), 0.5, 1, utils.NewSequenceRandom(0.5))
	boss, _ = after.Enemies.Get(bossID)
	if !almostEqual(boss.Position.X, 200) {
		t.Errorf("Casting boss should not move, got %v", boss.Position)
	}
	if !almostEqual(boss.Boss.AbilityTimer, 2.5) {
		t.Errorf("Expected ability timer 2.5, got %v", boss.Boss.AbilityTimer)
	}
}
