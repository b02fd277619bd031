package systems

import (
	"testing"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/types"
	"github.com/gonewx/geotd/pkg/utils"
)

func addProjectile(w *World, p components.ProjectileComponent) ecs.EntityID {
	id := w.Entities.CreateEntity()
	w.Projectiles.Set(id, p)
	return id
}

func runProjectiles(snapshot *World, critChance float64, rng utils.RandomSource, now float64) (*World, *TickBuffer) {
	next := snapshot.Clone()
	buf := NewTickBuffer()
	NewProjectileSystem(critChance, 0.5, rng).Update(snapshot, next, buf, 0.1, now)
	return next, buf
}

func TestProjectileSystem_MissingTargetDropped(t *testing.T) {
	snapshot := NewWorld()
	id := addProjectile(snapshot, components.ProjectileComponent{TargetID: 99, Speed: 600, Damage: 10})

	next, buf := runProjectiles(snapshot, 0, utils.NewSequenceRandom(0.9), 0)

	if next.Projectiles.Has(id) {
		t.Error("Projectile without target should be dropped")
	}
	if len(buf.Damage) != 0 || next.Effects.Len() != 0 {
		t.Error("Dropped projectile should not deal damage or create effects")
	}
}

func TestProjectileSystem_MovesTowardTarget(t *testing.T) {
	snapshot := NewWorld()
	target := addEnemy(snapshot, components.EnemyComponent{Type: types.EnemySquare, Position: types.Vector{X: 500}, Health: 250})
	id := addProjectile(snapshot, components.ProjectileComponent{TargetID: target, Speed: 600, Damage: 10})

	next, buf := runProjectiles(snapshot, 0, utils.NewSequenceRandom(0.9), 0)

	p, ok := next.Projectiles.Get(id)
	if !ok {
		t.Fatal("Projectile should still be flying")
	}
	if !almostEqual(p.Position.X, 60) || p.Position.Y != 0 {
		t.Errorf("Expected position (60, 0), got %v", p.Position)
	}
	if len(buf.Damage) != 0 {
		t.Error("No hit expected")
	}
}

func TestProjectileSystem_HitAndCrit(t *testing.T) {
	tests := []struct {
		name       string
		roll       float64
		wantDamage float64
		wantKind   components.EffectKind
	}{
		{"普通命中", 0.9, 10, components.EffectHit},
		{"暴击", 0.1, 15, components.EffectCritHit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := NewWorld()
			target := addEnemy(snapshot, components.EnemyComponent{Type: types.EnemySquare, Position: types.Vector{X: 60}, Health: 250})
			id := addProjectile(snapshot, components.ProjectileComponent{TargetID: target, Speed: 600, Damage: 10, DamageType: types.DamagePhysical})

			next, buf := runProjectiles(snapshot, 0.5, utils.NewSequenceRandom(tt.roll), 0)

			if next.Projectiles.Has(id) {
				t.Error("Projectile should be removed on hit")
			}
			if !almostEqual(buf.Damage[target], tt.wantDamage) {
				t.Errorf("Expected damage %v, got %v", tt.wantDamage, buf.Damage[target])
			}
			if next.Effects.Len() != 1 {
				t.Fatalf("Expected 1 hit effect, got %d", next.Effects.Len())
			}
			if effect := next.Effects.Values()[0]; effect.Kind != tt.wantKind {
				t.Errorf("Expected effect kind %v, got %v", tt.wantKind, effect.Kind)
			}
			// 伤害只记录，不直接扣血
			if e, _ := next.Enemies.Get(target); e.Health != 250 {
				t.Errorf("Health should be untouched by projectile phase, got %v", e.Health)
			}
		})
	}
}

func TestProjectileSystem_BurnReplacesSameSource(t *testing.T) {
	snapshot := NewWorld()
	fireTower := addTower(snapshot, components.TowerComponent{
		Type:       types.TowerFire,
		DamageType: types.DamageFire,
		Damage:     5,
		FireRate:   1,
		Range:      120,
		Payload:    components.BurnPayload{DPS: 10, Duration: 3},
	})
	target := addEnemy(snapshot, components.EnemyComponent{
		Type:     types.EnemySquare,
		Position: types.Vector{X: 1},
		Health:   250,
		Burns: []components.BurnStatus{
			{SourceTowerID: fireTower, DPS: 10, ExpiresAt: 2.5},
			{SourceTowerID: 77, DPS: 4, ExpiresAt: 9},
		},
	})
	addProjectile(snapshot, components.ProjectileComponent{SourceTowerID: fireTower, TargetID: target, Speed: 600, Damage: 5, DamageType: types.DamageFire})

	next, _ := runProjectiles(snapshot, 0, utils.NewSequenceRandom(0.9), 2)

	e, _ := next.Enemies.Get(target)
	if len(e.Burns) != 2 {
		t.Fatalf("Expected 2 burn stacks, got %d: %+v", len(e.Burns), e.Burns)
	}
	var own *components.BurnStatus
	for i := range e.Burns {
		if e.Burns[i].SourceTowerID == fireTower {
			own = &e.Burns[i]
		}
	}
	if own == nil || own.ExpiresAt != 5 {
		t.Errorf("Expected refreshed burn expiring at 5, got %+v", own)
	}

	orig, _ := snapshot.Enemies.Get(target)
	if orig.Burns[0].ExpiresAt != 2.5 || len(orig.Burns) != 2 {
		t.Errorf("Snapshot burns mutated: %+v", orig.Burns)
	}
}

func TestProjectileSystem_ChainSkipsAlreadyHit(t *testing.T) {
	snapshot := NewWorld()
	a := addEnemy(snapshot, components.EnemyComponent{Type: types.EnemySquare, Position: types.Vector{X: 50}, Health: 250})
	b := addEnemy(snapshot, components.EnemyComponent{Type: types.EnemySquare, Position: types.Vector{X: 10}, Health: 250})
	c := addEnemy(snapshot, components.EnemyComponent{Type: types.EnemySquare, Position: types.Vector{X: 120}, Health: 250})
	addEnemy(snapshot, components.EnemyComponent{Type: types.EnemySquare, Position: types.Vector{X: 300}, Health: 250})

	addProjectile(snapshot, components.ProjectileComponent{
		TargetID:   a,
		Position:   types.Vector{X: 49},
		Speed:      600,
		Damage:     25,
		DamageType: types.DamageElectric,
		Chain:      &components.ChainState{Remaining: 1, AlreadyHit: []ecs.EntityID{b, a}},
	})

	next, _ := runProjectiles(snapshot, 0, utils.NewSequenceRandom(0.9), 0)

	if next.Projectiles.Len() != 1 {
		t.Fatalf("Expected 1 chained projectile, got %d", next.Projectiles.Len())
	}
	chained := next.Projectiles.Values()[0]
	if chained.TargetID != c {
		t.Errorf("Chain should skip already-hit enemy and pick %d, got %d", c, chained.TargetID)
	}
	if chained.Chain.Remaining != 0 || len(chained.Chain.AlreadyHit) != 3 {
		t.Errorf("Unexpected chain state: %+v", chained.Chain)
	}
	if chained.Position != (types.Vector{X: 50}) {
		t.Errorf("Chained projectile should start at hit position, got %v", chained.Position)
	}
	// 命中特效 + 闪电链特效
	if next.Effects.Len() != 2 {
		t.Errorf("Expected 2 effects, got %d", next.Effects.Len())
	}
}
