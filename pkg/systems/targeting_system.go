package systems

import (
	"log"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/entities"
)

// TargetingSystem 防御塔冷却、索敌与射击
// 冰冻塔不射击，每个 tick 对射程内的敌人刷新减速光环
type TargetingSystem struct {
	projectileSpeed float64
}

// NewTargetingSystem 创建索敌系统
// projectileSpeedModifier 为全局子弹速度修正（升级提供）
func NewTargetingSystem(projectileSpeedModifier float64) *TargetingSystem {
	return &TargetingSystem{
		projectileSpeed: config.BaseProjectileSpeed * projectileSpeedModifier,
	}
}

// Update 处理所有防御塔
// 目标选择读取 snapshot 中的敌人；减速和新子弹写入 next
func (s *TargetingSystem) Update(snapshot, next *World, buf *TickBuffer, deltaTime, now float64) {
	enemyIDs := snapshot.Enemies.Entities()

	snapshot.Towers.Each(func(towerID ecs.EntityID, tower components.TowerComponent) bool {
		tower.FireCooldown -= deltaTime

		if slow, ok := tower.Slow(); ok {
			s.applySlowAura(snapshot, next, buf, &tower, slow, enemyIDs, now)
		}

		fired := false
		if tower.FireCooldown <= 0 && tower.CanFire() {
			if targetID, ok := s.findTarget(snapshot, &tower, enemyIDs); ok {
				tower.FireCooldown = 1 / tower.FireRate
				tower.TargetID = targetID
				projectileID, err := entities.NewProjectileEntity(next.Entities, next.Projectiles, towerID, &tower, targetID, s.projectileSpeed)
				if err != nil {
					log.Printf("[TargetingSystem] ERROR: tower %d failed to fire: %v", towerID, err)
				} else {
					buf.Fired = append(buf.Fired, projectileID)
					fired = true
				}
			}
		}
		// 空闲的塔不累积负冷却
		if !fired && tower.FireCooldown < 0 {
			tower.FireCooldown = 0
		}

		next.Towers.Set(towerID, tower)
		return true
	})
}

// applySlowAura 对射程内所有敌人刷新减速
func (s *TargetingSystem) applySlowAura(snapshot, next *World, buf *TickBuffer, tower *components.TowerComponent, slow components.SlowPayload, enemyIDs []ecs.EntityID, now float64) {
	rangeSq := tower.Range * tower.Range
	for _, id := range enemyIDs {
		enemy, _ := snapshot.Enemies.Get(id)
		if enemy.Position.DistanceSq(tower.Position) >= rangeSq {
			continue
		}
		buf.EditEnemy(next, id, func(e *components.EnemyComponent) {
			e.Slow = &components.SlowStatus{Factor: slow.Factor, ExpiresAt: now + config.SlowAuraDuration}
		})
	}
}

// findTarget 选择射程内距离最近的敌人
// 距离相同时取遍历顺序中的第一个
func (s *TargetingSystem) findTarget(snapshot *World, tower *components.TowerComponent, enemyIDs []ecs.EntityID) (ecs.EntityID, bool) {
	best := tower.Range * tower.Range
	target := ecs.InvalidEntity
	for _, id := range enemyIDs {
		enemy, _ := snapshot.Enemies.Get(id)
		if d := enemy.Position.DistanceSq(tower.Position); d < best {
			best = d
			target = id
		}
	}
	return target, target != ecs.InvalidEntity
}
