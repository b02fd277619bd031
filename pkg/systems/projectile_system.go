package systems

import (
	"log"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/entities"
	"github.com/gonewx/geotd/pkg/utils"
)

// ProjectileSystem 子弹飞行与命中结算
//
// 命中时：暴击判定 → 抗性/护甲 → 累计伤害 → 命中特效 → 燃烧 → 闪电链弹射。
// 伤害只写入 TickBuffer，由 EnemySystem 统一扣除。
type ProjectileSystem struct {
	critChance float64
	critDamage float64
	rng        utils.RandomSource
}

// NewProjectileSystem 创建子弹系统
func NewProjectileSystem(critChance, critDamage float64, rng utils.RandomSource) *ProjectileSystem {
	return &ProjectileSystem{
		critChance: critChance,
		critDamage: critDamage,
		rng:        rng,
	}
}

// Update 结算 snapshot 中的子弹和本 tick 新发射的子弹
// 闪电链产生的子弹从下一个 tick 开始飞行
func (s *ProjectileSystem) Update(snapshot, next *World, buf *TickBuffer, deltaTime, now float64) {
	ids := append(snapshot.Projectiles.Entities(), buf.Fired...)
	enemyIDs := snapshot.Enemies.Entities()

	for _, id := range ids {
		p, ok := next.Projectiles.Get(id)
		if !ok {
			continue
		}
		target, ok := next.Enemies.Get(p.TargetID)
		if !ok {
			// 目标已不存在，子弹直接消失
			next.Projectiles.Remove(id)
			continue
		}

		dist := p.Position.Distance(target.Position)
		if dist >= config.BaseHitRadius+p.Speed*deltaTime {
			p.Position = p.Position.MoveToward(target.Position, p.Speed*deltaTime)
			next.Projectiles.Set(id, p)
			continue
		}

		s.resolveHit(snapshot, next, buf, &p, &target, enemyIDs, now)
		next.Projectiles.Remove(id)
	}
}

// resolveHit 处理一次命中
func (s *ProjectileSystem) resolveHit(snapshot, next *World, buf *TickBuffer, p *components.ProjectileComponent, target *components.EnemyComponent, enemyIDs []ecs.EntityID, now float64) {
	crit := s.rng.Float64() < s.critChance
	buf.Damage[p.TargetID] += CalculateDamage(p.Damage, p.DamageType, target, crit, s.critDamage)
	entities.NewHitEffectEntity(next.Entities, next.Effects, target.Position, crit)

	if tower, ok := snapshot.Towers.Get(p.SourceTowerID); ok {
		if burn, ok := tower.Burn(); ok {
			sourceID := p.SourceTowerID
			buf.EditEnemy(next, p.TargetID, func(e *components.EnemyComponent) {
				e.Burns = replaceBurn(e.Burns, components.BurnStatus{
					SourceTowerID: sourceID,
					DPS:           burn.DPS,
					ExpiresAt:     now + burn.Duration,
				})
			})
		}
	}

	if p.Chain == nil || p.Chain.Remaining <= 0 {
		return
	}
	nextTarget, ok := s.findChainTarget(next, p, target, enemyIDs)
	if !ok {
		return
	}
	entities.NewChainEffectEntity(next.Entities, next.Effects, target.Position)
	if _, err := entities.NewChainProjectileEntity(next.Entities, next.Projectiles, p, target.Position, nextTarget); err != nil {
		log.Printf("[ProjectileSystem] ERROR: chain bounce failed: %v", err)
	}
}

// findChainTarget 选择弹射目标：命中点附近 ChainRadius 内最近、且未被本条链命中过的敌人
func (s *ProjectileSystem) findChainTarget(next *World, p *components.ProjectileComponent, hit *components.EnemyComponent, enemyIDs []ecs.EntityID) (ecs.EntityID, bool) {
	best := config.ChainRadius * config.ChainRadius
	found := ecs.InvalidEntity
	for _, id := range enemyIDs {
		if p.Chain.HasHit(id) {
			continue
		}
		candidate, ok := next.Enemies.Get(id)
		if !ok {
			continue
		}
		if d := candidate.Position.DistanceSq(hit.Position); d < best {
			best = d
			found = id
		}
	}
	return found, found != ecs.InvalidEntity
}

// replaceBurn 替换同一来源的燃烧层，其余保持不变
func replaceBurn(burns []components.BurnStatus, fresh components.BurnStatus) []components.BurnStatus {
	out := burns[:0]
	for _, b := range burns {
		if b.SourceTowerID != fresh.SourceTowerID {
			out = append(out, b)
		}
	}
	return append(out, fresh)
}
