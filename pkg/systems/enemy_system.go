package systems

import (
	"log"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/entities"
	"github.com/gonewx/geotd/pkg/types"
	"github.com/gonewx/geotd/pkg/utils"
)

// EnemySystem 敌人状态更新
//
// 每个敌人依次：扣除直接伤害 → 扣除燃烧伤害并清理过期燃烧 → 清理过期减速
// → 死亡判定 → 施法中不移动 → 沿路径移动（到达航点时吸附，剩余距离丢弃）
// → Boss 技能触发 → 到达终点判定。
type EnemySystem struct {
	path       []types.Vector
	enemyStats *config.EnemyStatsConfig
	rng        utils.RandomSource
}

// NewEnemySystem 创建敌人系统
func NewEnemySystem(path []types.Vector, enemyStats *config.EnemyStatsConfig, rng utils.RandomSource) *EnemySystem {
	return &EnemySystem{
		path:       path,
		enemyStats: enemyStats,
		rng:        rng,
	}
}

// Update 更新 snapshot 中的所有敌人
// 击杀和到达终点的敌人从 next 中移除，并记录到 TickBuffer 的结算结果
func (s *EnemySystem) Update(snapshot, next *World, buf *TickBuffer, deltaTime, now float64) {
	for _, id := range snapshot.Enemies.Entities() {
		var (
			killed, reachedEnd bool
			summon             *components.EnemyComponent
		)

		buf.EditEnemy(next, id, func(e *components.EnemyComponent) {
			e.Health -= buf.Damage[id]
			e.Burns = activeBurns(e.Burns, now)
			for _, b := range e.Burns {
				e.Health -= b.DPS * deltaTime
			}
			if e.Slow != nil && e.Slow.ExpiresAt < now {
				e.Slow = nil
			}

			if e.Health <= 0 {
				e.Health = 0
				killed = true
				return
			}

			if e.Boss != nil && e.Boss.AbilityTimer > 0 {
				e.Boss.AbilityTimer -= deltaTime
				return
			}

			if e.PathIndex >= len(s.path) {
				reachedEnd = true
				return
			}

			before := *e
			s.move(e, deltaTime)
			if s.abilityTriggered(e) {
				// 召唤位置和路径进度取移动前的状态
				origin := before
				origin.DistanceTraveled = e.DistanceTraveled
				summon = &origin
			}

			if e.PathIndex >= len(s.path) {
				reachedEnd = true
			}
		})

		enemy, _ := next.Enemies.Get(id)
		if summon != nil {
			s.summonCritters(next, buf, summon, enemy.Boss.Ability)
		}

		switch {
		case killed:
			buf.report.Killed = append(buf.report.Killed, EnemyOutcome{ID: id, Enemy: enemy})
			next.Enemies.Remove(id)
		case reachedEnd:
			buf.report.ReachedEnd = append(buf.report.ReachedEnd, EnemyOutcome{ID: id, Enemy: enemy})
			next.Enemies.Remove(id)
		}
	}
}

// move 朝下一个航点前进，到达或越过时吸附到航点
func (s *EnemySystem) move(e *components.EnemyComponent, deltaTime float64) {
	speed := e.Speed
	if e.Slow != nil {
		speed *= 1 - e.Slow.Factor
	}
	step := speed * deltaTime

	waypoint := s.path[e.PathIndex]
	remaining := e.Position.Distance(waypoint)
	if step >= remaining {
		e.Position = waypoint
		e.PathIndex++
		e.DistanceTraveled += remaining
		return
	}
	e.Position = e.Position.MoveToward(waypoint, step)
	e.DistanceTraveled += step
}

// abilityTriggered 检查并激活 Boss 召唤技能
func (s *EnemySystem) abilityTriggered(e *components.EnemyComponent) bool {
	if e.Boss == nil {
		return false
	}
	ability := e.Boss.Ability
	if ability.Type != types.AbilitySpawnCritters || e.Boss.NextAbilityTrigger <= 0 {
		return false
	}
	if e.DistanceTraveled < e.Boss.NextAbilityTrigger {
		return false
	}
	e.Boss.AbilityTimer = ability.Duration
	e.Boss.NextAbilityTrigger += ability.TriggerDistance
	return true
}

// summonCritters 在召唤者附近生成小怪
func (s *EnemySystem) summonCritters(next *World, buf *TickBuffer, origin *components.EnemyComponent, ability components.BossAbility) {
	spawnType := ability.SpawnType
	if spawnType == "" {
		spawnType = types.EnemyCritter
	}
	stats, ok := s.enemyStats.Get(spawnType)
	if !ok {
		log.Printf("[EnemySystem] WARNING: no stats for summoned type %s", spawnType)
		return
	}

	half := config.CritterSpawnSpread / 2
	for i := 0; i < ability.SpawnCount; i++ {
		offset := types.Vector{
			X: s.rng.Float64()*config.CritterSpawnSpread - half,
			Y: s.rng.Float64()*config.CritterSpawnSpread - half,
		}
		id, err := entities.NewCritterEntity(next.Entities, next.Enemies, stats, origin.Position.Add(offset), origin.PathIndex, origin.DistanceTraveled)
		if err != nil {
			log.Printf("[EnemySystem] ERROR: failed to summon %s: %v", spawnType, err)
			continue
		}
		buf.Own(id)
		buf.report.Summoned = append(buf.report.Summoned, id)
	}
	log.Printf("[EnemySystem] Boss summoned %d %s", ability.SpawnCount, spawnType)
}

// activeBurns 过滤掉已过期的燃烧层
func activeBurns(burns []components.BurnStatus, now float64) []components.BurnStatus {
	if len(burns) == 0 {
		return burns
	}
	out := burns[:0]
	for _, b := range burns {
		if b.ExpiresAt > now {
			out = append(out, b)
		}
	}
	return out
}
