package systems

import (
	"log"
	"sort"

	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/entities"
	"github.com/gonewx/geotd/pkg/types"
)

// WaveSpawnSystem 波次生成系统
//
// 职责：
//   - 开波时把波次配置展开为按时间排序的生成队列
//   - 每个 tick 推进波次时钟，取出到时间的生成项
//   - 在 tick 提交前把生成项实例化为敌人（包括 Boss）
type WaveSpawnSystem struct {
	enemyStats *config.EnemyStatsConfig
	bosses     *config.BossConfig
	difficulty *DifficultyEngine
	spawnPoint types.Vector
}

// NewWaveSpawnSystem 创建波次生成系统
//
// 参数：
//
//	enemyStats - 敌人基础属性表
//	bosses - Boss 定义
//	difficulty - 难度引擎
//	spawnPoint - 路径起点（世界坐标）
func NewWaveSpawnSystem(enemyStats *config.EnemyStatsConfig, bosses *config.BossConfig, difficulty *DifficultyEngine, spawnPoint types.Vector) *WaveSpawnSystem {
	return &WaveSpawnSystem{
		enemyStats: enemyStats,
		bosses:     bosses,
		difficulty: difficulty,
		spawnPoint: spawnPoint,
	}
}

// ScheduleWave 展开一个波次的生成时间表
//
// 每组敌人在 groupStart, groupStart+interval, ... 依次生成；
// 下一组从上一组最后一个生成时间 + interval + 0.5 开始。
// counter 为开波前（递减前）的难度计数器，大于 0 时非 Boss 组数量 ×1.4 向下取整。
func (s *WaveSpawnSystem) ScheduleWave(wave config.Wave, counter int) []components.SpawnEntry {
	var queue []components.SpawnEntry
	groupStart := 0.0
	for _, group := range wave.Groups {
		count := s.difficulty.ScaleGroupCount(group.Count, group.Type.IsBoss(), counter)
		t := groupStart
		for i := 0; i < count; i++ {
			queue = append(queue, components.SpawnEntry{EnemyType: group.Type, Time: t})
			t += group.Interval
		}
		groupStart = t + config.SpawnGroupGap
	}

	sort.SliceStable(queue, func(i, j int) bool { return queue[i].Time < queue[j].Time })
	return queue
}

// StartWave 重置波次时钟并装入新的生成队列
func (s *WaveSpawnSystem) StartWave(w *World, wave config.Wave, waveIndex, counter int) {
	w.SpawnQueue = s.ScheduleWave(wave, counter)
	w.WaveTime = 0
	log.Printf("[WaveSpawnSystem] Wave %d scheduled: %d spawns (difficulty counter %d)", waveIndex+1, len(w.SpawnQueue), counter)
}

// Release 推进波次时钟，取出所有时间 <= 新时钟的生成项
func (s *WaveSpawnSystem) Release(w *World, deltaTime float64) []components.SpawnEntry {
	w.WaveTime += deltaTime

	n := 0
	for n < len(w.SpawnQueue) && w.SpawnQueue[n].Time <= w.WaveTime {
		n++
	}
	if n == 0 {
		return nil
	}
	released := append([]components.SpawnEntry(nil), w.SpawnQueue[:n]...)
	w.SpawnQueue = append([]components.SpawnEntry(nil), w.SpawnQueue[n:]...)
	return released
}

// Materialize 把生成项实例化为敌人实体
// Boss 按 floor(waveIndex/5) 选择定义并叠加 Boss 加成；counter 大于 0 时血量 ×1.2
func (s *WaveSpawnSystem) Materialize(w *World, released []components.SpawnEntry, waveIndex, counter int, mods config.BossModifiers) []ecs.EntityID {
	healthMultiplier := s.difficulty.HealthMultiplier(counter)
	ids := make([]ecs.EntityID, 0, len(released))

	for _, entry := range released {
		var (
			id  ecs.EntityID
			err error
		)
		if entry.EnemyType.IsBoss() {
			def, bossIndex := s.bosses.ForWave(waveIndex)
			speed := 0.0
			if stats, ok := s.enemyStats.Get(types.EnemyBoss); ok {
				speed = stats.Speed
			}
			id, err = entities.NewBossEntity(w.Entities, w.Enemies, def, bossIndex, speed, s.spawnPoint, healthMultiplier, mods)
			if err == nil {
				log.Printf("[WaveSpawnSystem] Boss %s spawned (bossIndex=%d)", def.NameKey, bossIndex)
			}
		} else {
			stats, ok := s.enemyStats.Get(entry.EnemyType)
			if !ok {
				log.Printf("[WaveSpawnSystem] WARNING: no stats for enemy type %s, skipped", entry.EnemyType)
				continue
			}
			id, err = entities.NewEnemyEntity(w.Entities, w.Enemies, stats, s.spawnPoint, healthMultiplier)
		}
		if err != nil {
			log.Printf("[WaveSpawnSystem] ERROR: failed to spawn %s: %v", entry.EnemyType, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
