package systems

import (
	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/types"
	"github.com/gonewx/geotd/pkg/utils"
)

// SimulationSettings 一局之内不变的全局修正（由升级解析得到）
type SimulationSettings struct {
	ProjectileSpeedModifier float64
	CritChance              float64
	CritDamage              float64
	BossModifiers           config.BossModifiers
}

// TickInput 每个 tick 由 Session 提供的会话状态
type TickInput struct {
	DeltaTime       float64 // 已按游戏速度缩放
	WaveIndex       int
	PostBossCounter int
}

// Simulation 按固定顺序执行一个 tick 的全部系统
//
// 顺序：波次时钟 → 索敌射击 → 子弹结算 → 敌人更新 → 特效衰减 → 实例化生成项。
// Step 从不修改传入的 World。
type Simulation struct {
	Path []types.Vector

	waves      *WaveSpawnSystem
	targeting  *TargetingSystem
	projectile *ProjectileSystem
	enemies    *EnemySystem
	lifetime   *LifetimeSystem
	difficulty *DifficultyEngine
	settings   SimulationSettings
}

// NewSimulation 创建对局模拟
func NewSimulation(data *config.GameData, path []types.Vector, settings SimulationSettings, rng utils.RandomSource) *Simulation {
	difficulty := NewDifficultyEngine()
	spawnPoint := types.Vector{}
	if len(path) > 0 {
		spawnPoint = path[0]
	}
	return &Simulation{
		Path:       path,
		waves:      NewWaveSpawnSystem(data.Enemies, data.Bosses, difficulty, spawnPoint),
		targeting:  NewTargetingSystem(settings.ProjectileSpeedModifier),
		projectile: NewProjectileSystem(settings.CritChance, settings.CritDamage, rng),
		enemies:    NewEnemySystem(path, data.Enemies, rng),
		lifetime:   NewLifetimeSystem(),
		difficulty: difficulty,
		settings:   settings,
	}
}

// Waves 返回波次生成系统（Session 开波时使用）
func (s *Simulation) Waves() *WaveSpawnSystem {
	return s.waves
}

// Difficulty 返回难度引擎
func (s *Simulation) Difficulty() *DifficultyEngine {
	return s.difficulty
}

// Step 推进一个 tick，返回新的 World 和结算结果
// DeltaTime 为 0 时什么都不做，直接返回原 World
func (s *Simulation) Step(world *World, in TickInput) (*World, TickReport) {
	if in.DeltaTime <= 0 {
		return world, TickReport{}
	}

	now := world.GameTime
	next := world.Clone()
	next.GameTime = now + in.DeltaTime
	buf := NewTickBuffer()

	buf.Released = s.waves.Release(next, in.DeltaTime)
	s.targeting.Update(world, next, buf, in.DeltaTime, now)
	s.projectile.Update(world, next, buf, in.DeltaTime, now)
	s.enemies.Update(world, next, buf, in.DeltaTime, now)
	s.lifetime.Update(world, next, in.DeltaTime)

	if len(buf.Released) > 0 {
		buf.report.Spawned = s.waves.Materialize(next, buf.Released, in.WaveIndex, in.PostBossCounter, s.settings.BossModifiers)
	}

	return next, buf.Report()
}
