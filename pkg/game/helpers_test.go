package game

import (
	"math"
	"os"
	"testing"

	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/embedded"
	"github.com/gonewx/geotd/pkg/types"
	"github.com/gonewx/geotd/pkg/utils"
)

func floatPtr(v float64) *float64 { return &v }

// testTowers 测试用防御塔属性表（圆形塔一发击杀三角形敌人）
func testTowers() *config.TowerStatsConfig {
	return &config.TowerStatsConfig{Towers: map[types.TowerType]config.TowerStats{
		types.TowerCircle:   {Type: types.TowerCircle, DamageType: types.DamagePhysical, Range: 150, Damage: 100, FireRate: 2, Cost: 50},
		types.TowerSquare:   {Type: types.TowerSquare, DamageType: types.DamagePhysical, Range: 100, Damage: 35, FireRate: 0.8, Cost: 120},
		types.TowerTriangle: {Type: types.TowerTriangle, DamageType: types.DamagePhysical, Range: 200, Damage: 8, FireRate: 3, Cost: 150},
		types.TowerFire:     {Type: types.TowerFire, DamageType: types.DamageFire, Range: 120, Damage: 5, FireRate: 1, Cost: 200, Burn: &config.BurnStats{DPS: 10, Duration: 3}},
		types.TowerCold:     {Type: types.TowerCold, DamageType: types.DamageCold, Range: 100, Cost: 180, SlowFactor: floatPtr(0.4)},
		types.TowerElectric: {Type: types.TowerElectric, DamageType: types.DamageElectric, Range: 130, Damage: 25, FireRate: 0.7, Cost: 250, Chain: &config.ChainStats{InitialCount: 3}},
	}}
}

// testTree 测试用升级树
func testTree() *config.UpgradeTreeConfig {
	return &config.UpgradeTreeConfig{Nodes: []config.UpgradeNode{
		{ID: config.RootNodeID, Type: types.NodeGlobal},
		{ID: "ECO", Cost: 1, Dependencies: []string{"ROOT"}, Type: types.NodeEconomy, GlobalStat: types.GlobalStartMoney, Value: 50, Operation: types.OpAdd},
		{ID: "S_UNLOCK", Cost: 2, Dependencies: []string{"ROOT"}, Type: types.NodeGlobal, UnlocksTower: types.TowerSquare},
		{ID: "C_DMG", Cost: 3, Dependencies: []string{"S_UNLOCK"}, Type: types.NodeTowerMod, Tower: types.TowerCircle, Stat: types.StatDamage, Value: 1.5, Operation: types.OpMultiply},
		{ID: "C_COST", Cost: 1, Dependencies: []string{"ROOT"}, Type: types.NodeGlobal, GlobalStat: types.GlobalTowerCostModifier, Value: 0.8, Operation: types.OpMultiply},
		{ID: "F_BURN", Cost: 1, Dependencies: []string{"ROOT"}, Type: types.NodeTowerMod, Tower: types.TowerFire, Stat: types.StatBurnDPS, Value: 5, Operation: types.OpMultiply},
		{ID: "CO_SLOW", Cost: 1, Dependencies: []string{"ROOT"}, Type: types.NodeTowerMod, Tower: types.TowerCold, Stat: types.StatSlowFactor, Value: 0.7, Operation: types.OpAdd},
		{ID: "CRIT", Cost: 1, Dependencies: []string{"ROOT"}, Type: types.NodeGlobal, GlobalStat: types.GlobalCritChance, Value: 1.5, Operation: types.OpAdd},
		{ID: "BOTH", Cost: 1, Dependencies: []string{"ECO", "S_UNLOCK"}, Type: types.NodeEconomy, GlobalStat: types.GlobalKillBonus, Value: 2, Operation: types.OpAdd},
		{ID: "PRICEY", Cost: 50, Dependencies: []string{"ROOT"}, Type: types.NodeEconomy, GlobalStat: types.GlobalSellRatioModifier, Value: 0.1, Operation: types.OpAdd},
	}}
}

// testStage 路径 (25,25) → (525,25)，两个格子在路径下方
func testStage(waves ...config.Wave) *config.StageConfig {
	return &config.StageConfig{
		ID:         "stage_test",
		GridWidth:  20,
		GridHeight: 15,
		Path:       []config.GridPoint{{X: 0, Y: 0}, {X: 10, Y: 0}},
		Slots:      []config.GridPoint{{X: 2, Y: 1}, {X: 3, Y: 1}},
		Waves:      waves,
	}
}

func singleTriangleWave() config.Wave {
	return config.Wave{Groups: []config.SpawnGroup{{Type: types.EnemyTriangle, Count: 1, Interval: 0}}}
}

// testData 测试用游戏数据
func testData(stages ...*config.StageConfig) *config.GameData {
	if len(stages) == 0 {
		stages = []*config.StageConfig{testStage(singleTriangleWave(), singleTriangleWave())}
	}
	return &config.GameData{
		Towers: testTowers(),
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
		}}},
		Upgrades: testTree(),
		Stages:   stages,
	}
}

// repoData 加载仓库 data/ 下的真实数据
func repoData(t *testing.T) *config.GameData {
	t.Helper()
	embedded.Init(os.DirFS("../.."))
	t.Cleanup(func() { embedded.Init(nil) })
	data, err := config.LoadGameData()
	if err != nil {
		t.Fatalf("failed to load game data: %v", err)
	}
	return data
}

// newTestSession 用默认设置（只有 ROOT）创建对局
func newTestSession(t *testing.T, data *config.GameData, mutate func(*ResolvedStats)) *Session {
	t.Helper()
	resolved := NewStatResolver(data.Towers, data.Upgrades).Resolve([]string{config.RootNodeID})
	if mutate != nil {
		mutate(&resolved)
	}
	s, err := NewSession(data, 0, resolved, utils.NewSequenceRandom(0.9))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

// runUntil 以固定步长推进对局直到条件满足
func runUntil(t *testing.T, s *Session, dt float64, maxFrames int, done func() bool) {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		if done() {
			return
		}
		s.Update(dt)
	}
	if !done() {
		t.Fatalf("condition not reached after %d frames (phase=%s wave=%d)", maxFrames, s.Phase(), s.WaveIndex())
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
