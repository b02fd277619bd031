package config

import (
	"math"
	"testing"

	"github.com/gonewx/geotd/pkg/types"
)

func TestLoadGameData(t *testing.T) {
	useRepoData(t)

	data, err := LoadGameData()
	if err != nil {
		t.Fatalf("LoadGameData failed: %v", err)
	}

	if len(data.Towers.Towers) != 6 {
		t.Errorf("Expected 6 towers, got %d", len(data.Towers.Towers))
	}
	if len(data.Enemies.Enemies) != 5 {
		t.Errorf("Expected 5 enemy types, got %d", len(data.Enemies.Enemies))
	}
	if len(data.Bosses.Bosses) != 4 {
		t.Errorf("Expected 4 bosses, got %d", len(data.Bosses.Bosses))
	}
	if len(data.Upgrades.Nodes) != 40 {
		t.Errorf("Expected 40 upgrade nodes, got %d", len(data.Upgrades.Nodes))
	}
	if len(data.Stages) != 2 {
		t.Fatalf("Expected 2 stages, got %d", len(data.Stages))
	}

	cold, _ := data.Towers.Get(types.TowerCold)
	if cold.SlowFactor == nil || *cold.SlowFactor != 0.4 {
		t.Errorf("COLD slowFactor: expected 0.4, got %v", cold.SlowFactor)
	}
	if cold.FireRate != 0 {
		t.Errorf("COLD fireRate: expected 0, got %v", cold.FireRate)
	}
	fire, _ := data.Towers.Get(types.TowerFire)
	if fire.Burn == nil || fire.Burn.DPS != 10 || fire.Burn.Duration != 3 {
		t.Errorf("FIRE burn: expected {10 3}, got %+v", fire.Burn)
	}
	elec, _ := data.Towers.Get(types.TowerElectric)
	if elec.Chain == nil || elec.Chain.InitialCount != 2 {
		t.Errorf("ELECTRIC chain: expected initialCount 2, got %+v", elec.Chain)
	}
	circle, _ := data.Towers.Get(types.TowerCircle)
	if circle.Burn != nil || circle.SlowFactor != nil || circle.Chain != nil {
		t.Errorf("CIRCLE should have no payload, got %+v", circle)
	}

	node, ok := data.Upgrades.Node("C_DMG_1")
	if !ok {
		t.Fatal("C_DMG_1 not found")
	}
	if node.NameKey != "upgrade_c_dmg_1_name" {
		t.Errorf("C_DMG_1 nameKey: expected upgrade_c_dmg_1_name, got %s", node.NameKey)
	}

	stage, err := data.Stage(0)
	if err != nil {
		t.Fatalf("Stage(0) failed: %v", err)
	}
	if stage.ID != "stage_1" {
		t.Errorf("Expected stage_1 first, got %s", stage.ID)
	}
	if len(stage.Waves) != 20 {
		t.Errorf("Expected 20 waves, got %d", len(stage.Waves))
	}
	if len(stage.Slots) != 88 {
		t.Errorf("Expected 88 slots in stage_1, got %d", len(stage.Slots))
	}
	path := stage.PathWorld()
	if path[0] != (types.Vector{X: -25, Y: 375}) {
		t.Errorf("First waypoint: expected (-25, 375), got %v", path[0])
	}

	if _, err := data.Stage(2); err == nil {
		t.Error("Stage(2) should fail")
	}
}

func TestGenerateWaves(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		wave       int // 1 开始
		wantGroups []SpawnGroup
	}{
		{
			name:   "第一波只有三角形",
			offset: 0,
			wave:   1,
			wantGroups: []SpawnGroup{
				{Type: types.EnemyTriangle, Count: 7, Interval: 0.78},
			},
		},
		{
			name:   "第五波是Boss",
			offset: 0,
			wave:   5,
			wantGroups: []SpawnGroup{
				{Type: types.EnemyBoss, Count: 1, Interval: 0},
			},
		},
		{
			name:   "难度大于5加入方形",
			offset: 0,
			wave:   6,
			wantGroups: []SpawnGroup{
				{Type: types.EnemyTriangle, Count: 18, Interval: 0.68},
				{Type: types.EnemySquare, Count: 10, Interval: 1.2},
			},
		},
		{
			name:   "偏移5时第6波加入五边形",
			offset: 5,
			wave:   6,
			wantGroups: []SpawnGroup{
				{Type: types.EnemyTriangle, Count: 18, Interval: 0.68},
				{Type: types.EnemySquare, Count: 10, Interval: 1.2},
				{Type: types.EnemyPentagon, Count: 7, Interval: 0.96},
			},
		},
		{
			name:   "数量上限",
			offset: 5,
			wave:   19,
			wantGroups: []SpawnGroup{
				{Type: types.EnemyTriangle, Count: 35, Interval: 0.42},
				{Type: types.EnemySquare, Count: 25, Interval: 0.7},
				{Type: types.EnemyPentagon, Count: 19, Interval: 0.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			waves := GenerateWaves(20, tt.offset)
			if len(waves) != 20 {
				t.Fatalf("Expected 20 waves, got %d", len(waves))
			}
			got := waves[tt.wave-1].Groups
			if len(got) != len(tt.wantGroups) {
				t.Fatalf("Expected %d groups, got %d: %+v", len(tt.wantGroups), len(got), got)
			}
			for i, want := range tt.wantGroups {
				if got[i].Type != want.Type || got[i].Count != want.Count {
					t.Errorf("group %d: expected %s x%d, got %s x%d", i, want.Type, want.Count, got[i].Type, got[i].Count)
				}
				if math.Abs(got[i].Interval-want.Interval) > 1e-9 {
					t.Errorf("group %d interval: expected %v, got %v", i, want.Interval, got[i].Interval)
				}
			}
		})
	}

	for i, w := range GenerateWaves(20, 0) {
		if w.IsBossWave() != ((i+1)%5 == 0) {
			t.Errorf("wave %d: IsBossWave = %v", i+1, w.IsBossWave())
		}
	}
}

func TestBossConfigForWave(t *testing.T) {
	cfg := &BossConfig{Bosses: []BossDefinition{{NameKey: "a"}, {NameKey: "b"}}}

	tests := []struct {
		waveIndex int
		wantName  string
		wantIndex int
	}{
		{4, "a", 0},
		{9, "b", 1},
		{14, "a", 2},
		{19, "b", 3},
	}
	for _, tt := range tests {
		def, idx := cfg.ForWave(tt.waveIndex)
		if def.NameKey != tt.wantName || idx != tt.wantIndex {
			t.Errorf("ForWave(%d): expected (%s, %d), got (%s, %d)", tt.waveIndex, tt.wantName, tt.wantIndex, def.NameKey, idx)
		}
	}
}
