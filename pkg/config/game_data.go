package config

import (
	"fmt"
	"log"
	"path"
	"sort"

	"github.com/gonewx/geotd/pkg/embedded"
)

// 数据文件路径
const (
	TowerStatsPath  = "data/towers.yaml"
	EnemyStatsPath  = "data/enemies.yaml"
	BossConfigPath  = "data/bosses.yaml"
	UpgradeTreePath = "data/upgrades.yaml"
	StagesGlob      = "data/stages/*.yaml"
)

// GameData 对局所需的全部静态数据
// 加载后只读，多个对局可以共享同一份实例
type GameData struct {
	Towers   *TowerStatsConfig
	Enemies  *EnemyStatsConfig
	Bosses   *BossConfig
	Upgrades *UpgradeTreeConfig
	Stages   []*StageConfig
}

// Stage 按索引获取关卡配置
func (d *GameData) Stage(index int) (*StageConfig, error) {
	if index < 0 || index >= len(d.Stages) {
		return nil, fmt.Errorf("stage index %d out of range [0, %d)", index, len(d.Stages))
	}
	return d.Stages[index], nil
}

// LoadGameData 加载 data/ 下的全部配置并做交叉校验
// 调用前必须先调用 embedded.Init()
func LoadGameData() (*GameData, error) {
	towers, err := LoadTowerStats(TowerStatsPath)
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemyStats(EnemyStatsPath)
	if err != nil {
		return nil, err
	}
	bosses, err := LoadBossConfig(BossConfigPath)
	if err != nil {
		return nil, err
	}
	upgrades, err := LoadUpgradeTree(UpgradeTreePath)
	if err != nil {
		return nil, err
	}
	stages, err := LoadStages(StagesGlob)
	if err != nil {
		return nil, err
	}

	data := &GameData{
		Towers:   towers,
		Enemies:  enemies,
		Bosses:   bosses,
		Upgrades: upgrades,
		Stages:   stages,
	}
	if err := validateGameData(data); err != nil {
		return nil, fmt.Errorf("game data cross-check failed: %w", err)
	}

	log.Printf("[GameData] Loaded %d towers, %d enemies, %d bosses, %d upgrade nodes, %d stages",
		len(towers.Towers), len(enemies.Enemies), len(bosses.Bosses), len(upgrades.Nodes), len(stages))
	return data, nil
}

// LoadStages 加载匹配 pattern 的全部关卡，按文件名排序
func LoadStages(pattern string) ([]*StageConfig, error) {
	files, err := embedded.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages with %s: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no stage files match %s", pattern)
	}
	sort.Slice(files, func(i, j int) bool { return path.Base(files[i]) < path.Base(files[j]) })

	stages := make([]*StageConfig, 0, len(files))
	ids := make(map[string]string, len(files))
	for _, f := range files {
		stage, err := LoadStageConfig(f)
		if err != nil {
			return nil, err
		}
		if prev, dup := ids[stage.ID]; dup {
			return nil, fmt.Errorf("stage id %q is declared by both %s and %s", stage.ID, prev, f)
		}
		ids[stage.ID] = f
		stages = append(stages, stage)
	}
	return stages, nil
}

// validateGameData 检查不同文件之间的引用关系
func validateGameData(data *GameData) error {
	for _, node := range data.Upgrades.Nodes {
		if node.Tower != "" {
			if _, ok := data.Towers.Get(node.Tower); !ok {
				return fmt.Errorf("upgrade %s references unknown tower %s", node.ID, node.Tower)
			}
		}
	}

	for i, boss := range data.Bosses.Bosses {
		spawnType := boss.SpecialAbility.SpawnType
		if spawnType == "" {
			continue
		}
		if _, ok := data.Enemies.Get(spawnType); !ok {
			return fmt.Errorf("boss %d spawns unknown enemy type %s", i, spawnType)
		}
	}

	for _, stage := range data.Stages {
		for i, wave := range stage.Waves {
			for _, g := range wave.Groups {
				if _, ok := data.Enemies.Get(g.Type); !ok {
					return fmt.Errorf("stage %s wave %d uses enemy %s without stats", stage.ID, i+1, g.Type)
				}
			}
		}
	}
	return nil
}
