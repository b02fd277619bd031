package config

import (
	"fmt"

	"github.com/gonewx/geotd/pkg/embedded"
	"github.com/gonewx/geotd/pkg/types"
	"gopkg.in/yaml.v3"
)

// GridPoint 网格坐标
type GridPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// World 转换为格子中心的世界坐标
func (p GridPoint) World() types.Vector {
	return types.Vector{
		X: float64(p.X)*TileSize + TileSize/2,
		Y: float64(p.Y)*TileSize + TileSize/2,
	}
}

// SpawnGroup 波次中的一个生成组：按固定间隔生成 Count 个同类敌人
type SpawnGroup struct {
	Type     types.EnemyType `yaml:"type"`
	Count    int             `yaml:"count"`
	Interval float64         `yaml:"interval"` // 相邻两个敌人的生成间隔（秒）
}

// Wave 一个波次，由若干生成组依次组成
type Wave struct {
	Groups []SpawnGroup `yaml:"groups"`
}

// IsBossWave 波次中是否包含 Boss
func (w Wave) IsBossWave() bool {
	for _, g := range w.Groups {
		if g.Type.IsBoss() {
			return true
		}
	}
	return false
}

// WaveProfile 波次生成参数
// 关卡不直接列出波次时，由 GenerateWaves 根据难度偏移生成
type WaveProfile struct {
	DifficultyOffset int `yaml:"difficultyOffset"`
	Count            int `yaml:"count"`
}

// StageConfig 关卡配置
// 路径和可建造格子都是预先计算好的网格坐标
type StageConfig struct {
	ID         string       `yaml:"id"`
	NameKey    string       `yaml:"nameKey"`
	GridWidth  int          `yaml:"gridWidth"`
	GridHeight int          `yaml:"gridHeight"`
	Path       []GridPoint  `yaml:"path"`
	Slots      []GridPoint  `yaml:"slots"`
	Waves      []Wave       `yaml:"waves,omitempty"`
	Profile    *WaveProfile `yaml:"waveProfile,omitempty"`
}

// PathWorld 返回路径航点的世界坐标
func (s *StageConfig) PathWorld() []types.Vector {
	out := make([]types.Vector, len(s.Path))
	for i, p := range s.Path {
		out[i] = p.World()
	}
	return out
}

// SlotsWorld 返回可建造格子的世界坐标（索引即槽位编号）
func (s *StageConfig) SlotsWorld() []types.Vector {
	out := make([]types.Vector, len(s.Slots))
	for i, p := range s.Slots {
		out[i] = p.World()
	}
	return out
}

// LoadStageConfig 从 YAML 文件加载关卡配置
// 如果配置了 waveProfile，则在加载时生成波次
func LoadStageConfig(filepath string) (*StageConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage file %s: %w", filepath, err)
	}

	var config StageConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse stage YAML from %s: %w", filepath, err)
	}

	applyStageDefaults(&config)

	if err := validateStageConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid stage config in %s: %w", filepath, err)
	}

	return &config, nil
}

// applyStageDefaults 补全默认值，并根据 waveProfile 生成波次
func applyStageDefaults(config *StageConfig) {
	if config.NameKey == "" && config.ID != "" {
		config.NameKey = config.ID + "_name"
	}
	if config.GridWidth == 0 {
		config.GridWidth = DefaultGridWidth
	}
	if config.GridHeight == 0 {
		config.GridHeight = DefaultGridHeight
	}
	if len(config.Waves) == 0 && config.Profile != nil {
		count := config.Profile.Count
		if count == 0 {
			count = DefaultWaveCount
		}
		config.Waves = GenerateWaves(count, config.Profile.DifficultyOffset)
	}
}

// validateStageConfig 验证关卡配置
func validateStageConfig(config *StageConfig) error {
	if config.ID == "" {
		return fmt.Errorf("stage id is required")
	}
	if len(config.Path) < 2 {
		return fmt.Errorf("path needs at least 2 waypoints, got %d", len(config.Path))
	}
	for i := 1; i < len(config.Path); i++ {
		a, b := config.Path[i-1], config.Path[i]
		if a.X != b.X && a.Y != b.Y {
			return fmt.Errorf("path segment %d is not axis-aligned: (%d,%d) -> (%d,%d)", i, a.X, a.Y, b.X, b.Y)
		}
	}

	seen := make(map[GridPoint]bool, len(config.Slots))
	for i, slot := range config.Slots {
		if slot.X < 0 || slot.X >= config.GridWidth || slot.Y < 0 || slot.Y >= config.GridHeight {
			return fmt.Errorf("slot %d (%d,%d) is outside the %dx%d grid", i, slot.X, slot.Y, config.GridWidth, config.GridHeight)
		}
		if seen[slot] {
			return fmt.Errorf("slot %d (%d,%d) is duplicated", i, slot.X, slot.Y)
		}
		seen[slot] = true
	}

	if len(config.Waves) == 0 {
		return fmt.Errorf("stage needs at least one wave")
	}
	for i, wave := range config.Waves {
		if len(wave.Groups) == 0 {
			return fmt.Errorf("wave %d has no spawn groups", i+1)
		}
		for j, g := range wave.Groups {
			if !g.Type.IsValid() {
				return fmt.Errorf("wave %d group %d: unknown enemy type %q", i+1, j, g.Type)
			}
			if g.Count <= 0 {
				return fmt.Errorf("wave %d group %d: count must be positive, got %d", i+1, j, g.Count)
			}
			if g.Interval < 0 {
				return fmt.Errorf("wave %d group %d: interval cannot be negative", i+1, j)
			}
		}
	}

	return nil
}
