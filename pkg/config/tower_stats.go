package config

import (
	"fmt"

	"github.com/gonewx/geotd/pkg/embedded"
	"github.com/gonewx/geotd/pkg/types"
	"gopkg.in/yaml.v3"
)

// BurnStats 火焰塔燃烧参数
type BurnStats struct {
	DPS      float64 `yaml:"dps"`      // 每秒燃烧伤害
	Duration float64 `yaml:"duration"` // 持续时间（秒）
}

// ChainStats 电塔闪电链参数
type ChainStats struct {
	InitialCount int `yaml:"initialCount"` // 一次射击最多命中的目标数（含首个目标）
}

// TowerStats 单种防御塔的属性块
// 升级解析器在它的副本上叠加修正，原始表保持只读
type TowerStats struct {
	Type           types.TowerType  `yaml:"type"`
	NameKey        string           `yaml:"nameKey"`
	DescriptionKey string           `yaml:"descriptionKey"`
	DamageType     types.DamageType `yaml:"damageType"`
	Range          float64          `yaml:"range"`    // 射程（像素）
	Damage         float64          `yaml:"damage"`   // 单发伤害
	FireRate       float64          `yaml:"fireRate"` // 每秒射击次数，0 表示不发射子弹（冰冻塔）
	Cost           float64          `yaml:"cost"`     // 基础价格

	// 类型专属属性，仅对应类型的防御塔非空
	Burn       *BurnStats  `yaml:"burn,omitempty"`       // FIRE
	SlowFactor *float64    `yaml:"slowFactor,omitempty"` // COLD
	Chain      *ChainStats `yaml:"chain,omitempty"`      // ELECTRIC
}

// Clone 深拷贝属性块（包括可选的指针字段）
func (s TowerStats) Clone() TowerStats {
	c := s
	if s.Burn != nil {
		burn := *s.Burn
		c.Burn = &burn
	}
	if s.SlowFactor != nil {
		slow := *s.SlowFactor
		c.SlowFactor = &slow
	}
	if s.Chain != nil {
		chain := *s.Chain
		c.Chain = &chain
	}
	return c
}

// TowerStatsConfig 防御塔属性配置文件结构
type TowerStatsConfig struct {
	Towers map[types.TowerType]TowerStats `yaml:"towers"` // 防御塔类型到属性的映射
}

// Clone 深拷贝整张属性表
func (c *TowerStatsConfig) Clone() *TowerStatsConfig {
	out := &TowerStatsConfig{Towers: make(map[types.TowerType]TowerStats, len(c.Towers))}
	for t, stats := range c.Towers {
		out.Towers[t] = stats.Clone()
	}
	return out
}

// Get 获取指定类型的属性
func (c *TowerStatsConfig) Get(towerType types.TowerType) (TowerStats, bool) {
	stats, ok := c.Towers[towerType]
	return stats, ok
}

// LoadTowerStats 从 YAML 文件加载防御塔属性表
// 参数：
//
//	filepath - 配置文件路径（必须以 data/ 开头）
//
// 返回：
//
//	*TowerStatsConfig - 解析后的配置对象
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadTowerStats(filepath string) (*TowerStatsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tower stats file %s: %w", filepath, err)
	}

	var config TowerStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tower stats YAML from %s: %w", filepath, err)
	}

	applyTowerDefaults(&config)

	if err := validateTowerStats(&config); err != nil {
		return nil, fmt.Errorf("invalid tower stats in %s: %w", filepath, err)
	}

	return &config, nil
}

// applyTowerDefaults 用映射键补全省略的 type 字段
func applyTowerDefaults(config *TowerStatsConfig) {
	for towerType, stats := range config.Towers {
		if stats.Type == "" {
			stats.Type = towerType
			config.Towers[towerType] = stats
		}
	}
}

// validateTowerStats 验证防御塔属性表的完整性和合法性
func validateTowerStats(config *TowerStatsConfig) error {
	for _, towerType := range types.AllTowerTypes() {
		if _, ok := config.Towers[towerType]; !ok {
			return fmt.Errorf("tower %s is missing", towerType)
		}
	}

	for towerType, stats := range config.Towers {
		if !towerType.IsValid() {
			return fmt.Errorf("unknown tower type %q", towerType)
		}
		if stats.Type != towerType {
			return fmt.Errorf("tower %s: type field %q does not match key", towerType, stats.Type)
		}
		if !stats.DamageType.IsValid() {
			return fmt.Errorf("tower %s: unknown damage type %q", towerType, stats.DamageType)
		}
		if stats.Range <= 0 {
			return fmt.Errorf("tower %s: range must be positive, got %v", towerType, stats.Range)
		}
		if stats.Damage < 0 {
			return fmt.Errorf("tower %s: damage cannot be negative, got %v", towerType, stats.Damage)
		}
		if stats.FireRate < 0 {
			return fmt.Errorf("tower %s: fireRate cannot be negative, got %v", towerType, stats.FireRate)
		}
		if stats.Cost <= 0 {
			return fmt.Errorf("tower %s: cost must be positive, got %v", towerType, stats.Cost)
		}
		if stats.Burn != nil && (stats.Burn.DPS < 0 || stats.Burn.Duration < 0) {
			return fmt.Errorf("tower %s: burn values cannot be negative", towerType)
		}
		if stats.SlowFactor != nil && (*stats.SlowFactor < 0 || *stats.SlowFactor >= 1) {
			return fmt.Errorf("tower %s: slowFactor must be in [0, 1), got %v", towerType, *stats.SlowFactor)
		}
		if stats.Chain != nil && stats.Chain.InitialCount < 1 {
			return fmt.Errorf("tower %s: chain.initialCount must be at least 1, got %d", towerType, stats.Chain.InitialCount)
		}
	}

	return nil
}
