package config

import (
	"fmt"

	"github.com/gonewx/geotd/pkg/embedded"
	"github.com/gonewx/geotd/pkg/types"
	"gopkg.in/yaml.v3"
)

// SpecialAbility Boss 特殊技能描述
type SpecialAbility struct {
	Type            types.AbilityType `yaml:"type"`
	TriggerDistance float64           `yaml:"triggerDistance"` // 每移动这么远触发一次
	SpawnCount      int               `yaml:"spawnCount"`      // 每次召唤的小怪数量
	SpawnType       types.EnemyType   `yaml:"spawnType"`       // 召唤的敌人类型
	Duration        float64           `yaml:"duration"`        // 施法期间 Boss 停止移动的时间
}

// BossDefinition 单个 Boss 的定义
// 第 N 个 Boss 波使用 definitions[floor(waveIndex/5) % len(definitions)]
type BossDefinition struct {
	NameKey        string                       `yaml:"nameKey"`
	BaseHealth     float64                      `yaml:"baseHealth"`
	BaseReward     float64                      `yaml:"baseReward"`
	Armor          float64                      `yaml:"armor"`       // 0-1，只减免物理伤害
	Resistances    map[types.DamageType]float64 `yaml:"resistances"` // 可为负数（表示易伤）
	SpecialAbility SpecialAbility               `yaml:"specialAbility"`
}

// BossConfig Boss 配置文件结构
type BossConfig struct {
	Bosses []BossDefinition `yaml:"bosses"`
}

// ForWave 根据波次索引选择 Boss 定义
// 返回 Boss 定义及其序号（floor(waveIndex/5)）
func (c *BossConfig) ForWave(waveIndex int) (BossDefinition, int) {
	bossIndex := waveIndex / BossWaveInterval
	return c.Bosses[bossIndex%len(c.Bosses)], bossIndex
}

// LoadBossConfig 从 YAML 文件加载 Boss 定义
func LoadBossConfig(filepath string) (*BossConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read boss config file %s: %w", filepath, err)
	}

	var config BossConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse boss config YAML from %s: %w", filepath, err)
	}

	if err := validateBossConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid boss config in %s: %w", filepath, err)
	}

	return &config, nil
}

// validateBossConfig 验证 Boss 定义
func validateBossConfig(config *BossConfig) error {
	if len(config.Bosses) == 0 {
		return fmt.Errorf("at least one boss definition is required")
	}

	for i, boss := range config.Bosses {
		if boss.BaseHealth <= 0 {
			return fmt.Errorf("boss %d: baseHealth must be positive, got %v", i, boss.BaseHealth)
		}
		if boss.Armor < 0 || boss.Armor > 1 {
			return fmt.Errorf("boss %d: armor must be in [0, 1], got %v", i, boss.Armor)
		}
		for damageType, r := range boss.Resistances {
			if !damageType.IsValid() {
				return fmt.Errorf("boss %d: unknown resistance type %q", i, damageType)
			}
			if r > 1 {
				return fmt.Errorf("boss %d: resistance %s cannot exceed 1, got %v", i, damageType, r)
			}
		}
		ability := boss.SpecialAbility
		if !ability.Type.IsValid() {
			return fmt.Errorf("boss %d: unknown ability type %q", i, ability.Type)
		}
		if ability.TriggerDistance <= 0 {
			return fmt.Errorf("boss %d: ability triggerDistance must be positive", i)
		}
		if ability.SpawnCount < 0 {
			return fmt.Errorf("boss %d: ability spawnCount cannot be negative", i)
		}
		if ability.SpawnType != "" && !ability.SpawnType.IsValid() {
			return fmt.Errorf("boss %d: unknown spawn type %q", i, ability.SpawnType)
		}
	}

	return nil
}

// BossModifiers 由研究点累计花费换算出的 Boss 护甲/抗性加成
type BossModifiers struct {
	Armor      float64
	Resistance float64
}
