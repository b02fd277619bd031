package config

import (
	"fmt"

	"github.com/gonewx/geotd/pkg/embedded"
	"github.com/gonewx/geotd/pkg/types"
	"gopkg.in/yaml.v3"
)

// EnemyStats 单个敌人类型的基础属性
type EnemyStats struct {
	Type   types.EnemyType `yaml:"type"`
	Health float64         `yaml:"health"` // 基础血量
	Speed  float64         `yaml:"speed"`  // 移动速度（像素/秒）
	Reward float64         `yaml:"reward"` // 击杀奖励金币
}

// EnemyStatsConfig 敌人属性配置文件结构
type EnemyStatsConfig struct {
	Enemies map[types.EnemyType]EnemyStats `yaml:"enemies"`
}

// Get 获取指定敌人类型的属性
func (c *EnemyStatsConfig) Get(enemyType types.EnemyType) (EnemyStats, bool) {
	stats, ok := c.Enemies[enemyType]
	return stats, ok
}

// LoadEnemyStats 从 YAML 文件加载敌人属性表
func LoadEnemyStats(filepath string) (*EnemyStatsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy stats file %s: %w", filepath, err)
	}

	var config EnemyStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse enemy stats YAML from %s: %w", filepath, err)
	}

	for enemyType, stats := range config.Enemies {
		if stats.Type == "" {
			stats.Type = enemyType
			config.Enemies[enemyType] = stats
		}
	}

	if err := validateEnemyStats(&config); err != nil {
		return nil, fmt.Errorf("invalid enemy stats in %s: %w", filepath, err)
	}

	return &config, nil
}

// validateEnemyStats 验证敌人属性表
func validateEnemyStats(config *EnemyStatsConfig) error {
	for _, enemyType := range types.AllEnemyTypes() {
		if _, ok := config.Enemies[enemyType]; !ok {
			return fmt.Errorf("enemy %s is missing", enemyType)
		}
	}

	for enemyType, stats := range config.Enemies {
		if !enemyType.IsValid() {
			return fmt.Errorf("unknown enemy type %q", enemyType)
		}
		if stats.Health <= 0 {
			return fmt.Errorf("enemy %s: health must be positive, got %v", enemyType, stats.Health)
		}
		if stats.Speed < 0 {
			return fmt.Errorf("enemy %s: speed cannot be negative, got %v", enemyType, stats.Speed)
		}
		if stats.Reward < 0 {
			return fmt.Errorf("enemy %s: reward cannot be negative, got %v", enemyType, stats.Reward)
		}
	}

	return nil
}
