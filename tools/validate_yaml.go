package main

import (
	"fmt"
	"os"

	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 逐个文件检查：先确认是合法 YAML，再交给对应的加载器做完整校验，
// 最后用 LoadGameData 检查文件之间的引用关系
func main() {
	embedded.Init(os.DirFS("."))

	files := []string{config.TowerStatsPath, config.EnemyStatsPath, config.BossConfigPath, config.UpgradeTreePath}
	stages, err := embedded.Glob(config.StagesGlob)
	if err != nil {
		fmt.Printf("❌ 列出关卡文件失败: %v\n", err)
		os.Exit(1)
	}
	files = append(files, stages...)

	failed := 0
	for _, f := range files {
		if err := checkSyntax(f); err != nil {
			fmt.Printf("❌ %s: %v\n", f, err)
			failed++
			continue
		}
		if err := load(f); err != nil {
			fmt.Printf("❌ %v\n", err)
			failed++
			continue
		}
		fmt.Printf("✅ %s\n", f)
	}
	if failed > 0 {
		fmt.Printf("❌ 有 %d 个文件未通过校验\n", failed)
		os.Exit(1)
	}

	data, err := config.LoadGameData()
	if err != nil {
		fmt.Printf("❌ 交叉校验失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 交叉校验通过: %d 种防御塔, %d 种敌人, %d 个 Boss, %d 个升级节点, %d 个关卡\n",
		len(data.Towers.Towers), len(data.Enemies.Enemies), len(data.Bosses.Bosses), len(data.Upgrades.Nodes), len(data.Stages))
}

func checkSyntax(path string) error {
	raw, err := embedded.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return fmt.Errorf("YAML 解析失败: %w", err)
	}
	return nil
}

func load(path string) error {
	var err error
	switch path {
	case config.TowerStatsPath:
		_, err = config.LoadTowerStats(path)
	case config.EnemyStatsPath:
		_, err = config.LoadEnemyStats(path)
	case config.BossConfigPath:
		_, err = config.LoadBossConfig(path)
	case config.UpgradeTreePath:
		_, err = config.LoadUpgradeTree(path)
	default:
		_, err = config.LoadStageConfig(path)
	}
	return err
}
