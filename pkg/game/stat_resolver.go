package game

import (
	"log"

	"github.com/gonewx/geotd/pkg/config"
	"github.com/gonewx/geotd/pkg/systems"
	"github.com/gonewx/geotd/pkg/types"
)

// GlobalSettings 升级解析得到的全局设置
type GlobalSettings struct {
	StartMoney              float64
	KillBonus               float64
	StartHealth             float64
	TowerCostModifier       float64
	SellRatioModifier       float64
	ProjectileSpeedModifier float64
	ResearchPointModifier   float64
	CritChance              float64
	CritDamage              float64

	// UnlockedTowers 可建造的防御塔，按 types.AllTowerTypes 的顺序
	UnlockedTowers []types.TowerType
}

// DefaultGlobalSettings 没有任何升级时的全局设置
func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{
		StartMoney:              config.InitialMoney,
		StartHealth:             config.InitialPlayerHealth,
		TowerCostModifier:       1,
		ProjectileSpeedModifier: 1,
		ResearchPointModifier:   1,
		CritDamage:              config.BaseCritDamage,
		UnlockedTowers:          []types.TowerType{types.TowerCircle},
	}
}

// IsTowerUnlocked 检查防御塔是否可建造
func (g GlobalSettings) IsTowerUnlocked(towerType types.TowerType) bool {
	for _, t := range g.UnlockedTowers {
		if t == towerType {
			return true
		}
	}
	return false
}

// ResolvedStats 一次升级解析的完整结果，在整个对局内只读
type ResolvedStats struct {
	Towers        *config.TowerStatsConfig
	Settings      GlobalSettings
	BossModifiers config.BossModifiers
	TotalSpent    int // 已花费的研究点（不含 ROOT）
}

// StatResolver 把已解锁的升级节点折算为防御塔属性和全局设置
// 基础表只读，每次 Resolve 都在副本上计算
type StatResolver struct {
	towers     *config.TowerStatsConfig
	tree       *config.UpgradeTreeConfig
	difficulty *systems.DifficultyEngine
}

// NewStatResolver 创建升级解析器
func NewStatResolver(towers *config.TowerStatsConfig, tree *config.UpgradeTreeConfig) *StatResolver {
	return &StatResolver{
		towers:     towers,
		tree:       tree,
		difficulty: systems.NewDifficultyEngine(),
	}
}

// Resolve 解析已解锁的节点
//
// 顺序固定：
//  1. 解锁防御塔、累计全局修正和研究点花费
//  2. 在属性副本上叠加 TOWER_MOD（燃烧、链数、减速始终累加）
//  3. 最后把价格修正乘到每种防御塔的价格上
//
// 未知的节点 ID 会被忽略
func (r *StatResolver) Resolve(unlocked []string) ResolvedStats {
	settings := DefaultGlobalSettings()
	unlockedTowers := map[types.TowerType]bool{types.TowerCircle: true}

	nodes := make([]config.UpgradeNode, 0, len(unlocked))
	seen := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		if seen[id] {
			continue
		}
		seen[id] = true
		node, ok := r.tree.Node(id)
		if !ok {
			log.Printf("[StatResolver] WARNING: unknown upgrade %q ignored", id)
			continue
		}
		nodes = append(nodes, node)
	}

	totalSpent := 0
	for _, node := range nodes {
		if node.ID != config.RootNodeID {
			totalSpent += node.Cost
		}
		if node.UnlocksTower != "" {
			unlockedTowers[node.UnlocksTower] = true
		}
		if node.Type == types.NodeEconomy || node.Type == types.NodeGlobal {
			applyGlobal(&settings, node)
		}
	}

	towers := r.towers.Clone()
	for _, node := range nodes {
		if node.Type != types.NodeTowerMod {
			continue
		}
		stats, ok := towers.Towers[node.Tower]
		if !ok {
			continue
		}
		applyTowerMod(&stats, node)
		towers.Towers[node.Tower] = stats
	}

	settings.CritChance = min(settings.CritChance, config.MaxCritChance)
	settings.TowerCostModifier = max(settings.TowerCostModifier, config.MinTowerCostModifier)
	for t, stats := range towers.Towers {
		stats.Cost *= settings.TowerCostModifier
		towers.Towers[t] = stats
	}

	settings.UnlockedTowers = settings.UnlockedTowers[:0]
	for _, t := range types.AllTowerTypes() {
		if unlockedTowers[t] {
			settings.UnlockedTowers = append(settings.UnlockedTowers, t)
		}
	}

	return ResolvedStats{
		Towers:        towers,
		Settings:      settings,
		BossModifiers: r.difficulty.BossModifiersForSpent(totalSpent),
		TotalSpent:    totalSpent,
	}
}

// applyGlobal 按节点声明的运算方式修改全局设置
func applyGlobal(s *GlobalSettings, node config.UpgradeNode) {
	var target *float64
	switch node.GlobalStat {
	case types.GlobalStartMoney:
		target = &s.StartMoney
	case types.GlobalKillBonus:
		target = &s.KillBonus
	case types.GlobalStartHealth:
		target = &s.StartHealth
	case types.GlobalTowerCostModifier:
		target = &s.TowerCostModifier
	case types.GlobalSellRatioModifier:
		target = &s.SellRatioModifier
	case types.GlobalProjectileSpeedModifier:
		target = &s.ProjectileSpeedModifier
	case types.GlobalResearchPointModifier:
		target = &s.ResearchPointModifier
	case types.GlobalCritChance:
		target = &s.CritChance
	case types.GlobalCritDamage:
		target = &s.CritDamage
	default:
		return
	}
	*target = node.Operation.Apply(*target, node.Value)
}

// applyTowerMod 修改一种防御塔的属性
// 结构性属性只在防御塔本身具备该能力时生效
func applyTowerMod(stats *config.TowerStats, node config.UpgradeNode) {
	switch node.Stat {
	case types.StatBurnDPS:
		if stats.Burn != nil {
			stats.Burn.DPS += node.Value
		}
	case types.StatBurnDuration:
		if stats.Burn != nil {
			stats.Burn.Duration += node.Value
		}
	case types.StatChainCount:
		if stats.Chain != nil {
			stats.Chain.InitialCount += int(node.Value)
		}
	case types.StatSlowFactor:
		if stats.SlowFactor != nil {
			slow := min(*stats.SlowFactor+node.Value, config.MaxSlowFactor)
			stats.SlowFactor = &slow
		}
	case types.StatDamage:
		stats.Damage = node.Operation.Apply(stats.Damage, node.Value)
	case types.StatRange:
		stats.Range = node.Operation.Apply(stats.Range, node.Value)
	case types.StatFireRate:
		stats.FireRate = node.Operation.Apply(stats.FireRate, node.Value)
	case types.StatCost:
		stats.Cost = node.Operation.Apply(stats.Cost, node.Value)
	}
}
