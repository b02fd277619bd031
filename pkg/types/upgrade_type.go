package types

// NodeType 升级树节点类型
type NodeType string

const (
	NodeTowerMod NodeType = "TOWER_MOD" // 修改某种防御塔的属性
	NodeEconomy  NodeType = "ECONOMY"   // 经济类全局修正
	NodeGlobal   NodeType = "GLOBAL"    // 全局修正（也用于解锁防御塔的节点）
)

// IsValid 检查节点类型是否已知
func (n NodeType) IsValid() bool {
	switch n {
	case NodeTowerMod, NodeEconomy, NodeGlobal:
		return true
	}
	return false
}

// NodeStat TOWER_MOD 节点可修改的防御塔属性
type NodeStat string

const (
	StatDamage       NodeStat = "damage"
	StatRange        NodeStat = "range"
	StatFireRate     NodeStat = "fireRate"
	StatCost         NodeStat = "cost"
	StatSlowFactor   NodeStat = "slowFactor"
	StatBurnDPS      NodeStat = "burnDps"
	StatBurnDuration NodeStat = "burnDuration"
	StatChainCount   NodeStat = "chainCount"
)

// IsValid 检查属性名是否已知
func (s NodeStat) IsValid() bool {
	switch s {
	case StatDamage, StatRange, StatFireRate, StatCost,
		StatSlowFactor, StatBurnDPS, StatBurnDuration, StatChainCount:
		return true
	}
	return false
}

// IsStructural 是否为结构性属性
// 结构性属性（燃烧、链数、减速）始终累加，忽略节点声明的运算方式
func (s NodeStat) IsStructural() bool {
	switch s {
	case StatSlowFactor, StatBurnDPS, StatBurnDuration, StatChainCount:
		return true
	}
	return false
}

// GlobalStat ECONOMY / GLOBAL 节点可修改的全局设置
type GlobalStat string

const (
	GlobalStartMoney              GlobalStat = "startMoney"
	GlobalKillBonus               GlobalStat = "killBonus"
	GlobalStartHealth             GlobalStat = "startHealth"
	GlobalTowerCostModifier       GlobalStat = "towerCostModifier"
	GlobalSellRatioModifier       GlobalStat = "sellRatioModifier"
	GlobalProjectileSpeedModifier GlobalStat = "projectileSpeedModifier"
	GlobalResearchPointModifier   GlobalStat = "researchPointModifier"
	GlobalCritChance              GlobalStat = "globalCritChance"
	GlobalCritDamage              GlobalStat = "globalCritDamage"
)

// IsValid 检查全局属性名是否已知
func (g GlobalStat) IsValid() bool {
	switch g {
	case GlobalStartMoney, GlobalKillBonus, GlobalStartHealth, GlobalTowerCostModifier,
		GlobalSellRatioModifier, GlobalProjectileSpeedModifier, GlobalResearchPointModifier,
		GlobalCritChance, GlobalCritDamage:
		return true
	}
	return false
}

// Operation 修正值的运算方式
type Operation string

const (
	OpAdd      Operation = "add"
	OpMultiply Operation = "multiply"
)

// Apply 将修正值作用于 base
// 未声明运算方式时按加法处理
func (o Operation) Apply(base, value float64) float64 {
	if o == OpMultiply {
		return base * value
	}
	return base + value
}
