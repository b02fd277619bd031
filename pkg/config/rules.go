package config

// 对局规则常量
// 这些数值直接影响平衡性测试，修改前需同步更新测试
const (
	// 地图
	TileSize = 50.0 // 网格单元边长（像素），网格坐标 → 世界坐标：cell*TileSize + TileSize/2

	// 玩家初始状态（未解锁任何升级时）
	InitialPlayerHealth = 20.0
	InitialMoney        = 150.0

	// 经济
	TowerSellRatio         = 0.75 // 出售返还比例（另加升级提供的 sellRatioModifier）
	TowerPriceIncreaseRate = 0.15 // 同类型每多建造一座，价格上涨 15%
	EarlyWaveBonus         = 15.0 // 倒计时中提前开始下一波的奖励金币

	// 子弹
	BaseProjectileSpeed = 600.0 // 像素/秒，乘以全局子弹速度修正
	BaseHitRadius       = 5.0   // 命中判定：剩余距离 < BaseHitRadius + speed*dt
	ChainRadius         = 200.0 // 闪电链弹射搜索半径

	// 状态效果
	SlowAuraDuration = 0.25 // 冰冻光环每 tick 刷新的减速持续时间

	// 暴击
	BaseCritDamage = 0.5 // 暴击额外伤害基础值（暴击倍率 = 1 + critDamage）

	// 波次
	WaveCountdownTicks = 5   // 波次间倒计时（每 tick 1 个时间单位）
	SpawnGroupGap      = 0.5 // 同一波内相邻生成组之间的间隔
	BossWaveInterval   = 5   // Boss 序号 = floor(waveIndex / BossWaveInterval)

	// Boss 击杀后的难度提升
	PostBossDifficultyWaves  = 4   // 击杀 Boss 后难度计数器重置为 4
	PostBossCountMultiplier  = 1.4 // 非 Boss 生成组数量倍率（向下取整）
	PostBossHealthMultiplier = 1.2 // 敌人基础血量倍率

	// Boss 难度修正（按升级累计花费的研究点计算）
	BossArmorPerPoint      = 0.005
	BossResistancePerPoint = 0.002
	BossModifierCap        = 0.5 // 护甲/抗性加成各自上限
	MaxCombinedReduction   = 0.9 // Boss 最终护甲/单项抗性上限

	// 基地伤害
	BossBaseDamage    = 5.0
	DefaultBaseDamage = 1.0

	// 研究点
	BossResearchPointBase = 3 // 击杀 Boss 获得 floor((bossIndex + 3) * researchPointModifier)

	// 特效
	HitEffectDuration     = 0.2
	CritHitEffectDuration = 0.4
	ChainEffectDuration   = 0.1
	CritterSpawnSpread    = 20.0 // 小怪生成位置的随机偏移范围（±10）

	// 修正值防御性上限
	MaxSlowFactor        = 0.9
	MaxCritChance        = 1.0
	MinTowerCostModifier = 0.1

	// 对局速度
	MinGameSpeed = 1
	MaxGameSpeed = 3

	// 游戏结束界面延迟显示（秒）
	GameOverRevealDelay = 0.01
)
