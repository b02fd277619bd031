package components

import (
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/types"
)

// SlowStatus 当前生效的减速
type SlowStatus struct {
	Factor    float64
	ExpiresAt float64 // 游戏时间（秒）
}

// BurnStatus 一层燃烧
// 同一座塔再次命中时替换自己的那一层，不同的塔各自叠加
type BurnStatus struct {
	SourceTowerID ecs.EntityID
	DPS           float64
	ExpiresAt     float64
}

// BossAbility Boss 特殊技能参数
type BossAbility struct {
	Type            types.AbilityType
	TriggerDistance float64
	SpawnCount      int
	SpawnType       types.EnemyType
	Duration        float64
}

// BossState 只有 Boss 才有的状态
type BossState struct {
	BossIndex   int // floor(waveIndex / 5)，决定击杀后的研究点
	NameKey     string
	Armor       float64
	Resistances map[types.DamageType]float64
	Ability     BossAbility

	AbilityTimer       float64 // > 0 时正在施法，不移动
	NextAbilityTrigger float64 // 移动距离达到该值时触发技能
}

// Clone 复制 Boss 状态（包括抗性表）
func (b *BossState) Clone() *BossState {
	if b == nil {
		return nil
	}
	c := *b
	if b.Resistances != nil {
		c.Resistances = make(map[types.DamageType]float64, len(b.Resistances))
		for k, v := range b.Resistances {
			c.Resistances[k] = v
		}
	}
	return &c
}

// EnemyComponent 沿路径移动的敌人
type EnemyComponent struct {
	Type      types.EnemyType
	Position  types.Vector
	Health    float64
	MaxHealth float64
	Speed     float64
	Reward    float64

	// PathIndex 下一个要到达的航点，等于路径长度表示已到达终点
	PathIndex        int
	DistanceTraveled float64

	Slow  *SlowStatus
	Burns []BurnStatus

	// Boss 非 Boss 敌人为 nil
	Boss *BossState
}

// IsBoss 是否为 Boss
func (e *EnemyComponent) IsBoss() bool {
	return e.Boss != nil
}

// Armor 物理护甲，非 Boss 为 0
func (e *EnemyComponent) Armor() float64 {
	if e.Boss == nil {
		return 0
	}
	return e.Boss.Armor
}

// Resistance 指定伤害类型的抗性，未配置时为 0
func (e *EnemyComponent) Resistance(damageType types.DamageType) float64 {
	if e.Boss == nil {
		return 0
	}
	return e.Boss.Resistances[damageType]
}

// Clone 复制敌人，可变的切片和指针字段都会重新分配
func (e EnemyComponent) Clone() EnemyComponent {
	c := e
	if e.Slow != nil {
		slow := *e.Slow
		c.Slow = &slow
	}
	if e.Burns != nil {
		c.Burns = append([]BurnStatus(nil), e.Burns...)
	}
	c.Boss = e.Boss.Clone()
	return c
}
