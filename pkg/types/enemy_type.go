package types

// EnemyType 定义敌人的类型
type EnemyType string

const (
	EnemyTriangle EnemyType = "triangle" // 三角形：快速、低血量
	EnemySquare   EnemyType = "square"   // 方形：慢速、高血量
	EnemyPentagon EnemyType = "pentagon" // 五边形：均衡
	EnemyBoss     EnemyType = "boss"     // Boss：护甲、抗性、特殊技能
	EnemyCritter  EnemyType = "critter"  // 小怪：由 Boss 技能召唤
)

// AllEnemyTypes 按固定顺序返回全部敌人类型
func AllEnemyTypes() []EnemyType {
	return []EnemyType{EnemyTriangle, EnemySquare, EnemyPentagon, EnemyBoss, EnemyCritter}
}

// IsValid 检查敌人类型是否为已知类型
func (t EnemyType) IsValid() bool {
	switch t {
	case EnemyTriangle, EnemySquare, EnemyPentagon, EnemyBoss, EnemyCritter:
		return true
	}
	return false
}

// IsBoss 是否为 Boss 类型
func (t EnemyType) IsBoss() bool {
	return t == EnemyBoss
}

func (t EnemyType) String() string {
	return string(t)
}

// AbilityType Boss 特殊技能类型
type AbilityType string

const (
	// AbilitySpawnCritters 召唤小怪：Boss 停止移动并在身边生成若干 critter
	AbilitySpawnCritters AbilityType = "SPAWN_CRITTERS"
)

// IsValid 检查技能类型是否已知
func (a AbilityType) IsValid() bool {
	return a == AbilitySpawnCritters
}
