package types

// DamageType 定义伤害类型
// 物理伤害额外受护甲影响，元素伤害只受对应抗性影响
type DamageType string

const (
	DamagePhysical DamageType = "PHYSICAL"
	DamageFire     DamageType = "FIRE"
	DamageCold     DamageType = "COLD"
	DamageElectric DamageType = "ELECTRIC"
)

// IsValid 检查伤害类型是否已知
func (d DamageType) IsValid() bool {
	switch d {
	case DamagePhysical, DamageFire, DamageCold, DamageElectric:
		return true
	}
	return false
}

func (d DamageType) String() string {
	return string(d)
}
