// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// TowerType 定义防御塔的类型
// 使用字符串值，便于 YAML 配置直接引用（如 "CIRCLE"）
type TowerType string

const (
	TowerCircle   TowerType = "CIRCLE"   // 圆形塔：基础物理塔
	TowerSquare   TowerType = "SQUARE"   // 方形塔：高伤害、低射速
	TowerTriangle TowerType = "TRIANGLE" // 三角塔：远射程、高射速
	TowerFire     TowerType = "FIRE"     // 火焰塔：命中后附加燃烧
	TowerCold     TowerType = "COLD"     // 冰冻塔：不发射子弹，持续减速光环
	TowerElectric TowerType = "ELECTRIC" // 电塔：闪电链弹射
)

// AllTowerTypes 按固定顺序返回全部防御塔类型
// 调用方依赖该顺序保证输出稳定（如 UI 列表、统计）
func AllTowerTypes() []TowerType {
	return []TowerType{TowerCircle, TowerSquare, TowerTriangle, TowerFire, TowerCold, TowerElectric}
}

// IsValid 检查防御塔类型是否为已知类型
func (t TowerType) IsValid() bool {
	switch t {
	case TowerCircle, TowerSquare, TowerTriangle, TowerFire, TowerCold, TowerElectric:
		return true
	}
	return false
}

// String 返回防御塔类型的字符串表示
func (t TowerType) String() string {
	return string(t)
}
