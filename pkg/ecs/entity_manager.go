// Package ecs 提供实体标识与按实体ID索引的组件存储
//
// 所有实体（防御塔、敌人、子弹、特效）都只通过 EntityID 相互引用，
// 每个 tick 重新解析引用，实体被移除后不会留下悬空指针。
package ecs

// EntityID 是实体的唯一标识符
type EntityID uint64

// InvalidEntity 无效实体ID（0 保留，不会被分配）
const InvalidEntity EntityID = 0

// EntityManager 负责分配实体ID
// 同一个会话内 ID 单调递增、永不复用
type EntityManager struct {
	nextID uint64
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID: 1, // ID从1开始,0保留为无效ID
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	return id
}

// Allocated 返回已分配的实体数量
func (em *EntityManager) Allocated() int {
	return int(em.nextID - 1)
}

// Clone 复制分配器状态
// 新旧两个分配器之后各自分配，互不影响
func (em *EntityManager) Clone() *EntityManager {
	return &EntityManager{nextID: em.nextID}
}
