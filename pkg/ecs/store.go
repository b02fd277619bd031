package ecs

// Store 按 EntityID 索引的组件存储，保持插入顺序
//
// 迭代顺序就是实体的创建（插入）顺序，目标选择等"先找到者优先"的
// 规则依赖这一点，因此删除时保序而不是与末尾交换。
type Store[T any] struct {
	components map[EntityID]T
	entities   []EntityID
}

// NewStore 创建一个空的组件存储
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[EntityID]T),
		entities:   make([]EntityID, 0, 32),
	}
}

// Set 插入或更新实体的组件
// 更新已存在的实体不会改变其迭代位置
func (s *Store[T]) Set(id EntityID, val T) {
	if _, exists := s.components[id]; !exists {
		s.entities = append(s.entities, id)
	}
	s.components[id] = val
}

// Get 获取实体的组件
func (s *Store[T]) Get(id EntityID) (T, bool) {
	val, ok := s.components[id]
	return val, ok
}

// Has 检查实体是否存在
func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.components[id]
	return ok
}

// Remove 删除实体，保持其余实体的顺序
func (s *Store[T]) Remove(id EntityID) bool {
	if _, exists := s.components[id]; !exists {
		return false
	}
	delete(s.components, id)
	for i, e := range s.entities {
		if e == id {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
	return true
}

// Len 返回实体数量
func (s *Store[T]) Len() int {
	return len(s.entities)
}

// Entities 按插入顺序返回所有实体ID（副本）
func (s *Store[T]) Entities() []EntityID {
	result := make([]EntityID, len(s.entities))
	copy(result, s.entities)
	return result
}

// Values 按插入顺序返回所有组件（副本）
func (s *Store[T]) Values() []T {
	result := make([]T, 0, len(s.entities))
	for _, id := range s.entities {
		result = append(result, s.components[id])
	}
	return result
}

// Each 按插入顺序遍历，fn 返回 false 时停止
func (s *Store[T]) Each(fn func(id EntityID, val T) bool) {
	for _, id := range s.entities {
		if !fn(id, s.components[id]) {
			return
		}
	}
}

// Clone 返回存储的浅拷贝
// 组件值按值复制；组件内部的切片/指针仍与原存储共享，修改前需自行复制
func (s *Store[T]) Clone() *Store[T] {
	c := &Store[T]{
		components: make(map[EntityID]T, len(s.components)),
		entities:   make([]EntityID, len(s.entities)),
	}
	copy(c.entities, s.entities)
	for id, val := range s.components {
		c.components[id] = val
	}
	return c
}
