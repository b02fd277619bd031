package ecs

import "testing"

type testPositionComponent struct {
	X, Y float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	if em.Allocated() != 2 {
		t.Errorf("Expected 2 allocated entities, got %d", em.Allocated())
	}
}

func TestInvalidEntityNeverAllocated(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 100; i++ {
		if em.CreateEntity() == InvalidEntity {
			t.Fatal("InvalidEntity must never be allocated")
		}
	}
}

func TestStoreSetAndGet(t *testing.T) {
	s := NewStore[testPositionComponent]()
	s.Set(1, testPositionComponent{X: 100, Y: 200})

	pos, ok := s.Get(1)
	if !ok {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	if _, ok := s.Get(2); ok {
		t.Error("Missing entity should not be found")
	}
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := NewStore[int]()
	for _, id := range []EntityID{5, 3, 9, 1} {
		s.Set(id, int(id))
	}

	// 更新已有实体不改变顺序
	s.Set(3, 33)

	want := []EntityID{5, 3, 9, 1}
	got := s.Entities()
	if len(got) != len(want) {
		t.Fatalf("Expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Order mismatch at %d: expected %d, got %d", i, want[i], got[i])
		}
	}

	values := s.Values()
	if values[1] != 33 {
		t.Errorf("Expected updated value 33, got %d", values[1])
	}
}

func TestStoreRemovePreservesOrder(t *testing.T) {
	s := NewStore[int]()
	for _, id := range []EntityID{1, 2, 3, 4} {
		s.Set(id, int(id))
	}

	if !s.Remove(2) {
		t.Fatal("Remove should report true for existing entity")
	}
	if s.Remove(2) {
		t.Error("Removing twice should report false")
	}

	want := []EntityID{1, 3, 4}
	got := s.Entities()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Order mismatch at %d: expected %d, got %d", i, want[i], got[i])
		}
	}
	if s.Has(2) {
		t.Error("Removed entity should not exist")
	}
}

func TestStoreCloneIsIndependent(t *testing.T) {
	s := NewStore[int]()
	s.Set(1, 10)
	s.Set(2, 20)

	c := s.Clone()
	c.Set(1, 99)
	c.Remove(2)
	c.Set(3, 30)

	if v, _ := s.Get(1); v != 10 {
		t.Errorf("Original should be untouched, got %d", v)
	}
	if s.Len() != 2 {
		t.Errorf("Original should still have 2 entities, got %d", s.Len())
	}
	if c.Len() != 2 {
		t.Errorf("Clone should have 2 entities, got %d", c.Len())
	}
}

func TestStoreEachStopsEarly(t *testing.T) {
	s := NewStore[int]()
	for _, id := range []EntityID{1, 2, 3} {
		s.Set(id, int(id))
	}

	visited := 0
	s.Each(func(id EntityID, val int) bool {
		visited++
		return id != 2
	})

	if visited != 2 {
		t.Errorf("Expected Each to stop after 2 visits, got %d", visited)
	}
}

func TestEntityManagerClone(t *testing.T) {
	em := NewEntityManager()
	em.CreateEntity()

	c := em.Clone()
	if got := c.CreateEntity(); got != 2 {
		t.Errorf("Clone should continue from 2, got %d", got)
	}
	if got := em.CreateEntity(); got != 2 {
		t.Errorf("Original should be unaffected by clone allocation, got %d", got)
	}
}
