package game

import (
	"github.com/gonewx/geotd/pkg/components"
	"github.com/gonewx/geotd/pkg/ecs"
	"github.com/gonewx/geotd/pkg/types"
	"github.com/google/uuid"
)

// EventType 会话事件类型
type EventType string

const (
	EventEnemyKilled     EventType = "EnemyKilled"
	EventEnemyReachedEnd EventType = "EnemyReachedEnd"
	EventWaveStarted     EventType = "WaveStarted"
	EventWaveCleared     EventType = "WaveCleared"
	EventTowerPlaced     EventType = "TowerPlaced"
	EventTowerSold       EventType = "TowerSold"
	EventSessionEnded    EventType = "SessionEnded"
)

// Event 一条会话事件，Data 为对应的 XxxEvent 结构
type Event struct {
	Type EventType
	Data interface{}
}

// EnemyKilledEvent 敌人被击杀（金币和研究点已结算）
type EnemyKilledEvent struct {
	ID             ecs.EntityID
	Enemy          components.EnemyComponent
	Money          float64 // 本次获得的金币（奖励 + 击杀加成）
	ResearchPoints int     // Boss 击杀获得的研究点，普通敌人为 0
}

// EnemyReachedEndEvent 敌人到达终点（生命已扣除）
type EnemyReachedEndEvent struct {
	ID     ecs.EntityID
	Enemy  components.EnemyComponent
	Damage float64
	Health float64 // 扣除后的剩余生命
}

// WaveStartedEvent 新的一波开始
type WaveStartedEvent struct {
	WaveIndex int
	Early     bool
}

// WaveClearedEvent 一波的敌人全部清空（不含最后一波）
type WaveClearedEvent struct {
	WaveIndex int
}

// TowerPlacedEvent 放置防御塔
type TowerPlacedEvent struct {
	ID        ecs.EntityID
	Type      types.TowerType
	SlotIndex int
	Cost      float64
}

// TowerSoldEvent 出售防御塔
type TowerSoldEvent struct {
	ID        ecs.EntityID
	Type      types.TowerType
	SlotIndex int
	Refund    float64
}

// SessionEndedEvent 对局结束，是交回局外成长的唯一出口
type SessionEndedEvent struct {
	SessionID      uuid.UUID
	StageIndex     int
	Victory        bool
	ResearchPoints int
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 把普通函数适配为 Listener
type ListenerFunc func(event Event)

// OnEvent 调用函数本身
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// EventBus 同步事件分发器
// Session 只在一个 tick 提交之后分发事件，订阅者看到的总是完整的状态
type EventBus struct {
	listeners map[EventType][]Listener
}

// NewEventBus 创建事件分发器
func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe 订阅某类事件
func (b *EventBus) Subscribe(eventType EventType, listener Listener) {
	b.listeners[eventType] = append(b.listeners[eventType], listener)
}

// Unsubscribe 取消订阅
// listener 必须是可比较的类型（如指针），ListenerFunc 无法取消订阅
func (b *EventBus) Unsubscribe(eventType EventType, listener Listener) {
	listeners := b.listeners[eventType]
	for i, l := range listeners {
		if l == listener {
			b.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			return
		}
	}
}

// Dispatch 按订阅顺序通知所有订阅者
func (b *EventBus) Dispatch(event Event) {
	for _, listener := range b.listeners[event.Type] {
		listener.OnEvent(event)
	}
}
