// Package notify 提供进程内事件通知中心
package notify

import (
	"sync"

	"go.uber.org/zap"

	"github.com/dumeirei/hotel-ops-backend/internal/common/logger"
)

// 事件主题
const (
	TopicLowStock      = "inventory.low_stock"
	TopicRoomReady     = "room.ready"
	TopicBillGenerated = "billing.generated"
)

// Event 通知事件
type Event struct {
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
}

// LowStockItem 低库存条目
type LowStockItem struct {
	ItemID    int64  `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}

// Observer 事件观察者
type Observer interface {
	OnEvent(event Event)
}

// ObserverFunc 函数式观察者适配器
type ObserverFunc func(event Event)

// OnEvent 实现 Observer 接口
func (f ObserverFunc) OnEvent(event Event) {
	f(event)
}

// Hub 事件通知中心，同步按订阅顺序派发
type Hub struct {
	mu        sync.RWMutex
	observers map[string][]Observer
}

// NewHub 创建通知中心
func NewHub() *Hub {
	return &Hub{
		observers: make(map[string][]Observer),
	}
}

// Subscribe 订阅主题
func (h *Hub) Subscribe(topic string, observer Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers[topic] = append(h.observers[topic], observer)
}

// SubscribeFunc 以函数方式订阅主题
func (h *Hub) SubscribeFunc(topic string, fn func(event Event)) {
	h.Subscribe(topic, ObserverFunc(fn))
}

// Publish 发布事件，按订阅顺序同步通知全部观察者
// 单个观察者 panic 不影响其余观察者
func (h *Hub) Publish(topic string, payload interface{}) {
	h.mu.RLock()
	observers := make([]Observer, len(h.observers[topic]))
	copy(observers, h.observers[topic])
	h.mu.RUnlock()

	event := Event{Topic: topic, Payload: payload}
	for _, observer := range observers {
		h.dispatch(observer, event)
	}
}

func (h *Hub) dispatch(observer Observer, event Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("通知观察者异常",
				zap.String("topic", event.Topic),
				zap.Any("panic", r),
			)
		}
	}()
	observer.OnEvent(event)
}

// SubscriberCount 获取主题的订阅者数量
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers[topic])
}
