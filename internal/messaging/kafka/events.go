package kafka

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/pizzaria/internal/domain"
)

// TopicOrderEvents: топик событий жизненного цикла заказов.
const TopicOrderEvents = "pizzeria.order.events"

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType  domain.OrderEventType `json:"event_type"`
	OrderID    int64                 `json:"order_id"`
	CustomerID int64                 `json:"customer_id,omitempty"`
	Status     string                `json:"status,omitempty"`
	Total      decimal.Decimal       `json:"total"`
	ItemCount  int                   `json:"item_count"`
	PlacedAt   time.Time             `json:"placed_at"`
	Timestamp  time.Time             `json:"timestamp"`
}

// NewOrderEvent собирает событие из состояния заказа
func NewOrderEvent(eventType domain.OrderEventType, order domain.Order) *OrderEvent {
	return &OrderEvent{
		EventType:  eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Total:      order.Total,
		ItemCount:  len(order.Items),
		PlacedAt:   order.PlacedAt,
		Timestamp:  time.Now().UTC(),
	}
}
