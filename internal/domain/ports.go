package domain

import "context"

// OrderEventType: тип события жизненного цикла заказа.
type OrderEventType string

const (
	OrderEventCreated OrderEventType = "order.created"
	OrderEventUpdated OrderEventType = "order.updated"
	OrderEventDeleted OrderEventType = "order.deleted"
)

// EventPublisher публикует события заказов во внешнюю шину.
type EventPublisher interface {
	// PublishOrderEvent передаёт событие наружу; должен быть идемпотентным по ключу заказа.
	PublishOrderEvent(ctx context.Context, eventType OrderEventType, order Order) error
}

// NoopPublisher используется, когда шина событий не настроена.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderEvent(context.Context, OrderEventType, Order) error { return nil }
