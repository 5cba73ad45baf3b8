package domain

import "context"

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет заказ вместе с позициями и проставляет сгенерированный ID.
	Create(ctx context.Context, order *Order) error
	// Update перезаписывает скалярные поля заказа по ID. Отсутствие строки ошибкой не считается.
	Update(ctx context.Context, order Order) error
	// List возвращает все заказы с позициями в порядке ID.
	List(ctx context.Context) ([]Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id int64) (Order, error)
	// Delete удаляет заказ; отсутствие заказа ошибкой не считается.
	Delete(ctx context.Context, id int64) error
}

// ItemRepository хранит позиции заказов.
type ItemRepository interface {
	// Save сохраняет позицию, у которой уже выставлен OrderID, и проставляет ей ID.
	Save(ctx context.Context, item *OrderItem) error
	// FindByOrderID возвращает позиции заказа (со вкусами) в порядке ID.
	FindByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error)
}

// FlavorRepository: чтение справочника вкусов.
type FlavorRepository interface {
	List(ctx context.Context) ([]Flavor, error)
}
