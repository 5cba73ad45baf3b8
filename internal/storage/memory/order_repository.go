package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/pizzaria/internal/domain"
)

// orderRepositoryInMemory: in-memory реализация OrderRepository поверх ItemRepository.
type orderRepositoryInMemory struct {
	mu                 sync.RWMutex
	nextID             int64
	orders             map[int64]domain.Order
	items              *ItemRepository
	fallbackCustomerID int64
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository(items *ItemRepository, fallbackCustomerID int64) domain.OrderRepository {
	if fallbackCustomerID <= 0 {
		fallbackCustomerID = domain.DefaultCustomerID
	}
	return &orderRepositoryInMemory{
		orders:             make(map[int64]domain.Order),
		items:              items,
		fallbackCustomerID: fallbackCustomerID,
	}
}

// Create присваивает заказу следующий ID и сохраняет позиции через ItemRepository.
func (r *orderRepositoryInMemory) Create(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	order.ID = r.nextID
	order.AttachItems()

	stored := *order
	stored.CustomerID = order.CustomerOrDefault(r.fallbackCustomerID)
	stored.Items = nil
	r.orders[order.ID] = stored

	for i := range order.Items {
		if err := r.items.Save(ctx, &order.Items[i]); err != nil {
			// Откатываем, как это делает транзакция в PostgreSQL.
			delete(r.orders, order.ID)
			r.items.deleteByOrder(order.ID)
			order.ID = 0
			for j := range order.Items {
				order.Items[j].ID = 0
			}
			return fmt.Errorf("%w: save order: %w", domain.ErrPersistence, err)
		}
	}
	return nil
}

// Update перезаписывает скалярные поля; отсутствующий заказ игнорируется.
func (r *orderRepositoryInMemory) Update(_ context.Context, order domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return nil
	}
	order.CustomerID = order.CustomerOrDefault(r.fallbackCustomerID)
	order.Items = nil
	r.orders[order.ID] = order
	return nil
}

// List повторяет INNER JOIN: заказы без позиций в выборку не попадают.
func (r *orderRepositoryInMemory) List(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	ids := make([]int64, 0, len(r.orders))
	for id := range r.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]domain.OrderRow, 0)
	for _, id := range ids {
		order := r.orders[id]
		items, err := r.items.FindByOrderID(ctx, id)
		if err != nil {
			r.mu.RUnlock()
			return nil, err
		}
		for _, item := range items {
			rows = append(rows, domain.OrderRow{
				OrderID:    order.ID,
				CustomerID: order.CustomerID,
				PlacedAt:   order.PlacedAt,
				Status:     order.Status,
				Total:      order.Total,
				ItemID:     item.ID,
				ItemType:   item.Type,
				FlavorID:   item.Flavor.ID,
				FlavorName: item.Flavor.Name,
			})
		}
	}
	r.mu.RUnlock()

	return domain.GroupOrderRows(rows), nil
}

// Get возвращает заказ с позициями или ErrOrderNotFound.
func (r *orderRepositoryInMemory) Get(ctx context.Context, id int64) (domain.Order, error) {
	r.mu.RLock()
	order, ok := r.orders[id]
	r.mu.RUnlock()
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	items, err := r.items.FindByOrderID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items
	return order, nil
}

// Delete удаляет заказ вместе с позициями.
func (r *orderRepositoryInMemory) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.orders, id)
	r.items.deleteByOrder(id)
	return nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
