package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/pizzaria/internal/domain"
)

// DefaultFlavors: базовое меню, совпадает с сидом миграций PostgreSQL.
var DefaultFlavors = []domain.Flavor{
	{ID: 1, Name: "Calabresa"},
	{ID: 2, Name: "Mussarela"},
	{ID: 3, Name: "Portuguesa"},
	{ID: 4, Name: "Frango com Catupiry"},
	{ID: 5, Name: "Quatro Queijos"},
	{ID: 6, Name: "Marguerita"},
}

// ItemRepository хранит позиции заказов и справочник вкусов в памяти.
type ItemRepository struct {
	mu      sync.RWMutex
	nextID  int64
	items   map[int64]domain.OrderItem
	flavors map[int64]domain.Flavor
}

// NewItemRepository создаёт репозиторий позиций со справочником flavors (nil: DefaultFlavors).
func NewItemRepository(flavors []domain.Flavor) *ItemRepository {
	if flavors == nil {
		flavors = DefaultFlavors
	}
	r := &ItemRepository{
		items:   make(map[int64]domain.OrderItem),
		flavors: make(map[int64]domain.Flavor, len(flavors)),
	}
	for _, f := range flavors {
		r.flavors[f.ID] = f
	}
	return r
}

// Save проверяет ссылку на вкус (аналог внешнего ключа) и присваивает позиции ID.
func (r *ItemRepository) Save(_ context.Context, item *domain.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	flavor, ok := r.flavors[item.Flavor.ID]
	if !ok {
		return fmt.Errorf("insert order item (order %d, flavor %d): unknown reference", item.OrderID, item.Flavor.ID)
	}

	r.nextID++
	item.ID = r.nextID
	item.Flavor = flavor
	r.items[item.ID] = *item
	return nil
}

// FindByOrderID возвращает позиции заказа в порядке ID.
func (r *ItemRepository) FindByOrderID(_ context.Context, orderID int64) ([]domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.OrderItem, 0)
	for _, item := range r.items {
		if item.OrderID == orderID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// List возвращает справочник вкусов в порядке ID.
func (r *ItemRepository) List(_ context.Context) ([]domain.Flavor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Flavor, 0, len(r.flavors))
	for _, f := range r.flavors {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *ItemRepository) deleteByOrder(orderID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.OrderID == orderID {
			delete(r.items, id)
		}
	}
}

var (
	_ domain.ItemRepository   = (*ItemRepository)(nil)
	_ domain.FlavorRepository = (*ItemRepository)(nil)
)
