package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/pizzaria/internal/domain"
	"github.com/vladislavdragonenkov/pizzaria/internal/storage/memory"
)

func newOrder(customerID int64, flavors ...int64) *domain.Order {
	items := make([]domain.OrderItem, 0, len(flavors))
	for _, id := range flavors {
		items = append(items, domain.OrderItem{Type: "GRANDE", Flavor: domain.Flavor{ID: id}})
	}
	return &domain.Order{
		CustomerID: customerID,
		PlacedAt:   time.Date(2024, 3, 1, 19, 30, 0, 0, time.UTC),
		Status:     domain.OrderStatusPending,
		Total:      decimal.RequireFromString("59.90"),
		Items:      items,
	}
}

func newRepo() domain.OrderRepository {
	return memory.NewOrderRepository(memory.NewItemRepository(nil), 0)
}

func TestOrderRepository_CreateGet(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	order := newOrder(7, 1, 2)

	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("expected generated order id")
	}
	for _, item := range order.Items {
		if item.OrderID != order.ID || item.ID == 0 {
			t.Fatalf("item not attached: %+v", item)
		}
	}

	stored, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.CustomerID != 7 {
		t.Fatalf("expected customer 7, got %d", stored.CustomerID)
	}
	if len(stored.Items) != 2 || stored.Items[0].Flavor.Name != "Calabresa" {
		t.Fatalf("unexpected items: %+v", stored.Items)
	}
}

func TestOrderRepository_CreateUsesFallbackCustomer(t *testing.T) {
	repo := memory.NewOrderRepository(memory.NewItemRepository(nil), 42)
	ctx := context.Background()
	order := newOrder(0, 1)

	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	stored, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.CustomerID != 42 {
		t.Fatalf("expected fallback customer 42, got %d", stored.CustomerID)
	}
}

func TestOrderRepository_CreateRejectsInvalid(t *testing.T) {
	repo := newRepo()
	order := newOrder(1, 1)
	order.Status = ""

	err := repo.Create(context.Background(), order)
	if !errors.Is(err, domain.ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
	if order.ID != 0 {
		t.Fatalf("invalid order must not get an id, got %d", order.ID)
	}
}

func TestOrderRepository_CreateUnknownFlavorRollsBack(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	order := newOrder(1, 1, 999)

	err := repo.Create(ctx, order)
	if !domain.IsPersistence(err) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if order.ID != 0 {
		t.Fatalf("expected id reset, got %d", order.ID)
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected rollback, got %d orders", len(orders))
	}
}

func TestOrderRepository_ListGroupsItems(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	for _, o := range []*domain.Order{newOrder(1, 1, 2), newOrder(2, 3), newOrder(3, 4, 5, 6)} {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	// Заказ без позиций не попадает в список.
	if err := repo.Create(ctx, newOrder(4)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	for i, want := range []int{2, 1, 3} {
		if len(orders[i].Items) != want {
			t.Fatalf("order %d: expected %d items, got %d", orders[i].ID, want, len(orders[i].Items))
		}
	}
}

func TestOrderRepository_UpdateAndMissing(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	order := newOrder(1, 1)
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	changed := *order
	changed.Status = domain.OrderStatusDelivered
	changed.Total = decimal.RequireFromString("10")
	if err := repo.Update(ctx, changed); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Status != domain.OrderStatusDelivered || !stored.Total.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("update not applied: %+v", stored)
	}
	if len(stored.Items) != 1 {
		t.Fatalf("update must keep items, got %d", len(stored.Items))
	}

	changed.ID = 500
	if err := repo.Update(ctx, changed); err != nil {
		t.Fatalf("update of missing order must be a no-op, got %v", err)
	}
	if _, err := repo.Get(ctx, 500); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_Delete(t *testing.T) {
	items := memory.NewItemRepository(nil)
	repo := memory.NewOrderRepository(items, 0)
	ctx := context.Background()
	order := newOrder(1, 1, 2)
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	left, _ := items.FindByOrderID(ctx, order.ID)
	if len(left) != 0 {
		t.Fatalf("items must be removed with order, got %d", len(left))
	}
	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("repeated delete must be a no-op, got %v", err)
	}
}

func TestItemRepository_FlavorsSorted(t *testing.T) {
	repo := memory.NewItemRepository([]domain.Flavor{{ID: 3, Name: "C"}, {ID: 1, Name: "A"}})

	flavors, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(flavors) != 2 || flavors[0].ID != 1 || flavors[1].ID != 3 {
		t.Fatalf("unexpected flavors: %+v", flavors)
	}
}
