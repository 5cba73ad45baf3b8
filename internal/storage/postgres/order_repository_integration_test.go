package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/pizzaria/internal/domain"
)

func newIntegrationOrder(customerID int64, total string, flavors ...int64) *domain.Order {
	items := make([]domain.OrderItem, 0, len(flavors))
	for _, id := range flavors {
		items = append(items, domain.OrderItem{Type: "GRANDE", Flavor: domain.Flavor{ID: id}})
	}
	return &domain.Order{
		CustomerID: customerID,
		PlacedAt:   time.Now().UTC().Truncate(time.Second),
		Status:     domain.OrderStatusPending,
		Total:      decimal.RequireFromString(total),
		Items:      items,
	}
}

func TestOrderRepository_PostgresCreateStoresCustomer(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store, NewItemRepository(store))
	flavors := flavorIDs(t, store)
	ctx := context.Background()

	anonymous := newIntegrationOrder(0, "40.00", flavors[0])
	require.NoError(t, repo.Create(ctx, anonymous))
	require.NotZero(t, anonymous.ID)

	known := newIntegrationOrder(9, "40.00", flavors[0])
	require.NoError(t, repo.Create(ctx, known))

	var customer int64
	require.NoError(t, store.DB().QueryRowContext(ctx, `SELECT id_cliente FROM pedidos WHERE id_pedido = $1`, anonymous.ID).Scan(&customer))
	assert.Equal(t, domain.DefaultCustomerID, customer)
	require.NoError(t, store.DB().QueryRowContext(ctx, `SELECT id_cliente FROM pedidos WHERE id_pedido = $1`, known.ID).Scan(&customer))
	assert.Equal(t, int64(9), customer)

	stored, err := repo.Get(ctx, anonymous.ID)
	require.NoError(t, err)
	for i, item := range anonymous.Items {
		assert.Equal(t, anonymous.ID, item.OrderID)
		assert.NotZero(t, item.ID)
		assert.Equal(t, stored.Items[i].Flavor, item.Flavor, "create must return the stored flavor")
	}
}

func TestOrderRepository_PostgresListGetUpdateDelete(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	items := NewItemRepository(store)
	repo := NewOrderRepository(store, items)
	flavors := flavorIDs(t, store)
	ctx := context.Background()

	first := newIntegrationOrder(0, "80.00", flavors[0], flavors[1])
	second := newIntegrationOrder(2, "35.50", flavors[2])
	third := newIntegrationOrder(0, "120.00", flavors[0], flavors[1], flavors[2])
	for _, o := range []*domain.Order{first, second, third} {
		require.NoError(t, repo.Create(ctx, o))
	}

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, []int64{first.ID, second.ID, third.ID}, []int64{orders[0].ID, orders[1].ID, orders[2].ID})
	assert.Len(t, orders[0].Items, 2)
	assert.Len(t, orders[1].Items, 1)
	assert.Len(t, orders[2].Items, 3)
	assert.True(t, orders[2].Total.Equal(decimal.RequireFromString("120")))
	for _, o := range orders {
		for i := 1; i < len(o.Items); i++ {
			assert.Less(t, o.Items[i-1].ID, o.Items[i].ID)
		}
	}

	got, err := repo.Get(ctx, second.ID)
	require.NoError(t, err)
	expectedItems, err := items.FindByOrderID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, expectedItems, got.Items)
	assert.True(t, got.Total.Equal(second.Total))

	got.Status = domain.OrderStatusDelivered
	got.Total = decimal.RequireFromString("30.00")
	require.NoError(t, repo.Update(ctx, got))
	updated, err := repo.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, updated.Status)
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("30")))

	ghost := got
	ghost.ID = third.ID + 1000
	require.NoError(t, repo.Update(ctx, ghost), "update on missing id must be a no-op")
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.Get(ctx, first.ID)
	assert.True(t, errors.Is(err, domain.ErrOrderNotFound))
	require.NoError(t, repo.Delete(ctx, first.ID), "second delete is a no-op")
}

func TestOrderRepository_PostgresCreateIsAtomic(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store, NewItemRepository(store))
	flavors := flavorIDs(t, store)
	ctx := context.Background()

	broken := newIntegrationOrder(0, "50.00", flavors[0], -1)
	err := repo.Create(ctx, broken)
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))

	var count int
	require.NoError(t, store.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM pedidos`).Scan(&count))
	assert.Zero(t, count, "failed item insert must roll back the order row")
}
