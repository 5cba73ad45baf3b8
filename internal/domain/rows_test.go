package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(orderID int64, total string, itemID int64, flavorID int64, flavor string) OrderRow {
	return OrderRow{
		OrderID:    orderID,
		CustomerID: 1,
		PlacedAt:   time.Date(2024, 5, 10, 19, 0, 0, 0, time.UTC).Add(time.Duration(orderID) * time.Minute),
		Status:     OrderStatusPending,
		Total:      decimal.RequireFromString(total),
		ItemID:     itemID,
		ItemType:   "GRANDE",
		FlavorID:   flavorID,
		FlavorName: flavor,
	}
}

func TestGroupOrderRows_TwoOneThree(t *testing.T) {
	rows := []OrderRow{
		row(1, "80.00", 10, 1, "Calabresa"),
		row(1, "80.00", 11, 2, "Mussarela"),
		row(2, "35.50", 12, 3, "Portuguesa"),
		row(3, "120.00", 13, 1, "Calabresa"),
		row(3, "120.00", 14, 2, "Mussarela"),
		row(3, "120.00", 15, 4, "Frango com Catupiry"),
	}

	orders := GroupOrderRows(rows)

	require.Len(t, orders, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{orders[0].ID, orders[1].ID, orders[2].ID})
	assert.Len(t, orders[0].Items, 2)
	assert.Len(t, orders[1].Items, 1)
	assert.Len(t, orders[2].Items, 3)

	assert.True(t, orders[0].Total.Equal(decimal.RequireFromString("80")))
	assert.True(t, orders[1].Total.Equal(decimal.RequireFromString("35.5")))
	assert.True(t, orders[2].Total.Equal(decimal.RequireFromString("120")))

	for _, order := range orders {
		for i, item := range order.Items {
			assert.Equal(t, order.ID, item.OrderID)
			if i > 0 {
				assert.Less(t, order.Items[i-1].ID, item.ID, "items must keep item id order")
			}
		}
	}

	assert.Equal(t, Flavor{ID: 4, Name: "Frango com Catupiry"}, orders[2].Items[2].Flavor)
}

func TestGroupOrderRows_TotalFromFirstRow(t *testing.T) {
	rows := []OrderRow{
		row(5, "50.00", 1, 1, "Calabresa"),
		row(5, "999.99", 2, 2, "Mussarela"),
	}

	orders := GroupOrderRows(rows)

	require.Len(t, orders, 1)
	assert.True(t, orders[0].Total.Equal(decimal.RequireFromString("50")), "total must not be overwritten by later rows")
	assert.Len(t, orders[0].Items, 2)
}

func TestGroupOrderRows_FirstSeenOrder(t *testing.T) {
	rows := []OrderRow{
		row(9, "10.00", 1, 1, "Calabresa"),
		row(4, "20.00", 2, 1, "Calabresa"),
		row(9, "10.00", 3, 2, "Mussarela"),
	}

	orders := GroupOrderRows(rows)

	require.Len(t, orders, 2)
	assert.Equal(t, int64(9), orders[0].ID)
	assert.Equal(t, int64(4), orders[1].ID)
	assert.Len(t, orders[0].Items, 2)
}

func TestGroupOrderRows_Empty(t *testing.T) {
	orders := GroupOrderRows(nil)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}
