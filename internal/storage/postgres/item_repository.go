package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vladislavdragonenkov/pizzaria/internal/domain"
)

// TxItemRepository: репозиторий позиций, который умеет работать внутри чужой транзакции.
type TxItemRepository interface {
	domain.ItemRepository
	WithTx(tx *sql.Tx) domain.ItemRepository
}

// ItemRepository хранит позиции заказа в itens_pedido.
type ItemRepository struct {
	q querier
}

// NewItemRepository создаёт PostgreSQL-реализацию ItemRepository.
func NewItemRepository(store *Store) *ItemRepository {
	return &ItemRepository{q: store.DB()}
}

// WithTx возвращает копию репозитория, привязанную к транзакции.
func (r *ItemRepository) WithTx(tx *sql.Tx) domain.ItemRepository {
	return &ItemRepository{q: tx}
}

// Save вставляет позицию, проставляет ей id_item и подтягивает название вкуса.
func (r *ItemRepository) Save(ctx context.Context, item *domain.OrderItem) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, `
		WITH inserted AS (
			INSERT INTO itens_pedido (id_pedido, tipo, id_sabor)
			VALUES ($1, $2, $3)
			RETURNING id_item, id_sabor
		)
		SELECT inserted.id_item, sabores.sabor
		FROM inserted
		INNER JOIN sabores ON inserted.id_sabor = sabores.idsabor
	`, item.OrderID, item.Type, item.Flavor.ID).Scan(&item.ID, &item.Flavor.Name)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert order item (order %d, flavor %d): unknown reference: %w", item.OrderID, item.Flavor.ID, err)
		}
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// FindByOrderID возвращает позиции заказа со вкусами в порядке id_item.
func (r *ItemRepository) FindByOrderID(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, `
		SELECT itens_pedido.id_item, itens_pedido.id_pedido, itens_pedido.tipo,
		       sabores.idsabor, sabores.sabor
		FROM itens_pedido
		INNER JOIN sabores ON itens_pedido.id_sabor = sabores.idsabor
		WHERE itens_pedido.id_pedido = $1
		ORDER BY itens_pedido.id_item
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Type, &item.Flavor.ID, &item.Flavor.Name); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

// FlavorRepository читает справочник sabores.
type FlavorRepository struct {
	db *sql.DB
}

// NewFlavorRepository создаёт PostgreSQL-реализацию FlavorRepository.
func NewFlavorRepository(store *Store) *FlavorRepository {
	return &FlavorRepository{db: store.DB()}
}

// List возвращает все вкусы в порядке idsabor.
func (r *FlavorRepository) List(ctx context.Context) ([]domain.Flavor, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT idsabor, sabor FROM sabores ORDER BY idsabor`)
	if err != nil {
		return nil, persistenceError("list flavors", err)
	}
	defer rows.Close()

	flavors := make([]domain.Flavor, 0)
	for rows.Next() {
		var f domain.Flavor
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, persistenceError("scan flavor", err)
		}
		flavors = append(flavors, f)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate flavors", err)
	}
	return flavors, nil
}

var (
	_ TxItemRepository        = (*ItemRepository)(nil)
	_ domain.FlavorRepository = (*FlavorRepository)(nil)
)
