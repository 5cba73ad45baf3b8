package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/pizzaria/internal/domain"
)

// errGeneratedIDMissing: INSERT отработал, но id_pedido не вернулся.
var errGeneratedIDMissing = errors.New("failed to obtain generated order id")

const listOrdersQuery = `
	SELECT pedidos.id_pedido, pedidos.id_cliente, pedidos.data_pedido, pedidos.status, pedidos.total,
	       itens_pedido.id_item, itens_pedido.tipo,
	       sabores.idsabor, sabores.sabor
	FROM pedidos
	INNER JOIN itens_pedido ON pedidos.id_pedido = itens_pedido.id_pedido
	INNER JOIN sabores ON itens_pedido.id_sabor = sabores.idsabor
	ORDER BY pedidos.id_pedido, itens_pedido.id_item
`

type orderRepository struct {
	db                 *sql.DB
	items              TxItemRepository
	fallbackCustomerID int64
}

// Option настраивает orderRepository.
type Option func(*orderRepository)

// WithFallbackCustomerID задаёт клиента для заказов без id_cliente.
func WithFallbackCustomerID(id int64) Option {
	return func(r *orderRepository) {
		if id > 0 {
			r.fallbackCustomerID = id
		}
	}
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
// Позиции пишутся и читаются через items; при создании заказа они разделяют его транзакцию.
func NewOrderRepository(store *Store, items TxItemRepository, opts ...Option) domain.OrderRepository {
	r := &orderRepository{
		db:                 store.DB(),
		items:              items,
		fallbackCustomerID: domain.DefaultCustomerID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO pedidos (id_cliente, data_pedido, status, total)
			VALUES ($1, $2, $3, $4)
			RETURNING id_pedido
		`,
			order.CustomerOrDefault(r.fallbackCustomerID), order.PlacedAt.UTC(), order.Status, order.Total,
		).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return errGeneratedIDMissing
		}
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		order.ID = id
		order.AttachItems()

		items := r.items.WithTx(tx)
		for i := range order.Items {
			if err := items.Save(ctx, &order.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Транзакция откатилась: сгенерированные id больше ничему не соответствуют.
		order.ID = 0
		for i := range order.Items {
			order.Items[i].ID = 0
		}
		return persistenceError("save order", err)
	}

	return nil
}

func (r *orderRepository) Update(ctx context.Context, order domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// Ноль затронутых строк не ошибка: заказ могли удалить параллельно.
	_, err := r.db.ExecContext(ctx, `
		UPDATE pedidos
		SET id_cliente = $1,
		    data_pedido = $2,
		    status = $3,
		    total = $4
		WHERE id_pedido = $5
	`,
		order.CustomerOrDefault(r.fallbackCustomerID),
		order.PlacedAt.UTC(),
		order.Status,
		order.Total,
		order.ID,
	)
	if err != nil {
		return persistenceError("update order", err)
	}
	return nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listOrdersQuery)
	if err != nil {
		return nil, persistenceError("list orders", err)
	}
	defer rows.Close()

	flat := make([]domain.OrderRow, 0)
	for rows.Next() {
		var row domain.OrderRow
		if err := rows.Scan(
			&row.OrderID, &row.CustomerID, &row.PlacedAt, &row.Status, &row.Total,
			&row.ItemID, &row.ItemType,
			&row.FlavorID, &row.FlavorName,
		); err != nil {
			return nil, persistenceError("list orders", fmt.Errorf("scan order row: %w", err))
		}
		flat = append(flat, row)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list orders", fmt.Errorf("iterate order rows: %w", err))
	}

	return domain.GroupOrderRows(flat), nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id_pedido, id_cliente, data_pedido, status, total
		FROM pedidos
		WHERE id_pedido = $1
	`, id).Scan(&order.ID, &order.CustomerID, &order.PlacedAt, &order.Status, &order.Total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, persistenceError("find order", err)
	}

	items, err := r.items.FindByOrderID(ctx, order.ID)
	if err != nil {
		return domain.Order{}, persistenceError("find order", err)
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM pedidos WHERE id_pedido = $1`, id); err != nil {
		return persistenceError("delete order", err)
	}
	return nil
}

// persistenceError помечает ошибку хранилища как domain.ErrPersistence с именем операции.
func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}

var _ domain.OrderRepository = (*orderRepository)(nil)
