package database

import (
	"context"
	"database/sql"

	"dropship-dashboard/internal/models"
)

const orderColumns = "id, external_id, ordered_at, customer, total, status, created_at, updated_at"

// UpsertOrder insere um pedido ou atualiza os campos da plataforma de um existente.
// O status local de um pedido existente não é alterado.
func (db *DB) UpsertOrder(ctx context.Context, o *models.Order) (int64, error) {
	status := o.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	var id int64
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO orders (external_id, ordered_at, customer, total, status)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(external_id) DO UPDATE SET
			ordered_at = excluded.ordered_at,
			customer = excluded.customer,
			total = excluded.total,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id`,
		o.ExternalID, o.OrderedAt, o.Customer, o.Total, status,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	o.ID = id
	return id, nil
}

// ListOrders retorna todos os pedidos, mais recentes primeiro
func (db *DB) ListOrders(ctx context.Context) ([]models.Order, error) {
	return db.queryOrders(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC, id DESC")
}

// ListOrdersByStatus retorna os pedidos no status dado, mais antigos primeiro
func (db *DB) ListOrdersByStatus(ctx context.Context, status string, limit int) ([]models.Order, error) {
	return db.queryOrders(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE status = ? ORDER BY created_at ASC, id ASC LIMIT ?",
		status, limit,
	)
}

// UpdateOrderStatus altera o status local de um pedido
func (db *DB) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	res, err := db.conn.ExecContext(ctx,
		"UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// CountOrdersByStatus retorna o número de pedidos por status
func (db *DB) CountOrdersByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (db *DB) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&o.ID, &o.ExternalID, &o.OrderedAt, &o.Customer, &o.Total, &o.Status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			o.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			o.UpdatedAt = updatedAt.Time
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
