package repositories

import (
	"context"
	"database/sql"
	"errors"

	"backoffice-service/models"
	"backoffice-service/store"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetWithLineItems(ctx context.Context, id int) (*models.Order, error) {
	var (
		o         models.Order
		updatedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, total, created_at, updated_at
		FROM orders
		WHERE id = ?
	`, id).Scan(&o.ID, &o.Username, &o.Total, &o.CreatedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		o.UpdatedAt = &updatedAt.Time
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT li.id, li.order_id, li.product_id, li.quantity, li.subtotal,
		       p.id, p.name, p.price
		FROM order_line_items li
		JOIN products p ON p.id = li.product_id
		WHERE li.order_id = ?
		ORDER BY li.id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			li  models.OrderLineItem
			ref models.ProductRef
		)
		if err := rows.Scan(&li.ID, &li.OrderID, &li.ProductID, &li.Quantity, &li.Subtotal,
			&ref.ID, &ref.Name, &ref.Price); err != nil {
			return nil, err
		}
		li.Product = &ref
		o.LineItems = append(o.LineItems, li)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context, page, limit int, username string) ([]models.Order, int, error) {
	where := ""
	args := []any{}
	if username != "" {
		where = " WHERE o.username = ?"
		args = append(args, username)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders o"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, (page-1)*limit)
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.username, o.total, o.created_at, o.updated_at
		FROM orders o`+where+`
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var (
			o         models.Order
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&o.ID, &o.Username, &o.Total, &o.CreatedAt, &updatedAt); err != nil {
			return nil, 0, err
		}
		if updatedAt.Valid {
			o.UpdatedAt = &updatedAt.Time
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}
