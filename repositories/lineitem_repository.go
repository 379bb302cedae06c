package repositories

import (
	"context"
	"database/sql"
	"errors"

	"backoffice-service/models"
	"backoffice-service/store"
)

type LineItemRepository struct {
	db *sql.DB
}

func NewLineItemRepository(db *sql.DB) *LineItemRepository {
	return &LineItemRepository{db: db}
}

func (r *LineItemRepository) Get(ctx context.Context, id int) (*models.OrderLineItem, error) {
	var (
		li  models.OrderLineItem
		ref models.ProductRef
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT li.id, li.order_id, li.product_id, li.quantity, li.subtotal,
		       p.id, p.name, p.price
		FROM order_line_items li
		JOIN products p ON p.id = li.product_id
		WHERE li.id = ?
	`, id).Scan(&li.ID, &li.OrderID, &li.ProductID, &li.Quantity, &li.Subtotal,
		&ref.ID, &ref.Name, &ref.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	li.Product = &ref
	return &li, nil
}

func (r *LineItemRepository) List(ctx context.Context, page, limit, orderID int) ([]models.OrderLineItem, int, error) {
	where := ""
	args := []any{}
	if orderID > 0 {
		where = " WHERE li.order_id = ?"
		args = append(args, orderID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM order_line_items li"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, (page-1)*limit)
	rows, err := r.db.QueryContext(ctx, `
		SELECT li.id, li.order_id, li.product_id, li.quantity, li.subtotal,
		       p.id, p.name, p.price
		FROM order_line_items li
		JOIN products p ON p.id = li.product_id`+where+`
		ORDER BY li.id ASC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]models.OrderLineItem, 0)
	for rows.Next() {
		var (
			li  models.OrderLineItem
			ref models.ProductRef
		)
		if err := rows.Scan(&li.ID, &li.OrderID, &li.ProductID, &li.Quantity, &li.Subtotal,
			&ref.ID, &ref.Name, &ref.Price); err != nil {
			return nil, 0, err
		}
		li.Product = &ref
		items = append(items, li)
	}
	return items, total, rows.Err()
}
