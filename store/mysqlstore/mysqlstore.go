// Package mysqlstore implements store.Store on a MySQL database. Row
// locking relies on InnoDB's SELECT ... FOR UPDATE; everything else is
// plain database/sql.
package mysqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"backoffice-service/models"
	"backoffice-service/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&mysqlTx{tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback after %v: %w", err, rbErr)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type mysqlTx struct {
	tx *sql.Tx
}

func (t *mysqlTx) ProductForUpdate(ctx context.Context, id int) (*models.Product, error) {
	var (
		p         models.Product
		updatedAt sql.NullTime
	)
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, name, price, stock, category_id, created_at, updated_at
		FROM products
		WHERE id = ?
		FOR UPDATE
	`, id).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CategoryID, &p.CreatedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	return &p, nil
}

func (t *mysqlTx) AdjustStock(ctx context.Context, id int, delta int) error {
	result, err := t.tx.ExecContext(ctx,
		"UPDATE products SET stock = stock + ? WHERE id = ?", delta, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (t *mysqlTx) InsertOrder(ctx context.Context, username string, total float64, createdAt time.Time) (int, error) {
	result, err := t.tx.ExecContext(ctx,
		"INSERT INTO orders (username, total, created_at, updated_at) VALUES (?, ?, ?, NULL)",
		username, total, createdAt)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (t *mysqlTx) Order(ctx context.Context, id int) (*models.Order, error) {
	var (
		o         models.Order
		updatedAt sql.NullTime
	)
	err := t.tx.QueryRowContext(ctx, `
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
	return &o, nil
}

// SetOrderTotal and AddOrderTotal do not inspect RowsAffected: MySQL
// reports zero for updates that leave the row byte-identical, which is not
// a missing row. Callers have already resolved the order in-transaction.
func (t *mysqlTx) SetOrderTotal(ctx context.Context, orderID int, total float64) error {
	_, err := t.tx.ExecContext(ctx,
		"UPDATE orders SET total = ? WHERE id = ?", total, orderID)
	return err
}

func (t *mysqlTx) AddOrderTotal(ctx context.Context, orderID int, delta float64, updatedAt time.Time) error {
	_, err := t.tx.ExecContext(ctx,
		"UPDATE orders SET total = total + ?, updated_at = ? WHERE id = ?",
		delta, updatedAt, orderID)
	return err
}

func (t *mysqlTx) DeleteOrder(ctx context.Context, id int) error {
	return t.execExpectingRow(ctx, "DELETE FROM orders WHERE id = ?", id)
}

func (t *mysqlTx) InsertLineItem(ctx context.Context, orderID, productID, quantity int, subtotal float64) (int, error) {
	result, err := t.tx.ExecContext(ctx,
		"INSERT INTO order_line_items (order_id, product_id, quantity, subtotal) VALUES (?, ?, ?, ?)",
		orderID, productID, quantity, subtotal)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (t *mysqlTx) LineItem(ctx context.Context, id int) (*models.OrderLineItem, error) {
	var li models.OrderLineItem
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, order_id, product_id, quantity, subtotal
		FROM order_line_items
		WHERE id = ?
	`, id).Scan(&li.ID, &li.OrderID, &li.ProductID, &li.Quantity, &li.Subtotal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &li, nil
}

func (t *mysqlTx) LineItemsByOrder(ctx context.Context, orderID int) ([]models.OrderLineItem, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, subtotal
		FROM order_line_items
		WHERE order_id = ?
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderLineItem
	for rows.Next() {
		var li models.OrderLineItem
		if err := rows.Scan(&li.ID, &li.OrderID, &li.ProductID, &li.Quantity, &li.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

func (t *mysqlTx) UpdateLineItem(ctx context.Context, id, quantity int, subtotal float64) error {
	_, err := t.tx.ExecContext(ctx,
		"UPDATE order_line_items SET quantity = ?, subtotal = ? WHERE id = ?",
		quantity, subtotal, id)
	return err
}

func (t *mysqlTx) DeleteLineItem(ctx context.Context, id int) error {
	return t.execExpectingRow(ctx, "DELETE FROM order_line_items WHERE id = ?", id)
}

func (t *mysqlTx) execExpectingRow(ctx context.Context, query string, args ...any) error {
	result, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
