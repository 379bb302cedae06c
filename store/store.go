// Package store defines the transactional data-store abstraction the
// order/stock core operates on. The production implementation is backed by
// MySQL (store/mysqlstore); tests substitute the in-memory one
// (store/memstore). Every stock mutation goes through ProductForUpdate +
// AdjustStock so the row stays lock-guarded; there is no primitive that
// overwrites stock with an absolute value.
package store

import (
	"context"
	"errors"
	"time"

	"backoffice-service/models"
)

// ErrNotFound is returned by lookups for a missing row. Implementations
// must return it (possibly wrapped) rather than a driver-specific error.
var ErrNotFound = errors.New("record not found")

// Tx is the handle for one transaction scope. All reads and writes made
// through it become visible atomically on commit, or not at all.
type Tx interface {
	// ProductForUpdate reads a product under an exclusive row lock held
	// until the transaction ends (SELECT ... FOR UPDATE semantics).
	ProductForUpdate(ctx context.Context, id int) (*models.Product, error)
	// AdjustStock adds delta (which may be negative) to the product's
	// stock. Callers must hold the row lock via ProductForUpdate first.
	AdjustStock(ctx context.Context, id int, delta int) error

	InsertOrder(ctx context.Context, username string, total float64, createdAt time.Time) (int, error)
	Order(ctx context.Context, id int) (*models.Order, error)
	SetOrderTotal(ctx context.Context, orderID int, total float64) error
	AddOrderTotal(ctx context.Context, orderID int, delta float64, updatedAt time.Time) error
	DeleteOrder(ctx context.Context, id int) error

	InsertLineItem(ctx context.Context, orderID, productID, quantity int, subtotal float64) (int, error)
	LineItem(ctx context.Context, id int) (*models.OrderLineItem, error)
	LineItemsByOrder(ctx context.Context, orderID int) ([]models.OrderLineItem, error)
	UpdateLineItem(ctx context.Context, id, quantity int, subtotal float64) error
	DeleteLineItem(ctx context.Context, id int) error
}

// Store opens transaction scopes. WithinTx commits iff fn returns nil;
// any error rolls back every write made through the Tx.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}
