package services

import (
	"context"
	"errors"

	"backoffice-service/apperrors"
	"backoffice-service/models"
	"backoffice-service/store"
)

// reserveStock locks the product row, verifies availability and decrements
// stock by quantity, all inside the caller's transaction. On success it
// returns the pre-decrement product snapshot; the lock stays held until the
// enclosing transaction ends, so check and decrement cannot race with a
// concurrent reservation of the same product.
func reserveStock(ctx context.Context, tx store.Tx, productID, quantity int) (*models.Product, *apperrors.Error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("quantity must be positive, got %d", quantity)
	}

	product, err := tx.ProductForUpdate(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Product with ID %d not found", productID)
		}
		return nil, apperrors.Internal(err)
	}

	if product.Stock < quantity {
		return nil, apperrors.InsufficientStock(product.Name, quantity, product.Stock)
	}

	if err := tx.AdjustStock(ctx, productID, -quantity); err != nil {
		return nil, apperrors.Internal(err)
	}
	return product, nil
}

// releaseStock returns quantity units to the product. The row lock is still
// taken so a release cannot be lost under a concurrent reservation; there
// is no upper bound to check on an increment.
func releaseStock(ctx context.Context, tx store.Tx, productID, quantity int) (*models.Product, *apperrors.Error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("quantity must be positive, got %d", quantity)
	}

	product, err := tx.ProductForUpdate(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Product with ID %d not found", productID)
		}
		return nil, apperrors.Internal(err)
	}

	if err := tx.AdjustStock(ctx, productID, quantity); err != nil {
		return nil, apperrors.Internal(err)
	}
	return product, nil
}
