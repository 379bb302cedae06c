package services

import (
	"context"
	"errors"
	"log"
	"time"

	"backoffice-service/apperrors"
	"backoffice-service/models"
	"backoffice-service/repositories"
	"backoffice-service/store"
)

type LineItemService struct {
	store  store.Store
	items  *repositories.LineItemRepository
	events EventPublisher
	cache  ProductInvalidator
}

func NewLineItemService(st store.Store, items *repositories.LineItemRepository, events EventPublisher, cache ProductInvalidator) *LineItemService {
	return &LineItemService{store: st, items: items, events: events, cache: cache}
}

// Create appends a line item to an existing order, reserving stock and
// adding the subtotal to the order total in the same transaction.
func (s *LineItemService) Create(ctx context.Context, req models.CreateLineItemRequest) (*models.OrderLineItem, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.Validation("quantity must be positive, got %d", req.Quantity)
	}

	var (
		created models.OrderLineItem
		event   models.OrderEvent
	)
	err := s.store.WithinTx(ctx, func(tx store.Tx) error {
		order, err := tx.Order(ctx, req.OrderID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.NotFound("Order with ID %d not found", req.OrderID)
			}
			return err
		}

		product, resErr := reserveStock(ctx, tx, req.ProductID, req.Quantity)
		if resErr != nil {
			return resErr
		}

		now := time.Now()
		subtotal := product.Price * float64(req.Quantity)
		lineItemID, err := tx.InsertLineItem(ctx, req.OrderID, req.ProductID, req.Quantity, subtotal)
		if err != nil {
			return err
		}
		if err := tx.AddOrderTotal(ctx, req.OrderID, subtotal, now); err != nil {
			return err
		}

		created = models.OrderLineItem{
			ID:        lineItemID,
			OrderID:   req.OrderID,
			ProductID: req.ProductID,
			Product:   &models.ProductRef{ID: product.ID, Name: product.Name, Price: product.Price},
			Quantity:  req.Quantity,
			Subtotal:  subtotal,
		}
		event = models.OrderEvent{
			OrderID:  req.OrderID,
			Username: order.Username,
			Type:     "line_item_created",
			Total:    order.Total + subtotal,
			Occurred: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(event)
	s.invalidate(ctx, created.ProductID)

	return &created, nil
}

// Update changes a line item's quantity. Availability is judged against
// the stock the item would see if its current reservation were handed
// back first, and the adjustment applied is the delta between the old and
// new quantity, so shrinking an item always returns stock.
func (s *LineItemService) Update(ctx context.Context, id, quantity int) (*models.OrderLineItem, error) {
	if quantity < 0 {
		return nil, apperrors.Validation("quantity must not be negative, got %d", quantity)
	}

	var (
		updated models.OrderLineItem
		event   models.OrderEvent
	)
	err := s.store.WithinTx(ctx, func(tx store.Tx) error {
		lineItem, err := tx.LineItem(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.NotFound("Order line item not found")
			}
			return err
		}

		product, err := tx.ProductForUpdate(ctx, lineItem.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.NotFound("Product with ID %d not found", lineItem.ProductID)
			}
			return err
		}

		available := product.Stock + lineItem.Quantity
		if quantity > available {
			return apperrors.InsufficientStock(product.Name, quantity, available)
		}

		if delta := quantity - lineItem.Quantity; delta != 0 {
			if err := tx.AdjustStock(ctx, product.ID, -delta); err != nil {
				return err
			}
		}

		now := time.Now()
		subtotal := product.Price * float64(quantity)
		if err := tx.UpdateLineItem(ctx, id, quantity, subtotal); err != nil {
			return err
		}
		if err := tx.AddOrderTotal(ctx, lineItem.OrderID, subtotal-lineItem.Subtotal, now); err != nil {
			return err
		}

		order, err := tx.Order(ctx, lineItem.OrderID)
		if err != nil {
			return err
		}

		updated = models.OrderLineItem{
			ID:        id,
			OrderID:   lineItem.OrderID,
			ProductID: product.ID,
			Product:   &models.ProductRef{ID: product.ID, Name: product.Name, Price: product.Price},
			Quantity:  quantity,
			Subtotal:  subtotal,
		}
		event = models.OrderEvent{
			OrderID:  order.ID,
			Username: order.Username,
			Type:     "line_item_updated",
			Total:    order.Total,
			Occurred: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(event)
	s.invalidate(ctx, updated.ProductID)

	return &updated, nil
}

// Delete is the structural inverse of creation: stock returns to the
// product, the stored subtotal leaves the order total, and the row is
// removed. The deleted snapshot is returned for confirmation.
func (s *LineItemService) Delete(ctx context.Context, id int) (*models.OrderLineItem, error) {
	var (
		deleted models.OrderLineItem
		event   models.OrderEvent
	)
	err := s.store.WithinTx(ctx, func(tx store.Tx) error {
		lineItem, err := tx.LineItem(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.NotFound("Order line item not found")
			}
			return err
		}

		product, relErr := releaseStock(ctx, tx, lineItem.ProductID, lineItem.Quantity)
		if relErr != nil {
			return relErr
		}

		now := time.Now()
		if err := tx.AddOrderTotal(ctx, lineItem.OrderID, -lineItem.Subtotal, now); err != nil {
			return err
		}
		if err := tx.DeleteLineItem(ctx, id); err != nil {
			return err
		}

		order, err := tx.Order(ctx, lineItem.OrderID)
		if err != nil {
			return err
		}

		deleted = *lineItem
		deleted.Product = &models.ProductRef{ID: product.ID, Name: product.Name, Price: product.Price}
		event = models.OrderEvent{
			OrderID:  order.ID,
			Username: order.Username,
			Type:     "line_item_deleted",
			Total:    order.Total,
			Occurred: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(event)
	s.invalidate(ctx, deleted.ProductID)

	return &deleted, nil
}

func (s *LineItemService) Get(ctx context.Context, id int) (*models.OrderLineItem, error) {
	lineItem, err := s.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Order line item not found")
		}
		return nil, apperrors.Internal(err)
	}
	return lineItem, nil
}

func (s *LineItemService) List(ctx context.Context, page, limit, orderID int) ([]models.OrderLineItem, models.Pagination, error) {
	items, total, err := s.items.List(ctx, page, limit, orderID)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}
	return items, models.Pagination{Total: total, Page: page, Limit: limit}, nil
}

func (s *LineItemService) publish(event models.OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(event); err != nil {
		log.Printf("Failed to publish %s event for order %d: %v", event.Type, event.OrderID, err)
	}
}

func (s *LineItemService) invalidate(ctx context.Context, productID int) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidateProducts(ctx, productID)
}
