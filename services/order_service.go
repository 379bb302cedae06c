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

// UserFinder answers whether a username exists. The order core checks the
// user before opening its transaction and otherwise trusts the caller as
// already authenticated.
type UserFinder interface {
	Exists(ctx context.Context, username string) (bool, error)
}

// EventPublisher emits an event after a committed order mutation. A failed
// publish is logged by the caller, never rolled back.
type EventPublisher interface {
	PublishOrderEvent(event models.OrderEvent) error
}

// ProductInvalidator drops cached product entries whose stock changed.
type ProductInvalidator interface {
	InvalidateProducts(ctx context.Context, ids ...int)
}

type OrderService struct {
	store  store.Store
	users  UserFinder
	orders *repositories.OrderRepository
	events EventPublisher
	cache  ProductInvalidator
}

func NewOrderService(st store.Store, users UserFinder, orders *repositories.OrderRepository, events EventPublisher, cache ProductInvalidator) *OrderService {
	return &OrderService{store: st, users: users, orders: orders, events: events, cache: cache}
}

// Create places an order with all its line items as one atomic unit. Stock
// is reserved per item under row locks; if any item fails, every write in
// the transaction is rolled back and the per-item failures come back as one
// aggregate error. Subtotals are derived from the price read under lock,
// not from the client's price hint.
func (s *OrderService) Create(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.LineItems) == 0 {
		return nil, apperrors.Validation("order must contain at least one line item")
	}
	for _, item := range req.LineItems {
		if item.Quantity <= 0 {
			return nil, apperrors.Validation("quantity must be positive, got %d", item.Quantity)
		}
	}

	exists, err := s.users.Exists(ctx, req.Username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !exists {
		return nil, apperrors.NotFound("User not found")
	}

	var (
		created    models.Order
		productIDs []int
	)
	err = s.store.WithinTx(ctx, func(tx store.Tx) error {
		now := time.Now()
		orderID, err := tx.InsertOrder(ctx, req.Username, 0, now)
		if err != nil {
			return err
		}

		var (
			itemErrs []*apperrors.Error
			items    []models.OrderLineItem
			total    float64
		)
		for _, item := range req.LineItems {
			product, resErr := reserveStock(ctx, tx, item.ProductID, item.Quantity)
			if resErr != nil {
				itemErrs = append(itemErrs, resErr)
				continue
			}

			subtotal := product.Price * float64(item.Quantity)
			lineItemID, err := tx.InsertLineItem(ctx, orderID, item.ProductID, item.Quantity, subtotal)
			if err != nil {
				return err
			}

			items = append(items, models.OrderLineItem{
				ID:        lineItemID,
				OrderID:   orderID,
				ProductID: item.ProductID,
				Product:   &models.ProductRef{ID: product.ID, Name: product.Name, Price: product.Price},
				Quantity:  item.Quantity,
				Subtotal:  subtotal,
			})
			total += subtotal
			productIDs = append(productIDs, item.ProductID)
		}

		if len(itemErrs) > 0 {
			return apperrors.Aggregate(itemErrs)
		}

		if err := tx.SetOrderTotal(ctx, orderID, total); err != nil {
			return err
		}

		created = models.Order{
			ID:        orderID,
			Username:  req.Username,
			Total:     total,
			CreatedAt: now,
			LineItems: items,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(models.OrderEvent{
		OrderID:  created.ID,
		Username: created.Username,
		Type:     "order_created",
		Total:    created.Total,
		Occurred: time.Now(),
	})
	s.invalidate(ctx, productIDs)

	return &created, nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*models.Order, error) {
	order, err := s.orders.GetWithLineItems(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal(err)
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, page, limit int, username string) ([]models.Order, models.Pagination, error) {
	orders, total, err := s.orders.List(ctx, page, limit, username)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}
	return orders, models.Pagination{Total: total, Page: page, Limit: limit}, nil
}

// Delete removes an order and its line items, returning every reserved
// unit of stock, in one transaction.
func (s *OrderService) Delete(ctx context.Context, id int) (*models.Order, error) {
	var (
		deleted    models.Order
		productIDs []int
	)
	err := s.store.WithinTx(ctx, func(tx store.Tx) error {
		order, err := tx.Order(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.NotFound("Order not found")
			}
			return err
		}

		items, err := tx.LineItemsByOrder(ctx, id)
		if err != nil {
			return err
		}
		for _, li := range items {
			if _, relErr := releaseStock(ctx, tx, li.ProductID, li.Quantity); relErr != nil {
				return relErr
			}
			if err := tx.DeleteLineItem(ctx, li.ID); err != nil {
				return err
			}
			productIDs = append(productIDs, li.ProductID)
		}

		if err := tx.DeleteOrder(ctx, id); err != nil {
			return err
		}

		deleted = *order
		deleted.LineItems = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(models.OrderEvent{
		OrderID:  deleted.ID,
		Username: deleted.Username,
		Type:     "order_deleted",
		Total:    deleted.Total,
		Occurred: time.Now(),
	})
	s.invalidate(ctx, productIDs)

	return &deleted, nil
}

func (s *OrderService) publish(event models.OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(event); err != nil {
		log.Printf("Failed to publish %s event for order %d: %v", event.Type, event.OrderID, err)
	}
}

func (s *OrderService) invalidate(ctx context.Context, productIDs []int) {
	if s.cache == nil || len(productIDs) == 0 {
		return
	}
	s.cache.InvalidateProducts(ctx, productIDs...)
}
