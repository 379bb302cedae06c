package services

import (
	"context"
	"errors"
	"testing"

	"backoffice-service/apperrors"
	"backoffice-service/models"
	"backoffice-service/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedOrderWithItem reproduces the state after an order for one unit was
// placed against a product that started with stock 100 at price 3500.
func seedOrderWithItem(st *memstore.Store) {
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 99})
	st.SeedOrder(models.Order{ID: 1, Username: "alice", Total: 3500})
	st.SeedLineItem(models.OrderLineItem{ID: 1, OrderID: 1, ProductID: 1, Quantity: 1, Subtotal: 3500})
}

func newTestLineItemService(st *memstore.Store) *LineItemService {
	return NewLineItemService(st, nil, nil, nil)
}

func TestUpdateLineItemQuantity(t *testing.T) {
	st := memstore.New()
	seedOrderWithItem(st)
	svc := newTestLineItemService(st)

	updated, err := svc.Update(context.Background(), 1, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, float64(10500), updated.Subtotal)
	assert.Equal(t, "Espresso Machine", updated.Product.Name)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 97, product.Stock)

	order, _ := st.OrderByID(1)
	assert.Equal(t, float64(10500), order.Total)
	assert.NotNil(t, order.UpdatedAt)
}

func TestUpdateLineItemShrinkReturnsStock(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 90})
	st.SeedOrder(models.Order{ID: 1, Username: "alice", Total: 35000})
	st.SeedLineItem(models.OrderLineItem{ID: 1, OrderID: 1, ProductID: 1, Quantity: 10, Subtotal: 35000})
	svc := newTestLineItemService(st)

	updated, err := svc.Update(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, float64(14000), updated.Subtotal)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 96, product.Stock)

	order, _ := st.OrderByID(1)
	assert.Equal(t, float64(14000), order.Total)
}

// Growing a line item is judged against current stock plus the item's own
// reservation, so an update that is a net no-op on availability succeeds
// even when raw stock is tight.
func TestUpdateLineItemCreditsOwnReservation(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 0})
	st.SeedOrder(models.Order{ID: 1, Username: "alice", Total: 17500})
	st.SeedLineItem(models.OrderLineItem{ID: 1, OrderID: 1, ProductID: 1, Quantity: 5, Subtotal: 17500})
	svc := newTestLineItemService(st)

	updated, err := svc.Update(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 0, product.Stock)
}

func TestUpdateLineItemInsufficientStock(t *testing.T) {
	st := memstore.New()
	seedOrderWithItem(st)
	svc := newTestLineItemService(st)

	_, err := svc.Update(context.Background(), 1, 101)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindInsufficientStock, appErr.Kind)

	// Nothing moved.
	product, _ := st.ProductByID(1)
	assert.Equal(t, 99, product.Stock)
	lineItem, _ := st.LineItemByID(1)
	assert.Equal(t, 1, lineItem.Quantity)
	order, _ := st.OrderByID(1)
	assert.Equal(t, float64(3500), order.Total)
}

func TestUpdateLineItemNotFound(t *testing.T) {
	svc := newTestLineItemService(memstore.New())

	_, err := svc.Update(context.Background(), 7, 3)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "Order line item not found", appErr.Message)
}

func TestUpdateLineItemRejectsNegativeQuantity(t *testing.T) {
	st := memstore.New()
	seedOrderWithItem(st)
	svc := newTestLineItemService(st)

	_, err := svc.Update(context.Background(), 1, -1)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
}

func TestDeleteLineItemRestoresStockAndTotal(t *testing.T) {
	st := memstore.New()
	seedOrderWithItem(st)
	svc := newTestLineItemService(st)

	// Scenario: grow to 3 first, then delete.
	_, err := svc.Update(context.Background(), 1, 3)
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted.Quantity)
	assert.Equal(t, float64(10500), deleted.Subtotal)
	assert.Equal(t, "Espresso Machine", deleted.Product.Name)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 100, product.Stock)

	order, _ := st.OrderByID(1)
	assert.Equal(t, float64(0), order.Total)

	_, ok := st.LineItemByID(1)
	assert.False(t, ok)

	_, err = svc.Delete(context.Background(), 1)
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}

func TestCreateLineItemAppendsToOrder(t *testing.T) {
	st := memstore.New()
	seedOrderWithItem(st)
	st.SeedProduct(models.Product{ID: 2, Name: "Filter Paper", Price: 10, Stock: 50})
	svc := newTestLineItemService(st)

	created, err := svc.Create(context.Background(), models.CreateLineItemRequest{
		OrderID:   1,
		ProductID: 2,
		Quantity:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(50), created.Subtotal)
	assert.Equal(t, 1, created.OrderID)

	product, _ := st.ProductByID(2)
	assert.Equal(t, 45, product.Stock)

	order, _ := st.OrderByID(1)
	assert.Equal(t, float64(3550), order.Total, "append must raise the order total by the subtotal")
}

func TestCreateLineItemOrderNotFound(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 2, Name: "Filter Paper", Price: 10, Stock: 50})
	svc := newTestLineItemService(st)

	_, err := svc.Create(context.Background(), models.CreateLineItemRequest{
		OrderID:   9,
		ProductID: 2,
		Quantity:  5,
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)

	product, _ := st.ProductByID(2)
	assert.Equal(t, 50, product.Stock)
}

func TestCreateLineItemInsufficientStockRollsBack(t *testing.T) {
	st := memstore.New()
	seedOrderWithItem(st)
	st.SeedProduct(models.Product{ID: 2, Name: "Filter Paper", Price: 10, Stock: 3})
	svc := newTestLineItemService(st)

	_, err := svc.Create(context.Background(), models.CreateLineItemRequest{
		OrderID:   1,
		ProductID: 2,
		Quantity:  10,
	})
	require.Error(t, err)

	order, _ := st.OrderByID(1)
	assert.Equal(t, float64(3500), order.Total)
	product, _ := st.ProductByID(2)
	assert.Equal(t, 3, product.Stock)
}
