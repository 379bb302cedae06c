package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"backoffice-service/apperrors"
	"backoffice-service/models"
	"backoffice-service/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserFinder map[string]bool

func (s stubUserFinder) Exists(_ context.Context, username string) (bool, error) {
	return s[username], nil
}

func newTestOrderService(st *memstore.Store) *OrderService {
	return NewOrderService(st, stubUserFinder{"alice": true, "bob": true}, nil, nil, nil)
}

func TestCreateOrderReservesStockAndComputesTotal(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 100})
	svc := newTestOrderService(st)

	order, err := svc.Create(context.Background(), models.CreateOrderRequest{
		Username: "alice",
		LineItems: []models.OrderLineItemRequest{
			{ProductID: 1, Quantity: 100, Price: 3500},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(350000), order.Total)
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, 100, order.LineItems[0].Quantity)
	assert.Equal(t, float64(350000), order.LineItems[0].Subtotal)
	assert.Equal(t, "Espresso Machine", order.LineItems[0].Product.Name)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 0, product.Stock)

	persisted, ok := st.OrderByID(order.ID)
	require.True(t, ok)
	assert.Equal(t, float64(350000), persisted.Total)
	assert.Nil(t, persisted.UpdatedAt)
}

func TestCreateOrderUsesLockedPriceNotClientHint(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Grinder", Price: 200, Stock: 10})
	svc := newTestOrderService(st)

	order, err := svc.Create(context.Background(), models.CreateOrderRequest{
		Username: "alice",
		LineItems: []models.OrderLineItemRequest{
			{ProductID: 1, Quantity: 2, Price: 1}, // hint disagrees with the row
		},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(400), order.Total)
}

func TestCreateOrderInsufficientStockRollsBackEverything(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 100})
	svc := newTestOrderService(st)

	_, err := svc.Create(context.Background(), models.CreateOrderRequest{
		Username: "alice",
		LineItems: []models.OrderLineItemRequest{
			{ProductID: 1, Quantity: 150, Price: 3500},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not have enough stock for 150")

	product, _ := st.ProductByID(1)
	assert.Equal(t, 100, product.Stock, "failed order must not decrement stock")
	assert.Equal(t, 0, st.OrderCount(), "failed order must not persist a header")
}

func TestCreateOrderMultiItemAllOrNothing(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 100})
	st.SeedProduct(models.Product{ID: 2, Name: "Filter Paper", Price: 10, Stock: 3})
	svc := newTestOrderService(st)

	_, err := svc.Create(context.Background(), models.CreateOrderRequest{
		Username: "alice",
		LineItems: []models.OrderLineItemRequest{
			{ProductID: 1, Quantity: 5},  // would succeed alone
			{ProductID: 2, Quantity: 50}, // insufficient
		},
	})
	require.Error(t, err)

	first, _ := st.ProductByID(1)
	second, _ := st.ProductByID(2)
	assert.Equal(t, 100, first.Stock)
	assert.Equal(t, 3, second.Stock)
	assert.Equal(t, 0, st.OrderCount())
}

func TestCreateOrderAggregatesAllItemFailures(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 2, Name: "Filter Paper", Price: 10, Stock: 3})
	svc := newTestOrderService(st)

	_, err := svc.Create(context.Background(), models.CreateOrderRequest{
		Username: "alice",
		LineItems: []models.OrderLineItemRequest{
			{ProductID: 9999, Quantity: 1},
			{ProductID: 2, Quantity: 50},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Product with ID 9999 not found")
	assert.Contains(t, err.Error(), "Filter Paper does not have enough stock for 50")
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	st := memstore.New()
	svc := newTestOrderService(st)

	_, err := svc.Create(context.Background(), models.CreateOrderRequest{
		Username: "alice",
		LineItems: []models.OrderLineItemRequest{
			{ProductID: 9999, Quantity: 1, Price: 100},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Product with ID 9999 not found")
	assert.Equal(t, 0, st.OrderCount())
}

func TestCreateOrderUnknownUser(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 100})
	svc := newTestOrderService(st)

	_, err := svc.Create(context.Background(), models.CreateOrderRequest{
		Username: "mallory",
		LineItems: []models.OrderLineItemRequest{
			{ProductID: 1, Quantity: 1},
		},
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "User not found", appErr.Message)
}

func TestCreateOrderRejectsEmptyLineItems(t *testing.T) {
	svc := newTestOrderService(memstore.New())

	_, err := svc.Create(context.Background(), models.CreateOrderRequest{Username: "alice"})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
}

func TestConcurrentOrdersDoNotOversell(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 100})
	svc := newTestOrderService(st)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), models.CreateOrderRequest{
				Username: "alice",
				LineItems: []models.OrderLineItemRequest{
					{ProductID: 1, Quantity: 60},
				},
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, failed int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			failed++
			assert.Contains(t, err.Error(), "does not have enough stock")
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 40, product.Stock)
}

func TestOrderDeleteReleasesStock(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 100})
	svc := newTestOrderService(st)

	order, err := svc.Create(context.Background(), models.CreateOrderRequest{
		Username: "alice",
		LineItems: []models.OrderLineItemRequest{
			{ProductID: 1, Quantity: 25},
		},
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, deleted.ID)
	require.Len(t, deleted.LineItems, 1)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 100, product.Stock)

	_, ok := st.OrderByID(order.ID)
	assert.False(t, ok)
}

func TestOrderDeleteNotFound(t *testing.T) {
	svc := newTestOrderService(memstore.New())

	_, err := svc.Delete(context.Background(), 42)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}
