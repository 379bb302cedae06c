package services

import (
	"context"
	"sync"
	"testing"

	"backoffice-service/apperrors"
	"backoffice-service/models"
	"backoffice-service/store"
	"backoffice-service/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveReturnsPreDecrementSnapshot(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 100})

	err := st.WithinTx(context.Background(), func(tx store.Tx) error {
		product, resErr := reserveStock(context.Background(), tx, 1, 10)
		require.Nil(t, resErr)
		assert.Equal(t, 100, product.Stock, "snapshot is taken before the decrement")
		return nil
	})
	require.NoError(t, err)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 90, product.Stock)
}

func TestReserveThenReleaseRoundTrips(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 42})

	err := st.WithinTx(context.Background(), func(tx store.Tx) error {
		if _, resErr := reserveStock(context.Background(), tx, 1, 7); resErr != nil {
			return resErr
		}
		if _, relErr := releaseStock(context.Background(), tx, 1, 7); relErr != nil {
			return relErr
		}
		return nil
	})
	require.NoError(t, err)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 42, product.Stock)
}

func TestReserveInsufficientStock(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 2})

	err := st.WithinTx(context.Background(), func(tx store.Tx) error {
		_, resErr := reserveStock(context.Background(), tx, 1, 3)
		require.NotNil(t, resErr)
		assert.Equal(t, apperrors.KindInsufficientStock, resErr.Kind)
		assert.Equal(t, "Espresso Machine does not have enough stock for 3, only 2 available", resErr.Message)
		return resErr
	})
	require.Error(t, err)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 2, product.Stock)
}

func TestReserveUnknownProduct(t *testing.T) {
	st := memstore.New()

	_ = st.WithinTx(context.Background(), func(tx store.Tx) error {
		_, resErr := reserveStock(context.Background(), tx, 404, 1)
		require.NotNil(t, resErr)
		assert.Equal(t, apperrors.KindNotFound, resErr.Kind)
		return nil
	})
}

func TestReserveRejectsNonPositiveQuantity(t *testing.T) {
	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 5})

	_ = st.WithinTx(context.Background(), func(tx store.Tx) error {
		for _, quantity := range []int{0, -3} {
			_, resErr := reserveStock(context.Background(), tx, 1, quantity)
			require.NotNil(t, resErr)
			assert.Equal(t, apperrors.KindValidation, resErr.Kind)
		}
		return nil
	})
}

// Concurrent reservations must drain stock to exactly zero: enough calls
// succeed to exhaust it, the rest fail, and nothing is lost or oversold.
func TestConcurrentReservationsExhaustStockExactly(t *testing.T) {
	const (
		initialStock = 10
		callers      = 25
	)

	st := memstore.New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: initialStock})

	var wg sync.WaitGroup
	results := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- st.WithinTx(context.Background(), func(tx store.Tx) error {
				if _, resErr := reserveStock(context.Background(), tx, 1, 1); resErr != nil {
					return resErr
				}
				return nil
			})
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, insufficient int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.KindInsufficientStock, appErr.Kind)
		insufficient++
	}

	assert.Equal(t, initialStock, succeeded)
	assert.Equal(t, callers-initialStock, insufficient)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 0, product.Stock)
}
