package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice-service/models"
	"backoffice-service/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTxCommitsOnNil(t *testing.T) {
	st := New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 10})

	err := st.WithinTx(context.Background(), func(tx store.Tx) error {
		if err := tx.AdjustStock(context.Background(), 1, -4); err != nil {
			return err
		}
		_, err := tx.InsertOrder(context.Background(), "alice", 14000, time.Now())
		return err
	})
	require.NoError(t, err)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 6, product.Stock)
	assert.Equal(t, 1, st.OrderCount())
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	st := New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 10})

	boom := errors.New("boom")
	err := st.WithinTx(context.Background(), func(tx store.Tx) error {
		if err := tx.AdjustStock(context.Background(), 1, -4); err != nil {
			return err
		}
		if _, err := tx.InsertOrder(context.Background(), "alice", 14000, time.Now()); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 10, product.Stock, "rollback must restore stock")
	assert.Equal(t, 0, st.OrderCount(), "rollback must discard the order")
}

func TestAdjustStockRefusesNegativeResult(t *testing.T) {
	st := New()
	st.SeedProduct(models.Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 3})

	err := st.WithinTx(context.Background(), func(tx store.Tx) error {
		return tx.AdjustStock(context.Background(), 1, -4)
	})
	require.Error(t, err)

	product, _ := st.ProductByID(1)
	assert.Equal(t, 3, product.Stock)
}

func TestLookupsReturnNotFound(t *testing.T) {
	st := New()

	_ = st.WithinTx(context.Background(), func(tx store.Tx) error {
		_, err := tx.ProductForUpdate(context.Background(), 7)
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = tx.Order(context.Background(), 7)
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = tx.LineItem(context.Background(), 7)
		assert.ErrorIs(t, err, store.ErrNotFound)

		return nil
	})
}

func TestLineItemsByOrderFiltersAndSorts(t *testing.T) {
	st := New()
	st.SeedLineItem(models.OrderLineItem{ID: 3, OrderID: 1, ProductID: 1, Quantity: 1, Subtotal: 10})
	st.SeedLineItem(models.OrderLineItem{ID: 1, OrderID: 1, ProductID: 2, Quantity: 2, Subtotal: 20})
	st.SeedLineItem(models.OrderLineItem{ID: 2, OrderID: 9, ProductID: 3, Quantity: 3, Subtotal: 30})

	_ = st.WithinTx(context.Background(), func(tx store.Tx) error {
		items, err := tx.LineItemsByOrder(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, 1, items[0].ID)
		assert.Equal(t, 3, items[1].ID)
		return nil
	})
}
