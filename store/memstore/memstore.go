// Package memstore is an in-memory store.Store used by tests. Transactions
// serialize on one mutex and roll back by restoring a snapshot, which gives
// the same observable semantics as the MySQL implementation: atomic
// commits, full rollback on error, and serialized access to contended
// product rows.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"backoffice-service/models"
	"backoffice-service/store"
)

type Store struct {
	mu sync.Mutex

	products  map[int]models.Product
	orders    map[int]models.Order
	lineItems map[int]models.OrderLineItem

	nextOrderID    int
	nextLineItemID int
}

func New() *Store {
	return &Store{
		products:       make(map[int]models.Product),
		orders:         make(map[int]models.Order),
		lineItems:      make(map[int]models.OrderLineItem),
		nextOrderID:    1,
		nextLineItemID: 1,
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	if err := fn(&memTx{s: s}); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

// SeedProduct installs a product row for a test fixture.
func (s *Store) SeedProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *Store) SeedOrder(o models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
	if o.ID >= s.nextOrderID {
		s.nextOrderID = o.ID + 1
	}
}

func (s *Store) SeedLineItem(li models.OrderLineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lineItems[li.ID] = li
	if li.ID >= s.nextLineItemID {
		s.nextLineItemID = li.ID + 1
	}
}

func (s *Store) ProductByID(id int) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

func (s *Store) OrderByID(id int) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) LineItemByID(id int) (models.OrderLineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	li, ok := s.lineItems[id]
	return li, ok
}

func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type state struct {
	products       map[int]models.Product
	orders         map[int]models.Order
	lineItems      map[int]models.OrderLineItem
	nextOrderID    int
	nextLineItemID int
}

func (s *Store) snapshot() state {
	snap := state{
		products:       make(map[int]models.Product, len(s.products)),
		orders:         make(map[int]models.Order, len(s.orders)),
		lineItems:      make(map[int]models.OrderLineItem, len(s.lineItems)),
		nextOrderID:    s.nextOrderID,
		nextLineItemID: s.nextLineItemID,
	}
	for id, p := range s.products {
		snap.products[id] = p
	}
	for id, o := range s.orders {
		snap.orders[id] = o
	}
	for id, li := range s.lineItems {
		snap.lineItems[id] = li
	}
	return snap
}

func (s *Store) restore(snap state) {
	s.products = snap.products
	s.orders = snap.orders
	s.lineItems = snap.lineItems
	s.nextOrderID = snap.nextOrderID
	s.nextLineItemID = snap.nextLineItemID
}

type memTx struct {
	s *Store
}

func (t *memTx) ProductForUpdate(_ context.Context, id int) (*models.Product, error) {
	p, ok := t.s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (t *memTx) AdjustStock(_ context.Context, id int, delta int) error {
	p, ok := t.s.products[id]
	if !ok {
		return store.ErrNotFound
	}
	if p.Stock+delta < 0 {
		// Matches the schema CHECK constraint the MySQL store runs under.
		return fmt.Errorf("stock constraint violated for product %d", id)
	}
	p.Stock += delta
	t.s.products[id] = p
	return nil
}

func (t *memTx) InsertOrder(_ context.Context, username string, total float64, createdAt time.Time) (int, error) {
	id := t.s.nextOrderID
	t.s.nextOrderID++
	t.s.orders[id] = models.Order{
		ID:        id,
		Username:  username,
		Total:     total,
		CreatedAt: createdAt,
	}
	return id, nil
}

func (t *memTx) Order(_ context.Context, id int) (*models.Order, error) {
	o, ok := t.s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := o
	return &copied, nil
}

func (t *memTx) SetOrderTotal(_ context.Context, orderID int, total float64) error {
	o, ok := t.s.orders[orderID]
	if !ok {
		return store.ErrNotFound
	}
	o.Total = total
	t.s.orders[orderID] = o
	return nil
}

func (t *memTx) AddOrderTotal(_ context.Context, orderID int, delta float64, updatedAt time.Time) error {
	o, ok := t.s.orders[orderID]
	if !ok {
		return store.ErrNotFound
	}
	o.Total += delta
	o.UpdatedAt = &updatedAt
	t.s.orders[orderID] = o
	return nil
}

func (t *memTx) DeleteOrder(_ context.Context, id int) error {
	if _, ok := t.s.orders[id]; !ok {
		return store.ErrNotFound
	}
	delete(t.s.orders, id)
	return nil
}

func (t *memTx) InsertLineItem(_ context.Context, orderID, productID, quantity int, subtotal float64) (int, error) {
	id := t.s.nextLineItemID
	t.s.nextLineItemID++
	t.s.lineItems[id] = models.OrderLineItem{
		ID:        id,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		Subtotal:  subtotal,
	}
	return id, nil
}

func (t *memTx) LineItem(_ context.Context, id int) (*models.OrderLineItem, error) {
	li, ok := t.s.lineItems[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := li
	return &copied, nil
}

func (t *memTx) LineItemsByOrder(_ context.Context, orderID int) ([]models.OrderLineItem, error) {
	var items []models.OrderLineItem
	for _, li := range t.s.lineItems {
		if li.OrderID == orderID {
			items = append(items, li)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (t *memTx) UpdateLineItem(_ context.Context, id, quantity int, subtotal float64) error {
	li, ok := t.s.lineItems[id]
	if !ok {
		return store.ErrNotFound
	}
	li.Quantity = quantity
	li.Subtotal = subtotal
	t.s.lineItems[id] = li
	return nil
}

func (t *memTx) DeleteLineItem(_ context.Context, id int) error {
	if _, ok := t.s.lineItems[id]; !ok {
		return store.ErrNotFound
	}
	delete(t.s.lineItems, id)
	return nil
}
