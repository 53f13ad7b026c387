package delivery_test

import (
	"context"
	"fmt"
	"sync"

	"service-lastmile/internal/apperr"
	"service-lastmile/internal/domain"
	"service-lastmile/internal/ports/deliverytx"
)

// memStore is a transactional in-memory store. Transactions run one at a time,
// which stands in for the row lock, and staged writes are dropped on error.
type memStore struct {
	mu      sync.Mutex
	rows    map[string]domain.Delivery
	saveErr error
	commits int
}

func newMemStore(ds ...*domain.Delivery) *memStore {
	m := &memStore{rows: make(map[string]domain.Delivery)}
	for _, d := range ds {
		m.rows[d.ID] = *d
	}
	return m
}

func (m *memStore) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{store: m, staged: make(map[string]domain.Delivery)}
	if err := fn(tx); err != nil {
		return err
	}
	for id, d := range tx.staged {
		m.rows[id] = d
	}
	m.commits++
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (*domain.Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memStore) GetByOrderID(_ context.Context, orderID string) (*domain.Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.rows {
		if d.OrderID == orderID {
			return &d, nil
		}
	}
	return nil, nil
}

// row returns the committed state of a delivery.
func (m *memStore) row(id string) domain.Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func (m *memStore) commitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

type memTx struct {
	store  *memStore
	staged map[string]domain.Delivery
}

func (t *memTx) lookup(id string) (domain.Delivery, bool) {
	if d, ok := t.staged[id]; ok {
		return d, true
	}
	d, ok := t.store.rows[id]
	return d, ok
}

func (t *memTx) Get(_ context.Context, id string) (*domain.Delivery, error) {
	d, ok := t.lookup(id)
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (t *memTx) GetByOrderID(_ context.Context, orderID string) (*domain.Delivery, error) {
	for id := range t.store.rows {
		if d, _ := t.lookup(id); d.OrderID == orderID {
			return &d, nil
		}
	}
	for _, d := range t.staged {
		if d.OrderID == orderID {
			return &d, nil
		}
	}
	return nil, nil
}

func (t *memTx) Save(_ context.Context, d *domain.Delivery) error {
	if t.store.saveErr != nil {
		return t.store.saveErr
	}
	for id := range t.store.rows {
		if other, _ := t.lookup(id); id != d.ID && other.OrderID == d.OrderID {
			return fmt.Errorf("save delivery: %w", apperr.ErrAlreadyExists)
		}
	}
	t.staged[d.ID] = *d
	return nil
}

var _ deliverytx.Repository = (*memTx)(nil)
