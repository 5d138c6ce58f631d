package repository

import (
	"context"
	"sync"

	"grubdash/internal/domain"
)

// MemoryStore holds both collections in memory. Slices keep insertion order
// for list responses; one RWMutex serializes writers across both collections
// so the store stays safe under a multi-worker HTTP host.
type MemoryStore struct {
	mu     sync.RWMutex
	dishes []domain.Dish
	orders []domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		dishes: make([]domain.Dish, 0),
		orders: make([]domain.Order, 0),
	}
}

var _ DishRepository = (*MemoryStore)(nil)

// DishRepository implementation

func (m *MemoryStore) Find(_ context.Context, id string) (domain.Dish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.dishes {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Dish{}, ErrNotFound
}

func (m *MemoryStore) Append(_ context.Context, d domain.Dish) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dishes = append(m.dishes, d)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, d domain.Dish) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.dishes {
		if m.dishes[i].ID == d.ID {
			m.dishes[i] = d
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) List(_ context.Context) ([]domain.Dish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Dish, len(m.dishes))
	copy(out, m.dishes)
	return out, nil
}

// MemoryOrders is the order collection on the shared store.
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Find(_ context.Context, id string) (domain.Order, error) {
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	for _, o := range mo.store.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, ErrNotFound
}

func (mo *MemoryOrders) Append(_ context.Context, o domain.Order) error {
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	mo.store.orders = append(mo.store.orders, o)
	return nil
}

func (mo *MemoryOrders) Update(_ context.Context, o domain.Order) error {
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	for i := range mo.store.orders {
		if mo.store.orders[i].ID == o.ID {
			mo.store.orders[i] = o
			return nil
		}
	}
	return ErrNotFound
}

func (mo *MemoryOrders) Remove(_ context.Context, id string) (bool, error) {
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	for i := range mo.store.orders {
		if mo.store.orders[i].ID == id {
			mo.store.orders = append(mo.store.orders[:i], mo.store.orders[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (mo *MemoryOrders) List(_ context.Context) ([]domain.Order, error) {
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	out := make([]domain.Order, len(mo.store.orders))
	copy(out, mo.store.orders)
	return out, nil
}
