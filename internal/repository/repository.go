package repository

import (
	"context"
	"errors"

	"grubdash/internal/domain"
)

// ErrNotFound is returned when a record is absent from the store.
var ErrNotFound = errors.New("not found")

// DishRepository is the dish collection.
type DishRepository interface {
	Find(ctx context.Context, id string) (domain.Dish, error)
	Append(ctx context.Context, d domain.Dish) error
	Update(ctx context.Context, d domain.Dish) error
	List(ctx context.Context) ([]domain.Dish, error)
}

// OrderRepository is the order collection.
type OrderRepository interface {
	Find(ctx context.Context, id string) (domain.Order, error)
	Append(ctx context.Context, o domain.Order) error
	Update(ctx context.Context, o domain.Order) error
	// Remove deletes the record with the given id and reports whether a
	// record was actually removed.
	Remove(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]domain.Order, error)
}

// IDGenerator hands out unique opaque identifiers for new records.
type IDGenerator interface {
	Next() string
}
