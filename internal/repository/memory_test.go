package repository

import (
	"context"
	"testing"

	"grubdash/internal/domain"
)

func TestMemoryStore_DishCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	d := domain.Dish{ID: "d1", Name: "Taco", Description: "d", Price: 5, ImageURL: "u"}
	if err := store.Append(ctx, d); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := store.Find(ctx, "d1")
	if err != nil || got.Name != "Taco" {
		t.Fatalf("find: %v %v", got, err)
	}

	d.Price = 7
	if err := store.Update(ctx, d); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = store.Find(ctx, "d1")
	if got.Price != 7 {
		t.Fatalf("update not applied: %v", got.Price)
	}

	if _, err := store.Find(ctx, "nope"); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Update(ctx, domain.Dish{ID: "nope"}); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStore_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, id := range []string{"z", "a", "m"} {
		if err := store.Append(ctx, domain.Dish{ID: id}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != "z" || list[1].ID != "a" || list[2].ID != "m" {
		t.Fatalf("order not preserved: %v", list)
	}
}

func TestMemoryOrders_CRUDAndRemove(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewMemoryOrders(store)

	o := domain.Order{ID: "o1", DeliverTo: "1 Main", MobileNumber: "555", Status: domain.OrderStatusPending}
	if err := orders.Append(ctx, o); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := orders.Find(ctx, "o1")
	if err != nil || got.DeliverTo != "1 Main" {
		t.Fatalf("find: %v %v", got, err)
	}

	o.Status = domain.OrderStatusPreparing
	if err := orders.Update(ctx, o); err != nil {
		t.Fatalf("update: %v", err)
	}

	removed, err := orders.Remove(ctx, "o1")
	if err != nil || !removed {
		t.Fatalf("remove: %v %v", removed, err)
	}
	if _, err := orders.Find(ctx, "o1"); err != ErrNotFound {
		t.Fatalf("expected not found after remove, got %v", err)
	}

	// removing an absent id reports false, not an error
	removed, err = orders.Remove(ctx, "o1")
	if err != nil || removed {
		t.Fatalf("second remove: %v %v", removed, err)
	}
}

func TestMemoryOrders_RemoveKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewMemoryOrders(store)

	for _, id := range []string{"o1", "o2", "o3"} {
		if err := orders.Append(ctx, domain.Order{ID: id}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if _, err := orders.Remove(ctx, "o2"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	list, err := orders.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "o1" || list[1].ID != "o3" {
		t.Fatalf("order not preserved after remove: %v", list)
	}
}

func TestUUIDGenerator_Unique(t *testing.T) {
	gen := UUIDGenerator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Next()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id: %q", id)
		}
		seen[id] = true
	}
}
