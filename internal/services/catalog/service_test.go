package catalog

import (
	"context"
	"errors"
	"testing"

	"restorder/internal/logger"
	"restorder/internal/models"
)

type fakeStore struct {
	items map[int64]models.MenuItem
	err   error
}

func (f *fakeStore) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var items []models.MenuItem
	for _, item := range f.items {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeStore) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &item, nil
}

func newService(store *fakeStore) *Service {
	return NewService(store, logger.New("test"))
}

func TestList(t *testing.T) {
	svc := newService(&fakeStore{items: map[int64]models.MenuItem{
		1: {ID: 1, Name: "Nasi Goreng", Price: 10.00},
		2: {ID: 2, Name: "Es Teh", Price: 5.50},
	}})

	items := svc.List(context.Background(), "req-1")
	if len(items) != 2 {
		t.Fatalf("List returned %d items, want 2", len(items))
	}
}

func TestList_DegradesToEmptyOnFailure(t *testing.T) {
	svc := newService(&fakeStore{err: errors.New("connection refused")})

	items := svc.List(context.Background(), "req-1")
	if items == nil {
		t.Fatal("List returned nil, want empty slice")
	}
	if len(items) != 0 {
		t.Fatalf("List returned %d items, want 0", len(items))
	}
}

func TestList_EmptyMenuIsNotNil(t *testing.T) {
	svc := newService(&fakeStore{items: map[int64]models.MenuItem{}})

	if items := svc.List(context.Background(), "req-1"); items == nil {
		t.Fatal("List returned nil, want empty slice")
	}
}

func TestGet(t *testing.T) {
	svc := newService(&fakeStore{items: map[int64]models.MenuItem{
		1: {ID: 1, Name: "Nasi Goreng", Price: 10.00},
	}})

	item, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if item.Name != "Nasi Goreng" {
		t.Errorf("item name = %q, want %q", item.Name, "Nasi Goreng")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := newService(&fakeStore{items: map[int64]models.MenuItem{}})

	_, err := svc.Get(context.Background(), 99)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("error %v is not ErrNotFound", err)
	}
}

func TestGet_StoreFailure(t *testing.T) {
	svc := newService(&fakeStore{err: errors.New("connection refused")})

	_, err := svc.Get(context.Background(), 1)

	var pe *models.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a PersistenceError", err)
	}
	if errors.Is(err, models.ErrNotFound) {
		t.Fatal("storage failure must not read as a miss")
	}
}
