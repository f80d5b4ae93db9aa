package catalog

import (
	"context"
	"errors"
	"fmt"

	"restorder/internal/logger"
	"restorder/internal/models"
)

// Service provides read-only access to the menu catalog.
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService creates a catalog service.
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
	}
}

// List returns all menu items. A storage failure degrades to an empty list
// so the menu page still renders; the failure is logged.
func (s *Service) List(ctx context.Context, requestID string) []models.MenuItem {
	items, err := s.store.ListMenu(ctx)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to fetch menu items", requestID, err, nil)
		return []models.MenuItem{}
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	return items
}

// Get returns a single menu item. Returns models.ErrNotFound for an unknown
// id and a PersistenceError for storage failures.
func (s *Service) Get(ctx context.Context, id int64) (*models.MenuItem, error) {
	item, err := s.store.GetMenuItem(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("menu item %d: %w", id, models.ErrNotFound)
		}
		return nil, &models.PersistenceError{Op: "get menu item", Err: err}
	}
	return item, nil
}
