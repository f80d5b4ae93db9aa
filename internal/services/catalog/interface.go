package catalog

import (
	"context"

	"restorder/internal/models"
)

// Store is the storage surface the catalog needs.
type Store interface {
	ListMenu(ctx context.Context) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error)
}
