package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"restorder/internal/database"
	"restorder/internal/models"
)

// Repository is the pgx-backed catalog store.
type Repository struct {
	db *database.DB
}

// NewRepository creates a catalog repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// ListMenu returns all menu items ordered by id.
func (r *Repository) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, database.ListMenuSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Photo); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetMenuItem returns a single menu item, or models.ErrNotFound.
func (r *Repository) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.QueryRow(ctx, database.GetMenuItemSQL, id).
		Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Photo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
