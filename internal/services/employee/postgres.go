package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"restorder/internal/database"
	"restorder/internal/models"
)

// Repository is the pgx-backed user store.
type Repository struct {
	db *database.DB
}

// NewRepository creates an employee repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// GetUserByUsername fetches a user record, or models.ErrNotFound.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, database.GetUserByUsernameSQL, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
