package employee

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"restorder/internal/logger"
	"restorder/internal/models"
)

// Store is the storage surface the employee console needs.
type Store interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service authenticates employees. Passwords are verified against stored
// bcrypt hashes; plaintext is never persisted or logged.
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService creates an employee service.
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
	}
}

// Authenticate verifies the username and password. It returns false for an
// unknown username or a mismatched password, true only on a verified hash
// match. Storage failures are returned as errors.
func (s *Service) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, nil
		}
		return false, &models.PersistenceError{Op: "get user", Err: err}
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil, nil
}
