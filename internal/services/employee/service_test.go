package employee

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"restorder/internal/logger"
	"restorder/internal/models"
)

type fakeUserStore struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func newUserStore(t *testing.T, username, password string) *fakeUserStore {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generate hash: %v", err)
	}
	return &fakeUserStore{users: map[string]*models.User{
		username: {ID: 1, Username: username, PasswordHash: string(hash)},
	}}
}

func TestAuthenticate(t *testing.T) {
	store := newUserStore(t, "budi", "rahasia123")
	svc := NewService(store, logger.New("test"))

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{name: "valid credentials", username: "budi", password: "rahasia123", want: true},
		{name: "wrong password", username: "budi", password: "salah", want: false},
		{name: "unknown username", username: "siti", password: "rahasia123", want: false},
		{name: "empty password", username: "budi", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Authenticate(context.Background(), tt.username, tt.password)
			if err != nil {
				t.Fatalf("Authenticate returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Authenticate(%q, %q) = %v, want %v", tt.username, tt.password, got, tt.want)
			}
		})
	}
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	store := &fakeUserStore{err: errors.New("connection refused")}
	svc := NewService(store, logger.New("test"))

	ok, err := svc.Authenticate(context.Background(), "budi", "rahasia123")
	if ok {
		t.Errorf("Authenticate = true on store failure, want false")
	}

	var pe *models.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a PersistenceError", err)
	}
}
