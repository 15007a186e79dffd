package repository

import (
	"context"
	"sync"

	"meterdesk/backend/services/auth-service/internal/models"
)

// StaticUserRepository serves a fixed set of users held in memory. It backs the login gate
// when no database is configured.
type StaticUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
}

// NewStaticUserRepository indexes users by normalized email.
func NewStaticUserRepository(users ...models.User) *StaticUserRepository {
	repo := &StaticUserRepository{byEmail: make(map[string]models.User, len(users))}
	for _, u := range users {
		u.Email = normalizeEmail(u.Email)
		repo.byEmail[u.Email] = u
	}
	return repo
}

// GetByEmail returns a copy of the stored user.
func (r *StaticUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
