package memory

import (
	"context"
	"sync"

	domainuser "stayhub/internal/domain/user"
)

// UserRepository stores users in memory and enforces email uniqueness the way
// the database index does.
type UserRepository struct {
	mu    sync.RWMutex
	items map[domainuser.ID]domainuser.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[domainuser.ID]domainuser.User)}
}

func (r *UserRepository) ByID(ctx context.Context, id domainuser.ID) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, domainuser.ErrNotFound
	}
	out := stored
	return &out, nil
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	email = domainuser.NormalizeEmail(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, stored := range r.items {
		if stored.Email == email {
			out := stored
			return &out, nil
		}
	}
	return nil, domainuser.ErrNotFound
}

func (r *UserRepository) Save(ctx context.Context, u *domainuser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, stored := range r.items {
		if id != u.ID && stored.Email == u.Email {
			return domainuser.ErrEmailAlreadyUsed
		}
	}
	r.items[u.ID] = *u
	return nil
}
