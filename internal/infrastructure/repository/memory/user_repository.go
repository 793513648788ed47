package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pickemhq/pickem-api/internal/domain/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	byID   map[int64]user.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[int64]user.User), nextID: 1}
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trimmed := strings.TrimSpace(username)
	for _, item := range r.byID {
		if item.Username == trimmed {
			return item, true, nil
		}
	}

	return user.User{}, false, nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	return item, ok, nil
}

func (r *UserRepository) Create(_ context.Context, username string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trimmed := strings.TrimSpace(username)
	for _, item := range r.byID {
		if item.Username == trimmed {
			return user.User{}, user.ErrDuplicateUsername
		}
	}

	created := user.User{
		ID:        r.nextID,
		Username:  trimmed,
		CreatedAt: time.Now().UTC(),
	}
	r.byID[created.ID] = created
	r.nextID++

	return created, nil
}
