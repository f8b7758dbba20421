package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/kiview/internal/common"
	"github.com/google/uuid"
)

// MemoryRepository is a process-local Repository for deployments without a
// database. Safe for concurrent use.
type MemoryRepository struct {
	mu      sync.RWMutex
	byLogin map[string]*User
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byLogin: make(map[string]*User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byLogin[user.UserName]; exists {
		return nil, common.ErrorInternal
	}

	u := *user
	u.ID = uuid.New().String()
	u.CreatedAt = time.Now()
	r.byLogin[u.UserName] = &u

	out := u
	return &out, nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, userName string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byLogin[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}

	out := *u
	return &out, nil
}
