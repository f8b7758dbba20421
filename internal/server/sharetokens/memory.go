package sharetokens

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/kiview/internal/common"
)

// MemoryStore is a process-local Store guarded by a mutex, so concurrent
// token creation and redemption are safe within one process. Tokens do not
// survive a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]*ShareToken
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]*ShareToken)}
}

func (s *MemoryStore) Put(ctx context.Context, token *ShareToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := *token
	s.tokens[t.Token] = &t
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*ShareToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}

	out := *t
	return &out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, token)
	return nil
}
