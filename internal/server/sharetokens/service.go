package sharetokens

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/kiview/internal/common"
)

// tokenByteSize is the number of random bytes per token (256 bits).
const tokenByteSize = 32

// Service issues and redeems share tokens on top of a Store.
type Service struct {
	store    Store
	validity time.Duration
	now      func() time.Time
}

func NewService(store Store, validity time.Duration) *Service {
	return &Service{store: store, validity: validity, now: time.Now}
}

// SetNowFunc overrides the clock, for tests.
func (s *Service) SetNowFunc(now func() time.Time) {
	s.now = now
}

// Issue creates a token granting anonymous access to filePath on behalf of
// userID and stores it with expiry now+validity.
func (s *Service) Issue(ctx context.Context, userID, filePath string) (string, error) {

	token, err := common.MakeRandHexString(tokenByteSize)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	now := s.now()
	t := &ShareToken{
		Token:     token,
		UserID:    userID,
		FilePath:  filePath,
		ExpiresAt: now.Add(s.validity),
		CreatedAt: now,
	}

	if err := s.store.Put(ctx, t); err != nil {
		return "", fmt.Errorf("error storing token: %w", err)
	}

	return token, nil
}

// Redeem resolves a token to its record. Unknown tokens yield
// common.ErrorNotFound. Expired tokens are discarded on this check and yield
// common.ErrTokenExpired, so a later redeem of the same token reports not
// found.
func (s *Service) Redeem(ctx context.Context, token string) (*ShareToken, error) {

	t, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if t.Expired(s.now()) {
		_ = s.store.Delete(ctx, token)
		return nil, common.ErrTokenExpired
	}

	return t, nil
}
