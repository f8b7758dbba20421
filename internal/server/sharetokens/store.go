// Package sharetokens issues and redeems short-lived public share tokens.
// The Store interface keeps the persistence pluggable: in-memory for a
// single process, Postgres when the deployment runs multiple workers.
package sharetokens

import "context"

// Store persists share tokens. Get returns common.ErrorNotFound for unknown
// tokens; expiry is enforced by the Service, not the store.
type Store interface {
	Put(ctx context.Context, token *ShareToken) error
	Get(ctx context.Context, token string) (*ShareToken, error)
	Delete(ctx context.Context, token string) error
}
