// Package users provides user accounts: repositories and the service that
// implements registration and login with JWT session tokens.
package users

import "context"

// Repository persists user accounts. Implementations: Postgres, in-memory.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByLogin(ctx context.Context, userName string) (*User, error)
}
