package sharetokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/kiview/internal/common"
	"github.com/dmitrijs2005/kiview/internal/dbx"
)

// PostgresStore implements Store over dbx.DBTX (satisfied by *sql.DB or
// *sql.Tx), for deployments where tokens must be shared across processes.
type PostgresStore struct {
	db dbx.DBTX
}

// NewPostgresStore constructs a store bound to the given DBTX.
func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// Put inserts a new share token row.
func (s *PostgresStore) Put(ctx context.Context, token *ShareToken) error {
	query := `
		INSERT INTO share_tokens (token, user_id, file_path, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, token.Token, token.UserID, token.FilePath, token.ExpiresAt); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}

// Get returns the share token row for the given token string.
// If not found, it returns common.ErrorNotFound.
func (s *PostgresStore) Get(ctx context.Context, token string) (*ShareToken, error) {
	query := `
		SELECT token, user_id, file_path, expires_at
		FROM share_tokens
		WHERE token = $1
	`
	t := &ShareToken{}
	if err := s.db.QueryRowContext(ctx, query, token).Scan(&t.Token, &t.UserID, &t.FilePath, &t.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// Delete removes a share token by its token string.
func (s *PostgresStore) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM share_tokens
		WHERE token = $1
	`
	if _, err := s.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
