package client

import "context"

// Client is the viewer's remote API surface.
//
// Contract:
//   - Register: create a new user account on the server.
//   - Login: authenticate and keep the session token for later calls.
//   - FileURL: direct download URL for a file path (used for direct fetch).
//   - FileContent: fetch file bytes through the authenticated file endpoint.
//   - CreatePublicToken: issue a share token for a file path.
//   - PublicURL: unauthenticated URL behind a share token.
//
// All blocking methods must honor context cancellation/timeouts.
type Client interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	IsLoggedIn() bool
	FileURL(path string) string
	FileContent(ctx context.Context, path string) ([]byte, error)
	CreatePublicToken(ctx context.Context, path string) (string, error)
	PublicURL(token string) string
}
