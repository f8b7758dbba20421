// Package httpapi exposes the file proxy over HTTP: authenticated file
// retrieval, public share token creation, and anonymous token redemption.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/kiview/internal/logging"
	"github.com/dmitrijs2005/kiview/internal/server/sharetokens"
	"github.com/dmitrijs2005/kiview/internal/server/storage"
	"github.com/dmitrijs2005/kiview/internal/server/users"
)

// userSvc is the account surface the handlers need.
type userSvc interface {
	Register(ctx context.Context, username string, password []byte) (*users.User, error)
	Login(ctx context.Context, username string, password []byte) (string, error)
}

// tokenSvc is the share token surface the handlers need.
type tokenSvc interface {
	Issue(ctx context.Context, userID, filePath string) (string, error)
	Redeem(ctx context.Context, token string) (*sharetokens.ShareToken, error)
}

// Server wires the HTTP routes to the user, token, and storage services.
type Server struct {
	address   string
	logger    logging.Logger
	users     userSvc
	tokens    tokenSvc
	files     storage.FileStore
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, us userSvc, ts tokenSvc, fs storage.FileStore, secretKey string) (*Server, error) {
	return &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		tokens:    ts,
		files:     fs,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Handler builds the route table. Split out from Run so tests can drive the
// mux through httptest without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.Handle("GET /api/file/{path...}", s.requireUser(http.HandlerFunc(s.handleFile)))
	mux.HandleFunc("POST /api/public-token", s.handleCreatePublicToken)
	mux.HandleFunc("GET /public/{token}", s.handlePublicFile)
	mux.HandleFunc("OPTIONS /public/{token}", s.handlePublicPreflight)

	return mux
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = srv.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
