// Package server initializes and runs the kiview server: it selects storage
// and persistence backends from configuration, wires the user and share
// token services, and starts the HTTP endpoint with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/kiview/internal/filex"
	"github.com/dmitrijs2005/kiview/internal/logging"
	"github.com/dmitrijs2005/kiview/internal/server/config"
	"github.com/dmitrijs2005/kiview/internal/server/db"
	"github.com/dmitrijs2005/kiview/internal/server/httpapi"
	"github.com/dmitrijs2005/kiview/internal/server/sharetokens"
	"github.com/dmitrijs2005/kiview/internal/server/storage"
	"github.com/dmitrijs2005/kiview/internal/server/users"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	userService  *users.Service
	tokenService *sharetokens.Service
	fileStore    storage.FileStore
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	var userRepo users.Repository
	var tokenStore sharetokens.Store

	if c.DatabaseDSN != "" {
		conn, err := db.Open(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		userRepo = users.NewPostgresRepository(conn)
		tokenStore = sharetokens.NewPostgresStore(conn)
	} else {
		userRepo = users.NewMemoryRepository()
		tokenStore = sharetokens.NewMemoryStore()
	}

	var fileStore storage.FileStore
	switch c.StorageBackend {
	case "s3":
		fileStore = storage.NewS3Store(c)
	default:
		root, err := filex.EnsureSubdDir(c.StorageRoot)
		if err != nil {
			return nil, fmt.Errorf("storage root error: %w", err)
		}
		fileStore = storage.NewLocalStore(root)
	}

	us := users.NewService(userRepo, c)
	ts := sharetokens.NewService(tokenStore, c.ShareTokenValidityDuration)

	return &App{
		config:       c,
		logger:       logger,
		userService:  us,
		tokenService: ts,
		fileStore:    fileStore,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewServer(app.config.EndpointAddr, app.logger,
		app.userService, app.tokenService, app.fileStore, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
