package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"

	"github.com/dmitrijs2005/kiview/internal/logging"
	"github.com/dmitrijs2005/kiview/internal/viewer/client"
	"github.com/dmitrijs2005/kiview/internal/viewer/config"
	"github.com/dmitrijs2005/kiview/internal/viewer/fetch"
	"github.com/dmitrijs2005/kiview/internal/viewer/render"
	"github.com/dmitrijs2005/kiview/internal/viewer/session"
)

// App wires the viewer CLI: API client, fetcher, delivery ladder, and the
// view lifecycle controller driving a terminal widget.
type App struct {
	config     *config.Config
	client     client.Client
	controller *session.Controller
	widget     *TermWidget
	logger     logging.Logger
	reader     *bufio.Reader
	out        io.Writer
}

func NewApp(c *config.Config) *App {

	slogger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	logger := logging.NewSlogLogger(slogger)

	api := client.NewHTTPClient(c.ServerURL)

	urls := render.NewObjectURLRegistry()
	deliverer := render.NewDeliverer(logger, urls)
	deliverer.SetRevokeDelay(c.RevokeDelay)

	fetcher := fetch.NewFetcher(logger, nil, api)
	widget := NewTermWidget(os.Stdout)

	return &App{
		config:     c,
		client:     api,
		controller: session.NewController(logger, fetcher, deliverer, urls, widget),
		widget:     widget,
		logger:     logger,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "kiview viewer (type 'help' for commands)")

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)

	a.controller.Teardown(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.client.IsLoggedIn()
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "logged out"
	}
	return a.controller.State().String()
}

// Register prompts for credentials and creates an account on the server.
func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if err := a.client.Register(ctx, userName, string(password)); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if err := a.client.Login(ctx, userName, string(password)); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Logged in")
	return nil
}

// Open fetches a file and renders it in the terminal widget.
func (a *App) Open(ctx context.Context, filePath string) error {
	ref := session.FileRef{
		URL:      a.client.FileURL(filePath),
		Path:     filePath,
		Filename: path.Base(filePath),
	}

	if err := a.controller.Load(ctx, ref); err != nil {
		fmt.Fprintln(a.out, "could not open file:", err.Error())
		return err
	}
	return nil
}

// Share issues a public token for a file path and prints the resulting URL.
func (a *App) Share(ctx context.Context, filePath string) error {
	token, err := a.client.CreatePublicToken(ctx, filePath)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Public link:", a.client.PublicURL(token))
	return nil
}

// Close tears the current view down.
func (a *App) Close(ctx context.Context) error {
	a.controller.Teardown(ctx)
	fmt.Fprintln(a.out, "View closed")
	return nil
}
