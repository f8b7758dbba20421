// Package session orchestrates a single view: fetch, MIME resolution,
// delivery to the widget, and teardown when the host swaps or closes the
// file.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/kiview/internal/common"
	"github.com/dmitrijs2005/kiview/internal/logging"
	"github.com/dmitrijs2005/kiview/internal/mimex"
	"github.com/dmitrijs2005/kiview/internal/viewer/render"
)

// State of the view lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// FileRef identifies the file the host asked us to show. URL is the direct
// download location; Path is the logical path for the file API fallback.
type FileRef struct {
	URL      string
	Path     string
	Filename string
}

type contentFetcher interface {
	Fetch(ctx context.Context, url, path string) ([]byte, error)
}

type contentDeliverer interface {
	Deliver(ctx context.Context, w render.Widget, content []byte, ext, mimeType string) bool
}

// Controller drives the Idle -> Loading -> (Ready | Failed) lifecycle of one
// widget. Every Load bumps a generation counter; a fetch that finishes after
// the host has already switched files finds its generation stale and its
// result is discarded instead of clobbering the newer view.
type Controller struct {
	logger    logging.Logger
	fetcher   contentFetcher
	deliverer contentDeliverer
	urls      *render.ObjectURLRegistry
	widget    render.Widget

	mu         sync.Mutex
	state      State
	generation uint64
	loading    bool
	lastErr    error
}

func NewController(logger logging.Logger, fetcher contentFetcher, deliverer contentDeliverer, urls *render.ObjectURLRegistry, widget render.Widget) *Controller {
	return &Controller{
		logger:    logger.With("module", "session"),
		fetcher:   fetcher,
		deliverer: deliverer,
		urls:      urls,
		widget:    widget,
		state:     StateIdle,
	}
}

// Load shows the referenced file. Previous widget children and outstanding
// object URLs are cleared before the fetch starts, and the loading flag is
// guaranteed to be false when Load returns, whatever the outcome.
func (c *Controller) Load(ctx context.Context, ref FileRef) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = StateLoading
	c.loading = true
	c.lastErr = nil
	c.widget.ClearChildren()
	c.urls.RevokeAll()
	c.mu.Unlock()

	c.logger.Info(ctx, "loading file", "filename", ref.Filename)

	content, err := c.fetcher.Fetch(ctx, ref.URL, ref.Path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// the host switched files while we were fetching
		c.logger.Debug(ctx, "discarding stale fetch result", "filename", ref.Filename)
		return nil
	}
	c.loading = false

	if err != nil {
		c.state = StateFailed
		c.lastErr = err
		c.logger.Error(ctx, "fetch failed", "filename", ref.Filename, "err", err.Error())
		return err
	}

	ext := mimex.ExtensionOf(ref.Filename)
	mimeType := mimex.ForExtension(ext)

	if !c.deliverer.Deliver(ctx, c.widget, content, ext, mimeType) {
		c.state = StateFailed
		c.lastErr = fmt.Errorf("%w: %s", common.ErrDeliveryFailed, ref.Filename)
		c.logger.Error(ctx, "all delivery strategies failed", "filename", ref.Filename)
		return c.lastErr
	}

	c.state = StateReady
	return nil
}

// Teardown returns the controller to Idle: widget children are removed and
// every outstanding object URL is revoked eagerly, not left to its timer.
// Any in-flight fetch becomes stale.
func (c *Controller) Teardown(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.loading = false
	c.state = StateIdle
	c.lastErr = nil
	c.widget.ClearChildren()
	c.urls.RevokeAll()

	c.logger.Debug(ctx, "view torn down")
}

// HandleLayout reacts to container resizes and sidebar toggles. Widgets
// without a re-layout capability are simply left alone.
func (c *Controller) HandleLayout() {
	if rl, ok := c.widget.(render.Relayouter); ok {
		rl.Relayout()
	}
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loading reports whether a loading indicator should be shown.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the failure behind a StateFailed controller, nil otherwise.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
