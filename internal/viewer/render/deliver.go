package render

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/dmitrijs2005/kiview/internal/logging"
)

// DataURLMaxBytes is the hard ceiling for the data URL strategy. Content
// above it skips the strategy entirely rather than being truncated, so an
// oversized file can never produce a partial render.
const DataURLMaxBytes = 8 << 20

// DefaultRevokeDelay is how long an object URL stays alive after delivery
// before its scheduled revocation fires.
const DefaultRevokeDelay = 60 * time.Second

// Deliverer hands fetched content to a widget, trying each capability the
// widget implements in fixed priority order. Strategy errors are logged and
// swallowed; the first success wins.
type Deliverer struct {
	logger      logging.Logger
	urls        *ObjectURLRegistry
	revokeDelay time.Duration
}

func NewDeliverer(logger logging.Logger, urls *ObjectURLRegistry) *Deliverer {
	return &Deliverer{
		logger:      logger.With("module", "deliver"),
		urls:        urls,
		revokeDelay: DefaultRevokeDelay,
	}
}

// SetRevokeDelay overrides how long delivered object URLs stay alive.
func (d *Deliverer) SetRevokeDelay(delay time.Duration) {
	d.revokeDelay = delay
}

// Deliver attempts, in order: the widget's native set-content call, direct
// text on a child source element, an object URL, and finally a base64 data
// URL for content under DataURLMaxBytes. It reports whether any strategy
// succeeded.
func (d *Deliverer) Deliver(ctx context.Context, w Widget, content []byte, ext, mimeType string) bool {

	// 1: native set-content call
	if cs, ok := w.(ContentSetter); ok {
		if err := cs.SetContent(string(content)); err != nil {
			d.logger.Warn(ctx, "native content call failed", "err", err.Error())
		} else {
			return true
		}
	}

	// 2: text on the child source element
	if sn, ok := w.(SourceNode); ok {
		if err := sn.SetSourceText(string(content), ext); err != nil {
			d.logger.Warn(ctx, "source text failed", "err", err.Error())
		} else {
			return true
		}
	}

	// 3: temporary object URL
	if us, ok := w.(URLSource); ok {
		url := d.urls.Create(content, mimeType)
		if err := us.SetSourceURL(url); err != nil {
			d.logger.Warn(ctx, "object URL failed", "err", err.Error())
			d.urls.Revoke(url)
		} else {
			d.urls.RevokeAfter(url, d.revokeDelay)
			return true
		}
	}

	// 4: base64 data URL, bounded by DataURLMaxBytes
	if us, ok := w.(URLSource); ok {
		if len(content) > DataURLMaxBytes {
			d.logger.Warn(ctx, "content too large for data URL", "size", len(content))
		} else {
			url := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content)
			if err := us.SetSourceURL(url); err != nil {
				d.logger.Warn(ctx, "data URL failed", "err", err.Error())
			} else {
				return true
			}
		}
	}

	return false
}
