// Package fetch retrieves raw file content for the viewer, preferring a
// direct download of the file's URL and falling back to the file API when
// the direct route fails.
package fetch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/kiview/internal/common"
	"github.com/dmitrijs2005/kiview/internal/logging"
	"github.com/dmitrijs2005/kiview/internal/netx"
)

// FileAPI is the fallback content source, backed by the server's file
// endpoint keyed on path rather than URL.
type FileAPI interface {
	FileContent(ctx context.Context, path string) ([]byte, error)
}

// Fetcher loads file bytes from a URL first and the file API second.
type Fetcher struct {
	logger logging.Logger
	client *http.Client
	api    FileAPI
}

func NewFetcher(logger logging.Logger, client *http.Client, api FileAPI) *Fetcher {
	return &Fetcher{
		logger: logger.With("module", "fetch"),
		client: client,
		api:    api,
	}
}

// Fetch downloads the file at url, falling back to the file API under path
// when the direct download fails. Both routes failing wraps
// common.ErrFetchFailed; an empty body from either route is a valid result.
func (f *Fetcher) Fetch(ctx context.Context, url, path string) ([]byte, error) {
	data, err := netx.DownloadURL(ctx, f.client, url)
	if err == nil {
		return data, nil
	}
	f.logger.Warn(ctx, "direct download failed, falling back to file API", "url", url, "err", err.Error())

	if f.api == nil {
		return nil, fmt.Errorf("%w: %s", common.ErrFetchFailed, err.Error())
	}

	data, apiErr := f.api.FileContent(ctx, path)
	if apiErr != nil {
		return nil, fmt.Errorf("%w: direct: %s; api: %s", common.ErrFetchFailed, err.Error(), apiErr.Error())
	}
	return data, nil
}
