package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/kiview/internal/common"
	"github.com/dmitrijs2005/kiview/internal/logging"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeAPI struct {
	content []byte
	err     error
	calls   int
	gotPath string
}

func (f *fakeAPI) FileContent(ctx context.Context, path string) ([]byte, error) {
	f.calls++
	f.gotPath = path
	return f.content, f.err
}

func TestFetch_DirectURLWins(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("direct"))
	}))
	defer ts.Close()

	api := &fakeAPI{content: []byte("api")}
	f := NewFetcher(nopLogger{}, ts.Client(), api)

	got, err := f.Fetch(context.Background(), ts.URL+"/p/board.kicad_pcb", "p/board.kicad_pcb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "direct" {
		t.Fatalf("content = %q, want direct download", got)
	}
	if api.calls != 0 {
		t.Fatalf("file API must not be called when direct download succeeds")
	}
}

func TestFetch_FallsBackToFileAPI(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	api := &fakeAPI{content: []byte("from api")}
	f := NewFetcher(nopLogger{}, ts.Client(), api)

	got, err := f.Fetch(context.Background(), ts.URL, "p/board.kicad_pcb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "from api" {
		t.Fatalf("content = %q, want fallback result", got)
	}
	if api.gotPath != "p/board.kicad_pcb" {
		t.Fatalf("path = %q", api.gotPath)
	}
}

func TestFetch_BothRoutesFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	api := &fakeAPI{err: errors.New("boom")}
	f := NewFetcher(nopLogger{}, ts.Client(), api)

	_, err := f.Fetch(context.Background(), ts.URL, "x")
	if !errors.Is(err, common.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestFetch_EmptyBodyIsValid(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	f := NewFetcher(nopLogger{}, ts.Client(), nil)

	got, err := f.Fetch(context.Background(), ts.URL, "empty.kicad_wks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty content, got %q", got)
	}
}

func TestFetch_NoAPIFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	f := NewFetcher(nopLogger{}, ts.Client(), nil)

	_, err := f.Fetch(context.Background(), ts.URL, "x")
	if !errors.Is(err, common.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}
