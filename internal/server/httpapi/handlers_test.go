package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/kiview/internal/logging"
	"github.com/dmitrijs2005/kiview/internal/server/auth"
	"github.com/dmitrijs2005/kiview/internal/server/config"
	"github.com/dmitrijs2005/kiview/internal/server/sharetokens"
	"github.com/dmitrijs2005/kiview/internal/server/storage"
	"github.com/dmitrijs2005/kiview/internal/server/users"
)

// ---- test logger ----

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- helpers ----

type testEnv struct {
	server   *Server
	handler  http.Handler
	tokenSvc *sharetokens.Service
	cfg      *config.Config
	root     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"

	root := t.TempDir()
	userSvc := users.NewService(users.NewMemoryRepository(), cfg)
	tokenSvc := sharetokens.NewService(sharetokens.NewMemoryStore(), cfg.ShareTokenValidityDuration)
	fileStore := storage.NewLocalStore(root)

	s, err := NewServer(":0", nopLogger{}, userSvc, tokenSvc, fileStore, cfg.SecretKey)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}

	return &testEnv{server: s, handler: s.Handler(), tokenSvc: tokenSvc, cfg: cfg, root: root}
}

func (e *testEnv) writeFile(t *testing.T, userID, rel, content string) {
	t.Helper()
	full := filepath.Join(e.root, userID, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o770); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o660); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func (e *testEnv) accessToken(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(e.cfg.SecretKey), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

// ---- tests ----

func TestFile_NoSession(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(httptest.NewRequest(http.MethodGet, "/api/file/boards/main.kicad_pcb", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestFile_StreamsWithHeaders(t *testing.T) {
	e := newTestEnv(t)
	e.writeFile(t, "u1", "boards/main.kicad_pcb", "(kicad_pcb)")

	req := httptest.NewRequest(http.MethodGet, "/api/file/boards/main.kicad_pcb", nil)
	req.Header.Set("access_token", e.accessToken(t, "u1"))

	rr := e.do(req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/x-kicad-pcb" {
		t.Fatalf("unexpected Content-Type: %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `inline; filename="main.kicad_pcb"` {
		t.Fatalf("unexpected Content-Disposition: %q", cd)
	}
	if cl := rr.Header().Get("Content-Length"); cl != "11" {
		t.Fatalf("unexpected Content-Length: %q", cl)
	}
	if rr.Body.String() != "(kicad_pcb)" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}

func TestFile_NotFoundLeaksNoDetail(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/file/boards/missing.kicad_pcb", nil)
	req.Header.Set("Authorization", "Bearer "+e.accessToken(t, "u1"))

	rr := e.do(req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if string(bytes.TrimSpace(body)) != "not found" {
		t.Fatalf("body leaks detail: %q", body)
	}
}

func TestCreatePublicToken_NoSession(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/public-token",
		bytes.NewBufferString(`{"path":"boards/main.kicad_pcb"}`))

	rr := e.do(req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with error body, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp["error"] == "" {
		t.Fatalf("expected error key in body, got %v", resp)
	}
}

func TestCreatePublicToken_NoPath(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/public-token", bytes.NewBufferString(`{}`))
	req.Header.Set("access_token", e.accessToken(t, "u1"))

	rr := e.do(req)
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp["error"] == "" {
		t.Fatalf("expected error key in body, got %v", resp)
	}
}

func TestPublicToken_Lifecycle(t *testing.T) {
	e := newTestEnv(t)
	e.writeFile(t, "u1", "boards/main.kicad_pcb", "(kicad_pcb)")

	// create
	req := httptest.NewRequest(http.MethodPost, "/api/public-token",
		bytes.NewBufferString(`{"path":"boards/main.kicad_pcb"}`))
	req.Header.Set("access_token", e.accessToken(t, "u1"))

	rr := e.do(req)
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	token := resp["token"]
	if token == "" {
		t.Fatalf("expected token, got %v", resp)
	}

	// redeem before expiry
	rr = e.do(httptest.NewRequest(http.MethodGet, "/public/"+token, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "(kicad_pcb)" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}

	// expired: 410 and the token is discarded
	e.tokenSvc.SetNowFunc(func() time.Time { return time.Now().Add(2 * time.Hour) })

	rr = e.do(httptest.NewRequest(http.MethodGet, "/public/"+token, nil))
	if rr.Code != http.StatusGone {
		t.Fatalf("expected 410, got %d", rr.Code)
	}

	rr = e.do(httptest.NewRequest(http.MethodGet, "/public/"+token, nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after discard, got %d", rr.Code)
	}
}

func TestPublicFile_UnknownToken(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(httptest.NewRequest(http.MethodGet, "/public/deadbeef", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestRegisterAndLogin_RoundTrip(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(httptest.NewRequest(http.MethodPost, "/api/register",
		bytes.NewBufferString(`{"username":"alice","password":"pw123"}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", rr.Code)
	}

	rr = e.do(httptest.NewRequest(http.MethodPost, "/api/login",
		bytes.NewBufferString(`{"username":"alice","password":"pw123"}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp["access_token"] == "" {
		t.Fatalf("expected access_token, got %v", resp)
	}

	rr = e.do(httptest.NewRequest(http.MethodPost, "/api/login",
		bytes.NewBufferString(`{"username":"alice","password":"wrong"}`)))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("login wrong pw: expected 401, got %d", rr.Code)
	}
}
