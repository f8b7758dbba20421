package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/kiview/internal/common"
)

// HTTPClient talks to the kiview server's JSON API. The access token obtained
// by Login is attached to every authenticated request.
type HTTPClient struct {
	baseURL     string
	http        *http.Client
	accessToken string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set(common.AccessTokenHeaderName, c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	default:
		return fmt.Errorf("%s: unexpected status %s", path, resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Register creates a new user account.
func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.postJSON(ctx, "/api/register", body, nil)
}

// Login authenticates and stores the returned access token for later calls.
func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.postJSON(ctx, "/api/login", body, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return common.ErrorUnauthorized
	}
	c.accessToken = resp.AccessToken
	return nil
}

// IsLoggedIn reports whether a login succeeded earlier in the session.
func (c *HTTPClient) IsLoggedIn() bool {
	return c.accessToken != ""
}

// FileURL returns the authenticated download URL for a file path.
func (c *HTTPClient) FileURL(path string) string {
	return c.baseURL + "/api/file/" + escapePath(path)
}

// FileContent downloads a file through the authenticated endpoint. It is the
// fetch fallback route, so missing files map to common.ErrorNotFound.
func (c *HTTPClient) FileContent(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FileURL(path), nil)
	if err != nil {
		return nil, err
	}
	if c.accessToken != "" {
		req.Header.Set(common.AccessTokenHeaderName, c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return readAll(resp)
	case http.StatusUnauthorized:
		return nil, common.ErrorUnauthorized
	case http.StatusNotFound:
		return nil, common.ErrorNotFound
	default:
		return nil, fmt.Errorf("file %s: unexpected status %s", path, resp.Status)
	}
}

// CreatePublicToken issues a share token for a file path. The endpoint
// reports failures in the body under an "error" key rather than with an HTTP
// status, so the body is inspected before the token is trusted.
func (c *HTTPClient) CreatePublicToken(ctx context.Context, path string) (string, error) {
	var resp struct {
		Token string `json:"token"`
		Error string `json:"error"`
	}
	if err := c.postJSON(ctx, "/api/public-token", map[string]string{"path": path}, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("public token: %s", resp.Error)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("public token: empty response")
	}
	return resp.Token, nil
}

// PublicURL returns the unauthenticated URL behind a share token.
func (c *HTTPClient) PublicURL(token string) string {
	return c.baseURL + "/public/" + url.PathEscape(token)
}

func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func readAll(resp *http.Response) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ Client = (*HTTPClient)(nil)
