// Package client is the HTTP persistence adapter: a typed REST client for
// the platform API, one base URL per bounded context. Failures map onto the
// shared error taxonomy, and 401 responses are funneled through a single
// injectable hook instead of a hard-coded redirect.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/campushub/apperrors"
	"github.com/campushub/campushub/models"
)

// Config configures a Client. Each bounded context of the backend has its
// own base URL; empty fields fall back to BaseURL.
type Config struct {
	BaseURL   string
	AuthURL   string
	UsersURL  string
	EventsURL string
	BlogsURL  string

	// HTTPClient defaults to a client with a 15s timeout.
	HTTPClient *http.Client
	// OnUnauthorized runs whenever the backend answers 401. This is where
	// session teardown and the login redirect belong.
	OnUnauthorized func()
	Logger         zerolog.Logger
}

// Client is the API client. The bearer token attaches to every request
// once set.
type Client struct {
	httpClient     *http.Client
	onUnauthorized func()
	logger         zerolog.Logger

	mu    sync.RWMutex
	token string

	Auth         *AuthService
	Users        *UsersService
	Events       *EventsService
	Blogs        *BlogsService
	Universities *Resource[*models.University]
	Cities       *Resource[*models.City]
}

// New creates a Client from config.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	base := func(url string) string {
		if url == "" {
			url = cfg.BaseURL
		}
		return strings.TrimRight(url, "/")
	}

	c := &Client{
		httpClient:     httpClient,
		onUnauthorized: cfg.OnUnauthorized,
		logger:         cfg.Logger,
	}
	c.Auth = &AuthService{client: c, base: base(cfg.AuthURL)}
	c.Users = &UsersService{Resource: Resource[*models.User]{client: c, base: base(cfg.UsersURL), path: "/users"}}
	c.Events = &EventsService{Resource: Resource[*models.Event]{client: c, base: base(cfg.EventsURL), path: "/events"}}
	c.Blogs = &BlogsService{Resource: Resource[*models.BlogPost]{client: c, base: base(cfg.BlogsURL), path: "/blogs"}}
	c.Universities = &Resource[*models.University]{client: c, base: base(cfg.BlogsURL), path: "/universities"}
	c.Cities = &Resource[*models.City]{client: c, base: base(cfg.BlogsURL), path: "/cities"}
	return c
}

// SetToken installs the access token attached as Authorization: Bearer on
// subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current access token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ClearToken drops the stored token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// apiError is the conventional error body of the backend.
type apiError struct {
	Message string `json:"message"`
}

// do performs one JSON request and decodes the response into out when it is
// non-nil. Non-2xx statuses map to the typed failure taxonomy.
func (c *Client) do(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send executes a prepared request, attaching the bearer token and mapping
// the response.
func (c *Client) send(req *http.Request, out interface{}) error {
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.New(apperrors.ErrNetwork, fmt.Sprintf("%s %s: %s", req.Method, req.URL.Path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(req, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// errorFromResponse maps an HTTP failure status to the shared taxonomy.
// Every 401 runs the on-unauthorized hook; no other call site handles
// session teardown.
func (c *Client) errorFromResponse(req *http.Request, resp *http.Response) error {
	var body apiError
	_ = json.NewDecoder(resp.Body).Decode(&body)
	message := body.Message
	if message == "" {
		message = fmt.Sprintf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.logger.Warn().Str("path", req.URL.Path).Msg("Unauthorized response, tearing down session")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apperrors.New(apperrors.ErrUnauthorized, message)
	case resp.StatusCode == http.StatusForbidden:
		return apperrors.New(apperrors.ErrForbidden, message)
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.New(apperrors.ErrNotFound, message)
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return apperrors.New(apperrors.ErrValidation, message)
	default:
		return apperrors.New(apperrors.ErrServer, message)
	}
}
