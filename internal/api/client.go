package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tracker/internal/config"
	"tracker/internal/logging"
)

// TokenAuthPassword is the fixed Basic-auth password used whenever the
// username is an API token rather than an email address. The server keys
// off this literal to distinguish token auth from credential auth.
const TokenAuthPassword = "api_token"

const defaultRequestTimeout = 30 * time.Second

// Client is the wire transport consumed by the sync engine. Implementations
// must be substitutable with a test double asserting on exact arguments.
type Client interface {
	GetJSON(ctx context.Context, relativeURL, authUser, authPass string) (string, error)
	PostJSON(ctx context.Context, relativeURL, jsonBody, authUser, authPass string) (string, error)
	// ListenToUpdates opens a long-lived stream of change notifications.
	// Events are a trigger to re-sync; they carry no entity data.
	ListenToUpdates(ctx context.Context, authToken string) (<-chan UpdateEvent, func(), error)
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds the real transport from settings, honoring the
// configured proxy.
func NewHTTPClient(settings config.Settings, log logging.Logger) (*HTTPClient, error) {
	if log == nil {
		log = logging.Nop()
	}
	transport := &http.Transport{}
	proxy, err := settings.ProxyURL()
	if err != nil {
		return nil, err
	}
	if proxy != nil {
		transport.Proxy = http.ProxyURL(proxy)
	}
	return &HTTPClient{
		baseURL: settings.ServerBaseURL(),
		http: &http.Client{
			Timeout:   defaultRequestTimeout,
			Transport: transport,
		},
		log: log.With(logging.F("component", "api")),
	}, nil
}

// NewHTTPClientWithBaseURL is used by tests that point the client at a
// local fixture server.
func NewHTTPClientWithBaseURL(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: defaultRequestTimeout,
		},
		log: logging.Nop(),
	}
}

func (c *HTTPClient) GetJSON(ctx context.Context, relativeURL, authUser, authPass string) (string, error) {
	return c.do(ctx, http.MethodGet, relativeURL, "", authUser, authPass)
}

func (c *HTTPClient) PostJSON(ctx context.Context, relativeURL, jsonBody, authUser, authPass string) (string, error) {
	return c.do(ctx, http.MethodPost, relativeURL, jsonBody, authUser, authPass)
}

func (c *HTTPClient) do(ctx context.Context, method, relativeURL, jsonBody, authUser, authPass string) (string, error) {
	var reader io.Reader
	if jsonBody != "" {
		reader = strings.NewReader(jsonBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+relativeURL, reader)
	if err != nil {
		return "", err
	}
	if jsonBody != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(authUser, authPass)

	c.log.Debug("request", logging.F("method", method), logging.F("url", relativeURL))
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("request failed", logging.F("url", relativeURL), logging.F("status", resp.StatusCode))
		return "", &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return string(body), nil
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return fmt.Sprintf("api error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err to an APIError, or nil when err is a lower-level
// transport failure.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
