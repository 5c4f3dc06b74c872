package stellarforge

import (
	"errors"
	"strings"
	"time"

	"github.com/samvad-hq/stellarforge/pkg/httpclient"
	"github.com/samvad-hq/stellarforge/pkg/mockapi"
)

const (
	// DefaultBaseURL is the documented API root.
	DefaultBaseURL = "https://api.stellarforge.io"
	// DefaultTimeout bounds a single request on the default HTTP client.
	DefaultTimeout = 10 * time.Second
)

// Option configures a Client.
type Option func(*config) error

type config struct {
	baseURL    string
	timeout    time.Duration
	httpClient httpclient.Client
	mock       *mockapi.Server
	log        Logger
}

// WithBaseURL overrides the API root requests are sent to.
func WithBaseURL(url string) Option {
	return func(c *config) error {
		url = strings.TrimRight(strings.TrimSpace(url), "/")
		if url == "" {
			return errors.New("base url must not be empty")
		}
		c.baseURL = url
		return nil
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		if timeout < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = timeout
		return nil
	}
}

// WithHTTPClient sends requests through client instead of the built-in
// in-process transport.
func WithHTTPClient(client httpclient.Client) Option {
	return func(c *config) error {
		if client == nil {
			return errors.New("http client must not be nil")
		}
		c.httpClient = client
		return nil
	}
}

// WithMockServer answers requests from srv instead of the default mock
// server. Ignored when WithHTTPClient is also given.
func WithMockServer(srv *mockapi.Server) Option {
	return func(c *config) error {
		if srv == nil {
			return errors.New("mock server must not be nil")
		}
		c.mock = srv
		return nil
	}
}

// WithLogger attaches a logger for request outcomes.
func WithLogger(log Logger) Option {
	return func(c *config) error {
		c.log = ensureLogger(log)
		return nil
	}
}
