package stellarforge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/samvad-hq/stellarforge/pkg/httpclient"
	"github.com/samvad-hq/stellarforge/pkg/mockapi"
)

const (
	// APIKeyHeader carries the static API key on every request.
	APIKeyHeader = mockapi.APIKeyHeader

	starsPath = "/v1/stars"
)

// Client registers stars with the StellarForge API. It holds only the API key
// and its transport, so one Client can serve any number of calls.
type Client struct {
	apiKey  string
	baseURL string
	http    httpclient.Client
	log     Logger
}

// NewClient builds a Client authenticating with apiKey. The key is sent as
// given; an empty or rejected key surfaces as a KindAuthentication error.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	cfg := config{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		log:     noopLogger{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("apply client option: %w", err)
		}
	}

	hc := cfg.httpClient
	if hc == nil {
		srv := cfg.mock
		if srv == nil {
			srv = mockapi.New()
		}
		hc = httpclient.NewRestyClientWithTransport(cfg.timeout, srv.RoundTripper())
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: cfg.baseURL,
		http:    hc,
		log:     cfg.log,
	}, nil
}

// Register registers a new star. Arguments are not validated locally; the
// API decides and any rejection comes back as an *Error.
func (c *Client) Register(ctx context.Context, name string, ra, dec float64, observedBy string) (Star, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	headers := map[string]string{
		APIKeyHeader: c.apiKey,
	}
	body := NewRegisterRequest(name, ra, dec, observedBy)

	resp, err := c.http.Post(ctx, c.baseURL+starsPath, headers, body)
	if err != nil {
		c.log.WarnObj("star registration request failed", "stellarforge_transport_error", map[string]any{
			"name":  name,
			"error": err.Error(),
		})
		return Star{}, &Error{Kind: KindUnexpected, Message: "request failed", Err: err}
	}

	star, err := decodeResponse(resp.StatusCode(), resp.Body())
	if err != nil {
		c.log.WarnObj("star registration rejected", "stellarforge_error", map[string]any{
			"name":   name,
			"status": resp.StatusCode(),
			"kind":   KindOf(err).String(),
			"error":  err.Error(),
		})
		return Star{}, err
	}

	c.log.InfoObj("star registered", "stellarforge_star", star)
	return star, nil
}

// decodeResponse maps a status/payload pair onto a Star or an *Error.
func decodeResponse(status int, payload []byte) (Star, error) {
	switch {
	case status == http.StatusCreated:
		var out starResponse
		if err := json.Unmarshal(payload, &out); err != nil {
			return Star{}, &Error{
				Kind:       KindUnexpected,
				StatusCode: status,
				Message:    "malformed success payload",
				Body:       payload,
				Err:        err,
			}
		}
		return out.toStar(), nil
	case status == http.StatusUnauthorized:
		return Star{}, &Error{
			Kind:       KindAuthentication,
			StatusCode: status,
			Message:    serverMessage(payload, defaultAuthMessage),
		}
	case status == http.StatusBadRequest:
		return Star{}, &Error{
			Kind:       KindInvalidCoordinates,
			StatusCode: status,
			Message:    serverMessage(payload, defaultInvalidMessage),
		}
	case status >= http.StatusInternalServerError:
		return Star{}, &Error{
			Kind:       KindServiceUnavailable,
			StatusCode: status,
			Message:    serviceUnavailableMessage,
		}
	default:
		return Star{}, &Error{
			Kind:       KindUnexpected,
			StatusCode: status,
			Message:    fmt.Sprintf("API returned unexpected status code %d: %s", status, strings.TrimSpace(string(payload))),
			Body:       payload,
		}
	}
}

// serverMessage returns the message field of an error payload, or def when
// the payload has none.
func serverMessage(payload []byte, def string) string {
	var out errorResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return def
	}
	if msg := strings.TrimSpace(out.Message); msg != "" {
		return msg
	}
	return def
}
