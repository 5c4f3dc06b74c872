// Package mockapi is an in-process stand-in for the StellarForge API. It
// applies the registration endpoint's validation rules and answers with the
// same status codes and payloads the real service documents.
package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// APIKeyHeader carries the static API key.
	APIKeyHeader = "X-Api-Key"

	// InvalidAPIKey is always rejected with 401.
	InvalidAPIKey = "INVALID-KEY-401"
	// ServerErrorAPIKey makes an otherwise valid request fail with 500.
	ServerErrorAPIKey = "TRIGGER-500-ERROR"

	// DefaultStarID is the identifier assigned when no generator is configured.
	DefaultStarID = "mock-star-123"

	// TimestampLayout is the UTC ISO-8601 layout of registered_at.
	TimestampLayout = "2006-01-02T15:04:05Z"
)

// DefaultRegisteredAt is the fixed registration time of the default server.
var DefaultRegisteredAt = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

type coordinates struct {
	RA  *float64 `json:"ra"`
	Dec *float64 `json:"dec"`
}

type registerBody struct {
	Name        string       `json:"name"`
	Coordinates *coordinates `json:"coordinates"`
	ObservedBy  string       `json:"observed_by"`
}

type createdPayload struct {
	StarID       string      `json:"star_id"`
	Name         string      `json:"name"`
	Coordinates  coordinates `json:"coordinates"`
	ObservedBy   string      `json:"observed_by"`
	RegisteredAt string      `json:"registered_at"`
}

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Server simulates the registration endpoint. The zero value is not usable;
// build one with New.
type Server struct {
	newID    func() string
	now      func() time.Time
	checkDec bool
	log      Logger
}

// Option configures a Server.
type Option func(*Server)

// WithIDGenerator sets the function producing star identifiers.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock sets the source of registration timestamps.
func WithClock(fn func() time.Time) Option {
	return func(s *Server) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithDeclinationCheck makes the server reject declinations outside
// [-90, 90]. Without it declination is echoed back unchecked.
func WithDeclinationCheck() Option {
	return func(s *Server) { s.checkDec = true }
}

// WithLogger attaches a logger for request outcomes.
func WithLogger(log Logger) Option {
	return func(s *Server) { s.log = ensureLogger(log) }
}

// UUIDGenerator returns identifiers of the form SF-<uuid>.
func UUIDGenerator() func() string {
	return func() string { return "SF-" + uuid.NewString() }
}

// New builds a Server. Without options it assigns DefaultStarID and
// DefaultRegisteredAt to every registration.
func New(opts ...Option) *Server {
	s := &Server{
		newID: func() string { return DefaultStarID },
		now:   func() time.Time { return DefaultRegisteredAt },
		log:   noopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultServer = New()

// Call runs a request against the default server.
func Call(method, path string, headers http.Header, body []byte) (int, []byte) {
	return defaultServer.Call(method, path, headers, body)
}

// Call validates a registration request and returns the status code and
// JSON payload the API would send. Method and path are not inspected.
func (s *Server) Call(method, path string, headers http.Header, body []byte) (int, []byte) {
	var req registerBody
	if err := json.Unmarshal(body, &req); err != nil {
		req = registerBody{}
	}

	ra := req.ra()
	if ra == nil || *ra < 0 || *ra > 24 {
		return s.fail(http.StatusBadRequest, "Invalid Input", "Right Ascension (ra) must be between 0 and 24.", method, path)
	}
	if s.checkDec {
		dec := req.dec()
		if dec == nil || *dec < -90 || *dec > 90 {
			return s.fail(http.StatusBadRequest, "Invalid Input", "Declination (dec) must be between -90 and 90.", method, path)
		}
	}

	key := strings.TrimSpace(headers.Get(APIKeyHeader))
	if key == "" || key == InvalidAPIKey {
		return s.fail(http.StatusUnauthorized, "Authentication Failed", "Invalid API Key provided.", method, path)
	}
	if key == ServerErrorAPIKey {
		return s.fail(http.StatusInternalServerError, "Internal Error", "Database write failed. The server is down.", method, path)
	}

	out := createdPayload{
		StarID:       s.newID(),
		Name:         req.Name,
		Coordinates:  *req.Coordinates,
		ObservedBy:   req.ObservedBy,
		RegisteredAt: s.now().UTC().Format(TimestampLayout),
	}
	s.log.DebugObj("mock api registered star", "mockapi_created", map[string]any{
		"star_id": out.StarID,
		"name":    out.Name,
	})
	return http.StatusCreated, mustJSON(out)
}

func (s *Server) fail(status int, code, msg, method, path string) (int, []byte) {
	s.log.DebugObj("mock api rejected request", "mockapi_rejected", map[string]any{
		"status": status,
		"method": method,
		"path":   path,
		"error":  code,
	})
	return status, mustJSON(errorPayload{Error: code, Message: msg})
}

func (b registerBody) ra() *float64 {
	if b.Coordinates == nil {
		return nil
	}
	return b.Coordinates.RA
}

func (b registerBody) dec() *float64 {
	if b.Coordinates == nil {
		return nil
	}
	return b.Coordinates.Dec
}

// mustJSON encodes payload types that contain only strings and floats.
func mustJSON(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}
