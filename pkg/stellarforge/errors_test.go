package stellarforge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("register: %w", &Error{Kind: KindAuthentication})
	assert.Equal(t, KindAuthentication, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrAuthentication))
}

func TestErrorIsMatchesOnlyOwnKind(t *testing.T) {
	err := &Error{Kind: KindServiceUnavailable, StatusCode: 503, Message: "API server error."}
	assert.True(t, errors.Is(err, ErrServiceUnavailable))
	assert.False(t, errors.Is(err, ErrAuthentication))
	assert.False(t, errors.Is(err, ErrInvalidCoordinates))
	assert.False(t, errors.Is(err, ErrUnexpected))
	assert.Equal(t, "stellarforge service_unavailable (status 503): API server error.", err.Error())
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "authentication", KindAuthentication.String())
	assert.Equal(t, "invalid_coordinates", KindInvalidCoordinates.String())
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}

func TestStarString(t *testing.T) {
	s := Star{ID: "mock-star-123", Name: "Vega"}
	assert.Equal(t, "<Star ID=mock-star-123, Name='Vega'>", s.String())
}

func TestStarFromResponseFlattensCoordinates(t *testing.T) {
	req := NewRegisterRequest("PROV-2025-ALPHA", 5.67, -32.11, "Vera C. Rubin Observatory")
	star := starResponse{
		StarID:       "id",
		Name:         req.Name,
		Coordinates:  req.Coordinates,
		ObservedBy:   req.ObservedBy,
		RegisteredAt: "2025-01-01T00:00:00Z",
	}.toStar()

	assert.Equal(t, req.Name, star.Name)
	assert.Equal(t, req.Coordinates.RA, star.RA)
	assert.Equal(t, req.Coordinates.Dec, star.Dec)
	assert.Equal(t, req.ObservedBy, star.ObservedBy)
	assert.Equal(t, "id", star.ID)
}
