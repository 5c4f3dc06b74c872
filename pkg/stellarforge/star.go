package stellarforge

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// TimestampLayout is the layout of Star.RegisteredAt.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Star is a successfully registered celestial object.
type Star struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	RA           float64 `json:"ra"`
	Dec          float64 `json:"dec"`
	ObservedBy   string  `json:"observed_by"`
	RegisteredAt string  `json:"registered_at"`
}

// String renders a short debugging form of the star.
func (s Star) String() string {
	return fmt.Sprintf("<Star ID=%s, Name='%s'>", s.ID, s.Name)
}

// RegisteredTime parses RegisteredAt.
func (s Star) RegisteredTime() (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s.RegisteredAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse registered_at %q: %w", s.RegisteredAt, err)
	}
	return t, nil
}

// Coordinates is the nested celestial position used on the wire.
type Coordinates struct {
	RA  float64 `json:"ra"`
	Dec float64 `json:"dec"`
}

// MarshalJSON writes NaN and infinities as null so the API sees them as
// missing values instead of the encoder failing.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RA  *float64 `json:"ra"`
		Dec *float64 `json:"dec"`
	}{RA: finite(c.RA), Dec: finite(c.Dec)})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// RegisterRequest is the body of POST /v1/stars.
type RegisterRequest struct {
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	ObservedBy  string      `json:"observed_by"`
}

// NewRegisterRequest nests flat registration arguments into a request body.
func NewRegisterRequest(name string, ra, dec float64, observedBy string) RegisterRequest {
	return RegisterRequest{
		Name:        name,
		Coordinates: Coordinates{RA: ra, Dec: dec},
		ObservedBy:  observedBy,
	}
}

// starResponse is the 201 body. star_id becomes Star.ID and the coordinates
// are flattened.
type starResponse struct {
	StarID       string      `json:"star_id"`
	Name         string      `json:"name"`
	Coordinates  Coordinates `json:"coordinates"`
	ObservedBy   string      `json:"observed_by"`
	RegisteredAt string      `json:"registered_at"`
}

func (r starResponse) toStar() Star {
	return Star{
		ID:           r.StarID,
		Name:         r.Name,
		RA:           r.Coordinates.RA,
		Dec:          r.Coordinates.Dec,
		ObservedBy:   r.ObservedBy,
		RegisteredAt: r.RegisteredAt,
	}
}

// errorResponse is the 400/401 body.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
