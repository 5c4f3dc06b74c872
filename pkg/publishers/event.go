package publishers

import (
	"time"

	"github.com/samvad-hq/stellarforge/pkg/stellarforge"
)

// EventStarRegistered is the type of events emitted after a registration.
const EventStarRegistered = "star.registered"

// Event represents the payload published downstream.
type Event struct {
	Type        string            `json:"type"`
	Star        stellarforge.Star `json:"star"`
	PublishedAt time.Time         `json:"published_at"`
}

// NewEvent constructs a star.registered Event for star.
func NewEvent(star stellarforge.Star) Event {
	return Event{
		Type:        EventStarRegistered,
		Star:        star,
		PublishedAt: time.Now().UTC(),
	}
}

// attributes are the message attributes brokers index events by.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_type": e.Type,
		"star_id":    e.Star.ID,
	}
}
