package domain

import (
	"time"

	"github.com/samvad-hq/stellarforge/pkg/stellarforge"
)

// Domain contains core models shared by the runtime packages.

// Registration is a star this runtime registered, as kept in the local ledger.
type Registration struct {
	Star       stellarforge.Star `json:"star"`
	RecordedAt time.Time         `json:"recorded_at"`
}

// ID returns the registered star's identifier.
func (r Registration) ID() string { return r.Star.ID }
