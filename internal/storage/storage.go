// Package storage keeps a local ledger of registered stars.
package storage

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samvad-hq/stellarforge/internal/domain"
)

// Store records registrations by star ID.
type Store interface {
	Close() error
	SaveRegistration(reg domain.Registration) error
	Registration(id string) (domain.Registration, bool, error)
	Registrations() ([]domain.Registration, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	RegistrationTTL time.Duration
	CleanupInterval time.Duration
}

const (
	defaultRegistrationTTL = 365 * 24 * time.Hour
	defaultCleanupInterval = 24 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	case "sqlite":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("sqlite storage requires a path")
		}
		return openSQLite(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.RegistrationTTL <= 0 {
		opts.RegistrationTTL = defaultRegistrationTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

// sortRegistrations orders by registration time, then star ID.
func sortRegistrations(regs []domain.Registration) {
	sort.SliceStable(regs, func(i, j int) bool {
		a, b := regs[i], regs[j]
		if a.Star.RegisteredAt != b.Star.RegisteredAt {
			return a.Star.RegisteredAt < b.Star.RegisteredAt
		}
		return a.Star.ID < b.Star.ID
	})
}

type noopStore struct{}

func (noopStore) Close() error                               { return nil }
func (noopStore) SaveRegistration(domain.Registration) error { return nil }
func (noopStore) Registration(string) (domain.Registration, bool, error) {
	return domain.Registration{}, false, nil
}
func (noopStore) Registrations() ([]domain.Registration, error) { return nil, nil }
