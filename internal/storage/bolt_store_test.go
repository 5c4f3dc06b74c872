package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/samvad-hq/stellarforge/internal/domain"
	"github.com/samvad-hq/stellarforge/pkg/stellarforge"
)

func sampleRegistration(id, registeredAt string) domain.Registration {
	return domain.Registration{
		Star: stellarforge.Star{
			ID:           id,
			Name:         "PROV-2025-ALPHA",
			RA:           5.67,
			Dec:          -32.11,
			ObservedBy:   "Vera C. Rubin Observatory",
			RegisteredAt: registeredAt,
		},
		RecordedAt: time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC),
	}
}

func TestBoltStoreSavesAndExpiresRegistrations(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		RegistrationTTL: 1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	storeRaw, err := openBolt(filepath.Join(dir, "stars.db"), opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	if _, found, err := store.Registration("id1"); err != nil || found {
		t.Fatalf("expected unknown star, found=%v err=%v", found, err)
	}

	want := sampleRegistration("id1", "2025-01-01T00:00:00Z")
	if err := store.SaveRegistration(want); err != nil {
		t.Fatalf("SaveRegistration: %v", err)
	}

	got, found, err := store.Registration("id1")
	if err != nil || !found {
		t.Fatalf("expected stored star, found=%v err=%v", found, err)
	}
	if got.Star != want.Star || !got.RecordedAt.Equal(want.RecordedAt) {
		t.Fatalf("round trip mismatch: got %#v want %#v", got, want)
	}

	// Move the clock past the TTL and the cleanup cadence.
	store.now = func() time.Time { return time.Now().Add(2 * time.Second) }

	if _, found, err = store.Registration("id1"); err != nil {
		t.Fatalf("Registration after expiry: %v", err)
	}
	if found {
		t.Fatalf("expected entry to expire and be removed")
	}
}

func TestBoltStoreListsInRegistrationOrder(t *testing.T) {
	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "nested", "stars.db"), normalizeOptions(Options{}))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer storeRaw.Close()

	for _, reg := range []domain.Registration{
		sampleRegistration("b", "2025-01-02T00:00:00Z"),
		sampleRegistration("c", "2025-01-01T00:00:00Z"),
		sampleRegistration("a", "2025-01-02T00:00:00Z"),
	} {
		if err := storeRaw.SaveRegistration(reg); err != nil {
			t.Fatalf("SaveRegistration(%s): %v", reg.ID(), err)
		}
	}

	regs, err := storeRaw.Registrations()
	if err != nil {
		t.Fatalf("Registrations: %v", err)
	}
	var ids []string
	for _, r := range regs {
		ids = append(ids, r.ID())
	}
	if len(ids) != 3 || ids[0] != "c" || ids[1] != "a" || ids[2] != "b" {
		t.Fatalf("unexpected order %v", ids)
	}
}

func TestBoltStoreRejectsEmptyID(t *testing.T) {
	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "stars.db"), normalizeOptions(Options{}))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer storeRaw.Close()

	if err := storeRaw.SaveRegistration(domain.Registration{}); err == nil {
		t.Fatalf("expected error for empty star id")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.SaveRegistration(sampleRegistration("x", "")); err != nil {
		t.Fatalf("noop store SaveRegistration: %v", err)
	}
	if _, found, _ := store.Registration("x"); found {
		t.Fatalf("noop store should never find registrations")
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "x", Options{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for missing bbolt path")
	}
}
