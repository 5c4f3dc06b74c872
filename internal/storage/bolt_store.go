package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samvad-hq/stellarforge/internal/domain"
	bolt "go.etcd.io/bbolt"
)

const (
	starBucket       = "stars"
	expiryValueBytes = 8
)

var errBucketMissing = errors.New("star bucket missing")

// boltStore implements a Store backed by BoltDB. Each value is an 8-byte
// big-endian expiry followed by the JSON registration.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	ttl             time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(starBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		ttl:             opts.RegistrationTTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	store.lastCleanup.Store(store.now().Unix())
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SaveRegistration stores reg under its star ID, replacing any earlier entry.
func (b *boltStore) SaveRegistration(reg domain.Registration) error {
	if b == nil || b.db == nil {
		return nil
	}
	id := strings.TrimSpace(reg.ID())
	if id == "" {
		return errors.New("registration has no star id")
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}

	raw, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("encode registration: %w", err)
	}
	value := make([]byte, expiryValueBytes, expiryValueBytes+len(raw))
	binary.BigEndian.PutUint64(value, uint64(now.Add(b.ttl).Unix()))
	value = append(value, raw...)

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(starBucket))
		if bucket == nil {
			return errBucketMissing
		}
		return bucket.Put([]byte(id), value)
	})
}

// Registration returns the unexpired registration for id.
func (b *boltStore) Registration(id string) (domain.Registration, bool, error) {
	if b == nil || b.db == nil {
		return domain.Registration{}, false, nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return domain.Registration{}, false, err
	}

	var (
		reg   domain.Registration
		found bool
	)
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(starBucket))
		if bucket == nil {
			return errBucketMissing
		}

		key := []byte(strings.TrimSpace(id))
		value := bucket.Get(key)
		if value == nil {
			return nil
		}

		expiry, ok := decodeExpiry(value)
		if !ok || !expiry.After(now) {
			return bucket.Delete(key)
		}
		if err := json.Unmarshal(value[expiryValueBytes:], &reg); err != nil {
			return fmt.Errorf("decode registration %q: %w", id, err)
		}
		found = true
		return nil
	})
	return reg, found, err
}

// Registrations lists every unexpired registration.
func (b *boltStore) Registrations() ([]domain.Registration, error) {
	if b == nil || b.db == nil {
		return nil, nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return nil, err
	}

	var out []domain.Registration
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(starBucket))
		if bucket == nil {
			return errBucketMissing
		}
		return bucket.ForEach(func(k, v []byte) error {
			expiry, ok := decodeExpiry(v)
			if !ok || !expiry.After(now) {
				return nil
			}
			var reg domain.Registration
			if err := json.Unmarshal(v[expiryValueBytes:], &reg); err != nil {
				return fmt.Errorf("decode registration %q: %w", k, err)
			}
			out = append(out, reg)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortRegistrations(out)
	return out, nil
}

// maybeCleanupExpired removes expired registrations on a fixed cadence to avoid unbounded growth.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(starBucket))
		if bucket == nil {
			return errBucketMissing
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			expiry, ok := decodeExpiry(v)
			if !ok || !expiry.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

// decodeExpiry decodes the expiry prefix of a stored value.
func decodeExpiry(value []byte) (time.Time, bool) {
	if len(value) < expiryValueBytes {
		return time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:expiryValueBytes]))
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
