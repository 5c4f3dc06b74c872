package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samvad-hq/stellarforge/internal/domain"
	"github.com/samvad-hq/stellarforge/pkg/stellarforge"

	// Registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS stars (
	id            TEXT    PRIMARY KEY,
	name          TEXT    NOT NULL,
	ra            REAL    NOT NULL,
	dec           REAL    NOT NULL,
	observed_by   TEXT    NOT NULL,
	registered_at TEXT    NOT NULL,
	recorded_at   INTEGER NOT NULL,
	expires_at    INTEGER NOT NULL
)`

// sqliteStore implements a Store backed by a SQLite file.
type sqliteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// openSQLite opens (creating if needed) the SQLite ledger at path.
func openSQLite(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create stars table: %w", err)
	}

	return &sqliteStore{db: db, ttl: opts.RegistrationTTL, now: time.Now}, nil
}

// Close closes the SQLite store.
func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRegistration stores reg under its star ID, replacing any earlier entry.
func (s *sqliteStore) SaveRegistration(reg domain.Registration) error {
	id := strings.TrimSpace(reg.ID())
	if id == "" {
		return errors.New("registration has no star id")
	}

	now := s.now()
	if err := s.deleteExpired(now); err != nil {
		return err
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO stars (id, name, ra, dec, observed_by, registered_at, recorded_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, reg.Star.Name, reg.Star.RA, reg.Star.Dec, reg.Star.ObservedBy, reg.Star.RegisteredAt,
		reg.RecordedAt.UTC().UnixNano(), now.Add(s.ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert star %q: %w", id, err)
	}
	return nil
}

// Registration returns the unexpired registration for id.
func (s *sqliteStore) Registration(id string) (domain.Registration, bool, error) {
	row := s.db.QueryRow(
		`SELECT id, name, ra, dec, observed_by, registered_at, recorded_at
		 FROM stars WHERE id = ? AND expires_at > ?`,
		strings.TrimSpace(id), s.now().Unix(),
	)
	reg, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Registration{}, false, nil
	}
	if err != nil {
		return domain.Registration{}, false, fmt.Errorf("query star %q: %w", id, err)
	}
	return reg, true, nil
}

// Registrations lists every unexpired registration.
func (s *sqliteStore) Registrations() ([]domain.Registration, error) {
	now := s.now()
	if err := s.deleteExpired(now); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT id, name, ra, dec, observed_by, registered_at, recorded_at
		 FROM stars WHERE expires_at > ?`,
		now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("query stars: %w", err)
	}
	defer rows.Close()

	var out []domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan star: %w", err)
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stars: %w", err)
	}
	sortRegistrations(out)
	return out, nil
}

func (s *sqliteStore) deleteExpired(now time.Time) error {
	if _, err := s.db.Exec(`DELETE FROM stars WHERE expires_at <= ?`, now.Unix()); err != nil {
		return fmt.Errorf("delete expired stars: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (domain.Registration, error) {
	var (
		star       stellarforge.Star
		recordedAt int64
	)
	if err := row.Scan(&star.ID, &star.Name, &star.RA, &star.Dec, &star.ObservedBy, &star.RegisteredAt, &recordedAt); err != nil {
		return domain.Registration{}, err
	}
	return domain.Registration{Star: star, RecordedAt: time.Unix(0, recordedAt).UTC()}, nil
}
