package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotTable holds one row per collection. The body column is JSON (not
// JSONB) so key order survives.
const SnapshotTable = "cuidate_snapshots"

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PGStore keeps a collection as a row of the snapshot table.
type PGStore struct {
	db   querier
	name string
	now  func() time.Time
	// pinned is set when a malformed row could not be copied aside.
	pinned bool
}

// NewPGStore returns a store for the named collection.
func NewPGStore(pool *pgxpool.Pool, name string) *PGStore {
	return &PGStore{db: pool, name: name, now: time.Now}
}

// EnsureSchema creates the snapshot table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+SnapshotTable+` (
    name       TEXT PRIMARY KEY,
    body       JSON NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`)
	if err != nil {
		return fmt.Errorf("create %s: %w", SnapshotTable, err)
	}
	return nil
}

// Load reads the snapshot row. A row that cannot be decoded is copied to
// <name>.corrupt-<timestamp> before ErrMalformed is returned. When the copy
// fails the error also matches ErrBackupFailed and Save refuses to write.
func (s *PGStore) Load(ctx context.Context) ([]Document, error) {
	var body string
	err := s.db.QueryRow(ctx, `SELECT body::text FROM `+SnapshotTable+` WHERE name = $1`, s.name).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", s.name, err)
	}

	docs, err := Decode([]byte(body))
	if err != nil {
		backup := fmt.Sprintf("%s.corrupt-%s", s.name, s.now().Format("20060102150405"))
		malformed := fmt.Errorf("%w: %s: %v", ErrMalformed, s.name, err)
		_, xerr := s.db.Exec(ctx, `INSERT INTO `+SnapshotTable+` (name, body)
			SELECT $2, body FROM `+SnapshotTable+` WHERE name = $1
			ON CONFLICT (name) DO NOTHING`, s.name, backup)
		if xerr != nil {
			s.pinned = true
			return nil, errors.Join(malformed, fmt.Errorf("%w: %v", ErrBackupFailed, xerr))
		}
		return nil, malformed
	}
	return docs, nil
}

// Save upserts the snapshot row.
func (s *PGStore) Save(ctx context.Context, docs []Document) error {
	if s.pinned {
		return fmt.Errorf("save snapshot %s: %w", s.name, ErrBackupFailed)
	}
	data, err := Encode(docs)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `INSERT INTO `+SnapshotTable+` (name, body, updated_at)
		VALUES ($1, $2::json, NOW())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		s.name, string(data))
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.name, err)
	}
	return nil
}
