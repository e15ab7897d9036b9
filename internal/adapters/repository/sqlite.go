package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/okian/porra/pkg/logger"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var pragmas = []struct {
	name  string
	value string
}{
	{"journal_mode", "WAL"},
	{"synchronous", "NORMAL"},
	{"busy_timeout", "5000"},
	{"temp_store", "MEMORY"},
}

// SQLiteStore keeps snapshots in a SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	opts options
}

// NewSQLiteStore opens path, applies pragmas and runs pending migrations.
func NewSQLiteStore(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.logger.Info(ctx, "opening snapshot store", logger.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one writer; also keeps ":memory:" on a single database
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set PRAGMA %s: %w", p.name, err)
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, opts: o}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}
	p, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, source string, body []byte) (Snapshot, bool, error) {
	sum := Checksum(body)
	latest, err := s.Latest(ctx)
	switch {
	case err == nil && latest.Checksum == sum:
		return latest, false, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return Snapshot{}, false, err
	}

	snap := Snapshot{FetchedAt: s.opts.now().UTC(), Source: source, Checksum: sum, Body: body}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO feed_snapshots (fetched_at, source, checksum, body) VALUES (?, ?, ?, ?)`,
		snap.FetchedAt.UnixMilli(), snap.Source, snap.Checksum, snap.Body)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("insert snapshot: %w", err)
	}
	if snap.ID, err = res.LastInsertId(); err != nil {
		return Snapshot{}, false, fmt.Errorf("snapshot id: %w", err)
	}
	if r := s.opts.retention; r > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM feed_snapshots WHERE id NOT IN (SELECT id FROM feed_snapshots ORDER BY id DESC LIMIT ?)`, r); err != nil {
			return Snapshot{}, false, fmt.Errorf("prune snapshots: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Snapshot{}, false, fmt.Errorf("commit: %w", err)
	}
	s.opts.logger.Debug(ctx, "feed snapshot saved",
		logger.Any("id", snap.ID),
		logger.String("source", source),
		logger.Int("bytes", len(body)))
	return snap, true, nil
}

// Latest implements Store.
func (s *SQLiteStore) Latest(ctx context.Context) (Snapshot, error) {
	var (
		snap Snapshot
		ms   int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, fetched_at, source, checksum, body FROM feed_snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&snap.ID, &ms, &snap.Source, &snap.Checksum, &snap.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("latest snapshot: %w", err)
	}
	snap.FetchedAt = time.UnixMilli(ms).UTC()
	return snap, nil
}

// Count implements Store.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feed_snapshots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
