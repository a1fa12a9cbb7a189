package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"RSICheck/internal/model"
)

// SQLiteStore keeps fetched bars in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the dashboard read while a scan writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:  db,
		log: log.With().Str("component", "store").Logger(),
		now: time.Now,
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Info().Str("path", dbPath).Msg("sqlite bar cache opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetches (
			symbol     TEXT    NOT NULL,
			span       TEXT    NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (symbol, span)
		)`,

		`CREATE TABLE IF NOT EXISTS bars (
			symbol    TEXT    NOT NULL,
			span      TEXT    NOT NULL,
			timestamp INTEGER NOT NULL,
			open      REAL,
			high      REAL,
			low       REAL,
			close     REAL    NOT NULL,
			volume    REAL,
			PRIMARY KEY (symbol, span, timestamp)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, symbol, rng string, maxAge time.Duration) ([]model.PriceBar, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fetchedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM fetches WHERE symbol = ? AND span = ?`, symbol, rng).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s fetch time: %w", symbol, err)
	}
	if s.now().Sub(time.Unix(fetchedAt, 0)) >= maxAge {
		return nil, false, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT timestamp, open, high, low, close, volume
		FROM bars WHERE symbol = ? AND span = ? ORDER BY timestamp`, symbol, rng)
	if err != nil {
		return nil, false, fmt.Errorf("load %s bars: %w", symbol, err)
	}
	defer rows.Close()

	var bars []model.PriceBar
	for rows.Next() {
		var ts int64
		var b model.PriceBar
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, false, fmt.Errorf("scan %s bar: %w", symbol, err)
		}
		b.Time = time.Unix(ts, 0)
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return bars, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, symbol, rng string, bars []model.PriceBar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bars WHERE symbol = ? AND span = ?`, symbol, rng); err != nil {
		return fmt.Errorf("clear %s bars: %w", symbol, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO bars
		(symbol, span, timestamp, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, symbol, rng, b.Time.Unix(),
			b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert %s bar: %w", symbol, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO fetches (symbol, span, fetched_at) VALUES (?,?,?)
		ON CONFLICT(symbol, span) DO UPDATE SET fetched_at = excluded.fetched_at`,
		symbol, rng, s.now().Unix()); err != nil {
		return fmt.Errorf("touch %s fetch time: %w", symbol, err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	s.log.Info().Msg("closing sqlite bar cache")
	return s.db.Close()
}
