// Package store persists the historical series in a local SQLite database so
// the service can serve real data across restarts while the upstream API is
// unavailable.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS climate_records (
	year INTEGER PRIMARY KEY,
	annual_mean REAL NOT NULL,
	five_year_smooth REAL NOT NULL
);
`

// Store is a SQLite-backed series cache. It implements series.Store.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database at %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		logger.Warn("could not enable WAL mode", "error", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// SaveSeries replaces the stored series with the given records in one
// transaction. The store always holds a complete snapshot, never a partial
// merge of fetches.
func (s *Store) SaveSeries(ctx context.Context, records []domain.HistoricalRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM climate_records"); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO climate_records (year, annual_mean, five_year_smooth) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Year, r.AnnualMean, r.FiveYearSmooth); err != nil {
			return fmt.Errorf("insert year %d: %w", r.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	s.logger.Debug("series snapshot saved", "records", len(records))
	return nil
}

// LoadSeries returns the stored series ordered ascending by year. An empty
// result with a nil error means the store holds no snapshot yet.
func (s *Store) LoadSeries(ctx context.Context) ([]domain.HistoricalRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT year, annual_mean, five_year_smooth FROM climate_records ORDER BY year")
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.HistoricalRecord
	for rows.Next() {
		var r domain.HistoricalRecord
		if err := rows.Scan(&r.Year, &r.AnnualMean, &r.FiveYearSmooth); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
