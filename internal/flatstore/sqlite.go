package flatstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/kpetrova/oracle/internal/dbx"
	"github.com/kpetrova/oracle/internal/flatstore/migrations"
	"github.com/pressly/goose/v3"
)

// SQLiteStore implements Store on top of a single generic SQLite table
// (tab, pos, doc). It works through a DBTX, so it can run against either
// *sql.DB or an enclosing transaction.
type SQLiteStore struct {
	db dbx.DBTX
}

// NewSQLiteStore returns a new SQLiteStore bound to the given DBTX.
func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens the SQLite database at dsn and brings the schema up to date.
// The caller owns the returned handle.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ReadTable returns the records of the named table in stored order.
// A table that was never written reads as an empty slice, not an error.
func (s *SQLiteStore) ReadTable(ctx context.Context, name string) ([]json.RawMessage, error) {
	query := `SELECT doc FROM flat_records WHERE tab = ? ORDER BY pos`
	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", name, err)
	}
	defer rows.Close()

	result := make([]json.RawMessage, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		result = append(result, json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WriteTable replaces the whole named table with records, keeping their
// order. The delete and the inserts run in one transaction when s is bound
// to a *sql.DB; bound to a *sql.Tx it joins the caller's transaction.
func (s *SQLiteStore) WriteTable(ctx context.Context, name string, records []json.RawMessage) error {
	if db, ok := s.db.(*sql.DB); ok {
		return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return writeTable(ctx, tx, name, records)
		})
	}
	return writeTable(ctx, s.db, name, records)
}

func writeTable(ctx context.Context, tx dbx.DBTX, name string, records []json.RawMessage) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM flat_records WHERE tab = ?`, name); err != nil {
		return fmt.Errorf("failed to clear table %s: %w", name, err)
	}
	for pos, doc := range records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO flat_records (tab, pos, doc) VALUES (?, ?, ?)`,
			name, pos, []byte(doc))
		if err != nil {
			return fmt.Errorf("failed to write table %s: %w", name, err)
		}
	}
	return nil
}
