package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using a local SQLite database.
// Every collection shares one records table keyed by collection name.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// SQLite allows a single writer; one pooled connection avoids
	// SQLITE_BUSY and keeps :memory: databases coherent across calls.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Get returns every record in the named collection, ordered by id.
func (s *SQLiteStore) Get(ctx context.Context, collection string) ([]Record, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, data FROM records WHERE collection = ? ORDER BY id",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", collection, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec  Record
			data string
		)
		if err := rows.Scan(&rec.ID, &data); err != nil {
			return nil, fmt.Errorf("scanning record in %s: %w", collection, err)
		}
		rec.Data = json.RawMessage(data)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Add marshals doc and appends it to the collection with a fresh id.
func (s *SQLiteStore) Add(ctx context.Context, collection string, doc any) (Record, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return Record{}, fmt.Errorf("marshaling record for %s: %w", collection, err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO records (collection, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		collection, string(data), now, now,
	)
	if err != nil {
		return Record{}, fmt.Errorf("inserting into %s: %w", collection, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("reading new id for %s: %w", collection, err)
	}

	return Record{ID: id, Data: data}, nil
}

// Update replaces the document of the record with the given id.
func (s *SQLiteStore) Update(ctx context.Context, collection string, id int64, doc any) (Record, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return Record{}, fmt.Errorf("marshaling record %d for %s: %w", id, collection, err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE records SET data = ?, updated_at = ?
		WHERE collection = ? AND id = ?`,
		string(data), time.Now().UTC(), collection, id,
	)
	if err != nil {
		return Record{}, fmt.Errorf("updating record %d in %s: %w", id, collection, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Record{}, fmt.Errorf("checking update of record %d in %s: %w", id, collection, err)
	}
	if affected == 0 {
		return Record{}, fmt.Errorf("updating record %d in %s: %w", id, collection, ErrNotFound)
	}

	return Record{ID: id, Data: data}, nil
}

// Delete removes the record with the given id from the collection.
func (s *SQLiteStore) Delete(ctx context.Context, collection string, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM records WHERE collection = ? AND id = ?",
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("deleting record %d from %s: %w", id, collection, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of record %d from %s: %w", id, collection, err)
	}
	if affected == 0 {
		return fmt.Errorf("deleting record %d from %s: %w", id, collection, ErrNotFound)
	}

	return nil
}
