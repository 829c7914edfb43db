// Package store handles SQLite persistence for the offline ledger.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/typee/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for minted scores.
type Store struct {
	db *sql.DB
}

// MintedScore is a score object created by a transaction.
type MintedScore struct {
	Digest    string
	ObjectID  string
	Owner     string
	WPM       int
	Accuracy  int
	CreatedAt time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS wallet (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			address TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS transactions (
			digest TEXT PRIMARY KEY,
			sender TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS scores (
			object_id TEXT PRIMARY KEY,
			digest TEXT NOT NULL,
			owner TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_owner ON scores(owner, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_digest ON scores(digest);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Address returns the stored wallet address, creating it with newAddress on
// first use.
func (s *Store) Address(ctx context.Context, newAddress func() string) (string, error) {
	var address string
	err := s.db.QueryRowContext(ctx, `SELECT address FROM wallet WHERE id = 1`).Scan(&address)
	if err == nil {
		return address, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	address = newAddress()
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO wallet (id, address) VALUES (1, ?)`, address); err != nil {
		return "", err
	}
	// Another process may have won the insert.
	if err := s.db.QueryRowContext(ctx, `SELECT address FROM wallet WHERE id = 1`).Scan(&address); err != nil {
		return "", err
	}
	return address, nil
}

// InsertScore records the transaction and the score object it created.
func (s *Store) InsertScore(ctx context.Context, score MintedScore) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	createdAt := score.CreatedAt.UTC().Format(time.RFC3339Nano)
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (digest, sender, created_at) VALUES (?, ?, ?)`,
		score.Digest, score.Owner, createdAt,
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO scores (object_id, digest, owner, wpm, accuracy, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		score.ObjectID, score.Digest, score.Owner, score.WPM, score.Accuracy, createdAt,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// CreatedObjects returns the objects created by a transaction. found is false
// when the digest is unknown.
func (s *Store) CreatedObjects(ctx context.Context, digest string) (ids []string, found bool, err error) {
	var exists int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE digest = ?`, digest).Scan(&exists)
	if err != nil {
		return nil, false, err
	}
	if exists == 0 {
		return nil, false, nil
	}
	rows, err := s.db.QueryContext(ctx, `SELECT object_id FROM scores WHERE digest = ? ORDER BY rowid`, digest)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, false, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return ids, true, nil
}

// ListScores returns the scores owned by owner, oldest first.
func (s *Store) ListScores(ctx context.Context, owner string) ([]model.ScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT object_id, wpm, accuracy FROM scores WHERE owner = ? ORDER BY created_at ASC, rowid ASC`,
		owner)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.ScoreRecord
	for rows.Next() {
		var r model.ScoreRecord
		if err := rows.Scan(&r.ID, &r.WPM, &r.Accuracy); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
