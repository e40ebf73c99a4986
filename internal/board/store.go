package board

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens sqlite with sensible defaults.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return db, nil
}

// WithTx runs fn in a transaction.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Store persists card placements per board.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save replaces the board's saved placements with the given snapshot.
func (s *Store) Save(ctx context.Context, boardName string, placements []Placement) error {
	return WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM placements WHERE board = ?`, boardName); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO placements(board, container, card, position)
		VALUES (?, ?, ?, ?);
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, p := range placements {
			if _, err := stmt.ExecContext(ctx, boardName, p.Container, p.Card, p.Position); err != nil {
				return fmt.Errorf("insert placement %q: %w", p.Card, err)
			}
		}
		return nil
	})
}

// Load retrieves the board's saved placements in container, position order.
// A board with no saved state returns an empty slice.
func (s *Store) Load(ctx context.Context, boardName string) ([]Placement, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT container, card, position FROM placements
	WHERE board = ?
	ORDER BY container, position, card`, boardName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Placement
	for rows.Next() {
		var p Placement
		if err := rows.Scan(&p.Container, &p.Card, &p.Position); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
