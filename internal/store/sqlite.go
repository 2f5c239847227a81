package store

import (
	"context"
	"database/sql"
	"fmt"

	"deblinger/internal/reprint"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS reprint_groups (
	position       INTEGER PRIMARY KEY,
	name           TEXT NOT NULL,
	first_printing TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS reprint_printings (
	group_position INTEGER NOT NULL REFERENCES reprint_groups(position) ON DELETE CASCADE,
	position       INTEGER NOT NULL,
	printing_id    TEXT NOT NULL,
	PRIMARY KEY (group_position, position)
);
`

// SQLiteStore keeps the reprint table in a local SQLite file, for use
// without a database server.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open SQLite: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create reprint schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("Opened SQLite reprint store")
	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the stored table with groups in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, groups []reprint.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM reprint_printings", "DELETE FROM reprint_groups"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear reprint table: %w", err)
		}
	}

	insertGroup, err := tx.PrepareContext(ctx, "INSERT INTO reprint_groups (position, name, first_printing) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare group insert: %w", err)
	}
	defer insertGroup.Close()

	insertPrinting, err := tx.PrepareContext(ctx, "INSERT INTO reprint_printings (group_position, position, printing_id) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare printing insert: %w", err)
	}
	defer insertPrinting.Close()

	for i, g := range groups {
		if _, err := insertGroup.ExecContext(ctx, i, g.Name, g.FirstPrinting.ID); err != nil {
			return fmt.Errorf("insert group %q: %w", g.Name, err)
		}
		for j, r := range g.Reprints {
			if _, err := insertPrinting.ExecContext(ctx, i, j, r.ID); err != nil {
				return fmt.Errorf("insert reprint %s: %w", r.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reprint table: %w", err)
	}

	log.Info().Int("groups", len(groups)).Msg("Saved reprint table to SQLite")
	return nil
}

// Load implements reprint.Loader.
func (s *SQLiteStore) Load(ctx context.Context) ([]reprint.Group, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT position, name, first_printing FROM reprint_groups ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query reprint groups: %w", err)
	}
	defer rows.Close()

	var groups []reprint.Group
	index := make(map[int]int)
	for rows.Next() {
		var (
			pos         int
			name, first string
		)
		if err := rows.Scan(&pos, &name, &first); err != nil {
			return nil, fmt.Errorf("scan reprint group: %w", err)
		}
		index[pos] = len(groups)
		groups = append(groups, reprint.Group{
			Name:          name,
			FirstPrinting: reprint.PrintingRef{ID: first},
			Reprints:      []reprint.PrintingRef{},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read reprint groups: %w", err)
	}

	prows, err := s.db.QueryContext(ctx, "SELECT group_position, printing_id FROM reprint_printings ORDER BY group_position, position")
	if err != nil {
		return nil, fmt.Errorf("query reprint printings: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var (
			pos int
			id  string
		)
		if err := prows.Scan(&pos, &id); err != nil {
			return nil, fmt.Errorf("scan reprint printing: %w", err)
		}
		i, ok := index[pos]
		if !ok {
			continue
		}
		groups[i].Reprints = append(groups[i].Reprints, reprint.PrintingRef{ID: id})
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("read reprint printings: %w", err)
	}

	return groups, nil
}
