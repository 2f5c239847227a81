package store

import (
	"context"
	"fmt"

	"deblinger/internal/reprint"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS reprint_groups (
	position       INTEGER PRIMARY KEY,
	name           TEXT NOT NULL,
	first_printing TEXT NOT NULL,
	reprints       TEXT[] NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS reprint_groups_first_printing_idx ON reprint_groups (first_printing);
`

// PostgresStore keeps the reprint table in a single PostgreSQL table, one row
// per group, reprint ids in a text[] column.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store on an open pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// OpenPostgres connects and pings the database.
func OpenPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")

	return pool, nil
}

// EnsureSchema creates the reprint_groups table.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create reprint schema: %w", err)
	}
	return nil
}

// Save replaces the stored table with groups in one transaction.
func (s *PostgresStore) Save(ctx context.Context, groups []reprint.Group) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM reprint_groups"); err != nil {
		return fmt.Errorf("clear reprint groups: %w", err)
	}

	batch := &pgx.Batch{}
	for i, g := range groups {
		batch.Queue(
			"INSERT INTO reprint_groups (position, name, first_printing, reprints) VALUES ($1, $2, $3, $4)",
			i, g.Name, g.FirstPrinting.ID, printingIDs(g.Reprints),
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert reprint groups: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reprint groups: %w", err)
	}

	log.Info().Int("groups", len(groups)).Msg("Saved reprint table to PostgreSQL")
	return nil
}

// Load implements reprint.Loader.
func (s *PostgresStore) Load(ctx context.Context) ([]reprint.Group, error) {
	rows, err := s.pool.Query(ctx, "SELECT name, first_printing, reprints FROM reprint_groups ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query reprint groups: %w", err)
	}
	defer rows.Close()

	var groups []reprint.Group
	for rows.Next() {
		var (
			name, first string
			reprints    []string
		)
		if err := rows.Scan(&name, &first, &reprints); err != nil {
			return nil, fmt.Errorf("scan reprint group: %w", err)
		}
		groups = append(groups, reprint.Group{
			Name:          name,
			FirstPrinting: reprint.PrintingRef{ID: first},
			Reprints:      printingRefs(reprints),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read reprint groups: %w", err)
	}

	return groups, nil
}
