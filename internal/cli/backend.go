package cli

import (
	"context"
	"fmt"

	"deblinger/internal/config"
	"deblinger/internal/reprint"
	"deblinger/internal/resolver"
	"deblinger/internal/store"

	"github.com/rs/zerolog/log"
)

// backend is an opened table source.
type backend struct {
	source string
	loader reprint.Loader
	// saver is nil for the file source.
	saver reprint.Saver
	// graph is set only for the neo4j source.
	graph *store.GraphStore
	close func()
}

// openBackend connects to the configured table source and ensures its schema.
func openBackend(ctx context.Context, cfg *config.Config, source string) (*backend, error) {
	switch source {
	case config.SourceFile:
		return &backend{
			source: source,
			loader: reprint.NewFileLoader(cfg.ReprintTable),
			close:  func() {},
		}, nil

	case config.SourcePostgres:
		pool, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s := store.NewPostgresStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &backend{source: source, loader: s, saver: s, close: pool.Close}, nil

	case config.SourceSQLite:
		s, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &backend{source: source, loader: s, saver: s, close: func() { s.Close() }}, nil

	case config.SourceNeo4j:
		driver, err := store.OpenNeo4j(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			return nil, err
		}
		s := store.NewGraphStore(driver)
		if err := s.EnsureSchema(ctx); err != nil {
			driver.Close(ctx)
			return nil, err
		}
		return &backend{
			source: source,
			loader: s,
			saver:  s,
			graph:  s,
			close:  func() { driver.Close(context.Background()) },
		}, nil

	default:
		return nil, fmt.Errorf("unknown table source %q", source)
	}
}

// loadResolver opens the configured source and builds a resolver over its table.
// A table that cannot be loaded is logged and yields an empty resolver, so
// conversions report the missing data instead of failing outright.
func loadResolver(ctx context.Context, cfg *config.Config) (*resolver.Resolver, *backend, error) {
	b, err := openBackend(ctx, cfg, cfg.TableSource)
	if err != nil {
		return nil, nil, err
	}

	table, err := reprint.LoadTable(ctx, b.loader)
	if err != nil {
		log.Error().Err(err).Str("source", b.source).Msg("Error loading reprint data")
		return resolver.New(nil), b, nil
	}

	return resolver.New(table), b, nil
}
