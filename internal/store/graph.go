package store

import (
	"context"
	"fmt"

	"deblinger/internal/reprint"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// GraphStore keeps the reprint table as a Neo4j graph:
//
//	(:ReprintGroup {position, name})-[:FIRST_PRINTING]->(:Printing {id})
//	(:ReprintGroup)-[:REPRINTED_AS {position}]->(:Printing {id})
type GraphStore struct {
	driver neo4j.DriverWithContext
}

// NewGraphStore creates a graph store.
func NewGraphStore(driver neo4j.DriverWithContext) *GraphStore {
	return &GraphStore{driver: driver}
}

// OpenNeo4j connects and verifies connectivity.
func OpenNeo4j(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")

	return driver, nil
}

// EnsureSchema creates constraints on the Neo4j database.
func (gs *GraphStore) EnsureSchema(ctx context.Context) error {
	session := gs.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (p:Printing) REQUIRE p.id IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (g:ReprintGroup) REQUIRE g.position IS UNIQUE",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// Save replaces the stored graph with groups in one write transaction.
func (gs *GraphStore) Save(ctx context.Context, groups []reprint.Group) error {
	session := gs.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, "MATCH (n) WHERE n:ReprintGroup OR n:Printing DETACH DELETE n", nil); err != nil {
			return nil, fmt.Errorf("clear reprint graph: %w", err)
		}

		for i, g := range groups {
			reprints := make([]any, len(g.Reprints))
			for j, r := range g.Reprints {
				reprints[j] = map[string]any{"id": r.ID, "position": j}
			}

			_, err := tx.Run(ctx, `
				MERGE (g:ReprintGroup {position: $position})
				SET g.name = $name
				MERGE (f:Printing {id: $first})
				MERGE (g)-[:FIRST_PRINTING]->(f)
				WITH g
				UNWIND $reprints AS r
				MERGE (p:Printing {id: r.id})
				MERGE (g)-[:REPRINTED_AS {position: r.position}]->(p)
			`, map[string]any{
				"position": i,
				"name":     g.Name,
				"first":    g.FirstPrinting.ID,
				"reprints": reprints,
			})
			if err != nil {
				return nil, fmt.Errorf("upsert group %s: %w", g.Name, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("groups", len(groups)).Msg("Saved reprint table to Neo4j")
	return nil
}

// Load implements reprint.Loader.
func (gs *GraphStore) Load(ctx context.Context) ([]reprint.Group, error) {
	session := gs.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (g:ReprintGroup)-[:FIRST_PRINTING]->(f:Printing)
		OPTIONAL MATCH (g)-[r:REPRINTED_AS]->(p:Printing)
		WITH g, f, r, p ORDER BY g.position, r.position
		RETURN g.position AS position, g.name AS name, f.id AS first, collect(p.id) AS reprints
		ORDER BY position
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("query reprint graph: %w", err)
	}

	var groups []reprint.Group
	for result.Next(ctx) {
		groups = append(groups, groupFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read reprint graph: %w", err)
	}

	return groups, nil
}

// Lineage returns the group containing id, as a first printing or a reprint.
// When id appears in several groups the one earliest in table order wins.
func (gs *GraphStore) Lineage(ctx context.Context, id string) (reprint.Group, bool, error) {
	session := gs.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (:Printing {id: $id})<-[:FIRST_PRINTING|REPRINTED_AS]-(g:ReprintGroup)
		WITH g ORDER BY g.position LIMIT 1
		MATCH (g)-[:FIRST_PRINTING]->(f:Printing)
		OPTIONAL MATCH (g)-[r:REPRINTED_AS]->(p:Printing)
		WITH g, f, r, p ORDER BY r.position
		RETURN g.position AS position, g.name AS name, f.id AS first, collect(p.id) AS reprints
	`, map[string]any{"id": id})
	if err != nil {
		return reprint.Group{}, false, fmt.Errorf("query lineage: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return reprint.Group{}, false, fmt.Errorf("read lineage: %w", err)
		}
		return reprint.Group{}, false, nil
	}

	return groupFromRecord(result.Record()), true, nil
}

func groupFromRecord(record *neo4j.Record) reprint.Group {
	name, _ := record.Get("name")
	first, _ := record.Get("first")
	raw, _ := record.Get("reprints")

	g := reprint.Group{
		Name:          fmt.Sprintf("%v", name),
		FirstPrinting: reprint.PrintingRef{ID: fmt.Sprintf("%v", first)},
		Reprints:      []reprint.PrintingRef{},
	}
	if list, ok := raw.([]any); ok {
		for _, id := range list {
			g.Reprints = append(g.Reprints, reprint.PrintingRef{ID: fmt.Sprintf("%v", id)})
		}
	}
	return g
}
