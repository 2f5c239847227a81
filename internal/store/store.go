// Package store persists the reprint table in Postgres, SQLite or Neo4j.
// Every store implements reprint.Loader and reprint.Saver and keeps table
// order, so a table loaded back resolves exactly like the file it came from.
package store

import "deblinger/internal/reprint"

func printingIDs(refs []reprint.PrintingRef) []string {
	ids := make([]string, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
	}
	return ids
}

func printingRefs(ids []string) []reprint.PrintingRef {
	refs := make([]reprint.PrintingRef, len(ids))
	for i, id := range ids {
		refs[i] = reprint.PrintingRef{ID: id}
	}
	return refs
}
