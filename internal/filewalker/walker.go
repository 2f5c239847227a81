package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultExtensions lists the decklist file types picked up by default.
var DefaultExtensions = []string{".txt", ".deck", ".ptcgl"}

// Walker discovers decklist files under a directory.
type Walker struct {
	exts map[string]bool
}

// NewWalker creates a Walker for the given extensions, or DefaultExtensions
// when none are passed.
func NewWalker(exts ...string) *Walker {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	w := &Walker{exts: make(map[string]bool, len(exts))}
	for _, ext := range exts {
		w.exts[strings.ToLower(ext)] = true
	}
	return w
}

// FileEntry represents a discovered decklist.
type FileEntry struct {
	// Path is absolute.
	Path string
	// Rel is Path relative to the walked root, used to mirror the layout on output.
	Rel string
}

// Walk discovers all decklist files under the given root directory, in lexical order.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if !w.exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}

		entries = append(entries, FileEntry{Path: path, Rel: rel})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered decklists")
	return entries, nil
}
