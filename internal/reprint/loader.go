package reprint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Loader fetches the raw reprint groups from storage.
type Loader interface {
	Load(ctx context.Context) ([]Group, error)
}

// Saver persists reprint groups, replacing any previous table.
type Saver interface {
	Save(ctx context.Context, groups []Group) error
}

// LoadTable runs a loader, validates its output and builds the lookup table.
func LoadTable(ctx context.Context, l Loader) (*Table, error) {
	groups, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := Validate(groups); err != nil {
		return nil, err
	}

	log.Info().Int("groups", len(groups)).Msg("Loaded reprint table")
	for i := 0; i < len(groups) && i < 3; i++ {
		log.Debug().
			Str("name", groups[i].Name).
			Str("first_printing", groups[i].FirstPrinting.ID).
			Int("reprints", len(groups[i].Reprints)).
			Msg("Sample reprint group")
	}

	return NewTable(groups), nil
}

// FileLoader reads a reprint table from a JSON, YAML or XLSX file chosen by extension.
type FileLoader struct {
	Path string
}

// NewFileLoader creates a loader for the given path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// Load implements Loader.
func (fl *FileLoader) Load(ctx context.Context) ([]Group, error) {
	ext := strings.ToLower(filepath.Ext(fl.Path))
	if ext == ".xlsx" {
		return loadXLSX(fl.Path)
	}

	data, err := os.ReadFile(fl.Path)
	if err != nil {
		return nil, fmt.Errorf("read reprint table: %w", err)
	}

	switch ext {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return DecodeJSON(data)
	}
}

// DecodeJSON parses the JSON form of the table: a top-level array of groups.
func DecodeJSON(data []byte) ([]Group, error) {
	var groups []Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("reprint data is not an array of groups: %w", err)
	}
	return groups, nil
}

// DecodeYAML parses the YAML form of the table.
func DecodeYAML(data []byte) ([]Group, error) {
	var groups []Group
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parse reprint YAML: %w", err)
	}
	return groups, nil
}
