package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"deblinger/internal/config"
	"deblinger/internal/reprint"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <table-file>",
		Short: "Load a reprint table file into a database",
		Long: `Validates a reprint table (JSON, YAML or XLSX) and stores it in PostgreSQL,
SQLite or Neo4j, replacing any table stored there before.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("into", config.SourceSQLite, "Destination: postgres, sqlite or neo4j")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	into, _ := cmd.Flags().GetString("into")
	if into == config.SourceFile {
		return fmt.Errorf("cannot import into the %s source, use export instead", config.SourceFile)
	}

	ctx, cancel := setupContext()
	defer cancel()

	table, err := reprint.LoadTable(ctx, reprint.NewFileLoader(args[0]))
	if err != nil {
		return err
	}

	b, err := openBackend(ctx, cfg, into)
	if err != nil {
		return err
	}
	defer b.close()

	if err := b.saver.Save(ctx, table.Groups()); err != nil {
		return err
	}

	log.Info().
		Int("groups", table.Len()).
		Str("into", into).
		Msg("Reprint table imported")
	return nil
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <output-file>",
		Short: "Write the reprint table as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	cmd.Flags().String("from", "", "Source to read: file, postgres, sqlite or neo4j (default TABLE_SOURCE)")
	cmd.Flags().String("format", "", "Output format: json or yaml (default from the file extension)")

	return cmd
}

func exportFormat(path, format string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return "yaml", nil
		default:
			return "json", nil
		}
	}

	switch f := strings.ToLower(format); f {
	case "json", "yaml":
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	output := args[0]
	cfg := loadConfig(cmd)
	from, _ := cmd.Flags().GetString("from")
	if from == "" {
		from = cfg.TableSource
	}
	formatFlag, _ := cmd.Flags().GetString("format")

	format, err := exportFormat(output, formatFlag)
	if err != nil {
		return err
	}

	ctx, cancel := setupContext()
	defer cancel()

	b, err := openBackend(ctx, cfg, from)
	if err != nil {
		return err
	}
	defer b.close()

	table, err := reprint.LoadTable(ctx, b.loader)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if format == "yaml" {
		err = reprint.WriteYAML(&buf, table.Groups())
	} else {
		err = reprint.WriteJSON(&buf, table.Groups())
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	log.Info().
		Int("groups", table.Len()).
		Str("file", output).
		Str("format", format).
		Msg("Reprint table exported")
	return nil
}
