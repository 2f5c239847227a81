package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"deblinger/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "deblinger",
		Short: "Rewrite Pokémon TCG decklists to first printings",
		Long: `Deblinger rewrites every card in a decklist to its canonical first printing,
using a curated table of reprint groups. The table can be read from a JSON, YAML
or XLSX file, or from PostgreSQL, SQLite or Neo4j after an import.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every resolution decision")
	rootCmd.PersistentFlags().String("table", "", "Reprint table file (overrides REPRINT_TABLE)")
	rootCmd.PersistentFlags().String("source", "", "Table source: file, postgres, sqlite or neo4j (overrides TABLE_SOURCE)")

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(mcpCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func setupLogging(cmd *cobra.Command) {
	level, err := zerolog.ParseLevel(strings.ToLower(loadConfig(cmd).LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}

// loadConfig reads the environment and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()

	if table, _ := cmd.Flags().GetString("table"); table != "" {
		cfg.ReprintTable = table
	}
	if source, _ := cmd.Flags().GetString("source"); source != "" {
		cfg.TableSource = source
	}

	return cfg
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
