package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"deblinger/internal/decklist"
	"deblinger/internal/filewalker"
	"deblinger/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [decklist-file]",
		Short: "Rewrite a decklist to first printings",
		Long:  "Reads a decklist from the given file, or from stdin when no file is given, and writes the converted decklist.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConvert,
	}

	cmd.Flags().StringP("output", "o", "", "Write the converted decklist to this file instead of stdout")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	output, _ := cmd.Flags().GetString("output")

	ctx, cancel := setupContext()
	defer cancel()

	var (
		input []byte
		err   error
	)
	if len(args) == 1 {
		input, err = os.ReadFile(args[0])
	} else {
		input, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read decklist: %w", err)
	}

	r, b, err := loadResolver(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	converter := decklist.NewConverter(r)
	text := converter.ConvertText(string(input))

	if output != "" {
		if err := os.WriteFile(output, []byte(text), 0644); err != nil {
			return fmt.Errorf("write decklist: %w", err)
		}
		log.Info().Str("file", output).Msg("Decklist written")
	} else {
		fmt.Fprint(cmd.OutOrStdout(), text)
	}

	if !r.Ready() {
		return decklist.ErrTableNotLoaded
	}
	return nil
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <input-dir> <output-dir>",
		Short: "Convert every decklist under a directory",
		Long: `Converts every decklist file (.txt, .deck, .ptcgl) under input-dir and writes the
results to output-dir, keeping the same relative paths.`,
		Args: cobra.ExactArgs(2),
		RunE: runBatch,
	}

	cmd.Flags().IntP("workers", "w", 0, "Number of concurrent conversions (default WORKER_COUNT)")

	return cmd
}

// batchResult is the outcome of converting one decklist file.
type batchResult struct {
	Output  string
	Cards   int
	Changes int
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputDir, outputDir := args[0], args[1]
	cfg := loadConfig(cmd)
	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = cfg.WorkerCount
	}

	ctx, cancel := setupContext()
	defer cancel()

	r, b, err := loadResolver(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	if !r.Ready() {
		return decklist.ErrTableNotLoaded
	}

	files, err := filewalker.NewWalker().Walk(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warn().Str("dir", inputDir).Msg("No decklists found")
		return nil
	}

	log.Info().
		Int("files", len(files)).
		Int("workers", workers).
		Msg("Starting batch conversion")

	converter := decklist.NewConverter(r)
	start := time.Now()

	pool := worker.NewPool(workers, func(ctx context.Context, entry filewalker.FileEntry) (batchResult, error) {
		return convertFile(converter, entry, outputDir)
	})
	tasks := pool.Execute(ctx, files)

	var failed, changes int
	for _, task := range tasks {
		if task.Err != nil {
			failed++
			log.Error().Err(task.Err).Str("file", task.Input.Rel).Msg("Conversion failed")
			continue
		}
		changes += task.Result.Changes
		log.Debug().
			Str("file", task.Result.Output).
			Int("cards", task.Result.Cards).
			Int("changes", task.Result.Changes).
			Msg("Converted")
	}

	log.Info().
		Int("files", len(files)).
		Int("failed", failed).
		Int("changes", changes).
		Dur("elapsed", time.Since(start)).
		Msg("Batch conversion complete")

	if failed > 0 {
		return fmt.Errorf("%d of %d decklists failed", failed, len(files))
	}
	return nil
}

func convertFile(converter *decklist.Converter, entry filewalker.FileEntry, outputDir string) (batchResult, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return batchResult{}, fmt.Errorf("read decklist: %w", err)
	}

	result, err := converter.Convert(string(data))
	if err != nil {
		return batchResult{}, err
	}

	out := filepath.Join(outputDir, entry.Rel)
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return batchResult{}, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(result.Text), 0644); err != nil {
		return batchResult{}, fmt.Errorf("write decklist: %w", err)
	}

	return batchResult{Output: out, Cards: result.Cards, Changes: len(result.Changes)}, nil
}

