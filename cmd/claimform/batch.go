package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sungmin-oh/claimform-extractor/internal/common"
	"github.com/sungmin-oh/claimform-extractor/internal/export"
	"github.com/sungmin-oh/claimform-extractor/internal/extract"
	"github.com/sungmin-oh/claimform-extractor/internal/ingest"
	"github.com/sungmin-oh/claimform-extractor/internal/repository"
)

var (
	batchDir     string
	batchOut     string
	batchWorkers int
	batchInmem   bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract every claim form text file in a directory",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "directory to process (required)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "XLSX output path (defaults to <dir>/../claims.xlsx)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "concurrent extraction workers")
	batchCmd.Flags().BoolVar(&batchInmem, "inmem", false, "use an in-memory archive instead of the configured store")
	_ = batchCmd.MarkFlagRequired("dir")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	if batchOut == "" {
		batchOut = filepath.Join(filepath.Dir(batchDir), "claims.xlsx")
	}

	cfg := common.LoadConfig()
	if batchInmem {
		cfg.Database.DSN = ":memory:"
	}
	store, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	ig := ingest.NewIngestor(extract.NewPipeline(logger), logger,
		ingest.WithWorkers(batchWorkers),
		ingest.WithStore(store))

	results, stats, err := ig.ProcessDirectory(ctx, batchDir)
	if err != nil {
		return fmt.Errorf("process directory: %w", err)
	}

	exporter := export.NewService(store, cfg.Export.SheetName, logger)
	data, err := exporter.ExportXLSX(ctx, 0)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(batchOut, data, 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files scanned: %d\n", stats.Scanned)
	fmt.Printf("- Files matched: %d\n", stats.Matched)
	fmt.Printf("- Files processed: %d\n", stats.Processed)
	fmt.Printf("- Failures: %d\n", stats.Failed)
	fmt.Printf("- Output: %s\n", batchOut)
	for _, r := range results {
		if r.Err != "" {
			fmt.Printf("  failed: %s: %s\n", r.Path, r.Err)
		}
	}
	return nil
}
