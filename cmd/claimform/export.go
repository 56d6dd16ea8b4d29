package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sungmin-oh/claimform-extractor/internal/common"
	"github.com/sungmin-oh/claimform-extractor/internal/export"
	"github.com/sungmin-oh/claimform-extractor/internal/repository"
)

var (
	exportOut   string
	exportLimit int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write archived extractions to an XLSX workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "claims.xlsx", "XLSX output path")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "maximum rows (0 = store default)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	cfg := common.LoadConfig()
	store, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	exporter := export.NewService(store, cfg.Export.SheetName, logger)
	data, err := exporter.ExportXLSX(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(exportOut, data, 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	fmt.Printf("Exported archive to %s\n", exportOut)
	return nil
}
