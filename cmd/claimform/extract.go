package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sungmin-oh/claimform-extractor/constants"
	"github.com/sungmin-oh/claimform-extractor/internal/common"
	"github.com/sungmin-oh/claimform-extractor/internal/extract"
	"github.com/sungmin-oh/claimform-extractor/internal/repository"
)

var extractSave bool

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract claim form fields from a text file (or stdin with \"-\")",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "archive the result in the configured store")
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, filename, size, err := readInput(args[0])
	if err != nil {
		return err
	}

	pipeline := extract.NewPipeline(slog.Default())
	res := pipeline.Run(extract.Input{
		Text:     text,
		Filename: filename,
		FileSize: size,
		FileType: constants.NormalizeExt(filepath.Ext(filename)),
		Method:   constants.MethodText,
	})
	val := extract.Validate(res)

	if extractSave {
		if err := archiveResult(cmd.Context(), res, val); err != nil {
			return err
		}
	}

	return printJSON(map[string]any{
		"extraction": res,
		"validation": val,
	})
}

func readInput(arg string) (text, filename string, size int64, err error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", 0, fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", int64(len(data)), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", 0, fmt.Errorf("read %s: %w", arg, err)
	}
	return string(data), filepath.Base(arg), int64(len(data)), nil
}

func archiveResult(ctx context.Context, res *extract.ExtractionResult, val *extract.ValidationResult) error {
	cfg := common.LoadConfig()
	store, err := repository.Open(ctx, cfg.Database, slog.Default())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	rec, err := repository.NewRecord(res, val)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, rec); err != nil {
		return fmt.Errorf("archive result: %w", err)
	}
	fmt.Fprintf(os.Stderr, "archived as %s\n", rec.ID)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
