package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sungmin-oh/claimform-extractor/internal/extract"
	"github.com/sungmin-oh/claimform-extractor/internal/schema"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate [result.json]",
	Short: "Score a previously produced extraction result (or stdin with \"-\")",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "exit non-zero when the result is not valid")
}

func runValidate(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read result: %w", err)
	}

	if err := schema.ValidateJSONAgainstSchema(schema.BuildExtractionResultSchema(), data); err != nil {
		return fmt.Errorf("invalid result document: %w", err)
	}
	var res extract.ExtractionResult
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}

	val := extract.Validate(&res)
	if err := printJSON(val); err != nil {
		return err
	}
	if validateStrict && !val.IsValid {
		return fmt.Errorf("result is not valid (score %d)", val.Score)
	}
	return nil
}
