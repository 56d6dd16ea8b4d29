package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sungmin-oh/claimform-extractor/internal/common"
	"github.com/sungmin-oh/claimform-extractor/internal/extract"
)

// ExtractionRecord is one archived extraction run.
type ExtractionRecord struct {
	ID              uuid.UUID
	Filename        string
	FileType        string
	FileSize        int64
	Language        string
	FormType        string
	Method          string
	Accuracy        int
	Confidence      float64
	Score           int
	IsValid         bool
	FieldsExtracted int
	TotalFields     int
	Result          json.RawMessage // full serialized ExtractionResult
	CreatedAt       time.Time
}

// NewRecord builds an archive row from a result and its validation.
func NewRecord(res *extract.ExtractionResult, val *extract.ValidationResult) (*ExtractionRecord, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, common.WrapError(err, "marshal result")
	}
	return &ExtractionRecord{
		ID:              uuid.New(),
		Filename:        res.Metadata.Filename,
		FileType:        res.Metadata.FileType,
		FileSize:        res.Metadata.FileSize,
		Language:        string(res.Metadata.Language),
		FormType:        res.Metadata.FormType,
		Method:          res.Metadata.Method,
		Accuracy:        res.Accuracy,
		Confidence:      res.Confidence,
		Score:           val.Score,
		IsValid:         val.IsValid,
		FieldsExtracted: res.Metadata.FieldsExtracted,
		TotalFields:     res.Metadata.TotalFields,
		Result:          raw,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// UnmarshalResult decodes the archived ExtractionResult document.
func (r *ExtractionRecord) UnmarshalResult() (*extract.ExtractionResult, error) {
	var res extract.ExtractionResult
	if err := json.Unmarshal(r.Result, &res); err != nil {
		return nil, common.WrapError(err, "unmarshal archived result")
	}
	return &res, nil
}

// ExtractionStore archives extraction runs.
type ExtractionStore interface {
	Save(ctx context.Context, rec *ExtractionRecord) error
	Get(ctx context.Context, id uuid.UUID) (*ExtractionRecord, error)
	List(ctx context.Context, limit int) ([]ExtractionRecord, error)
	Close() error
}

// Open selects the store backend by DSN: postgres:// URLs open the Postgres
// store, anything else (including empty, which falls back to
// cfg.DataDir/claims.db) opens SQLite.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (ExtractionStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return OpenPostgres(ctx, cfg, logger)
	}
	return OpenSQLite(cfg, logger)
}
