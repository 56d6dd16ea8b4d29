package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sungmin-oh/claimform-extractor/internal/common"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS extractions (
	id               UUID PRIMARY KEY,
	filename         TEXT NOT NULL,
	file_type        TEXT NOT NULL DEFAULT '',
	file_size        BIGINT NOT NULL DEFAULT 0,
	language         TEXT NOT NULL DEFAULT '',
	form_type        TEXT NOT NULL DEFAULT '',
	method           TEXT NOT NULL DEFAULT '',
	accuracy         INT NOT NULL,
	confidence       DOUBLE PRECISION NOT NULL,
	score            INT NOT NULL,
	is_valid         BOOLEAN NOT NULL,
	fields_extracted INT NOT NULL,
	total_fields     INT NOT NULL,
	result           JSONB NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions(created_at);
`

// PostgresStore archives extractions in Postgres, for deployments where the
// archive is shared between intake workers and review tooling.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var _ ExtractionStore = (*PostgresStore)(nil)

// OpenPostgres creates a pgx pool and ensures the schema exists.
func OpenPostgres(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing dsn: %w", err)
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.ConnConfig.RuntimeParams["application_name"] = "claimform-extractor"

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	logger.Info("repository.postgres.open")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

// Close closes the pool. Always returns nil; pgxpool close is not fallible.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Ping checks connectivity, used by health endpoints.
func (s *PostgresStore) Ping(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Save(ctx context.Context, rec *ExtractionRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO extractions
			(id, filename, file_type, file_size, language, form_type, method,
			 accuracy, confidence, score, is_valid, fields_extracted, total_fields,
			 result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			filename = EXCLUDED.filename,
			accuracy = EXCLUDED.accuracy,
			confidence = EXCLUDED.confidence,
			score = EXCLUDED.score,
			is_valid = EXCLUDED.is_valid,
			result = EXCLUDED.result
	`, rec.ID, rec.Filename, rec.FileType, rec.FileSize, rec.Language,
		rec.FormType, rec.Method, rec.Accuracy, rec.Confidence, rec.Score,
		rec.IsValid, rec.FieldsExtracted, rec.TotalFields, rec.Result,
		rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving extraction: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*ExtractionRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, filename, file_type, file_size, language, form_type, method,
		       accuracy, confidence, score, is_valid, fields_extracted, total_fields,
		       result, created_at
		FROM extractions WHERE id = $1
	`, id)

	var rec ExtractionRecord
	err := row.Scan(&rec.ID, &rec.Filename, &rec.FileType, &rec.FileSize,
		&rec.Language, &rec.FormType, &rec.Method, &rec.Accuracy, &rec.Confidence,
		&rec.Score, &rec.IsValid, &rec.FieldsExtracted, &rec.TotalFields,
		&rec.Result, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning extraction: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]ExtractionRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, filename, file_type, file_size, language, form_type, method,
		       accuracy, confidence, score, is_valid, fields_extracted, total_fields,
		       result, created_at
		FROM extractions ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying extractions: %w", err)
	}
	defer rows.Close()

	var recs []ExtractionRecord
	for rows.Next() {
		var rec ExtractionRecord
		if err := rows.Scan(&rec.ID, &rec.Filename, &rec.FileType, &rec.FileSize,
			&rec.Language, &rec.FormType, &rec.Method, &rec.Accuracy, &rec.Confidence,
			&rec.Score, &rec.IsValid, &rec.FieldsExtracted, &rec.TotalFields,
			&rec.Result, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning extraction: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating extractions: %w", err)
	}
	return recs, nil
}
