package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sungmin-oh/claimform-extractor/internal/common"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS extractions (
	id               TEXT PRIMARY KEY,
	filename         TEXT NOT NULL,
	file_type        TEXT NOT NULL DEFAULT '',
	file_size        INTEGER NOT NULL DEFAULT 0,
	language         TEXT NOT NULL DEFAULT '',
	form_type        TEXT NOT NULL DEFAULT '',
	method           TEXT NOT NULL DEFAULT '',
	accuracy         INTEGER NOT NULL,
	confidence       REAL NOT NULL,
	score            INTEGER NOT NULL,
	is_valid         INTEGER NOT NULL,
	fields_extracted INTEGER NOT NULL,
	total_fields     INTEGER NOT NULL,
	result           TEXT NOT NULL,
	created_at       DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions(created_at);
`

// SQLiteStore archives extractions in a local SQLite file. The default
// backend: zero external services, good enough for a single reviewer
// workstation or a small intake box.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ ExtractionStore = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the archive database. cfg.DSN is
// used as the file path when set; otherwise cfg.DataDir/claims.db.
// ":memory:" is accepted for tests.
func OpenSQLite(cfg common.DatabaseConfig, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	path := cfg.DSN
	if path == "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		path = filepath.Join(cfg.DataDir, "claims.db")
	}

	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	logger.Info("repository.sqlite.open", "path", path)
	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Save(ctx context.Context, rec *ExtractionRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extractions
			(id, filename, file_type, file_size, language, form_type, method,
			 accuracy, confidence, score, is_valid, fields_extracted, total_fields,
			 result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filename = excluded.filename,
			accuracy = excluded.accuracy,
			confidence = excluded.confidence,
			score = excluded.score,
			is_valid = excluded.is_valid,
			result = excluded.result
	`, rec.ID.String(), rec.Filename, rec.FileType, rec.FileSize, rec.Language,
		rec.FormType, rec.Method, rec.Accuracy, rec.Confidence, rec.Score,
		rec.IsValid, rec.FieldsExtracted, rec.TotalFields, string(rec.Result),
		rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving extraction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (*ExtractionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filename, file_type, file_size, language, form_type, method,
		       accuracy, confidence, score, is_valid, fields_extracted, total_fields,
		       result, created_at
		FROM extractions WHERE id = ?
	`, id.String())

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	return rec, err
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]ExtractionRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, file_type, file_size, language, form_type, method,
		       accuracy, confidence, score, is_valid, fields_extracted, total_fields,
		       result, created_at
		FROM extractions ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying extractions: %w", err)
	}
	defer rows.Close()

	var recs []ExtractionRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating extractions: %w", err)
	}
	return recs, nil
}

// scanRecord scans one row regardless of whether it came from Row or Rows.
func scanRecord(scan func(dest ...any) error) (*ExtractionRecord, error) {
	var rec ExtractionRecord
	var idStr, result string
	if err := scan(&idStr, &rec.Filename, &rec.FileType, &rec.FileSize,
		&rec.Language, &rec.FormType, &rec.Method, &rec.Accuracy, &rec.Confidence,
		&rec.Score, &rec.IsValid, &rec.FieldsExtracted, &rec.TotalFields,
		&result, &rec.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning extraction: %w", err)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parsing extraction id: %w", err)
	}
	rec.ID = id
	rec.Result = []byte(result)
	return &rec, nil
}
