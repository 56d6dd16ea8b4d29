package ingest

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"log/slog"

	"github.com/sungmin-oh/claimform-extractor/constants"
	"github.com/sungmin-oh/claimform-extractor/internal/common"
	"github.com/sungmin-oh/claimform-extractor/internal/extract"
	"github.com/sungmin-oh/claimform-extractor/internal/repository"
)

// Stats summarizes one directory run.
type Stats struct {
	Scanned   int
	Matched   int
	Processed int
	Failed    int
}

// FileResult is the outcome for one document. Err is empty on success;
// Result is populated either way (failures carry a FailureResult).
type FileResult struct {
	Path       string
	Result     *extract.ExtractionResult
	Validation *extract.ValidationResult
	Err        string
}

// Ingestor walks a directory of pre-OCR'd claim form text files and runs
// each through the extraction pipeline on a bounded worker pool. When a
// store is configured every result is archived as it completes.
type Ingestor struct {
	pipeline *extract.Pipeline
	store    repository.ExtractionStore // optional
	logger   *slog.Logger
	workers  int
	timeout  time.Duration
}

type Option func(*Ingestor)

func WithWorkers(n int) Option {
	return func(ig *Ingestor) {
		if n > 0 {
			ig.workers = n
		}
	}
}

func WithStore(store repository.ExtractionStore) Option {
	return func(ig *Ingestor) { ig.store = store }
}

func WithFileTimeout(d time.Duration) Option {
	return func(ig *Ingestor) {
		if d > 0 {
			ig.timeout = d
		}
	}
}

func NewIngestor(pipeline *extract.Pipeline, logger *slog.Logger, opts ...Option) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	ig := &Ingestor{
		pipeline: pipeline,
		logger:   logger,
		workers:  4,
		timeout:  30 * time.Second,
	}
	for _, o := range opts {
		o(ig)
	}
	return ig
}

// ProcessDirectory scans dir for supported text files, extracts each one,
// and returns per-file results in path order.
func (ig *Ingestor) ProcessDirectory(ctx context.Context, dir string) ([]FileResult, Stats, error) {
	var stats Stats
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if constants.IsAllowedExt(filepath.Ext(path)) {
			stats.Matched++
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, stats, common.WrapError(err, "scan directory")
	}
	sort.Strings(paths)

	ig.logger.Info("ingest.scan", "dir", dir, "scanned", stats.Scanned, "matched", stats.Matched)

	results := make([]FileResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < ig.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				results[i] = ig.processOne(ctx, workerID, paths[i])
			}
		}(w + 1)
	}

feed:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		return results, stats, ctx.Err()
	}

	for i := range results {
		if results[i].Err == "" {
			stats.Processed++
		} else {
			stats.Failed++
		}
	}
	ig.logger.Info("ingest.done", "processed", stats.Processed, "failed", stats.Failed)
	return results, stats, nil
}

func (ig *Ingestor) processOne(ctx context.Context, workerID int, path string) FileResult {
	fileCtx, cancel := context.WithTimeout(ctx, ig.timeout)
	defer cancel()

	filename := filepath.Base(path)
	ext := constants.NormalizeExt(filepath.Ext(path))

	data, err := os.ReadFile(path)
	if err != nil {
		ig.logger.Error("ingest.read_failed", "worker_id", workerID, "path", path, "err", err)
		return FileResult{
			Path:   path,
			Result: extract.FailureResult(filename, 0, ext, err),
			Err:    err.Error(),
		}
	}

	res := ig.pipeline.Run(extract.Input{
		Text:     string(data),
		Filename: filename,
		FileSize: int64(len(data)),
		FileType: ext,
		Method:   constants.MethodText,
	})
	val := extract.Validate(res)

	if ig.store != nil {
		rec, err := repository.NewRecord(res, val)
		if err == nil {
			err = ig.store.Save(fileCtx, rec)
		}
		if err != nil {
			ig.logger.Error("ingest.archive_failed", "worker_id", workerID, "path", path, "err", err)
			return FileResult{Path: path, Result: res, Validation: val, Err: err.Error()}
		}
	}

	ig.logger.Info("ingest.file.ok",
		"worker_id", workerID,
		"path", path,
		"language", res.Metadata.Language,
		"accuracy", res.Accuracy,
		"score", val.Score)
	return FileResult{Path: path, Result: res, Validation: val}
}
