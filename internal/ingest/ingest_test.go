package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sungmin-oh/claimform-extractor/internal/common"
	"github.com/sungmin-oh/claimform-extractor/internal/extract"
	"github.com/sungmin-oh/claimform-extractor/internal/repository"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "claim-a.txt", "환자명: 김철수 병원명: 서울병원 진료비 총액: 150,000원")
	writeFile(t, dir, "claim-b.ocr", "환자명: 이영희 병원명: 부산의원")
	writeFile(t, dir, "notes.pdf", "ignored binary")
	writeFile(t, dir, "image.png", "ignored binary")

	ig := NewIngestor(extract.NewPipeline(nil), nil, WithWorkers(2))
	results, stats, err := ig.ProcessDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Scanned)
	assert.Equal(t, 2, stats.Matched)
	assert.Equal(t, 2, stats.Processed)
	assert.Equal(t, 0, stats.Failed)
	require.Len(t, results, 2)

	// Path order, independent of worker scheduling.
	assert.Equal(t, filepath.Join(dir, "claim-a.txt"), results[0].Path)
	assert.Equal(t, filepath.Join(dir, "claim-b.ocr"), results[1].Path)

	for _, r := range results {
		require.NotNil(t, r.Result, "path %s", r.Path)
		require.NotNil(t, r.Validation, "path %s", r.Path)
		assert.True(t, r.Result.Success)
		assert.Empty(t, r.Err)
	}
	assert.Equal(t, "150000", results[0].Result.Data["totalCost"])
}

func TestProcessDirectoryArchives(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "claim.txt", "환자명: 김철수 병원명: 서울병원")

	store, err := repository.OpenSQLite(common.DatabaseConfig{DSN: ":memory:"}, nil)
	require.NoError(t, err)
	defer store.Close()

	ig := NewIngestor(extract.NewPipeline(nil), nil, WithStore(store))
	_, stats, err := ig.ProcessDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)

	recs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, "claim.txt", recs[0].Filename)
}

func TestProcessDirectoryEmpty(t *testing.T) {
	dir := t.TempDir()

	ig := NewIngestor(extract.NewPipeline(nil), nil)
	results, stats, err := ig.ProcessDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, Stats{}, stats)
}

func TestProcessDirectoryMissing(t *testing.T) {
	ig := NewIngestor(extract.NewPipeline(nil), nil)
	_, _, err := ig.ProcessDirectory(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
