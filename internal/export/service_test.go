package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sungmin-oh/claimform-extractor/internal/common"
	"github.com/sungmin-oh/claimform-extractor/internal/extract"
	"github.com/sungmin-oh/claimform-extractor/internal/repository"
)

func seedStore(t *testing.T, texts map[string]string) repository.ExtractionStore {
	t.Helper()
	store, err := repository.OpenSQLite(common.DatabaseConfig{DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	p := extract.NewPipeline(nil)
	for filename, text := range texts {
		res := p.Run(extract.Input{Text: text, Filename: filename, FileType: "txt"})
		rec, err := repository.NewRecord(res, extract.Validate(res))
		require.NoError(t, err)
		require.NoError(t, store.Save(context.Background(), rec))
	}
	return store
}

func TestExportXLSX(t *testing.T) {
	store := seedStore(t, map[string]string{
		"claim-a.txt": "환자명: 김철수 병원명: 서울병원 진료비 총액: 150,000원",
		"claim-b.txt": "환자명: 이영희 병원명: 부산의원",
	})

	svc := NewService(store, "Claims", nil)
	data, err := svc.ExportXLSX(context.Background(), 0)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Claims"}, f.GetSheetList())

	rows, err := f.GetRows("Claims")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 records

	header := rows[0]
	assert.Equal(t, "Extracted At", header[0])
	assert.Equal(t, "Filename", header[1])
	assert.Contains(t, header, "patientName")
	assert.Contains(t, header, "totalCost")

	filenames := []string{rows[1][1], rows[2][1]}
	assert.Contains(t, filenames, "claim-a.txt")
	assert.Contains(t, filenames, "claim-b.txt")
}

func TestExportXLSXEmptyStore(t *testing.T) {
	store := seedStore(t, nil)

	svc := NewService(store, "", nil)
	data, err := svc.ExportXLSX(context.Background(), 0)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Extractions")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
