package extract

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sungmin-oh/claimform-extractor/constants"
)

func TestPipelineRun(t *testing.T) {
	p := NewPipeline(nil)

	var checkpoints []int
	res := p.Run(Input{
		Text:     "환자명: 김철수 병원명: 서울병원 진료일자: 2024-01-15",
		Filename: "claim.txt",
		FileSize: 1024,
		FileType: "txt",
		Method:   constants.MethodLocalOCR,
		OnProgress: func(pr Progress) {
			checkpoints = append(checkpoints, pr.Percent)
		},
	})

	require.NotNil(t, res)
	assert.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Equal(t, []int{0, 20, 40, 90, 100}, checkpoints)

	assert.Equal(t, "claim.txt", res.Metadata.Filename)
	assert.Equal(t, int64(1024), res.Metadata.FileSize)
	assert.Equal(t, "txt", res.Metadata.FileType)
	assert.Equal(t, constants.MethodLocalOCR, res.Metadata.Method)
	assert.Equal(t, constants.FormTypeKoreanMedical, res.Metadata.FormType)
	assert.Equal(t, TotalFields(), res.Metadata.TotalFields)
	assert.Equal(t, len(res.Data), res.Metadata.FieldsExtracted)
	assert.GreaterOrEqual(t, res.Metadata.ProcessingTimeMs, int64(0))

	require.NotNil(t, res.Debug)
	assert.Equal(t, res.Accuracy, res.Debug.ParseStats.Accuracy)
}

func TestPipelineRunDefaultsMethod(t *testing.T) {
	p := NewPipeline(nil)
	res := p.Run(Input{Text: "no structure here", Filename: "x.txt"})
	assert.Equal(t, constants.MethodText, res.Metadata.Method)
}

func TestPipelineRunEmptyText(t *testing.T) {
	p := NewPipeline(nil)
	res := p.Run(Input{Text: "", Filename: "empty.txt"})

	assert.True(t, res.Success)
	assert.Empty(t, res.Data)
	assert.Equal(t, 0, res.Accuracy)
	assert.Equal(t, constants.LangUnknown, res.Metadata.Language)
}

func TestPipelineRunTruncatesDebugSample(t *testing.T) {
	p := NewPipeline(nil)
	long := strings.Repeat("a", ocrTextSampleLen+200)
	res := p.Run(Input{Text: long, Filename: "long.txt"})

	require.NotNil(t, res.Debug)
	assert.Len(t, res.Debug.OCRTextSample, ocrTextSampleLen)
}

func TestPipelineRunSampleStaysValidUTF8(t *testing.T) {
	p := NewPipeline(nil)
	// Three-byte Hangul runes guarantee the byte limit lands mid-rune.
	long := strings.Repeat("환자명김철수", 60)
	require.Greater(t, len(long), ocrTextSampleLen)

	res := p.Run(Input{Text: long, Filename: "long.txt"})

	require.NotNil(t, res.Debug)
	assert.True(t, utf8.ValidString(res.Debug.OCRTextSample))
	assert.LessOrEqual(t, len(res.Debug.OCRTextSample), ocrTextSampleLen)
	assert.True(t, strings.HasPrefix(long, res.Debug.OCRTextSample))
}

func TestFailureResult(t *testing.T) {
	res := FailureResult("broken.txt", 2048, "txt", errors.New("rasterization failed"))

	assert.False(t, res.Success)
	assert.Equal(t, "rasterization failed", res.Error)
	assert.Nil(t, res.Data)
	assert.Equal(t, "broken.txt", res.Metadata.Filename)
	assert.Equal(t, int64(2048), res.Metadata.FileSize)
	assert.Equal(t, constants.MethodFailed, res.Metadata.Method)

	res = FailureResult("broken.txt", 0, "txt", nil)
	assert.False(t, res.Success)
	assert.Empty(t, res.Error)
}

func TestExtractionResultJSONContract(t *testing.T) {
	p := NewPipeline(nil)
	res := p.Run(Input{
		Text:     "환자명: 김철수 병원명: 서울병원",
		Filename: "claim.txt",
		FileType: "txt",
	})

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "success")
	assert.Contains(t, doc, "data")
	assert.Contains(t, doc, "accuracy")
	assert.Contains(t, doc, "confidence")
	assert.Contains(t, doc, "metadata")
	assert.NotContains(t, doc, "error")

	var back ExtractionResult
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, res.Data, back.Data)
	assert.Equal(t, res.Metadata, back.Metadata)
}
