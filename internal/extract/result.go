package extract

import (
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/sungmin-oh/claimform-extractor/constants"
)

// ocrTextSampleLen bounds the raw-text echo in debug output.
const ocrTextSampleLen = 500

// Progress is one snapshot reported to the caller's progress sink.
type Progress struct {
	Status  string `json:"status"`
	Percent int    `json:"progress"`
}

// ProgressFunc receives coarse, monotonically increasing checkpoints.
// It is fire-and-forget: the pipeline never depends on its behavior.
type ProgressFunc func(Progress)

// Metadata describes one processing invocation.
type Metadata struct {
	Filename         string             `json:"filename"`
	FileSize         int64              `json:"fileSize"`
	FileType         string             `json:"fileType"`
	Language         constants.Language `json:"language,omitempty"`
	FormType         string             `json:"formType,omitempty"`
	FieldsExtracted  int                `json:"fieldsExtracted"`
	TotalFields      int                `json:"totalFields"`
	ProcessingTimeMs int64              `json:"processingTimeMs"`
	Method           string             `json:"method"`
}

// ParseStats is the scoring summary echoed in debug output.
type ParseStats struct {
	Accuracy    int     `json:"accuracy"`
	FieldsFound int     `json:"fieldsFound"`
	TotalFields int     `json:"totalFields"`
	OCRQuality  float64 `json:"ocrQuality"`
}

// Debug carries diagnostic context for manual review tooling.
type Debug struct {
	OCRTextSample string     `json:"ocrTextSample"`
	ParseStats    ParseStats `json:"parseStats"`
}

// ExtractionResult is the top-level outcome of one document invocation.
// It is immutable after creation and fully JSON-serializable with stable
// field names; this is the contract callers, exports, and storage honor.
type ExtractionResult struct {
	Success    bool     `json:"success"`
	Error      string   `json:"error,omitempty"`
	Data       FieldMap `json:"data"`
	Accuracy   int      `json:"accuracy"`
	Confidence float64  `json:"confidence"`
	Metadata   Metadata `json:"metadata"`
	Debug      *Debug   `json:"debug,omitempty"`
}

// Input describes one document handed to the pipeline. Text is the already
// OCR'd content; the pipeline never touches files or images itself.
type Input struct {
	Text       string
	Filename   string
	FileSize   int64
	FileType   string
	Method     string // constants.MethodLocalOCR or MethodText; defaults to MethodText
	OnProgress ProgressFunc
}

// Pipeline runs the full extraction flow: normalize, match, enhance, score.
// It holds no mutable state; concurrent Run calls on different documents
// are independent.
type Pipeline struct {
	extractor *Extractor
	logger    *slog.Logger
}

func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{extractor: NewExtractor(logger), logger: logger}
}

// Run processes one document and always returns a well-formed result.
// "Nothing found" is success with an empty field map, never an error.
func (p *Pipeline) Run(in Input) *ExtractionResult {
	start := time.Now()
	report := func(status string, pct int) {
		if in.OnProgress != nil {
			in.OnProgress(Progress{Status: status, Percent: pct})
		}
	}
	method := in.Method
	if method == "" {
		method = constants.MethodText
	}

	p.logger.Info("extract.start",
		"filename", in.Filename, "bytes", len(in.Text), "method", method)
	report("Preparing document text...", 0)

	report("Normalizing OCR text...", 20)
	report("Matching field patterns...", 40)
	outcome := p.extractor.Parse(in.Text)

	report("Scoring extraction...", 90)
	sample := in.Text
	if len(sample) > ocrTextSampleLen {
		// Back up to a rune boundary so the sample stays valid UTF-8.
		cut := ocrTextSampleLen
		for cut > 0 && !utf8.RuneStart(sample[cut]) {
			cut--
		}
		sample = sample[:cut]
	}

	res := &ExtractionResult{
		Success:    true,
		Data:       outcome.Fields,
		Accuracy:   outcome.Accuracy,
		Confidence: outcome.Confidence,
		Metadata: Metadata{
			Filename:         in.Filename,
			FileSize:         in.FileSize,
			FileType:         in.FileType,
			Language:         outcome.Language,
			FormType:         outcome.FormType,
			FieldsExtracted:  outcome.FieldsFound,
			TotalFields:      outcome.TotalFields,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			Method:           method,
		},
		Debug: &Debug{
			OCRTextSample: sample,
			ParseStats: ParseStats{
				Accuracy:    outcome.Accuracy,
				FieldsFound: outcome.FieldsFound,
				TotalFields: outcome.TotalFields,
				OCRQuality:  OCRQuality(in.Text),
			},
		},
	}

	report("Extraction completed!", 100)
	p.logger.Info("extract.ok",
		"filename", in.Filename,
		"accuracy", res.Accuracy,
		"fields_found", res.Metadata.FieldsExtracted,
		"total_fields", res.Metadata.TotalFields,
		"language", res.Metadata.Language,
		"duration_ms", res.Metadata.ProcessingTimeMs,
	)
	return res
}

// FailureResult builds the result shape reserved for caller-level failures
// upstream of this core (file rejection, OCR engine errors). The core itself
// never produces it.
func FailureResult(filename string, fileSize int64, fileType string, cause error) *ExtractionResult {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &ExtractionResult{
		Success: false,
		Error:   msg,
		Metadata: Metadata{
			Filename: filename,
			FileSize: fileSize,
			FileType: fileType,
			Method:   constants.MethodFailed,
		},
	}
}
