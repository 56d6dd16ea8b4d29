package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"log/slog"

	"github.com/sungmin-oh/claimform-extractor/constants"
	"github.com/sungmin-oh/claimform-extractor/internal/common"
	"github.com/sungmin-oh/claimform-extractor/internal/export"
	"github.com/sungmin-oh/claimform-extractor/internal/extract"
	"github.com/sungmin-oh/claimform-extractor/internal/repository"
	"github.com/sungmin-oh/claimform-extractor/internal/schema"
)

// Service owns the HTTP handlers. It is a thin layer: decode, run the
// extraction core, archive, encode. The JSON bodies it returns are the
// published result/validation contracts verbatim.
type Service struct {
	pipeline *extract.Pipeline
	store    repository.ExtractionStore
	exporter *export.Service
	logger   *slog.Logger
}

func NewService(pipeline *extract.Pipeline, store repository.ExtractionStore, exporter *export.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{pipeline: pipeline, store: store, exporter: exporter, logger: logger}
}

// ExtractRequest is the POST /api/v1/extractions body. Text is pre-OCR'd
// document text; empty text is accepted and yields an empty, low-confidence
// result rather than an error.
type ExtractRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
}

// ExtractResponse pairs the stored id with the two result documents.
type ExtractResponse struct {
	ID         string                    `json:"id"`
	Extraction *extract.ExtractionResult `json:"extraction"`
	Validation *extract.ValidationResult `json:"validation"`
}

// Summary is one row of the list endpoint.
type Summary struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Language  string    `json:"language"`
	Accuracy  int       `json:"accuracy"`
	Score     int       `json:"score"`
	IsValid   bool      `json:"isValid"`
	CreatedAt time.Time `json:"createdAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}

// CreateExtraction runs the pipeline on posted text and archives the result.
func (s *Service) CreateExtraction(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	res := s.pipeline.Run(extract.Input{
		Text:     req.Text,
		Filename: req.Filename,
		FileSize: req.FileSize,
		FileType: req.FileType,
		Method:   constants.MethodLocalOCR,
	})
	val := extract.Validate(res)

	extractionDuration.Observe(time.Since(start).Seconds())
	extractionsTotal.WithLabelValues(string(res.Metadata.Language), boolLabel(val.IsValid)).Inc()
	validationScore.Observe(float64(val.Score))

	rec, err := repository.NewRecord(res, val)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "archive encode failed")
		return
	}
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.logger.Error("server.extract.archive_failed", "err", err)
		renderError(w, r, http.StatusInternalServerError, "archive write failed")
		return
	}

	w.Header().Set("Location", "/api/v1/extractions/"+rec.ID.String())
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, ExtractResponse{
		ID:         rec.ID.String(),
		Extraction: res,
		Validation: val,
	})
}

// GetExtraction returns one archived extraction with a freshly recomputed
// validation (validation results are derived, never stored authoritative).
func (s *Service) GetExtraction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid extraction id")
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, common.ErrNotFound) {
		renderError(w, r, http.StatusNotFound, "extraction not found")
		return
	}
	if err != nil {
		s.logger.Error("server.extract.get_failed", "id", id, "err", err)
		renderError(w, r, http.StatusInternalServerError, "archive read failed")
		return
	}
	res, err := rec.UnmarshalResult()
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "archived result corrupt")
		return
	}
	render.JSON(w, r, ExtractResponse{
		ID:         rec.ID.String(),
		Extraction: res,
		Validation: extract.Validate(res),
	})
}

// ListExtractions returns recent extraction summaries, newest first.
func (s *Service) ListExtractions(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context(), 0)
	if err != nil {
		s.logger.Error("server.extract.list_failed", "err", err)
		renderError(w, r, http.StatusInternalServerError, "archive read failed")
		return
	}
	out := make([]Summary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Summary{
			ID:        rec.ID.String(),
			Filename:  rec.Filename,
			Language:  rec.Language,
			Accuracy:  rec.Accuracy,
			Score:     rec.Score,
			IsValid:   rec.IsValid,
			CreatedAt: rec.CreatedAt,
		})
	}
	render.JSON(w, r, out)
}

// ExportExtractions streams the archive as an XLSX workbook.
func (s *Service) ExportExtractions(w http.ResponseWriter, r *http.Request) {
	data, err := s.exporter.ExportXLSX(r.Context(), 0)
	if err != nil {
		s.logger.Error("server.export.failed", "err", err)
		renderError(w, r, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="extractions.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ValidateResult runs the validation engine on a posted ExtractionResult
// document. The document is checked against the published contract schema
// before decoding; the success:false failure shape is a conforming document
// and is scored, not rejected.
func (s *Service) ValidateResult(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "read result document: "+err.Error())
		return
	}
	if err := schema.ValidateJSONAgainstSchema(schema.BuildExtractionResultSchema(), raw); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid result document: "+err.Error())
		return
	}
	var res extract.ExtractionResult
	if err := json.Unmarshal(raw, &res); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid result document: "+err.Error())
		return
	}
	render.JSON(w, r, extract.Validate(&res))
}

// Healthz reports liveness.
func (s *Service) Healthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
