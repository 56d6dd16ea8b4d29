package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sungmin-oh/claimform-extractor/constants"
	"github.com/sungmin-oh/claimform-extractor/internal/repository"
)

// Service is a tiny façade over the archive store that produces XLSX bytes
// for exports: one summary row per extraction, plus the key claim fields a
// reviewer cares about.
type Service struct {
	store  repository.ExtractionStore
	sheet  string
	logger *slog.Logger
}

func NewService(store repository.ExtractionStore, sheet string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sheet == "" {
		sheet = "Extractions"
	}
	return &Service{store: store, sheet: sheet, logger: logger}
}

// exportFields are the claim fields written as dedicated columns, in order.
var exportFields = []constants.FieldName{
	constants.PatientName,
	constants.HospitalName,
	constants.TreatmentDate,
	constants.Department,
	constants.Diagnosis,
	constants.TotalCost,
	constants.PatientPayment,
	constants.InsuranceClaim,
}

// ExportXLSX returns an XLSX workbook (as bytes) of the most recent
// archived extractions, newest first. limit<=0 uses the store default.
func (s *Service) ExportXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()

	recs, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query extractions: %w", err)
	}

	f := excelize.NewFile()
	sheet := s.sheet
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultSheet, _ := f.GetSheetIndex("Sheet1"); defaultSheet != -1 && sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Extracted At",
		"Filename",
		"Language",
		"Accuracy",
		"Score",
		"Valid",
		"Fields Found",
	}
	for _, fn := range exportFields {
		headers = append(headers, string(fn))
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, rec := range recs {
		res, err := rec.UnmarshalResult()
		if err != nil {
			s.logger.Warn("export.skip_row", "id", rec.ID, "err", err)
			continue
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, rec.CreatedAt.Format(time.RFC3339))
		write(2, rec.Filename)
		write(3, rec.Language)
		write(4, rec.Accuracy)
		write(5, rec.Score)
		write(6, rec.IsValid)
		write(7, fmt.Sprintf("%d/%d", rec.FieldsExtracted, rec.TotalFields))
		for i, fn := range exportFields {
			write(8+i, res.Data[fn])
		}
		row++
	}

	// Widen the readable columns
	_ = f.SetColWidth(sheet, "A", "A", 20) // timestamp
	_ = f.SetColWidth(sheet, "B", "B", 28) // filename
	_ = f.SetColWidth(sheet, "H", "I", 18) // patient/hospital
	_ = f.SetColWidth(sheet, "J", "L", 16) // date/dept/diagnosis

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", row-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
